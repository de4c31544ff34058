package services

import "github.com/yigit/teamreg/internal/app/models"

// FilterAll is the wildcard value for the category and activity filters
const FilterAll = "all"

// ActivitySummary aggregates registrations for one activity
type ActivitySummary struct {
	Teams    int `json:"teams"`
	Teachers int `json:"teachers"`
	Students int `json:"students"`
	Total    int `json:"total"`
}

// ReportRow is one line of the summary report
type ReportRow struct {
	ActivityName string `json:"activityName"`
	ActivitySummary
}

// TeamRow joins a team with its activity for display. Composition is the
// zero value when the activity is unknown.
type TeamRow struct {
	Team         models.Team
	ActivityName string
	Composition  models.TeamComposition
}

// FilterActivities returns the activities matching both filters, keeping
// input order. FilterAll (or an empty value) matches everything on its axis.
func FilterActivities(categoryID, activityID string, activities []models.Activity) []models.Activity {
	result := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if !matches(categoryID, a.CategoryID) || !matches(activityID, a.ID) {
			continue
		}
		result = append(result, a)
	}
	return result
}

// ActivitiesInCategory lists the activities offered by the activity filter
// once a category is chosen.
func ActivitiesInCategory(categoryID string, activities []models.Activity) []models.Activity {
	return FilterActivities(categoryID, FilterAll, activities)
}

func matches(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

// SummarizeByActivity counts teams, teachers and students per activity.
// Teams whose activity is unknown are left out. The map is keyed by the
// activity name, so two activities sharing a name are merged.
func SummarizeByActivity(teams []models.Team, activities []models.Activity) map[string]ActivitySummary {
	summary := make(map[string]ActivitySummary)
	for i := range teams {
		team := &teams[i]
		activity := models.FindActivity(activities, team.ActivityID)
		if activity == nil {
			continue
		}

		s := summary[activity.Name]
		s.Teams++
		s.Teachers += len(team.Teachers)
		s.Students += len(team.Students)
		s.Total += len(team.Teachers) + len(team.Students)
		summary[activity.Name] = s
	}
	return summary
}

// ReportRows orders a summary by the activities' order. Names are emitted once.
func ReportRows(summary map[string]ActivitySummary, activities []models.Activity) []ReportRow {
	rows := make([]ReportRow, 0, len(summary))
	seen := make(map[string]bool, len(summary))
	for _, a := range activities {
		s, ok := summary[a.Name]
		if !ok || seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		rows = append(rows, ReportRow{ActivityName: a.Name, ActivitySummary: s})
	}
	return rows
}

// TeamRows pairs every team with its activity name. Unknown activities render as "-".
func TeamRows(teams []models.Team, activities []models.Activity) []TeamRow {
	rows := make([]TeamRow, 0, len(teams))
	for _, t := range teams {
		row := TeamRow{Team: t, ActivityName: "-"}
		if a := models.FindActivity(activities, t.ActivityID); a != nil {
			row.ActivityName = a.Name
			row.Composition = a.TeamComposition
		}
		rows = append(rows, row)
	}
	return rows
}
