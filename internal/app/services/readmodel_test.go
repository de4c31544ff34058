package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/teamreg/internal/app/models"
)

func testActivities() []models.Activity {
	return []models.Activity{
		{ID: "act-1", CategoryID: "cat-1", Name: "Math", Levels: []string{"ป.4-6", "ม.1-3"}, Mode: models.ModeOnsite, TeamComposition: models.TeamComposition{Teachers: 1, Students: 2}},
		{ID: "act-2", CategoryID: "cat-2", Name: "Coding", Levels: []string{"ม.1-3", "ม.4-6"}, Mode: models.ModeOnline, TeamComposition: models.TeamComposition{Teachers: 1, Students: 3}},
		{ID: "act-3", CategoryID: "cat-1", Name: "Science", Levels: []string{"ม.4-6"}, Mode: models.ModeHybrid, TeamComposition: models.TeamComposition{Teachers: 2, Students: 2}},
	}
}

func ids(activities []models.Activity) []string {
	out := make([]string, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.ID)
	}
	return out
}

func member(name string) models.TeamMember {
	return models.TeamMember{FullName: name, Detail: name + "-detail"}
}

func TestFilterActivities(t *testing.T) {
	activities := testActivities()

	tests := []struct {
		name       string
		categoryID string
		activityID string
		want       []string
	}{
		{"all wildcards", FilterAll, FilterAll, []string{"act-1", "act-2", "act-3"}},
		{"empty filters", "", "", []string{"act-1", "act-2", "act-3"}},
		{"by category", "cat-1", FilterAll, []string{"act-1", "act-3"}},
		{"by activity", FilterAll, "act-2", []string{"act-2"}},
		{"both match", "cat-1", "act-3", []string{"act-3"}},
		{"both disagree", "cat-2", "act-3", []string{}},
		{"unknown category", "cat-9", FilterAll, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterActivities(tt.categoryID, tt.activityID, activities)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterActivities_AllReturnsInputUnchanged(t *testing.T) {
	activities := testActivities()

	got := FilterActivities(FilterAll, FilterAll, activities)
	assert.Equal(t, activities, got)
}

func TestActivitiesInCategory(t *testing.T) {
	got := ActivitiesInCategory("cat-1", testActivities())
	assert.Equal(t, []string{"act-1", "act-3"}, ids(got))
}

func TestSummarizeByActivity(t *testing.T) {
	activities := []models.Activity{{ID: "act-1", Name: "Math"}}
	teams := []models.Team{
		{ActivityID: "act-1", Teachers: []models.TeamMember{member("t1")}, Students: []models.TeamMember{member("s1"), member("s2")}},
		{ActivityID: "act-1", Teachers: []models.TeamMember{member("t2")}, Students: []models.TeamMember{member("s3")}},
	}

	got := SummarizeByActivity(teams, activities)
	assert.Equal(t, map[string]ActivitySummary{
		"Math": {Teams: 2, Teachers: 2, Students: 3, Total: 5},
	}, got)
}

func TestSummarizeByActivity_SkipsUnknownActivity(t *testing.T) {
	activities := []models.Activity{{ID: "act-1", Name: "Math"}}
	teams := []models.Team{
		{ActivityID: "act-404", Teachers: []models.TeamMember{member("t1")}},
		{ActivityID: "act-1", Students: []models.TeamMember{member("s1")}},
	}

	got := SummarizeByActivity(teams, activities)
	require.Len(t, got, 1)
	assert.Equal(t, ActivitySummary{Teams: 1, Students: 1, Total: 1}, got["Math"])
}

func TestSummarizeByActivity_SameNameMerges(t *testing.T) {
	activities := []models.Activity{
		{ID: "act-1", Name: "Quiz"},
		{ID: "act-2", Name: "Quiz"},
	}
	teams := []models.Team{
		{ActivityID: "act-1", Students: []models.TeamMember{member("a")}},
		{ActivityID: "act-2", Students: []models.TeamMember{member("b"), member("c")}},
	}

	got := SummarizeByActivity(teams, activities)
	assert.Equal(t, ActivitySummary{Teams: 2, Students: 3, Total: 3}, got["Quiz"])

	rows := ReportRows(got, activities)
	require.Len(t, rows, 1)
	assert.Equal(t, "Quiz", rows[0].ActivityName)
}

func TestReportRows_FollowsActivityOrder(t *testing.T) {
	activities := testActivities()
	summary := map[string]ActivitySummary{
		"Science": {Teams: 1},
		"Math":    {Teams: 2},
	}

	rows := ReportRows(summary, activities)
	require.Len(t, rows, 2)
	assert.Equal(t, "Math", rows[0].ActivityName)
	assert.Equal(t, 2, rows[0].Teams)
	assert.Equal(t, "Science", rows[1].ActivityName)
}

func TestTeamRows(t *testing.T) {
	teams := []models.Team{
		{ID: "T001", ActivityID: "act-2"},
		{ID: "T002", ActivityID: "act-404"},
	}

	rows := TeamRows(teams, testActivities())
	require.Len(t, rows, 2)
	assert.Equal(t, "Coding", rows[0].ActivityName)
	assert.Equal(t, testActivities()[1].TeamComposition, rows[0].Composition)
	assert.Equal(t, "-", rows[1].ActivityName)
	assert.Zero(t, rows[1].Composition)
}
