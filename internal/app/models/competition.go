package models

// CompetitionMode describes how an activity is held
type CompetitionMode string

const (
	ModeOnsite CompetitionMode = "Onsite"
	ModeOnline CompetitionMode = "Online"
	ModeHybrid CompetitionMode = "Hybrid"
)

// Category groups activities (academic, technology, arts, sports...)
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamComposition fixes how many teacher and student slots a team must fill
type TeamComposition struct {
	Teachers int `json:"teachers"`
	Students int `json:"students"`
}

// Size returns the total number of members a team of this composition has
func (c TeamComposition) Size() int {
	return c.Teachers + c.Students
}

// Activity is a competition event with fixed team composition and allowed levels
type Activity struct {
	ID              string          `json:"id"`
	CategoryID      string          `json:"categoryId"`
	Name            string          `json:"name"`
	Levels          []string        `json:"levels"`
	Mode            CompetitionMode `json:"mode"`
	TeamComposition TeamComposition `json:"teamComposition"`
}

// HasLevel reports whether level is one of the activity's allowed levels
func (a *Activity) HasLevel(level string) bool {
	for _, l := range a.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// FindActivity returns the activity with the given ID, or nil
func FindActivity(activities []Activity, id string) *Activity {
	for i := range activities {
		if activities[i].ID == id {
			return &activities[i]
		}
	}
	return nil
}
