package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/pkg/apperrors"
)

func mathActivity() *models.Activity {
	return &models.Activity{
		ID:              "act-1",
		CategoryID:      "cat-1",
		Name:            "Math",
		Levels:          []string{"ป.4-6", "ม.1-3"},
		Mode:            models.ModeOnsite,
		TeamComposition: models.TeamComposition{Teachers: 1, Students: 2},
	}
}

// completeWorkflow walks a workflow to step 3 with every field filled
func completeWorkflow(t *testing.T, activity *models.Activity) *Workflow {
	t.Helper()
	w := NewWorkflow()
	require.NoError(t, w.UpdateActivityInfo(ActivityInfo{ActivityID: activity.ID, School: "Wittaya", TeamName: "Quick Minds"}, activity))
	require.NoError(t, w.UpdateActivityInfo(ActivityInfo{ActivityID: activity.ID, Level: activity.Levels[0], School: "Wittaya", TeamName: "Quick Minds"}, activity))
	require.NoError(t, w.Next())
	require.NoError(t, w.UpdateContactInfo(ContactInfo{ContactName: "Somchai", ContactPhone: "0812345678", ContactEmail: "somchai@example.com"}))
	require.NoError(t, w.Next())
	for i := 0; i < activity.TeamComposition.Teachers; i++ {
		require.NoError(t, w.SetMember(models.MemberTeacher, i, FieldFullName, "Teacher"))
		require.NoError(t, w.SetMember(models.MemberTeacher, i, FieldDetail, "teacher@example.com"))
	}
	for i := 0; i < activity.TeamComposition.Students; i++ {
		require.NoError(t, w.SetMember(models.MemberStudent, i, FieldFullName, "Student"))
		require.NoError(t, w.SetMember(models.MemberStudent, i, FieldDetail, "P.6/1"))
	}
	return w
}

func TestNewWorkflow(t *testing.T) {
	v := NewWorkflow().View()

	assert.Equal(t, StepActivityInfo, v.Step)
	assert.Equal(t, Draft{}, v.Draft)
	assert.False(t, v.Submitting)
	assert.False(t, v.CanAdvance)
}

func TestSelectActivity_ResetsLevelAndMembers(t *testing.T) {
	w := NewWorkflow()
	first := mathActivity()
	require.NoError(t, w.UpdateActivityInfo(ActivityInfo{ActivityID: first.ID, School: "X"}, first))
	require.NoError(t, w.UpdateActivityInfo(ActivityInfo{ActivityID: first.ID, Level: "ป.4-6", School: "X"}, first))

	second := &models.Activity{ID: "act-2", Levels: []string{"ม.4-6"}, TeamComposition: models.TeamComposition{Teachers: 2, Students: 3}}
	require.NoError(t, w.SelectActivity(second.ID, second))

	d := w.View().Draft
	assert.Equal(t, "act-2", d.ActivityID)
	assert.Equal(t, "", d.Level)
	assert.Equal(t, "X", d.School)
	require.Len(t, d.Teachers, 2)
	require.Len(t, d.Students, 3)
	for _, m := range append(d.Teachers, d.Students...) {
		assert.Equal(t, models.TeamMember{FullName: "", Detail: ""}, m)
	}
}

func TestUpdateActivityInfo_ChangedActivityDropsPostedLevel(t *testing.T) {
	w := NewWorkflow()
	activity := mathActivity()

	require.NoError(t, w.UpdateActivityInfo(ActivityInfo{ActivityID: activity.ID, Level: "ป.4-6", School: "X"}, activity))

	d := w.View().Draft
	assert.Equal(t, "", d.Level)
	assert.Len(t, d.Teachers, 1)
	assert.Len(t, d.Students, 2)
}

func TestSelectActivity_UnknownKeepsMembers(t *testing.T) {
	w := NewWorkflow()
	activity := mathActivity()
	require.NoError(t, w.SelectActivity(activity.ID, activity))

	require.NoError(t, w.SelectActivity("act-404", nil))

	d := w.View().Draft
	assert.Equal(t, "act-404", d.ActivityID)
	assert.Len(t, d.Students, 2)
}

func TestCanAdvance_Step1(t *testing.T) {
	tests := []struct {
		name string
		info ActivityInfo
		want bool
	}{
		{"missing level", ActivityInfo{ActivityID: "act-1", Level: "", School: "X"}, false},
		{"missing school", ActivityInfo{ActivityID: "act-1", Level: "ป.4-6"}, false},
		{"missing activity", ActivityInfo{Level: "ป.4-6", School: "X"}, false},
		{"complete", ActivityInfo{ActivityID: "act-1", Level: "ป.4-6", School: "X"}, true},
		{"team name optional", ActivityInfo{ActivityID: "act-1", Level: "ป.4-6", School: "X", TeamName: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorkflow()
			w.draft.ActivityInfo = tt.info
			assert.Equal(t, tt.want, w.CanAdvance())

			err := w.Next()
			if tt.want {
				assert.NoError(t, err)
				assert.Equal(t, StepContactInfo, w.View().Step)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrStepIncomplete)
				assert.Equal(t, StepActivityInfo, w.View().Step)
			}
		})
	}
}

func TestCanAdvance_Step2(t *testing.T) {
	w := NewWorkflow()
	w.draft.ActivityInfo = ActivityInfo{ActivityID: "act-1", Level: "ป.4-6", School: "X"}
	require.NoError(t, w.Next())

	require.NoError(t, w.UpdateContactInfo(ContactInfo{ContactName: "A", ContactPhone: "1"}))
	assert.ErrorIs(t, w.Next(), apperrors.ErrStepIncomplete)

	require.NoError(t, w.UpdateContactInfo(ContactInfo{ContactName: "A", ContactPhone: "1", ContactEmail: "a@b.c"}))
	require.NoError(t, w.Next())
	assert.Equal(t, StepMembers, w.View().Step)
	assert.False(t, w.CanAdvance())
	assert.ErrorIs(t, w.Next(), apperrors.ErrInvalidStep)
}

func TestBack_PreservesDraft(t *testing.T) {
	w := completeWorkflow(t, mathActivity())
	before := w.View().Draft

	require.NoError(t, w.Back())
	assert.Equal(t, StepContactInfo, w.View().Step)
	require.NoError(t, w.Back())
	assert.Equal(t, StepActivityInfo, w.View().Step)
	assert.ErrorIs(t, w.Back(), apperrors.ErrInvalidStep)

	assert.Equal(t, before, w.View().Draft)
}

func TestEditsAreBoundToTheirStep(t *testing.T) {
	w := NewWorkflow()

	assert.ErrorIs(t, w.UpdateContactInfo(ContactInfo{}), apperrors.ErrInvalidStep)
	assert.ErrorIs(t, w.SetMember(models.MemberStudent, 0, FieldFullName, "x"), apperrors.ErrInvalidStep)
}

func TestSetMember_Errors(t *testing.T) {
	w := completeWorkflow(t, mathActivity())

	assert.ErrorIs(t, w.SetMember(models.MemberStudent, 2, FieldFullName, "x"), apperrors.ErrMemberIndex)
	assert.ErrorIs(t, w.SetMember(models.MemberTeacher, -1, FieldFullName, "x"), apperrors.ErrMemberIndex)
	assert.ErrorIs(t, w.SetMember("coaches", 0, FieldFullName, "x"), apperrors.ErrBadRequest)
	assert.ErrorIs(t, w.SetMember(models.MemberStudent, 0, "age", "x"), apperrors.ErrBadRequest)
}

func TestBeginSubmit_RequiresFilledMembers(t *testing.T) {
	activity := mathActivity()
	w := completeWorkflow(t, activity)
	require.NoError(t, w.SetMember(models.MemberStudent, 1, FieldDetail, ""))

	_, err := w.BeginSubmit(activity)
	assert.ErrorIs(t, err, apperrors.ErrStepIncomplete)
	assert.False(t, w.View().Submitting)
}

func TestBeginSubmit_WrongStepOrActivity(t *testing.T) {
	activity := mathActivity()

	_, err := NewWorkflow().BeginSubmit(activity)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStep)

	w := completeWorkflow(t, activity)
	_, err = w.BeginSubmit(nil)
	assert.ErrorIs(t, err, apperrors.ErrActivityNotFound)
}

func TestBeginSubmit_SingleFlight(t *testing.T) {
	activity := mathActivity()
	w := completeWorkflow(t, activity)

	payload, err := w.BeginSubmit(activity)
	require.NoError(t, err)
	assert.Len(t, payload.Teachers, 1)
	assert.Len(t, payload.Students, 2)
	assert.Equal(t, "somchai@example.com", payload.Contact.Email)

	_, err = w.BeginSubmit(activity)
	assert.ErrorIs(t, err, apperrors.ErrSubmitInProgress)
	assert.ErrorIs(t, w.Back(), apperrors.ErrSubmitInProgress)
	assert.ErrorIs(t, w.SetMember(models.MemberStudent, 0, FieldFullName, "x"), apperrors.ErrSubmitInProgress)
}

func TestFinishSubmit_Success(t *testing.T) {
	activity := mathActivity()
	w := completeWorkflow(t, activity)
	_, err := w.BeginSubmit(activity)
	require.NoError(t, err)

	w.FinishSubmit(&models.Team{ID: "T010"}, nil, "")

	v := w.View()
	assert.Equal(t, StepActivityInfo, v.Step)
	assert.Equal(t, Draft{}, v.Draft)
	assert.False(t, v.Submitting)

	n := w.TakeNotice()
	require.NotNil(t, n)
	assert.Equal(t, NoticeSuccess, n.Kind)
	assert.Contains(t, n.Message, "Quick Minds")
	assert.Nil(t, w.TakeNotice())
}

func TestFinishSubmit_FailureKeepsDraft(t *testing.T) {
	activity := mathActivity()
	w := completeWorkflow(t, activity)
	before := w.View()

	_, err := w.BeginSubmit(activity)
	require.NoError(t, err)
	w.FinishSubmit(nil, errors.New("network down"), SubmitFailedMessage)

	after := w.View()
	assert.Equal(t, before.Step, after.Step)
	assert.Equal(t, before.Draft, after.Draft)
	assert.False(t, after.Submitting)

	n := w.TakeNotice()
	require.NotNil(t, n)
	assert.Equal(t, NoticeError, n.Kind)

	// Manual retry is possible
	_, err = w.BeginSubmit(activity)
	assert.NoError(t, err)
}

func TestViewIsACopy(t *testing.T) {
	w := completeWorkflow(t, mathActivity())

	v := w.View()
	v.Draft.Students[0].FullName = "changed"

	assert.Equal(t, "Student", w.View().Draft.Students[0].FullName)
}
