package services

import (
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/pkg/apperrors"
)

var validate = validator.New()

// Step is a page of the registration form
type Step int

const (
	StepActivityInfo Step = iota + 1
	StepContactInfo
	StepMembers
)

// Steps lists the form steps in order
func Steps() []Step {
	return []Step{StepActivityInfo, StepContactInfo, StepMembers}
}

// Member field names accepted by SetMember
const (
	FieldFullName = "fullName"
	FieldDetail   = "detail"
)

// ActivityInfo is collected on step 1
type ActivityInfo struct {
	ActivityID string `form:"activityId" validate:"required"`
	Level      string `form:"level" validate:"required"`
	School     string `form:"school" validate:"required"`
	TeamName   string `form:"teamName"`
}

// ContactInfo is collected on step 2
type ContactInfo struct {
	ContactName  string `form:"contactName" validate:"required"`
	ContactPhone string `form:"contactPhone" validate:"required"`
	ContactEmail string `form:"contactEmail" validate:"required"`
}

// Draft is the in-progress registration
type Draft struct {
	ActivityInfo
	ContactInfo
	Teachers []models.TeamMember `validate:"dive"`
	Students []models.TeamMember `validate:"dive"`
}

// ActivityInfoComplete reports whether step 1 may be left
func (d *Draft) ActivityInfoComplete() bool {
	return validate.Struct(d.ActivityInfo) == nil
}

// ContactInfoComplete reports whether step 2 may be left
func (d *Draft) ContactInfoComplete() bool {
	return validate.Struct(d.ContactInfo) == nil
}

// MembersComplete reports whether every member slot has a name and detail
func (d *Draft) MembersComplete() bool {
	for _, m := range d.Teachers {
		if validate.Struct(m) != nil {
			return false
		}
	}
	for _, m := range d.Students {
		if validate.Struct(m) != nil {
			return false
		}
	}
	return true
}

// Payload builds the body sent to the spreadsheet endpoint
func (d *Draft) Payload() models.TeamPayload {
	return models.TeamPayload{
		ActivityID: d.ActivityID,
		TeamName:   d.TeamName,
		School:     d.School,
		Level:      d.Level,
		Contact: models.Contact{
			Name:  d.ContactName,
			Phone: d.ContactPhone,
			Email: d.ContactEmail,
		},
		Teachers: slices.Clone(d.Teachers),
		Students: slices.Clone(d.Students),
	}
}

func (d Draft) clone() Draft {
	d.Teachers = slices.Clone(d.Teachers)
	d.Students = slices.Clone(d.Students)
	return d
}

func placeholders(n int) []models.TeamMember {
	if n < 0 {
		n = 0
	}
	return make([]models.TeamMember, n)
}

// NoticeKind tells success notices from failures
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-shot message shown after a submit attempt
type Notice struct {
	Kind    NoticeKind
	Message string
}

// WorkflowView is a read-only copy of the workflow state for rendering
type WorkflowView struct {
	Step       Step
	Draft      Draft
	Submitting bool
	CanAdvance bool
}

// Workflow drives one registration draft through the three form steps.
// It is safe for concurrent use; a submit in flight blocks further submits
// and draft edits until FinishSubmit.
type Workflow struct {
	mu         sync.Mutex
	step       Step
	draft      Draft
	submitting bool
	notice     *Notice
}

// NewWorkflow returns a workflow on step 1 with an empty draft
func NewWorkflow() *Workflow {
	return &Workflow{step: StepActivityInfo}
}

// View returns a copy of the current state
func (w *Workflow) View() WorkflowView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return WorkflowView{
		Step:       w.step,
		Draft:      w.draft.clone(),
		Submitting: w.submitting,
		CanAdvance: w.canAdvanceLocked(),
	}
}

// CanAdvance reports whether the "next" action is enabled
func (w *Workflow) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canAdvanceLocked()
}

func (w *Workflow) canAdvanceLocked() bool {
	switch w.step {
	case StepActivityInfo:
		return w.draft.ActivityInfoComplete()
	case StepContactInfo:
		return w.draft.ContactInfoComplete()
	default:
		return false
	}
}

// SelectActivity sets the chosen activity on step 1. When the activity is
// known, the level is cleared and the member lists are rebuilt as empty
// slots matching its team composition.
func (w *Workflow) SelectActivity(activityID string, activity *models.Activity) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(StepActivityInfo); err != nil {
		return err
	}
	w.selectActivityLocked(activityID, activity)
	return nil
}

func (w *Workflow) selectActivityLocked(activityID string, activity *models.Activity) {
	w.draft.ActivityID = activityID
	if activity == nil {
		return
	}
	w.draft.Level = ""
	w.draft.Teachers = placeholders(activity.TeamComposition.Teachers)
	w.draft.Students = placeholders(activity.TeamComposition.Students)
}

// UpdateActivityInfo applies the step 1 fields. A changed activity goes
// through SelectActivity first, which discards any level posted with it.
func (w *Workflow) UpdateActivityInfo(info ActivityInfo, activity *models.Activity) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(StepActivityInfo); err != nil {
		return err
	}

	if info.ActivityID != w.draft.ActivityID {
		w.selectActivityLocked(info.ActivityID, activity)
		if activity != nil {
			info.Level = ""
		}
	}
	w.draft.Level = info.Level
	w.draft.School = info.School
	w.draft.TeamName = info.TeamName
	return nil
}

// UpdateContactInfo applies the step 2 fields
func (w *Workflow) UpdateContactInfo(info ContactInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(StepContactInfo); err != nil {
		return err
	}
	w.draft.ContactInfo = info
	return nil
}

// SetMember edits one field of one member slot on step 3
func (w *Workflow) SetMember(kind models.MemberKind, index int, field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(StepMembers); err != nil {
		return err
	}

	var members []models.TeamMember
	switch kind {
	case models.MemberTeacher:
		members = w.draft.Teachers
	case models.MemberStudent:
		members = w.draft.Students
	default:
		return fmt.Errorf("%w: unknown member kind %q", apperrors.ErrBadRequest, kind)
	}
	if index < 0 || index >= len(members) {
		return fmt.Errorf("%w: %s[%d]", apperrors.ErrMemberIndex, kind, index)
	}

	switch field {
	case FieldFullName:
		members[index].FullName = value
	case FieldDetail:
		members[index].Detail = value
	default:
		return fmt.Errorf("%w: unknown member field %q", apperrors.ErrBadRequest, field)
	}
	return nil
}

// Next moves forward one step when the current step is complete
func (w *Workflow) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitting {
		return apperrors.ErrSubmitInProgress
	}
	if w.step >= StepMembers {
		return apperrors.ErrInvalidStep
	}
	if !w.canAdvanceLocked() {
		return apperrors.ErrStepIncomplete
	}
	w.step++
	return nil
}

// Back moves to the previous step. The draft is kept as is.
func (w *Workflow) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitting {
		return apperrors.ErrSubmitInProgress
	}
	if w.step <= StepActivityInfo {
		return apperrors.ErrInvalidStep
	}
	w.step--
	return nil
}

// BeginSubmit marks a submission in flight and returns its payload.
// While one is in flight every further call returns ErrSubmitInProgress.
func (w *Workflow) BeginSubmit(activity *models.Activity) (models.TeamPayload, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitting {
		return models.TeamPayload{}, apperrors.ErrSubmitInProgress
	}
	if w.step != StepMembers {
		return models.TeamPayload{}, apperrors.ErrInvalidStep
	}
	if activity == nil || activity.ID != w.draft.ActivityID {
		return models.TeamPayload{}, fmt.Errorf("%w: %s", apperrors.ErrActivityNotFound, w.draft.ActivityID)
	}
	if !w.draft.ActivityInfoComplete() || !w.draft.ContactInfoComplete() || !w.draft.MembersComplete() {
		return models.TeamPayload{}, apperrors.ErrStepIncomplete
	}

	w.submitting = true
	return w.draft.Payload(), nil
}

// FinishSubmit ends the in-flight submission. Success resets the workflow
// to an empty step 1; failure keeps the draft and step for a manual retry.
func (w *Workflow) FinishSubmit(team *models.Team, err error, failureMessage string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if err != nil || team == nil {
		w.notice = &Notice{Kind: NoticeError, Message: failureMessage}
		return
	}

	teamName := w.draft.TeamName
	w.step = StepActivityInfo
	w.draft = Draft{}
	w.notice = &Notice{
		Kind:    NoticeSuccess,
		Message: fmt.Sprintf("ส่งใบสมัครสำหรับทีม \"%s\" เรียบร้อยแล้ว!", teamName),
	}
}

// TakeNotice returns the pending notice once and clears it
func (w *Workflow) TakeNotice() *Notice {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := w.notice
	w.notice = nil
	return n
}

func (w *Workflow) editableLocked(step Step) error {
	if w.submitting {
		return apperrors.ErrSubmitInProgress
	}
	if w.step != step {
		return apperrors.ErrInvalidStep
	}
	return nil
}
