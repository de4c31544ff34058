package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/app/services"
	"github.com/yigit/teamreg/internal/middleware"
	"github.com/yigit/teamreg/internal/pkg/apperrors"
)

// Form actions posted to /register
const (
	ActionSelect = "select"
	ActionNext   = "next"
	ActionBack   = "back"
	ActionSubmit = "submit"
)

// memberInputs maps a member list to the input names of its two fields
var memberInputs = map[models.MemberKind][2]string{
	models.MemberTeacher: {"teacherName-%d", "teacherEmail-%d"},
	models.MemberStudent: {"studentName-%d", "studentClass-%d"},
}

// RegistrationController handles posts from the registration form
type RegistrationController struct {
	catalog      services.CatalogService
	registration services.RegistrationService
	logger       zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(
	catalog services.CatalogService,
	registration services.RegistrationService,
	logger zerolog.Logger,
) *RegistrationController {
	return &RegistrationController{
		catalog:      catalog,
		registration: registration,
		logger:       logger,
	}
}

// Register applies the fields posted for the current step, runs the requested
// action and redirects back to the form.
func (c *RegistrationController) Register(ctx *gin.Context) {
	if err := c.catalog.LoadErr(); err != nil {
		c.redirect(ctx)
		return
	}

	sessionID := middleware.SessionID(ctx)
	wf := c.registration.Workflow(sessionID)

	var err error
	switch action := ctx.PostForm("action"); action {
	case ActionSelect:
		err = c.selectActivity(ctx, wf)
	case ActionNext:
		if err = c.applyStep(ctx, wf); err == nil {
			err = wf.Next()
		}
	case ActionBack:
		if err = c.applyStep(ctx, wf); err == nil {
			err = wf.Back()
		}
	case ActionSubmit:
		if err = c.applyStep(ctx, wf); err == nil {
			// Remote failures leave a notice on the workflow
			_, err = c.registration.Submit(ctx.Request.Context(), sessionID)
		}
	default:
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(fmt.Sprintf("unknown action %q", action)))
		return
	}

	if err != nil {
		c.logger.Debug().Err(err).Str("session", sessionID).Msg("Form action not applied")
	}
	c.redirect(ctx)
}

// selectActivity handles both the activity dropdown on step 1 and the
// "apply" button of an activity card. A card may be used from any step; the
// form then returns to step 1 with the chosen activity.
func (c *RegistrationController) selectActivity(ctx *gin.Context, wf *services.Workflow) error {
	for wf.Back() == nil {
	}

	activityID := ctx.PostForm("activityId")
	activity, err := c.catalog.GetActivityByID(activityID)
	if err != nil && !errors.Is(err, apperrors.ErrActivityNotFound) {
		return err
	}

	if _, fromForm := ctx.GetPostForm("school"); fromForm {
		var info services.ActivityInfo
		if err := ctx.ShouldBind(&info); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
		}
		return wf.UpdateActivityInfo(info, activity)
	}
	return wf.SelectActivity(activityID, activity)
}

// applyStep copies the posted fields of the current step into the draft
func (c *RegistrationController) applyStep(ctx *gin.Context, wf *services.Workflow) error {
	view := wf.View()

	switch view.Step {
	case services.StepActivityInfo:
		var info services.ActivityInfo
		if err := ctx.ShouldBind(&info); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
		}
		activity, err := c.catalog.GetActivityByID(info.ActivityID)
		if err != nil && !errors.Is(err, apperrors.ErrActivityNotFound) {
			return err
		}
		return wf.UpdateActivityInfo(info, activity)

	case services.StepContactInfo:
		var info services.ContactInfo
		if err := ctx.ShouldBind(&info); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
		}
		return wf.UpdateContactInfo(info)

	case services.StepMembers:
		if err := c.applyMembers(ctx, wf, models.MemberTeacher, len(view.Draft.Teachers)); err != nil {
			return err
		}
		return c.applyMembers(ctx, wf, models.MemberStudent, len(view.Draft.Students))
	}
	return nil
}

func (c *RegistrationController) applyMembers(ctx *gin.Context, wf *services.Workflow, kind models.MemberKind, n int) error {
	inputs := memberInputs[kind]
	for i := 0; i < n; i++ {
		if v, ok := ctx.GetPostForm(fmt.Sprintf(inputs[0], i)); ok {
			if err := wf.SetMember(kind, i, services.FieldFullName, v); err != nil {
				return err
			}
		}
		if v, ok := ctx.GetPostForm(fmt.Sprintf(inputs[1], i)); ok {
			if err := wf.SetMember(kind, i, services.FieldDetail, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// redirect sends the browser back to the form, keeping the page filters
func (c *RegistrationController) redirect(ctx *gin.Context) {
	q := url.Values{}
	for _, key := range []string{"category", "activity"} {
		if v := ctx.PostForm(key); v != "" && v != services.FilterAll {
			q.Set(key, v)
		}
	}

	target := "/"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	ctx.Redirect(http.StatusSeeOther, target+"#form-section")
}
