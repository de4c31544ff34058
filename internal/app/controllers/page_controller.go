package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/app/services"
	"github.com/yigit/teamreg/internal/app/views"
	"github.com/yigit/teamreg/internal/middleware"
	"github.com/yigit/teamreg/internal/pkg/apperrors"
)

// PageController renders the registration page
type PageController struct {
	catalog      services.CatalogService
	registration services.RegistrationService
	logger       zerolog.Logger
}

// NewPageController creates a new PageController
func NewPageController(
	catalog services.CatalogService,
	registration services.RegistrationService,
	logger zerolog.Logger,
) *PageController {
	return &PageController{
		catalog:      catalog,
		registration: registration,
		logger:       logger,
	}
}

// Index renders the whole site: filters, activity cards, the registration
// form at its current step, the team list and the summary report. Until the
// initial load finishes only the loading view is shown; after a failed load
// only the error view.
func (c *PageController) Index(ctx *gin.Context) {
	ctx.Header("Cache-Control", "no-store")

	if err := c.catalog.LoadErr(); err != nil {
		c.renderUnavailable(ctx, err)
		return
	}

	page, err := c.buildPage(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build registration page")
		c.renderUnavailable(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, views.IndexTemplate, page)
}

func (c *PageController) renderUnavailable(ctx *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrDataUnavailable) {
		loading := views.NewLoadingPage()
		ctx.Header("Retry-After", strconv.Itoa(loading.RefreshSeconds))
		ctx.HTML(http.StatusServiceUnavailable, views.LoadingTemplate, loading)
		return
	}

	c.logger.Debug().Err(err).Msg("Rendering load-failure view")
	ctx.HTML(http.StatusServiceUnavailable, views.ErrorTemplate, views.NewErrorPage(err))
}

func (c *PageController) buildPage(ctx *gin.Context) (*views.Page, error) {
	categoryFilter := ctx.DefaultQuery("category", services.FilterAll)
	activityFilter := ctx.DefaultQuery("activity", services.FilterAll)

	categories, err := c.catalog.Categories()
	if err != nil {
		return nil, err
	}
	activities, err := c.catalog.Activities()
	if err != nil {
		return nil, err
	}
	teams, err := c.catalog.TeamRows()
	if err != nil {
		return nil, err
	}
	report, err := c.catalog.Report()
	if err != nil {
		return nil, err
	}

	wf := c.registration.Workflow(middleware.SessionID(ctx))
	view := wf.View()

	return &views.Page{
		Categories:     categories,
		CategoryFilter: categoryFilter,
		ActivityFilter: activityFilter,
		FilterOptions:  services.ActivitiesInCategory(categoryFilter, activities),
		Activities:     services.FilterActivities(categoryFilter, activityFilter, activities),
		AllActivities:  activities,
		Form:           view,
		FormActivity:   models.FindActivity(activities, view.Draft.ActivityID),
		Notice:         wf.TakeNotice(),
		Teams:          teams,
		Report:         report,
		FileTypes:      models.FileTypes(),
	}, nil
}
