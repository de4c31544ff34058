package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/app/models/dto"
	"github.com/yigit/teamreg/internal/app/services"
	"github.com/yigit/teamreg/internal/middleware"
	"github.com/yigit/teamreg/internal/pkg/helpers"
)

// APIController exposes the loaded registration data as JSON
type APIController struct {
	catalog      services.CatalogService
	registration services.RegistrationService
}

// NewAPIController creates a new APIController
func NewAPIController(catalog services.CatalogService, registration services.RegistrationService) *APIController {
	return &APIController{
		catalog:      catalog,
		registration: registration,
	}
}

// GetCategories lists the activity categories
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Category}
// @Failure 503 {object} dto.ErrorResponse "Initial data load failed"
// @Router /categories [get]
func (c *APIController) GetCategories(ctx *gin.Context) {
	categories, err := c.catalog.Categories()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(categories))
}

// GetActivities lists the activities matching the category and activity filters
// @Summary List activities
// @Tags catalog
// @Produce json
// @Param category query string false "Category ID or \"all\""
// @Param activity query string false "Activity ID or \"all\""
// @Success 200 {object} dto.APIResponse{data=[]models.Activity}
// @Failure 503 {object} dto.ErrorResponse "Initial data load failed"
// @Router /activities [get]
func (c *APIController) GetActivities(ctx *gin.Context) {
	activities, err := c.catalog.FilterActivities(
		ctx.DefaultQuery("category", services.FilterAll),
		ctx.DefaultQuery("activity", services.FilterAll),
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(activities))
}

// GetTeams lists the registered teams with their activity names, one page at a time
// @Summary List teams
// @Tags teams
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.TeamListResponse}
// @Failure 503 {object} dto.ErrorResponse "Initial data load failed"
// @Router /teams [get]
func (c *APIController) GetTeams(ctx *gin.Context) {
	rows, err := c.catalog.TeamRows()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	start, end := helpers.CalculateSliceIndices(page, size, len(rows))

	teams := make([]dto.TeamResponse, 0, end-start)
	for _, row := range rows[start:end] {
		teams = append(teams, dto.TeamResponse{Team: row.Team, ActivityName: row.ActivityName})
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.TeamListResponse{
		Teams:      teams,
		Pagination: helpers.NewPaginationInfo(len(rows), page, size),
	}))
}

// GetReport returns the per-activity registration summary
// @Summary Registration summary
// @Tags teams
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ReportResponse}
// @Failure 503 {object} dto.ErrorResponse "Initial data load failed"
// @Router /report [get]
func (c *APIController) GetReport(ctx *gin.Context) {
	rows, err := c.catalog.Report()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	report := make([]dto.ReportResponse, 0, len(rows))
	for _, row := range rows {
		report = append(report, dto.ReportResponse{
			ActivityName: row.ActivityName,
			Teams:        row.Teams,
			Teachers:     row.Teachers,
			Students:     row.Students,
			Total:        row.Total,
		})
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report))
}

// CreateTeam registers a complete team in one request
// @Summary Register a team
// @Description Validates the team against its activity and forwards it to the registration spreadsheet
// @Tags teams
// @Accept json
// @Produce json
// @Param request body models.TeamPayload true "Team registration"
// @Success 201 {object} dto.APIResponse{data=dto.TeamResponse} "Team registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid registration"
// @Failure 502 {object} dto.ErrorResponse "Registration endpoint rejected the team"
// @Failure 503 {object} dto.ErrorResponse "Initial data load failed"
// @Router /teams [post]
func (c *APIController) CreateTeam(ctx *gin.Context) {
	payload := ctx.MustGet(middleware.ValidatedBodyKey).(*models.TeamPayload)

	team, err := c.registration.SubmitTeam(ctx.Request.Context(), *payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.TeamResponse{Team: *team, ActivityName: "-"}
	if activity, err := c.catalog.GetActivityByID(team.ActivityID); err == nil {
		resp.ActivityName = activity.Name
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}
