package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/teamreg/internal/app/controllers"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/middleware"
	"github.com/yigit/teamreg/internal/pkg/websocket"
)

// SetupRouter configures all application routes. site carries the draft
// session middleware. loadErr reports the outcome of the initial data load;
// the JSON API refuses requests while it returns an error.
func SetupRouter(
	router *gin.Engine,
	site *gin.RouterGroup,
	pageController *controllers.PageController,
	registrationController *controllers.RegistrationController,
	apiController *controllers.APIController,
	wsHandler *websocket.Handler,
	loadErr func() error,
) {
	// --- Server-rendered site ---
	site.GET("/", pageController.Index)
	site.POST("/register", registrationController.Register)

	// --- Live team feed ---
	router.GET("/ws/teams", wsHandler.HandleConnection)

	// API version group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireData(loadErr))
	{
		v1.GET("/categories", apiController.GetCategories)
		v1.GET("/activities", apiController.GetActivities)
		v1.GET("/report", apiController.GetReport)

		teams := v1.Group("/teams")
		{
			teams.GET("", apiController.GetTeams)
			teams.POST("",
				middleware.ValidateRequest(func() interface{} { return &models.TeamPayload{} }),
				apiController.CreateTeam,
			)
		}
	}
}
