package bootstrap

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/teamreg/internal/app/controllers"
	appRoutes "github.com/yigit/teamreg/internal/app/routes"
	appServices "github.com/yigit/teamreg/internal/app/services"
	"github.com/yigit/teamreg/internal/app/views"
	"github.com/yigit/teamreg/internal/config"
	appMiddleware "github.com/yigit/teamreg/internal/middleware"
	"github.com/yigit/teamreg/internal/pkg/helpers"
	"github.com/yigit/teamreg/internal/pkg/logger"
	"github.com/yigit/teamreg/internal/pkg/metrics"
	"github.com/yigit/teamreg/internal/pkg/sheets"
	"github.com/yigit/teamreg/internal/pkg/websocket"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Metrics             *metrics.Metrics
	Gateway             *sheets.Client
	CatalogService      appServices.CatalogService      // Interface type
	RegistrationService appServices.RegistrationService // Interface type
	Hub                 *websocket.Hub
	WSHandler           *websocket.Handler

	PageController         *appControllers.PageController
	RegistrationController *appControllers.RegistrationController
	APIController          *appControllers.APIController

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ParseConfig(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies initializes the gateway client, services and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Metrics = metrics.New()

	timeout := helpers.ParseDuration(cfg.Gateway.Timeout, 30*time.Second)
	deps.Gateway = sheets.NewClient(cfg.Gateway.URL, timeout, deps.Metrics, lgr)
	if !deps.Gateway.Configured() {
		lgr.Warn().Msg("Gateway URL is not configured; the site will show the load-failure view")
	}

	deps.Hub = websocket.NewHub(deps.Metrics, logger.Component("feed"))
	deps.WSHandler = websocket.NewHandler(deps.Hub, !cfg.IsProduction(), logger.Component("feed"))

	deps.CatalogService = appServices.NewCatalogService(deps.Gateway, logger.Component("catalog"))
	deps.RegistrationService = appServices.NewRegistrationService(
		deps.CatalogService,
		deps.Gateway,
		deps.Hub,
		deps.Metrics,
		logger.Component("registration"),
	)

	deps.PageController = appControllers.NewPageController(deps.CatalogService, deps.RegistrationService, lgr)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.CatalogService, deps.RegistrationService, lgr)
	deps.APIController = appControllers.NewAPIController(deps.CatalogService, deps.RegistrationService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.Component("http")))

	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Draft sessions only matter to the page and the form
	site := router.Group("")
	site.Use(appMiddleware.DraftSession(cfg.Session.CookieName, cfg.Session.SecureCookie))

	appRoutes.SetupRouter(router,
		site,
		deps.PageController,
		deps.RegistrationController,
		deps.APIController,
		deps.WSHandler,
		deps.CatalogService.LoadErr,
	)

	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
