// internal/api/api.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"

	"github.com/ahvenlahti/arkiv/internal/conf"
	"github.com/ahvenlahti/arkiv/internal/datastore"
	"github.com/ahvenlahti/arkiv/internal/logging"
	"github.com/ahvenlahti/arkiv/internal/observability"
)

// Controller manages the API routes and handlers
type Controller struct {
	Echo           *echo.Echo
	Group          *echo.Group
	DS             datastore.Interface
	Settings       *conf.Settings
	metrics        *observability.Metrics
	recordCache    *cache.Cache // Cache for record queries
	apiLogger      *slog.Logger // Structured logger for API operations
	apiLoggerClose func() error // Function to close the log file
}

// New creates a new API controller and registers its routes on the given
// echo instance.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings, metrics *observability.Metrics) *Controller {
	c := &Controller{
		Echo:        e,
		DS:          ds,
		Settings:    settings,
		metrics:     metrics,
		recordCache: cache.New(5*time.Minute, 10*time.Minute),
		apiLogger:   logging.ForService("api"),
	}

	if settings.WebServer.Log.Enabled {
		fileLogger, closeFunc, err := logging.NewFileLogger(settings.WebServer.Log.Path, "api", slog.LevelInfo)
		if err != nil {
			logging.Warn("Failed to set up API file logger, falling back to default", "error", err)
		} else {
			c.apiLogger = fileLogger
			c.apiLoggerClose = closeFunc
		}
	}

	c.Group = e.Group("/api/v1")
	c.initRoutes()

	return c
}

// Shutdown releases resources held by the controller.
func (c *Controller) Shutdown() error {
	if c.apiLoggerClose != nil {
		return c.apiLoggerClose()
	}
	return nil
}

// initRoutes registers all API endpoints.
func (c *Controller) initRoutes() {
	c.Group.GET("/health", c.Health)

	c.Group.GET("/records", c.ListRecords)
	c.Group.POST("/records", c.CreateRecord)
	c.Group.GET("/records/search", c.SearchRecords)
	c.Group.GET("/records/:id", c.GetRecord)
	c.Group.POST("/records/:id/annotations", c.AnnotateRecord)

	// Removal endpoints exist so that clients get an explicit rejection
	// instead of a 404; both are guarded and always refuse.
	c.Group.DELETE("/records/:id", c.DeleteRecord)
	c.Group.DELETE("/records", c.BulkDeleteRecords)

	c.Group.GET("/purges", c.ListPurgeAudits)

	if c.metrics != nil {
		c.Echo.GET("/metrics", echo.WrapHandler(c.metrics.Handler()))
	}
}

// Health returns a minimal liveness response.
func (c *Controller) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// logAPIRequest logs an API operation if the structured logger is configured.
func (c *Controller) logAPIRequest(msg string, args ...any) {
	if c.apiLogger != nil {
		c.apiLogger.Info(msg, args...)
	}
}
