package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kiosk-sales-api/internal/handler/api"
	"kiosk-sales-api/internal/handler/middleware"
	"kiosk-sales-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	limiter *middleware.ClientRateLimiter,
	saleHandler *api.SaleHandler,
	commerceHandler *api.CommerceHandler,
) {
	setupMiddleware(engine, cfg, logger, limiter)
	setupRoutes(engine, saleHandler, commerceHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, limiter *middleware.ClientRateLimiter) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger.GetSlogLogger()))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger.GetSlogLogger()))
	engine.Use(logger.LoggingMiddleware())
	if cfg.RateLimit.Enabled && limiter != nil {
		engine.Use(limiter.Middleware())
	}
	engine.Use(middleware.ErrorHandler())
	engine.NoRoute(middleware.NoRoute)
}

func setupRoutes(engine *gin.Engine, saleHandler *api.SaleHandler, commerceHandler *api.CommerceHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	sales := engine.Group("/sales")
	{
		addRoutes(sales, []route{
			{Method: http.MethodPost, Path: "", Handler: saleHandler.Register},
			{Method: http.MethodPost, Path: "/register", Handler: saleHandler.Register},
		})
	}

	commerce := engine.Group("/commerce")
	{
		addRoutes(commerce, []route{
			{Method: http.MethodPost, Path: "/settle", Handler: commerceHandler.Settle},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
