package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/order-notifier/internal/config"
	domainRepo "github.com/sangkips/order-notifier/internal/domain/repository"
	"github.com/sangkips/order-notifier/internal/presentation/http/dto/response"
	"github.com/sangkips/order-notifier/internal/presentation/http/handler"
	"github.com/sangkips/order-notifier/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	OrderWebhook *handler.OrderWebhookHandler
	LogWebhook   *handler.LogWebhookHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg         *config.Config
	Logger      *slog.Logger
	Store       domainRepo.OrderStore
	RateLimiter *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(response.MethodNotAllowed)

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":      "ok",
			"service":     deps.Cfg.App.Name,
			"persistence": deps.Store.Enabled(),
			"line":        deps.Cfg.Line.Token != "" && deps.Cfg.Line.To != "",
		})
	})

	// Order deliveries are never rate limited.
	router.POST("/order-webhook", h.OrderWebhook.Receive)
	router.OPTIONS("/order-webhook", h.OrderWebhook.Preflight)

	stubs := router.Group("")
	if deps.RateLimiter != nil {
		stubs.Use(deps.RateLimiter.Middleware())
	}
	stubs.POST("/line-webhook", h.LogWebhook.LineWebhook)
	stubs.POST("/event-webhook", h.LogWebhook.EventWebhook)

	return router
}
