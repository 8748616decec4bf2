package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PizzaTimeVN/pizza-backend/internal/config"
	"github.com/PizzaTimeVN/pizza-backend/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(reports *handlers.ReportsHandler, inv *handlers.InventoryHandler, authCfg config.AuthConfig, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Pizza Time Owner API",
			"version": "1.0.0",
			"status":  "online",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", BasicAuth(authCfg))
	{
		api.POST("/sales", reports.GetSales)
		api.GET("/sales/stores", reports.ListStores)
		api.PATCH("/sales/channel", reports.UpdateSalesChannel)
		api.POST("/quantity", reports.GetQuantity)
		api.POST("/exports", reports.GetExports)

		api.POST("/inventory/delta", inv.ApplyDelta)
		api.POST("/inventory/adjust", inv.AdjustSnapshot)
		api.GET("/inventory/:store", inv.GetSnapshot)
		api.POST("/cake-check", inv.RunCakeCheck)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
