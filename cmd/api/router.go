package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wrestling-admin/internal/shared/middleware"
	"wrestling-admin/internal/shared/response"
	"wrestling-admin/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = c.Config.Image.MaxBytes + 1<<20

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins...),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/capabilities", capabilitiesHandler(c))

		c.WrestlerHandler.RegisterRoutes(v1)
		c.EntityHandler.RegisterRoutes(v1)
		c.ImageHandler.RegisterRoutes(v1)
	}

	return router
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
// Chỉ database quyết định status code; Redis và MinIO lỗi thì "degraded"
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := "ok"
		services := gin.H{}

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			status = "degraded"
		}
		services["database"] = dbStatus
		if stats, err := appCtx.DB.Stats(); err == nil {
			services["database_pool"] = stats
		}

		redisStatus := "disabled"
		if appCtx.Redis != nil {
			redisStatus = "ok"
			if err := appCtx.Redis.HealthCheck(ctx); err != nil {
				redisStatus = "error: " + err.Error()
				status = "degraded"
			}
		}
		services["redis"] = redisStatus

		storageStatus := "disabled"
		if appCtx.Storage != nil {
			storageStatus = "ok"
			if err := appCtx.Storage.HealthCheck(ctx); err != nil {
				storageStatus = "error: " + err.Error()
				status = "degraded"
			}
		}
		services["storage"] = storageStatus

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		})
	}
}

// capabilitiesHandler: dashboard dùng snapshot này để ẩn image controls
func capabilitiesHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, "", appCtx.Capabilities.Snapshot())
	}
}
