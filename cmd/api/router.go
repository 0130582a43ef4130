package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gameshelf-backend/internal/shared/middleware"
	"gameshelf-backend/internal/shared/response"
	"gameshelf-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)
	}
}

// ========================================
// PUBLIC CATALOG ROUTES
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/languages", c.LanguageHandler.List)
	v1.GET("/categories", c.CategoryHandler.List)

	games := v1.Group("/games")
	{
		games.GET("", c.GameHandler.ListPublished)

		// Visitor submissions still require a session
		games.POST("/submit", middleware.AuthMiddleware(c.JWTManager), c.SubmissionHandler.Submit)

		// Keep last, :lang/:slug would otherwise swallow /submit
		games.GET("/:lang/:slug", c.GameHandler.GetBySlug)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		games := admin.Group("/games")
		{
			games.GET("", c.GameHandler.ListAll)
			games.POST("", c.GameHandler.Create)
			games.POST("/image", c.GameHandler.UploadImage)
			games.GET("/:id", c.GameHandler.GetByID)
			games.PUT("/:id", c.GameHandler.Update)
			games.DELETE("/:id", c.GameHandler.Delete)
			games.PATCH("/:id/publish", c.GameHandler.SetPublish)
			games.PATCH("/:id/new", c.GameHandler.SetNew)
		}

		submissions := admin.Group("/submissions")
		{
			submissions.GET("", c.SubmissionHandler.List)
			submissions.POST("/:id/approve", c.SubmissionHandler.Approve)
			submissions.DELETE("/:id", c.SubmissionHandler.Reject)
		}

		categories := admin.Group("/categories")
		{
			categories.POST("", c.CategoryHandler.Create)
			categories.DELETE("/:id", c.CategoryHandler.Delete)
		}

		users := admin.Group("/users")
		{
			users.GET("", c.UserHandler.List)
			users.PATCH("/:id/admin", c.UserHandler.SetAdmin)
		}
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
			"time":    time.Now().UTC(),
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			ctx.JSON(http.StatusServiceUnavailable, status)
			return
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status["cache"] = err.Error()
		}

		response.Success(ctx, http.StatusOK, status)
	}
}
