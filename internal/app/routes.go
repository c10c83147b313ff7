package app

import (
	"Renewals/internal/cache"
	"Renewals/internal/config"
	"Renewals/internal/events"
	"Renewals/internal/handlers"
	"Renewals/internal/repo"
	"Renewals/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, checklistRepo repo.ChecklistRepo, checklistCache *cache.ChecklistCache, rdb *redis.Client, stats *service.Stats) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	notifier := events.Multi{
		events.LogNotifier{},
		events.NewRedisNotifier(rdb, cfg.Events.Channel),
	}
	checklistSvc := service.NewChecklistService(checklistRepo, checklistCache, notifier, stats)
	checklistHandler := handlers.NewChecklistHandler(checklistSvc)
	registerChecklistRoutes(api, checklistHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Renewal Checklist API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerChecklistRoutes(api *gin.RouterGroup, h *handlers.ChecklistHandler) {
	api.GET("/policies/key", h.DeriveKey)
	api.GET("/policies/:key/checklist", h.Get)
	api.POST("/policies/:key/checklist/tasks", h.AddTask)
	api.POST("/policies/:key/checklist/tasks/:id/toggle", h.Toggle)
	api.PUT("/policies/:key/checklist/tasks/:id/notes", h.SetNotes)
	api.POST("/policies/:key/checklist/reset", h.Reset)
	api.POST("/policies/:key/checklist/revalidate", h.Revalidate)
	api.GET("/stats", h.Stats)
}
