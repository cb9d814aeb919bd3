package main

import (
	"crm-dedupe/internal/api"
	"crm-dedupe/internal/api/handlers"
	"crm-dedupe/internal/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type routerDeps struct {
	contacts   *handlers.ContactHandler
	duplicates *handlers.DuplicateHandler
	health     gin.HandlerFunc
}

func setupRouter(cfg *config.Config, deps routerDeps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggingMiddleware())
	router.Use(api.CORSMiddleware(cfg.CORS))
	router.Use(api.ErrorHandlerMiddleware())

	router.GET("/health", deps.health)

	v1 := router.Group("/api/v1")
	{
		contacts := v1.Group("/contacts")
		{
			contacts.POST("", deps.contacts.CreateContact)
			contacts.GET("", deps.contacts.ListContacts)
			contacts.POST("/duplicates/check", deps.duplicates.CheckDuplicates)
			contacts.POST("/import/preview", deps.duplicates.PreviewImport)
			contacts.GET("/:id", deps.contacts.GetContact)
			contacts.DELETE("/:id", deps.contacts.DeleteContact)
		}

		duplicates := v1.Group("/duplicates")
		{
			duplicates.POST("/scan", deps.duplicates.RunScan)
			duplicates.GET("/scan/latest", deps.duplicates.GetLatestScan)
		}
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
