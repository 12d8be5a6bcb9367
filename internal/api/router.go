package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pathomics/histospat-backend-go/internal/config"
	"github.com/pathomics/histospat-backend-go/internal/handler"
	"github.com/pathomics/histospat-backend-go/internal/middleware"
	"github.com/pathomics/histospat-backend-go/internal/service"
)

// SetupRouter wires the HTTP surface around the feature core
func SetupRouter(cfg *config.Config, featureService *service.FeatureService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Histospat feature API is running",
		})
	})

	featureHandler := handler.NewFeatureHandler(featureService)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(60, time.Minute))
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		featureGroup := api.Group("/features")
		{
			featureGroup.POST("/extract", featureHandler.Extract)
			featureGroup.GET("/:imageID", featureHandler.GetExtraction)
			featureGroup.GET("/:imageID/curves/:name", featureHandler.GetCurve)
		}
	}

	return r
}
