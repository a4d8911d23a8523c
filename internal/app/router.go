package app

import (
	"net/http"

	"medtriage-core/internal/app/config"
	"medtriage-core/internal/infrastructure/logger"
	"medtriage-core/internal/shared/middleware/security"

	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, lm *logger.LoggerMiddleware) *gin.Engine {
	// Set Gin mode based on environment
	configureGinMode(cfg.Environment)

	// Create router without default middleware for custom configuration
	r := gin.New()

	r.Use(lm.GinLogger())
	r.Use(lm.GinRecovery())
	r.Use(gin.HandlerFunc(security.CORSMiddleware(cfg)))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "healthy",
			},
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "ready",
			},
		})
	})

	// Les routes métier sont enregistrées par chaque module via fx.Invoke
	// (voir queue.module.go, triage.module.go, ehr.module.go)

	return r
}

// configureGinMode configure le mode Gin selon l'environnement
func configureGinMode(environment string) {
	switch environment {
	case "docker":
		gin.SetMode(gin.ReleaseMode)
	case "development":
		gin.SetMode(gin.DebugMode)
	default:
		// Mode debug par défaut pour développement local
		gin.SetMode(gin.DebugMode)
	}
}
