package ehr

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"medtriage-core/internal/modules/ehr/controllers"
	"medtriage-core/internal/modules/ehr/services"
)

// Module regroupe tous les providers du domaine EHR
var Module = fx.Options(
	// Services
	fx.Provide(services.NewPDFExtractor),
	fx.Provide(services.NewSummaryCache),
	fx.Provide(services.NewGroqSummarizer),
	fx.Provide(services.NewRuleBasedSummarizer),
	fx.Provide(services.NewSummaryService),

	// Controllers
	fx.Provide(controllers.NewEHRController),

	// Configuration des routes
	fx.Invoke(RegisterEHRRoutes),
)

// RegisterEHRRoutes configure les routes Gin du module EHR
func RegisterEHRRoutes(r *gin.Engine, ehrController *controllers.EHRController) {
	ehrAPI := r.Group("/api/v1/ehr")
	{
		ehrAPI.POST("/summarize", ehrController.SummarizeEHR)
	}
}
