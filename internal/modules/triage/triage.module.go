package triage

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"medtriage-core/internal/modules/triage/controllers"
	"medtriage-core/internal/modules/triage/services"
)

// Module regroupe tous les providers du domaine Triage
var Module = fx.Options(
	// Services
	fx.Provide(services.NewVitalsSeverityClassifier),
	fx.Provide(services.NewDepartmentService),
	fx.Provide(services.NewAssessmentService),

	// Controllers
	fx.Provide(controllers.NewTriageController),

	// Configuration des routes
	fx.Invoke(RegisterTriageRoutes),
)

// RegisterTriageRoutes configure les routes Gin du module de triage
func RegisterTriageRoutes(r *gin.Engine, triageController *controllers.TriageController) {
	triageAPI := r.Group("/api/v1/triage")
	{
		triageAPI.POST("/assess", triageController.Assess)
		triageAPI.GET("/departments", triageController.ListDepartments)
	}
}
