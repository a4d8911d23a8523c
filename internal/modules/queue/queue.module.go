package queue

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"medtriage-core/internal/modules/queue/controllers"
	"medtriage-core/internal/modules/queue/services"
	"medtriage-core/internal/shared/middleware/staff"
)

// Module regroupe tous les providers du domaine Queue
var Module = fx.Options(
	// Services
	fx.Provide(services.NewPriorityCalculator),
	fx.Provide(services.NewHistoryService),
	fx.Provide(func(history *services.HistoryService) services.Archiver { return history }),
	fx.Provide(services.NewQueueManager),
	fx.Provide(services.NewStatsService),

	// Controllers
	fx.Provide(controllers.NewQueueController),

	// Configuration des routes
	fx.Invoke(RegisterQueueRoutes),
)

// RegisterQueueRoutes configure les routes Gin du module de files d'attente
func RegisterQueueRoutes(
	r *gin.Engine,
	queueController *controllers.QueueController,
	staffMiddleware *staff.TokenMiddleware,
) {
	queueAPI := r.Group("/api/v1/queue")
	{
		queueAPI.GET("/config", queueController.GetConfig)
		queueAPI.GET("/stats", queueController.GetStats)
		queueAPI.GET("/all", queueController.GetAllQueues)
		queueAPI.POST("/add", queueController.AddPatient)
		queueAPI.GET("/history/:patientID", queueController.GetHistory)

		queueAPI.GET("/departments", queueController.ListDepartments)
		queueAPI.GET("/departments/:department", queueController.GetDepartmentQueue)
		queueAPI.GET("/departments/:department/wait", queueController.GetEstimatedWait)
		queueAPI.GET("/departments/:department/position/:patientID", queueController.GetPosition)
	}

	// Opérations de gestion réservées à l'équipe soignante
	staffAPI := r.Group("/api/v1/queue")
	staffAPI.Use(staffMiddleware.Handler())
	{
		staffAPI.DELETE("/departments/:department/patients/:patientID", queueController.RemovePatient)
		staffAPI.POST("/departments/:department/patients/:patientID/start-treatment", queueController.StartTreatment)
		staffAPI.POST("/departments/:department/patients/:patientID/complete", queueController.CompleteTreatment)
	}
}
