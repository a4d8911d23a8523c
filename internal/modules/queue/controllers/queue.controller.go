package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medtriage-core/internal/modules/queue/dto"
	"medtriage-core/internal/modules/queue/services"
)

type QueueController struct {
	manager *services.QueueManager
	stats   *services.StatsService
	history *services.HistoryService
}

// NewQueueController crée une nouvelle instance du contrôleur de files d'attente
func NewQueueController(
	manager *services.QueueManager,
	stats *services.StatsService,
	history *services.HistoryService,
) *QueueController {
	return &QueueController{
		manager: manager,
		stats:   stats,
		history: history,
	}
}

// AddPatient - POST /api/v1/queue/add
func (c *QueueController) AddPatient(ctx *gin.Context) {
	var req dto.AddPatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Données d'ajout invalides",
			"details": map[string]interface{}{
				"code":              "INVALID_REQUEST_FORMAT",
				"validation_errors": err.Error(),
			},
		})
		return
	}

	result, err := c.manager.AddPatient(&req)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	wait, _ := c.stats.EstimateWait(result.Patient.Department)

	ctx.JSON(http.StatusCreated, gin.H{
		"success":                true,
		"data":                   result,
		"estimated_wait_minutes": wait.Minutes(),
	})
}

// GetDepartmentQueue - GET /api/v1/queue/departments/:department
func (c *QueueController) GetDepartmentQueue(ctx *gin.Context) {
	department := ctx.Param("department")

	view, err := c.manager.OrderedView(department)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": dto.DepartmentView{
			Patients: view,
			Count:    len(view),
		},
	})
}

// GetPosition - GET /api/v1/queue/departments/:department/position/:patientID
func (c *QueueController) GetPosition(ctx *gin.Context) {
	department := ctx.Param("department")
	patientID := ctx.Param("patientID")

	position, err := c.manager.PositionOf(department, patientID)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"patient_id": patientID,
			"department": department,
			"position":   position,
		},
	})
}

// GetAllQueues - GET /api/v1/queue/all
func (c *QueueController) GetAllQueues(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    c.manager.AllQueues(),
	})
}

// ListDepartments - GET /api/v1/queue/departments
func (c *QueueController) ListDepartments(ctx *gin.Context) {
	departments := c.manager.Departments()

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"departments": departments,
			"count":       len(departments),
		},
	})
}

// GetStats - GET /api/v1/queue/stats
func (c *QueueController) GetStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    c.stats.GlobalStats(),
	})
}

// GetConfig - GET /api/v1/queue/config
func (c *QueueController) GetConfig(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    c.stats.Config(),
	})
}

// GetEstimatedWait - GET /api/v1/queue/departments/:department/wait
func (c *QueueController) GetEstimatedWait(ctx *gin.Context) {
	department := ctx.Param("department")

	wait, err := c.stats.EstimateWait(department)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"department":             department,
			"estimated_wait_minutes": wait.Minutes(),
		},
	})
}

// RemovePatient - DELETE /api/v1/queue/departments/:department/patients/:patientID
func (c *QueueController) RemovePatient(ctx *gin.Context) {
	department := ctx.Param("department")
	patientID := ctx.Param("patientID")

	patient, err := c.manager.RemovePatient(department, patientID)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    patient,
	})
}

// StartTreatment - POST /api/v1/queue/departments/:department/patients/:patientID/start-treatment
func (c *QueueController) StartTreatment(ctx *gin.Context) {
	department := ctx.Param("department")
	patientID := ctx.Param("patientID")

	patient, err := c.manager.StartTreatment(department, patientID)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    patient,
	})
}

// CompleteTreatment - POST /api/v1/queue/departments/:department/patients/:patientID/complete
func (c *QueueController) CompleteTreatment(ctx *gin.Context) {
	department := ctx.Param("department")
	patientID := ctx.Param("patientID")

	patient, err := c.manager.CompleteTreatment(department, patientID)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    patient,
	})
}

// GetHistory - GET /api/v1/queue/history/:patientID
func (c *QueueController) GetHistory(ctx *gin.Context) {
	patientID := ctx.Param("patientID")

	records, err := c.history.ListHistory(ctx.Request.Context(), patientID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur lors de la consultation de l'historique",
			"details": map[string]interface{}{
				"code": "HISTORY_QUERY_FAILED",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"patient_id": patientID,
			"records":    records,
			"count":      len(records),
		},
	})
}

// handleServiceError traduit une ServiceError en réponse HTTP
func (c *QueueController) handleServiceError(ctx *gin.Context, err error) {
	if serviceErr, ok := err.(*services.ServiceError); ok {
		var statusCode int
		switch serviceErr.Type {
		case "validation":
			statusCode = http.StatusBadRequest
		case "not_found":
			statusCode = http.StatusNotFound
		case "conflict":
			statusCode = http.StatusConflict
		default:
			statusCode = http.StatusInternalServerError
		}

		ctx.JSON(statusCode, gin.H{
			"success": false,
			"error":   serviceErr.Message,
			"details": serviceErr.Details,
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Une erreur interne est survenue",
	})
}
