package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medtriage-core/internal/modules/triage/dto"
	"medtriage-core/internal/modules/triage/services"
)

type TriageController struct {
	assessmentService *services.AssessmentService
	departmentService *services.DepartmentService
}

// NewTriageController crée une nouvelle instance du contrôleur de triage
func NewTriageController(
	assessmentService *services.AssessmentService,
	departmentService *services.DepartmentService,
) *TriageController {
	return &TriageController{
		assessmentService: assessmentService,
		departmentService: departmentService,
	}
}

// Assess - POST /api/v1/triage/assess
func (c *TriageController) Assess(ctx *gin.Context) {
	var req dto.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Données d'évaluation invalides",
			"details": map[string]interface{}{
				"code":              "INVALID_REQUEST_FORMAT",
				"validation_errors": err.Error(),
			},
		})
		return
	}

	if req.PainLevel < 0 || req.PainLevel > 10 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Le niveau de douleur doit être compris entre 0 et 10",
			"details": map[string]interface{}{
				"code":  "PAIN_LEVEL_OUT_OF_RANGE",
				"value": req.PainLevel,
			},
		})
		return
	}

	result, err := c.assessmentService.Assess(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur lors de l'évaluation",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ListDepartments - GET /api/v1/triage/departments
func (c *TriageController) ListDepartments(ctx *gin.Context) {
	departments, err := c.departmentService.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Erreur lors de la consultation du référentiel des services",
			"details": map[string]interface{}{
				"code": "DEPARTMENTS_QUERY_FAILED",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"departments": departments,
			"count":       len(departments),
		},
	})
}
