package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"medtriage-core/internal/modules/ehr/services"
)

// Taille maximale acceptée pour un dossier PDF (10 Mo)
const maxPDFSize = 10 << 20

type EHRController struct {
	summaryService *services.SummaryService
}

// NewEHRController crée une nouvelle instance du contrôleur EHR
func NewEHRController(summaryService *services.SummaryService) *EHRController {
	return &EHRController{
		summaryService: summaryService,
	}
}

// SummarizeEHR - POST /api/v1/ehr/summarize
func (c *EHRController) SummarizeEHR(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Aucun fichier transmis",
			"details": map[string]interface{}{
				"code": "FILE_REQUIRED",
			},
		})
		return
	}

	if fileHeader.Size > maxPDFSize {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"success": false,
			"error":   "Fichier trop volumineux",
			"details": map[string]interface{}{
				"code":      "FILE_TOO_LARGE",
				"max_bytes": maxPDFSize,
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Fichier illisible",
			"details": map[string]interface{}{
				"code": "FILE_UNREADABLE",
			},
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxPDFSize))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Fichier illisible",
			"details": map[string]interface{}{
				"code": "FILE_UNREADABLE",
			},
		})
		return
	}

	result, err := c.summaryService.SummarizePDF(ctx.Request.Context(), content)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Impossible d'extraire le texte du PDF",
			"details": map[string]interface{}{
				"code": "PDF_EXTRACTION_FAILED",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": result.Summary,
		"method":  result.Method,
	})
}
