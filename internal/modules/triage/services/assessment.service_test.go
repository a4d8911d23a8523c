package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	queueservices "medtriage-core/internal/modules/queue/services"
)

func newTestAssessmentService() (*AssessmentService, *queueservices.QueueManager) {
	manager := queueservices.NewQueueManager(queueservices.NewPriorityCalculator(), nil)
	service := NewAssessmentService(
		NewVitalsSeverityClassifier(),
		NewDepartmentService(nil),
		nil, // audit désactivé
		manager,
	)
	return service, manager
}

func TestAssess_ReturnsClassificationAndDepartments(t *testing.T) {
	service, _ := newTestAssessmentService()

	result, err := service.Assess(context.Background(), normalVitals())
	require.NoError(t, err)

	assert.NotEmpty(t, result.AssessmentID)
	assert.Equal(t, "Low", result.RiskLevel)
	assert.Equal(t, "#10b981", result.RiskColor)
	assert.NotEmpty(t, result.Departments)
	assert.NotEmpty(t, result.Contributions)
	assert.Nil(t, result.QueuePlacement)
}

func TestAssess_AddToQueuePlacesPatientInPrimaryDepartment(t *testing.T) {
	service, manager := newTestAssessmentService()

	req := normalVitals()
	req.PatientID = "p-42"
	req.AddToQueue = true

	result, err := service.Assess(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, result.QueuePlacement)
	assert.Equal(t, "p-42", result.QueuePlacement.PatientID)
	assert.Equal(t, result.Departments[0].Name, result.QueuePlacement.Department)
	assert.Equal(t, 1, result.QueuePlacement.Position)

	view, err := manager.OrderedView(result.QueuePlacement.Department)
	require.NoError(t, err)
	require.Len(t, view, 1)
	assert.Equal(t, "p-42", view[0].PatientID)
}

func TestAssess_QueueFailureDoesNotBreakAssessment(t *testing.T) {
	service, _ := newTestAssessmentService()

	req := normalVitals()
	req.PatientID = "p-42"
	req.AddToQueue = true

	// Première évaluation : mise en file réussie
	_, err := service.Assess(context.Background(), req)
	require.NoError(t, err)

	// Doublon : la mise en file échoue mais l'évaluation aboutit
	result, err := service.Assess(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Low", result.RiskLevel)
	assert.Nil(t, result.QueuePlacement)
}
