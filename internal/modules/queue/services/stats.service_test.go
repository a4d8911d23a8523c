package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtriage-core/internal/app/config"
	"medtriage-core/internal/modules/queue/dto"
)

func newTestStats(t *testing.T) (*StatsService, *QueueManager, *time.Time) {
	t.Helper()
	manager, clock := newTestManager(t)
	cfg := &config.Config{
		Queue: config.QueueConfig{
			DoctorsPerDepartment:   2,
			AvgConsultationMinutes: 10,
		},
	}
	return NewStatsService(manager, cfg), manager, clock
}

func TestGlobalStats_EmptyQueues(t *testing.T) {
	stats, _, _ := newTestStats(t)

	result := stats.GlobalStats()
	assert.Equal(t, 0, result.TotalPatients)
	assert.Equal(t, 0, result.HighRiskCount)
	assert.Equal(t, 0.0, result.AverageWaitTime)
	assert.Empty(t, result.PatientsPerDepartment)
	assert.Nil(t, result.NextPatient)
}

func TestGlobalStats_CountsAndAverages(t *testing.T) {
	stats, manager, clock := newTestStats(t)

	addPatient(t, manager, "p-1", "Cardiology", dto.RiskHigh)
	addPatient(t, manager, "p-2", "Cardiology", dto.RiskLow)
	addPatient(t, manager, "p-3", "Pulmonology", dto.RiskMedium)

	*clock = clock.Add(10 * time.Minute)
	addPatient(t, manager, "p-4", "Pulmonology", dto.RiskLow)

	result := stats.GlobalStats()
	assert.Equal(t, 4, result.TotalPatients)
	assert.Equal(t, 1, result.HighRiskCount)
	assert.Equal(t, 1, result.MediumRiskCount)
	assert.Equal(t, 2, result.LowRiskCount)

	// Trois patients attendent depuis 10 minutes, un depuis 0
	assert.Equal(t, 7.5, result.AverageWaitTime)
	assert.Equal(t, 10.0, result.WaitTimesByDepartment["Cardiology"])
	assert.Equal(t, 5.0, result.WaitTimesByDepartment["Pulmonology"])
	assert.Equal(t, 2, result.PatientsPerDepartment["Cardiology"])
	assert.Equal(t, 2, result.PatientsPerDepartment["Pulmonology"])

	// Le prochain patient toutes files confondues est le High vieilli
	require.NotNil(t, result.NextPatient)
	assert.Equal(t, "p-1", result.NextPatient.PatientID)
}

func TestEstimateWait_Formula(t *testing.T) {
	stats, manager, _ := newTestStats(t)

	addPatient(t, manager, "p-1", "Cardiology", dto.RiskHigh)
	addPatient(t, manager, "p-2", "Cardiology", dto.RiskLow)
	addPatient(t, manager, "p-3", "Cardiology", dto.RiskMedium)

	// 3 patients × 10 minutes / 2 médecins
	wait, err := stats.EstimateWait("Cardiology")
	require.NoError(t, err)
	assert.Equal(t, 15.0, wait.Minutes())

	// Service sans file : aucune attente
	wait, err = stats.EstimateWait("Neurology")
	require.NoError(t, err)
	assert.Equal(t, 0.0, wait.Minutes())
}

func TestEstimateWait_RequiresAtLeastOneDoctor(t *testing.T) {
	manager, _ := newTestManager(t)
	cfg := &config.Config{
		Queue: config.QueueConfig{
			DoctorsPerDepartment:   0,
			AvgConsultationMinutes: 10,
		},
	}
	stats := NewStatsService(manager, cfg)

	_, err := stats.EstimateWait("Cardiology")
	require.Error(t, err)
	assert.Equal(t, "validation", err.(*ServiceError).Type)
}
