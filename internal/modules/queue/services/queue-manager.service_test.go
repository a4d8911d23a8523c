package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtriage-core/internal/modules/queue/dto"
)

type capturingArchiver struct {
	records chan dto.HistoryRecord
}

func newCapturingArchiver() *capturingArchiver {
	return &capturingArchiver{records: make(chan dto.HistoryRecord, 8)}
}

func (a *capturingArchiver) Archive(_ context.Context, record dto.HistoryRecord) error {
	a.records <- record
	return nil
}

func newTestManager(t *testing.T) (*QueueManager, *time.Time) {
	t.Helper()
	manager := NewQueueManager(NewPriorityCalculator(), nil)
	clock := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	manager.SetClock(func() time.Time { return clock })
	return manager, &clock
}

func addPatient(t *testing.T, manager *QueueManager, patientID, department string, risk dto.RiskLevel) *dto.AddPatientResult {
	t.Helper()
	result, err := manager.AddPatient(&dto.AddPatientRequest{
		PatientID:  patientID,
		Department: department,
		RiskLevel:  string(risk),
	})
	require.NoError(t, err)
	return result
}

func TestAddPatient_ReturnsPositionAndQueueLength(t *testing.T) {
	manager, _ := newTestManager(t)

	first := addPatient(t, manager, "p-1", "Cardiology", dto.RiskLow)
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 1, first.QueueLength)
	assert.Equal(t, dto.StatusWaiting, first.Patient.Status)

	// Un High fraîchement arrivé passe devant le Low déjà en file
	second := addPatient(t, manager, "p-2", "Cardiology", dto.RiskHigh)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, 2, second.QueueLength)

	position, err := manager.PositionOf("Cardiology", "p-1")
	require.NoError(t, err)
	assert.Equal(t, 2, position)
}

func TestAddPatient_AmbulanceOutranksWalkInAtEqualRisk(t *testing.T) {
	manager, _ := newTestManager(t)

	walkIn, err := manager.AddPatient(&dto.AddPatientRequest{
		PatientID:   "p-walk",
		Department:  "Emergency Department",
		RiskLevel:   "Medium",
		ArrivalMode: dto.ArrivalWalkIn,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, walkIn.Position)

	ambulance, err := manager.AddPatient(&dto.AddPatientRequest{
		PatientID:   "p-amb",
		Department:  "Emergency Department",
		RiskLevel:   "Medium",
		ArrivalMode: dto.ArrivalAmbulance,
	})
	require.NoError(t, err)
	assert.Equal(t, dto.ArrivalAmbulance, ambulance.Patient.ArrivalMode)
	assert.Equal(t, 1, ambulance.Position)

	position, err := manager.PositionOf("Emergency Department", "p-walk")
	require.NoError(t, err)
	assert.Equal(t, 2, position)
}

func TestAddPatient_GeneratesIDWhenMissing(t *testing.T) {
	manager, _ := newTestManager(t)

	result, err := manager.AddPatient(&dto.AddPatientRequest{
		Department: "General Practice",
		RiskLevel:  "Medium",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Patient.PatientID)
}

func TestAddPatient_RejectsInvalidInput(t *testing.T) {
	manager, _ := newTestManager(t)

	_, err := manager.AddPatient(&dto.AddPatientRequest{
		PatientID: "p-1",
		RiskLevel: "High",
	})
	require.Error(t, err)
	assert.Equal(t, "validation", err.(*ServiceError).Type)

	_, err = manager.AddPatient(&dto.AddPatientRequest{
		PatientID:  "p-1",
		Department: "Cardiology",
		RiskLevel:  "Critical",
	})
	require.Error(t, err)
	assert.Equal(t, "validation", err.(*ServiceError).Type)
}

func TestAddPatient_DuplicateLeavesQueueUnchanged(t *testing.T) {
	manager, _ := newTestManager(t)

	addPatient(t, manager, "p-1", "Cardiology", dto.RiskHigh)

	_, err := manager.AddPatient(&dto.AddPatientRequest{
		PatientID:  "p-1",
		Department: "Cardiology",
		RiskLevel:  "Low",
	})
	require.Error(t, err)
	assert.Equal(t, "validation", err.(*ServiceError).Type)

	view, err := manager.OrderedView("Cardiology")
	require.NoError(t, err)
	require.Len(t, view, 1)
	assert.Equal(t, dto.RiskHigh, view[0].RiskLevel)

	// Le même identifiant reste admissible dans un autre service
	other := addPatient(t, manager, "p-1", "Pulmonology", dto.RiskLow)
	assert.Equal(t, 1, other.Position)
}

func TestOrderedView_SortsByScoreThenArrival(t *testing.T) {
	manager, clock := newTestManager(t)

	addPatient(t, manager, "low-early", "Emergency Department", dto.RiskLow)
	*clock = clock.Add(1 * time.Minute)
	addPatient(t, manager, "medium", "Emergency Department", dto.RiskMedium)
	*clock = clock.Add(1 * time.Minute)
	addPatient(t, manager, "high", "Emergency Department", dto.RiskHigh)
	addPatient(t, manager, "high-late", "Emergency Department", dto.RiskHigh)

	view, err := manager.OrderedView("Emergency Department")
	require.NoError(t, err)
	require.Len(t, view, 4)

	// Scores décroissants, égalité départagée par arrivée
	for i := 1; i < len(view); i++ {
		if view[i-1].PriorityScore == view[i].PriorityScore {
			assert.False(t, view[i].ArrivalTime.Before(view[i-1].ArrivalTime))
		} else {
			assert.Greater(t, view[i-1].PriorityScore, view[i].PriorityScore)
		}
	}
	assert.Equal(t, "high", view[0].PatientID)
	assert.Equal(t, "high-late", view[1].PatientID)
}

func TestOrderedView_AgingLetsLowOvertakeMedium(t *testing.T) {
	manager, clock := newTestManager(t)

	addPatient(t, manager, "low-waiting", "Internal Medicine", dto.RiskLow)

	// 26 minutes plus tard, un Medium arrive : le Low a accumulé 52 points
	// de vieillissement, soit plus que l'écart de 50 points entre niveaux
	*clock = clock.Add(26 * time.Minute)
	addPatient(t, manager, "medium-fresh", "Internal Medicine", dto.RiskMedium)

	view, err := manager.OrderedView("Internal Medicine")
	require.NoError(t, err)
	assert.Equal(t, "low-waiting", view[0].PatientID)

	// Après 51 minutes il dépasse même un High fraîchement arrivé
	*clock = clock.Add(25 * time.Minute)
	addPatient(t, manager, "high-fresh", "Internal Medicine", dto.RiskHigh)

	view, err = manager.OrderedView("Internal Medicine")
	require.NoError(t, err)
	assert.Equal(t, "low-waiting", view[0].PatientID)
}

func TestOrderedView_ScoreGrowsMonotonically(t *testing.T) {
	manager, clock := newTestManager(t)

	addPatient(t, manager, "p-1", "Cardiology", dto.RiskMedium)

	view, err := manager.OrderedView("Cardiology")
	require.NoError(t, err)
	before := view[0].PriorityScore

	*clock = clock.Add(10 * time.Minute)

	view, err = manager.OrderedView("Cardiology")
	require.NoError(t, err)
	assert.Equal(t, before+10*AgingPointsPerMinute, view[0].PriorityScore)
	assert.Equal(t, 10.0, view[0].WaitingMinutes)
}

func TestOrderedView_UnknownDepartment(t *testing.T) {
	manager, _ := newTestManager(t)

	_, err := manager.OrderedView("Neurology")
	require.Error(t, err)
	assert.Equal(t, "not_found", err.(*ServiceError).Type)
}

func TestRemovePatient_ShrinksQueue(t *testing.T) {
	manager, _ := newTestManager(t)

	addPatient(t, manager, "p-1", "Cardiology", dto.RiskHigh)
	addPatient(t, manager, "p-2", "Cardiology", dto.RiskLow)

	removed, err := manager.RemovePatient("Cardiology", "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", removed.PatientID)

	view, err := manager.OrderedView("Cardiology")
	require.NoError(t, err)
	require.Len(t, view, 1)
	assert.Equal(t, "p-2", view[0].PatientID)

	_, err = manager.PositionOf("Cardiology", "p-1")
	require.Error(t, err)
	assert.Equal(t, "not_found", err.(*ServiceError).Type)

	_, err = manager.RemovePatient("Cardiology", "p-1")
	require.Error(t, err)
	assert.Equal(t, "not_found", err.(*ServiceError).Type)
}

func TestTreatmentStateMachine(t *testing.T) {
	manager, _ := newTestManager(t)

	addPatient(t, manager, "p-1", "Cardiology", dto.RiskHigh)

	// Terminer sans avoir commencé : conflit
	_, err := manager.CompleteTreatment("Cardiology", "p-1")
	require.Error(t, err)
	assert.Equal(t, "conflict", err.(*ServiceError).Type)

	patient, err := manager.StartTreatment("Cardiology", "p-1")
	require.NoError(t, err)
	assert.Equal(t, dto.StatusInTreatment, patient.Status)

	// Double début de traitement : conflit
	_, err = manager.StartTreatment("Cardiology", "p-1")
	require.Error(t, err)
	assert.Equal(t, "conflict", err.(*ServiceError).Type)

	// completed est terminal : l'entrée quitte la file active
	patient, err = manager.CompleteTreatment("Cardiology", "p-1")
	require.NoError(t, err)
	assert.Equal(t, dto.StatusCompleted, patient.Status)

	view, err := manager.OrderedView("Cardiology")
	require.NoError(t, err)
	assert.Empty(t, view)
}

func TestCompleteTreatment_ArchivesRecord(t *testing.T) {
	archiver := newCapturingArchiver()
	manager := NewQueueManager(NewPriorityCalculator(), archiver)
	clock := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	manager.SetClock(func() time.Time { return clock })

	addPatient(t, manager, "p-1", "Cardiology", dto.RiskHigh)
	clock = clock.Add(15 * time.Minute)

	_, err := manager.StartTreatment("Cardiology", "p-1")
	require.NoError(t, err)
	_, err = manager.CompleteTreatment("Cardiology", "p-1")
	require.NoError(t, err)

	select {
	case record := <-archiver.records:
		assert.Equal(t, "p-1", record.PatientID)
		assert.Equal(t, "Cardiology", record.Department)
		assert.Equal(t, "completed", record.FinalStatus)
		assert.Equal(t, 15.0, record.WaitMinutes)
	case <-time.After(2 * time.Second):
		t.Fatal("aucune entrée archivée")
	}
}

func TestAllQueues_SnapshotsEveryDepartment(t *testing.T) {
	manager, _ := newTestManager(t)

	addPatient(t, manager, "p-1", "Cardiology", dto.RiskHigh)
	addPatient(t, manager, "p-2", "Pulmonology", dto.RiskLow)
	addPatient(t, manager, "p-3", "Pulmonology", dto.RiskMedium)

	snapshot := manager.AllQueues()
	require.Len(t, snapshot, 2)
	assert.Equal(t, 1, snapshot["Cardiology"].Count)
	assert.Equal(t, 2, snapshot["Pulmonology"].Count)
	assert.Equal(t, "p-3", snapshot["Pulmonology"].Patients[0].PatientID)
}

func TestDepartments_ReturnsSortedNames(t *testing.T) {
	manager, _ := newTestManager(t)

	assert.Empty(t, manager.Departments())

	addPatient(t, manager, "p-1", "Pulmonology", dto.RiskLow)
	addPatient(t, manager, "p-2", "Cardiology", dto.RiskHigh)
	addPatient(t, manager, "p-3", "Emergency Department", dto.RiskMedium)

	assert.Equal(t, []string{"Cardiology", "Emergency Department", "Pulmonology"}, manager.Departments())

	// Une file vidée reste listée : le service existe toujours
	_, err := manager.RemovePatient("Cardiology", "p-2")
	require.NoError(t, err)
	assert.Contains(t, manager.Departments(), "Cardiology")
}
