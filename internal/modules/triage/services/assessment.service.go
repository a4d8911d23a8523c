package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"medtriage-core/internal/infrastructure/database/postgres"
	queuedto "medtriage-core/internal/modules/queue/dto"
	queueservices "medtriage-core/internal/modules/queue/services"
	"medtriage-core/internal/modules/triage/dto"
	"medtriage-core/internal/modules/triage/queries"
)

var riskColors = map[string]string{
	"Low":    "#10b981",
	"Medium": "#f59e0b",
	"High":   "#ef4444",
}

// AssessmentService orchestre une évaluation de triage : classification,
// orientation, audit en base et mise en file optionnelle.
type AssessmentService struct {
	classifier   Classifier
	departments  *DepartmentService
	pgClient     *postgres.Client
	queueManager *queueservices.QueueManager
}

func NewAssessmentService(
	classifier Classifier,
	departments *DepartmentService,
	pgClient *postgres.Client,
	queueManager *queueservices.QueueManager,
) *AssessmentService {
	return &AssessmentService{
		classifier:   classifier,
		departments:  departments,
		pgClient:     pgClient,
		queueManager: queueManager,
	}
}

// Assess évalue un patient et retourne le niveau de risque, les orientations
// et, si demandé, le placement dans la file du service principal.
// L'audit et la mise en file sont best-effort : ils n'invalident jamais
// une classification réussie.
func (s *AssessmentService) Assess(ctx context.Context, req *dto.AssessmentRequest) (*dto.AssessmentResult, error) {
	classification := s.classifier.Classify(req)
	departments := s.departments.Recommend(classification.RiskLevel, req)

	result := &dto.AssessmentResult{
		AssessmentID:     uuid.New().String(),
		RiskLevel:        classification.RiskLevel,
		RiskColor:        riskColors[classification.RiskLevel],
		Confidence:       classification.Confidence,
		ConfidenceScores: classification.ConfidenceScores,
		Departments:      departments,
		Contributions:    classification.Contributions,
		AssessedAt:       time.Now(),
	}

	s.auditAssessment(ctx, req, result)

	if req.AddToQueue {
		result.QueuePlacement = s.enqueue(req, result)
	}

	return result, nil
}

func (s *AssessmentService) auditAssessment(ctx context.Context, req *dto.AssessmentRequest, result *dto.AssessmentResult) {
	if s.pgClient == nil {
		return
	}

	departmentsJSON, err := json.Marshal(result.Departments)
	if err != nil {
		log.Printf("[TRIAGE] ⚠️ Sérialisation des orientations impossible: %v", err)
		return
	}

	vitalsJSON, err := json.Marshal(vitalsSnapshot(req))
	if err != nil {
		log.Printf("[TRIAGE] ⚠️ Sérialisation des constantes impossible: %v", err)
		return
	}

	err = s.pgClient.Exec(ctx, queries.AssessmentQueries.InsertAssessment,
		result.AssessmentID,
		req.PatientID,
		result.RiskLevel,
		result.Confidence,
		departmentsJSON,
		vitalsJSON,
	)
	if err != nil {
		log.Printf("[TRIAGE] ⚠️ Audit de l'évaluation %s impossible: %v", result.AssessmentID, err)
	}
}

func (s *AssessmentService) enqueue(req *dto.AssessmentRequest, result *dto.AssessmentResult) *dto.QueuePlacement {
	primary := result.Departments[0].Name

	placement, err := s.queueManager.AddPatient(&queuedto.AddPatientRequest{
		PatientID:   req.PatientID,
		Department:  primary,
		RiskLevel:   result.RiskLevel,
		Vitals:      vitalsSnapshot(req),
		ArrivalMode: req.ArrivalMode,
	})
	if err != nil {
		log.Printf("[TRIAGE] ⚠️ Mise en file dans %s impossible: %v", primary, err)
		return nil
	}

	return &dto.QueuePlacement{
		PatientID:   placement.Patient.PatientID,
		Department:  placement.Patient.Department,
		Position:    placement.Position,
		QueueLength: placement.QueueLength,
	}
}

func vitalsSnapshot(req *dto.AssessmentRequest) queuedto.VitalsSnapshot {
	return queuedto.VitalsSnapshot{
		HeartRate:             req.HeartRate,
		SystolicBloodPressure: req.SystolicBloodPressure,
		OxygenSaturation:      req.OxygenSaturation,
		BodyTemperature:       req.BodyTemperature,
		PainLevel:             req.PainLevel,
		ChronicDiseaseCount:   req.ChronicDiseaseCount,
		Age:                   req.Age,
	}
}
