package services

import (
	"context"
	"fmt"

	"medtriage-core/internal/infrastructure/database/postgres"
	"medtriage-core/internal/modules/triage/dto"
	"medtriage-core/internal/modules/triage/queries"
)

// DepartmentService recommande les services de destination selon le niveau
// de risque et les constantes observées, et expose le référentiel des
// services connus. Le premier service de la liste de recommandation est la
// destination principale utilisée pour la mise en file.
type DepartmentService struct {
	pgClient *postgres.Client
}

func NewDepartmentService(pgClient *postgres.Client) *DepartmentService {
	return &DepartmentService{pgClient: pgClient}
}

// List retourne le référentiel des services (nom et icône), trié par nom
func (s *DepartmentService) List(ctx context.Context) ([]dto.DepartmentInfo, error) {
	if s.pgClient == nil {
		return nil, fmt.Errorf("référentiel des services indisponible: client postgres absent")
	}

	rows, err := s.pgClient.Query(ctx, queries.AssessmentQueries.ListDepartments)
	if err != nil {
		return nil, fmt.Errorf("lecture du référentiel des services: %w", err)
	}
	defer rows.Close()

	departments := []dto.DepartmentInfo{}
	for rows.Next() {
		var department dto.DepartmentInfo
		if err := rows.Scan(&department.Name, &department.Icon); err != nil {
			return nil, fmt.Errorf("lecture du référentiel des services: %w", err)
		}
		departments = append(departments, department)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lecture du référentiel des services: %w", err)
	}

	return departments, nil
}

// Recommend retourne la liste ordonnée des orientations, jamais vide
func (s *DepartmentService) Recommend(riskLevel string, req *dto.AssessmentRequest) []dto.DepartmentRecommendation {
	departments := []dto.DepartmentRecommendation{}

	conditionalUrgency := "SOON"
	if riskLevel == "High" {
		conditionalUrgency = "URGENT"
	}

	if riskLevel == "High" {
		departments = append(departments, dto.DepartmentRecommendation{
			Name:    "Emergency Department",
			Reason:  "High-risk vitals require immediate medical attention",
			Urgency: "IMMEDIATE",
			Icon:    "emergency",
		})
	}
	if req.HeartRate > 100 || req.SystolicBloodPressure > 160 {
		departments = append(departments, dto.DepartmentRecommendation{
			Name:    "Cardiology",
			Reason:  "Elevated heart rate or blood pressure detected",
			Urgency: conditionalUrgency,
			Icon:    "cardiology",
		})
	}
	if req.BodyTemperature > 38.0 {
		departments = append(departments, dto.DepartmentRecommendation{
			Name:    "Infectious Disease",
			Reason:  "Elevated body temperature indicates possible infection",
			Urgency: conditionalUrgency,
			Icon:    "infectious",
		})
	}
	if req.OxygenSaturation < 92 {
		departments = append(departments, dto.DepartmentRecommendation{
			Name:    "Pulmonology",
			Reason:  "Low oxygen saturation needs respiratory evaluation",
			Urgency: "IMMEDIATE",
			Icon:    "emergency",
		})
	}
	if riskLevel == "Medium" {
		departments = append(departments, dto.DepartmentRecommendation{
			Name:    "Internal Medicine",
			Reason:  "Moderate risk -- needs further evaluation",
			Urgency: "SOON",
			Icon:    "internal",
		})
	}
	if riskLevel == "Low" {
		departments = append(departments, dto.DepartmentRecommendation{
			Name:    "General Practice",
			Reason:  "Low-risk -- routine evaluation recommended",
			Urgency: "NON-URGENT",
			Icon:    "general",
		})
	}

	if len(departments) == 0 {
		departments = append(departments, dto.DepartmentRecommendation{
			Name:    "General Practice",
			Reason:  "Standard medical assessment",
			Urgency: "NON-URGENT",
			Icon:    "general",
		})
	}

	return departments
}
