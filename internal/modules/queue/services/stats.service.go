package services

import (
	"time"

	"medtriage-core/internal/app/config"
	"medtriage-core/internal/modules/queue/dto"
)

// StatsService calcule les statistiques agrégées et les estimations d'attente.
// Aucune valeur n'est mise en cache : chaque appel recalcule contre l'horloge
// courante, les scores vieillissant en continu.
type StatsService struct {
	manager *QueueManager
	config  *config.Config
}

func NewStatsService(manager *QueueManager, cfg *config.Config) *StatsService {
	return &StatsService{
		manager: manager,
		config:  cfg,
	}
}

// GlobalStats agrège l'ensemble des files : effectifs par niveau de risque,
// temps d'attente moyen global et par service, prochain patient toutes files
// confondues. Files vides = zéros partout, jamais d'erreur.
func (s *StatsService) GlobalStats() *dto.QueueStats {
	snapshot := s.manager.AllQueues()

	stats := &dto.QueueStats{
		PatientsPerDepartment: make(map[string]int, len(snapshot)),
		WaitTimesByDepartment: make(map[string]float64, len(snapshot)),
	}

	var totalWait float64
	for department, view := range snapshot {
		stats.PatientsPerDepartment[department] = view.Count

		var departmentWait float64
		for i := range view.Patients {
			patient := &view.Patients[i]

			stats.TotalPatients++
			switch patient.RiskLevel {
			case dto.RiskHigh:
				stats.HighRiskCount++
			case dto.RiskMedium:
				stats.MediumRiskCount++
			case dto.RiskLow:
				stats.LowRiskCount++
			}

			totalWait += patient.WaitingMinutes
			departmentWait += patient.WaitingMinutes

			if stats.NextPatient == nil || patient.PriorityScore > stats.NextPatient.PriorityScore ||
				(patient.PriorityScore == stats.NextPatient.PriorityScore &&
					patient.ArrivalTime.Before(stats.NextPatient.ArrivalTime)) {
				next := *patient
				stats.NextPatient = &next
			}
		}

		if view.Count > 0 {
			stats.WaitTimesByDepartment[department] = departmentWait / float64(view.Count)
		} else {
			stats.WaitTimesByDepartment[department] = 0
		}
	}

	if stats.TotalPatients > 0 {
		stats.AverageWaitTime = totalWait / float64(stats.TotalPatients)
	}

	return stats
}

// EstimateWait estimation du temps d'attente pour un nouvel arrivant :
// taille de la file × durée moyenne de consultation / nombre de médecins.
func (s *StatsService) EstimateWait(department string) (time.Duration, error) {
	doctors := s.config.Queue.DoctorsPerDepartment
	if doctors < 1 {
		return 0, NewValidationError("Le nombre de médecins par service doit être au moins 1", map[string]interface{}{
			"doctors_per_department": doctors,
		})
	}

	view, err := s.manager.OrderedView(department)
	if err != nil {
		// Service sans file : aucune attente devant le nouvel arrivant
		if serviceErr, ok := err.(*ServiceError); ok && serviceErr.Type == "not_found" {
			return 0, nil
		}
		return 0, err
	}

	minutes := float64(len(view)) * float64(s.config.Queue.AvgConsultationMinutes) / float64(doctors)
	return time.Duration(minutes * float64(time.Minute)), nil
}

// Config valeurs de dimensionnement exposées au frontend
func (s *StatsService) Config() *dto.QueueConfigResponse {
	return &dto.QueueConfigResponse{
		AvgConsultationMinutes: s.config.Queue.AvgConsultationMinutes,
		DoctorsPerDepartment:   s.config.Queue.DoctorsPerDepartment,
	}
}
