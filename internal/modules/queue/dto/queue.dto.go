package dto

import "time"

// RiskLevel niveau de risque catégoriel produit par le classifieur
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// IsValid indique si la valeur est un niveau de risque reconnu
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Weight poids du niveau de risque (High=3, Medium=2, Low=1)
func (r RiskLevel) Weight() int {
	switch r {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	default:
		return 1
	}
}

// Modes d'arrivée reconnus. L'ambulance et le fauteuil roulant ajoutent un
// bonus au score de priorité ; toute autre valeur (Walk-in inclus) n'en ajoute pas.
const (
	ArrivalAmbulance  = "Ambulance"
	ArrivalWheelchair = "Wheelchair"
	ArrivalWalkIn     = "Walk-in"
)

// PatientStatus état d'une entrée dans la file
// Transitions autorisées : waiting -> in_treatment -> completed
type PatientStatus string

const (
	StatusWaiting     PatientStatus = "waiting"
	StatusInTreatment PatientStatus = "in_treatment"
	StatusCompleted   PatientStatus = "completed"
)

// VitalsSnapshot copie immuable des constantes mesurées à l'évaluation
type VitalsSnapshot struct {
	HeartRate             float64 `json:"heart_rate"`
	SystolicBloodPressure float64 `json:"systolic_blood_pressure"`
	OxygenSaturation      float64 `json:"oxygen_saturation"`
	BodyTemperature       float64 `json:"body_temperature"`
	PainLevel             float64 `json:"pain_level"`
	ChronicDiseaseCount   float64 `json:"chronic_disease_count"`
	Age                   float64 `json:"age"`
}

// PatientEntry entrée d'un patient dans une file de service
// Le score de priorité n'est jamais stocké : il est recalculé à chaque lecture
type PatientEntry struct {
	PatientID   string         `json:"patient_id"`
	RiskLevel   RiskLevel      `json:"risk_level"`
	Department  string         `json:"department"`
	Vitals      VitalsSnapshot `json:"vitals"`
	ArrivalMode string         `json:"arrival_mode,omitempty"`
	ArrivalTime time.Time      `json:"arrival_time"`
	Status      PatientStatus  `json:"status"`
}

// QueuedPatient vue d'une entrée avec son score courant et son temps d'attente
type QueuedPatient struct {
	PatientEntry
	PriorityScore  float64 `json:"priority_score"`
	WaitingMinutes float64 `json:"waiting_minutes"`
}

// AddPatientRequest requête d'ajout dans une file
type AddPatientRequest struct {
	PatientID   string         `json:"patient_id"`
	Department  string         `json:"department" binding:"required"`
	RiskLevel   string         `json:"risk_level" binding:"required"`
	Vitals      VitalsSnapshot `json:"vitals_data"`
	ArrivalMode string         `json:"arrival_mode"`
}

// AddPatientResult résultat d'un ajout : position et taille de la file à l'instant de l'appel
type AddPatientResult struct {
	Patient     QueuedPatient `json:"patient"`
	Position    int           `json:"position"`
	QueueLength int           `json:"queue_length"`
}

// DepartmentView vue instantanée d'une file de service
type DepartmentView struct {
	Patients []QueuedPatient `json:"patients"`
	Count    int             `json:"count"`
}

// QueueStats statistiques agrégées sur l'ensemble des files
type QueueStats struct {
	TotalPatients         int                `json:"total_patients"`
	HighRiskCount         int                `json:"high_risk_count"`
	MediumRiskCount       int                `json:"medium_risk_count"`
	LowRiskCount          int                `json:"low_risk_count"`
	AverageWaitTime       float64            `json:"average_wait_time"`
	PatientsPerDepartment map[string]int     `json:"patients_per_department"`
	WaitTimesByDepartment map[string]float64 `json:"wait_times_by_department"`
	NextPatient           *QueuedPatient     `json:"next_patient,omitempty"`
}

// QueueConfigResponse valeurs de configuration exposées au frontend
type QueueConfigResponse struct {
	AvgConsultationMinutes int `json:"avg_consultation_minutes"`
	DoctorsPerDepartment   int `json:"doctors_per_department"`
}

// HistoryRecord entrée archivée après traitement ou retrait
type HistoryRecord struct {
	PatientID   string         `json:"patient_id" bson:"patient_id"`
	Department  string         `json:"department" bson:"department"`
	RiskLevel   RiskLevel      `json:"risk_level" bson:"risk_level"`
	ArrivalMode string         `json:"arrival_mode,omitempty" bson:"arrival_mode,omitempty"`
	FinalStatus string         `json:"final_status" bson:"final_status"`
	ArrivalTime time.Time      `json:"arrival_time" bson:"arrival_time"`
	ArchivedAt  time.Time      `json:"archived_at" bson:"archived_at"`
	WaitMinutes float64        `json:"wait_minutes" bson:"wait_minutes"`
	Vitals      VitalsSnapshot `json:"vitals" bson:"vitals"`
}
