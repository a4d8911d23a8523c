package dto

import "time"

// AssessmentRequest données d'une évaluation de triage
type AssessmentRequest struct {
	PatientID             string  `json:"patient_id"`
	Age                   float64 `json:"age" binding:"required"`
	HeartRate             float64 `json:"heart_rate" binding:"required"`
	SystolicBloodPressure float64 `json:"systolic_blood_pressure" binding:"required"`
	OxygenSaturation      float64 `json:"oxygen_saturation" binding:"required"`
	BodyTemperature       float64 `json:"body_temperature" binding:"required"`
	PainLevel             float64 `json:"pain_level"`
	ChronicDiseaseCount   float64 `json:"chronic_disease_count"`
	PreviousERVisits      float64 `json:"previous_er_visits"`
	ArrivalMode           string  `json:"arrival_mode"`
	AddToQueue            bool    `json:"add_to_queue"`
}

// DepartmentRecommendation orientation recommandée vers un service
type DepartmentRecommendation struct {
	Name    string `json:"name"`
	Reason  string `json:"reason"`
	Urgency string `json:"urgency"`
	Icon    string `json:"icon"`
}

// DepartmentInfo entrée du référentiel des services connus
type DepartmentInfo struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// FeatureContribution poids d'un facteur dans la classification
type FeatureContribution struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
	Value      string  `json:"value"`
}

// QueuePlacement résultat de la mise en file consécutive à l'évaluation
type QueuePlacement struct {
	PatientID   string `json:"patient_id"`
	Department  string `json:"department"`
	Position    int    `json:"position"`
	QueueLength int    `json:"queue_length"`
}

// AssessmentResult résultat complet d'une évaluation de triage
type AssessmentResult struct {
	AssessmentID     string                     `json:"assessment_id"`
	RiskLevel        string                     `json:"risk_level"`
	RiskColor        string                     `json:"risk_color"`
	Confidence       float64                    `json:"confidence"`
	ConfidenceScores map[string]float64         `json:"confidence_scores"`
	Departments      []DepartmentRecommendation `json:"departments"`
	Contributions    []FeatureContribution      `json:"contributions"`
	QueuePlacement   *QueuePlacement            `json:"queue_placement,omitempty"`
	AssessedAt       time.Time                  `json:"assessed_at"`
}
