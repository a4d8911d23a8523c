package dto

// PatientDemographics identité du patient extraite du dossier
type PatientDemographics struct {
	Name        string `json:"name"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
}

// VitalSigns constantes vitales extraites du dossier, en texte avec unités
type VitalSigns struct {
	Temperature      string `json:"temperature"`
	BloodPressure    string `json:"blood_pressure"`
	HeartRate        string `json:"heart_rate"`
	OxygenSaturation string `json:"oxygen_saturation"`
	RespiratoryRate  string `json:"respiratory_rate"`
}

// EHRSummary synthèse structurée d'un dossier médical
type EHRSummary struct {
	PatientDemographics PatientDemographics `json:"patient_demographics"`
	ChiefComplaint      string              `json:"chief_complaint"`
	VitalSigns          VitalSigns          `json:"vital_signs"`
	Diagnosis           string              `json:"diagnosis"`
	Medications         []string            `json:"medications"`
	Allergies           []string            `json:"allergies"`
	AdditionalNotes     string              `json:"additional_notes"`
}

// Méthodes d'obtention d'une synthèse
const (
	MethodGroqAI    = "groq-ai"
	MethodRuleBased = "rule-based"
	MethodCache     = "cache"
)

// SummarizeResult synthèse accompagnée de sa provenance
type SummarizeResult struct {
	Summary *EHRSummary `json:"summary"`
	Method  string      `json:"method"`
}
