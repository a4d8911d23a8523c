package services

import (
	"fmt"
	"math"

	"medtriage-core/internal/modules/triage/dto"
)

// Classification issue du classifieur : niveau de risque et scores associés
type Classification struct {
	RiskLevel        string
	Confidence       float64
	ConfidenceScores map[string]float64
	Contributions    []dto.FeatureContribution
}

// Classifier évalue le niveau de risque d'un patient à partir de ses constantes
type Classifier interface {
	Classify(req *dto.AssessmentRequest) *Classification
}

// Seuils du score de risque combiné séparant les trois niveaux
const (
	mediumRiskThreshold = 1.1
	highRiskThreshold   = 1.6
)

// VitalsSeverityClassifier classifie par score de sévérité pondéré des
// constantes vitales, modulé par l'âge et les antécédents. Déterministe et
// auditable : mêmes constantes, même classification.
//
// combined = vitals_severity × age_risk × (1 + antécédents/10)
//
//	vitals_severity = fc/80×0.25 + pas/120×0.2 + (100−spo2)/10×0.25
//	                + |t−37|/2×0.15 + douleur/10×0.15
//	age_risk        = 1.5 si âge > 65, 1.3 si âge < 5, sinon 1.0
//	antécédents     = chroniques×0.6 + passages_urgences×0.4
type VitalsSeverityClassifier struct{}

func NewVitalsSeverityClassifier() Classifier {
	return &VitalsSeverityClassifier{}
}

func (c *VitalsSeverityClassifier) Classify(req *dto.AssessmentRequest) *Classification {
	vitalsSeverity := (req.HeartRate/80)*0.25 +
		(req.SystolicBloodPressure/120)*0.2 +
		((100-req.OxygenSaturation)/10)*0.25 +
		(math.Abs(req.BodyTemperature-37.0)/2)*0.15 +
		(req.PainLevel/10)*0.15

	ageRisk := 1.0
	if req.Age > 65 {
		ageRisk = 1.5
	} else if req.Age < 5 {
		ageRisk = 1.3
	}

	chronicERScore := req.ChronicDiseaseCount*0.6 + req.PreviousERVisits*0.4
	combined := vitalsSeverity * ageRisk * (1 + chronicERScore/10)

	riskLevel := "Low"
	switch {
	case combined >= highRiskThreshold:
		riskLevel = "High"
	case combined >= mediumRiskThreshold:
		riskLevel = "Medium"
	}

	scores := confidenceScores(combined)

	return &Classification{
		RiskLevel:        riskLevel,
		Confidence:       scores[riskLevel],
		ConfidenceScores: scores,
		Contributions: []dto.FeatureContribution{
			{Feature: "Vitals Score", Importance: 40.0, Value: fmt.Sprintf("%.2f", vitalsSeverity)},
			{Feature: "Risk Score", Importance: 30.0, Value: fmt.Sprintf("%.2f", combined)},
			{Feature: "Age Risk", Importance: 15.0, Value: fmt.Sprintf("%.1f", ageRisk)},
			{Feature: "Chronic Score", Importance: 15.0, Value: fmt.Sprintf("%.2f", chronicERScore)},
		},
	}
}

// confidenceScores répartit la confiance entre les trois niveaux selon la
// distance du score combiné aux seuils : au cœur d'une bande la confiance
// approche 95, près d'un seuil elle se partage entre les deux niveaux voisins
func confidenceScores(combined float64) map[string]float64 {
	distance := math.Min(
		math.Abs(combined-mediumRiskThreshold),
		math.Abs(combined-highRiskThreshold),
	)

	// 0.25 au-delà d'un seuil suffit pour une classification franche
	dominant := 60.0 + 35.0*math.Min(distance/0.25, 1.0)
	remainder := 100.0 - dominant

	scores := map[string]float64{"Low": 0, "Medium": 0, "High": 0}
	switch {
	case combined >= highRiskThreshold:
		scores["High"] = round1(dominant)
		scores["Medium"] = round1(remainder * 0.8)
		scores["Low"] = round1(remainder * 0.2)
	case combined >= mediumRiskThreshold:
		scores["Medium"] = round1(dominant)
		if combined-mediumRiskThreshold < highRiskThreshold-combined {
			scores["Low"] = round1(remainder * 0.8)
			scores["High"] = round1(remainder * 0.2)
		} else {
			scores["High"] = round1(remainder * 0.8)
			scores["Low"] = round1(remainder * 0.2)
		}
	default:
		scores["Low"] = round1(dominant)
		scores["Medium"] = round1(remainder * 0.8)
		scores["High"] = round1(remainder * 0.2)
	}

	return scores
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
