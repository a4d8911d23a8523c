package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtriage-core/internal/modules/triage/dto"
)

func normalVitals() *dto.AssessmentRequest {
	return &dto.AssessmentRequest{
		Age:                   30,
		HeartRate:             72,
		SystolicBloodPressure: 118,
		OxygenSaturation:      98,
		BodyTemperature:       36.8,
		PainLevel:             1,
	}
}

func TestClassify_NormalVitalsAreLowRisk(t *testing.T) {
	classifier := NewVitalsSeverityClassifier()

	result := classifier.Classify(normalVitals())
	assert.Equal(t, "Low", result.RiskLevel)
	assert.Greater(t, result.Confidence, 50.0)
}

func TestClassify_SevereVitalsAreHighRisk(t *testing.T) {
	classifier := NewVitalsSeverityClassifier()

	result := classifier.Classify(&dto.AssessmentRequest{
		Age:                   72,
		HeartRate:             130,
		SystolicBloodPressure: 190,
		OxygenSaturation:      86,
		BodyTemperature:       39.5,
		PainLevel:             9,
		ChronicDiseaseCount:   3,
		PreviousERVisits:      2,
	})
	assert.Equal(t, "High", result.RiskLevel)
}

func TestClassify_ModeratePresentation(t *testing.T) {
	classifier := NewVitalsSeverityClassifier()

	result := classifier.Classify(&dto.AssessmentRequest{
		Age:                   50,
		HeartRate:             115,
		SystolicBloodPressure: 165,
		OxygenSaturation:      93,
		BodyTemperature:       38.5,
		PainLevel:             6,
		ChronicDiseaseCount:   2,
	})
	assert.Equal(t, "Medium", result.RiskLevel)
}

func TestClassify_IsDeterministic(t *testing.T) {
	classifier := NewVitalsSeverityClassifier()
	req := normalVitals()

	first := classifier.Classify(req)
	second := classifier.Classify(req)
	assert.Equal(t, first, second)
}

func TestClassify_AgeAmplifiesRisk(t *testing.T) {
	classifier := NewVitalsSeverityClassifier()

	borderline := &dto.AssessmentRequest{
		Age:                   40,
		HeartRate:             100,
		SystolicBloodPressure: 140,
		OxygenSaturation:      94,
		BodyTemperature:       37.8,
		PainLevel:             4,
	}
	adult := classifier.Classify(borderline)

	elderly := *borderline
	elderly.Age = 80
	senior := classifier.Classify(&elderly)

	// Mêmes constantes, facteur d'âge 1.5 : le niveau ne peut que monter
	levels := map[string]int{"Low": 0, "Medium": 1, "High": 2}
	assert.GreaterOrEqual(t, levels[senior.RiskLevel], levels[adult.RiskLevel])
}

func TestClassify_ConfidenceScoresSumToHundred(t *testing.T) {
	classifier := NewVitalsSeverityClassifier()

	result := classifier.Classify(normalVitals())
	total := result.ConfidenceScores["Low"] + result.ConfidenceScores["Medium"] + result.ConfidenceScores["High"]
	assert.InDelta(t, 100.0, total, 0.5)
}

func TestRecommend_HighRiskRoutesToEmergency(t *testing.T) {
	departments := NewDepartmentService(nil)

	recs := departments.Recommend("High", &dto.AssessmentRequest{
		HeartRate:             130,
		SystolicBloodPressure: 190,
		OxygenSaturation:      88,
		BodyTemperature:       39.0,
	})
	require.NotEmpty(t, recs)
	assert.Equal(t, "Emergency Department", recs[0].Name)
	assert.Equal(t, "IMMEDIATE", recs[0].Urgency)

	names := make([]string, 0, len(recs))
	for _, rec := range recs {
		names = append(names, rec.Name)
	}
	assert.Contains(t, names, "Cardiology")
	assert.Contains(t, names, "Infectious Disease")
	assert.Contains(t, names, "Pulmonology")
}

func TestRecommend_LowRiskDefaultsToGeneralPractice(t *testing.T) {
	departments := NewDepartmentService(nil)

	recs := departments.Recommend("Low", &dto.AssessmentRequest{
		HeartRate:             70,
		SystolicBloodPressure: 115,
		OxygenSaturation:      99,
		BodyTemperature:       36.7,
	})
	require.Len(t, recs, 1)
	assert.Equal(t, "General Practice", recs[0].Name)
	assert.Equal(t, "NON-URGENT", recs[0].Urgency)
}

func TestRecommend_NeverEmpty(t *testing.T) {
	departments := NewDepartmentService(nil)

	recs := departments.Recommend("Medium", &dto.AssessmentRequest{
		HeartRate:             80,
		SystolicBloodPressure: 120,
		OxygenSaturation:      97,
		BodyTemperature:       37.0,
	})
	require.NotEmpty(t, recs)
	assert.Equal(t, "Internal Medicine", recs[0].Name)
}

func TestListDepartments_FailsCleanlyWithoutDatabase(t *testing.T) {
	departments := NewDepartmentService(nil)

	infos, err := departments.List(context.Background())
	require.Error(t, err)
	assert.Nil(t, infos)
}
