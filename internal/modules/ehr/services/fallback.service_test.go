package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecord = `Patient: John Carter
The patient is a 67-year-old male presenting to the clinic.

Chief Complaint: chest pain radiating to left arm

Heart Rate: 112
Blood Pressure: 165/95
Temperature: 38.4
SpO2: 91
Respiratory Rate: 22

Diagnosis: acute coronary syndrome, suspected
Medications: aspirin 100mg, atorvastatin 40mg, metoprolol 50mg
Allergies: penicillin, latex
`

func TestRuleBasedSummarize_ExtractsDemographics(t *testing.T) {
	summarizer := NewRuleBasedSummarizer()

	summary := summarizer.Summarize(sampleRecord)
	assert.Equal(t, "John Carter", summary.PatientDemographics.Name)
	assert.Equal(t, "67 years", summary.PatientDemographics.Age)
	assert.Equal(t, "Male", summary.PatientDemographics.Gender)
}

func TestRuleBasedSummarize_ExtractsVitals(t *testing.T) {
	summarizer := NewRuleBasedSummarizer()

	summary := summarizer.Summarize(sampleRecord)
	assert.Equal(t, "112 bpm", summary.VitalSigns.HeartRate)
	assert.Equal(t, "165/95 mmHg", summary.VitalSigns.BloodPressure)
	assert.Equal(t, "38.4 C", summary.VitalSigns.Temperature)
	assert.Equal(t, "91%", summary.VitalSigns.OxygenSaturation)
	assert.Equal(t, "22/min", summary.VitalSigns.RespiratoryRate)
}

func TestRuleBasedSummarize_ExtractsClinicalFields(t *testing.T) {
	summarizer := NewRuleBasedSummarizer()

	summary := summarizer.Summarize(sampleRecord)
	assert.Equal(t, "chest pain radiating to left arm", summary.ChiefComplaint)
	assert.Equal(t, "acute coronary syndrome, suspected", summary.Diagnosis)
	assert.Equal(t, []string{"aspirin 100mg", "atorvastatin 40mg", "metoprolol 50mg"}, summary.Medications)
	assert.Equal(t, []string{"penicillin", "latex"}, summary.Allergies)
}

func TestRuleBasedSummarize_EmptyTextYieldsEmptySummary(t *testing.T) {
	summarizer := NewRuleBasedSummarizer()

	summary := summarizer.Summarize("rien d'exploitable ici")
	require.NotNil(t, summary)
	assert.Empty(t, summary.PatientDemographics.Name)
	assert.Empty(t, summary.VitalSigns.HeartRate)
	assert.Empty(t, summary.Medications)
	assert.Empty(t, summary.Allergies)
}

func TestRuleBasedSummarize_FemaleDetectedBeforeMale(t *testing.T) {
	summarizer := NewRuleBasedSummarizer()

	// "female" contient "male" : la détection doit rester correcte
	summary := summarizer.Summarize("The patient is a 34-year-old female.")
	assert.Equal(t, "Female", summary.PatientDemographics.Gender)
}
