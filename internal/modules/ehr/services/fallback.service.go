package services

import (
	"fmt"
	"regexp"
	"strings"

	"medtriage-core/internal/modules/ehr/dto"
)

// Patterns d'extraction pour les dossiers rédigés en anglais clinique usuel
var (
	agePattern       = regexp.MustCompile(`(\d{1,3})\s*-?\s*years?\s*-?\s*old`)
	namePattern      = regexp.MustCompile(`(?i)(?:patient|name)\s*:\s*([a-zA-Z\s]+)`)
	heartRatePattern = regexp.MustCompile(`(?:heart\s*rate|hr|pulse)\s*[:=]?\s*(\d{2,3})`)
	bpPattern        = regexp.MustCompile(`(?:blood\s*pressure|bp)\s*[:=]?\s*(\d{2,3})/?(\d{2,3})?`)
	tempPattern      = regexp.MustCompile(`(?:temperature|temp)\s*[:=]?\s*(\d{2,3}\.?\d*)`)
	oxygenPattern    = regexp.MustCompile(`(?:oxygen|o2|spo2|saturation)\s*[:=]?\s*(\d{2,3})`)
	respPattern      = regexp.MustCompile(`(?:respiratory\s*rate|rr)\s*[:=]?\s*(\d{1,3})`)
	diagnosisPattern = regexp.MustCompile(`(?i)(?:diagnosis|impression|assessment)\s*:\s*(.+)`)
	complaintPattern = regexp.MustCompile(`(?i)(?:chief\s*complaint|presenting|complains?\s*of)\s*:\s*(.+)`)
	medsPattern      = regexp.MustCompile(`(?is)(?:medications?|meds|prescriptions?)\s*:\s*(.+?)(?:\n\n|\n[A-Z]|$)`)
	allergyPattern   = regexp.MustCompile(`(?i)(?:allergies|allergy)\s*:\s*(.+)`)
)

// RuleBasedSummarizer extraction par expressions régulières, utilisée quand
// l'API Groq est indisponible ou non configurée. Moins riche mais toujours
// fonctionnelle hors ligne.
type RuleBasedSummarizer struct{}

func NewRuleBasedSummarizer() *RuleBasedSummarizer {
	return &RuleBasedSummarizer{}
}

// Summarize extrait les champs reconnaissables du texte du dossier
func (s *RuleBasedSummarizer) Summarize(text string) *dto.EHRSummary {
	lower := strings.ToLower(text)

	summary := &dto.EHRSummary{
		Medications: []string{},
		Allergies:   []string{},
	}

	if m := agePattern.FindStringSubmatch(lower); m != nil {
		summary.PatientDemographics.Age = m[1] + " years"
	}
	if strings.Contains(lower, "female") {
		summary.PatientDemographics.Gender = "Female"
	} else if strings.Contains(lower, "male") {
		summary.PatientDemographics.Gender = "Male"
	}
	if m := namePattern.FindStringSubmatch(text); m != nil {
		summary.PatientDemographics.Name = firstLine(m[1])
	}

	if m := heartRatePattern.FindStringSubmatch(lower); m != nil {
		summary.VitalSigns.HeartRate = m[1] + " bpm"
	}
	if m := bpPattern.FindStringSubmatch(lower); m != nil {
		if m[2] != "" {
			summary.VitalSigns.BloodPressure = fmt.Sprintf("%s/%s mmHg", m[1], m[2])
		} else {
			summary.VitalSigns.BloodPressure = m[1] + " mmHg"
		}
	}
	if m := tempPattern.FindStringSubmatch(lower); m != nil {
		summary.VitalSigns.Temperature = m[1] + " C"
	}
	if m := oxygenPattern.FindStringSubmatch(lower); m != nil {
		summary.VitalSigns.OxygenSaturation = m[1] + "%"
	}
	if m := respPattern.FindStringSubmatch(lower); m != nil {
		summary.VitalSigns.RespiratoryRate = m[1] + "/min"
	}

	if m := diagnosisPattern.FindStringSubmatch(text); m != nil {
		summary.Diagnosis = firstLine(m[1])
	}
	if m := complaintPattern.FindStringSubmatch(text); m != nil {
		summary.ChiefComplaint = firstLine(m[1])
	}

	if m := medsPattern.FindStringSubmatch(text); m != nil {
		summary.Medications = splitList(m[1])
	}
	if m := allergyPattern.FindStringSubmatch(text); m != nil {
		summary.Allergies = splitList(firstLine(m[1]))
	}

	return summary
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func splitList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
