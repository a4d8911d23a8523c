package services

import (
	"time"

	"medtriage-core/internal/modules/queue/dto"
)

// Pondération du score de priorité.
//
// Score = poids_risque × 50  (High → 150, Medium → 100, Low → 50)
//       + minutes_attente × 2  (vieillissement, anti-famine)
//       + bonus mode d'arrivée  (Ambulance +15, Wheelchair +5)
//       + bonus constantes vitales
//
// Politique de croisement (assumée et testée) : l'écart entre deux niveaux
// de risque adjacents est de 50 points, donc à constantes égales un patient
// Low dépasse un Medium fraîchement arrivé après 25 minutes d'attente, et
// un High fraîchement arrivé après 50 minutes. Un patient n'attend jamais
// indéfiniment derrière un flux continu d'arrivées plus graves.
const (
	RiskBaseUnit         = 50.0
	AgingPointsPerMinute = 2.0

	PainPointsPerLevel      = 2.0
	ChronicPointsPerDisease = 3.0

	HypoxiaBonus       = 25.0 // SpO2 < 92
	TachycardiaBonus   = 20.0 // FC > 110
	BloodPressureBonus = 20.0 // PAS > 180 ou < 90
	FeverBonus         = 10.0 // T > 38°C
	ElderlyBonus       = 5.0  // âge > 65

	AmbulanceArrivalBonus  = 15.0
	WheelchairArrivalBonus = 5.0
)

// PriorityCalculator calcule le score de priorité d'une entrée de file.
// Fonction pure : mêmes entrées (y compris "now") → même score, aucun état caché.
type PriorityCalculator struct{}

func NewPriorityCalculator() *PriorityCalculator {
	return &PriorityCalculator{}
}

// Score calcule le score de priorité courant d'une entrée (plus haut = plus urgent).
// Strictement croissant avec le temps d'attente à risque fixé ; jamais négatif,
// y compris à attente nulle.
func (pc *PriorityCalculator) Score(entry *dto.PatientEntry, now time.Time) float64 {
	base := float64(entry.RiskLevel.Weight()) * RiskBaseUnit

	score := base
	score += pc.WaitingMinutes(entry, now) * AgingPointsPerMinute
	score += entry.Vitals.PainLevel * PainPointsPerLevel
	score += entry.Vitals.ChronicDiseaseCount * ChronicPointsPerDisease
	score += pc.arrivalBonus(entry.ArrivalMode)
	score += pc.deteriorationBonus(entry.Vitals)

	return score
}

// arrivalBonus points selon le mode d'arrivée (Walk-in et inconnu : 0)
func (pc *PriorityCalculator) arrivalBonus(mode string) float64 {
	switch mode {
	case dto.ArrivalAmbulance:
		return AmbulanceArrivalBonus
	case dto.ArrivalWheelchair:
		return WheelchairArrivalBonus
	}
	return 0
}

// WaitingMinutes temps d'attente écoulé en minutes (0 si now précède l'arrivée)
func (pc *PriorityCalculator) WaitingMinutes(entry *dto.PatientEntry, now time.Time) float64 {
	wait := now.Sub(entry.ArrivalTime)
	if wait < 0 {
		return 0
	}
	return wait.Minutes()
}

// deteriorationBonus points supplémentaires selon les seuils de dégradation clinique
func (pc *PriorityCalculator) deteriorationBonus(vitals dto.VitalsSnapshot) float64 {
	bonus := 0.0

	if vitals.OxygenSaturation > 0 && vitals.OxygenSaturation < 92 {
		bonus += HypoxiaBonus
	}
	if vitals.HeartRate > 110 {
		bonus += TachycardiaBonus
	}
	if vitals.SystolicBloodPressure > 180 || (vitals.SystolicBloodPressure > 0 && vitals.SystolicBloodPressure < 90) {
		bonus += BloodPressureBonus
	}
	if vitals.BodyTemperature > 38 {
		bonus += FeverBonus
	}
	if vitals.Age > 65 {
		bonus += ElderlyBonus
	}

	return bonus
}
