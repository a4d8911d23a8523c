package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
)

// BootstrapSystem orchestre le processus de démarrage automatique
// Version simplifiée : 2 phases séquentielles sans surcomplexité
type BootstrapSystem struct {
	schemaManager  *SchemaManager
	seedingManager *SeedingManager
	timeout        time.Duration
}

// BootstrapResult contient le résultat d'exécution du bootstrap
type BootstrapResult struct {
	Success        bool          `json:"success"`
	TotalDuration  time.Duration `json:"total_duration"`
	PhasesExecuted []PhaseResult `json:"phases_executed"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// PhaseResult contient le résultat d'une phase du bootstrap
type PhaseResult struct {
	Phase       string        `json:"phase"`
	Success     bool          `json:"success"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description"`
	Error       string        `json:"error,omitempty"`
}

// NewBootstrapSystem crée une nouvelle instance du système de bootstrap
func NewBootstrapSystem(
	schemaManager *SchemaManager,
	seedingManager *SeedingManager,
) *BootstrapSystem {
	return &BootstrapSystem{
		schemaManager:  schemaManager,
		seedingManager: seedingManager,
		timeout:        2 * time.Minute, // Timeout global
	}
}

// Execute lance le processus de bootstrap complet avec les 2 phases
func (bs *BootstrapSystem) Execute() (*BootstrapResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), bs.timeout)
	defer cancel()

	fmt.Printf("[BOOTSTRAP] Démarrage BootstrapSystem (timeout: %v)\n", bs.timeout)

	result := &BootstrapResult{
		Success:        true,
		PhasesExecuted: []PhaseResult{},
	}

	// Phase 0: Schéma PostgreSQL
	phase0Result := bs.executeSchemaPhase(ctx)
	result.PhasesExecuted = append(result.PhasesExecuted, phase0Result)
	if !phase0Result.Success {
		result.Success = false
		result.ErrorMessage = fmt.Sprintf("Phase 0 échouée: %s", phase0Result.Error)
		return bs.finalizeResult(result, startTime), fmt.Errorf("bootstrap failed at phase 0: %s", phase0Result.Error)
	}

	// Phase 1: Seeding référentiel services
	phase1Result := bs.executeSeedingPhase(ctx)
	result.PhasesExecuted = append(result.PhasesExecuted, phase1Result)
	if !phase1Result.Success {
		result.Success = false
		result.ErrorMessage = fmt.Sprintf("Phase 1 échouée: %s", phase1Result.Error)
		return bs.finalizeResult(result, startTime), fmt.Errorf("bootstrap failed at phase 1: %s", phase1Result.Error)
	}

	// Succès complet
	result = bs.finalizeResult(result, startTime)
	fmt.Printf("[BOOTSTRAP] ✅ BootstrapSystem terminé avec succès en %v\n", result.TotalDuration)
	fmt.Printf("[BOOTSTRAP] 🎯 Application prête pour démarrage serveur HTTP\n")

	return result, nil
}

// executeSchemaPhase exécute la Phase 0: Schéma PostgreSQL
func (bs *BootstrapSystem) executeSchemaPhase(ctx context.Context) PhaseResult {
	startTime := time.Now()
	phase := "Phase 0: Schéma PostgreSQL"

	fmt.Printf("[BOOTSTRAP] 🗄️  Démarrage %s\n", phase)

	err := bs.schemaManager.EnsureSchema(ctx)
	duration := time.Since(startTime)

	if err != nil {
		fmt.Printf("[BOOTSTRAP] ❌ %s échouée en %v: %v\n", phase, duration, err)
		return PhaseResult{
			Phase:       phase,
			Success:     false,
			Duration:    duration,
			Description: "Application DDL embarqué",
			Error:       err.Error(),
		}
	}

	fmt.Printf("[BOOTSTRAP] ✅ %s terminée en %v\n", phase, duration)
	return PhaseResult{
		Phase:       phase,
		Success:     true,
		Duration:    duration,
		Description: "Tables triage_departments et triage_assessments présentes",
	}
}

// executeSeedingPhase exécute la Phase 1: Seeding référentiel services
func (bs *BootstrapSystem) executeSeedingPhase(ctx context.Context) PhaseResult {
	startTime := time.Now()
	phase := "Phase 1: Seeding référentiel"

	fmt.Printf("[BOOTSTRAP] 🌱 Démarrage %s\n", phase)

	exists, err := bs.seedingManager.CheckSeedDataExists(ctx)
	if err != nil {
		duration := time.Since(startTime)
		fmt.Printf("[BOOTSTRAP] ❌ %s - Erreur vérification données en %v: %v\n", phase, duration, err)
		return PhaseResult{
			Phase:       phase,
			Success:     false,
			Duration:    duration,
			Description: "Vérification données existantes",
			Error:       fmt.Sprintf("data check failed: %v", err),
		}
	}

	err = bs.seedingManager.ApplySeeding(ctx, exists)
	duration := time.Since(startTime)

	if err != nil {
		fmt.Printf("[BOOTSTRAP] ❌ %s échouée en %v: %v\n", phase, duration, err)
		return PhaseResult{
			Phase:       phase,
			Success:     false,
			Duration:    duration,
			Description: "Application seeding référentiel",
			Error:       err.Error(),
		}
	}

	fmt.Printf("[BOOTSTRAP] ✅ %s terminée en %v\n", phase, duration)
	return PhaseResult{
		Phase:       phase,
		Success:     true,
		Duration:    duration,
		Description: "Référentiel services présent",
	}
}

// finalizeResult calcule la durée totale du bootstrap
func (bs *BootstrapSystem) finalizeResult(result *BootstrapResult, startTime time.Time) *BootstrapResult {
	result.TotalDuration = time.Since(startTime)
	return result
}

// RegisterBootstrapLifecycle exécute le bootstrap avant le démarrage du serveur HTTP
func RegisterBootstrapLifecycle(lc fx.Lifecycle, bs *BootstrapSystem) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := bs.Execute()
			return err
		},
	})
}
