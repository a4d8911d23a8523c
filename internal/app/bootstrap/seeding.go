package bootstrap

import (
	"context"
	"fmt"

	pgInfra "medtriage-core/internal/infrastructure/database/postgres"
)

// SeedingManager insère le référentiel des services hospitaliers
type SeedingManager struct {
	pgClient  *pgInfra.Client
	txManager *pgInfra.TransactionManager
}

// NewSeedingManager crée une nouvelle instance du gestionnaire de seeding
func NewSeedingManager(pgClient *pgInfra.Client, txManager *pgInfra.TransactionManager) *SeedingManager {
	return &SeedingManager{
		pgClient:  pgClient,
		txManager: txManager,
	}
}

// Référentiel des services vers lesquels l'évaluation peut orienter un patient
var departmentSeeds = []struct {
	Name string
	Icon string
}{
	{"Emergency Department", "emergency"},
	{"Cardiology", "cardiology"},
	{"Infectious Disease", "infectious"},
	{"Pulmonology", "emergency"},
	{"Internal Medicine", "internal"},
	{"General Practice", "general"},
}

// CheckSeedDataExists vérifie si le référentiel des services est déjà présent
func (sm *SeedingManager) CheckSeedDataExists(ctx context.Context) (bool, error) {
	var count int
	err := sm.pgClient.QueryRow(ctx,
		`SELECT COUNT(*) FROM triage_departments`,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("erreur vérification données seeding: %w", err)
	}
	return count >= len(departmentSeeds), nil
}

// ApplySeeding insère les services manquants dans une transaction unique
func (sm *SeedingManager) ApplySeeding(ctx context.Context, alreadySeeded bool) error {
	if alreadySeeded {
		fmt.Printf("[SEEDING] ✅ Référentiel services déjà présent\n")
		return nil
	}

	return sm.txManager.WithTransaction(ctx, func(tx *pgInfra.Transaction) error {
		for _, dept := range departmentSeeds {
			if err := tx.Exec(ctx,
				`INSERT INTO triage_departments (name, icon) VALUES ($1, $2)
				 ON CONFLICT (name) DO NOTHING`,
				dept.Name, dept.Icon,
			); err != nil {
				return fmt.Errorf("erreur seeding service %s: %w", dept.Name, err)
			}
		}
		fmt.Printf("[SEEDING] ✅ Référentiel services inséré (%d entrées)\n", len(departmentSeeds))
		return nil
	})
}
