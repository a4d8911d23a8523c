package bootstrap

import (
	"context"
	"fmt"

	pgInfra "medtriage-core/internal/infrastructure/database/postgres"
)

// SchemaManager garantit la présence du schéma PostgreSQL au démarrage
// Le service ne possède que deux tables (référentiel services + audit des
// évaluations) : le DDL est embarqué, pas d'outil de migration externe
type SchemaManager struct {
	pgClient *pgInfra.Client
}

// NewSchemaManager crée une nouvelle instance du gestionnaire de schéma
func NewSchemaManager(pgClient *pgInfra.Client) *SchemaManager {
	return &SchemaManager{pgClient: pgClient}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS triage_departments (
		name        TEXT PRIMARY KEY,
		icon        TEXT NOT NULL DEFAULT 'general',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS triage_assessments (
		id           UUID PRIMARY KEY,
		patient_id   TEXT,
		risk_level   TEXT NOT NULL CHECK (risk_level IN ('Low', 'Medium', 'High')),
		confidence   DOUBLE PRECISION NOT NULL,
		departments  JSONB NOT NULL,
		vitals       JSONB NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_triage_assessments_created_at
		ON triage_assessments (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_triage_assessments_risk_level
		ON triage_assessments (risk_level)`,
}

// EnsureSchema applique le DDL embarqué (idempotent)
func (sm *SchemaManager) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := sm.pgClient.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("erreur application schéma: %w", err)
		}
	}
	return nil
}
