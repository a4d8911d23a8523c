package queries

// AssessmentQueries regroupe toutes les requêtes SQL pour l'audit des évaluations
var AssessmentQueries = struct {
	InsertAssessment string
	ListDepartments  string
}{
	/**
	 * Enregistre une évaluation de triage pour audit
	 * Paramètres: $1 = id, $2 = patient_id, $3 = risk_level, $4 = confidence,
	 *             $5 = departments (JSONB), $6 = vitals (JSONB)
	 */
	InsertAssessment: `
		INSERT INTO triage_assessments (
			id, patient_id, risk_level, confidence, departments, vitals, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)
	`,

	/**
	 * Liste les services connus avec leur icône
	 */
	ListDepartments: `
		SELECT name, icon
		FROM triage_departments
		ORDER BY name
	`,
}
