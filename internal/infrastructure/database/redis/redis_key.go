package redis

import (
	"fmt"
	"regexp"
	"strings"
)

// RedisKeyGenerator génère et valide les clés Redis selon les conventions MedTriage
type RedisKeyGenerator struct {
	environment string
}

// NewRedisKeyGenerator crée une nouvelle instance du générateur
func NewRedisKeyGenerator(environment string) *RedisKeyGenerator {
	return &RedisKeyGenerator{environment: environment}
}

// RedisKeyPattern définit les patterns standards des clés
// Pattern: medtriage_{environment}_{domain}_{context}:{identifier}
type RedisKeyPattern struct {
	Domain  string // ehr, queue, cache...
	Context string // summary, config...
	TTL     int    // TTL en secondes, 0 = pas d'expiration
}

// Patterns prédéfinis
// Note : seuls les patterns réellement implémentés sont listés ici
var RedisKeyPatterns = map[string]RedisKeyPattern{
	// Cache des résumés EHR, clé = SHA-256 du document (24h : un même PDF re-soumis ne refacture pas le LLM)
	"ehr_summary": {Domain: "ehr", Context: "summary", TTL: 86400},
}

// GenerateKey génère une clé selon la convention : medtriage_{environment}_{domain}_{context}:{identifier}
func (rkg *RedisKeyGenerator) GenerateKey(patternName string, identifier ...string) (string, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return "", fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}

	prefix := fmt.Sprintf("medtriage_%s_%s_%s", rkg.environment, pattern.Domain, pattern.Context)

	if len(identifier) > 0 {
		identifierStr := strings.Join(identifier, "_")
		return fmt.Sprintf("%s:%s", prefix, identifierStr), nil
	}

	// Si pas d'identifier, retourner juste le préfixe (clés singleton)
	return prefix, nil
}

// GetTTL récupère le TTL d'un pattern
func (rkg *RedisKeyGenerator) GetTTL(patternName string) (int, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return 0, fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}
	return pattern.TTL, nil
}

// ValidateKey valide qu'une clé respecte les conventions
func (rkg *RedisKeyGenerator) ValidateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("clé vide")
	}

	if len(key) > 250 {
		return fmt.Errorf("clé trop longue (max 250 caractères): %d", len(key))
	}

	validKeyRegex := regexp.MustCompile(`^[a-zA-Z0-9_:\-]+$`)
	if !validKeyRegex.MatchString(key) {
		return fmt.Errorf("clé contient des caractères invalides: %s", key)
	}

	if !strings.HasPrefix(key, "medtriage_") {
		return fmt.Errorf("clé doit commencer par 'medtriage_': %s", key)
	}

	parts := strings.SplitN(key, ":", 2)
	prefixParts := strings.Split(parts[0], "_")
	if len(prefixParts) < 4 {
		return fmt.Errorf("structure préfixe invalide (format: medtriage_environment_domain_context): %s", parts[0])
	}

	return nil
}

// GenerateWildcardPattern construit le pattern KEYS pour invalider un domaine/contexte complet
func (rkg *RedisKeyGenerator) GenerateWildcardPattern(domain, context string) string {
	return fmt.Sprintf("medtriage_%s_%s_%s:*", rkg.environment, domain, context)
}
