package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"medtriage-core/internal/infrastructure/database/redis"
	"medtriage-core/internal/modules/ehr/dto"
)

// SummaryCache cache Redis des synthèses, indexé par empreinte SHA-256 du
// texte extrait : un même dossier re-soumis ne repart pas vers le modèle.
type SummaryCache struct {
	redisClient *redis.Client
}

func NewSummaryCache(redisClient *redis.Client) *SummaryCache {
	return &SummaryCache{redisClient: redisClient}
}

// Fingerprint empreinte du texte servant d'identifiant de cache
func (c *SummaryCache) Fingerprint(text string) string {
	digest := sha256.Sum256([]byte(text))
	return hex.EncodeToString(digest[:])
}

// Get retourne la synthèse en cache, ou nil si absente ou indéchiffrable
func (c *SummaryCache) Get(ctx context.Context, fingerprint string) *dto.EHRSummary {
	raw, err := c.redisClient.GetWithPattern(ctx, "ehr_summary", fingerprint)
	if err != nil {
		return nil
	}

	var summary dto.EHRSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil
	}

	return &summary
}

// Set mémorise une synthèse, best-effort
func (c *SummaryCache) Set(ctx context.Context, fingerprint string, summary *dto.EHRSummary) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}

	_ = c.redisClient.SetWithPattern(ctx, "ehr_summary", payload, fingerprint)
}
