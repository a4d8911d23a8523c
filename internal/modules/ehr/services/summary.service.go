package services

import (
	"context"
	"log"

	"medtriage-core/internal/modules/ehr/dto"
)

// SummaryService orchestre la synthèse d'un dossier médical :
// extraction du texte, cache, modèle Groq, repli règles.
type SummaryService struct {
	extractor *PDFExtractor
	cache     *SummaryCache
	groq      *GroqSummarizer
	fallback  *RuleBasedSummarizer
}

func NewSummaryService(
	extractor *PDFExtractor,
	cache *SummaryCache,
	groq *GroqSummarizer,
	fallback *RuleBasedSummarizer,
) *SummaryService {
	return &SummaryService{
		extractor: extractor,
		cache:     cache,
		groq:      groq,
		fallback:  fallback,
	}
}

// SummarizePDF extrait le texte du PDF et produit une synthèse structurée.
// Ordre de résolution : cache, modèle Groq, extraction par règles.
// Seule une extraction de texte impossible est une erreur.
func (s *SummaryService) SummarizePDF(ctx context.Context, content []byte) (*dto.SummarizeResult, error) {
	text, err := s.extractor.Extract(content)
	if err != nil {
		return nil, err
	}

	fingerprint := s.cache.Fingerprint(text)
	if cached := s.cache.Get(ctx, fingerprint); cached != nil {
		return &dto.SummarizeResult{Summary: cached, Method: dto.MethodCache}, nil
	}

	if s.groq.Available() {
		summary, err := s.groq.Summarize(ctx, text)
		if err == nil {
			s.cache.Set(ctx, fingerprint, summary)
			return &dto.SummarizeResult{Summary: summary, Method: dto.MethodGroqAI}, nil
		}
		log.Printf("[EHR] ⚠️ Synthèse Groq impossible, repli sur l'extraction par règles: %v", err)
	}

	summary := s.fallback.Summarize(text)
	s.cache.Set(ctx, fingerprint, summary)
	return &dto.SummarizeResult{Summary: summary, Method: dto.MethodRuleBased}, nil
}
