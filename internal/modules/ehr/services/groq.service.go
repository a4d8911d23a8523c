package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"medtriage-core/internal/app/config"
	"medtriage-core/internal/modules/ehr/dto"
)

const extractionPrompt = `You are a medical data extraction assistant. Analyze the following Electronic Health Record (EHR) text and extract structured information.

Extract the following information in JSON format:
1. Patient Demographics (name, age, gender, date_of_birth)
2. Chief Complaint (primary reason for visit)
3. Vital Signs (temperature, blood_pressure, heart_rate, oxygen_saturation, respiratory_rate)
4. Diagnosis (medical diagnosis or assessment)
5. Medications (list of prescribed medications with dosage if available)
6. Allergies (list of known allergies)
7. Additional Notes (any other relevant medical information)

If any field is not found in the text, use "Not specified" or an empty list as appropriate.

EHR TEXT:
%s

Respond ONLY with valid JSON matching the requested structure. Do NOT add any explanation, markdown, or additional text.`

// GroqSummarizer synthétise un dossier médical via l'API Groq (chat completions)
type GroqSummarizer struct {
	config     config.GroqConfig
	httpClient *http.Client
}

func NewGroqSummarizer(cfg *config.Config) *GroqSummarizer {
	return &GroqSummarizer{
		config: cfg.Groq,
		httpClient: &http.Client{
			Timeout: cfg.Groq.Timeout,
		},
	}
}

// Available indique si une clé d'API est configurée
func (s *GroqSummarizer) Available() bool {
	return s.config.APIKey != ""
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize envoie le texte du dossier au modèle et parse la synthèse JSON
func (s *GroqSummarizer) Summarize(ctx context.Context, text string) (*dto.EHRSummary, error) {
	if !s.Available() {
		return nil, fmt.Errorf("groq API key not configured")
	}

	payload := chatCompletionRequest{
		Model: s.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a medical data extraction assistant."},
			{Role: "user", Content: fmt.Sprintf(extractionPrompt, text)},
		},
		Temperature: 0.2,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal groq request: %w", err)
	}

	url := strings.TrimSuffix(s.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build groq request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read groq response: %w", err)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(responseBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode groq response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if completion.Error != nil {
			return nil, fmt.Errorf("groq API error (%d): %s", resp.StatusCode, completion.Error.Message)
		}
		return nil, fmt.Errorf("groq API error: status %d", resp.StatusCode)
	}

	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("groq response contains no choices")
	}

	return ParseSummaryJSON(completion.Choices[0].Message.Content)
}

// ParseSummaryJSON parse la réponse du modèle en tolérant les blocs markdown
// dont il entoure parfois le JSON malgré la consigne
func ParseSummaryJSON(content string) (*dto.EHRSummary, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var summary dto.EHRSummary
	if err := json.Unmarshal([]byte(content), &summary); err != nil {
		return nil, fmt.Errorf("groq returned invalid JSON: %w", err)
	}

	return &summary, nil
}
