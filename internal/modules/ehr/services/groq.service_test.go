package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtriage-core/internal/app/config"
)

func TestParseSummaryJSON_PlainJSON(t *testing.T) {
	summary, err := ParseSummaryJSON(`{"chief_complaint": "headache", "diagnosis": "migraine"}`)
	require.NoError(t, err)
	assert.Equal(t, "headache", summary.ChiefComplaint)
	assert.Equal(t, "migraine", summary.Diagnosis)
}

func TestParseSummaryJSON_StripsMarkdownFences(t *testing.T) {
	content := "```json\n{\"diagnosis\": \"pneumonia\", \"medications\": [\"amoxicillin\"]}\n```"

	summary, err := ParseSummaryJSON(content)
	require.NoError(t, err)
	assert.Equal(t, "pneumonia", summary.Diagnosis)
	assert.Equal(t, []string{"amoxicillin"}, summary.Medications)
}

func TestParseSummaryJSON_BareFences(t *testing.T) {
	summary, err := ParseSummaryJSON("```\n{\"diagnosis\": \"sepsis\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "sepsis", summary.Diagnosis)
}

func TestParseSummaryJSON_InvalidJSON(t *testing.T) {
	_, err := ParseSummaryJSON("the patient seems fine")
	require.Error(t, err)
}

func newGroqTestConfig(baseURL string) *config.Config {
	return &config.Config{
		Groq: config.GroqConfig{
			APIKey:  "test-key",
			BaseURL: baseURL,
			Model:   "llama-3.3-70b-versatile",
			Timeout: 5 * time.Second,
		},
	}
}

func TestGroqSummarize_ParsesCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "llama-3.3-70b-versatile", payload["model"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{
					"role":    "assistant",
					"content": "```json\n{\"diagnosis\": \"bronchitis\"}\n```",
				}},
			},
		})
	}))
	defer server.Close()

	summarizer := NewGroqSummarizer(newGroqTestConfig(server.URL))

	summary, err := summarizer.Summarize(context.Background(), "patient record text")
	require.NoError(t, err)
	assert.Equal(t, "bronchitis", summary.Diagnosis)
}

func TestGroqSummarize_APIErrorIsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limit exceeded"},
		})
	}))
	defer server.Close()

	summarizer := NewGroqSummarizer(newGroqTestConfig(server.URL))

	_, err := summarizer.Summarize(context.Background(), "patient record text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestGroqSummarize_RequiresAPIKey(t *testing.T) {
	cfg := newGroqTestConfig("https://api.groq.com/openai/v1")
	cfg.Groq.APIKey = ""
	summarizer := NewGroqSummarizer(cfg)

	assert.False(t, summarizer.Available())
	_, err := summarizer.Summarize(context.Background(), "text")
	require.Error(t, err)
}
