package llm

import (
	"context"
	"fmt"

	"github.com/odenysenko/postlens/internal/model"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Narrate generates a narrative reading of an analytics summary
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)
}

// NarrateRequest contains the input for narrative generation.
type NarrateRequest struct {
	// Account is the monitored account the summary describes
	Account string

	// Summary is the aggregate view to narrate; the narrative never feeds
	// back into aggregation
	Summary model.AnalyticsSummary

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// NarrateResponse contains the LLM's narrative output.
type NarrateResponse struct {
	// Narrative is the generated text
	Narrative string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// ConfigFromModel maps the application config onto the provider config.
func ConfigFromModel(m model.LLMConfig) Config {
	return Config{
		Provider:  m.Provider,
		Model:     m.Model,
		APIKey:    m.APIKey,
		BaseURL:   m.BaseURL,
		Timeout:   m.Timeout,
		MaxTokens: m.MaxTokens,
	}
}

// BuildPrompt constructs the default prompt for narrative generation.
func BuildPrompt(account string, s model.AnalyticsSummary) string {
	prompt := fmt.Sprintf(`You are writing a short monitoring digest for an analyst. The numbers below are keyword-heuristic aggregates over collected social-media posts - they say nothing about intent or truth.

RULES:
1. Describe only the distribution shown below; do not speculate about motive.
2. If a view is empty, say so explicitly.
3. Keep it to 3-5 sentences.

Account: %s
Posts: %d total, %d clean, %d noise (%.1f%% noise)

Top matched queries:
`, account, s.Totals.TotalPosts, s.Totals.TotalClean, s.Totals.TotalNoise, s.Totals.NoiseShare)

	for i, stat := range s.MatchedQueries {
		if i >= 5 {
			break
		}
		prompt += fmt.Sprintf("- %s: %d posts (%.1f%%, cumulative %.1f%%)\n",
			stat.MatchedQuery, stat.Count, stat.Percent, stat.CumulativePercent)
	}
	if len(s.MatchedQueries) == 0 {
		prompt += "(none)\n"
	}

	prompt += "\nTheme shares:\n"
	for _, stat := range s.Themes {
		prompt += fmt.Sprintf("- %s: %d posts (%.1f%%)\n", stat.Theme, stat.Count, stat.Percent)
	}
	if len(s.Themes) == 0 {
		prompt += "(none)\n"
	}

	if len(s.NoiseMarkers) > 0 {
		prompt += "\nMost frequent noise markers:\n"
		for i, stat := range s.NoiseMarkers {
			if i >= 5 {
				break
			}
			prompt += fmt.Sprintf("- %s: %d posts\n", stat.Marker, stat.Count)
		}
	}

	return prompt
}
