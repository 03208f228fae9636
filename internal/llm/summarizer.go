package llm

import (
	"context"
	"fmt"

	"github.com/odenysenko/postlens/internal/model"
)

// Narrative is the generated digest, kept strictly separate from the
// aggregate views it describes.
type Narrative struct {
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Digest     string `json:"digest_md"`
	TokensUsed int    `json:"tokens_used"`
}

// Summarizer turns an analytics summary into a short narrative digest via a
// configured provider. A summarizer with no provider is valid and disabled.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from the configuration. An empty
// provider name yields a disabled summarizer; an unknown one is an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	s := &Summarizer{config: config}

	switch config.Provider {
	case "":
		return s, nil
	case "openai":
		provider, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, fmt.Errorf("init openai provider: %w", err)
		}
		s.provider = provider
		return s, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", config.Provider)
	}
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateDigest produces the narrative for an account summary.
func (s *Summarizer) GenerateDigest(ctx context.Context, account string, summary model.AnalyticsSummary) (*Narrative, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	resp, err := s.provider.Narrate(ctx, NarrateRequest{
		Account:   account,
		Summary:   summary,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Narrative{
		Provider:   s.provider.Name(),
		Model:      resp.Model,
		Digest:     resp.Narrative,
		TokensUsed: resp.TokensUsed,
	}, nil
}

// RenderSeparateMarkdown renders the narrative as a standalone document. The
// digest always ships apart from the report so generated prose can never be
// mistaken for computed aggregates.
func RenderSeparateMarkdown(n *Narrative) string {
	return fmt.Sprintf(`# Narrative digest

> Generated by %s (%s). Descriptive prose only - verify against the report's
> aggregate tables before acting on it.

%s
`, n.Provider, n.Model, n.Digest)
}
