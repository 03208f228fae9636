package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/odenysenko/postlens/internal/analytics"
	"github.com/odenysenko/postlens/internal/export"
	"github.com/odenysenko/postlens/internal/llm"
	"github.com/odenysenko/postlens/internal/model"
	"github.com/odenysenko/postlens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON    string
	outMD      string
	outCSV     string
	monthly    bool
	timeout    time.Duration
	noFooter   bool
	llmEnabled bool
	llmModel   string

	filterMatchedQuery string
	filterAuthor       string
	filterStart        string
	filterEnd          string
	filterSearch       string
	includeNoise       bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <account>",
	Short: "Build an analytics report for a monitored account",
	Long: `Report loads every dataset configured for an account to:
- Normalize raw CSV rows into posts
- Classify each post into a thematic category
- Flag noise posts using the account's keyword dictionary
- Aggregate matched-query, timeline, theme, author, and noise-marker views

Example:
  postlens report kremlin_watch
  postlens report kremlin_watch --json report.json --md report.md
  postlens report kremlin_watch --start 2024-01-01 --end 2024-03-31 --monthly
  postlens report kremlin_watch --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	// Output flags
	reportCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	reportCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	reportCmd.Flags().StringVar(&outCSV, "csv", "", "output CSV path for the filtered post set (optional)")
	reportCmd.Flags().BoolVar(&monthly, "monthly", false, "bucket the timeline by month instead of day")
	reportCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall report timeout")
	reportCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Filter flags
	reportCmd.Flags().StringVar(&filterMatchedQuery, "matched-query", "", "keep posts matched by this query (\"all\" disables)")
	reportCmd.Flags().StringVar(&filterAuthor, "author", "", "keep posts by this author (\"all\" disables)")
	reportCmd.Flags().StringVar(&filterStart, "start", "", "inclusive lower date bound (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&filterEnd, "end", "", "inclusive upper date bound (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&filterSearch, "search", "", "case-insensitive substring over text, author, matched query, theme")
	reportCmd.Flags().BoolVar(&includeNoise, "include-noise", false, "keep noise posts in the report")

	// LLM flags
	reportCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	reportCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runReport(cmd *cobra.Command, args []string) error {
	account := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Output.IncludeFooter = cfg.Output.IncludeFooter && !noFooter

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	log := newLogger()
	p := pipeline.New(cfg, log)
	if !p.HasAccount(account) {
		return fmt.Errorf("unknown account %q (configured: %s)", account, strings.Join(p.Accounts(), ", "))
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Account: %s\n", account)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintln(os.Stderr)
	}

	result := p.LoadAccountAnalytics(ctx, account)

	granularity := analytics.BucketDay
	if monthly {
		granularity = analytics.BucketMonth
	}

	filter := analytics.FilterState{
		MatchedQuery: filterMatchedQuery,
		Author:       filterAuthor,
		StartDate:    filterStart,
		EndDate:      filterEnd,
		IncludeNoise: includeNoise,
		Search:       filterSearch,
	}
	if filter.Active() || monthly {
		options := result.Summary.Filters
		posts := analytics.Filter(result.Posts, filter)
		summary := analytics.Summarize(posts, granularity)
		summary.Filters = options
		result = &model.AccountAnalytics{Account: account, Posts: posts, Summary: summary}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d posts\n", result.Summary.Totals.TotalPosts)
		fmt.Fprintf(os.Stderr, "✓ Clean: %d, noise: %d\n", result.Summary.Totals.TotalClean, result.Summary.Totals.TotalNoise)
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return fmt.Errorf("render Markdown: %w", err)
		}
	}
	if outCSV != "" {
		if err := os.WriteFile(outCSV, []byte(export.Render(result.Posts)), 0o644); err != nil {
			return fmt.Errorf("render CSV: %w", err)
		}
	}

	if llmEnabled {
		if err := runNarrative(ctx, cfg, result); err != nil {
			return err
		}
	}

	renderer.RenderSummary(result)
	return nil
}

// runNarrative generates the LLM digest and writes it next to the Markdown
// report, or to <account>.llm.md when no Markdown output was requested.
func runNarrative(ctx context.Context, cfg *model.Config, result *model.AccountAnalytics) error {
	summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("llm setup: %w", err)
	}
	if !summarizer.IsEnabled() {
		return nil
	}

	narrative, err := summarizer.GenerateDigest(ctx, result.Account, result.Summary)
	if err != nil {
		return fmt.Errorf("llm digest: %w", err)
	}

	path := result.Account + ".llm.md"
	if outMD != "" {
		path = strings.TrimSuffix(outMD, ".md") + ".llm.md"
	}
	if err := os.WriteFile(path, []byte(llm.RenderSeparateMarkdown(narrative)), 0o644); err != nil {
		return fmt.Errorf("write narrative: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Generated narrative using %s/%s\n", narrative.Provider, narrative.Model)
	}
	return nil
}
