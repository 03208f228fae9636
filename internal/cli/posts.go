package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/odenysenko/postlens/internal/analytics"
	"github.com/odenysenko/postlens/internal/export"
	"github.com/odenysenko/postlens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	feedSearch       string
	feedPlatform     string
	feedYear         string
	feedMinReactions int
	feedLimit        int
	feedJSON         bool
	feedCSV          string
)

// postsCmd represents the posts command
var postsCmd = &cobra.Command{
	Use:   "posts <account>",
	Short: "List an account's posts newest-first",
	Long: `Posts loads every dataset configured for an account and prints the
normalized posts in feed order (newest first, undated posts last).

Example:
  postlens posts kremlin_watch --limit 20
  postlens posts kremlin_watch --platform telegram --year 2024
  postlens posts kremlin_watch --search ceasefire --json`,
	Args: cobra.ExactArgs(1),
	RunE: runPosts,
}

func init() {
	rootCmd.AddCommand(postsCmd)

	postsCmd.Flags().StringVar(&feedSearch, "search", "", "case-insensitive substring over text, author, url, matched query")
	postsCmd.Flags().StringVar(&feedPlatform, "platform", "", "keep posts from this platform (\"all\" disables)")
	postsCmd.Flags().StringVar(&feedYear, "year", "", "keep posts from this calendar year (\"all\" disables)")
	postsCmd.Flags().IntVar(&feedMinReactions, "min-reactions", 0, "keep posts with at least this many reactions")
	postsCmd.Flags().IntVar(&feedLimit, "limit", 0, "print at most this many posts (0 = all)")
	postsCmd.Flags().BoolVar(&feedJSON, "json", false, "print posts as JSON instead of text")
	postsCmd.Flags().StringVar(&feedCSV, "csv", "", "write the enriched post set to this CSV path instead of printing")
}

func runPosts(cmd *cobra.Command, args []string) error {
	account := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger()
	p := pipeline.New(cfg, log)
	if !p.HasAccount(account) {
		return fmt.Errorf("unknown account %q", account)
	}

	if feedCSV != "" {
		result := p.LoadAccountAnalytics(ctx, account)
		if err := os.WriteFile(feedCSV, []byte(export.Render(result.Posts)), 0o644); err != nil {
			return fmt.Errorf("write CSV: %w", err)
		}
		fmt.Printf("✓ Wrote %d posts to %s\n", len(result.Posts), feedCSV)
		return nil
	}

	posts := analytics.SortNewestFirst(p.LoadAccountPosts(ctx, account))
	posts = analytics.FilterFeed(posts, analytics.FeedFilter{
		Search:       feedSearch,
		Platform:     feedPlatform,
		Year:         feedYear,
		MinReactions: feedMinReactions,
	})
	if feedLimit > 0 && len(posts) > feedLimit {
		posts = posts[:feedLimit]
	}

	if feedJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(posts)
	}

	for _, post := range posts {
		date := post.DateISO
		if date == "" {
			date = "undated"
		}
		text := post.Text
		if runes := []rune(text); len(runes) > 120 {
			text = string(runes[:117]) + "..."
		}
		fmt.Printf("%s  [%s] %s (%s): %s\n", date, post.Platform, post.Author, post.MatchedQuery, text)
	}
	fmt.Printf("\n%d posts\n", len(posts))
	return nil
}
