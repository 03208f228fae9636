package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/odenysenko/postlens/internal/model"
)

// Renderer writes analytics reports to files and a short summary to stdout.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the analytics report as indented JSON.
func (r *Renderer) RenderJSON(a *model.AccountAnalytics, path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(a *model.AccountAnalytics, path string) error {
	var b strings.Builder
	s := a.Summary

	fmt.Fprintf(&b, "# Post analytics: %s\n\n", a.Account)
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339))

	b.WriteString("## Totals\n\n")
	fmt.Fprintf(&b, "- Posts: %d\n", s.Totals.TotalPosts)
	fmt.Fprintf(&b, "- Clean: %d\n", s.Totals.TotalClean)
	fmt.Fprintf(&b, "- Noise: %d (%.1f%%)\n\n", s.Totals.TotalNoise, s.Totals.NoiseShare)

	if len(s.Totals.ByPlatform) > 0 {
		b.WriteString("## Platforms\n\n")
		b.WriteString("| Platform | Posts |\n|---|---|\n")
		for _, platform := range sortedPlatformKeys(s.Totals.ByPlatform) {
			fmt.Fprintf(&b, "| %s | %d |\n", platform, s.Totals.ByPlatform[platform])
		}
		b.WriteString("\n")
	}

	if len(s.MatchedQueries) > 0 {
		b.WriteString("## Matched queries (Pareto)\n\n")
		b.WriteString("| Query | Count | % | Cumulative % |\n|---|---|---|---|\n")
		for _, stat := range s.MatchedQueries {
			fmt.Fprintf(&b, "| %s | %d | %.1f | %.1f |\n",
				stat.MatchedQuery, stat.Count, stat.Percent, stat.CumulativePercent)
		}
		b.WriteString("\n")
	}

	if len(s.Themes) > 0 {
		b.WriteString("## Themes\n\n")
		b.WriteString("| Theme | Count | % |\n|---|---|---|\n")
		for _, stat := range s.Themes {
			fmt.Fprintf(&b, "| %s | %d | %.1f |\n", stat.Theme, stat.Count, stat.Percent)
		}
		b.WriteString("\n")
	}

	if len(s.TopAuthors) > 0 {
		b.WriteString("## Top authors\n\n")
		b.WriteString("| Author | Count | % |\n|---|---|---|\n")
		for _, stat := range s.TopAuthors {
			fmt.Fprintf(&b, "| %s | %d | %.1f |\n", stat.Author, stat.Count, stat.Percent)
		}
		b.WriteString("\n")
	}

	if len(s.NoiseMarkers) > 0 {
		b.WriteString("## Noise markers\n\n")
		b.WriteString("| Marker | Count |\n|---|---|\n")
		for _, stat := range s.NoiseMarkers {
			fmt.Fprintf(&b, "| %s | %d |\n", stat.Marker, stat.Count)
		}
		b.WriteString("\n")
	}

	if len(s.Timeline) > 0 {
		b.WriteString("## Timeline\n\n")
		b.WriteString("| Date | Total | Clean | Noise |\n|---|---|---|---|\n")
		for _, point := range s.Timeline {
			fmt.Fprintf(&b, "| %s | %d | %d | %d |\n",
				point.Date, point.Total, point.Clean, point.Noise)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by postlens.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a one-screen summary to stdout.
func (r *Renderer) RenderSummary(a *model.AccountAnalytics) {
	s := a.Summary

	fmt.Printf("Account:   %s\n", a.Account)
	fmt.Printf("Posts:     %d (%d clean, %d noise, %.1f%% noise)\n",
		s.Totals.TotalPosts, s.Totals.TotalClean, s.Totals.TotalNoise, s.Totals.NoiseShare)

	if len(s.MatchedQueries) > 0 {
		fmt.Println("Top matched queries:")
		for i, stat := range s.MatchedQueries {
			if i >= 5 {
				break
			}
			fmt.Printf("  %-40s %5d  %5.1f%%  (cum %.1f%%)\n",
				stat.MatchedQuery, stat.Count, stat.Percent, stat.CumulativePercent)
		}
	}

	if len(s.Themes) > 0 {
		fmt.Println("Themes:")
		for _, stat := range s.Themes {
			fmt.Printf("  %-20s %5d  %5.1f%%\n", stat.Theme, stat.Count, stat.Percent)
		}
	}
}

func sortedPlatformKeys(byPlatform map[string]int) []string {
	keys := make([]string, 0, len(byPlatform))
	for key := range byPlatform {
		keys = append(keys, key)
	}
	// Highest count first; names break ties.
	sort.Slice(keys, func(i, j int) bool {
		if byPlatform[keys[i]] != byPlatform[keys[j]] {
			return byPlatform[keys[i]] > byPlatform[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
