package analytics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/odenysenko/postlens/internal/model"
)

// SelectorAll is the sentinel selector value that matches every post.
const SelectorAll = "all"

// FilterState is the composable predicate applied to an enriched post set.
// Zero values (and the "all" sentinel for selectors) deactivate the
// corresponding predicate; the default state keeps only clean posts.
type FilterState struct {
	MatchedQuery string `json:"matched_query"`
	Author       string `json:"author"`

	// StartDate and EndDate are inclusive calendar-date bounds (YYYY-MM-DD).
	// The lower bound compares against start of day, the upper against end
	// of day, both UTC. While a bound is active, posts without a parsed date
	// cannot be range-tested and are excluded.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	IncludeNoise bool   `json:"include_noise"`
	Search       string `json:"search"`
}

// Active reports whether any predicate beyond the default noise exclusion is
// in effect.
func (f FilterState) Active() bool {
	return selectorActive(f.MatchedQuery) ||
		selectorActive(f.Author) ||
		f.StartDate != "" ||
		f.EndDate != "" ||
		f.IncludeNoise ||
		strings.TrimSpace(f.Search) != ""
}

func selectorActive(value string) bool {
	return value != "" && value != SelectorAll
}

// Filter returns the subsequence of posts passing every active predicate,
// preserving input order. Filtering is idempotent: re-filtering its own
// output with the same state returns the same sequence.
func Filter(posts []model.EnrichedPost, f FilterState) []model.EnrichedPost {
	startBound, haveStart := dayStart(f.StartDate)
	endBound, haveEnd := dayEnd(f.EndDate)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var kept []model.EnrichedPost
	for _, post := range posts {
		if !f.IncludeNoise && post.IsNoise {
			continue
		}
		if selectorActive(f.MatchedQuery) && post.MatchedQuery != f.MatchedQuery {
			continue
		}
		if selectorActive(f.Author) && post.Author != f.Author {
			continue
		}
		if haveStart || haveEnd {
			if !post.HasDate() {
				continue
			}
			if haveStart && post.Timestamp < startBound {
				continue
			}
			if haveEnd && post.Timestamp > endBound {
				continue
			}
		}
		if search != "" && !strings.Contains(analyticsSearchTarget(post), search) {
			continue
		}
		kept = append(kept, post)
	}
	return kept
}

// analyticsSearchTarget is the analytics-view free-text haystack: text,
// author, matched query and theme. The feed view uses a different field list
// (see FeedSearchTarget); the asymmetry is deliberate.
func analyticsSearchTarget(post model.EnrichedPost) string {
	parts := []string{post.Text, post.Author, post.MatchedQuery, string(post.Theme)}
	return strings.ToLower(strings.Join(parts, " "))
}

// FeedSearchTarget is the feed-view free-text haystack: text, author, url and
// matched query.
func FeedSearchTarget(post model.Post) string {
	parts := []string{post.Text, post.Author, post.URL, post.MatchedQuery}
	return strings.ToLower(strings.Join(parts, " "))
}

// dayStart parses an inclusive lower calendar-date bound into epoch millis at
// start of day UTC. Malformed bounds deactivate the predicate rather than
// erroring.
func dayStart(date string) (int64, bool) {
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}

// dayEnd parses an inclusive upper bound into epoch millis at end of day UTC.
func dayEnd(date string) (int64, bool) {
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, false
	}
	return t.Add(24*time.Hour).UnixMilli() - 1, true
}

// FeedFilter is the post-feed predicate set: platform and year selectors, a
// minimum-reactions floor and free-text search.
type FeedFilter struct {
	Search       string `json:"search"`
	Platform     string `json:"platform"`
	Year         string `json:"year"`
	MinReactions int    `json:"min_reactions"`
}

// FilterFeed returns the posts passing every active feed predicate,
// preserving input order.
func FilterFeed(posts []model.Post, f FeedFilter) []model.Post {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	platform := strings.ToLower(strings.TrimSpace(f.Platform))

	var kept []model.Post
	for _, post := range posts {
		if selectorActive(f.Platform) {
			if strings.ToLower(strings.TrimSpace(post.Platform)) != platform {
				continue
			}
		}
		if selectorActive(f.Year) {
			if !post.HasDate() || strconv.Itoa(postYear(post)) != f.Year {
				continue
			}
		}
		if f.MinReactions > 0 && post.ReactionsCount < f.MinReactions {
			continue
		}
		if search != "" && !strings.Contains(FeedSearchTarget(post), search) {
			continue
		}
		kept = append(kept, post)
	}
	return kept
}

func postYear(post model.Post) int {
	return time.UnixMilli(post.Timestamp).UTC().Year()
}

// SortNewestFirst returns a copy of the posts ordered by timestamp
// descending. Undated posts sink to the end, keeping their relative order.
func SortNewestFirst(posts []model.Post) []model.Post {
	sorted := make([]model.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	return sorted
}
