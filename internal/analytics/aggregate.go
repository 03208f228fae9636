package analytics

import (
	"sort"
	"strings"

	"github.com/odenysenko/postlens/internal/model"
)

// Granularity selects the timeline bucket width.
type Granularity int

const (
	// BucketDay groups the timeline by YYYY-MM-DD (single-account detail view).
	BucketDay Granularity = iota
	// BucketMonth groups the timeline by YYYY-MM (dashboard view).
	BucketMonth
)

func (g Granularity) keyLen() int {
	if g == BucketMonth {
		return len("2006-01")
	}
	return len("2006-01-02")
}

// counter accumulates counts per key, remembering discovery order. Discovery
// order is the tie-break for equal counts in every ranked view.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

type timelineBucket struct {
	total int
	clean int
	noise int
}

// Summarize folds an enriched post sequence into the full set of aggregate
// views: one accumulation pass over the posts, then a finishing pass per
// view. The result is built from scratch on every call.
func Summarize(posts []model.EnrichedPost, granularity Granularity) model.AnalyticsSummary {
	matchedQueries := newCounter()
	platforms := newCounter()
	themes := newCounter()
	authors := newCounter()
	noiseMarkers := newCounter()
	buckets := make(map[string]*timelineBucket)

	totalNoise := 0
	for _, post := range posts {
		platform := post.Platform
		if platform == "" {
			platform = model.UnknownPlatform
		}
		platforms.add(platform)

		matchedQuery := strings.TrimSpace(post.MatchedQuery)
		if matchedQuery == "" {
			matchedQuery = model.NoMatchedQuery
		}
		matchedQueries.add(matchedQuery)

		themes.add(string(post.Theme))

		if post.Author != "" {
			authors.add(post.Author)
		}

		if post.IsNoise {
			totalNoise++
			for _, marker := range post.NoiseMarkers {
				noiseMarkers.add(marker)
			}
		}

		if post.HasDate() {
			key := post.DateISO[:granularity.keyLen()]
			bucket := buckets[key]
			if bucket == nil {
				bucket = &timelineBucket{}
				buckets[key] = bucket
			}
			bucket.total++
			if post.IsNoise {
				bucket.noise++
			} else {
				bucket.clean++
			}
		}
	}

	totalPosts := len(posts)

	return model.AnalyticsSummary{
		Totals: model.Totals{
			TotalPosts: totalPosts,
			TotalClean: totalPosts - totalNoise,
			TotalNoise: totalNoise,
			NoiseShare: percent(totalNoise, totalPosts),
			ByPlatform: platforms.counts,
		},
		MatchedQueries: buildMatchedQueryStats(matchedQueries, totalPosts),
		Timeline:       buildTimeline(buckets),
		Themes:         buildThemeStats(themes, totalPosts),
		TopAuthors:     buildAuthorStats(authors, totalPosts),
		NoiseMarkers:   buildNoiseMarkerStats(noiseMarkers),
		Filters:        Options(posts),
	}
}

// Options lists the distinct non-empty selector values present in a post set,
// sorted, for populating filter controls.
func Options(posts []model.EnrichedPost) model.FilterOptions {
	queries := make(map[string]struct{})
	authors := make(map[string]struct{})
	for _, post := range posts {
		if q := strings.TrimSpace(post.MatchedQuery); q != "" {
			queries[q] = struct{}{}
		}
		if a := strings.TrimSpace(post.Author); a != "" {
			authors[a] = struct{}{}
		}
	}
	return model.FilterOptions{
		MatchedQueries: sortedKeys(queries),
		Authors:        sortedKeys(authors),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// buildMatchedQueryStats ranks matched-query buckets descending by count and
// threads the running cumulative percentage through the ranking, capped at
// 100 (Pareto curve).
func buildMatchedQueryStats(c *counter, total int) []model.MatchedQueryStat {
	stats := make([]model.MatchedQueryStat, 0, len(c.order))
	for _, query := range c.order {
		stats = append(stats, model.MatchedQueryStat{
			MatchedQuery: query,
			Count:        c.counts[query],
			Percent:      percent(c.counts[query], total),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	cumulative := 0.0
	for i := range stats {
		cumulative += stats[i].Percent
		if cumulative > 100 {
			cumulative = 100
		}
		stats[i].CumulativePercent = cumulative
	}
	return stats
}

func buildTimeline(buckets map[string]*timelineBucket) []model.TimelinePoint {
	points := make([]model.TimelinePoint, 0, len(buckets))
	for date, bucket := range buckets {
		points = append(points, model.TimelinePoint{
			Date:  date,
			Total: bucket.total,
			Clean: bucket.clean,
			Noise: bucket.noise,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

func buildThemeStats(c *counter, total int) []model.ThemeStat {
	stats := make([]model.ThemeStat, 0, len(c.order))
	for _, theme := range c.order {
		stats = append(stats, model.ThemeStat{
			Theme:   model.Theme(theme),
			Count:   c.counts[theme],
			Percent: percent(c.counts[theme], total),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

func buildAuthorStats(c *counter, total int) []model.AuthorStat {
	stats := make([]model.AuthorStat, 0, len(c.order))
	for _, author := range c.order {
		stats = append(stats, model.AuthorStat{
			Author:  author,
			Count:   c.counts[author],
			Percent: percent(c.counts[author], total),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	if len(stats) > 10 {
		stats = stats[:10]
	}
	return stats
}

func buildNoiseMarkerStats(c *counter) []model.NoiseMarkerStat {
	stats := make([]model.NoiseMarkerStat, 0, len(c.order))
	for _, marker := range c.order {
		stats = append(stats, model.NoiseMarkerStat{
			Marker: marker,
			Count:  c.counts[marker],
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	if len(stats) > 15 {
		stats = stats[:15]
	}
	return stats
}

// percent guards against division by zero: an empty set yields 0, not NaN.
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
