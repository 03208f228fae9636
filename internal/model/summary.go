package model

// MatchedQueryStat is one bucket of the Pareto-ranked matched-query view.
type MatchedQueryStat struct {
	MatchedQuery      string  `json:"matched_query"`
	Count             int     `json:"count"`
	Percent           float64 `json:"percent"`
	CumulativePercent float64 `json:"cumulative_percent"`
}

// TimelinePoint is one date bucket of the publication timeline. The Date key
// is a truncated ISO date: YYYY-MM-DD at day granularity, YYYY-MM at month
// granularity.
type TimelinePoint struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
	Clean int    `json:"clean"`
	Noise int    `json:"noise"`
}

// ThemeStat is one bucket of the theme share view.
type ThemeStat struct {
	Theme   Theme   `json:"theme"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// AuthorStat is one bucket of the top-authors view.
type AuthorStat struct {
	Author  string  `json:"author"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// NoiseMarkerStat counts how often a noise-marker phrase fired.
type NoiseMarkerStat struct {
	Marker string `json:"marker"`
	Count  int    `json:"count"`
}

// Totals holds the headline counters of a summary.
type Totals struct {
	TotalPosts int            `json:"total_posts"`
	TotalClean int            `json:"total_clean"`
	TotalNoise int            `json:"total_noise"`
	NoiseShare float64        `json:"noise_share"`
	ByPlatform map[string]int `json:"by_platform"`
}

// FilterOptions lists the distinct selector values present in an enriched
// post set, for populating filter controls.
type FilterOptions struct {
	MatchedQueries []string `json:"matched_queries"`
	Authors        []string `json:"authors"`
}

// AnalyticsSummary is the full set of aggregate views over an enriched post
// sequence. Summaries are always rebuilt from scratch; they are never updated
// incrementally.
type AnalyticsSummary struct {
	Totals         Totals             `json:"totals"`
	MatchedQueries []MatchedQueryStat `json:"matched_queries"`
	Timeline       []TimelinePoint    `json:"timeline"`
	Themes         []ThemeStat        `json:"themes"`
	TopAuthors     []AuthorStat       `json:"top_authors"`
	NoiseMarkers   []NoiseMarkerStat  `json:"noise_markers"`
	Filters        FilterOptions      `json:"filters"`
}

// AccountAnalytics pairs the enriched posts of an account with their summary.
type AccountAnalytics struct {
	Account string           `json:"account"`
	Posts   []EnrichedPost   `json:"posts"`
	Summary AnalyticsSummary `json:"summary"`
}
