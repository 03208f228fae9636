package model

// RawRecord is one source row as read from a post export: a mapping from
// header name to the raw cell value. Missing columns are simply absent keys.
type RawRecord map[string]string

// UnknownPlatform is the sentinel used when a source row has no platform value.
const UnknownPlatform = "unknown platform"

// NoMatchedQuery is the sentinel bucket label for posts collected without a
// matched query attribution.
const NoMatchedQuery = "no matched query"

// Theme is the narrative category assigned to a post by keyword heuristics.
type Theme string

const (
	ThemePeacemaking  Theme = "Peacemaking"
	ThemeHumanitarian Theme = "Humanitarian"
	ThemeValues       Theme = "Traditional values"
	ThemeSovereignty  Theme = "Sovereignty"
	ThemeOther        Theme = "Other"
)

// AllThemes returns the closed set of theme labels in classifier priority order.
func AllThemes() []Theme {
	return []Theme{
		ThemePeacemaking,
		ThemeHumanitarian,
		ThemeValues,
		ThemeSovereignty,
		ThemeOther,
	}
}

// Post is one canonical social-media record after normalization.
// Posts are immutable once created: the normalizer is the only producer.
//
// DateISO and Timestamp are set together or not at all: both are present iff
// the raw Date string parsed to a valid calendar date. Timestamp is in epoch
// milliseconds.
type Post struct {
	ID         string `json:"id"`
	SourceFile string `json:"source_file"`
	Platform   string `json:"platform"`
	Text       string `json:"text"`
	Date       string `json:"date"`
	DateISO    string `json:"date_iso,omitempty"`
	Timestamp  int64  `json:"timestamp,omitempty"`

	Author       string `json:"author,omitempty"`
	URL          string `json:"url,omitempty"`
	MatchedQuery string `json:"matched_query,omitempty"`

	ReactionsCount int `json:"reactions_count"`
	CommentsCount  int `json:"comments_count"`
	RepostsCount   int `json:"reposts_count"`
}

// HasDate reports whether the raw date parsed to a calendar date.
func (p Post) HasDate() bool {
	return p.DateISO != ""
}

// EnrichedPost is a Post plus attributes derived purely from the post and the
// account's keyword dictionary. Enrichment is deterministic and idempotent.
type EnrichedPost struct {
	Post

	Theme        Theme    `json:"theme"`
	IsNoise      bool     `json:"is_noise"`
	NoiseMarkers []string `json:"noise_markers"`
}
