package analytics

import (
	"reflect"
	"testing"

	"github.com/odenysenko/postlens/internal/model"
)

func enriched(id, matchedQuery, author, dateISO string, ts int64, noise bool) model.EnrichedPost {
	return model.EnrichedPost{
		Post: model.Post{
			ID:           id,
			MatchedQuery: matchedQuery,
			Author:       author,
			DateISO:      dateISO,
			Timestamp:    ts,
			Text:         "text of " + id,
		},
		Theme:   model.ThemeOther,
		IsNoise: noise,
	}
}

func ids(posts []model.EnrichedPost) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterState_Active(t *testing.T) {
	tests := []struct {
		name  string
		state FilterState
		want  bool
	}{
		{"zero", FilterState{}, false},
		{"all sentinels", FilterState{MatchedQuery: SelectorAll, Author: SelectorAll}, false},
		{"matched query", FilterState{MatchedQuery: "sanctions"}, true},
		{"author", FilterState{Author: "alice"}, true},
		{"start date", FilterState{StartDate: "2024-01-01"}, true},
		{"include noise", FilterState{IncludeNoise: true}, true},
		{"search whitespace only", FilterState{Search: "   "}, false},
		{"search", FilterState{Search: "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_DefaultExcludesNoise(t *testing.T) {
	posts := []model.EnrichedPost{
		enriched("a", "q", "alice", "", 0, false),
		enriched("b", "q", "bob", "", 0, true),
	}

	got := Filter(posts, FilterState{})
	if !reflect.DeepEqual(ids(got), []string{"a"}) {
		t.Errorf("expected only clean post, got %v", ids(got))
	}

	got = Filter(posts, FilterState{IncludeNoise: true})
	if !reflect.DeepEqual(ids(got), []string{"a", "b"}) {
		t.Errorf("expected both posts with include_noise, got %v", ids(got))
	}
}

func TestFilter_Selectors(t *testing.T) {
	posts := []model.EnrichedPost{
		enriched("a", "sanctions", "alice", "", 0, false),
		enriched("b", "grain deal", "bob", "", 0, false),
	}

	got := Filter(posts, FilterState{MatchedQuery: "sanctions"})
	if !reflect.DeepEqual(ids(got), []string{"a"}) {
		t.Errorf("matched query selector failed: %v", ids(got))
	}

	got = Filter(posts, FilterState{Author: "bob"})
	if !reflect.DeepEqual(ids(got), []string{"b"}) {
		t.Errorf("author selector failed: %v", ids(got))
	}

	got = Filter(posts, FilterState{MatchedQuery: SelectorAll, Author: SelectorAll})
	if !reflect.DeepEqual(ids(got), []string{"a", "b"}) {
		t.Errorf("'all' sentinel should match everything: %v", ids(got))
	}
}

func TestFilter_DateBounds(t *testing.T) {
	jan10 := int64(1704844800000) // 2024-01-10T00:00:00Z
	feb10 := int64(1707523200000) // 2024-02-10T00:00:00Z
	posts := []model.EnrichedPost{
		enriched("jan", "q", "a", "2024-01-10T00:00:00Z", jan10, false),
		enriched("feb", "q", "a", "2024-02-10T00:00:00Z", feb10, false),
		enriched("undated", "q", "a", "", 0, false),
	}

	got := Filter(posts, FilterState{StartDate: "2024-02-01"})
	if !reflect.DeepEqual(ids(got), []string{"feb"}) {
		t.Errorf("start bound failed: %v", ids(got))
	}

	got = Filter(posts, FilterState{EndDate: "2024-01-31"})
	if !reflect.DeepEqual(ids(got), []string{"jan"}) {
		t.Errorf("end bound failed: %v", ids(got))
	}

	// Bounds are inclusive calendar days.
	got = Filter(posts, FilterState{StartDate: "2024-01-10", EndDate: "2024-01-10"})
	if !reflect.DeepEqual(ids(got), []string{"jan"}) {
		t.Errorf("single-day range failed: %v", ids(got))
	}

	// Undated posts are excluded while any bound is active.
	got = Filter(posts, FilterState{StartDate: "2000-01-01"})
	if !reflect.DeepEqual(ids(got), []string{"jan", "feb"}) {
		t.Errorf("undated post should be excluded under active bound: %v", ids(got))
	}

	// Malformed bounds deactivate the predicate.
	got = Filter(posts, FilterState{StartDate: "not-a-date"})
	if !reflect.DeepEqual(ids(got), []string{"jan", "feb", "undated"}) {
		t.Errorf("malformed bound should deactivate: %v", ids(got))
	}
}

func TestFilter_Search(t *testing.T) {
	posts := []model.EnrichedPost{
		{
			Post:  model.Post{ID: "a", Text: "Grain corridor reopened", Author: "alice", MatchedQuery: "grain"},
			Theme: model.ThemePeacemaking,
		},
		{
			Post:  model.Post{ID: "b", Text: "Unrelated", Author: "bob", MatchedQuery: "other", URL: "https://example.com/grain"},
			Theme: model.ThemeOther,
		},
	}

	// Analytics search covers text, author, matched query and theme but not URL.
	got := Filter(posts, FilterState{Search: "GRAIN"})
	if !reflect.DeepEqual(ids(got), []string{"a"}) {
		t.Errorf("analytics search should not cover url: %v", ids(got))
	}

	got = Filter(posts, FilterState{Search: "peacemaking"})
	if !reflect.DeepEqual(ids(got), []string{"a"}) {
		t.Errorf("analytics search should cover theme: %v", ids(got))
	}
}

func TestFilter_Idempotent(t *testing.T) {
	posts := []model.EnrichedPost{
		enriched("a", "sanctions", "alice", "", 0, false),
		enriched("b", "sanctions", "bob", "", 0, true),
		enriched("c", "other", "carol", "", 0, false),
	}
	state := FilterState{MatchedQuery: "sanctions"}

	once := Filter(posts, state)
	twice := Filter(once, state)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering is not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestFilterFeed(t *testing.T) {
	jan10 := int64(1704844800000) // 2024-01-10T00:00:00Z
	posts := []model.Post{
		{ID: "a", Platform: "Telegram", DateISO: "2024-01-10T00:00:00Z", Timestamp: jan10, ReactionsCount: 50, Text: "hello"},
		{ID: "b", Platform: "vk", Text: "low engagement", ReactionsCount: 2, URL: "https://vk.com/p/1"},
	}

	got := FilterFeed(posts, FeedFilter{Platform: "telegram"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("platform filter should be case-insensitive: %v", got)
	}

	got = FilterFeed(posts, FeedFilter{Year: "2024"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("year filter should keep only dated 2024 posts: %v", got)
	}

	got = FilterFeed(posts, FeedFilter{MinReactions: 10})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("min reactions floor failed: %v", got)
	}

	// Feed search covers the url.
	got = FilterFeed(posts, FeedFilter{Search: "vk.com"})
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("feed search should cover url: %v", got)
	}

	got = FilterFeed(posts, FeedFilter{Platform: SelectorAll, Year: SelectorAll})
	if len(got) != 2 {
		t.Errorf("'all' sentinels should match everything: %v", got)
	}
}

func TestSortNewestFirst(t *testing.T) {
	posts := []model.Post{
		{ID: "old", DateISO: "2023-01-01T00:00:00Z", Timestamp: 1672531200000},
		{ID: "undated1"},
		{ID: "new", DateISO: "2024-01-01T00:00:00Z", Timestamp: 1704067200000},
		{ID: "undated2"},
	}

	sorted := SortNewestFirst(posts)
	want := []string{"new", "old", "undated1", "undated2"}
	got := make([]string, 0, len(sorted))
	for _, p := range sorted {
		got = append(got, p.ID)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sort order = %v, want %v", got, want)
	}

	// Input slice is not mutated.
	if posts[0].ID != "old" {
		t.Error("SortNewestFirst mutated its input")
	}
}
