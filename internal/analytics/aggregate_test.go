package analytics

import (
	"reflect"
	"testing"

	"github.com/odenysenko/postlens/internal/enrich"
	"github.com/odenysenko/postlens/internal/model"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, BucketDay)

	if s.Totals.TotalPosts != 0 || s.Totals.TotalClean != 0 || s.Totals.TotalNoise != 0 {
		t.Errorf("expected zero totals, got %+v", s.Totals)
	}
	if s.Totals.NoiseShare != 0 {
		t.Errorf("expected zero noise share for empty set, got %f", s.Totals.NoiseShare)
	}
	if len(s.MatchedQueries) != 0 || len(s.Timeline) != 0 || len(s.Themes) != 0 {
		t.Errorf("expected empty views, got %+v", s)
	}
}

func TestSummarize_Totals(t *testing.T) {
	posts := []model.EnrichedPost{
		{Post: model.Post{Platform: "telegram"}, Theme: model.ThemeOther},
		{Post: model.Post{Platform: "telegram"}, Theme: model.ThemeOther, IsNoise: true, NoiseMarkers: []string{"war crimes"}},
		{Post: model.Post{Platform: "vk"}, Theme: model.ThemeOther},
		{Post: model.Post{}, Theme: model.ThemeOther},
	}

	s := Summarize(posts, BucketDay)

	if s.Totals.TotalPosts != 4 {
		t.Errorf("TotalPosts = %d, want 4", s.Totals.TotalPosts)
	}
	if s.Totals.TotalClean+s.Totals.TotalNoise != s.Totals.TotalPosts {
		t.Errorf("clean (%d) + noise (%d) != total (%d)", s.Totals.TotalClean, s.Totals.TotalNoise, s.Totals.TotalPosts)
	}
	if s.Totals.TotalNoise != 1 {
		t.Errorf("TotalNoise = %d, want 1", s.Totals.TotalNoise)
	}
	if s.Totals.NoiseShare != 25 {
		t.Errorf("NoiseShare = %f, want 25", s.Totals.NoiseShare)
	}

	wantPlatforms := map[string]int{"telegram": 2, "vk": 1, model.UnknownPlatform: 1}
	if !reflect.DeepEqual(s.Totals.ByPlatform, wantPlatforms) {
		t.Errorf("ByPlatform = %v, want %v", s.Totals.ByPlatform, wantPlatforms)
	}
}

func TestSummarize_MatchedQueryPareto(t *testing.T) {
	posts := []model.EnrichedPost{
		{Post: model.Post{MatchedQuery: "sanctions"}, Theme: model.ThemeOther},
		{Post: model.Post{MatchedQuery: "sanctions"}, Theme: model.ThemeOther},
		{Post: model.Post{MatchedQuery: "grain deal"}, Theme: model.ThemeOther},
		{Post: model.Post{MatchedQuery: ""}, Theme: model.ThemeOther},
	}

	s := Summarize(posts, BucketDay)
	if len(s.MatchedQueries) != 3 {
		t.Fatalf("expected 3 query buckets, got %d", len(s.MatchedQueries))
	}

	top := s.MatchedQueries[0]
	if top.MatchedQuery != "sanctions" || top.Count != 2 || top.Percent != 50 {
		t.Errorf("unexpected top bucket: %+v", top)
	}

	// Blank queries fall into the sentinel bucket.
	found := false
	for _, stat := range s.MatchedQueries {
		if stat.MatchedQuery == model.NoMatchedQuery {
			found = true
		}
	}
	if !found {
		t.Errorf("expected sentinel bucket %q, got %+v", model.NoMatchedQuery, s.MatchedQueries)
	}

	// Cumulative percent is non-decreasing and ends at 100.
	prev := 0.0
	for _, stat := range s.MatchedQueries {
		if stat.CumulativePercent < prev {
			t.Errorf("cumulative percent decreased: %+v", s.MatchedQueries)
		}
		if stat.CumulativePercent > 100 {
			t.Errorf("cumulative percent above 100: %+v", stat)
		}
		prev = stat.CumulativePercent
	}
	last := s.MatchedQueries[len(s.MatchedQueries)-1]
	if last.CumulativePercent != 100 {
		t.Errorf("final cumulative percent = %f, want 100", last.CumulativePercent)
	}
}

func TestSummarize_TieBreakIsDiscoveryOrder(t *testing.T) {
	posts := []model.EnrichedPost{
		{Post: model.Post{MatchedQuery: "beta"}, Theme: model.ThemeOther},
		{Post: model.Post{MatchedQuery: "alpha"}, Theme: model.ThemeOther},
	}

	s := Summarize(posts, BucketDay)
	if s.MatchedQueries[0].MatchedQuery != "beta" || s.MatchedQueries[1].MatchedQuery != "alpha" {
		t.Errorf("equal counts should keep discovery order: %+v", s.MatchedQueries)
	}
}

func TestSummarize_Timeline(t *testing.T) {
	posts := []model.EnrichedPost{
		{Post: model.Post{DateISO: "2024-01-10T08:00:00Z", Timestamp: 1}, Theme: model.ThemeOther},
		{Post: model.Post{DateISO: "2024-01-10T20:00:00Z", Timestamp: 2}, Theme: model.ThemeOther, IsNoise: true},
		{Post: model.Post{DateISO: "2024-02-01T00:00:00Z", Timestamp: 3}, Theme: model.ThemeOther},
		{Post: model.Post{}, Theme: model.ThemeOther}, // undated, no bucket
	}

	daily := Summarize(posts, BucketDay).Timeline
	wantDaily := []model.TimelinePoint{
		{Date: "2024-01-10", Total: 2, Clean: 1, Noise: 1},
		{Date: "2024-02-01", Total: 1, Clean: 1, Noise: 0},
	}
	if !reflect.DeepEqual(daily, wantDaily) {
		t.Errorf("daily timeline = %+v, want %+v", daily, wantDaily)
	}

	monthly := Summarize(posts, BucketMonth).Timeline
	wantMonthly := []model.TimelinePoint{
		{Date: "2024-01", Total: 2, Clean: 1, Noise: 1},
		{Date: "2024-02", Total: 1, Clean: 1, Noise: 0},
	}
	if !reflect.DeepEqual(monthly, wantMonthly) {
		t.Errorf("monthly timeline = %+v, want %+v", monthly, wantMonthly)
	}

	for _, point := range daily {
		if point.Clean+point.Noise != point.Total {
			t.Errorf("bucket does not balance: %+v", point)
		}
	}
}

func TestSummarize_AuthorsAndMarkers(t *testing.T) {
	var posts []model.EnrichedPost
	// Twelve distinct authors; "prolific" posts twice so it ranks first.
	for _, author := range []string{"prolific", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		posts = append(posts, model.EnrichedPost{
			Post:  model.Post{Author: author},
			Theme: model.ThemeOther,
		})
	}
	posts = append(posts, model.EnrichedPost{Post: model.Post{Author: "prolific"}, Theme: model.ThemeOther})
	// Anonymous posts never rank.
	posts = append(posts, model.EnrichedPost{Post: model.Post{}, Theme: model.ThemeOther})

	s := Summarize(posts, BucketDay)
	if len(s.TopAuthors) != 10 {
		t.Fatalf("expected top authors capped at 10, got %d", len(s.TopAuthors))
	}
	if s.TopAuthors[0].Author != "prolific" || s.TopAuthors[0].Count != 2 {
		t.Errorf("unexpected leader: %+v", s.TopAuthors[0])
	}
	for _, stat := range s.TopAuthors {
		if stat.Author == "" {
			t.Error("anonymous author in ranking")
		}
	}
}

func TestSummarize_NoiseMarkerFrequencies(t *testing.T) {
	posts := []model.EnrichedPost{
		{Post: model.Post{}, Theme: model.ThemeOther, IsNoise: true, NoiseMarkers: []string{"war crimes", "aggression"}},
		{Post: model.Post{}, Theme: model.ThemeOther, IsNoise: true, NoiseMarkers: []string{"war crimes"}},
		// Markers on a clean post are not counted.
		{Post: model.Post{}, Theme: model.ThemeOther},
	}

	s := Summarize(posts, BucketDay)
	want := []model.NoiseMarkerStat{
		{Marker: "war crimes", Count: 2},
		{Marker: "aggression", Count: 1},
	}
	if !reflect.DeepEqual(s.NoiseMarkers, want) {
		t.Errorf("noise markers = %+v, want %+v", s.NoiseMarkers, want)
	}
}

func TestSummarize_TwoPostScenario(t *testing.T) {
	e := enrich.NewEnricher(&model.KeywordConfig{
		AntiRussiaMarkers: model.LocaleStrings{"en": {"war crimes"}},
	})
	posts := e.Enrich([]model.Post{
		{Text: "ceasefire talks begin", MatchedQuery: "peace", ReactionsCount: 10},
		{Text: "traditional family values", MatchedQuery: "values", ReactionsCount: 5},
	})

	if posts[0].Theme != model.ThemePeacemaking || posts[0].IsNoise {
		t.Errorf("post A: theme %q noise %v", posts[0].Theme, posts[0].IsNoise)
	}
	if posts[1].Theme != model.ThemeValues || posts[1].IsNoise {
		t.Errorf("post B: theme %q noise %v", posts[1].Theme, posts[1].IsNoise)
	}

	s := Summarize(posts, BucketDay)
	if s.Totals.TotalPosts != 2 || s.Totals.NoiseShare != 0 {
		t.Errorf("totals = %+v", s.Totals)
	}
	want := []model.MatchedQueryStat{
		{MatchedQuery: "peace", Count: 1, Percent: 50, CumulativePercent: 50},
		{MatchedQuery: "values", Count: 1, Percent: 50, CumulativePercent: 100},
	}
	if !reflect.DeepEqual(s.MatchedQueries, want) {
		t.Errorf("matched queries = %+v, want %+v", s.MatchedQueries, want)
	}
}

func TestOptions(t *testing.T) {
	posts := []model.EnrichedPost{
		{Post: model.Post{MatchedQuery: "zebra", Author: "zoe"}},
		{Post: model.Post{MatchedQuery: "alpha", Author: "amy"}},
		{Post: model.Post{MatchedQuery: "alpha", Author: ""}},
	}

	opts := Options(posts)
	if !reflect.DeepEqual(opts.MatchedQueries, []string{"alpha", "zebra"}) {
		t.Errorf("matched queries = %v", opts.MatchedQueries)
	}
	if !reflect.DeepEqual(opts.Authors, []string{"amy", "zoe"}) {
		t.Errorf("authors = %v", opts.Authors)
	}
}
