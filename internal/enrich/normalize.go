package enrich

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/odenysenko/postlens/internal/model"
)

// NormalizeRecord converts one raw source row into a canonical Post. It never
// fails: unparseable fields fall back to defaults so a batch always yields a
// well-formed post per row.
func NormalizeRecord(sourceFile string, index int, rec model.RawRecord) model.Post {
	post := model.Post{
		ID:         fmt.Sprintf("%s-%d", sourceFile, index),
		SourceFile: sourceFile,
		Platform:   model.UnknownPlatform,
		Text:       strings.TrimSpace(rec["text"]),

		Author:       strings.TrimSpace(rec["author"]),
		URL:          strings.TrimSpace(rec["url"]),
		MatchedQuery: strings.TrimSpace(rec["matched_query"]),

		ReactionsCount: toCount(rec["reactions_count"]),
		CommentsCount:  toCount(rec["comments_count"]),
		RepostsCount:   toCount(rec["reposts_count"]),
	}

	if platform := strings.TrimSpace(rec["platform"]); platform != "" {
		post.Platform = platform
	}

	rawDate := strings.TrimSpace(rec["date"])
	post.Date = rawDate
	if rawDate != "" {
		if t, err := dateparse.ParseAny(rawDate); err == nil {
			utc := t.UTC()
			post.DateISO = utc.Format(time.RFC3339)
			post.Timestamp = utc.UnixMilli()
		}
	}

	return post
}

// NormalizeRecords normalizes a whole dataset, preserving row order. Post ids
// are derived from the source file name and row index.
func NormalizeRecords(sourceFile string, records []model.RawRecord) []model.Post {
	posts := make([]model.Post, 0, len(records))
	for i, rec := range records {
		posts = append(posts, NormalizeRecord(sourceFile, i, rec))
	}
	return posts
}

// toCount parses an engagement counter. Thousands-separator commas are
// stripped before parsing; anything that still fails to parse counts as zero,
// and negative values clamp to zero.
func toCount(value string) int {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if cleaned == "" {
		return 0
	}

	n, err := strconv.Atoi(cleaned)
	if err != nil {
		f, ferr := strconv.ParseFloat(cleaned, 64)
		if ferr != nil {
			return 0
		}
		n = int(f)
	}
	if n < 0 {
		return 0
	}
	return n
}
