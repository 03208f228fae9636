// Package export serializes filtered enriched post sets to the fixed CSV
// contract consumed by downstream tooling.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/odenysenko/postlens/internal/model"
)

// Columns is the fixed export column order. The text cell is a JSON string
// literal embedded in the CSV so embedded commas, quotes and newlines survive
// the naive comma join.
var Columns = []string{
	"platform",
	"author",
	"date",
	"matched_query",
	"theme",
	"is_noise",
	"noise_markers",
	"reactions_count",
	"comments_count",
	"reposts_count",
	"text",
	"url",
}

// Write serializes the posts to w. An empty set yields a header-only export.
func Write(w io.Writer, posts []model.EnrichedPost) error {
	if _, err := io.WriteString(w, strings.Join(Columns, ",")+"\n"); err != nil {
		return err
	}
	for _, post := range posts {
		if _, err := io.WriteString(w, row(post)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Render serializes the posts to a string.
func Render(posts []model.EnrichedPost) string {
	var b strings.Builder
	_ = Write(&b, posts)
	return b.String()
}

func row(post model.EnrichedPost) string {
	date := post.DateISO
	if date == "" {
		date = post.Date
	}

	text, _ := json.Marshal(post.Text)

	cells := []string{
		post.Platform,
		post.Author,
		date,
		post.MatchedQuery,
		string(post.Theme),
		boolCell(post.IsNoise),
		strings.Join(post.NoiseMarkers, "|"),
		strconv.Itoa(post.ReactionsCount),
		strconv.Itoa(post.CommentsCount),
		strconv.Itoa(post.RepostsCount),
		string(text),
		post.URL,
	}
	return strings.Join(cells, ",")
}

func boolCell(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// FileName builds the export attachment name for an account.
func FileName(account string, now time.Time) string {
	slug := strings.Join(strings.Fields(strings.ToLower(account)), "-")
	return fmt.Sprintf("analytics-%s-%s.csv", slug, now.Format("2006-01-02"))
}
