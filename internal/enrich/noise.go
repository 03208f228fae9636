package enrich

import (
	"strings"

	"github.com/odenysenko/postlens/internal/model"
)

// Detector finds noise-marker phrases in post text. Markers come from the
// dictionary's anti-pattern category, flattened across locales; with no
// dictionary a post can never be noise.
type Detector struct {
	markers []string
}

// NewDetector builds a detector for the given dictionary. Marker terms are
// lower-cased and blanks dropped; duplicates across locales keep their first
// position only.
func NewDetector(dict *model.KeywordConfig) *Detector {
	d := &Detector{}
	if dict == nil {
		return d
	}

	seen := make(map[string]struct{})
	for _, marker := range dict.AntiRussiaMarkers.Flatten() {
		marker = strings.ToLower(strings.TrimSpace(marker))
		if marker == "" {
			continue
		}
		if _, ok := seen[marker]; ok {
			continue
		}
		seen[marker] = struct{}{}
		d.markers = append(d.markers, marker)
	}
	return d
}

// Detect returns the marker phrases found in the post text, in marker order.
// An empty result means the post is clean.
func (d *Detector) Detect(post model.Post) []string {
	if len(d.markers) == 0 {
		return nil
	}

	text := strings.ToLower(post.Text)
	var matched []string
	for _, marker := range d.markers {
		if strings.Contains(text, marker) {
			matched = append(matched, marker)
		}
	}
	return matched
}
