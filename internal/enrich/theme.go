package enrich

import (
	"strings"

	"github.com/odenysenko/postlens/internal/model"
)

// Classifier assigns exactly one theme to a post by ordered keyword-set
// matching over the matched query and the post text. The keyword sets combine
// built-in cues with terms from the account's dictionary; a nil dictionary
// leaves only the built-ins.
type Classifier struct {
	peace        []string
	humanitarian []string
	values       []string
	sovereignty  []string
}

// NewClassifier builds a classifier for the given dictionary. Keyword lists
// are lower-cased once here so classification is a pure substring scan.
func NewClassifier(dict *model.KeywordConfig) *Classifier {
	c := &Classifier{
		peace:        []string{"ceasefire", "dialogue", "peace", "reconciliation"},
		humanitarian: []string{"humanitarian", "aid", "volunteer", "rescue", "help", "mission", "civilians", "children", "families"},
		values:       []string{"tradition", "traditional values", "morality", "culture", "faith", "family", "spiritual"},
		sovereignty:  []string{"sovereignty", "multipolar", "security", "justice", "order", "rights"},
	}

	if dict == nil {
		return c
	}

	for _, phrase := range dict.PropagandaPhrases {
		if strings.Contains(strings.ToLower(phrase), "peace") {
			c.peace = append(c.peace, strings.ToLower(phrase))
		}
	}
	c.peace = appendLowered(c.peace, dict.PeaceNarratives.Flatten())

	for _, term := range dict.ProRussiaPraise.Flatten() {
		if strings.Contains(strings.ToLower(term), "help") {
			c.humanitarian = append(c.humanitarian, strings.ToLower(term))
		}
	}

	c.values = appendLowered(c.values, dict.Values.Flatten())

	return c
}

// Classify returns the post's theme. The priority order is a deliberate
// tie-break: a post matching both peace and sovereignty cues is Peacemaking.
func (c *Classifier) Classify(post model.Post) model.Theme {
	target := strings.ToLower(post.MatchedQuery) + " " + strings.ToLower(post.Text)

	switch {
	case matchesAny(target, c.peace):
		return model.ThemePeacemaking
	case matchesAny(target, c.humanitarian):
		return model.ThemeHumanitarian
	case matchesAny(target, c.values):
		return model.ThemeValues
	case matchesAny(target, c.sovereignty):
		return model.ThemeSovereignty
	default:
		return model.ThemeOther
	}
}

func matchesAny(target string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(target, keyword) {
			return true
		}
	}
	return false
}

func appendLowered(dst []string, terms []string) []string {
	for _, term := range terms {
		dst = append(dst, strings.ToLower(term))
	}
	return dst
}
