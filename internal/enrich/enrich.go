package enrich

import "github.com/odenysenko/postlens/internal/model"

// Enricher composes the classifier and detector over canonical posts.
// Enrichment is a pure function of (post, dictionary): no cross-post state,
// order-preserving, idempotent.
type Enricher struct {
	classifier *Classifier
	detector   *Detector
}

// NewEnricher builds an enricher for one account's dictionary. A nil
// dictionary is valid and yields built-in classification with no noise.
func NewEnricher(dict *model.KeywordConfig) *Enricher {
	return &Enricher{
		classifier: NewClassifier(dict),
		detector:   NewDetector(dict),
	}
}

// EnrichPost derives theme and noise attributes for a single post.
func (e *Enricher) EnrichPost(post model.Post) model.EnrichedPost {
	markers := e.detector.Detect(post)
	return model.EnrichedPost{
		Post:         post,
		Theme:        e.classifier.Classify(post),
		IsNoise:      len(markers) > 0,
		NoiseMarkers: markers,
	}
}

// Enrich enriches a post sequence, preserving order.
func (e *Enricher) Enrich(posts []model.Post) []model.EnrichedPost {
	enriched := make([]model.EnrichedPost, 0, len(posts))
	for _, post := range posts {
		enriched = append(enriched, e.EnrichPost(post))
	}
	return enriched
}
