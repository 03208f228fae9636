package model

import "sort"

// LocaleStrings maps a locale code (e.g. "en", "ua") to an ordered phrase list.
// Locale keys are arbitrary; consumers flatten across locales rather than
// enumerating known ones.
type LocaleStrings map[string][]string

// Flatten returns all phrases across locales. Locales are visited in sorted
// key order so the result is deterministic for a given dictionary.
func (l LocaleStrings) Flatten() []string {
	if len(l) == 0 {
		return nil
	}

	locales := make([]string, 0, len(l))
	for locale := range l {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	var phrases []string
	for _, locale := range locales {
		phrases = append(phrases, l[locale]...)
	}
	return phrases
}

// KeywordConfig is the keyword dictionary loaded from an account's JSON
// configuration document. Every category is optional: an absent category
// contributes the empty set to classification and detection.
type KeywordConfig struct {
	PropagandaPhrases []string      `json:"propaganda_phrases"`
	PeaceNarratives   LocaleStrings `json:"peace_narratives"`
	AntiRussiaMarkers LocaleStrings `json:"anti_russia_markers"`
	ProRussiaPraise   LocaleStrings `json:"pro_russia_praise"`
	Values            LocaleStrings `json:"values"`
	Heroization       LocaleStrings `json:"heroization"`
	Justification     LocaleStrings `json:"justification"`
	ProRussiaHashtags LocaleStrings `json:"pro_russia_hashtags"`
}
