package matchers

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// LanguageTagger detects the language of post text so leads can be
// restricted to configured languages before the data reaches the model.
type LanguageTagger struct {
	detector lingua.LanguageDetector
}

func NewLanguageTagger() *LanguageTagger {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllSpokenLanguages().
		WithLowAccuracyMode().
		Build()
	return &LanguageTagger{detector: detector}
}

// Detect returns the lowercased ISO 639-1 code of the detected language,
// or the empty string when detection is inconclusive.
func (t *LanguageTagger) Detect(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	language, ok := t.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(language.IsoCode639_1().String())
}

// LanguageAllowed reports whether a detected language code passes the
// configured allow list. An empty list allows everything, and untagged
// records are never filtered out.
func LanguageAllowed(code string, allowed []string) bool {
	if len(allowed) == 0 || code == "" {
		return true
	}
	for _, lang := range allowed {
		if strings.EqualFold(strings.TrimSpace(lang), code) {
			return true
		}
	}
	return false
}
