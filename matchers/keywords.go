package matchers

import (
	"strings"
	"unicode"

	"github.com/mascanho/ruddit/enums"
)

// MatchesWholeWord returns true if the keyword appears as a complete word
// in the text. Word boundaries are non-alphanumeric characters or the
// start/end of the string. Both arguments are expected lowercased.
func MatchesWholeWord(text, keyword string) bool {
	if keyword == "" {
		return false
	}

	idx := 0
	for {
		pos := strings.Index(text[idx:], keyword)
		if pos == -1 {
			return false
		}
		pos += idx

		leftOk := pos == 0 || !isWordChar(rune(text[pos-1]))

		end := pos + len(keyword)
		rightOk := end == len(text) || !isWordChar(rune(text[end]))

		if leftOk && rightOk {
			return true
		}

		idx = pos + 1
		if idx >= len(text) {
			return false
		}
	}
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// MatchesPartially allows matches inside words, so "cat" matches "catalog".
func MatchesPartially(text, keyword string) bool {
	return strings.Contains(text, keyword)
}

// MatchesKeywords checks a keyword set against text using the given mode:
// OR matches when any keyword is found as a whole word, AND requires all
// of them. An empty keyword set never matches. Matching is case-insensitive.
func MatchesKeywords(text string, keywords []string, mode enums.MatchMode) bool {
	if len(keywords) == 0 {
		return false
	}

	textLower := strings.ToLower(text)
	checked := 0
	for _, keyword := range keywords {
		kw := strings.ToLower(strings.TrimSpace(keyword))
		if kw == "" {
			continue
		}
		checked++
		found := MatchesWholeWord(textLower, kw)

		if found && mode == enums.MatchModeAny {
			return true
		}
		if !found && mode == enums.MatchModeAll {
			return false
		}
	}

	return checked > 0 && mode == enums.MatchModeAll
}
