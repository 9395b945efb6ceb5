package enums

import "strings"

type MatchMode string

const (
	// MatchModeAny matches when any keyword in the set is found.
	MatchModeAny MatchMode = "OR"

	// MatchModeAll requires every keyword in the set to be found.
	MatchModeAll MatchMode = "AND"
)

// ParseMatchMode is case-insensitive. Anything that is not "and"
// falls back to OR, matching the original settings-file behavior.
func ParseMatchMode(s string) MatchMode {
	if strings.EqualFold(strings.TrimSpace(s), "and") {
		return MatchModeAll
	}
	return MatchModeAny
}
