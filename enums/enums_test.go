package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMatchMode(t *testing.T) {
	assert.Equal(t, MatchModeAll, ParseMatchMode("AND"))
	assert.Equal(t, MatchModeAll, ParseMatchMode("and"))
	assert.Equal(t, MatchModeAll, ParseMatchMode("  And "))
	assert.Equal(t, MatchModeAny, ParseMatchMode("OR"))
	assert.Equal(t, MatchModeAny, ParseMatchMode(""))
	assert.Equal(t, MatchModeAny, ParseMatchMode("anything else"))
}

func TestParseSort(t *testing.T) {
	for _, valid := range []string{"hot", "NEW", " top ", "Rising"} {
		_, err := ParseSort(valid)
		assert.NoError(t, err, valid)
	}

	_, err := ParseSort("best")
	assert.Error(t, err)

	_, err = ParseSort("")
	assert.Error(t, err)
}
