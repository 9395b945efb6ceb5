package matchers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mascanho/ruddit/enums"
)

func TestMatchesWholeWord_ExactMatch(t *testing.T) {
	assert.True(t, MatchesWholeWord("hello world", "hello"))
	assert.True(t, MatchesWholeWord("hello world", "world"))
	assert.True(t, MatchesWholeWord("hello world ", "world"))
	assert.True(t, MatchesWholeWord("hello", "hello"))
}

func TestMatchesWholeWord_NoMatch(t *testing.T) {
	assert.False(t, MatchesWholeWord("application", "app"))
	assert.False(t, MatchesWholeWord("unhappy", "happy"))
	assert.False(t, MatchesWholeWord("goodbye", "good"))
}

func TestMatchesWholeWord_WithPunctuation(t *testing.T) {
	assert.True(t, MatchesWholeWord("hello, world!", "hello"))
	assert.True(t, MatchesWholeWord("(app)", "app"))
	assert.True(t, MatchesWholeWord("check this app.", "app"))
}

func TestMatchesWholeWord_MultipleOccurrences(t *testing.T) {
	assert.True(t, MatchesWholeWord("the application has an app", "app"))
	assert.False(t, MatchesWholeWord("application apps", "app"))
}

func TestMatchesWholeWord_EdgeCases(t *testing.T) {
	assert.True(t, MatchesWholeWord("app", "app"))
	assert.False(t, MatchesWholeWord("", "app"))
	assert.False(t, MatchesWholeWord("anything", ""))
	assert.True(t, MatchesWholeWord("app at start", "app"))
	assert.True(t, MatchesWholeWord("ends with app", "app"))
}

func TestMatchesPartially(t *testing.T) {
	assert.True(t, MatchesPartially("application", "app"))
	assert.True(t, MatchesPartially("unhappy", "happy"))
	assert.False(t, MatchesPartially("hello", "world"))
}

func TestMatchesKeywords_AnyMode(t *testing.T) {
	keywords := []string{"crm", "pipeline"}

	assert.True(t, MatchesKeywords("looking for a CRM tool", keywords, enums.MatchModeAny))
	assert.True(t, MatchesKeywords("our sales pipeline is a mess", keywords, enums.MatchModeAny))
	assert.False(t, MatchesKeywords("nothing relevant here", keywords, enums.MatchModeAny))
}

func TestMatchesKeywords_AllMode(t *testing.T) {
	keywords := []string{"crm", "pipeline"}

	assert.True(t, MatchesKeywords("need a CRM for our pipeline", keywords, enums.MatchModeAll))
	assert.False(t, MatchesKeywords("looking for a CRM tool", keywords, enums.MatchModeAll))
	assert.False(t, MatchesKeywords("nothing relevant here", keywords, enums.MatchModeAll))
}

func TestMatchesKeywords_CaseInsensitive(t *testing.T) {
	assert.True(t, MatchesKeywords("Looking For A CRM", []string{"crm"}, enums.MatchModeAny))
	assert.True(t, MatchesKeywords("looking for a crm", []string{"CRM"}, enums.MatchModeAny))
}

func TestMatchesKeywords_EmptySet(t *testing.T) {
	assert.False(t, MatchesKeywords("anything", nil, enums.MatchModeAny))
	assert.False(t, MatchesKeywords("anything", []string{}, enums.MatchModeAll))
	assert.False(t, MatchesKeywords("anything", []string{" ", ""}, enums.MatchModeAll))
}

func TestSubredditFilter(t *testing.T) {
	include := SubredditFilter{Include: []string{"sales", "startups"}}
	assert.True(t, include.Matches("sales"))
	assert.True(t, include.Matches("Startups"))
	assert.False(t, include.Matches("funny"))

	exclude := SubredditFilter{Exclude: []string{"circlejerk"}}
	assert.True(t, exclude.Matches("sales"))
	assert.False(t, exclude.Matches("circlejerk"))

	both := SubredditFilter{Include: []string{"sales"}, Exclude: []string{"sales"}}
	assert.False(t, both.Matches("sales"), "exclude wins over include")

	assert.True(t, SubredditFilter{}.Matches("anything"))
}

func TestLanguageAllowed(t *testing.T) {
	assert.True(t, LanguageAllowed("en", nil))
	assert.True(t, LanguageAllowed("", []string{"en"}), "untagged records pass")
	assert.True(t, LanguageAllowed("en", []string{"EN", "de"}))
	assert.False(t, LanguageAllowed("fr", []string{"en", "de"}))
}
