package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mascanho/ruddit/enums"
)

func TestBuildInstruction_FreeForm(t *testing.T) {
	q := FreeForm{Question: "which posts mention pricing?"}

	first := BuildInstruction(q, `[{"id":"1"}]`, 1)
	assert.Contains(t, first, `[{"id":"1"}]`)
	assert.Contains(t, first, "Return ONLY valid JSON")
	assert.Contains(t, first, "No markdown code blocks")
	assert.NotContains(t, first, "STRICT RULES")

	second := BuildInstruction(q, `[{"id":"1"}]`, 2)
	assert.Contains(t, second, "STRICT RULES")
	assert.Contains(t, second, "NO prose")

	assert.Equal(t, "which posts mention pricing?", q.UserMessage())
}

func TestBuildInstruction_LeadFilter(t *testing.T) {
	q := LeadFilter{
		Keywords:   []string{"crm", "erp"},
		MatchMode:  enums.MatchModeAll,
		Sentiments: []string{"positive", "neutral"},
	}

	instruction := BuildInstruction(q, "[]", 1)
	assert.Contains(t, instruction, "lead generation AI")
	for _, field := range []string{"formatted_date", "title", "url", "relevance", "subreddit", "sentiment", "top_comments", "engagement_score"} {
		assert.Contains(t, instruction, field)
	}

	msg := q.UserMessage()
	assert.Contains(t, msg, "crm OR erp")
	assert.Contains(t, msg, "AND matching")
	assert.Contains(t, msg, "positive OR neutral")
}

func TestBuildInstruction_StricterIsLonger(t *testing.T) {
	q := LeadFilter{Keywords: []string{"crm"}, MatchMode: enums.MatchModeAny, Sentiments: []string{"neutral"}}

	first := BuildInstruction(q, "[]", 1)
	second := BuildInstruction(q, "[]", 2)

	assert.Greater(t, len(second), len(first))
	assert.True(t, strings.HasPrefix(second, first[:40]), "same instruction shape, extra constraints appended")
}
