package ai

import (
	"fmt"
	"strings"

	"github.com/mascanho/ruddit/enums"
)

// Query is the thing the extraction loop asks the model about: either a
// free-form question or a lead-filtering run driven by configured criteria.
type Query interface {
	// UserMessage is the message sent alongside the system instruction.
	UserMessage() string

	instruction(payload string, attempt int) string
}

// FreeForm is an operator-supplied natural-language question over the
// stored records.
type FreeForm struct {
	Question string
}

func (q FreeForm) UserMessage() string { return q.Question }

func (q FreeForm) instruction(payload string, attempt int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Given the following data: %s, answer the question using only that data. Be thorough and include URLs when relevant.\n\n", payload)
	writeFormatRules(&b, attempt, []string{
		"answer: your answer to the question",
		"url: supporting post URL when one exists",
	})
	return b.String()
}

// LeadFilter selects business-relevant records matching the configured
// keywords, match mode and sentiments.
type LeadFilter struct {
	Keywords   []string
	MatchMode  enums.MatchMode
	Sentiments []string
}

func (q LeadFilter) UserMessage() string {
	return fmt.Sprintf(
		"Analyze the posts and return ONLY those that match these criteria:\n"+
			"1. Keywords (%s) must be found in the title using %s matching\n"+
			"2. The post sentiment should match one of: %s\n"+
			"3. Return ONLY posts that are likely to be leads or business opportunities.",
		strings.Join(q.Keywords, " OR "),
		q.MatchMode,
		strings.Join(q.Sentiments, " OR "),
	)
}

func (q LeadFilter) instruction(payload string, attempt int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a lead generation AI analyzing Reddit posts and comments. Analyze this data: %s\n\n", payload)
	writeFormatRules(&b, attempt, []string{
		"formatted_date: post date (YYYY-MM-DD)",
		"title: exact post title",
		"url: full post URL",
		"relevance: HIGH, MEDIUM, or LOW based on lead quality",
		"subreddit: subreddit name",
		"sentiment: detected sentiment (positive, negative, neutral)",
		"top_comments: array of up to 3 most relevant comments, each with author, text and sentiment",
		"engagement_score: HIGH, MEDIUM, or LOW based on interaction",
	})
	return b.String()
}

// BuildInstruction renders the system instruction for one attempt. The
// second and later attempts repeat the output constraints in a stricter
// register; the shape of the instruction is otherwise identical.
func BuildInstruction(q Query, payload string, attempt int) string {
	return q.instruction(payload, attempt)
}

func writeFormatRules(b *strings.Builder, attempt int, fields []string) {
	b.WriteString("OUTPUT REQUIREMENTS:\n")
	b.WriteString("1. Return ONLY valid JSON\n")
	b.WriteString("2. Each object MUST have these fields:\n")
	for _, field := range fields {
		fmt.Fprintf(b, "   - %s\n", field)
	}
	b.WriteString("3. No markdown code blocks\n")

	if attempt > 1 {
		b.WriteString("\nSTRICT RULES, your previous answer was rejected:\n")
		b.WriteString("- Use proper JSON format with double quotes\n")
		b.WriteString("- Absolutely NO text outside the JSON\n")
		b.WriteString("- NO prose, NO explanations, NO markdown fences\n")
		b.WriteString("- Respond with the JSON value and nothing else\n")
	}
}
