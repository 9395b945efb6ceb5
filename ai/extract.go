package ai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mascanho/ruddit/data"
	"github.com/mascanho/ruddit/ui"
)

const DefaultMaxAttempts = 2

// Snapshot is the set of records serialized into the prompt. It is read
// from the store once, before the loop starts, and never re-fetched
// between attempts.
type Snapshot struct {
	Posts    []data.Post    `json:"posts"`
	Comments []data.Comment `json:"comments,omitempty"`
}

// Result is a successful extraction: the parsed JSON value plus the
// normalized text it was parsed from, which export sinks consume as-is.
type Result struct {
	Value    any
	JSON     string
	Attempts int
}

// Extractor turns unreliable model output into validated JSON. Each call
// makes up to maxAttempts provider calls, re-prompting with a stricter
// instruction after a transport failure or unparseable response.
type Extractor struct {
	gen         Generator
	logger      *slog.Logger
	spinner     *ui.Spinner
	maxAttempts int
}

type ExtractorOption func(*Extractor)

// WithSpinner animates a liveness indicator while a provider call is
// outstanding. It has no effect on the result.
func WithSpinner(s *ui.Spinner) ExtractorOption {
	return func(e *Extractor) { e.spinner = s }
}

func WithMaxAttempts(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

func NewExtractor(gen Generator, logger *slog.Logger, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		gen:         gen,
		logger:      logger,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the retry loop for one query over one snapshot. The first
// syntactically valid JSON response wins; exhausting the attempt bound
// returns the last classified error.
func (e *Extractor) Extract(ctx context.Context, query Query, snapshot Snapshot) (*Result, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, &StoreError{Err: err}
	}

	var lastErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		instruction := BuildInstruction(query, string(payload), attempt)
		e.logger.Debug("asking model", "attempt", attempt, "instruction_len", len(instruction))

		text, err := e.generate(ctx, instruction, query.UserMessage())
		if err != nil {
			lastErr = &ProviderError{Err: err}
			e.logger.Warn("provider call failed", "attempt", attempt, "error", err)
			continue
		}

		candidate := StripFences(text)
		e.logger.Debug("model response", "attempt", attempt, "raw_len", len(text))

		var value any
		if err := json.Unmarshal([]byte(candidate), &value); err != nil {
			lastErr = &FormatError{Err: err, Raw: text}
			e.logger.Warn("response failed JSON validation", "attempt", attempt, "error", err)
			continue
		}

		return &Result{Value: value, JSON: candidate, Attempts: attempt}, nil
	}

	if lastErr == nil {
		// Unreachable: every failed attempt records an error first.
		lastErr = errors.New("exhausted attempts without a response")
	}
	return nil, lastErr
}

// generate wraps one provider call with the liveness indicator. The
// spinner is stopped and joined on both paths before control returns
// to the loop.
func (e *Extractor) generate(ctx context.Context, instruction, userMessage string) (string, error) {
	e.spinner.Start("Thinking...")
	defer e.spinner.Stop()

	return e.gen.Generate(ctx, instruction, userMessage)
}
