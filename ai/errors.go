package ai

import "fmt"

// The extraction flow distinguishes four failure classes so callers can
// tell bad credentials apart from a misbehaving model. StoreError and
// ConfigError abort before the retry loop starts; ProviderError and
// FormatError are retried up to the attempt bound.

type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store error: %v", e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "configuration error: " + e.Reason }

type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return fmt.Sprintf("provider error: %v", e.Err) }
func (e *ProviderError) Unwrap() error { return e.Err }

// FormatError means the response failed JSON validation after fence
// stripping. Raw keeps the untouched response text for diagnostics.
type FormatError struct {
	Err error
	Raw string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid JSON in model response: %v (response was: %s)", e.Err, e.Raw)
}

func (e *FormatError) Unwrap() error { return e.Err }
