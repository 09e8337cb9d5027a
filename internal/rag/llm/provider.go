package llm

import (
	"context"
	"errors"
)

// ErrMissingCredential means the provider was never given an API key.
// Callers treat it differently from a provider outage: retrieved sources
// are still worth showing even when generation cannot run.
var ErrMissingCredential = errors.New("llm credential not configured")

type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
