package ai

import "context"

// Completer produces a text completion for a prompt.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends the prompt to the model and returns its text
	// response. Returns an error when the backend cannot produce a
	// response; callers decide how to degrade.
	Complete(ctx context.Context, prompt string) (string, error)
}
