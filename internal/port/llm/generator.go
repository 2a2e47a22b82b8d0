// Package llm defines the port interface for text generation.
package llm

import "context"

// Generator produces model completions for agent prompts.
type Generator interface {
	// Generate returns the completion text for a prompt. Temperature is
	// passed through to the backing model.
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}
