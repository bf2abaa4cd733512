// Package llm adapts whatever large-language-model endpoint is configured
// into the narrow interface the pipeline's LLM-driven stages (optimizer,
// router, llmrerank) need: one chat-style Invoke call returning raw text,
// from which each stage extracts its own JSON payload.
package llm

import "context"

// Message is one turn of a chat-style request.
type Message struct {
	Role    string // "system", "user", or "assistant"
	Content string
}

// Client is the capability every LLM-driven stage depends on.
type Client interface {
	Invoke(ctx context.Context, model, system string, messages []Message, maxTokens int, temperature float64) (string, error)
}
