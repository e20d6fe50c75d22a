package llm

import "context"

// Provider is the single upstream boundary: one generative text call per
// operation. The response text is treated as opaque.
type Provider interface {
	// Generate sends a system instruction plus a user prompt and returns
	// the model's text.
	Generate(ctx context.Context, system string, user string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

type Response struct {
	Content string
	Usage   Usage
}
