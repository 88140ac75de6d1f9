package generator

import "context"

// systemInstruction pins the output contract for every generation call
const systemInstruction = "You are an expert LinkedIn content writer. Output only the post text, no preamble and no explanations."

// CompletionOptions tune one text-generation call
type CompletionOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// LLMClient abstracts the hosted text-generation provider so it can be
// swapped or mocked. Transport failures (timeouts, auth, rate limits)
// are returned unmodified; retry policy belongs to the caller.
type LLMClient interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}
