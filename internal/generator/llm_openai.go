package generator

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/vacantvectors/postcraft/internal/config"
)

// OpenAILLM implements LLMClient against any OpenAI-compatible chat
// completions endpoint (Groq by default). When the configured model is
// rejected by the provider, the fallback models are tried in order.
type OpenAILLM struct {
	fallbacks []string
	opts      []option.RequestOption
}

// NewOpenAILLM builds a client from LLM configuration
func NewOpenAILLM(cfg config.LLMConfig) (*OpenAILLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key missing; set LLM_API_KEY")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAILLM{fallbacks: cfg.FallbackModels, opts: opts}, nil
}

// Complete sends one chat completion request and returns the raw text
func (o *OpenAILLM) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	client := openai.NewClient(o.opts...)

	models := append([]string{opts.Model}, o.fallbacks...)
	var lastErr error
	for _, model := range models {
		params := openai.ChatCompletionNewParams{
			Model: openai.ChatModel(model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemInstruction),
				openai.UserMessage(prompt),
			},
		}
		if opts.Temperature > 0 {
			params.Temperature = openai.Float(opts.Temperature)
		}
		if opts.MaxTokens > 0 {
			params.MaxTokens = openai.Int(int64(opts.MaxTokens))
		}

		resp, err := client.Chat.Completions.New(ctx, params)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return "", err
			}
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = errors.New("llm returned empty choices")
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", lastErr
}
