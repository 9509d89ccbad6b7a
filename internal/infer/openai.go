package infer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// OpenAIEngine generates through any OpenAI-compatible server, e.g.
// mlx_lm.server or llama-server pointed at a local quantized model.
type OpenAIEngine struct {
	baseURL string
	model   string
	client  *openai.Client
}

// NewOpenAIEngine creates an engine for the given server URL. The API
// key may be empty for local servers that do not check it.
func NewOpenAIEngine(baseURL, apiKey, model string) *OpenAIEngine {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIEngine{
		baseURL: baseURL,
		model:   model,
		client:  openai.NewClientWithConfig(cfg),
	}
}

// Name returns the engine name.
func (e *OpenAIEngine) Name() string {
	return "openai"
}

// IsAvailable checks if the engine is properly configured.
func (e *OpenAIEngine) IsAvailable() error {
	if e.baseURL == "" {
		return fmt.Errorf("no base URL configured for the openai engine")
	}
	return nil
}

// Generate requests one completion from the server. With the chat
// template enabled the prompt is wrapped in a single user message and
// the server's own template takes care of the role markers; disabled,
// the raw prompt goes through the legacy completion endpoint.
func (e *OpenAIEngine) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	sampler := p.Sampler()
	if sampler != nil && sampler.TopK > 0 {
		log.Warn().Int("top_k", sampler.TopK).Msg("openai engine does not support top-k, ignoring")
	}

	if p.ChatTemplate {
		return e.chatCompletion(ctx, prompt, p, sampler)
	}
	return e.completion(ctx, prompt, p, sampler)
}

func (e *OpenAIEngine) chatCompletion(ctx context.Context, prompt string, p Params, sampler *Sampler) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: p.MaxNewTokens,
	}
	if sampler != nil {
		req.Temperature = float32(sampler.Temperature)
		req.TopP = float32(sampler.TopP)
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (e *OpenAIEngine) completion(ctx context.Context, prompt string, p Params, sampler *Sampler) (string, error) {
	req := openai.CompletionRequest{
		Model:     e.model,
		Prompt:    prompt,
		MaxTokens: p.MaxNewTokens,
	}
	if sampler != nil {
		req.Temperature = float32(sampler.Temperature)
		req.TopP = float32(sampler.TopP)
	}

	resp, err := e.client.CreateCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return strings.TrimSpace(resp.Choices[0].Text), nil
}
