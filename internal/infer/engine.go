// Package infer defines the inference engine boundary for the
// translation CLI. Generation itself is entirely the engine's problem;
// this package only formats parameters, picks an engine and hands the
// rendered prompt over.
package infer

import (
	"context"
	"fmt"
)

// Params carries the generation parameters from the CLI to an engine.
// Values pass through unchanged; no clamping happens here.
type Params struct {
	MaxNewTokens    int
	Temperature     float64
	TopP            float64
	TopK            int
	TrustRemoteCode bool
	ChatTemplate    bool // apply the tokenizer chat template when the engine supports one
}

// Sampler describes a stochastic decoding strategy. A nil *Sampler
// means greedy decoding.
type Sampler struct {
	Temperature float64
	TopP        float64
	TopK        int
}

// NewSampler returns a sampler for the given parameters, or nil when
// they amount to pure greedy decoding (temperature 0, top-p 1, top-k
// 0). Engines skip sampler flags entirely in the greedy case.
func NewSampler(temperature, topP float64, topK int) *Sampler {
	if temperature <= 0 && topP >= 1.0 && topK <= 0 {
		return nil
	}
	return &Sampler{Temperature: temperature, TopP: topP, TopK: topK}
}

// Sampler derives the decoding strategy from the parameters.
func (p Params) Sampler() *Sampler {
	return NewSampler(p.Temperature, p.TopP, p.TopK)
}

// Engine generates text from a rendered prompt.
type Engine interface {
	// Generate runs one generation and returns the produced text.
	Generate(ctx context.Context, prompt string, p Params) (string, error)

	// Name returns the engine name.
	Name() string

	// IsAvailable checks if the engine is properly configured and available.
	IsAvailable() error
}

// Config holds common configuration for inference engines.
type Config struct {
	Engine  string // engine name: "mlx" or "openai"
	Model   string // model directory (mlx) or model id (openai)
	BaseURL string // OpenAI-compatible server URL, openai engine only
	APIKey  string // API key for the openai engine, may be empty for local servers
	Python  string // python interpreter running mlx_lm, mlx engine only
}

// NewEngine creates the appropriate inference engine based on configuration.
func NewEngine(config *Config) (Engine, error) {
	switch config.Engine {
	case "mlx", "":
		return NewMLXEngine(config.Python, config.Model), nil
	case "openai":
		return NewOpenAIEngine(config.BaseURL, config.APIKey, config.Model), nil
	default:
		return nil, fmt.Errorf("unknown inference engine %q (supported: mlx, openai)", config.Engine)
	}
}
