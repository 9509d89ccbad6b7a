package models

import (
	"context"
	"fmt"
	"sort"

	"github.com/sashabaranov/go-openai"
)

// Lister lists the models an OpenAI-compatible inference server
// (mlx_lm.server, llama-server, ...) is currently serving.
type Lister struct {
	baseURL string
	client  *openai.Client
}

// NewLister creates a new model lister for the given server
func NewLister(baseURL, apiKey string) *Lister {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Lister{
		baseURL: baseURL,
		client:  openai.NewClientWithConfig(cfg),
	}
}

// ListAvailableModels prints the IDs of all served models
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	if l.baseURL == "" {
		return fmt.Errorf("no inference server configured; set --base-url or inference.base_url")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models from %s: %w", l.baseURL, err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	sort.Strings(ids)

	fmt.Printf("Models served by %s:\n", l.baseURL)
	if len(ids) == 0 {
		fmt.Println("  No models found")
		return nil
	}
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	return nil
}
