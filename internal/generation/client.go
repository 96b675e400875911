// Package generation calls the external AI image-generation service.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/taste-fun/tf-indexer/internal/adapter"
	"github.com/taste-fun/tf-indexer/internal/domain"
)

// Client produces one image URI per prompt.
//
//go:generate mockgen -source=client.go -destination=../mocks/generation.go -package=mocks -mock_names=Client=MockGenerator
type Client interface {
	// Generate returns exactly one image URI per prompt, in order
	Generate(ctx context.Context, prompts []string, provider string) ([]string, error)
}

// Config holds the generation service settings.
type Config struct {
	// Endpoint is the service's generation URL
	Endpoint string
	// Model names the image model to run
	Model string
	// Width and Height are the requested image dimensions in pixels
	Width  int
	Height int
}

type generateRequest struct {
	Prompts  []string `json:"prompts"`
	Model    string   `json:"model"`
	Provider string   `json:"provider,omitempty"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
}

type generateResponse struct {
	Images []string `json:"images"`
}

type httpClient struct {
	http   adapter.HTTPClient
	config Config
}

// NewClient creates a generation client over the given HTTP transport.
func NewClient(http adapter.HTTPClient, cfg Config) Client {
	return &httpClient{
		http:   http,
		config: cfg,
	}
}

// Generate submits the prompts and returns the generated image URIs.
// A response that does not carry one image per prompt is an error; the
// on-chain confirmation requires the full set.
func (c *httpClient) Generate(ctx context.Context, prompts []string, provider string) ([]string, error) {
	if len(prompts) == 0 {
		return nil, fmt.Errorf("no prompts given")
	}

	payload, err := json.Marshal(generateRequest{
		Prompts:  prompts,
		Model:    c.config.Model,
		Provider: provider,
		Width:    c.config.Width,
		Height:   c.config.Height,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	body, err := c.http.Post(ctx, c.config.Endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to call generation service: %w", err)
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generation response: %w", err)
	}

	if len(resp.Images) != len(prompts) {
		return nil, fmt.Errorf("%w: requested %d, got %d", domain.ErrImageCountMismatch, len(prompts), len(resp.Images))
	}

	return resp.Images, nil
}
