// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed provides the optional embedding backend required by
// semantic ranking. The only implementation calls the OpenAI embeddings
// API; without an API key the capability is unavailable and semantic mode
// must be rejected up front.
package embed

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/renderarxiv/pkg/types"
)

// ErrNotConfigured is returned when semantic ranking is requested but no
// embedding backend is available.
var ErrNotConfigured = errors.New("semantic mode requires an OpenAI API key: set openai-api-key in .secrets/ or the OPENAI_API_KEY environment variable")

const defaultModel = openai.SmallEmbedding3

// Embedder computes vector embeddings for a batch of texts. Each returned
// vector is position-aligned with its input text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// OpenAI implements Embedder over the OpenAI embeddings API.
type OpenAI struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAI builds an OpenAI embedder from cfg. It returns
// ErrNotConfigured when no API key is set.
func NewOpenAI(cfg types.EmbeddingConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	model := defaultModel
	if cfg.Model != "" {
		model = openai.EmbeddingModel(cfg.Model)
	}
	return &OpenAI{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
	}, nil
}

// Embed requests embeddings for texts in a single API call.
func (o *OpenAI) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: o.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embeddings: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("openai embeddings: vector index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// Cosine returns the cosine similarity of two vectors, or 0 when either
// has zero magnitude or the lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
