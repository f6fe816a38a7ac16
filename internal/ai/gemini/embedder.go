package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/spigell/resume-matcher/internal/embedding"
)

const defaultEmbeddingModel = "gemini-embedding-001"

// Embedder computes embeddings with the Gemini embedding models.
type Embedder struct {
	models    models
	modelName string
	dim       int
}

var _ embedding.Embedder = (*Embedder)(nil)

// NewEmbedder returns an Embedder producing vectors of dim values. dim must be positive
// and supported by the model.
func NewEmbedder(client *genai.Client, model string, dim int) (*Embedder, error) {
	if client == nil || client.Models == nil {
		return nil, errors.New("genai client is not initialized")
	}
	return newEmbedder(client.Models, model, dim)
}

func newEmbedder(m models, model string, dim int) (*Embedder, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultEmbeddingModel
	}
	return &Embedder{models: m, modelName: model, dim: dim}, nil
}

func (e *Embedder) Dimension() int { return e.dim }

func (e *Embedder) Embed(ctx context.Context, text string) (embedding.Vector, error) {
	resp, err := e.models.EmbedContent(ctx, e.modelName, genai.Text(text), &genai.EmbedContentConfig{
		TaskType:             "SEMANTIC_SIMILARITY",
		OutputDimensionality: genai.Ptr(int32(e.dim)),
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.New("gemini api returned no embeddings")
	}

	values := resp.Embeddings[0].Values
	v := make(embedding.Vector, len(values))
	for i, x := range values {
		v[i] = float64(x)
	}

	return v, nil
}
