// Package embedding maps normalized text to dense vectors and scores their similarity.
package embedding

import (
	"context"
	"fmt"
)

// Vector is a dense embedding. The all-zero vector stands for "no content".
type Vector []float64

// IsZero reports whether v carries no signal.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Embedder produces vectors of a fixed dimension.
type Embedder interface {
	Embed(ctx context.Context, text string) (Vector, error)
	Dimension() int
}

// Service guards an Embedder with the empty-input sentinel and a dimension check.
type Service struct {
	embedder Embedder
}

func NewService(embedder Embedder) *Service {
	return &Service{embedder: embedder}
}

// Dimension returns the size of every vector this service returns.
func (s *Service) Dimension() int {
	return s.embedder.Dimension()
}

// Embed returns the zero vector for empty input without calling the embedder.
func (s *Service) Embed(ctx context.Context, normalized string) (Vector, error) {
	dim := s.embedder.Dimension()
	if normalized == "" {
		return make(Vector, dim), nil
	}

	v, err := s.embedder.Embed(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("embed text: %w", err)
	}

	if len(v) != dim {
		return nil, fmt.Errorf("embedder returned %d dimensions, expected %d", len(v), dim)
	}

	return v, nil
}
