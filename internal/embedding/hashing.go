package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// DefaultDimension matches the size of common small sentence-embedding models.
const DefaultDimension = 384

// HashingEmbedder maps unigrams and bigrams into a fixed number of signed buckets
// (the hashing trick) and L2-normalizes the result. It needs no model files or network
// access and is deterministic.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder returns an embedder of the given dimension, DefaultDimension when dim <= 0.
func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashingEmbedder{dim: dim}
}

func (h *HashingEmbedder) Dimension() int { return h.dim }

func (h *HashingEmbedder) Embed(_ context.Context, text string) (Vector, error) {
	v := make(Vector, h.dim)

	tokens := strings.Fields(text)
	for i, token := range tokens {
		h.add(v, token, 1)
		if i > 0 {
			h.add(v, tokens[i-1]+" "+token, 0.5)
		}
	}

	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return v, nil
	}

	norm = math.Sqrt(norm)
	for i := range v {
		v[i] /= norm
	}

	return v, nil
}

func (h *HashingEmbedder) add(v Vector, feature string, weight float64) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	idx := int(sum % uint64(h.dim))
	// the top bit picks the sign so colliding features tend to cancel out
	if sum>>63 == 1 {
		weight = -weight
	}
	v[idx] += weight
}
