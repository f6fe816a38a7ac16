package embedding

import "math"

// Score rescales the cosine similarity of a and b from [-1, 1] to [0, 100].
// It returns exactly 0 when either vector is zero or the vectors are not comparable.
func Score(a, b Vector) float64 {
	if len(a) == 0 || len(a) != len(b) || a.IsZero() || b.IsZero() {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	cosine := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	score := (cosine + 1) / 2 * 100
	if math.IsNaN(score) {
		return 0
	}

	return math.Max(0, math.Min(100, score))
}
