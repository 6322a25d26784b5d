// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/renderarxiv/pkg/types"
)

func TestNewOpenAIWithoutKey(t *testing.T) {
	_, err := NewOpenAI(types.EmbeddingConfig{})
	require.ErrorIs(t, err, ErrNotConfigured)
	// The error must name the missing capability so the user can fix it.
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewOpenAIWithKey(t *testing.T) {
	e, err := NewOpenAI(types.EmbeddingConfig{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1}, []float32{1, 2}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCosineScaleInvariant(t *testing.T) {
	a := []float32{0.3, 0.7, 0.1}
	b := []float32{0.6, 1.4, 0.2} // 2x a
	assert.InDelta(t, 1.0, Cosine(a, b), 1e-6)
	assert.False(t, math.IsNaN(Cosine(a, b)))
}
