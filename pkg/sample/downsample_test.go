package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownsample_NoDownsampling(t *testing.T) {
	src := []float64{1.0, 1.1, 1.2}

	result := Downsample(nil, src, 10)
	require.Equal(t, src, result)

	dst := make([]float64, 0, 10)
	result = Downsample(dst, src, 10)
	require.Equal(t, src, result)
	// Should reuse dst
	assert.Equal(t, cap(dst), cap(result))
}

func TestDownsample_WithDownsampling(t *testing.T) {
	src := make([]float64, 100)
	for i := range src {
		src[i] = float64(i) * 0.01
	}

	dst := make([]float64, 0, 20)
	result := Downsample(dst, src, 10)
	require.Len(t, result, 10)

	assert.Equal(t, src[0], result[0])
	assert.GreaterOrEqual(t, result[len(result)-1], 0.8)
	for i := 1; i < len(result); i++ {
		assert.Greater(t, result[i], result[i-1])
	}
}

func TestDownsample_DestinationReuse(t *testing.T) {
	type point struct{ x, y float64 }

	dst := make([]point, 0, 10)
	first := Downsample(dst, []point{{0, 1}, {1, 2}}, 10)
	require.Len(t, first, 2)

	second := Downsample(first, []point{{0, 3}, {1, 4}, {2, 5}}, 10)
	require.Len(t, second, 3)
	assert.Equal(t, point{2, 5}, second[2])
	assert.Equal(t, cap(dst), cap(second))
}

func TestDownsample_EmptyInput(t *testing.T) {
	result := Downsample[float64](nil, nil, 10)
	assert.Empty(t, result)
}

func TestDownsample_ExactMaxPoints(t *testing.T) {
	src := []int{1, 2, 3, 4, 5}
	assert.Equal(t, src, Downsample(nil, src, 5))
}

func TestDownsample_NonPositiveMaxPoints(t *testing.T) {
	src := []float64{1, 2, 3}

	assert.Empty(t, Downsample(nil, src, 0))
	assert.Empty(t, Downsample(nil, src, -1))

	dst := make([]float64, 2, 10)
	result := Downsample(dst, src, -5)
	assert.Empty(t, result)
	assert.Equal(t, cap(dst), cap(result))
}
