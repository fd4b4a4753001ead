package analysis

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLabels(n int, positiveShare float64, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	labels := make([]int, n)
	for i := range labels {
		if rng.Float64() < positiveShare {
			labels[i] = 1
		}
	}
	return labels
}

func TestSplit_ReproducibleWithFixedSeed(t *testing.T) {
	labels := makeLabels(500, 0.3, 7)

	first, err := NewPartitioner(42).Split(labels, 0.8)
	require.NoError(t, err)
	second, err := NewPartitioner(42).Split(labels, 0.8)
	require.NoError(t, err)

	assert.Equal(t, first.TrainIndices, second.TrainIndices)
	assert.Equal(t, first.TestIndices, second.TestIndices)
}

func TestSplit_DifferentSeedsDiffer(t *testing.T) {
	labels := makeLabels(500, 0.3, 7)

	first, err := NewPartitioner(42).Split(labels, 0.8)
	require.NoError(t, err)
	second, err := NewPartitioner(1337).Split(labels, 0.8)
	require.NoError(t, err)

	assert.NotEqual(t, first.TrainIndices, second.TrainIndices)
}

func TestSplit_DisjointAndExhaustive(t *testing.T) {
	labels := makeLabels(503, 0.25, 11)

	result, err := NewPartitioner(42).Split(labels, 0.8)
	require.NoError(t, err)

	seen := map[int]int{}
	for _, idx := range result.TrainIndices {
		seen[idx]++
	}
	for _, idx := range result.TestIndices {
		seen[idx]++
	}

	require.Len(t, seen, len(labels))
	for idx, count := range seen {
		assert.Equal(t, 1, count, "row %d assigned %d times", idx, count)
	}
}

func TestSplit_PreservesClassProportions(t *testing.T) {
	labels := makeLabels(1000, 0.3, 13)

	positives := 0
	for _, l := range labels {
		positives += l
	}
	sourceShare := float64(positives) / float64(len(labels))

	result, err := NewPartitioner(42).Split(labels, 0.8)
	require.NoError(t, err)

	// Per-class rounding keeps each partition within about one row of the
	// source proportion.
	tolerance := 1.5 / float64(result.Stats.TestRows)
	assert.InDelta(t, sourceShare, result.Stats.TrainPositive, tolerance)
	assert.InDelta(t, sourceShare, result.Stats.TestPositive, tolerance)
}

func TestSplit_RatioRespected(t *testing.T) {
	labels := makeLabels(1000, 0.3, 17)

	result, err := NewPartitioner(42).Split(labels, 0.8)
	require.NoError(t, err)

	assert.InDelta(t, 800, result.Stats.TrainRows, 2)
	assert.Equal(t, 1000, result.Stats.TrainRows+result.Stats.TestRows)
}

func TestSplit_InvalidInputs(t *testing.T) {
	_, err := NewPartitioner(42).Split([]int{1}, 0.8)
	assert.Error(t, err)

	_, err = NewPartitioner(42).Split(makeLabels(100, 0.5, 1), 0)
	assert.Error(t, err)

	_, err = NewPartitioner(42).Split(makeLabels(100, 0.5, 1), 1)
	assert.Error(t, err)
}

func TestProfileNumeric(t *testing.T) {
	profile := ProfileNumeric("tenure", []float64{1, 2, 3, 4, 5})

	assert.Equal(t, "tenure", profile.Name)
	assert.Equal(t, 5, profile.Count)
	assert.InDelta(t, 3, profile.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(2), profile.StdDev, 1e-9)
	assert.InDelta(t, 1, profile.Min, 1e-9)
	assert.InDelta(t, 5, profile.Max, 1e-9)
	assert.InDelta(t, 3, profile.Median, 1e-9)
}
