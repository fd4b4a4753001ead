package analysis

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Partitioner implements stratified train/test splitting
type Partitioner struct {
	randomSeed int64
}

// PartitionResult represents the outcome of a split: row indices into the
// source table, train first.
type PartitionResult struct {
	TrainIndices []int
	TestIndices  []int
	Stats        PartitionStatistics
}

// PartitionStatistics provides metadata about the partitioning
type PartitionStatistics struct {
	TotalRows     int
	TrainRows     int
	TestRows      int
	TrainRatio    float64
	TrainPositive float64
	TestPositive  float64
	RandomSeed    int64
}

// NewPartitioner creates a partitioner with a specific seed for
// reproducibility. The same seed over the same labels yields identical
// index sets.
func NewPartitioner(seed int64) *Partitioner {
	return &Partitioner{randomSeed: seed}
}

// Split partitions row indices with stratification on the binary label, so
// the class proportions of the source survive in both partitions. Rounding
// happens per class, which keeps the achieved ratio within one row of the
// requested one for each class.
func (p *Partitioner) Split(labels []int, trainRatio float64) (*PartitionResult, error) {
	if len(labels) < 2 {
		return nil, fmt.Errorf("insufficient data for partitioning: need at least 2 rows, got %d", len(labels))
	}
	if trainRatio <= 0 || trainRatio >= 1 {
		return nil, fmt.Errorf("train ratio must be in (0, 1), got %v", trainRatio)
	}

	// Group row indices by class
	byClass := map[int][]int{}
	for i, label := range labels {
		byClass[label] = append(byClass[label], i)
	}

	classes := make([]int, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	rng := rand.New(rand.NewSource(p.randomSeed))

	var trainIndices, testIndices []int
	for _, class := range classes {
		indices := byClass[class]
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		cut := int(math.Round(float64(len(indices)) * trainRatio))
		// Keep both partitions non-empty when a class is large enough to
		// contribute to each.
		if cut == len(indices) && len(indices) > 1 {
			cut = len(indices) - 1
		}
		if cut == 0 && len(indices) > 1 {
			cut = 1
		}

		trainIndices = append(trainIndices, indices[:cut]...)
		testIndices = append(testIndices, indices[cut:]...)
	}

	sort.Ints(trainIndices)
	sort.Ints(testIndices)

	stats := PartitionStatistics{
		TotalRows:     len(labels),
		TrainRows:     len(trainIndices),
		TestRows:      len(testIndices),
		TrainRatio:    float64(len(trainIndices)) / float64(len(labels)),
		TrainPositive: positiveShare(labels, trainIndices),
		TestPositive:  positiveShare(labels, testIndices),
		RandomSeed:    p.randomSeed,
	}

	return &PartitionResult{
		TrainIndices: trainIndices,
		TestIndices:  testIndices,
		Stats:        stats,
	}, nil
}

func positiveShare(labels []int, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	positives := 0
	for _, idx := range indices {
		if labels[idx] == 1 {
			positives++
		}
	}
	return float64(positives) / float64(len(indices))
}
