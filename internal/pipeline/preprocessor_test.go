package pipeline

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"churnprep/domain/core"
	"churnprep/domain/table"
	"churnprep/internal/generator"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSource serves a pre-built table as a TableSource
type memSource struct {
	tbl *table.Table
}

func (m *memSource) Read() (*table.Table, error) {
	return m.tbl, nil
}

func generatedSource(t *testing.T, samples int) *memSource {
	t.Helper()
	cfg := generator.DefaultConfig()
	cfg.Samples = samples
	tbl, err := generator.NewChurnDataGenerator(cfg).Generate()
	require.NoError(t, err)
	return &memSource{tbl: tbl}
}

func TestPreprocessor_EndToEnd(t *testing.T) {
	artifactPath := filepath.Join(t.TempDir(), "preprocessor.json")
	pp := NewPreprocessor(DefaultPreprocessorConfig(), nil)

	result, err := pp.Run(generatedSource(t, 500), artifactPath)
	require.NoError(t, err)

	assert.Equal(t, 500, len(result.XTrain)+len(result.XTest))
	assert.Equal(t, len(result.XTrain), len(result.YTrain))
	assert.Equal(t, len(result.XTest), len(result.YTest))

	// No missing values anywhere in the transformed matrix
	for _, matrix := range [][][]float64{result.XTrain, result.XTest} {
		for r, row := range matrix {
			require.Len(t, row, len(result.FeatureNames))
			for c, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("row %d col %d (%s): non-finite value %v", r, c, result.FeatureNames[c], v)
				}
			}
		}
	}

	// Numerical columns are standardized against the fitted (train)
	// partition: mean about 0, standard deviation about 1
	for _, name := range []string{"SeniorCitizen", "tenure", "MonthlyCharges", "TotalCharges"} {
		col := -1
		for i, fn := range result.FeatureNames {
			if fn == name {
				col = i
				break
			}
		}
		require.GreaterOrEqual(t, col, 0, "feature %s not found", name)

		values := make([]float64, len(result.XTrain))
		for i, row := range result.XTrain {
			values[i] = row[col]
		}
		mean, _ := stats.Mean(values)
		stdDev, _ := stats.StandardDeviation(values)
		assert.InDelta(t, 0, mean, 1e-9, "%s mean", name)
		assert.InDelta(t, 1, stdDev, 1e-9, "%s std", name)
	}

	// The persisted artifact exists and is non-empty
	info, err := os.Stat(artifactPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPreprocessor_IdempotentAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	firstPath := filepath.Join(dir, "first.json")
	secondPath := filepath.Join(dir, "second.json")

	pp := NewPreprocessor(DefaultPreprocessorConfig(), nil)

	first, err := pp.Run(generatedSource(t, 400), firstPath)
	require.NoError(t, err)
	second, err := pp.Run(generatedSource(t, 400), secondPath)
	require.NoError(t, err)

	assert.Equal(t, first.Partition.TrainIndices, second.Partition.TrainIndices)
	assert.Equal(t, first.Partition.TestIndices, second.Partition.TestIndices)
	assert.Equal(t, first.XTrain, second.XTrain)
	assert.Equal(t, first.XTest, second.XTest)
	assert.Equal(t, first.YTrain, second.YTrain)
	assert.Equal(t, first.YTest, second.YTest)

	firstBytes, err := os.ReadFile(firstPath)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(secondPath)
	require.NoError(t, err)
	assert.Equal(t, firstBytes, secondBytes)
}

func TestPreprocessor_StratificationPreserved(t *testing.T) {
	artifactPath := filepath.Join(t.TempDir(), "preprocessor.json")
	pp := NewPreprocessor(DefaultPreprocessorConfig(), nil)

	result, err := pp.Run(generatedSource(t, 1000), artifactPath)
	require.NoError(t, err)

	total := append(append([]int{}, result.YTrain...), result.YTest...)
	positives := 0
	for _, y := range total {
		positives += y
	}
	sourceShare := float64(positives) / float64(len(total))

	assert.InDelta(t, sourceShare, result.Partition.Stats.TrainPositive, 1.5/float64(len(result.YTest)))
	assert.InDelta(t, sourceShare, result.Partition.Stats.TestPositive, 1.5/float64(len(result.YTest)))
}

func TestPreprocessor_CleansDirtyColumn(t *testing.T) {
	cfg := generator.DefaultConfig()
	cfg.Samples = 500
	cfg.MissingRate = 0.1
	tbl, err := generator.NewChurnDataGenerator(cfg).Generate()
	require.NoError(t, err)

	artifactPath := filepath.Join(t.TempDir(), "preprocessor.json")
	pp := NewPreprocessor(DefaultPreprocessorConfig(), nil)

	result, err := pp.Run(&memSource{tbl: tbl}, artifactPath)
	require.NoError(t, err)

	for _, matrix := range [][][]float64{result.XTrain, result.XTest} {
		for _, row := range matrix {
			for _, v := range row {
				require.False(t, math.IsNaN(v))
			}
		}
	}
}

func TestPreprocessor_MissingColumnFails(t *testing.T) {
	src := generatedSource(t, 100)
	broken, err := src.tbl.DropColumn("TechSupport")
	require.NoError(t, err)

	pp := NewPreprocessor(DefaultPreprocessorConfig(), nil)
	_, err = pp.Run(&memSource{tbl: broken}, filepath.Join(t.TempDir(), "preprocessor.json"))
	require.Error(t, err)
	assert.True(t, core.IsSchemaError(err))
	assert.Contains(t, err.Error(), "TechSupport")
}

func TestPreprocessor_BadLabelFails(t *testing.T) {
	src := generatedSource(t, 100)
	labels, err := src.tbl.Column("Churn")
	require.NoError(t, err)
	labels[3] = "maybe"
	require.NoError(t, src.tbl.SetColumn("Churn", labels))

	pp := NewPreprocessor(DefaultPreprocessorConfig(), nil)
	_, err = pp.Run(src, filepath.Join(t.TempDir(), "preprocessor.json"))
	require.Error(t, err)
	assert.True(t, core.IsSchemaError(err))
}

func TestPreprocessor_UnwritableArtifactPath(t *testing.T) {
	dir := t.TempDir()
	// A file where the artifact directory should be makes MkdirAll fail
	blocker := filepath.Join(dir, "models")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	pp := NewPreprocessor(DefaultPreprocessorConfig(), nil)
	_, err := pp.Run(generatedSource(t, 100), filepath.Join(blocker, "preprocessor.json"))
	require.Error(t, err)
	assert.True(t, core.IsPersistenceError(err))
}
