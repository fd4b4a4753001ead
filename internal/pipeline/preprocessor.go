package pipeline

import (
	"churnprep/domain/core"
	"churnprep/domain/schema"
	"churnprep/domain/table"
	"churnprep/internal"
	"churnprep/internal/analysis"
	"churnprep/internal/cleaning"
)

// TableSource supplies the raw customer table.
type TableSource interface {
	Read() (*table.Table, error)
}

// PreprocessorConfig configures a preprocessing run
type PreprocessorConfig struct {
	Schema      schema.Schema
	DirtyColumn string
	TrainRatio  float64
	Seed        int64
}

// DefaultPreprocessorConfig returns the standard customer-churn setup:
// declared customer schema, TotalCharges as the known-dirty column, 80/20
// split, fixed seed.
func DefaultPreprocessorConfig() PreprocessorConfig {
	return PreprocessorConfig{
		Schema:      schema.CustomerSchema(),
		DirtyColumn: "TotalCharges",
		TrainRatio:  0.8,
		Seed:        42,
	}
}

// Result holds the outputs of a preprocessing run. The partitions live in
// memory only; the fitted pipeline is the persisted artifact.
type Result struct {
	Pipeline     *Pipeline
	FeatureNames []string
	XTrain       [][]float64
	XTest        [][]float64
	YTrain       []int
	YTest        []int
	Partition    *analysis.PartitionResult
	ArtifactPath string
}

// Preprocessor runs the linear preprocessing sequence: load, clean,
// separate, validate, split, fit on the training partition, transform both
// partitions, persist the fitted pipeline.
type Preprocessor struct {
	config PreprocessorConfig
	logger *internal.Logger
}

// NewPreprocessor creates a preprocessor
func NewPreprocessor(config PreprocessorConfig, logger *internal.Logger) *Preprocessor {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Preprocessor{config: config, logger: logger}
}

// Run executes the full sequence against the given source and persists the
// fitted pipeline at artifactPath.
func (pp *Preprocessor) Run(source TableSource, artifactPath string) (*Result, error) {
	// Load
	tbl, err := source.Read()
	if err != nil {
		return nil, err
	}
	pp.logger.Info("loaded %d rows, %d columns", tbl.NumRows(), tbl.NumColumns())

	// Validate the declared contract before touching any values
	if err := pp.config.Schema.Validate(tbl.Headers); err != nil {
		return nil, err
	}

	// Clean the known-dirty column
	if pp.config.DirtyColumn != "" {
		if err := cleaning.NewNumericCoercer().CoerceColumn(tbl, pp.config.DirtyColumn); err != nil {
			return nil, err
		}
		pp.logger.Debug("coerced column %q to numeric", pp.config.DirtyColumn)
	}

	// Separate features from the label
	labelColumn, ok := pp.config.Schema.LabelColumn()
	if !ok {
		return nil, core.NewSchemaError("", "schema declares no label column")
	}
	features, labels, err := tbl.SplitLabel(labelColumn)
	if err != nil {
		return nil, err
	}

	// Identifier columns carry no signal
	for _, name := range pp.config.Schema.ByKind(schema.KindIdentifier) {
		features, err = features.DropColumn(name)
		if err != nil {
			return nil, err
		}
	}

	// Cross-check the declared kinds against what the values look like
	pp.checkSchemaDrift(features)

	// Profile numeric columns as seen before fitting
	pp.profileNumericColumns(features)

	// Split before fitting: scaling parameters and categories are learned
	// from the training partition only, so nothing about the test rows
	// leaks into the fitted transformation.
	partitioner := analysis.NewPartitioner(pp.config.Seed)
	partition, err := partitioner.Split(labels, pp.config.TrainRatio)
	if err != nil {
		return nil, err
	}
	pp.logger.Info("split %d rows into %d train / %d test (train positives %.3f, test positives %.3f)",
		partition.Stats.TotalRows, partition.Stats.TrainRows, partition.Stats.TestRows,
		partition.Stats.TrainPositive, partition.Stats.TestPositive)

	trainFeatures := features.SelectRows(partition.TrainIndices)
	testFeatures := features.SelectRows(partition.TestIndices)

	// Fit on train, apply to both
	pipe := New(pp.config.Schema)
	if err := pipe.Fit(trainFeatures); err != nil {
		return nil, err
	}
	xTrain, err := pipe.Apply(trainFeatures)
	if err != nil {
		return nil, err
	}
	xTest, err := pipe.Apply(testFeatures)
	if err != nil {
		return nil, err
	}

	yTrain := make([]int, len(partition.TrainIndices))
	for i, idx := range partition.TrainIndices {
		yTrain[i] = labels[idx]
	}
	yTest := make([]int, len(partition.TestIndices))
	for i, idx := range partition.TestIndices {
		yTest[i] = labels[idx]
	}

	// Persist the fitted transformation
	if err := pipe.SaveTo(artifactPath); err != nil {
		return nil, err
	}
	fingerprint, _ := pipe.Fingerprint()
	pp.logger.Info("saved fitted preprocessor to %s (fingerprint %.12s)", artifactPath, fingerprint.String())

	return &Result{
		Pipeline:     pipe,
		FeatureNames: pipe.FeatureNames(),
		XTrain:       xTrain,
		XTest:        xTest,
		YTrain:       yTrain,
		YTest:        yTest,
		Partition:    partition,
		ArtifactPath: artifactPath,
	}, nil
}

// checkSchemaDrift warns when a column's values no longer look like its
// declared kind. Drift is logged, not fatal: the declared contract wins.
func (pp *Preprocessor) checkSchemaDrift(features *table.Table) {
	inferred := schema.Infer(features, "", "")
	for _, declared := range pp.config.Schema.Columns {
		if declared.Kind != schema.KindCategorical && declared.Kind != schema.KindNumerical {
			continue
		}
		got, ok := inferred.Find(declared.Name)
		if !ok {
			continue
		}
		if got.Kind != declared.Kind {
			pp.logger.Warn("column %q declared %s but values look %s", declared.Name, declared.Kind, got.Kind)
		}
	}
}

func (pp *Preprocessor) profileNumericColumns(features *table.Table) {
	for _, name := range pp.config.Schema.ByKind(schema.KindNumerical) {
		values, err := cleaning.ParseNumericColumn(features, name)
		if err != nil {
			pp.logger.Warn("skipping profile for %q: %v", name, err)
			continue
		}
		profile := analysis.ProfileNumeric(name, values)
		pp.logger.Debug("%s: n=%d mean=%.3f std=%.3f min=%.2f max=%.2f median=%.2f",
			profile.Name, profile.Count, profile.Mean, profile.StdDev, profile.Min, profile.Max, profile.Median)
	}
}
