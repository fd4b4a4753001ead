package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"churnprep/domain/core"

	"github.com/montanaflynn/stats"
)

// TransformKind tags a column transform variant
type TransformKind string

const (
	// TransformOneHot expands a categorical column into one indicator
	// column per learned category.
	TransformOneHot TransformKind = "onehot"
	// TransformStandardize rescales a numerical column by the learned
	// mean and standard deviation.
	TransformStandardize TransformKind = "standardize"
)

// ColumnTransform is one tagged variant in the fitted pipeline. Exactly one
// parameter set is populated, according to Kind. Values are learned once at
// fit time and never updated.
type ColumnTransform struct {
	Column string        `json:"column"`
	Kind   TransformKind `json:"kind"`

	// One-hot parameters
	Categories []string `json:"categories,omitempty"`

	// Standardization parameters
	Mean   float64 `json:"mean,omitempty"`
	StdDev float64 `json:"std_dev,omitempty"`
}

// fit learns the transform's parameters from the given column values.
func (ct *ColumnTransform) fit(values []string) error {
	switch ct.Kind {
	case TransformOneHot:
		seen := map[string]bool{}
		for _, v := range values {
			seen[v] = true
		}
		categories := make([]string, 0, len(seen))
		for v := range seen {
			categories = append(categories, v)
		}
		// Sorted so the same data always yields the same column order
		sort.Strings(categories)
		ct.Categories = categories
		return nil

	case TransformStandardize:
		nums := make([]float64, len(values))
		for i, v := range values {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return core.NewSchemaError(ct.Column,
					fmt.Sprintf("row %d: value %q is not numeric", i, v))
			}
			nums[i] = parsed
		}
		mean, err := stats.Mean(nums)
		if err != nil {
			return core.NewSchemaError(ct.Column, err.Error())
		}
		stdDev, err := stats.StandardDeviation(nums)
		if err != nil {
			return core.NewSchemaError(ct.Column, err.Error())
		}
		if stdDev == 0 {
			// A constant column standardizes to zero rather than dividing
			// by zero.
			stdDev = 1
		}
		ct.Mean = mean
		ct.StdDev = stdDev
		return nil

	default:
		return core.NewSchemaError(ct.Column, fmt.Sprintf("unknown transform kind %q", ct.Kind))
	}
}

// width returns the number of output columns this transform produces.
func (ct ColumnTransform) width() int {
	if ct.Kind == TransformOneHot {
		return len(ct.Categories)
	}
	return 1
}

// featureNames returns the output column names, in output order.
func (ct ColumnTransform) featureNames() []string {
	if ct.Kind == TransformOneHot {
		names := make([]string, len(ct.Categories))
		for i, cat := range ct.Categories {
			names[i] = ct.Column + "_" + cat
		}
		return names
	}
	return []string{ct.Column}
}

// apply transforms one raw value into its numeric representation. A
// category unseen at fit time yields an all-zeros indicator block instead
// of an error, so the fitted pipeline stays usable on future data.
func (ct ColumnTransform) apply(value string) ([]float64, error) {
	switch ct.Kind {
	case TransformOneHot:
		out := make([]float64, len(ct.Categories))
		for i, cat := range ct.Categories {
			if value == cat {
				out[i] = 1
				break
			}
		}
		return out, nil

	case TransformStandardize:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, core.NewSchemaError(ct.Column, fmt.Sprintf("value %q is not numeric", value))
		}
		return []float64{(parsed - ct.Mean) / ct.StdDev}, nil

	default:
		return nil, core.NewSchemaError(ct.Column, fmt.Sprintf("unknown transform kind %q", ct.Kind))
	}
}
