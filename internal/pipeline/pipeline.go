package pipeline

import (
	"encoding/json"

	"churnprep/domain/core"
	"churnprep/domain/schema"
	"churnprep/domain/table"
)

// Pipeline is the fitted transformation: one tagged transform per feature
// column, applied uniformly. It is immutable once fit and applies
// identically to training data and to any future unseen rows.
type Pipeline struct {
	Schema     schema.Schema     `json:"schema"`
	Transforms []ColumnTransform `json:"transforms"`

	fitted bool
}

// New builds an unfitted pipeline from the declared schema: categorical
// columns get one-hot transforms, numerical columns get standardization.
// Identifier and label columns take no part in the feature matrix.
func New(s schema.Schema) *Pipeline {
	var transforms []ColumnTransform
	for _, col := range s.Columns {
		switch col.Kind {
		case schema.KindCategorical:
			transforms = append(transforms, ColumnTransform{Column: col.Name, Kind: TransformOneHot})
		case schema.KindNumerical:
			transforms = append(transforms, ColumnTransform{Column: col.Name, Kind: TransformStandardize})
		}
	}
	return &Pipeline{Schema: s, Transforms: transforms}
}

// IsFitted reports whether Fit has completed.
func (p *Pipeline) IsFitted() bool {
	return p.fitted
}

// Fit learns one-hot categories and scaling parameters from the given
// feature table. Fitting twice is a violation: retraining means building a
// fresh pipeline and overwriting the artifact.
func (p *Pipeline) Fit(features *table.Table) error {
	if p.fitted {
		return core.NewSchemaError("", "pipeline is already fitted")
	}
	for i := range p.Transforms {
		values, err := features.Column(p.Transforms[i].Column)
		if err != nil {
			return err
		}
		if err := p.Transforms[i].fit(values); err != nil {
			return err
		}
	}
	p.fitted = true
	return nil
}

// Apply transforms the feature table into a numeric matrix in the fixed
// output column order given by FeatureNames.
func (p *Pipeline) Apply(features *table.Table) ([][]float64, error) {
	if !p.fitted {
		return nil, core.NewSchemaError("", "pipeline has not been fitted")
	}

	// Resolve each transform's source column once
	indices := make([]int, len(p.Transforms))
	for i, t := range p.Transforms {
		idx := features.ColumnIndex(t.Column)
		if idx < 0 {
			return nil, core.NewSchemaError(t.Column, "column not found")
		}
		indices[i] = idx
	}

	width := 0
	for _, t := range p.Transforms {
		width += t.width()
	}

	out := make([][]float64, features.NumRows())
	for r, row := range features.Rows {
		vec := make([]float64, 0, width)
		for i, t := range p.Transforms {
			part, err := t.apply(row[indices[i]])
			if err != nil {
				return nil, err
			}
			vec = append(vec, part...)
		}
		out[r] = vec
	}
	return out, nil
}

// FeatureNames returns the output column names of the transformed matrix.
func (p *Pipeline) FeatureNames() []string {
	var names []string
	for _, t := range p.Transforms {
		names = append(names, t.featureNames()...)
	}
	return names
}

// Fingerprint hashes the pipeline's canonical serialized form. Identical
// learned parameters always produce identical fingerprints.
func (p *Pipeline) Fingerprint() (core.ArtifactFingerprint, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return core.NewArtifactFingerprint(data), nil
}
