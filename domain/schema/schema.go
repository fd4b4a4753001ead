package schema

import (
	"strconv"
	"strings"

	"churnprep/domain/core"
	"churnprep/domain/table"
)

// ColumnKind classifies a column's role in preprocessing.
type ColumnKind string

const (
	// KindIdentifier columns carry no signal and are dropped before encoding.
	KindIdentifier ColumnKind = "identifier"
	// KindCategorical columns are one-hot encoded.
	KindCategorical ColumnKind = "categorical"
	// KindNumerical columns are standardized.
	KindNumerical ColumnKind = "numerical"
	// KindLabel marks the prediction target.
	KindLabel ColumnKind = "label"
)

// Column binds a column name to its semantic kind.
type Column struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// Schema is the declared, ordered column contract for a dataset. Declaring
// the contract up front makes it checkable at load time instead of inferred
// from whatever happens to be in memory.
type Schema struct {
	Columns []Column `json:"columns"`
}

// Names returns the column names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Find returns the declared column with the given name.
func (s Schema) Find(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ByKind returns the names of all columns of the given kind, in order.
func (s Schema) ByKind(kind ColumnKind) []string {
	var names []string
	for _, c := range s.Columns {
		if c.Kind == kind {
			names = append(names, c.Name)
		}
	}
	return names
}

// LabelColumn returns the declared label column name.
func (s Schema) LabelColumn() (string, bool) {
	for _, c := range s.Columns {
		if c.Kind == KindLabel {
			return c.Name, true
		}
	}
	return "", false
}

// Validate checks that every declared column is present in the headers.
// The first missing column is reported by name.
func (s Schema) Validate(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	for _, c := range s.Columns {
		if !present[c.Name] {
			return core.NewSchemaError(c.Name, "expected column is absent")
		}
	}
	return nil
}

// CustomerSchema is the fixed contract for the synthetic customer dataset.
// The generator writes exactly these columns in this order and the
// preprocessor validates against them.
func CustomerSchema() Schema {
	return Schema{Columns: []Column{
		{Name: "customerID", Kind: KindIdentifier},
		{Name: "gender", Kind: KindCategorical},
		{Name: "SeniorCitizen", Kind: KindNumerical},
		{Name: "Partner", Kind: KindCategorical},
		{Name: "Dependents", Kind: KindCategorical},
		{Name: "tenure", Kind: KindNumerical},
		{Name: "PhoneService", Kind: KindCategorical},
		{Name: "MultipleLines", Kind: KindCategorical},
		{Name: "InternetService", Kind: KindCategorical},
		{Name: "OnlineSecurity", Kind: KindCategorical},
		{Name: "OnlineBackup", Kind: KindCategorical},
		{Name: "DeviceProtection", Kind: KindCategorical},
		{Name: "TechSupport", Kind: KindCategorical},
		{Name: "StreamingTV", Kind: KindCategorical},
		{Name: "StreamingMovies", Kind: KindCategorical},
		{Name: "Contract", Kind: KindCategorical},
		{Name: "PaperlessBilling", Kind: KindCategorical},
		{Name: "PaymentMethod", Kind: KindCategorical},
		{Name: "MonthlyCharges", Kind: KindNumerical},
		{Name: "TotalCharges", Kind: KindNumerical},
		{Name: "Churn", Kind: KindLabel},
	}}
}

// Infer derives a schema from a table by value inspection: a column where
// every non-blank value parses as a number is numerical, everything else is
// categorical. The named identifier and label columns keep their declared
// kinds. Used as a drift check against the declared contract, not as the
// primary classification.
func Infer(t *table.Table, identifierColumn, labelColumn string) Schema {
	var cols []Column
	for _, name := range t.Headers {
		switch name {
		case identifierColumn:
			cols = append(cols, Column{Name: name, Kind: KindIdentifier})
			continue
		case labelColumn:
			cols = append(cols, Column{Name: name, Kind: KindLabel})
			continue
		}

		values, err := t.Column(name)
		if err != nil {
			continue
		}
		kind := KindNumerical
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				kind = KindCategorical
				break
			}
		}
		cols = append(cols, Column{Name: name, Kind: kind})
	}
	return Schema{Columns: cols}
}
