package cleaning

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"churnprep/domain/core"
	"churnprep/domain/table"
)

// NumericCoercer applies the fixed dirty-column rule: blank or
// whitespace-only values become the missing marker, missing values are
// filled with the configured constant, and every remaining value must parse
// as a finite number. This is deliberately column-scoped, not a generic
// missing-value strategy.
type NumericCoercer struct {
	FillValue float64
}

// NewNumericCoercer creates a coercer that fills missing values with zero.
func NewNumericCoercer() *NumericCoercer {
	return &NumericCoercer{FillValue: 0}
}

// CoerceColumn rewrites the named column in place so that every value is a
// canonical numeric string. A non-blank value that does not parse is a
// schema violation, not something to silently impute.
func (c *NumericCoercer) CoerceColumn(t *table.Table, column string) error {
	values, err := t.Column(column)
	if err != nil {
		return err
	}

	for i, v := range values {
		parsed, ok, err := c.coerce(v)
		if err != nil {
			return core.NewSchemaError(column, fmt.Sprintf("row %d: %v", i, err))
		}
		if !ok {
			parsed = c.FillValue
		}
		values[i] = strconv.FormatFloat(parsed, 'f', -1, 64)
	}

	return t.SetColumn(column, values)
}

// coerce parses a single raw value. The second return is false when the
// value is missing (blank or whitespace-only).
func (c *NumericCoercer) coerce(raw string) (float64, bool, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, false, nil
	}

	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false, fmt.Errorf("value %q is not numeric", raw)
	}
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false, fmt.Errorf("value %q is not a finite number", raw)
	}
	return val, true, nil
}

// ParseNumericColumn converts an already-coerced column into floats.
func ParseNumericColumn(t *table.Table, column string) ([]float64, error) {
	values, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, core.NewSchemaError(column, fmt.Sprintf("row %d: value %q is not numeric", i, v))
		}
		out[i] = parsed
	}
	return out, nil
}
