package analysis

import (
	"github.com/montanaflynn/stats"
)

// ColumnProfile holds summary statistics for a numeric column
type ColumnProfile struct {
	Name   string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// ProfileNumeric computes summary statistics for one numeric column.
// Logged before fitting so a run leaves a record of what the scaler saw.
func ProfileNumeric(name string, data []float64) ColumnProfile {
	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)

	return ColumnProfile{
		Name:   name,
		Count:  len(data),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
	}
}
