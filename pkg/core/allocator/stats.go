package allocator

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LoadSummary describes how evenly shifts were spread across the roster
type LoadSummary struct {
	// Total is the number of nurse-shifts allocated
	Total int

	// Mean and StdDev are over every rostered nurse, including those with no shifts
	Mean   float64
	StdDev float64

	Min int
	Max int

	// Spread is Max - Min
	Spread int
}

// SummariseLoads computes load statistics over the given nurses
func SummariseLoads(nurses []string, loads LoadCounter) LoadSummary {
	if len(nurses) == 0 {
		return LoadSummary{}
	}

	values := make([]float64, len(nurses))
	for i, nurse := range nurses {
		values[i] = float64(loads.Get(nurse))
	}

	mean, stdDev := stat.PopMeanStdDev(values, nil)
	minLoad := int(floats.Min(values))
	maxLoad := int(floats.Max(values))

	return LoadSummary{
		Total:  int(floats.Sum(values)),
		Mean:   mean,
		StdDev: stdDev,
		Min:    minLoad,
		Max:    maxLoad,
		Spread: maxLoad - minLoad,
	}
}
