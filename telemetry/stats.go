// Package telemetry aggregates simulation events into windowed statistics
// and writes them to structured output files.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DeathCause distinguishes why a creature was removed.
type DeathCause uint8

const (
	DeathStarved DeathCause = iota
	DeathOldAge
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// State at window end
	Population    int `csv:"population"`
	Males         int `csv:"males"`
	Females       int `csv:"females"`
	FoodCount     int `csv:"food_count"`
	MaxGeneration int `csv:"max_generation"`

	// Events during window
	Births        int     `csv:"births"`
	DeathsStarved int     `csv:"deaths_starved"`
	DeathsOldAge  int     `csv:"deaths_old_age"`
	FoodEaten     int     `csv:"food_eaten"`
	EnergyEaten   float64 `csv:"energy_eaten"`

	// Energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Trait distributions (sampled at window end)
	SpeedMean      float64 `csv:"speed_mean"`
	SpeedStd       float64 `csv:"speed_std"`
	SenseMean      float64 `csv:"sense_mean"`
	SenseStd       float64 `csv:"sense_std"`
	MetabolismMean float64 `csv:"metabolism_mean"`
	MetabolismStd  float64 `csv:"metabolism_std"`
	FertilityMean  float64 `csv:"fertility_mean"`
	FertilityStd   float64 `csv:"fertility_std"`
}

// Distribution summarizes a sample: mean, standard deviation, and the
// 10th, 50th, and 90th percentiles. Zero-valued for an empty sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution calculates summary statistics for a sample.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}
