package telemetry

import (
	"github.com/pthm-cable/terrarium/components"
)

// Collector accumulates events within tick windows and produces
// WindowStats. All methods are safe on a nil receiver, so callers can run
// with telemetry disabled without guarding each call.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	// Event counters for current window
	births        int
	deathsStarved int
	deathsOldAge  int
	foodEaten     int
	energyEaten   float64
}

// NewCollector creates a collector with the given window length in ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int64(windowTicks)}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth() {
	if c == nil {
		return
	}
	c.births++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(cause DeathCause) {
	if c == nil {
		return
	}
	if cause == DeathOldAge {
		c.deathsOldAge++
	} else {
		c.deathsStarved++
	}
}

// RecordFoodEaten records one consumed food item and its energy value.
func (c *Collector) RecordFoodEaten(energy float32) {
	if c == nil {
		return
	}
	c.foodEaten++
	c.energyEaten += float64(energy)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	if c == nil {
		return false
	}
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats from the accumulated events and the given
// end-of-window snapshot, then resets counters for the next window.
func (c *Collector) Flush(currentTick int64, view *components.WorldView) WindowStats {
	if c == nil {
		return WindowStats{}
	}

	n := len(view.Creatures)
	energies := make([]float64, 0, n)
	speeds := make([]float64, 0, n)
	senses := make([]float64, 0, n)
	metabolisms := make([]float64, 0, n)
	fertilities := make([]float64, 0, n)
	maxGen := 0
	males := 0
	for i := range view.Creatures {
		cv := &view.Creatures[i]
		if cv.Gender == components.Male {
			males++
		}
		energies = append(energies, float64(cv.Energy))
		speeds = append(speeds, float64(cv.Genome.Speed))
		senses = append(senses, float64(cv.Genome.SenseRadius))
		metabolisms = append(metabolisms, float64(cv.Genome.Metabolism))
		fertilities = append(fertilities, float64(cv.Genome.Fertility))
		if g := int(cv.Generation); g > maxGen {
			maxGen = g
		}
	}

	energy := ComputeDistribution(energies)
	speed := ComputeDistribution(speeds)
	sense := ComputeDistribution(senses)
	metabolism := ComputeDistribution(metabolisms)
	fertility := ComputeDistribution(fertilities)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Population:    n,
		Males:         males,
		Females:       n - males,
		FoodCount:     len(view.Food),
		MaxGeneration: maxGen,

		Births:        c.births,
		DeathsStarved: c.deathsStarved,
		DeathsOldAge:  c.deathsOldAge,
		FoodEaten:     c.foodEaten,
		EnergyEaten:   c.energyEaten,

		EnergyMean: energy.Mean,
		EnergyP10:  energy.P10,
		EnergyP50:  energy.P50,
		EnergyP90:  energy.P90,

		SpeedMean:      speed.Mean,
		SpeedStd:       speed.Std,
		SenseMean:      sense.Mean,
		SenseStd:       sense.Std,
		MetabolismMean: metabolism.Mean,
		MetabolismStd:  metabolism.Std,
		FertilityMean:  fertility.Mean,
		FertilityStd:   fertility.Std,
	}

	c.windowStartTick = currentTick
	c.births = 0
	c.deathsStarved = 0
	c.deathsOldAge = 0
	c.foodEaten = 0
	c.energyEaten = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	if c == nil {
		return 0
	}
	return c.windowTicks
}
