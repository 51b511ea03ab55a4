package systems

import (
	"github.com/pthm-cable/terrarium/components"
)

// ApplyMetabolism ages the creature one tick and charges its metabolic
// cost: metabolism * (baseCost + moveCost * distance). Energy clamps at
// zero; a creature reaching zero is marked dead.
func ApplyMetabolism(e *components.Energy, gen components.Genome, distance, baseCost, moveCost float32) {
	e.Age++
	cost := gen.Metabolism * (baseCost + moveCost*distance)
	e.Value -= cost
	if e.Value <= 0 {
		e.Value = 0
		e.Alive = false
	}
}

// Feed adds energy, capped at the creature's maximum.
func Feed(e *components.Energy, amount float32) {
	e.Value += amount
	if e.Value > e.Max {
		e.Value = e.Max
	}
}

// Spend deducts a fixed energy amount. Energy clamps at zero; a creature
// reaching zero is marked dead.
func Spend(e *components.Energy, amount float32) {
	e.Value -= amount
	if e.Value <= 0 {
		e.Value = 0
		e.Alive = false
	}
}
