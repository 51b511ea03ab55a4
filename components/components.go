// Package components defines ECS components for the simulation.
package components

// Gender of a creature, fixed at creation.
type Gender uint8

const (
	Male Gender = iota
	Female
)

// String returns a human-readable gender name.
func (g Gender) String() string {
	if g == Male {
		return "male"
	}
	return "female"
}

// Opposite returns the other gender.
func (g Gender) Opposite() Gender {
	if g == Male {
		return Female
	}
	return Male
}

// Position represents a creature's world position, clamped to world bounds.
type Position struct {
	X, Y float32
}

// Energy holds a creature's energy budget and age.
type Energy struct {
	Value float32
	Max   float32
	Age   int32 // ticks survived
	Alive bool
}

// Genome holds the heritable numeric traits of a creature.
// Values are fixed at creation; variation enters only through inheritance.
type Genome struct {
	Speed       float32 // distance moved per tick
	SenseRadius float32 // perception distance for food and partners
	Metabolism  float32 // scales all energy costs
	Fertility   float32 // minimum energy for reproduction eligibility
}

// Creature holds identity and reproduction state.
type Creature struct {
	ID            uint32
	Gender        Gender
	Generation    uint32
	ReproCooldown int32   // ticks until eligible to reproduce again
	Heading       float32 // persisted wander direction in radians
}
