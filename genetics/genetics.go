// Package genetics implements trait inheritance with bounded random mutation.
package genetics

import (
	"math/rand"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
)

// TraitSpec defines the valid numeric domain of one heritable trait.
type TraitSpec struct {
	Min, Max float32
}

// Range returns the width of the valid domain.
func (s TraitSpec) Range() float32 {
	return s.Max - s.Min
}

// Clamp restricts v to the valid domain.
func (s TraitSpec) Clamp(v float32) float32 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// Specs holds the trait specs for a full genome.
type Specs struct {
	Speed       TraitSpec
	SenseRadius TraitSpec
	Metabolism  TraitSpec
	Fertility   TraitSpec
}

// SpecsFromConfig builds trait specs from the configured ranges.
func SpecsFromConfig(cfg *config.Config) Specs {
	return Specs{
		Speed:       TraitSpec{float32(cfg.Traits.Speed.Min), float32(cfg.Traits.Speed.Max)},
		SenseRadius: TraitSpec{float32(cfg.Traits.SenseRadius.Min), float32(cfg.Traits.SenseRadius.Max)},
		Metabolism:  TraitSpec{float32(cfg.Traits.Metabolism.Min), float32(cfg.Traits.Metabolism.Max)},
		Fertility:   TraitSpec{float32(cfg.Traits.Fertility.Min), float32(cfg.Traits.Fertility.Max)},
	}
}

// Random draws a founder trait value uniformly from the valid domain.
func Random(s TraitSpec, rng *rand.Rand) float32 {
	return s.Min + rng.Float32()*s.Range()
}

// RandomGenome draws a full founder genome.
func RandomGenome(sp Specs, rng *rand.Rand) components.Genome {
	return components.Genome{
		Speed:       Random(sp.Speed, rng),
		SenseRadius: Random(sp.SenseRadius, rng),
		Metabolism:  Random(sp.Metabolism, rng),
		Fertility:   Random(sp.Fertility, rng),
	}
}

// Inherit produces an offspring trait from two parent values: a
// randomly-weighted blend of the parents, perturbed by Gaussian noise
// clipped to ±rate*range, clamped to the valid domain. Given the same RNG
// stream state the result is reproducible.
func Inherit(a, b float32, s TraitSpec, rate float32, rng *rand.Rand) float32 {
	w := rng.Float32()
	base := a + (b-a)*w

	bound := rate * s.Range()
	// Sigma at half the bound keeps most draws inside without degenerating
	// into a uniform clip.
	noise := float32(rng.NormFloat64()) * bound * 0.5
	if noise > bound {
		noise = bound
	} else if noise < -bound {
		noise = -bound
	}

	return s.Clamp(base + noise)
}

// InheritGenome applies Inherit trait by trait. Trait order is fixed so the
// RNG stream is consumed identically across runs.
func InheritGenome(a, b components.Genome, sp Specs, rate float32, rng *rand.Rand) components.Genome {
	return components.Genome{
		Speed:       Inherit(a.Speed, b.Speed, sp.Speed, rate, rng),
		SenseRadius: Inherit(a.SenseRadius, b.SenseRadius, sp.SenseRadius, rate, rng),
		Metabolism:  Inherit(a.Metabolism, b.Metabolism, sp.Metabolism, rate, rng),
		Fertility:   Inherit(a.Fertility, b.Fertility, sp.Fertility, rate, rng),
	}
}
