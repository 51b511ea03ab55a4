package genetics

import (
	"math"
	"math/rand"
	"testing"
)

// ---------- TraitSpec ----------

func TestTraitSpec_Clamp(t *testing.T) {
	s := TraitSpec{Min: 1, Max: 5}
	if got := s.Clamp(0); got != 1 {
		t.Errorf("expected clamp to min, got %f", got)
	}
	if got := s.Clamp(7); got != 5 {
		t.Errorf("expected clamp to max, got %f", got)
	}
	if got := s.Clamp(3); got != 3 {
		t.Errorf("in-range value should pass through, got %f", got)
	}
}

func TestRandom_WithinDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := TraitSpec{Min: 0.5, Max: 5.0}

	for i := 0; i < 1000; i++ {
		v := Random(s, rng)
		if v < s.Min || v > s.Max {
			t.Fatalf("draw %d outside domain: %f", i, v)
		}
	}
}

// ---------- Inherit boundedness ----------

func TestInherit_WithinDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := TraitSpec{Min: 0, Max: 10}

	for i := 0; i < 5000; i++ {
		v := Inherit(1, 9, s, 0.3, rng)
		if v < s.Min || v > s.Max {
			t.Fatalf("offspring trait outside domain: %f", v)
		}
	}
}

func TestInherit_PerturbationBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := TraitSpec{Min: 0, Max: 10}
	rate := float32(0.1)
	bound := rate * s.Range()

	// With identical parents the blend is exactly the parent value, so any
	// deviation is pure mutation noise.
	parent := float32(5.0)
	for i := 0; i < 5000; i++ {
		v := Inherit(parent, parent, s, rate, rng)
		if d := float64(v - parent); math.Abs(d) > float64(bound)+1e-6 {
			t.Fatalf("perturbation %f exceeds bound %f", d, bound)
		}
	}
}

func TestInherit_ZeroRateBlendsParents(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := TraitSpec{Min: 0, Max: 10}

	a, b := float32(2.0), float32(8.0)
	for i := 0; i < 1000; i++ {
		v := Inherit(a, b, s, 0, rng)
		if v < a-1e-6 || v > b+1e-6 {
			t.Fatalf("zero-rate offspring %f outside parent interval [%f, %f]", v, a, b)
		}
	}
}

// ---------- Determinism ----------

func TestInherit_Deterministic(t *testing.T) {
	s := TraitSpec{Min: 0, Max: 10}

	r1 := rand.New(rand.NewSource(99))
	r2 := rand.New(rand.NewSource(99))

	for i := 0; i < 100; i++ {
		v1 := Inherit(2, 8, s, 0.2, r1)
		v2 := Inherit(2, 8, s, 0.2, r2)
		if v1 != v2 {
			t.Fatalf("draw %d diverged: %f vs %f", i, v1, v2)
		}
	}
}

func TestInheritGenome_Deterministic(t *testing.T) {
	sp := Specs{
		Speed:       TraitSpec{0.5, 5},
		SenseRadius: TraitSpec{40, 120},
		Metabolism:  TraitSpec{0.5, 1.5},
		Fertility:   TraitSpec{40, 80},
	}

	r1 := rand.New(rand.NewSource(3))
	r2 := rand.New(rand.NewSource(3))

	a := RandomGenome(sp, r1)
	b := RandomGenome(sp, r2)
	if a != b {
		t.Fatalf("founder genomes diverged: %+v vs %+v", a, b)
	}

	c1 := InheritGenome(a, b, sp, 0.1, r1)
	c2 := InheritGenome(a, b, sp, 0.1, r2)
	if c1 != c2 {
		t.Fatalf("offspring genomes diverged: %+v vs %+v", c1, c2)
	}
}

// ---------- Genome-level bounds ----------

func TestInheritGenome_AllTraitsWithinSpecs(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	sp := Specs{
		Speed:       TraitSpec{0.5, 5},
		SenseRadius: TraitSpec{40, 120},
		Metabolism:  TraitSpec{0.5, 1.5},
		Fertility:   TraitSpec{40, 80},
	}

	a := RandomGenome(sp, rng)
	b := RandomGenome(sp, rng)

	for i := 0; i < 1000; i++ {
		c := InheritGenome(a, b, sp, 0.5, rng)
		checks := []struct {
			name string
			v    float32
			s    TraitSpec
		}{
			{"speed", c.Speed, sp.Speed},
			{"sense_radius", c.SenseRadius, sp.SenseRadius},
			{"metabolism", c.Metabolism, sp.Metabolism},
			{"fertility", c.Fertility, sp.Fertility},
		}
		for _, ch := range checks {
			if ch.v < ch.s.Min || ch.v > ch.s.Max {
				t.Fatalf("%s outside domain: %f not in [%f, %f]", ch.name, ch.v, ch.s.Min, ch.s.Max)
			}
		}
	}
}
