package sim

import (
	"math"
	"testing"

	"github.com/pthm-cable/terrarium/components"
)

// Starvation: a sealed world with no food and heavy metabolic costs must
// go extinct, and extinction is terminal.
func TestAdvance_StarvationExtinction(t *testing.T) {
	cfg := baseConfig(t)
	cfg.World.Width = 100
	cfg.World.Height = 100
	cfg.Population.Initial = 10
	cfg.Food.InitialCount = 0
	cfg.Food.SpawnProbability = 0
	cfg.Energy.BaseCost = 2.5
	cfg.Traits.Metabolism.Min = 1.0
	cfg.Traits.Metabolism.Max = 1.0

	e, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 50; i++ {
		e.Advance()
	}
	if !e.IsEmpty() {
		t.Fatalf("expected extinction within 50 ticks, %d creatures remain", e.Population())
	}

	for i := 0; i < 20; i++ {
		e.Advance()
	}
	if !e.IsEmpty() {
		t.Fatal("an empty world must stay empty")
	}
	if e.Tick() != 70 {
		t.Errorf("tick = %d, want 70", e.Tick())
	}
}

// Two adjacent, eligible, opposite-gender creatures must pair on the first
// tick and produce exactly one offspring at their midpoint.
func TestAdvance_ReproductionPair(t *testing.T) {
	cfg := emptyConfig(t)
	cfg.Reproduction.MinAge = 0

	e, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	genome := components.Genome{Speed: 2, SenseRadius: 60, Metabolism: 1, Fertility: 50}
	male := e.SpawnCreature(50, 50, components.Male, genome, 100)
	female := e.SpawnCreature(51, 50, components.Female, genome, 100)

	e.Advance()

	if e.Population() != 3 {
		t.Fatalf("population = %d, want 3 after pairing", e.Population())
	}

	view := e.Snapshot()
	var child *components.CreatureView
	for i := range view.Creatures {
		c := &view.Creatures[i]
		switch c.ID {
		case male, female:
			if c.ReproCooldown != int32(cfg.Reproduction.Cooldown) {
				t.Errorf("parent %d cooldown = %d, want %d",
					c.ID, c.ReproCooldown, cfg.Reproduction.Cooldown)
			}
			// Paid the pairing cost on top of one tick of metabolism.
			if c.Energy >= 100-float32(cfg.Reproduction.EnergyCost) {
				t.Errorf("parent %d energy = %f, cost not charged", c.ID, c.Energy)
			}
		default:
			child = c
		}
	}
	if child == nil {
		t.Fatal("offspring missing from snapshot")
	}

	if child.Generation != 1 {
		t.Errorf("offspring generation = %d, want 1", child.Generation)
	}
	if child.Energy != float32(cfg.Reproduction.OffspringEnergy) {
		t.Errorf("offspring energy = %f, want %g", child.Energy, cfg.Reproduction.OffspringEnergy)
	}
	if child.Age != 0 {
		t.Errorf("offspring age = %d, want 0", child.Age)
	}
	// Parents swap positions while closing in, so the midpoint is fixed.
	if math.Abs(float64(child.X-50.5)) > 1e-3 || math.Abs(float64(child.Y-50)) > 1e-3 {
		t.Errorf("offspring at (%f, %f), want midpoint (50.5, 50)", child.X, child.Y)
	}
}

// After pairing, the cooldown blocks another offspring on the next tick.
func TestAdvance_CooldownBlocksRepairing(t *testing.T) {
	cfg := emptyConfig(t)
	cfg.Reproduction.MinAge = 0

	e, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	genome := components.Genome{Speed: 2, SenseRadius: 60, Metabolism: 1, Fertility: 50}
	e.SpawnCreature(50, 50, components.Male, genome, 100)
	e.SpawnCreature(51, 50, components.Female, genome, 100)

	e.Advance()
	if e.Population() != 3 {
		t.Fatalf("population = %d, want 3", e.Population())
	}

	for i := 0; i < 10; i++ {
		e.Advance()
	}
	if e.Population() != 3 {
		t.Fatalf("population = %d after cooldown ticks, want still 3", e.Population())
	}
}

// One-sided choices never pair: reproduction requires both creatures to
// have chosen each other in the same tick.
func TestAdvance_NoPairingWithIneligiblePartner(t *testing.T) {
	cfg := emptyConfig(t)
	cfg.Reproduction.MinAge = 0

	e, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	genome := components.Genome{Speed: 2, SenseRadius: 60, Metabolism: 1, Fertility: 50}
	e.SpawnCreature(50, 50, components.Male, genome, 100)
	// Below its fertility threshold: never eligible, never chooses back.
	e.SpawnCreature(51, 50, components.Female, genome, 40)

	e.Advance()
	if e.Population() != 2 {
		t.Fatalf("population = %d, want no offspring", e.Population())
	}
}

// A food item is single-claim: when two creatures reach it the same tick,
// only the lower id eats.
func TestAdvance_FoodSingleClaim(t *testing.T) {
	cfg := emptyConfig(t)

	e, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Low energy keeps both below the fertility threshold, so foraging is
	// their top priority. Same gender rules out pairing regardless.
	genome := components.Genome{Speed: 2, SenseRadius: 60, Metabolism: 1, Fertility: 50}
	first := e.SpawnCreature(48, 50, components.Male, genome, 40)
	second := e.SpawnCreature(52, 50, components.Male, genome, 40)
	e.PlaceFood(50, 50, 6)

	e.Advance()

	if e.FoodCount() != 0 {
		t.Fatal("food item should be consumed")
	}

	view := e.Snapshot()
	var firstEnergy, secondEnergy float32
	for _, c := range view.Creatures {
		switch c.ID {
		case first:
			firstEnergy = c.Energy
		case second:
			secondEnergy = c.Energy
		}
	}
	// Both paid identical movement costs; only the winner gained energy.
	if diff := firstEnergy - secondEnergy; math.Abs(float64(diff-6)) > 1e-3 {
		t.Errorf("energy difference = %f, want 6 (lower id claims the item)", diff)
	}
}

// Starved creatures vanish in the same tick their energy hits zero.
func TestAdvance_DeathSweepRemovesStarved(t *testing.T) {
	cfg := emptyConfig(t)
	cfg.Energy.BaseCost = 10

	e, err := New(cfg, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	genome := components.Genome{Speed: 2, SenseRadius: 60, Metabolism: 1, Fertility: 50}
	e.SpawnCreature(50, 50, components.Male, genome, 5)

	e.Advance()
	if e.Population() != 0 {
		t.Fatalf("population = %d, starved creature not removed", e.Population())
	}
}

// Old-age removal applies only when a maximum age is configured.
func TestAdvance_MaxAge(t *testing.T) {
	cfg := emptyConfig(t)
	cfg.Creature.MaxAge = 5
	cfg.Energy.BaseCost = 0
	cfg.Energy.MoveCost = 0

	e, err := New(cfg, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	genome := components.Genome{Speed: 2, SenseRadius: 60, Metabolism: 1, Fertility: 50}
	e.SpawnCreature(50, 50, components.Male, genome, 100)

	for i := 0; i < 5; i++ {
		e.Advance()
	}
	if e.Population() != 1 {
		t.Fatalf("creature died before exceeding max age at tick %d", e.Tick())
	}

	e.Advance()
	if e.Population() != 0 {
		t.Fatal("creature above max age not removed")
	}
}

// The population cap blocks births but never kills existing creatures.
func TestAdvance_PopulationCapBlocksBirths(t *testing.T) {
	cfg := emptyConfig(t)
	cfg.Reproduction.MinAge = 0
	cfg.Population.Max = 2

	e, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	genome := components.Genome{Speed: 2, SenseRadius: 60, Metabolism: 1, Fertility: 50}
	e.SpawnCreature(50, 50, components.Male, genome, 100)
	e.SpawnCreature(51, 50, components.Female, genome, 100)

	e.Advance()
	if e.Population() != 2 {
		t.Fatalf("population = %d, cap not enforced", e.Population())
	}
}
