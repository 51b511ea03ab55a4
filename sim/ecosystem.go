// Package sim implements the tick-based ecosystem engine: a bounded 2D
// world of creatures that forage, reproduce, and die, advanced one tick at
// a time under a single seeded RNG stream.
package sim

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/genetics"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
)

// Ecosystem holds the complete simulation state. All randomness flows
// through one seeded RNG, and every phase processes creatures in
// ascending-id order, so two ecosystems built with the same config and
// seed stay bit-identical tick for tick. Not safe for concurrent use.
type Ecosystem struct {
	cfg *config.Config
	rng *rand.Rand

	world *ecs.World

	creatureMapper *ecs.Map4[
		components.Position,
		components.Energy,
		components.Creature,
		components.Genome,
	]
	creatureFilter *ecs.Filter4[
		components.Position,
		components.Energy,
		components.Creature,
		components.Genome,
	]
	posMap    *ecs.Map1[components.Position]
	energyMap *ecs.Map1[components.Energy]
	creatMap  *ecs.Map1[components.Creature]
	genomeMap *ecs.Map1[components.Genome]

	food  *systems.FoodField
	grid  *systems.SpatialGrid
	specs genetics.Specs
	prm   systems.Params

	tick       int64
	nextID     uint32
	population int

	collector *telemetry.Collector

	// Per-tick scratch, rebuilt each Advance.
	view      components.WorldView
	entities  []ecs.Entity
	actions   []systems.Action
	neighbors []systems.Neighbor
}

// New builds an ecosystem from a validated config and a seed, spawning the
// initial population and food.
func New(cfg *config.Config, seed int64) (*Ecosystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("building ecosystem: %w", err)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))

	e := &Ecosystem{
		cfg:   cfg,
		rng:   rng,
		world: world,
		creatureMapper: ecs.NewMap4[
			components.Position,
			components.Energy,
			components.Creature,
			components.Genome,
		](world),
		creatureFilter: ecs.NewFilter4[
			components.Position,
			components.Energy,
			components.Creature,
			components.Genome,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		energyMap: ecs.NewMap1[components.Energy](world),
		creatMap:  ecs.NewMap1[components.Creature](world),
		genomeMap: ecs.NewMap1[components.Genome](world),
		food: systems.NewFoodField(systems.FoodFieldConfig{
			Width:            float32(cfg.World.Width),
			Height:           float32(cfg.World.Height),
			Capacity:         cfg.Food.Capacity,
			SpawnProbability: float32(cfg.Food.SpawnProbability),
			EnergyMin:        float32(cfg.Food.EnergyMin),
			EnergyMax:        float32(cfg.Food.EnergyMax),
		}),
		grid: systems.NewSpatialGrid(
			float32(cfg.World.Width),
			float32(cfg.World.Height),
			float32(cfg.Physics.GridCellSize),
		),
		specs: genetics.SpecsFromConfig(cfg),
		prm: systems.Params{
			PairingRadius:     float32(cfg.Reproduction.PairingRadius),
			EatRadius:         float32(cfg.Behavior.EatRadius),
			MinAge:            int32(cfg.Reproduction.MinAge),
			HeadingChangeProb: float32(cfg.Behavior.HeadingChangeProb),
		},
		nextID: 1,
	}

	e.seedPopulation()
	e.food.Seed(cfg.Food.InitialCount, e.rng)

	return e, nil
}

// seedPopulation spawns the founder creatures with uniform random
// positions, genders, and genomes.
func (e *Ecosystem) seedPopulation() {
	for i := 0; i < e.cfg.Population.Initial; i++ {
		x := e.rng.Float32() * float32(e.cfg.World.Width)
		y := e.rng.Float32() * float32(e.cfg.World.Height)
		gender := components.Male
		if e.rng.Intn(2) == 1 {
			gender = components.Female
		}
		genome := genetics.RandomGenome(e.specs, e.rng)
		e.SpawnCreature(x, y, gender, genome, float32(e.cfg.Creature.InitialEnergy))
	}
}

// SpawnCreature adds a generation-zero creature with explicit state and
// returns its id. Drivers use it to reseed a world after extinction or to
// construct exact scenarios. Returns 0 when the population cap is reached.
func (e *Ecosystem) SpawnCreature(x, y float32, gender components.Gender, genome components.Genome, energy float32) uint32 {
	return e.spawn(x, y, gender, genome, energy, 0)
}

func (e *Ecosystem) spawn(x, y float32, gender components.Gender, genome components.Genome, energy float32, generation uint32) uint32 {
	if e.cfg.Population.Max > 0 && e.population >= e.cfg.Population.Max {
		return 0
	}

	x, y = systems.ClampToWorld(x, y, float32(e.cfg.World.Width), float32(e.cfg.World.Height))
	id := e.nextID
	e.nextID++

	pos := components.Position{X: x, Y: y}
	en := components.Energy{
		Value: energy,
		Max:   float32(e.cfg.Creature.MaxEnergy),
		Alive: true,
	}
	creat := components.Creature{
		ID:         id,
		Gender:     gender,
		Generation: generation,
	}
	e.creatureMapper.NewEntity(&pos, &en, &creat, &genome)
	e.population++
	return id
}

// PlaceFood adds a food item at an explicit position and returns its id,
// or 0 if the field is at capacity.
func (e *Ecosystem) PlaceFood(x, y, energy float32) uint32 {
	return e.food.Place(x, y, energy)
}

// AttachCollector routes per-tick event counts into a telemetry collector.
func (e *Ecosystem) AttachCollector(c *telemetry.Collector) {
	e.collector = c
}

// Tick returns the number of completed ticks.
func (e *Ecosystem) Tick() int64 {
	return e.tick
}

// Population returns the number of live creatures.
func (e *Ecosystem) Population() int {
	return e.population
}

// FoodCount returns the number of food items in the world.
func (e *Ecosystem) FoodCount() int {
	return e.food.Count()
}

// IsEmpty reports extinction. An empty world stays empty: reproduction is
// the only source of new creatures during Advance.
func (e *Ecosystem) IsEmpty() bool {
	return e.population == 0
}

// refreshView rebuilds the internal snapshot and the parallel entity
// slice, both sorted by ascending creature id.
func (e *Ecosystem) refreshView() {
	e.view.Tick = e.tick
	e.view.Width = float32(e.cfg.World.Width)
	e.view.Height = float32(e.cfg.World.Height)
	e.view.Creatures = e.view.Creatures[:0]
	e.entities = e.entities[:0]

	query := e.creatureFilter.Query()
	for query.Next() {
		pos, en, creat, genome := query.Get()
		e.view.Creatures = append(e.view.Creatures, components.CreatureView{
			ID:            creat.ID,
			X:             pos.X,
			Y:             pos.Y,
			Gender:        creat.Gender,
			Energy:        en.Value,
			Age:           en.Age,
			ReproCooldown: creat.ReproCooldown,
			Generation:    creat.Generation,
			Heading:       creat.Heading,
			Genome:        *genome,
		})
		e.entities = append(e.entities, query.Entity())
	}

	order := make([]int, len(e.view.Creatures))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return e.view.Creatures[order[a]].ID < e.view.Creatures[order[b]].ID
	})
	creatures := make([]components.CreatureView, len(order))
	entities := make([]ecs.Entity, len(order))
	for i, idx := range order {
		creatures[i] = e.view.Creatures[idx]
		entities[i] = e.entities[idx]
	}
	e.view.Creatures = creatures
	e.entities = entities

	items := e.food.Items()
	e.view.Food = e.view.Food[:0]
	for _, item := range items {
		e.view.Food = append(e.view.Food, components.FoodView{
			ID: item.ID, X: item.X, Y: item.Y, Energy: item.Energy,
		})
	}
}

// Snapshot returns a copy of the current world state for renderers and
// analysis. The copy is detached: later ticks do not mutate it.
func (e *Ecosystem) Snapshot() *components.WorldView {
	e.refreshView()
	out := &components.WorldView{
		Tick:      e.view.Tick,
		Width:     e.view.Width,
		Height:    e.view.Height,
		Creatures: make([]components.CreatureView, len(e.view.Creatures)),
		Food:      make([]components.FoodView, len(e.view.Food)),
	}
	copy(out.Creatures, e.view.Creatures)
	copy(out.Food, e.view.Food)
	return out
}
