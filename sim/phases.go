package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/genetics"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
)

// Advance runs one simulation tick. Phase order is fixed: food respawn,
// decisions over the start-of-tick snapshot, movement and metabolism,
// foraging, reproduction, death sweep, then the tick counter increments.
// Each phase processes creatures in ascending-id order.
func (e *Ecosystem) Advance() {
	e.food.SpawnTick(e.rng)

	e.decidePhase()
	e.movementPhase()
	e.foragingPhase()
	e.reproductionPhase()
	e.deathPhase()

	e.tick++
}

// decidePhase snapshots the world and picks every creature's action
// against that frozen state, so no creature sees another's same-tick
// movement.
func (e *Ecosystem) decidePhase() {
	e.refreshView()
	e.grid.Rebuild(&e.view)

	e.actions = e.actions[:0]
	for i := range e.view.Creatures {
		var action systems.Action
		action, e.neighbors = systems.Decide(i, &e.view, e.grid, e.neighbors, e.prm, e.rng)
		e.actions = append(e.actions, action)
	}
}

// movementPhase executes each action's movement step, persists wander
// headings, ticks down reproduction cooldowns, and charges metabolism.
func (e *Ecosystem) movementPhase() {
	width := float32(e.cfg.World.Width)
	height := float32(e.cfg.World.Height)
	baseCost := float32(e.cfg.Energy.BaseCost)
	moveCost := float32(e.cfg.Energy.MoveCost)

	for i := range e.actions {
		entity := e.entities[i]
		pos := e.posMap.Get(entity)
		en := e.energyMap.Get(entity)
		creat := e.creatMap.Get(entity)
		genome := e.genomeMap.Get(entity)

		if creat.ReproCooldown > 0 {
			creat.ReproCooldown--
		}
		creat.Heading = e.actions[i].Heading

		var distance float32
		if e.actions[i].Kind != systems.ActionIdle {
			pos.X, pos.Y, distance = systems.StepToward(
				pos.X, pos.Y,
				e.actions[i].TargetX, e.actions[i].TargetY,
				genome.Speed,
			)
			pos.X, pos.Y = systems.ClampToWorld(pos.X, pos.Y, width, height)
		}

		systems.ApplyMetabolism(en, *genome, distance, baseCost, moveCost)
	}
}

// foragingPhase resolves eat attempts. Food is single-claim: the first
// consumer in id order wins, later claims on the same item fail and the
// creatures go hungry this tick.
func (e *Ecosystem) foragingPhase() {
	eatRadius := float32(e.cfg.Behavior.EatRadius)
	eatRadiusSq := eatRadius * eatRadius

	for i := range e.actions {
		if e.actions[i].Kind != systems.ActionForage {
			continue
		}
		entity := e.entities[i]
		en := e.energyMap.Get(entity)
		if !en.Alive {
			continue
		}

		pos := e.posMap.Get(entity)
		dx := e.actions[i].TargetX - pos.X
		dy := e.actions[i].TargetY - pos.Y
		if dx*dx+dy*dy > eatRadiusSq {
			continue
		}

		energy, err := e.food.Consume(e.actions[i].FoodID)
		if err != nil {
			continue // already claimed this tick
		}
		systems.Feed(en, energy)
		e.collector.RecordFoodEaten(energy)
	}
}

// reproductionPhase forms mutual pairs and spawns offspring. A pair forms
// only when both creatures chose each other this tick; each creature pairs
// at most once. Births are collected first and spawned after the scan.
func (e *Ecosystem) reproductionPhase() {
	cost := float32(e.cfg.Reproduction.EnergyCost)
	cooldown := int32(e.cfg.Reproduction.Cooldown)
	offspringEnergy := float32(e.cfg.Reproduction.OffspringEnergy)
	rate := float32(e.cfg.Mutation.Rate)

	type birth struct {
		x, y       float32
		gender     components.Gender
		genome     components.Genome
		generation uint32
	}
	var births []birth
	paired := make([]bool, len(e.actions))

	for i := range e.actions {
		if paired[i] || e.actions[i].Kind != systems.ActionReproduce {
			continue
		}
		j := e.view.CreatureByID(e.actions[i].PartnerID)
		// Pairs with j < i were already handled on j's turn.
		if j <= i || paired[j] {
			continue
		}
		if e.actions[j].Kind != systems.ActionReproduce ||
			e.actions[j].PartnerID != e.view.Creatures[i].ID {
			continue
		}

		enA := e.energyMap.Get(e.entities[i])
		enB := e.energyMap.Get(e.entities[j])
		if !enA.Alive || !enB.Alive || enA.Value < cost || enB.Value < cost {
			continue
		}

		creatA := e.creatMap.Get(e.entities[i])
		creatB := e.creatMap.Get(e.entities[j])
		posA := e.posMap.Get(e.entities[i])
		posB := e.posMap.Get(e.entities[j])
		genA := e.genomeMap.Get(e.entities[i])
		genB := e.genomeMap.Get(e.entities[j])

		childGenome := genetics.InheritGenome(*genA, *genB, e.specs, rate, e.rng)
		childGender := components.Male
		if e.rng.Intn(2) == 1 {
			childGender = components.Female
		}

		gen := creatA.Generation
		if creatB.Generation > gen {
			gen = creatB.Generation
		}
		births = append(births, birth{
			x:          (posA.X + posB.X) / 2,
			y:          (posA.Y + posB.Y) / 2,
			gender:     childGender,
			genome:     childGenome,
			generation: gen + 1,
		})

		systems.Spend(enA, cost)
		systems.Spend(enB, cost)
		creatA.ReproCooldown = cooldown
		creatB.ReproCooldown = cooldown
		paired[i] = true
		paired[j] = true
	}

	for _, b := range births {
		if e.spawn(b.x, b.y, b.gender, b.genome, offspringEnergy, b.generation) == 0 {
			break // population cap reached
		}
		e.collector.RecordBirth()
	}
}

// deathPhase removes creatures that starved this tick or exceeded the
// configured maximum age. Removal happens after the scan completes.
func (e *Ecosystem) deathPhase() {
	maxAge := int32(e.cfg.Creature.MaxAge)

	type deadInfo struct {
		entity ecs.Entity
		cause  telemetry.DeathCause
	}
	var toRemove []deadInfo

	query := e.creatureFilter.Query()
	for query.Next() {
		_, en, _, _ := query.Get()
		switch {
		case !en.Alive:
			toRemove = append(toRemove, deadInfo{query.Entity(), telemetry.DeathStarved})
		case maxAge > 0 && en.Age > maxAge:
			toRemove = append(toRemove, deadInfo{query.Entity(), telemetry.DeathOldAge})
		}
	}

	for _, dead := range toRemove {
		e.collector.RecordDeath(dead.cause)
		e.creatureMapper.Remove(dead.entity)
		e.population--
	}
}
