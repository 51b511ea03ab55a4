package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/terrarium/components"
)

// ActionKind identifies what a creature decided to do this tick.
type ActionKind uint8

const (
	// ActionIdle does nothing.
	ActionIdle ActionKind = iota
	// ActionMove moves toward a target position at trait speed.
	ActionMove
	// ActionForage moves toward a food item and attempts to eat it.
	ActionForage
	// ActionReproduce stays near a chosen partner and attempts pairing.
	ActionReproduce
)

// Action is the outcome of one creature's decision phase. Decisions are
// made against the start-of-tick snapshot, so an action's target may no
// longer be valid when it executes; execution phases revalidate.
type Action struct {
	Kind             ActionKind
	TargetX, TargetY float32
	Heading          float32 // wander direction to persist, radians
	FoodID           uint32
	PartnerID        uint32
}

// Params holds the behavior thresholds shared by all creatures.
type Params struct {
	PairingRadius     float32
	EatRadius         float32
	MinAge            int32
	HeadingChangeProb float32
}

// Eligible reports whether a creature may reproduce this tick: old enough,
// off cooldown, and holding at least its fertility threshold in energy.
func Eligible(c *components.CreatureView, p Params) bool {
	return c.Age >= p.MinAge &&
		c.ReproCooldown <= 0 &&
		c.Energy >= c.Genome.Fertility
}

// Compatible reports whether two creatures can pair.
func Compatible(a, b *components.CreatureView) bool {
	return a.Gender != b.Gender
}

// Decide picks creature i's action for this tick, in priority order:
// reproduce with the nearest eligible partner in pairing range, forage the
// nearest sensed food, approach the nearest sensed partner, or wander.
// The RNG is consumed only on the wander path; callers iterate creatures
// in ascending-id order so the stream stays reproducible.
func Decide(i int, view *components.WorldView, grid *SpatialGrid, scratch []Neighbor, p Params, rng *rand.Rand) (Action, []Neighbor) {
	self := &view.Creatures[i]

	scratch = grid.QueryRadiusInto(scratch[:0], self.X, self.Y, self.Genome.SenseRadius, i, view.Creatures)

	// Nearest compatible eligible partner, split by pairing range. Ties on
	// distance resolve to the lower snapshot index; neighbors arrive in
	// ascending-index order.
	pairSq := p.PairingRadius * p.PairingRadius
	bestPairIdx, bestApproachIdx := -1, -1
	var bestPairSq, bestApproachSq float32
	if Eligible(self, p) {
		for k := range scratch {
			n := &scratch[k]
			other := &view.Creatures[n.Index]
			if !Compatible(self, other) || !Eligible(other, p) {
				continue
			}
			if n.DistSq <= pairSq {
				if bestPairIdx == -1 || n.DistSq < bestPairSq {
					bestPairIdx = n.Index
					bestPairSq = n.DistSq
				}
			} else {
				if bestApproachIdx == -1 || n.DistSq < bestApproachSq {
					bestApproachIdx = n.Index
					bestApproachSq = n.DistSq
				}
			}
		}
	}

	if bestPairIdx != -1 {
		partner := &view.Creatures[bestPairIdx]
		return Action{
			Kind:      ActionReproduce,
			TargetX:   partner.X,
			TargetY:   partner.Y,
			Heading:   self.Heading,
			PartnerID: partner.ID,
		}, scratch
	}

	if food, ok := nearestFoodView(view, self.X, self.Y, self.Genome.SenseRadius); ok {
		return Action{
			Kind:    ActionForage,
			TargetX: food.X,
			TargetY: food.Y,
			Heading: self.Heading,
			FoodID:  food.ID,
		}, scratch
	}

	if bestApproachIdx != -1 {
		partner := &view.Creatures[bestApproachIdx]
		return Action{
			Kind:      ActionMove,
			TargetX:   partner.X,
			TargetY:   partner.Y,
			Heading:   self.Heading,
			PartnerID: partner.ID,
		}, scratch
	}

	heading := self.Heading
	if rng.Float32() < p.HeadingChangeProb {
		heading = rng.Float32() * 2 * math.Pi
	}
	return Action{
		Kind:    ActionMove,
		TargetX: self.X + float32(math.Cos(float64(heading)))*self.Genome.Speed,
		TargetY: self.Y + float32(math.Sin(float64(heading)))*self.Genome.Speed,
		Heading: heading,
	}, scratch
}

// nearestFoodView scans the snapshot's food list for the closest item
// within radius. Food is in ascending-id order, so distance ties resolve
// to the lowest id.
func nearestFoodView(view *components.WorldView, x, y, radius float32) (components.FoodView, bool) {
	radiusSq := radius * radius
	bestIdx := -1
	var bestSq float32
	for i := range view.Food {
		dx := view.Food[i].X - x
		dy := view.Food[i].Y - y
		distSq := dx*dx + dy*dy
		if distSq > radiusSq {
			continue
		}
		if bestIdx == -1 || distSq < bestSq {
			bestIdx = i
			bestSq = distSq
		}
	}
	if bestIdx == -1 {
		return components.FoodView{}, false
	}
	return view.Food[bestIdx], true
}

// StepToward advances (x, y) toward a target by at most speed, returning
// the new position and the distance actually covered.
func StepToward(x, y, targetX, targetY, speed float32) (float32, float32, float32) {
	dx := targetX - x
	dy := targetY - y
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if dist <= speed || dist == 0 {
		return targetX, targetY, dist
	}
	scale := speed / dist
	return x + dx*scale, y + dy*scale, speed
}

// ClampToWorld restricts a position to [0, width] x [0, height].
func ClampToWorld(x, y, width, height float32) (float32, float32) {
	if x < 0 {
		x = 0
	} else if x > width {
		x = width
	}
	if y < 0 {
		y = 0
	} else if y > height {
		y = height
	}
	return x, y
}
