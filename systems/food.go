package systems

import (
	"errors"
	"math/rand"
)

// ErrFoodNotFound is returned by Consume when the item was already claimed
// or never existed.
var ErrFoodNotFound = errors.New("food item not found")

// FoodItem is one edible item in the world.
type FoodItem struct {
	ID     uint32
	X, Y   float32
	Energy float32
}

// FoodFieldConfig parameterizes a food field.
type FoodFieldConfig struct {
	Width, Height        float32
	Capacity             int
	SpawnProbability     float32
	EnergyMin, EnergyMax float32
}

// FoodField manages food items in a bounded world. Items are kept in
// ascending-id order so iteration and nearest-item tie-breaks are
// reproducible. Not safe for concurrent use.
type FoodField struct {
	cfg    FoodFieldConfig
	nextID uint32
	items  []FoodItem
}

// NewFoodField creates an empty food field.
func NewFoodField(cfg FoodFieldConfig) *FoodField {
	return &FoodField{
		cfg:    cfg,
		nextID: 1,
		items:  make([]FoodItem, 0, cfg.Capacity),
	}
}

// Seed places n initial items at uniform random positions, up to capacity.
func (f *FoodField) Seed(n int, rng *rand.Rand) {
	for i := 0; i < n && len(f.items) < f.cfg.Capacity; i++ {
		f.spawn(rng)
	}
}

// SpawnTick runs one tick of probabilistic respawn: at most one new item,
// only while below capacity.
func (f *FoodField) SpawnTick(rng *rand.Rand) {
	if len(f.items) >= f.cfg.Capacity {
		return
	}
	if rng.Float32() >= f.cfg.SpawnProbability {
		return
	}
	f.spawn(rng)
}

func (f *FoodField) spawn(rng *rand.Rand) {
	item := FoodItem{
		ID:     f.nextID,
		X:      rng.Float32() * f.cfg.Width,
		Y:      rng.Float32() * f.cfg.Height,
		Energy: f.cfg.EnergyMin + rng.Float32()*(f.cfg.EnergyMax-f.cfg.EnergyMin),
	}
	f.nextID++
	f.items = append(f.items, item)
}

// Place adds an item with an explicit position and energy value, up to
// capacity. Returns the assigned id, or 0 if the field is full.
func (f *FoodField) Place(x, y, energy float32) uint32 {
	if len(f.items) >= f.cfg.Capacity {
		return 0
	}
	id := f.nextID
	f.nextID++
	f.items = append(f.items, FoodItem{ID: id, X: x, Y: y, Energy: energy})
	return id
}

// Consume removes the item with the given id and returns its energy value.
// A second claim on the same id fails with ErrFoodNotFound.
func (f *FoodField) Consume(id uint32) (float32, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			energy := f.items[i].Energy
			f.items = append(f.items[:i], f.items[i+1:]...)
			return energy, nil
		}
	}
	return 0, ErrFoodNotFound
}

// NearestWithin returns the closest item to (x, y) within radius, and true
// if one exists. Distance ties resolve to the lowest id.
func (f *FoodField) NearestWithin(x, y, radius float32) (FoodItem, bool) {
	radiusSq := radius * radius
	bestSq := radiusSq
	bestIdx := -1
	for i := range f.items {
		dx := f.items[i].X - x
		dy := f.items[i].Y - y
		distSq := dx*dx + dy*dy
		if distSq > radiusSq {
			continue
		}
		// Strict < keeps the lowest-id item on equal distance; items are
		// in ascending-id order.
		if bestIdx == -1 || distSq < bestSq {
			bestSq = distSq
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return FoodItem{}, false
	}
	return f.items[bestIdx], true
}

// Items returns a copy of the current items in ascending-id order.
func (f *FoodField) Items() []FoodItem {
	out := make([]FoodItem, len(f.items))
	copy(out, f.items)
	return out
}

// Count returns the number of items currently in the field.
func (f *FoodField) Count() int {
	return len(f.items)
}
