package components

// CreatureView is one creature's state within a world snapshot.
type CreatureView struct {
	ID            uint32
	X, Y          float32
	Gender        Gender
	Energy        float32
	Age           int32
	ReproCooldown int32
	Generation    uint32
	Heading       float32
	Genome        Genome
}

// FoodView is one food item's state within a world snapshot.
type FoodView struct {
	ID     uint32
	X, Y   float32
	Energy float32
}

// WorldView is an immutable snapshot of world state taken at the start of a
// tick. The decision phase and the renderer both consume it; neither may
// mutate simulation state through it. Creatures and food are sorted by
// ascending id.
type WorldView struct {
	Tick          int64
	Width, Height float32
	Creatures     []CreatureView
	Food          []FoodView
}

// CreatureByID returns the index of the creature with the given id, or -1.
// Relies on Creatures being sorted by ascending id.
func (v *WorldView) CreatureByID(id uint32) int {
	lo, hi := 0, len(v.Creatures)
	for lo < hi {
		mid := (lo + hi) / 2
		if v.Creatures[mid].ID < id {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(v.Creatures) && v.Creatures[lo].ID == id {
		return lo
	}
	return -1
}
