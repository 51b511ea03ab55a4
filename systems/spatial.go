package systems

import (
	"github.com/pthm-cable/terrarium/components"
)

// MaxQueryResults caps neighbor query results to bound per-tick allocation.
const MaxQueryResults = 128

// Neighbor is one result of a spatial radius query. Index refers into the
// snapshot's creature slice the grid was built from.
type Neighbor struct {
	Index  int
	DX, DY float32
	DistSq float32
}

// SpatialGrid partitions bounded world space into uniform cells for
// neighbor queries over a snapshot. It stores snapshot indices, not
// entities, so it never outlives the view it was built from.
type SpatialGrid struct {
	cellSize      float32
	invCellSize   float32
	width, height float32
	cols, rows    int
	cells         [][]int
}

// NewSpatialGrid creates a grid covering a width x height world with the
// given cell size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	g := &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		width:       width,
		height:      height,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
	return g
}

// Clear empties all cells, retaining their backing arrays.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Rebuild clears the grid and inserts every creature in the view.
func (g *SpatialGrid) Rebuild(view *components.WorldView) {
	g.Clear()
	for i := range view.Creatures {
		g.Insert(i, view.Creatures[i].X, view.Creatures[i].Y)
	}
}

// Insert adds a snapshot index at the given position.
func (g *SpatialGrid) Insert(idx int, x, y float32) {
	c := g.cellIndex(x, y)
	g.cells[c] = append(g.cells[c], idx)
}

func (g *SpatialGrid) cellIndex(x, y float32) int {
	cx := int(x * g.invCellSize)
	cy := int(y * g.invCellSize)
	if cx < 0 {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}
	return cy*g.cols + cx
}

// QueryRadiusInto appends all creatures within radius of (x, y) to dst and
// returns it. The creature at index exclude is skipped. Results are capped
// at MaxQueryResults and ordered by ascending snapshot index, so callers
// iterating dst see a stable, reproducible order.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, exclude int, creatures []components.CreatureView) []Neighbor {
	radiusSq := radius * radius

	minCX := int((x - radius) * g.invCellSize)
	maxCX := int((x + radius) * g.invCellSize)
	minCY := int((y - radius) * g.invCellSize)
	maxCY := int((y + radius) * g.invCellSize)
	if minCX < 0 {
		minCX = 0
	}
	if maxCX >= g.cols {
		maxCX = g.cols - 1
	}
	if minCY < 0 {
		minCY = 0
	}
	if maxCY >= g.rows {
		maxCY = g.rows - 1
	}

	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			for _, idx := range g.cells[cy*g.cols+cx] {
				if idx == exclude {
					continue
				}
				c := &creatures[idx]
				dx := c.X - x
				dy := c.Y - y
				distSq := dx*dx + dy*dy
				if distSq > radiusSq {
					continue
				}
				dst = append(dst, Neighbor{Index: idx, DX: dx, DY: dy, DistSq: distSq})
				if len(dst) >= MaxQueryResults {
					sortNeighbors(dst)
					return dst
				}
			}
		}
	}
	sortNeighbors(dst)
	return dst
}

// sortNeighbors orders by ascending snapshot index. Insertion sort; result
// sets are small.
func sortNeighbors(ns []Neighbor) {
	for i := 1; i < len(ns); i++ {
		for j := i; j > 0 && ns[j].Index < ns[j-1].Index; j-- {
			ns[j], ns[j-1] = ns[j-1], ns[j]
		}
	}
}
