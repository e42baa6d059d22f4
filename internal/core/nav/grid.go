package nav

import (
	"math"

	"github.com/zeusync/formations/internal/core/systems/physics"
)

// cell is an integer grid coordinate.
type cell struct {
	x, y int
}

// Grid is a square occupancy grid centered on the world origin.
// Cell (0,0) covers the lower-left corner at (-extent, -extent).
type Grid struct {
	cellSize float64
	extent   float64
	size     int
	blocked  []bool
	count    int
}

func newGrid(extent, cellSize float64) *Grid {
	size := int(math.Ceil(2*extent/cellSize)) + 1
	if size < 1 {
		size = 1
	}
	return &Grid{
		cellSize: cellSize,
		extent:   extent,
		size:     size,
		blocked:  make([]bool, size*size),
	}
}

// Size returns the number of cells along one side.
func (g *Grid) Size() int { return g.size }

// BlockedCount returns how many cells are currently blocked.
func (g *Grid) BlockedCount() int { return g.count }

func (g *Grid) clear() {
	for i := range g.blocked {
		g.blocked[i] = false
	}
	g.count = 0
}

func (g *Grid) inBounds(c cell) bool {
	return c.x >= 0 && c.y >= 0 && c.x < g.size && c.y < g.size
}

// cellOf maps a world point to the cell containing it, clamped into the grid.
func (g *Grid) cellOf(p physics.Vec2) cell {
	c := cell{
		x: int(math.Floor((p.X + g.extent) / g.cellSize)),
		y: int(math.Floor((p.Y + g.extent) / g.cellSize)),
	}
	c.x = clampInt(c.x, 0, g.size-1)
	c.y = clampInt(c.y, 0, g.size-1)
	return c
}

// center returns the world position of a cell's center.
func (g *Grid) center(c cell) physics.Vec2 {
	return physics.Vec2{
		X: (float64(c.x)+0.5)*g.cellSize - g.extent,
		Y: (float64(c.y)+0.5)*g.cellSize - g.extent,
	}
}

func (g *Grid) isBlocked(c cell) bool {
	if !g.inBounds(c) {
		return true
	}
	return g.blocked[c.y*g.size+c.x]
}

// IsBlocked reports whether the cell containing p is blocked.
func (g *Grid) IsBlocked(p physics.Vec2) bool {
	return g.isBlocked(g.cellOf(p))
}

// markDisk blocks every cell whose center lies within radius of p.
func (g *Grid) markDisk(p physics.Vec2, radius float64) {
	lo := g.cellOf(physics.Vec2{X: p.X - radius, Y: p.Y - radius})
	hi := g.cellOf(physics.Vec2{X: p.X + radius, Y: p.Y + radius})
	r2 := radius * radius
	for y := lo.y; y <= hi.y; y++ {
		for x := lo.x; x <= hi.x; x++ {
			c := cell{x, y}
			if g.center(c).Sub(p).LengthSquared() > r2 {
				continue
			}
			idx := y*g.size + x
			if !g.blocked[idx] {
				g.blocked[idx] = true
				g.count++
			}
		}
	}
}

// nearestFree searches rings around c for the closest unblocked cell.
func (g *Grid) nearestFree(c cell, maxRing int) (cell, bool) {
	if !g.isBlocked(c) {
		return c, true
	}
	for ring := 1; ring <= maxRing; ring++ {
		best := cell{}
		bestDist := math.MaxInt
		found := false
		for dy := -ring; dy <= ring; dy++ {
			for dx := -ring; dx <= ring; dx++ {
				if absInt(dx) != ring && absInt(dy) != ring {
					continue
				}
				n := cell{c.x + dx, c.y + dy}
				if g.isBlocked(n) {
					continue
				}
				if d := dx*dx + dy*dy; d < bestDist {
					best, bestDist, found = n, d, true
				}
			}
		}
		if found {
			return best, true
		}
	}
	return c, false
}

// lineOfSight walks the cells between a and b and reports whether none are blocked.
// The starting cell is ignored so an agent standing inside an obstacle can walk out.
func (g *Grid) lineOfSight(a, b physics.Vec2) bool {
	if g.count == 0 {
		return true
	}
	start := g.cellOf(a)
	it := newLineIterator(start, g.cellOf(b))
	for it.Next() {
		c := it.Cell()
		if c == start {
			continue
		}
		if g.isBlocked(c) {
			return false
		}
	}
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
