package nav

import (
	"math"

	"github.com/zeusync/formations/internal/core/systems/physics"
	"github.com/zeusync/formations/pkg/generic"
	"github.com/zeusync/formations/pkg/sequence"
)

const (
	weightStraight = 1.0
	weightDiagonal = math.Sqrt2
)

// FindPath returns waypoints from `from` to `to`, excluding `from`.
// A clear straight line yields a single waypoint. When `to` is inside an obstacle the
// path ends at the nearest free cell instead. Nil means no path within the search budget.
func (m *Mesh) FindPath(from, to physics.Vec2) []physics.Vec2 {
	m.rebuild()
	g := m.grid

	if g.lineOfSight(from, to) && !g.IsBlocked(to) {
		return []physics.Vec2{to}
	}

	goal, ok := g.nearestFree(g.cellOf(to), m.cfg.MaxGoalSearch)
	if !ok {
		return nil
	}
	end := to
	if goal != g.cellOf(to) {
		end = g.center(goal)
	}

	start := g.cellOf(from)
	if start == goal {
		return []physics.Vec2{end}
	}

	result := m.astar(start, goal)
	if result == nil {
		return nil
	}

	path := make([]physics.Vec2, 0, 16)
	for n := result; n != nil && n.parent != nil; n = n.parent {
		path = append(path, g.center(n.cell))
	}
	// A* builds the path backward
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	if len(path) == 0 {
		return []physics.Vec2{end}
	}
	path[len(path)-1] = end

	return m.smoothPath(from, path)
}

// smoothPath drops intermediate waypoints that can be skipped in a straight line.
// Up to three passes, each one may shorten the path further.
func (m *Mesh) smoothPath(from physics.Vec2, path []physics.Vec2) []physics.Vec2 {
	for pass := 0; pass < 3; pass++ {
		if len(path) < 2 {
			return path
		}

		changed := false
		smoothed := make([]physics.Vec2, 0, len(path))
		prev := from
		for i := 0; i < len(path)-1; i++ {
			if m.grid.lineOfSight(prev, path[i+1]) {
				changed = true
				continue
			}
			smoothed = append(smoothed, path[i])
			prev = path[i]
		}
		smoothed = append(smoothed, path[len(path)-1])
		path = smoothed

		if !changed {
			break
		}
	}
	return path
}

type pathNode struct {
	cell   cell
	parent *pathNode
	gCost  float64
}

// search is the scratch space of one A* run, pooled across runs.
type search struct {
	open   *sequence.PriorityQueue[*pathNode]
	closed map[cell]struct{}
	best   map[cell]float64
}

var searches = generic.NewPool(
	func() *search {
		return &search{
			open:   sequence.NewPriorityQueue[*pathNode](256),
			closed: make(map[cell]struct{}, 256),
			best:   make(map[cell]float64, 256),
		}
	},
	func(s *search) {
		s.open.Reset()
		clear(s.closed)
		clear(s.best)
	},
)

func (m *Mesh) astar(start, goal cell) *pathNode {
	g := m.grid
	s := searches.Get()
	defer searches.Put(s)

	open, closed, best := s.open, s.closed, s.best
	open.Enqueue(&pathNode{cell: start}, heuristic(start, goal))

	cardinals := [4]cell{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	diagonals := [4]struct {
		d          cell
		adj1, adj2 int
	}{
		{cell{1, 1}, 0, 1},
		{cell{1, -1}, 1, 2},
		{cell{-1, -1}, 2, 3},
		{cell{-1, 1}, 3, 0},
	}

	for i := 0; i < m.cfg.MaxIterations; i++ {
		current, ok := open.Dequeue()
		if !ok {
			return nil
		}
		if current.cell == goal {
			return current
		}
		if _, done := closed[current.cell]; done {
			continue
		}
		closed[current.cell] = struct{}{}

		push := func(c cell, weight float64) {
			if _, done := closed[c]; done {
				return
			}
			cost := current.gCost + weight
			if prev, seen := best[c]; seen && prev <= cost {
				return
			}
			best[c] = cost
			open.Enqueue(&pathNode{cell: c, parent: current, gCost: cost}, cost+heuristic(c, goal))
		}

		var passable [4]bool
		for k, d := range cardinals {
			n := cell{current.cell.x + d.x, current.cell.y + d.y}
			if g.isBlocked(n) {
				continue
			}
			passable[k] = true
			push(n, weightStraight)
		}
		// no corner cutting: both adjacent cardinals must be open
		for _, d := range diagonals {
			if !passable[d.adj1] || !passable[d.adj2] {
				continue
			}
			n := cell{current.cell.x + d.d.x, current.cell.y + d.d.y}
			if g.isBlocked(n) {
				continue
			}
			push(n, weightDiagonal)
		}
	}
	return nil
}

func heuristic(a, b cell) float64 {
	return math.Hypot(float64(a.x-b.x), float64(a.y-b.y))
}
