// Package nav is a small navigation layer: an occupancy grid built from circular
// obstacles, A* pathfinding over it, and agents that follow the resulting paths at a
// fixed speed. It plays the role an engine navmesh would play for the simulation.
package nav

import (
	"github.com/zeusync/formations/internal/core/systems/physics"
)

// Config describes the navigable area and search limits.
type Config struct {
	// Extent is the half-width of the square navigable area around the origin.
	Extent float64
	// CellSize is the side of one grid cell in world units.
	CellSize float64
	// AgentRadius inflates every obstacle so agents keep clear of it.
	AgentRadius float64
	// MaxIterations bounds a single A* search.
	MaxIterations int
	// MaxGoalSearch bounds the ring search for a free cell near a blocked goal.
	MaxGoalSearch int
	// RepathDistance is how far a destination may drift before the path is recomputed.
	RepathDistance float64
}

// DefaultConfig returns settings sized for a world of the given radius.
func DefaultConfig(extent float64) Config {
	return Config{
		Extent:         extent,
		CellSize:       0.5,
		AgentRadius:    0.5,
		MaxIterations:  7000,
		MaxGoalSearch:  16,
		RepathDistance: 0.25,
	}
}

// Mesh owns the grid, the obstacles carved into it and the agents walking on it.
type Mesh struct {
	cfg          Config
	grid         *Grid
	agents       []*Agent
	obstacles    []*Obstacle
	dirty        bool
	version      uint64
	pathSearches uint64
}

func NewMesh(cfg Config) *Mesh {
	def := DefaultConfig(cfg.Extent)
	if cfg.CellSize <= 0 {
		cfg.CellSize = def.CellSize
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.MaxGoalSearch <= 0 {
		cfg.MaxGoalSearch = def.MaxGoalSearch
	}
	if cfg.RepathDistance <= 0 {
		cfg.RepathDistance = def.RepathDistance
	}
	if cfg.AgentRadius < 0 {
		cfg.AgentRadius = 0
	}
	return &Mesh{
		cfg:  cfg,
		grid: newGrid(cfg.Extent, cfg.CellSize),
	}
}

func (m *Mesh) Config() Config { return m.cfg }

// Grid exposes the occupancy grid, rebuilt if obstacles moved.
func (m *Mesh) Grid() *Grid {
	m.rebuild()
	return m.grid
}

// PathSearches counts the path searches agents have run so far.
func (m *Mesh) PathSearches() uint64 { return m.pathSearches }

// Agents returns the agents in creation order.
func (m *Mesh) Agents() []*Agent { return m.agents }

// AddAgent places a new path-following agent at position.
func (m *Mesh) AddAgent(position physics.Vec2, speed float64) *Agent {
	a := &Agent{mesh: m, position: position, speed: speed}
	m.agents = append(m.agents, a)
	return a
}

// AddObstacle carves a disk of the given radius out of the navigable area.
func (m *Mesh) AddObstacle(position physics.Vec2, radius float64) *Obstacle {
	o := &Obstacle{mesh: m, position: position, radius: radius}
	m.obstacles = append(m.obstacles, o)
	m.dirty = true
	return o
}

// IsBlocked reports whether p lies in a blocked cell.
func (m *Mesh) IsBlocked(p physics.Vec2) bool {
	m.rebuild()
	return m.grid.IsBlocked(p)
}

// Step advances every agent by dt seconds.
func (m *Mesh) Step(dt float64) {
	m.rebuild()
	for _, a := range m.agents {
		a.step(dt)
	}
}

func (m *Mesh) rebuild() {
	if !m.dirty {
		return
	}
	m.grid.clear()
	for _, o := range m.obstacles {
		m.grid.markDisk(o.position, o.radius+m.cfg.AgentRadius)
	}
	m.dirty = false
	m.version++
}

// Obstacle is a static disk agents route around. It can be moved, e.g. while dragged.
type Obstacle struct {
	mesh     *Mesh
	position physics.Vec2
	radius   float64
}

func (o *Obstacle) Position() physics.Vec2 { return o.position }
func (o *Obstacle) Radius() float64        { return o.radius }

// Move relocates the obstacle; the grid is rebuilt lazily on next use.
func (o *Obstacle) Move(position physics.Vec2) {
	if o.position == position {
		return
	}
	o.position = position
	o.mesh.dirty = true
}
