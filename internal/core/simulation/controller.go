// Package simulation owns the entity roster: it spawns and wires entities, advances
// them once per fixed tick and exposes the whole run as snapshots. Engine drives a
// Controller from a single goroutine and feeds it commands from the outside.
package simulation

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/zeusync/formations/internal/core/entity"
	"github.com/zeusync/formations/internal/core/nav"
	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/core/systems/physics"
)

// navMargin widens the navigation grid past the origin cap so capped destinations
// stay inside it.
const navMargin = 2.0

// Controller is the orchestrator. It is not safe for concurrent use.
type Controller struct {
	log        log.Log
	visualizer entity.Visualizer

	cfg     Config
	roster  *entity.Roster
	mesh    *nav.Mesh
	runID   uuid.UUID
	running bool
	ticks   uint64

	// per-tick scratch, sized to the roster
	desired []physics.Vec2
	wants   []bool
}

// NewController creates an idle controller. visualizer may be nil.
func NewController(visualizer entity.Visualizer, logger log.Log) *Controller {
	return &Controller{
		log:        logger.With(log.Component("simulation")),
		visualizer: visualizer,
	}
}

// Start replaces the roster with a freshly spawned one and starts running. On error the
// previous run is left untouched.
func (c *Controller) Start(cfg Config) error {
	cfg = cfg.Fitted()
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := newRand(seed)

	var mesh *nav.Mesh
	if cfg.Navigation == NavigationNavMesh {
		extent := math.Max(cfg.MaxDistanceFromOrigin, cfg.SpawnRadius) + navMargin
		mesh = nav.NewMesh(nav.DefaultConfig(extent))
	}

	if c.visualizer != nil {
		c.visualizer.Hide()
	}

	total := cfg.Total()
	roster := entity.NewRoster(total)
	args := func(i int, start physics.Vec2) entity.Args {
		return entity.Args{
			Index:                 i,
			Roster:                roster,
			Start:                 start,
			Speed:                 cfg.Speed,
			MaxDistanceFromOrigin: cfg.MaxDistanceFromOrigin,
			Navigation:            cfg.Navigation,
			Mesh:                  mesh,
			Visualizer:            c.visualizer,
		}
	}

	if len(cfg.Layout) > 0 {
		for i, p := range cfg.Layout {
			roster.Append(spawn(p.Kind, args(i, p.Position), p.Peers, rng, total))
		}
	} else {
		for i := 0; i < total; i++ {
			kind := entity.KindStatic
			if i < cfg.EntityCount {
				kind = cfg.Mode.KindAt(i)
			}
			roster.Append(spawn(kind, args(i, pointInDisk(rng, cfg.SpawnRadius)), nil, rng, total))
		}
	}

	c.cfg = cfg
	c.roster = roster
	c.mesh = mesh
	c.runID = uuid.New()
	c.running = true
	c.ticks = 0
	c.desired = make([]physics.Vec2, total)
	c.wants = make([]bool, total)

	c.log.Info("simulation started",
		log.String("run_id", c.runID.String()),
		log.String("mode", cfg.Mode.String()),
		log.String("navigation", cfg.Navigation.String()),
		log.Int("entities", cfg.EntityCount),
		log.Int("statics", cfg.StaticCount),
		log.Int("layout", len(cfg.Layout)),
		log.Uint64("seed", seed),
	)
	return nil
}

func spawn(kind entity.Kind, args entity.Args, peers []int, rng *rand.Rand, total int) entity.Entity {
	if kind == entity.KindStatic {
		return entity.NewStatic(args)
	}

	var a, b int
	if len(peers) == 2 {
		a, b = peers[0], peers[1]
	} else {
		a, b = TwoDistinctIndices(rng, total, args.Index)
	}
	if kind == entity.KindTriangle {
		return entity.NewTriangle(args, a, b)
	}
	return entity.NewPaired(args, a, b)
}

// Tick advances every entity by dt. All desired positions are computed from the
// previous tick's positions before any entity moves.
func (c *Controller) Tick(dt float64) {
	if !c.running || c.roster == nil {
		return
	}

	all := c.roster.All()
	for i, e := range all {
		c.desired[i], c.wants[i] = e.DesiredPosition()
	}
	for i, e := range all {
		if c.wants[i] {
			e.Apply(dt, c.desired[i])
		}
	}
	if c.mesh != nil {
		c.mesh.Step(dt)
	}
	c.ticks++
}

func (c *Controller) Pause()  { c.setPaused(true) }
func (c *Controller) Resume() { c.setPaused(false) }

// TogglePause pauses a running simulation and resumes a paused one.
func (c *Controller) TogglePause() { c.setPaused(c.running) }

func (c *Controller) setPaused(paused bool) {
	if c.roster == nil || c.running == !paused {
		return
	}
	c.running = !paused
	for _, e := range c.roster.All() {
		e.SetPaused(paused)
	}
	c.log.Debug("simulation pause changed", log.Bool("paused", paused), log.Uint64("tick", c.ticks))
}

// IsRunning reports whether Tick currently advances the roster.
func (c *Controller) IsRunning() bool { return c.running }

// Started reports whether Start ever succeeded.
func (c *Controller) Started() bool { return c.roster != nil }

func (c *Controller) Entities() *entity.Roster { return c.roster }
func (c *Controller) Mesh() *nav.Mesh          { return c.mesh }
func (c *Controller) Config() Config           { return c.cfg }
func (c *Controller) RunID() uuid.UUID         { return c.runID }
func (c *Controller) Ticks() uint64            { return c.ticks }
