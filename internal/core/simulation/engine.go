package simulation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zeusync/formations/internal/core/events/bus"
	"github.com/zeusync/formations/internal/core/lines"
	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/core/selection"
	"github.com/zeusync/formations/internal/core/viewport"
)

// Bus topic and event types published by the Engine.
const (
	Topic         = "simulation"
	EventSnapshot = "simulation.snapshot"
	EventStarted  = "simulation.started"
	EventPaused   = "simulation.paused"
	EventResumed  = "simulation.resumed"
)

// EngineConfig controls the fixed-step loop.
type EngineConfig struct {
	// TickRate is the fixed step; every tick advances the simulation by TickRate seconds.
	TickRate time.Duration `yaml:"tick_rate" json:"tick_rate"`
	// QueueSize bounds the commands waiting for the next tick.
	QueueSize int `yaml:"queue_size" json:"queue_size"`
	// AutoStart starts a run with the default config when Run begins.
	AutoStart bool `yaml:"auto_start" json:"auto_start"`
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TickRate:  20 * time.Millisecond,
		QueueSize: 256,
		AutoStart: true,
	}
}

// Stats is a cheap summary for health checks.
type Stats struct {
	RunID    string `json:"run_id,omitempty"`
	Tick     uint64 `json:"tick"`
	Running  bool   `json:"running"`
	Entities int    `json:"entities"`
	Queued   int    `json:"queued"`
}

// Engine owns a Controller and everything that reacts to viewer input. Step runs on one
// goroutine; Submit, Snapshot and Stats are safe to call from any goroutine.
type Engine struct {
	cfg  EngineConfig
	base Config
	bus  bus.EventBus
	log  log.Log

	controller *Controller
	router     *selection.Router
	lines      *lines.Controller
	camera     *viewport.Camera

	commands chan Command

	mu    sync.RWMutex
	last  Snapshot
	stats Stats
}

// NewEngine wires a controller with its selection router, line visualizer and camera.
// base is the config used by start commands that carry none.
func NewEngine(cfg EngineConfig, base Config, eventBus bus.EventBus, logger log.Log) *Engine {
	def := DefaultEngineConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}

	visualizer := lines.New(eventBus, logger)
	e := &Engine{
		cfg:        cfg,
		base:       base,
		bus:        eventBus,
		log:        logger.With(log.Component("engine")),
		controller: NewController(visualizer, logger),
		router:     selection.NewRouter(logger),
		lines:      visualizer,
		camera:     viewport.NewCamera(viewport.ParametersFor(base.Total()).WithMaxDistance(base.MaxDistanceFromOrigin)),
		commands:   make(chan Command, cfg.QueueSize),
	}
	e.lines.SetWidth(e.camera.LineWidth())
	return e
}

func (e *Engine) Controller() *Controller   { return e.controller }
func (e *Engine) Router() *selection.Router { return e.router }
func (e *Engine) Lines() *lines.Controller  { return e.lines }
func (e *Engine) Camera() *viewport.Camera  { return e.camera }
func (e *Engine) Config() EngineConfig      { return e.cfg }

// Submit queues cmd for the next tick without blocking.
func (e *Engine) Submit(cmd Command) error {
	if !cmd.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	select {
	case e.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run steps the engine every TickRate until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	if e.cfg.AutoStart && !e.controller.Started() {
		if err := e.start(nil); err != nil {
			return fmt.Errorf("auto start: %w", err)
		}
	}

	ticker := time.NewTicker(e.cfg.TickRate)
	defer ticker.Stop()
	dt := e.cfg.TickRate.Seconds()

	e.log.Info("engine running", log.Duration("tick_rate", e.cfg.TickRate))
	for {
		select {
		case <-ctx.Done():
			e.log.Info("engine stopped", log.Uint64("tick", e.controller.Ticks()))
			return nil
		case <-ticker.C:
			e.Step(dt)
		}
	}
}

// Step applies queued commands, then advances drag, simulation and camera by dt and
// publishes the resulting snapshot.
func (e *Engine) Step(dt float64) Snapshot {
	e.drain(dt)

	e.router.Hold(dt)
	e.controller.Tick(dt)
	e.camera.Advance(dt)
	e.lines.SetWidth(e.camera.LineWidth())

	snap := e.controller.Snapshot()
	snap.Lines = e.lines.Segments()
	snap.LineWidth = e.lines.Width()
	snap.Camera = e.camera.State()

	e.mu.Lock()
	e.last = snap
	e.stats = Stats{
		RunID:    snap.RunID,
		Tick:     snap.Tick,
		Running:  snap.Running,
		Entities: len(snap.Entities),
		Queued:   len(e.commands),
	}
	e.mu.Unlock()

	e.publish(EventSnapshot, snap)
	return snap
}

// Snapshot returns the snapshot of the last step.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}

func (e *Engine) drain(dt float64) {
	for {
		select {
		case cmd := <-e.commands:
			if err := e.apply(cmd, dt); err != nil {
				e.log.Warn("command rejected", log.String("command", cmd.String()), log.Error(err))
			}
		default:
			return
		}
	}
}

func (e *Engine) apply(cmd Command, dt float64) error {
	switch cmd.Type {
	case CommandStart:
		return e.start(cmd.Config)
	case CommandPause:
		e.setRunning(false)
	case CommandResume:
		e.setRunning(true)
	case CommandTogglePause:
		e.setRunning(!e.controller.IsRunning())
	case CommandSelect:
		e.router.SelectAt(cmd.Point())
	case CommandDrag:
		e.router.DragTo(cmd.Point(), cmd.stepOr(dt))
	case CommandRelease:
		e.router.ReleaseDrag()
	case CommandZoom:
		e.camera.Zoom(cmd.Delta)
	case CommandZoomAt:
		e.camera.ZoomAt(cmd.Delta, cmd.Point())
	case CommandPan:
		e.camera.Pan(cmd.Point())
	case CommandResetCamera:
		e.camera.Reset()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	return nil
}

func (e *Engine) start(override *Config) error {
	cfg := e.base
	if override != nil {
		cfg = *override
	}
	cfg = cfg.Fitted()
	if err := e.controller.Start(cfg); err != nil {
		return err
	}

	params := viewport.ParametersFor(cfg.Total()).WithMaxDistance(cfg.MaxDistanceFromOrigin)
	e.router.Reset(e.controller.Entities())
	e.camera.Fit(params)
	e.lines.SetWidth(params.LineWidth)

	e.publish(EventStarted, e.controller.RunID().String())
	return nil
}

func (e *Engine) setRunning(running bool) {
	if !e.controller.Started() || e.controller.IsRunning() == running {
		return
	}
	if running {
		e.controller.Resume()
		e.publish(EventResumed, e.controller.Ticks())
		return
	}
	e.controller.Pause()
	e.publish(EventPaused, e.controller.Ticks())
}

func (e *Engine) publish(eventType string, data any) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(Topic, bus.NewEvent(eventType, "engine", data)); err != nil {
		e.log.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
