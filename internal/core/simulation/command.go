package simulation

import (
	"errors"
	"fmt"

	"github.com/zeusync/formations/internal/core/systems/physics"
)

var (
	ErrUnknownCommand = errors.New("simulation: unknown command")
	ErrQueueFull      = errors.New("simulation: command queue full")
)

// CommandType names an operation a viewer can request.
type CommandType string

const (
	CommandStart       CommandType = "start"
	CommandPause       CommandType = "pause"
	CommandResume      CommandType = "resume"
	CommandTogglePause CommandType = "toggle_pause"
	CommandSelect      CommandType = "select"
	CommandDrag        CommandType = "drag"
	CommandRelease     CommandType = "release"
	CommandZoom        CommandType = "zoom"
	CommandZoomAt      CommandType = "zoom_at"
	CommandPan         CommandType = "pan"
	CommandResetCamera CommandType = "reset_camera"
)

// Valid reports whether t is a known command.
func (t CommandType) Valid() bool {
	switch t {
	case CommandStart, CommandPause, CommandResume, CommandTogglePause,
		CommandSelect, CommandDrag, CommandRelease,
		CommandZoom, CommandZoomAt, CommandPan, CommandResetCamera:
		return true
	}
	return false
}

// Command is the wire and queue form of a viewer request. Which fields matter depends
// on Type: X/Y are a world point (select, drag, zoom_at) or a delta (pan), Delta is the
// zoom amount, DT overrides the drag step and Config replaces the default config on
// start.
type Command struct {
	Type   CommandType `json:"type"`
	X      float64     `json:"x,omitempty"`
	Y      float64     `json:"y,omitempty"`
	DT     float64     `json:"dt,omitempty"`
	Delta  float64     `json:"delta,omitempty"`
	Config *Config     `json:"config,omitempty"`
}

func (c Command) Point() physics.Vec2 { return physics.Vec2{X: c.X, Y: c.Y} }

func (c Command) String() string {
	return fmt.Sprintf("%s(%g, %g)", c.Type, c.X, c.Y)
}

func (c Command) stepOr(dt float64) float64 {
	if c.DT > 0 {
		return c.DT
	}
	return dt
}
