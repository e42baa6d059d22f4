package simulation

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/formations/internal/core/entity"
	"github.com/zeusync/formations/internal/core/lines"
	"github.com/zeusync/formations/internal/core/systems/physics"
	"github.com/zeusync/formations/internal/core/viewport"
)

// EntityState is one entity as seen by a viewer.
type EntityState struct {
	Index    int          `json:"index"`
	Kind     entity.Kind  `json:"kind"`
	Position physics.Vec2 `json:"position"`
	Peers    []int        `json:"peers,omitempty"`
	Selected bool         `json:"selected,omitempty"`
	Dragging bool         `json:"dragging,omitempty"`
}

// Snapshot is an immutable view of one tick.
type Snapshot struct {
	RunID       string          `json:"run_id,omitempty"`
	Tick        uint64          `json:"tick"`
	Running     bool            `json:"running"`
	MaxDistance float64         `json:"max_distance"`
	Entities    []EntityState   `json:"entities"`
	Lines       []lines.Segment `json:"lines,omitempty"`
	LineWidth   float64         `json:"line_width"`
	Camera      viewport.State  `json:"camera"`
}

// Snapshot captures the roster. Lines and camera are filled in by the Engine.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        c.ticks,
		Running:     c.running,
		MaxDistance: c.cfg.MaxDistanceFromOrigin,
	}
	if c.roster == nil {
		return s
	}

	s.RunID = c.runID.String()
	s.Entities = make([]EntityState, 0, c.roster.Len())
	for _, e := range c.roster.All() {
		s.Entities = append(s.Entities, EntityState{
			Index:    e.Index(),
			Kind:     e.Kind(),
			Position: e.Position(),
			Peers:    e.Peers(),
			Selected: e.Selected(),
			Dragging: e.Dragging(),
		})
	}
	return s
}

// Checksum hashes everything a viewer would draw. The tick counter is left out, so a
// paused simulation keeps the same checksum.
func (s Snapshot) Checksum() uint64 {
	d := xxhash.New()
	var buf [8]byte

	putFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	putVec := func(v physics.Vec2) {
		putFloat(v.X)
		putFloat(v.Y)
	}
	putFlags := func(flags ...bool) {
		var b byte
		for i, f := range flags {
			if f {
				b |= 1 << i
			}
		}
		_, _ = d.Write([]byte{b})
	}

	_, _ = d.WriteString(s.RunID)
	putFlags(s.Running)
	putFloat(s.MaxDistance)
	for _, e := range s.Entities {
		_, _ = d.Write([]byte{byte(e.Kind)})
		putVec(e.Position)
		putFlags(e.Selected, e.Dragging)
	}
	for _, l := range s.Lines {
		putVec(l.From)
		putVec(l.To)
	}
	putFloat(s.LineWidth)
	putVec(s.Camera.Center)
	putFloat(s.Camera.Size)
	putFlags(s.Camera.Resetting)
	return d.Sum64()
}
