package entity

import (
	"github.com/zeusync/formations/internal/core/systems/physics"
)

// Paired hides behind its friend, on the side facing away from its enemy.
type Paired struct {
	base
	friend int
	enemy  int
}

var _ Entity = (*Paired)(nil)

func NewPaired(args Args, friend, enemy int) *Paired {
	return &Paired{base: newBase(args), friend: friend, enemy: enemy}
}

func (p *Paired) Kind() Kind   { return KindPaired }
func (p *Paired) Friend() int  { return p.friend }
func (p *Paired) Enemy() int   { return p.enemy }
func (p *Paired) Peers() []int { return []int{p.friend, p.enemy} }

// DesiredPosition projects onto the friend-enemy axis, pushes the point behind the friend
// by the combined personal space and clamps it to the origin cap.
func (p *Paired) DesiredPosition() (physics.Vec2, bool) {
	friend, enemy, ok := p.peers(p.friend, p.enemy)
	if !ok {
		return physics.Vec2{}, false
	}

	minDistance := p.PersonalSpace() + friend.PersonalSpace()
	friendPos, enemyPos := friend.Position(), enemy.Position()

	projected := physics.ProjectOntoLine(p.Position(), friendPos, enemyPos, minDistance)
	behind := physics.ConstrainToFarSide(projected, friendPos, enemyPos, minDistance)
	return physics.ClampMagnitude(behind, p.maxDist), true
}

func (p *Paired) UpdatePosition(dt float64) {
	if desired, ok := p.DesiredPosition(); ok {
		p.Apply(dt, desired)
	}
}

func (p *Paired) Select() {
	p.selected = true
	if p.visualizer == nil {
		return
	}
	if friend, enemy, ok := p.peers(p.friend, p.enemy); ok {
		p.visualizer.ShowPair(p, friend, enemy)
	}
}
