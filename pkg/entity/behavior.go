package entity

import (
	"math"

	"github.com/opd-ai/go-arena/pkg/physics"
)

const aimLineLength = 2000

// Chaser steers straight at the player
type Chaser struct{}

// Acceleration points at the player unless already within the enemy's radius
func (c *Chaser) Acceleration(e *Enemy, w World, dt float64) physics.Vector2D {
	p := w.Player()
	if p == nil || p.Dead {
		return physics.Vector2D{}
	}
	to := p.Position.Sub(e.Position)
	if to.Length() <= e.Radius {
		return physics.Vector2D{}
	}
	return to
}

// Wanderer holds a random heading for a random interval and bounces off the
// arena walls.
type Wanderer struct {
	MinInterval float64
	MaxInterval float64
	Damping     float64
	Direction   physics.Vector2D

	timer    float64
	interval float64
}

// Acceleration returns the current heading, re-rolling it when the interval
// runs out and reflecting it at the walls.
func (wd *Wanderer) Acceleration(e *Enemy, w World, dt float64) physics.Vector2D {
	wd.timer += dt
	if wd.Direction.IsZero() || wd.timer >= wd.interval {
		wd.reroll(w)
	}

	arena := w.Arena()
	if (e.Position.X <= arena.Left()+e.Radius && wd.Direction.X < 0) ||
		(e.Position.X >= arena.Right()-e.Radius && wd.Direction.X > 0) {
		wd.Direction.X = -wd.Direction.X
		e.Velocity.X = -e.Velocity.X * wd.Damping
	}
	if (e.Position.Y <= arena.Top()+e.Radius && wd.Direction.Y < 0) ||
		(e.Position.Y >= arena.Bottom()-e.Radius && wd.Direction.Y > 0) {
		wd.Direction.Y = -wd.Direction.Y
		e.Velocity.Y = -e.Velocity.Y * wd.Damping
	}

	return wd.Direction
}

func (wd *Wanderer) reroll(w World) {
	rng := w.Rand()
	wd.Direction = physics.FromAngle(rng.Float64()*2*math.Pi, 1)
	wd.interval = wd.MinInterval + rng.Float64()*(wd.MaxInterval-wd.MinInterval)
	wd.timer = 0
}

// DashState is the phase of a Dasher's attack cycle
type DashState int

const (
	DashTelegraphing DashState = iota
	DashDashing
)

func (s DashState) String() string {
	if s == DashDashing {
		return "dashing"
	}
	return "telegraphing"
}

// Dasher aims at the player for TelegraphTime, then charges along the last
// aim until it comes within EdgeMargin of any arena edge, and starts over.
type Dasher struct {
	TelegraphTime float64
	EdgeMargin    float64
	State         DashState
	Aim           physics.Vector2D

	timer float64
}

// Acceleration drives the telegraph/dash cycle. Telegraphing returns zero so
// friction brings the enemy to rest; the transition to dashing snaps the
// velocity to full speed along the aim.
func (d *Dasher) Acceleration(e *Enemy, w World, dt float64) physics.Vector2D {
	switch d.State {
	case DashDashing:
		if w.Arena().NearEdge(e.Position, e.Radius+d.EdgeMargin) {
			d.reset()
			return physics.Vector2D{}
		}
		return d.Aim

	default:
		p := w.Player()
		if p == nil || p.Dead {
			d.reset()
			return physics.Vector2D{}
		}
		if aim, ok := p.Position.Sub(e.Position).Direction(); ok {
			d.Aim = aim
		}
		d.timer += dt
		if d.timer >= d.TelegraphTime && !d.Aim.IsZero() {
			d.State = DashDashing
			e.Velocity = d.Aim.Scale(e.Motion.MaxSpeed)
		}
		return physics.Vector2D{}
	}
}

func (d *Dasher) reset() {
	d.State = DashTelegraphing
	d.Aim = physics.Vector2D{}
	d.timer = 0
}

// Draw shows the aim line while telegraphing
func (d *Dasher) Draw(e *Enemy, r Renderer) {
	if d.State != DashTelegraphing || d.Aim.IsZero() {
		return
	}
	r.DrawLine(e.Position, e.Position.Add(d.Aim.Scale(aimLineLength)), KindAimLine)
}
