// pkg/entity/enemy.go
package entity

import (
	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// wanderers cruise at two thirds of the regular enemy speed
const wanderSpeedFactor = 2.0 / 3.0

// Behavior decides where an enemy wants to accelerate each frame
type Behavior interface {
	Acceleration(e *Enemy, w World, dt float64) physics.Vector2D
}

// Enemy is a hostile actor that grows in, then steers with its Behavior
type Enemy struct {
	Actor
	Behavior   Behavior
	Size       float64 // 0..1, drives radius and hp
	GrowTime   float64
	ScoreValue int
	age        float64
}

// NewEnemy creates an enemy of the given kind. size in [0,1] interpolates hp
// and radius between the configured bounds; hpScale multiplies the hp.
func NewEnemy(cfg *config.GameConfig, kind Kind, position physics.Vector2D, size, hpScale float64, behavior Behavior) *Enemy {
	ec := cfg.Enemy
	size = clamp01(size)
	if hpScale <= 0 {
		hpScale = 1
	}

	e := &Enemy{
		Actor:      NewActor(kind, LayerEnemy, position, lerp(ec.MinRadius, ec.MaxRadius, size), TagEnemy),
		Behavior:   behavior,
		Size:       size,
		GrowTime:   ec.GrowTime,
		ScoreValue: ec.ScoreValue,
	}
	e.Motion = physics.Motion{
		Acceleration: ec.Acceleration,
		MaxSpeed:     ec.MaxSpeed,
		Friction:     ec.Friction,
	}
	e.HP = lerp(ec.MinHP, ec.MaxHP, size) * hpScale
	e.MaxHP = e.HP
	e.Damage = ec.Damage
	e.Knockback = ec.Knockback
	e.InvulnerabilityDuration = ec.InvulnerabilityDuration
	e.FlashDuration = cfg.Effects.FlashDuration
	e.Damageable = true
	return e
}

// NewChaser creates an enemy that homes in on the player
func NewChaser(cfg *config.GameConfig, position physics.Vector2D, size, hpScale float64) *Enemy {
	return NewEnemy(cfg, KindChaser, position, size, hpScale, &Chaser{})
}

// NewWanderer creates an enemy that drifts in random directions
func NewWanderer(cfg *config.GameConfig, position physics.Vector2D, size, hpScale float64) *Enemy {
	e := NewEnemy(cfg, KindWanderer, position, size, hpScale, &Wanderer{
		MinInterval: cfg.Enemy.WanderMinInterval,
		MaxInterval: cfg.Enemy.WanderMaxInterval,
		Damping:     cfg.Enemy.BounceDamping,
	})
	e.Motion.MaxSpeed *= wanderSpeedFactor
	return e
}

// NewDasher creates an enemy that aims at the player and charges
func NewDasher(cfg *config.GameConfig, position physics.Vector2D, size, hpScale float64) *Enemy {
	e := NewEnemy(cfg, KindDasher, position, size, hpScale, &Dasher{
		TelegraphTime: cfg.Enemy.TelegraphTime,
		EdgeMargin:    cfg.Enemy.EdgeMargin,
	})
	e.Motion.MaxSpeed = cfg.Enemy.DashSpeed
	return e
}

// Update runs the shared actor protocol
func (e *Enemy) Update(w World, dt float64) {
	UpdateActor(w, e, dt)
}

// Scale is the grow-in progress in [0,1]
func (e *Enemy) Scale() float64 {
	if e.GrowTime <= 0 {
		return 1
	}
	return clamp01(e.age / e.GrowTime)
}

// Growing reports whether the spawn animation is still running
func (e *Enemy) Growing() bool {
	return e.Scale() < 1
}

// Move advances the grow-in animation, then steers with the behavior. While
// growing the enemy only coasts and is not kept inside the arena.
func (e *Enemy) Move(w World, dt float64) {
	e.age += dt
	if e.Growing() {
		e.ApplyFriction(dt)
		e.UpdatePosition(dt)
		return
	}

	var accel physics.Vector2D
	if e.Behavior != nil {
		accel = e.Behavior.Acceleration(e, w, dt)
	}
	e.ApplyAcceleration(accel, dt, true)
	if look, ok := e.Velocity.Direction(); ok {
		e.LookDirection = look
	}
	e.UpdatePosition(dt)
	e.ClampToArena(w.Arena())
}

// OnCollision deals contact damage to anything without a shared tag
func (e *Enemy) OnCollision(w World, other ActorEntity) {
	DefaultCollision(w, e, other)
}

// Draw renders the enemy scaled by its grow-in progress, plus any behavior
// overlay such as the dasher's aim line.
func (e *Enemy) Draw(r Renderer) {
	if d, ok := e.Behavior.(interface{ Draw(*Enemy, Renderer) }); ok {
		d.Draw(e, r)
	}
	s := e.Sprite()
	s.Scale = e.Scale()
	r.Draw(s)
}

// DrawShadow renders the shadow scaled by grow-in progress
func (e *Enemy) DrawShadow(r Renderer) {
	s := e.Sprite()
	s.Scale = e.Scale()
	r.DrawShadow(s)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
