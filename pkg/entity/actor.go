// pkg/entity/actor.go
package entity

import (
	"fmt"

	"github.com/opd-ai/go-arena/pkg/event"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// ActorEntity is an entity that moves, collides and takes part in combat
type ActorEntity interface {
	Entity
	State() *Actor
	Move(w World, dt float64)
	OnCollision(w World, other ActorEntity)
}

// Actor holds the physics and combat state shared by every actor kind
type Actor struct {
	Core
	Kind     Kind
	Position physics.Vector2D
	Velocity physics.Vector2D
	Motion   physics.Motion
	Radius   float64

	HP        float64
	MaxHP     float64
	Damage    float64 // dealt on contact
	Knockback float64 // impulse applied with Damage

	Invulnerable            bool
	InvulnerableTimer       float64
	InvulnerabilityDuration float64
	DamageFlashTimer        float64
	FlashDuration           float64

	LookDirection physics.Vector2D
	Damageable    bool
	Dead          bool
}

// NewActor creates an actor core facing right
func NewActor(kind Kind, layer int, position physics.Vector2D, radius float64, tags ...Tag) Actor {
	return Actor{
		Core:          NewCore(layer, tags...),
		Kind:          kind,
		Position:      position,
		Radius:        radius,
		LookDirection: physics.Vector2D{X: 1},
	}
}

// State returns the actor's shared state
func (a *Actor) State() *Actor {
	return a
}

// Collider returns the actor's collision circle
func (a *Actor) Collider() physics.Circle {
	return physics.Circle{Center: a.Position, Radius: a.Radius}
}

// Sprite describes the actor for renderers
func (a *Actor) Sprite() Sprite {
	return Sprite{
		ID:       a.ID(),
		Kind:     a.Kind,
		Position: a.Position,
		Radius:   a.Radius,
		Scale:    1,
		Facing:   a.LookDirection,
		Flash:    a.DamageFlashTimer > 0,
		Alpha:    1,
	}
}

// Draw renders the actor as a plain sprite
func (a *Actor) Draw(r Renderer) {
	r.Draw(a.Sprite())
}

// DrawShadow renders the actor's drop shadow
func (a *Actor) DrawShadow(r Renderer) {
	r.DrawShadow(a.Sprite())
}

// ApplyFriction decays the actor's velocity
func (a *Actor) ApplyFriction(dt float64) {
	a.Velocity = a.Motion.Decelerate(a.Velocity, dt)
}

// ApplyAcceleration accelerates along dir, or applies friction if dir is zero
func (a *Actor) ApplyAcceleration(dir physics.Vector2D, dt float64, clamp bool) {
	a.Velocity = a.Motion.Accelerate(a.Velocity, dir, dt, clamp)
}

// UpdatePosition integrates the actor's position
func (a *Actor) UpdatePosition(dt float64) {
	a.Position = physics.UpdatePosition(a.Position, a.Velocity, dt)
}

// ClampToArena keeps the whole collision circle inside the arena
func (a *Actor) ClampToArena(arena physics.Rect) {
	a.Position = arena.ClampCircle(a.Position, a.Radius)
}

// UpdateActor runs one frame of the actor protocol: flash timer, shadow and
// sprite drawing, movement, invulnerability timer, then a collision scan
// against every other live actor.
func UpdateActor(w World, self ActorEntity, dt float64) {
	a := self.State()

	if a.DamageFlashTimer > 0 {
		a.DamageFlashTimer -= dt
		if a.DamageFlashTimer < 0 {
			a.DamageFlashTimer = 0
		}
	}

	r := w.Renderer()
	self.DrawShadow(r)
	self.Draw(r)

	if w.Paused() && w.Config().Pause.FreezeActors {
		return
	}

	self.Move(w, dt)

	if a.Invulnerable {
		a.InvulnerableTimer -= dt
		if a.InvulnerableTimer <= 0 {
			a.InvulnerableTimer = 0
			a.Invulnerable = false
		}
	}

	if a.Dead || !a.Live() {
		return
	}

	for _, e := range w.Entities() {
		other, ok := e.(ActorEntity)
		if !ok || other == self || !e.Base().Live() {
			continue
		}
		if a.Collider().Collides(other.State().Collider()) {
			self.OnCollision(w, other)
		}
		if a.Dead || !a.Live() {
			return
		}
	}
}

// DefaultCollision deals contact damage to other unless the two share a tag
func DefaultCollision(w World, self, other ActorEntity) {
	a, o := self.State(), other.State()
	if a.Tags.SharesAny(o.Tags) || a.Damage <= 0 {
		return
	}
	source := a.Position
	TakeDamage(w, other, a.Damage, &source, a.Knockback)
}

// TakeDamage applies amount to target and reports whether it landed.
// Invulnerable, dead and non-damageable targets are left untouched. A nil
// source, or one at the target's own position, applies no knockback.
func TakeDamage(w World, target ActorEntity, amount float64, source *physics.Vector2D, knockback float64) bool {
	a := target.State()
	if !a.Damageable || a.Dead || a.Invulnerable {
		return false
	}

	a.HP -= amount
	a.DamageFlashTimer = a.FlashDuration
	a.Invulnerable = true
	a.InvulnerableTimer = a.InvulnerabilityDuration

	if source != nil {
		if dir, ok := a.Position.Sub(*source).Direction(); ok {
			a.Velocity = a.Velocity.Add(dir.Scale(knockback))
		}
	}

	if a.HP <= 0 {
		Die(w, target)
		return true
	}

	w.Sound().Play(SoundHit)
	if a.Tags.Has(TagEnemy) {
		w.Instantiate(NewDamageNumber(w.Config().Effects, a.Position, fmt.Sprintf("%g", amount)), Infinite)
	}
	if a.Tags.Has(TagPlayer) {
		w.Publish(event.NewDamageEvent(event.PlayerDamaged, target, a.ID(), amount, a.HP))
	}
	return true
}

// Die runs the death sequence and removes target from the world. Calling it
// on an actor that is already dead does nothing.
func Die(w World, target ActorEntity) {
	a := target.State()
	if a.Dead {
		return
	}
	a.HP = 0
	a.Dead = true

	cfg := w.Config()
	w.Sound().Play(SoundExplosion)

	tags := a.Tags.Clone()
	tags.Add(TagHazard)
	explosion := NewExplosion(cfg.Effects, a.Position, tags...)
	explosion.Scatter(w.Rand())
	w.Instantiate(explosion, cfg.Effects.ExplosionLifetime)

	if a.Tags.Has(TagPlayer) {
		w.Camera().Shake(cfg.Camera.PlayerShakeIntensity, cfg.Camera.PlayerShakeDuration)
	} else {
		w.Camera().Shake(cfg.Camera.ShakeIntensity, cfg.Camera.ShakeDuration)
	}

	switch {
	case a.Tags.Has(TagEnemy):
		score := cfg.Enemy.ScoreValue
		w.AddScore(score)
		w.Instantiate(NewDamageNumber(cfg.Effects, a.Position, fmt.Sprintf("+%d", score)), Infinite)
		w.Publish(event.NewEntityEvent(event.EnemyKilled, target, a.ID(), a.Kind.String(), a.Position))
		if cfg.Enemy.DropChance > 0 && w.Rand().Float64() < cfg.Enemy.DropChance {
			w.Instantiate(NewHealthPickup(cfg.Effects, a.Position), cfg.Effects.PickupLifetime)
		}
	case a.Tags.Has(TagPlayer):
		w.Publish(event.NewEntityEvent(event.PlayerDied, target, a.ID(), a.Kind.String(), a.Position))
	}

	w.Destroy(target)
}
