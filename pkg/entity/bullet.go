// pkg/entity/bullet.go
package entity

import (
	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// Bullet is a projectile that flies straight and hits at most once
type Bullet struct {
	Actor
	HasDealtDamage bool
	ShrinkTime     float64
	shrinkElapsed  float64
}

// NewBullet creates a bullet travelling along dir at the configured speed
func NewBullet(cfg config.BulletConfig, position, dir physics.Vector2D, tags ...Tag) *Bullet {
	b := &Bullet{
		Actor:      NewActor(KindBullet, LayerBullet, position, cfg.Radius, tags...),
		ShrinkTime: cfg.ShrinkTime,
	}
	unit, ok := dir.Direction()
	if !ok {
		unit = physics.Vector2D{X: 1}
	}
	b.Velocity = unit.Scale(cfg.Speed)
	b.LookDirection = unit
	b.Damage = cfg.Damage
	b.Knockback = cfg.Knockback
	b.Lifetime = cfg.Lifetime
	return b
}

// Update runs the shared actor protocol
func (b *Bullet) Update(w World, dt float64) {
	UpdateActor(w, b, dt)
}

// Move flies the bullet in a straight line. Once it has hit something it
// shrinks out and removes itself when the shrink completes.
func (b *Bullet) Move(w World, dt float64) {
	b.UpdatePosition(dt)
	if !b.HasDealtDamage {
		return
	}
	b.shrinkElapsed += dt
	if b.ShrinkTime <= 0 || b.shrinkElapsed >= b.ShrinkTime {
		w.Destroy(b)
	}
}

// OnCollision damages the first damageable non-friendly actor it touches
func (b *Bullet) OnCollision(w World, other ActorEntity) {
	if b.HasDealtDamage {
		return
	}
	o := other.State()
	if b.Tags.SharesAny(o.Tags) || !o.Damageable || o.Dead {
		return
	}
	b.HasDealtDamage = true
	source := b.Position
	TakeDamage(w, other, b.Damage, &source, b.Knockback)
}

// Scale returns the remaining size fraction during the shrink-out
func (b *Bullet) Scale() float64 {
	if !b.HasDealtDamage {
		return 1
	}
	if b.ShrinkTime <= 0 {
		return 0
	}
	s := 1 - b.shrinkElapsed/b.ShrinkTime
	if s < 0 {
		return 0
	}
	return s
}

// Draw renders the bullet, shrinking after it has hit
func (b *Bullet) Draw(r Renderer) {
	s := b.Sprite()
	s.Scale = b.Scale()
	s.Facing = b.Velocity.Normalize()
	r.Draw(s)
}
