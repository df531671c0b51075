// pkg/entity/effects.go
package entity

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/event"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// AreaEffect is a stationary damaging circle that hits each target once
type AreaEffect struct {
	Actor
	MaxRadius float64
	damaged   map[uint64]bool
}

func newAreaEffect(kind Kind, position physics.Vector2D, maxRadius, damage, knockback float64, tags ...Tag) AreaEffect {
	a := AreaEffect{
		Actor:     NewActor(kind, LayerEffect, position, 0, tags...),
		MaxRadius: maxRadius,
		damaged:   make(map[uint64]bool),
	}
	a.Damage = damage
	a.Knockback = knockback
	return a
}

// Damaged reports whether the effect has already hit the entity with id
func (a *AreaEffect) Damaged(id uint64) bool {
	return a.damaged[id]
}

func (a *AreaEffect) hit(w World, other ActorEntity) {
	o := other.State()
	if a.Tags.SharesAny(o.Tags) || !o.Damageable || o.Dead || a.damaged[o.ID()] {
		return
	}
	a.damaged[o.ID()] = true
	center := a.Position
	TakeDamage(w, other, a.Damage, &center, a.Knockback)
}

// Draw renders the effect circle at its current radius
func (a *AreaEffect) Draw(r Renderer) {
	s := a.Sprite()
	if a.MaxRadius > 0 {
		s.Alpha = 1 - 0.5*a.Radius/a.MaxRadius
	}
	r.Draw(s)
}

// DrawShadow is empty: effects cast no shadow
func (a *AreaEffect) DrawShadow(r Renderer) {}

// Explosion grows to MaxRadius over the first half of its lifetime and
// shrinks back over the second half. The manager's lifetime countdown
// removes it.
type Explosion struct {
	AreaEffect
	Duration float64
	Bursts   []Burst
}

// Burst is a smaller, purely visual explosion offset from the main one. It
// follows the same grow and shrink curve, starting Delay seconds late.
type Burst struct {
	Offset    physics.Vector2D
	MaxRadius float64
	Delay     float64
}

// NewExplosion creates an explosion that will not hurt actors sharing tags
func NewExplosion(cfg config.EffectsConfig, position physics.Vector2D, tags ...Tag) *Explosion {
	e := &Explosion{
		AreaEffect: newAreaEffect(KindExplosion, position, cfg.ExplosionRadius, cfg.ExplosionDamage, cfg.ExplosionKnockback, tags...),
		Duration:   cfg.ExplosionLifetime,
	}
	e.Lifetime = cfg.ExplosionLifetime
	return e
}

// Scatter replaces the bursts with one to three new ones spread around the
// centre at evenly spaced, jittered angles
func (e *Explosion) Scatter(rng *rand.Rand) {
	n := 1 + rng.IntN(3)
	step := 2 * math.Pi / float64(n)
	start := rng.Float64() * 2 * math.Pi
	jitter := math.Pi / 6

	e.Bursts = make([]Burst, n)
	for i := range e.Bursts {
		angle := start + float64(i)*step + (rng.Float64()*2-1)*jitter
		distance := e.MaxRadius * uniform(rng, 0.25, 0.4)
		e.Bursts[i] = Burst{
			Offset:    physics.FromAngle(angle, distance),
			MaxRadius: e.MaxRadius * uniform(rng, 0.4, 0.6),
			Delay:     uniform(rng, 0.05, 0.15),
		}
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Update runs the shared actor protocol
func (e *Explosion) Update(w World, dt float64) {
	UpdateActor(w, e, dt)
}

// Progress is the fraction of the explosion's life already spent
func (e *Explosion) Progress() float64 {
	if e.Duration <= 0 || !e.Finite() {
		return 1
	}
	return clamp01(1 - e.Lifetime/e.Duration)
}

// Move animates the radius from the remaining lifetime
func (e *Explosion) Move(w World, dt float64) {
	e.Radius = e.MaxRadius * pulse(e.Progress())
}

// BurstRadius is the current radius of burst b, zero before its delay has
// passed
func (e *Explosion) BurstRadius(b Burst) float64 {
	if e.Duration <= 0 {
		return 0
	}
	elapsed := e.Progress()*e.Duration - b.Delay
	if elapsed <= 0 {
		return 0
	}
	return b.MaxRadius * pulse(elapsed/e.Duration)
}

// Draw renders the main circle and every burst that has started
func (e *Explosion) Draw(r Renderer) {
	e.AreaEffect.Draw(r)
	for i, b := range e.Bursts {
		radius := e.BurstRadius(b)
		if radius <= 0 {
			continue
		}
		s := e.Sprite()
		s.Part = i + 1
		s.Position = e.Position.Add(b.Offset)
		s.Radius = radius
		s.Alpha = 1 - 0.5*radius/b.MaxRadius
		r.Draw(s)
	}
}

// pulse rises linearly from 0 to 1 over the first half of t and falls back
// to 0 over the second
func pulse(t float64) float64 {
	return math.Max(0, 1-math.Abs(2*t-1))
}

// OnCollision damages each qualifying target once
func (e *Explosion) OnCollision(w World, other ActorEntity) {
	e.hit(w, other)
}

// Blast is the player's shockwave: it grows to MaxRadius over GrowTime,
// holds for HoldTime and then removes itself.
type Blast struct {
	AreaEffect
	GrowTime float64
	HoldTime float64
	elapsed  float64
}

// NewBlast creates a blast centred on position
func NewBlast(cfg config.EffectsConfig, position physics.Vector2D, tags ...Tag) *Blast {
	return &Blast{
		AreaEffect: newAreaEffect(KindBlast, position, cfg.BlastRadius, cfg.BlastDamage, cfg.BlastKnockback, tags...),
		GrowTime:   cfg.BlastGrowTime,
		HoldTime:   cfg.BlastHoldTime,
	}
}

// Update runs the shared actor protocol
func (b *Blast) Update(w World, dt float64) {
	UpdateActor(w, b, dt)
}

// Move grows the radius and removes the blast once the hold phase is over
func (b *Blast) Move(w World, dt float64) {
	b.elapsed += dt
	if b.GrowTime <= 0 {
		b.Radius = b.MaxRadius
	} else {
		b.Radius = b.MaxRadius * clamp01(b.elapsed/b.GrowTime)
	}
	if b.elapsed >= b.GrowTime+b.HoldTime {
		w.Destroy(b)
	}
}

// OnCollision damages each qualifying target once
func (b *Blast) OnCollision(w World, other ActorEntity) {
	b.hit(w, other)
}

// DamageNumber is floating text that rises and fades. It is not an actor and
// never collides.
type DamageNumber struct {
	Core
	Position physics.Vector2D
	Text     string
	Duration float64
	Rise     float64 // units per second
}

// NewDamageNumber creates a floating number at position
func NewDamageNumber(cfg config.EffectsConfig, position physics.Vector2D, text string) *DamageNumber {
	d := &DamageNumber{
		Core:     NewCore(LayerDamageNumber),
		Position: position,
		Text:     text,
		Duration: cfg.DamageNumberLifetime,
		Rise:     cfg.DamageNumberRise,
	}
	d.Lifetime = cfg.DamageNumberLifetime
	return d
}

// Update draws the number and floats it upward
func (d *DamageNumber) Update(w World, dt float64) {
	r := w.Renderer()
	d.DrawShadow(r)
	d.Draw(r)
	if w.Paused() {
		return
	}
	d.Position.Y -= d.Rise * dt
}

// Alpha is the remaining opacity in [0,1]
func (d *DamageNumber) Alpha() float64 {
	if d.Duration <= 0 || !d.Finite() {
		return 1
	}
	return clamp01(d.Lifetime / d.Duration)
}

// Draw renders the text
func (d *DamageNumber) Draw(r Renderer) {
	r.Draw(Sprite{
		ID:       d.ID(),
		Kind:     KindDamageNumber,
		Position: d.Position,
		Scale:    1,
		Alpha:    d.Alpha(),
		Text:     d.Text,
	})
}

// DrawShadow is empty: text casts no shadow
func (d *DamageNumber) DrawShadow(r Renderer) {}

// HealthPickup restores player hp on contact
type HealthPickup struct {
	Actor
	Heal float64
}

// NewHealthPickup creates a pickup at position
func NewHealthPickup(cfg config.EffectsConfig, position physics.Vector2D) *HealthPickup {
	p := &HealthPickup{
		Actor: NewActor(KindPickup, LayerPickup, position, cfg.PickupRadius, TagPickup),
		Heal:  cfg.PickupHeal,
	}
	p.Lifetime = cfg.PickupLifetime
	return p
}

// Update runs the shared actor protocol
func (p *HealthPickup) Update(w World, dt float64) {
	UpdateActor(w, p, dt)
}

// Move does nothing; pickups stay where they dropped
func (p *HealthPickup) Move(w World, dt float64) {}

// OnCollision heals the player, capped at max hp, and consumes the pickup
func (p *HealthPickup) OnCollision(w World, other ActorEntity) {
	player, ok := other.(*Player)
	if !ok || player.Dead {
		return
	}
	player.HP = math.Min(player.HP+p.Heal, player.MaxHP)
	w.Sound().Play(SoundPickup)
	w.Publish(event.NewEntityEvent(event.PickupCollected, p, p.ID(), p.Kind.String(), p.Position))
	w.Destroy(p)
}
