// pkg/entity/player.go
package entity

import (
	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// Player is the ship controlled through the Input collaborator
type Player struct {
	Actor
	FireCooldown  float64
	ShotCount     int
	Spread        float64
	BlastCooldown float64

	fireTimer  float64
	blastTimer float64
	bullet     config.BulletConfig
	effects    config.EffectsConfig
}

// NewPlayer creates a player at position using the configured tuning
func NewPlayer(cfg *config.GameConfig, position physics.Vector2D) *Player {
	pc := cfg.Player
	p := &Player{
		Actor:         NewActor(KindPlayer, LayerPlayer, position, pc.Radius, TagPlayer),
		FireCooldown:  pc.FireCooldown,
		ShotCount:     pc.ShotCount,
		Spread:        pc.Spread,
		BlastCooldown: pc.BlastCooldown,
		bullet:        cfg.Bullet,
		effects:       cfg.Effects,
	}
	p.Motion = physics.Motion{
		Acceleration: pc.Acceleration,
		MaxSpeed:     pc.MaxSpeed,
		Friction:     pc.Friction,
	}
	p.HP = pc.HP
	p.MaxHP = pc.HP
	p.InvulnerabilityDuration = pc.InvulnerabilityDuration
	p.FlashDuration = cfg.Effects.FlashDuration
	p.Damageable = true
	return p
}

// Update runs the shared actor protocol
func (p *Player) Update(w World, dt float64) {
	UpdateActor(w, p, dt)
}

// OnCollision applies the default contact rule. The player deals no contact
// damage, so this only matters for configs that give it some.
func (p *Player) OnCollision(w World, other ActorEntity) {
	DefaultCollision(w, p, other)
}

// Move reads input, moves the ship inside the arena and handles the fire and
// blast triggers. Nothing happens while the world is paused.
func (p *Player) Move(w World, dt float64) {
	if w.Paused() {
		return
	}
	in := w.Input()

	p.ApplyAcceleration(InputDirection(in), dt, true)
	p.UpdatePosition(dt)
	p.ClampToArena(w.Arena())

	if look, ok := in.Pointer().Sub(p.Position).Direction(); ok {
		p.LookDirection = look
	}

	if p.fireTimer > 0 {
		p.fireTimer -= dt
	}
	if p.blastTimer > 0 {
		p.blastTimer -= dt
	}

	if in.Pressed(ActionFire) && p.fireTimer <= 0 {
		p.Shoot(w)
		p.fireTimer = p.FireCooldown
	}
	if in.Pressed(ActionBlast) && p.blastTimer <= 0 {
		p.Blast(w)
		p.blastTimer = p.BlastCooldown
	}
}

// Shoot fires ShotCount bullets along LookDirection, each with its own random
// deviation inside the Spread cone. The shoot sound plays once per trigger.
func (p *Player) Shoot(w World) {
	rng := w.Rand()
	base := p.LookDirection.Angle()
	for i := 0; i < p.ShotCount; i++ {
		angle := base + (rng.Float64()-0.5)*p.Spread
		dir := physics.FromAngle(angle, 1)
		muzzle := p.Position.Add(dir.Scale(p.Radius))
		w.Instantiate(NewBullet(p.bullet, muzzle, dir, TagPlayer, TagBullet), p.bullet.Lifetime)
	}
	w.Sound().Play(SoundShoot)
}

// Blast spawns a shockwave centred on the player
func (p *Player) Blast(w World) {
	w.Instantiate(NewBlast(p.effects, p.Position, TagPlayer, TagHazard), Infinite)
	w.Sound().Play(SoundBlast)
}

// CanFire reports whether the fire cooldown has elapsed
func (p *Player) CanFire() bool {
	return p.fireTimer <= 0
}

// BlastCooldownLeft reports the remaining blast cooldown fraction, 0 when ready
func (p *Player) BlastCooldownLeft() float64 {
	if p.BlastCooldown <= 0 || p.blastTimer <= 0 {
		return 0
	}
	return p.blastTimer / p.BlastCooldown
}

// InputDirection maps the four movement actions to a unit-or-zero vector
func InputDirection(in Input) physics.Vector2D {
	var dir physics.Vector2D
	if in.Pressed(ActionUp) {
		dir.Y--
	}
	if in.Pressed(ActionDown) {
		dir.Y++
	}
	if in.Pressed(ActionLeft) {
		dir.X--
	}
	if in.Pressed(ActionRight) {
		dir.X++
	}
	return dir.Normalize()
}
