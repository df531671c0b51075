package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-arena/pkg/event"
	"github.com/opd-ai/go-arena/pkg/physics"
)

const epsilon = 1e-9

func approxEqual(a, b physics.Vector2D) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func spawnPlayer(w *fakeWorld, pos physics.Vector2D) *Player {
	p := NewPlayer(w.cfg, pos)
	w.Instantiate(p, Infinite)
	return p
}

func spawnChaser(w *fakeWorld, pos physics.Vector2D, hp float64) *Enemy {
	e := NewChaser(w.cfg, pos, 0, 1)
	e.HP = hp
	e.MaxHP = hp
	w.Instantiate(e, Infinite)
	return e
}

func TestTakeDamage_InvulnerabilityWindow(t *testing.T) {
	tests := []struct {
		name  string
		spawn func(w *fakeWorld) ActorEntity
	}{
		{"player", func(w *fakeWorld) ActorEntity { return spawnPlayer(w, physics.Vec(100, 100)) }},
		{"enemy", func(w *fakeWorld) ActorEntity { return spawnChaser(w, physics.Vec(300, 300), 50) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newFakeWorld(nil)
			target := tt.spawn(w)
			hp := target.State().HP

			if !TakeDamage(w, target, 10, nil, 0) {
				t.Fatal("first TakeDamage() = false, expected true")
			}
			if got := target.State().HP; got != hp-10 {
				t.Fatalf("HP after first hit = %v, expected %v", got, hp-10)
			}

			source := target.State().Position.Add(physics.Vec(-5, 0))
			if TakeDamage(w, target, 10, &source, 500) {
				t.Error("second TakeDamage() = true, expected false while invulnerable")
			}
			if got := target.State().HP; got != hp-10 {
				t.Errorf("HP after second hit = %v, expected %v", got, hp-10)
			}
			if !target.State().Velocity.IsZero() {
				t.Errorf("Velocity = %v, expected knockback to be skipped", target.State().Velocity)
			}
		})
	}
}

func TestTakeDamage_PlayerScenario(t *testing.T) {
	w := newFakeWorld(nil)
	p := spawnPlayer(w, physics.Vec(200, 200))
	p.HP, p.MaxHP = 100, 100

	TakeDamage(w, p, 25, nil, 0)

	if p.HP != 75 {
		t.Errorf("HP = %v, expected 75", p.HP)
	}
	if !p.Invulnerable {
		t.Error("Invulnerable = false, expected true")
	}
	if got := w.sound.count(SoundHit); got != 1 {
		t.Errorf("hit sound played %d times, expected 1", got)
	}
	if p.DamageFlashTimer != w.cfg.Effects.FlashDuration {
		t.Errorf("DamageFlashTimer = %v, expected %v", p.DamageFlashTimer, w.cfg.Effects.FlashDuration)
	}
	if got := w.eventCount(event.PlayerDamaged); got != 1 {
		t.Errorf("PlayerDamaged events = %d, expected 1", got)
	}
	if w.countKind(KindDamageNumber) != 0 {
		t.Error("player damage spawned a damage number")
	}
}

func TestTakeDamage_EnemySpawnsDamageNumber(t *testing.T) {
	w := newFakeWorld(nil)
	e := spawnChaser(w, physics.Vec(200, 200), 50)

	TakeDamage(w, e, 12.5, nil, 0)

	var found *DamageNumber
	for _, ent := range w.entities {
		if d, ok := ent.(*DamageNumber); ok {
			found = d
		}
	}
	if found == nil {
		t.Fatal("no damage number spawned")
	}
	if found.Text != "12.5" {
		t.Errorf("damage number text = %q, expected %q", found.Text, "12.5")
	}
	if found.Position != e.Position {
		t.Errorf("damage number position = %v, expected %v", found.Position, e.Position)
	}
}

func TestTakeDamage_KnockbackDirection(t *testing.T) {
	const force = 200
	pos := physics.Vec(100, 100)
	tests := []struct {
		name     string
		source   physics.Vector2D
		expected physics.Vector2D
	}{
		{"from_left", physics.Vec(0, 100), physics.Vec(force, 0)},
		{"from_above", physics.Vec(100, 50), physics.Vec(0, force)},
		{"diagonal", physics.Vec(103, 104), physics.Vec(-0.6*force, -0.8*force)},
		{"coincident", pos, physics.Vec(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newFakeWorld(nil)
			p := spawnPlayer(w, pos)
			p.Velocity = physics.Vec(10, -10)
			before := p.Velocity

			source := tt.source
			TakeDamage(w, p, 1, &source, force)

			delta := p.Velocity.Sub(before)
			if !approxEqual(delta, tt.expected) {
				t.Errorf("velocity change = %v, expected %v", delta, tt.expected)
			}
			if math.IsNaN(p.Velocity.X) || math.IsNaN(p.Velocity.Y) {
				t.Errorf("Velocity = %v contains NaN", p.Velocity)
			}
		})
	}
}

func TestTakeDamage_KnockbackMayExceedMaxSpeed(t *testing.T) {
	w := newFakeWorld(nil)
	p := spawnPlayer(w, physics.Vec(100, 100))
	source := physics.Vec(90, 100)

	TakeDamage(w, p, 1, &source, p.Motion.MaxSpeed*3)

	if p.Velocity.Length() <= p.Motion.MaxSpeed {
		t.Errorf("speed = %v, expected knockback above max speed %v", p.Velocity.Length(), p.Motion.MaxSpeed)
	}
}

func TestTakeDamage_NotDamageable(t *testing.T) {
	w := newFakeWorld(nil)
	b := NewBullet(w.cfg.Bullet, physics.Vec(10, 10), physics.Vec(1, 0), TagPlayer, TagBullet)
	w.Instantiate(b, Infinite)

	if TakeDamage(w, b, 100, nil, 0) {
		t.Error("TakeDamage() on a bullet = true, expected false")
	}
	if b.Dead || !b.Live() {
		t.Error("bullet was killed by TakeDamage()")
	}
}

func TestTakeDamage_Lethal(t *testing.T) {
	t.Run("enemy", func(t *testing.T) {
		w := newFakeWorld(nil)
		e := spawnChaser(w, physics.Vec(200, 200), 20)

		TakeDamage(w, e, 25, nil, 0)

		if !e.Dead || e.HP != 0 {
			t.Errorf("Dead = %v, HP = %v, expected dead with 0 hp", e.Dead, e.HP)
		}
		if e.Live() || w.contains(e) {
			t.Error("dead enemy is still registered")
		}
		if w.score != w.cfg.Enemy.ScoreValue {
			t.Errorf("score = %d, expected %d", w.score, w.cfg.Enemy.ScoreValue)
		}
		if got := w.sound.count(SoundExplosion); got != 1 {
			t.Errorf("explosion sound played %d times, expected 1", got)
		}
		if got := w.sound.count(SoundHit); got != 0 {
			t.Errorf("hit sound played %d times on a lethal hit, expected 0", got)
		}
		if w.countKind(KindExplosion) != 1 {
			t.Errorf("explosions = %d, expected 1", w.countKind(KindExplosion))
		}
		if w.countKind(KindDamageNumber) != 1 {
			t.Errorf("damage numbers = %d, expected 1 score popup", w.countKind(KindDamageNumber))
		}
		if w.eventCount(event.EnemyKilled) != 1 {
			t.Errorf("EnemyKilled events = %d, expected 1", w.eventCount(event.EnemyKilled))
		}
		expected := shakeCall{w.cfg.Camera.ShakeIntensity, w.cfg.Camera.ShakeDuration}
		if len(w.camera.shakes) != 1 || w.camera.shakes[0] != expected {
			t.Errorf("shakes = %v, expected [%v]", w.camera.shakes, expected)
		}
	})

	t.Run("player", func(t *testing.T) {
		w := newFakeWorld(nil)
		p := spawnPlayer(w, physics.Vec(200, 200))

		TakeDamage(w, p, p.HP, nil, 0)

		if p.Live() || w.Player() != nil {
			t.Error("dead player is still registered")
		}
		if w.score != 0 {
			t.Errorf("score = %d, expected 0", w.score)
		}
		if w.eventCount(event.PlayerDied) != 1 {
			t.Errorf("PlayerDied events = %d, expected 1", w.eventCount(event.PlayerDied))
		}
		expected := shakeCall{w.cfg.Camera.PlayerShakeIntensity, w.cfg.Camera.PlayerShakeDuration}
		if len(w.camera.shakes) != 1 || w.camera.shakes[0] != expected {
			t.Errorf("shakes = %v, expected [%v]", w.camera.shakes, expected)
		}
	})
}

func TestDie_Twice(t *testing.T) {
	w := newFakeWorld(nil)
	e := spawnChaser(w, physics.Vec(200, 200), 20)

	Die(w, e)
	Die(w, e)

	if w.countKind(KindExplosion) != 1 {
		t.Errorf("explosions = %d, expected 1", w.countKind(KindExplosion))
	}
	if w.score != w.cfg.Enemy.ScoreValue {
		t.Errorf("score = %d, expected %d", w.score, w.cfg.Enemy.ScoreValue)
	}
}

func TestDie_ExplosionSparesAllies(t *testing.T) {
	w := newFakeWorld(nil)
	e := spawnChaser(w, physics.Vec(200, 200), 20)

	Die(w, e)

	for _, ent := range w.entities {
		if x, ok := ent.(*Explosion); ok {
			if !x.Tags.Has(TagEnemy) || !x.Tags.Has(TagHazard) {
				t.Errorf("explosion tags = %v, expected enemy and hazard", x.Tags)
			}
			if n := len(x.Bursts); n < 1 || n > 3 {
				t.Errorf("len(Bursts) = %d, expected 1 to 3", n)
			}
			return
		}
	}
	t.Fatal("no explosion spawned")
}

func TestDie_DropsPickup(t *testing.T) {
	cfg := testConfig()
	cfg.Enemy.DropChance = 1
	w := newFakeWorld(cfg)
	e := spawnChaser(w, physics.Vec(200, 200), 20)

	Die(w, e)

	if w.countKind(KindPickup) != 1 {
		t.Errorf("pickups = %d, expected 1", w.countKind(KindPickup))
	}
}

func TestUpdateActor_SharedTagsNeverDamage(t *testing.T) {
	w := newFakeWorld(nil)
	a := spawnChaser(w, physics.Vec(300, 300), 50)
	b := spawnChaser(w, physics.Vec(305, 300), 50)

	for i := 0; i < 10; i++ {
		w.step(1.0 / 60)
	}

	if a.HP != 50 || b.HP != 50 {
		t.Errorf("HP = %v, %v, expected both untouched", a.HP, b.HP)
	}
}

func TestUpdateActor_ContactDamage(t *testing.T) {
	w := newFakeWorld(nil)
	p := spawnPlayer(w, physics.Vec(300, 300))
	spawnChaser(w, physics.Vec(310, 300), 50)

	w.step(1.0 / 60)
	expected := w.cfg.Player.HP - w.cfg.Enemy.Damage
	if p.HP != expected {
		t.Fatalf("HP after contact = %v, expected %v", p.HP, expected)
	}
	if p.Velocity.X >= 0 {
		t.Errorf("Velocity = %v, expected knockback to the left", p.Velocity)
	}

	w.step(1.0 / 60)
	if p.HP != expected {
		t.Errorf("HP after second frame = %v, expected %v while invulnerable", p.HP, expected)
	}
}

func TestUpdateActor_DrawOrder(t *testing.T) {
	w := newFakeWorld(nil)
	spawnChaser(w, physics.Vec(300, 300), 50)

	w.step(1.0 / 60)

	expected := []string{"shadow:chaser", "draw:chaser"}
	if len(w.renderer.calls) != len(expected) {
		t.Fatalf("calls = %v, expected %v", w.renderer.calls, expected)
	}
	for i := range expected {
		if w.renderer.calls[i] != expected[i] {
			t.Errorf("calls[%d] = %q, expected %q", i, w.renderer.calls[i], expected[i])
		}
	}
}

func TestUpdateActor_InvulnerabilityExpires(t *testing.T) {
	w := newFakeWorld(nil)
	p := spawnPlayer(w, physics.Vec(300, 300))
	TakeDamage(w, p, 10, nil, 0)

	w.step(0.5)
	if !p.Invulnerable {
		t.Fatal("Invulnerable cleared too early")
	}

	w.step(0.6)
	if p.Invulnerable || p.InvulnerableTimer != 0 {
		t.Errorf("Invulnerable = %v, timer = %v, expected cleared", p.Invulnerable, p.InvulnerableTimer)
	}
	if p.DamageFlashTimer != 0 {
		t.Errorf("DamageFlashTimer = %v, expected 0", p.DamageFlashTimer)
	}
}

func TestUpdateActor_PausePolicy(t *testing.T) {
	tests := []struct {
		name   string
		freeze bool
		moves  bool
	}{
		{"observed_default", false, true},
		{"freeze_actors", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Pause.FreezeActors = tt.freeze
			w := newFakeWorld(cfg)
			w.paused = true
			e := spawnChaser(w, physics.Vec(300, 300), 50)
			e.Velocity = physics.Vec(100, 0)

			w.step(0.1)

			moved := e.Position != physics.Vec(300, 300)
			if moved != tt.moves {
				t.Errorf("moved = %v, expected %v", moved, tt.moves)
			}
			if len(w.renderer.calls) != 2 {
				t.Errorf("draw calls = %v, expected shadow and draw while paused", w.renderer.calls)
			}
		})
	}
}
