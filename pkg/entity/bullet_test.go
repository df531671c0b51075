package entity

import (
	"testing"

	"github.com/opd-ai/go-arena/pkg/physics"
)

func TestNewBullet(t *testing.T) {
	w := newFakeWorld(nil)
	b := NewBullet(w.cfg.Bullet, physics.Vec(10, 10), physics.Vec(0, -5), TagPlayer, TagBullet)

	if !approxEqual(b.Velocity, physics.Vec(0, -w.cfg.Bullet.Speed)) {
		t.Errorf("Velocity = %v, expected straight up at %v", b.Velocity, w.cfg.Bullet.Speed)
	}
	if b.Damageable {
		t.Error("bullets must not be damageable")
	}
	if b.Lifetime != w.cfg.Bullet.Lifetime {
		t.Errorf("Lifetime = %v, expected %v", b.Lifetime, w.cfg.Bullet.Lifetime)
	}
	if b.Layer != LayerBullet {
		t.Errorf("Layer = %d, expected %d", b.Layer, LayerBullet)
	}
}

func TestNewBullet_ZeroDirection(t *testing.T) {
	w := newFakeWorld(nil)
	b := NewBullet(w.cfg.Bullet, physics.Vec(10, 10), physics.Vector2D{}, TagPlayer)

	if b.Velocity.Length() != w.cfg.Bullet.Speed {
		t.Errorf("speed = %v, expected %v", b.Velocity.Length(), w.cfg.Bullet.Speed)
	}
}

func TestBullet_KillsEnemyScenario(t *testing.T) {
	cfg := testConfig()
	cfg.Bullet.Damage = 25
	cfg.Bullet.Speed = 0
	w := newFakeWorld(cfg)

	enemy := spawnChaser(w, physics.Vec(300, 300), 20)
	b := NewBullet(cfg.Bullet, physics.Vec(300, 300), physics.Vec(1, 0), TagPlayer, TagBullet)
	w.Instantiate(b, cfg.Bullet.Lifetime)

	w.step(1.0 / 60)

	if !enemy.Dead || enemy.Live() {
		t.Fatal("enemy survived a 25 damage bullet with 20 hp")
	}
	if w.score != 100 {
		t.Errorf("score = %d, expected 100", w.score)
	}
	if !b.HasDealtDamage {
		t.Fatal("HasDealtDamage = false after the first hit")
	}
	if !b.Live() {
		t.Fatal("bullet removed before its shrink animation")
	}

	second := spawnChaser(w, physics.Vec(300, 300), 20)
	for i := 0; i < 10; i++ {
		w.step(1.0 / 60)
	}

	if second.HP != 20 {
		t.Errorf("second enemy HP = %v, expected 20: bullet hit twice", second.HP)
	}
	if w.score != 100 {
		t.Errorf("score = %d, expected 100", w.score)
	}
	if b.Live() {
		t.Error("bullet still registered after the shrink animation")
	}
}

func TestBullet_IgnoresFriendlyAndNonDamageable(t *testing.T) {
	tests := []struct {
		name  string
		spawn func(w *fakeWorld, pos physics.Vector2D)
	}{
		{"player", func(w *fakeWorld, pos physics.Vector2D) { spawnPlayer(w, pos) }},
		{"pickup", func(w *fakeWorld, pos physics.Vector2D) {
			w.Instantiate(NewHealthPickup(w.cfg.Effects, pos), Infinite)
		}},
		{"other_bullet", func(w *fakeWorld, pos physics.Vector2D) {
			w.Instantiate(NewBullet(w.cfg.Bullet, pos, physics.Vec(1, 0), TagEnemy, TagBullet), Infinite)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Bullet.Speed = 0
			w := newFakeWorld(cfg)
			pos := physics.Vec(200, 200)
			tt.spawn(w, pos)
			b := NewBullet(cfg.Bullet, pos, physics.Vec(1, 0), TagPlayer, TagBullet)
			w.Instantiate(b, Infinite)

			w.step(1.0 / 60)

			if b.HasDealtDamage {
				t.Error("bullet spent its hit on a target it cannot damage")
			}
		})
	}
}

func TestBullet_ZeroShrinkTime(t *testing.T) {
	cfg := testConfig()
	cfg.Bullet.Speed = 0
	cfg.Bullet.ShrinkTime = 0
	w := newFakeWorld(cfg)
	spawnChaser(w, physics.Vec(300, 300), 100)
	b := NewBullet(cfg.Bullet, physics.Vec(300, 300), physics.Vec(1, 0), TagPlayer, TagBullet)
	w.Instantiate(b, Infinite)

	w.step(1.0 / 60)
	w.step(1.0 / 60)

	if b.Live() {
		t.Error("bullet with zero shrink time still registered")
	}
	if b.Scale() != 0 {
		t.Errorf("Scale() = %v, expected 0", b.Scale())
	}
}

func TestBullet_LifetimeExpires(t *testing.T) {
	w := newFakeWorld(nil)
	b := NewBullet(w.cfg.Bullet, physics.Vec(300, 300), physics.Vec(1, 0), TagPlayer, TagBullet)
	w.Instantiate(b, 2)

	for i := 0; i < 3; i++ {
		w.step(0.5)
	}
	if !b.Live() {
		t.Fatal("bullet expired early")
	}
	if !approxEqual(b.Position, physics.Vec(300+w.cfg.Bullet.Speed*1.5, 300)) {
		t.Errorf("Position = %v, expected straight-line travel", b.Position)
	}

	w.step(0.5)
	if b.Live() {
		t.Error("bullet outlived its lifetime")
	}
}
