package engine

import (
	"slices"
	"testing"

	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/entity"
	"github.com/opd-ai/go-arena/pkg/event"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// recorder is a minimal entity that logs its updates
type recorder struct {
	entity.Core
	name     string
	log      *[]string
	onUpdate func(w entity.World)
}

func newRecorder(name string, layer int, log *[]string, tags ...entity.Tag) *recorder {
	return &recorder{Core: entity.NewCore(layer, tags...), name: name, log: log}
}

func (p *recorder) Update(w entity.World, dt float64) {
	*p.log = append(*p.log, p.name)
	if p.onUpdate != nil {
		p.onUpdate(w)
	}
}

func (p *recorder) Draw(entity.Renderer)       {}
func (p *recorder) DrawShadow(entity.Renderer) {}

func testConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Seed = 42
	cfg.Enemy.GrowTime = 0
	cfg.Enemy.DropChance = 0
	return cfg
}

func TestManager_DestroyIdempotent(t *testing.T) {
	m := NewManager(testConfig())
	var log []string
	p := newRecorder("a", 0, &log)

	m.Instantiate(p, entity.Infinite)
	if !m.Contains(p) || m.Len() != 1 {
		t.Fatalf("Contains = %v, Len = %d after Instantiate", m.Contains(p), m.Len())
	}

	m.Destroy(p)
	m.Destroy(p)
	m.Destroy(newRecorder("never_registered", 0, &log))

	if m.Contains(p) || m.Len() != 0 {
		t.Errorf("Contains = %v, Len = %d after double Destroy", m.Contains(p), m.Len())
	}
	m.Update(0.1)
	if len(log) != 0 {
		t.Errorf("destroyed entity updated: %v", log)
	}
}

func TestManager_LayerOrder(t *testing.T) {
	m := NewManager(testConfig())
	var log []string
	m.Instantiate(newRecorder("player", 3, &log), entity.Infinite)
	m.Instantiate(newRecorder("bullet_1", 1, &log), entity.Infinite)
	m.Instantiate(newRecorder("number", 100, &log), entity.Infinite)
	m.Instantiate(newRecorder("bullet_2", 1, &log), entity.Infinite)
	m.Instantiate(newRecorder("pickup", 0, &log), entity.Infinite)

	m.Update(1.0 / 60)

	expected := []string{"pickup", "bullet_1", "bullet_2", "player", "number"}
	if !slices.Equal(log, expected) {
		t.Errorf("update order = %v, expected %v", log, expected)
	}
}

func TestManager_Lifetime(t *testing.T) {
	tests := []struct {
		name          string
		preset        float64
		lifetime      float64
		expectedAlive int
	}{
		{"override", entity.Infinite, 1.0, 2},
		{"keeps_own_lifetime", 1.0, entity.Infinite, 2},
		{"override_replaces_own", 10, 1.0, 2},
		{"infinite", entity.Infinite, entity.Infinite, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(testConfig())
			var log []string
			p := newRecorder("p", 0, &log)
			p.Lifetime = tt.preset
			m.Instantiate(p, tt.lifetime)

			for i := 0; i < 5; i++ {
				m.Update(0.4)
			}

			if len(log) != tt.expectedAlive {
				t.Errorf("updates = %d, expected %d", len(log), tt.expectedAlive)
			}
		})
	}
}

func TestManager_PausedFreezesLifetime(t *testing.T) {
	m := NewManager(testConfig())
	var log []string
	p := newRecorder("p", 0, &log)
	m.Instantiate(p, 0.5)
	m.SetPaused(true)

	for i := 0; i < 10; i++ {
		m.Update(0.25)
	}

	if !m.Contains(p) || p.Lifetime != 0.5 {
		t.Errorf("Contains = %v, Lifetime = %v, expected frozen while paused", m.Contains(p), p.Lifetime)
	}
	if len(log) != 10 {
		t.Errorf("updates = %d, expected the pass to keep running", len(log))
	}

	m.SetPaused(false)
	m.Update(0.25)
	m.Update(0.25)
	if m.Contains(p) {
		t.Error("entity survived after resuming")
	}
}

func TestManager_MutationDuringPass(t *testing.T) {
	m := NewManager(testConfig())
	var log []string
	victim := newRecorder("victim", 1, &log)
	child := newRecorder("child", 0, &log)
	killer := newRecorder("killer", 0, &log)

	var seen []entity.Entity
	killer.onUpdate = func(w entity.World) {
		if !victim.Live() {
			return
		}
		w.Destroy(victim)
		w.Instantiate(child, entity.Infinite)
		seen = slices.Clone(w.Entities())
	}
	m.Instantiate(killer, entity.Infinite)
	m.Instantiate(victim, entity.Infinite)

	m.Update(0.1)

	if !slices.Equal(log, []string{"killer"}) {
		t.Errorf("first pass = %v, expected only the killer", log)
	}
	if slices.Contains(seen, entity.Entity(child)) {
		t.Error("entity instantiated mid-pass visible before the pass ended")
	}
	if !m.Contains(child) || m.Contains(victim) {
		t.Errorf("Contains(child) = %v, Contains(victim) = %v", m.Contains(child), m.Contains(victim))
	}
	if m.Len() != 2 || len(m.Entities()) != 2 {
		t.Errorf("Len = %d, entities = %d, expected compaction after the pass", m.Len(), len(m.Entities()))
	}

	log = nil
	m.Update(0.1)
	if !slices.Equal(log, []string{"killer", "child"}) {
		t.Errorf("second pass = %v, expected insertion order within layer 0", log)
	}
}

func TestManager_InstantiateThenDestroyMidPass(t *testing.T) {
	m := NewManager(testConfig())
	var log []string
	ghost := newRecorder("ghost", 0, &log)
	spawner := newRecorder("spawner", 0, &log)
	spawner.onUpdate = func(w entity.World) {
		if len(log) == 1 {
			w.Instantiate(ghost, entity.Infinite)
			w.Destroy(ghost)
		}
	}
	m.Instantiate(spawner, entity.Infinite)

	m.Update(0.1)
	m.Update(0.1)

	if m.Contains(ghost) || slices.Contains(log, "ghost") {
		t.Errorf("log = %v, expected the ghost never to join", log)
	}
}

func TestManager_DestroyThenInstantiateMidPass(t *testing.T) {
	tests := []struct {
		name    string
		revive  func(w entity.World, target *recorder)
		pending bool
	}{
		{"held_entity", func(w entity.World, target *recorder) {
			w.Destroy(target)
			w.Instantiate(target, entity.Infinite)
		}, false},
		{"pending_entity_twice", func(w entity.World, target *recorder) {
			w.Instantiate(target, entity.Infinite)
			w.Destroy(target)
			w.Instantiate(target, entity.Infinite)
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(testConfig())
			var log []string
			target := newRecorder("target", 1, &log)
			reviver := newRecorder("reviver", 0, &log)
			reviver.onUpdate = func(w entity.World) {
				if len(log) == 1 {
					tt.revive(w, target)
				}
			}
			m.Instantiate(reviver, entity.Infinite)
			if !tt.pending {
				m.Instantiate(target, entity.Infinite)
			}

			m.Update(0.1)
			if m.Len() != 2 || len(m.Entities()) != 2 {
				t.Fatalf("Len() = %d, expected 2 after the revival pass", m.Len())
			}

			log = nil
			m.Update(0.1)
			if !slices.Equal(log, []string{"reviver", "target"}) {
				t.Errorf("pass = %v, expected target updated once", log)
			}
		})
	}
}

func TestManager_PlayerLookup(t *testing.T) {
	m := NewManager(testConfig())
	if m.Player() != nil {
		t.Fatal("Player() non-nil in an empty manager")
	}

	p := entity.NewPlayer(m.Config(), physics.Vec(100, 100))
	m.Instantiate(p, entity.Infinite)
	if m.Player() != p {
		t.Fatal("Player() did not return the registered player")
	}

	m.Destroy(p)
	if m.Player() != nil {
		t.Error("Player() still set after Destroy")
	}
}

func TestManager_AddScore(t *testing.T) {
	bus := event.NewEventBus()
	m := NewManager(testConfig(), WithEventBus(bus))
	var deltas []int
	bus.Subscribe(event.ScoreChanged, func(e event.Event) {
		deltas = append(deltas, e.(*event.ScoreEvent).Delta)
	})

	m.AddScore(100)
	m.AddScore(-50)
	m.AddScore(0)
	m.AddScore(25)

	if m.Score() != 125 {
		t.Errorf("Score() = %d, expected 125", m.Score())
	}
	if !slices.Equal(deltas, []int{100, 25}) {
		t.Errorf("published deltas = %v, expected [100 25]", deltas)
	}
}

func TestManager_CountTaggedAndClear(t *testing.T) {
	m := NewManager(testConfig())
	var log []string
	m.Instantiate(newRecorder("e1", 2, &log, entity.TagEnemy), entity.Infinite)
	m.Instantiate(newRecorder("e2", 2, &log, entity.TagEnemy, entity.TagHazard), entity.Infinite)
	m.Instantiate(newRecorder("b", 1, &log, entity.TagBullet), entity.Infinite)
	m.AddScore(10)

	if got := m.CountTagged(entity.TagEnemy); got != 2 {
		t.Errorf("CountTagged(enemy) = %d, expected 2", got)
	}
	if got := m.CountTagged(entity.TagWall); got != 0 {
		t.Errorf("CountTagged(wall) = %d, expected 0", got)
	}

	m.Clear()
	if m.Len() != 0 || m.Score() != 0 || m.CountTagged(entity.TagEnemy) != 0 {
		t.Errorf("Len = %d, Score = %d after Clear", m.Len(), m.Score())
	}
}

func TestManager_NilCollaborators(t *testing.T) {
	m := NewManager(nil)

	if m.Sound() == nil || m.Camera() == nil || m.Renderer() == nil || m.Input() == nil {
		t.Fatal("nil collaborator exposed")
	}
	m.Sound().Play("does_not_exist")
	m.Publish(event.NewScoreEvent(m, 1, 1))
	if m.Config() == nil || m.Rand() == nil {
		t.Error("default config or rand missing")
	}
}

func TestManager_SeededRand(t *testing.T) {
	a := NewManager(testConfig())
	b := NewManager(testConfig())

	for i := 0; i < 10; i++ {
		if a.Rand().Float64() != b.Rand().Float64() {
			t.Fatal("managers with the same seed diverged")
		}
	}
}

func TestManager_BulletKillsEnemy(t *testing.T) {
	cfg := testConfig()
	cfg.Bullet.Damage = 25
	cfg.Bullet.Speed = 0
	bus := event.NewEventBus()
	m := NewManager(cfg, WithEventBus(bus))
	killed := 0
	bus.Subscribe(event.EnemyKilled, func(event.Event) { killed++ })

	enemy := entity.NewChaser(cfg, physics.Vec(300, 300), 0, 1)
	enemy.HP = 20
	m.Instantiate(enemy, entity.Infinite)
	bullet := entity.NewBullet(cfg.Bullet, physics.Vec(300, 300), physics.Vec(1, 0), entity.TagPlayer, entity.TagBullet)
	m.Instantiate(bullet, cfg.Bullet.Lifetime)

	m.Update(1.0 / 60)

	if m.Contains(enemy) || !enemy.Dead {
		t.Fatal("enemy survived a 25 damage bullet with 20 hp")
	}
	if m.Score() != 100 || killed != 1 {
		t.Errorf("Score = %d, killed = %d, expected 100 and 1", m.Score(), killed)
	}
	if got := m.CountTagged(entity.TagHazard); got != 1 {
		t.Errorf("hazards = %d, expected the death explosion after the pass", got)
	}

	for i := 0; i < 10; i++ {
		m.Update(1.0 / 60)
	}
	if m.Contains(bullet) {
		t.Error("bullet still registered after its shrink")
	}
}
