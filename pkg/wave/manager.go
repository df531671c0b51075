// pkg/wave/manager.go
package wave

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/entity"
	"github.com/opd-ai/go-arena/pkg/event"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// State is the scheduling phase of the wave manager
type State int

const (
	Idle State = iota
	Spawning
	AwaitingClear
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spawning:
		return "spawning"
	case AwaitingClear:
		return "awaiting_clear"
	default:
		return "unknown"
	}
}

// Spawner is the part of the entity manager the scheduler needs
type Spawner interface {
	Instantiate(e entity.Entity, lifetime float64) entity.Entity
	CountTagged(tag entity.Tag) int
	Arena() physics.Rect
	Rand() *rand.Rand
	Publish(e event.Event)
}

// Manager trickles enemies into the arena on a timer and starts the next
// wave as soon as the current one has been cleared.
type Manager struct {
	Curve          Curve
	Index          int
	Spawned        int
	SinceLastSpawn float64
	State          State

	config *config.GameConfig
	world  Spawner
}

// NewManager creates an idle scheduler. The first StartNextWave begins the
// configured start wave.
func NewManager(cfg *config.GameConfig, world Spawner) *Manager {
	m := &Manager{
		Curve:  NewCurve(cfg.Wave),
		config: cfg,
		world:  world,
	}
	m.Reset()
	return m
}

// Reset returns the scheduler to Idle before the start wave
func (m *Manager) Reset() {
	m.Index = max(m.config.Wave.StartWave, 1) - 1
	m.Spawned = 0
	m.SinceLastSpawn = 0
	m.State = Idle
}

// InProgress reports whether the current wave is still spawning
func (m *Manager) InProgress() bool {
	return m.State == Spawning
}

// EnemyCount is the number of spawns the current wave issues
func (m *Manager) EnemyCount() int {
	return m.Curve.EnemyCount(m.Index)
}

// StartNextWave advances the index and begins spawning
func (m *Manager) StartNextWave() {
	m.Index++
	m.Spawned = 0
	m.SinceLastSpawn = 0
	m.State = Spawning
	m.world.Publish(event.NewWaveEvent(event.WaveStarted, m, m.Index, m.EnemyCount()))
}

// Update advances the schedule by dt seconds
func (m *Manager) Update(dt float64) {
	switch m.State {
	case Spawning:
		if m.Spawned >= m.EnemyCount() {
			m.State = AwaitingClear
			return
		}
		m.SinceLastSpawn += dt
		if m.SinceLastSpawn >= m.Curve.SpawnInterval(m.Index) {
			m.spawnEnemy()
			m.Spawned++
			m.SinceLastSpawn = 0
		}
		if m.Spawned >= m.EnemyCount() {
			m.State = AwaitingClear
		}
	case AwaitingClear:
		if m.world.CountTagged(entity.TagEnemy) > 0 {
			return
		}
		m.world.Publish(event.NewWaveEvent(event.WaveCleared, m, m.Index, m.Spawned))
		m.StartNextWave()
	}
}

// HPScale is the enemy hp multiplier of the current wave
func (m *Manager) HPScale() float64 {
	return 1 + m.config.Wave.HPPerWave*float64(max(m.Index-1, 0))
}

func (m *Manager) spawnEnemy() {
	rng := m.world.Rand()
	pos := m.world.Arena().RandomEdgePoint(rng)
	size := rng.Float64()

	var e *entity.Enemy
	switch m.pickKind(rng) {
	case entity.KindWanderer:
		e = entity.NewWanderer(m.config, pos, size, m.HPScale())
	case entity.KindDasher:
		e = entity.NewDasher(m.config, pos, size, m.HPScale())
	default:
		e = entity.NewChaser(m.config, pos, size, m.HPScale())
	}
	m.world.Instantiate(e, entity.Infinite)
	m.world.Publish(event.NewEntityEvent(event.EntitySpawned, m, e.ID(), e.Kind.String(), pos))
}

// pickKind draws an enemy kind by weight. Dashers are excluded before
// DasherMinWave.
func (m *Manager) pickKind(rng *rand.Rand) entity.Kind {
	w := m.config.Wave.Weights
	chaser := math.Max(w.Chaser, 0)
	wanderer := math.Max(w.Wanderer, 0)
	dasher := 0.0
	if m.Index >= m.config.Wave.DasherMinWave {
		dasher = math.Max(w.Dasher, 0)
	}

	total := chaser + wanderer + dasher
	if total <= 0 {
		return entity.KindChaser
	}
	r := rng.Float64() * total
	switch {
	case r < chaser:
		return entity.KindChaser
	case r < chaser+wanderer:
		return entity.KindWanderer
	default:
		return entity.KindDasher
	}
}
