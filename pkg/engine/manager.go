// pkg/engine/manager.go
package engine

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/entity"
	"github.com/opd-ai/go-arena/pkg/event"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// Option configures the collaborators of a Manager
type Option func(*Manager)

// WithSound sets the sound collaborator
func WithSound(s entity.Sound) Option {
	return func(m *Manager) { m.sound = s }
}

// WithCamera sets the camera collaborator
func WithCamera(c entity.Camera) Option {
	return func(m *Manager) { m.camera = c }
}

// WithRenderer sets the renderer collaborator
func WithRenderer(r entity.Renderer) Option {
	return func(m *Manager) { m.renderer = r }
}

// WithInput sets the input collaborator
func WithInput(in entity.Input) Option {
	return func(m *Manager) { m.input = in }
}

// WithEventBus sets the bus that receives simulation events
func WithEventBus(b *event.Bus) Option {
	return func(m *Manager) { m.bus = b }
}

// WithRand replaces the seeded random source
func WithRand(r *rand.Rand) Option {
	return func(m *Manager) { m.rng = r }
}

// Manager owns every registered entity and drives their per-frame updates.
// It is the entity.World handed to each entity during its update.
type Manager struct {
	config   *config.GameConfig
	arena    physics.Rect
	entities []entity.Entity
	pending  []entity.Entity
	updating bool
	dirty    bool
	player   *entity.Player
	score    int
	paused   bool
	rng      *rand.Rand
	bus      *event.Bus

	sound    entity.Sound
	camera   entity.Camera
	renderer entity.Renderer
	input    entity.Input
}

// NewManager creates an empty manager for the given configuration. Missing
// collaborators are replaced by no-op implementations.
func NewManager(cfg *config.GameConfig, opts ...Option) *Manager {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := &Manager{
		config: cfg,
		arena:  physics.NewArena(cfg.Arena.Width, cfg.Arena.Height),
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.sound == nil {
		m.sound = entity.NopSound{}
	}
	if m.camera == nil {
		m.camera = entity.NopCamera{}
	}
	if m.renderer == nil {
		m.renderer = entity.NopRenderer{}
	}
	if m.input == nil {
		m.input = entity.NopInput{}
	}
	return m
}

// Instantiate registers e and returns it. A finite lifetime overrides the
// entity's own. Entities added during an update pass join the live
// collection when the pass ends.
func (m *Manager) Instantiate(e entity.Entity, lifetime float64) entity.Entity {
	c := e.Base()
	if c.Live() {
		return e
	}
	if !math.IsInf(lifetime, 1) {
		c.Lifetime = lifetime
	}
	c.SetLive(true)

	if p, ok := e.(*entity.Player); ok {
		m.player = p
	}

	if m.updating {
		// Destroyed and revived within the same pass: it is still held
		if !slices.Contains(m.entities, e) && !slices.Contains(m.pending, e) {
			m.pending = append(m.pending, e)
		}
		return e
	}
	m.entities = append(m.entities, e)
	m.sortByLayer()
	return e
}

// Destroy removes e from the world. Destroying an entity twice, or one that
// was never registered, does nothing.
func (m *Manager) Destroy(e entity.Entity) {
	c := e.Base()
	if !c.Live() {
		return
	}
	c.SetLive(false)

	if m.player != nil && entity.Entity(m.player) == e {
		m.player = nil
	}

	if m.updating {
		m.dirty = true
		return
	}
	m.compact()
}

// Update runs one frame over every live entity in layer order
func (m *Manager) Update(dt float64) {
	m.sortByLayer()
	m.updating = true

	// m.entities is not modified while updating; additions wait in
	// m.pending and removals only clear the live flag.
	for _, e := range m.entities {
		c := e.Base()
		if !c.Live() {
			continue
		}
		if !m.paused && c.Finite() {
			c.Lifetime -= dt
			if c.Lifetime <= 0 {
				m.Destroy(e)
				continue
			}
		}
		e.Update(m, dt)
	}

	m.updating = false
	m.flush()
}

// flush merges pending entities and drops removed ones after a pass
func (m *Manager) flush() {
	if m.dirty {
		m.compact()
	}
	if len(m.pending) == 0 {
		return
	}
	for _, e := range m.pending {
		if e.Base().Live() {
			m.entities = append(m.entities, e)
		}
	}
	m.pending = m.pending[:0]
	m.sortByLayer()
}

func (m *Manager) compact() {
	m.entities = slices.DeleteFunc(m.entities, func(e entity.Entity) bool {
		return !e.Base().Live()
	})
	m.pending = slices.DeleteFunc(m.pending, func(e entity.Entity) bool {
		return !e.Base().Live()
	})
	m.dirty = false
}

func (m *Manager) sortByLayer() {
	slices.SortStableFunc(m.entities, func(a, b entity.Entity) int {
		return a.Base().Layer - b.Base().Layer
	})
}

// Entities returns the registered entities in update order. During a pass
// the slice may still hold entities destroyed earlier in that pass; callers
// skip those by checking Live.
func (m *Manager) Entities() []entity.Entity {
	return m.entities
}

// Len returns the number of live entities, pending ones included
func (m *Manager) Len() int {
	n := 0
	for _, e := range m.entities {
		if e.Base().Live() {
			n++
		}
	}
	for _, e := range m.pending {
		if e.Base().Live() {
			n++
		}
	}
	return n
}

// Contains reports whether e is live in this manager
func (m *Manager) Contains(e entity.Entity) bool {
	if !e.Base().Live() {
		return false
	}
	return slices.Contains(m.entities, e) || slices.Contains(m.pending, e)
}

// CountTagged returns the number of live entities carrying tag
func (m *Manager) CountTagged(tag entity.Tag) int {
	n := 0
	count := func(list []entity.Entity) {
		for _, e := range list {
			c := e.Base()
			if c.Live() && c.Tags.Has(tag) {
				n++
			}
		}
	}
	count(m.entities)
	count(m.pending)
	return n
}

// Clear removes every entity and resets the score
func (m *Manager) Clear() {
	for _, e := range m.entities {
		e.Base().SetLive(false)
	}
	for _, e := range m.pending {
		e.Base().SetLive(false)
	}
	m.entities = nil
	m.pending = nil
	m.dirty = false
	m.player = nil
	m.score = 0
}

// Player returns the live player ship, or nil once it has been destroyed
func (m *Manager) Player() *entity.Player {
	return m.player
}

// AddScore increases the score. Negative deltas are ignored.
func (m *Manager) AddScore(n int) {
	if n <= 0 {
		return
	}
	m.score += n
	m.Publish(event.NewScoreEvent(m, m.score, n))
}

// Score returns the accumulated score
func (m *Manager) Score() int {
	return m.score
}

// SetPaused suspends or resumes lifetime decay and player logic
func (m *Manager) SetPaused(paused bool) {
	m.paused = paused
}

func (m *Manager) Paused() bool               { return m.paused }
func (m *Manager) Arena() physics.Rect        { return m.arena }
func (m *Manager) Rand() *rand.Rand           { return m.rng }
func (m *Manager) Config() *config.GameConfig { return m.config }
func (m *Manager) Sound() entity.Sound        { return m.sound }
func (m *Manager) Camera() entity.Camera      { return m.camera }
func (m *Manager) Renderer() entity.Renderer  { return m.renderer }
func (m *Manager) Input() entity.Input        { return m.input }
func (m *Manager) Publish(e event.Event)      { m.bus.Publish(e) }
