package entity

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/event"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// recordingSound captures every Play call
type recordingSound struct {
	played []string
}

func (s *recordingSound) Play(name string) {
	s.played = append(s.played, name)
}

func (s *recordingSound) count(name string) int {
	n := 0
	for _, p := range s.played {
		if p == name {
			n++
		}
	}
	return n
}

// shakeCall captures the parameters of a Shake call
type shakeCall struct {
	Intensity float64
	Duration  float64
}

// recordingCamera captures every Shake call
type recordingCamera struct {
	shakes []shakeCall
}

func (c *recordingCamera) Shake(intensity, duration float64) {
	c.shakes = append(c.shakes, shakeCall{intensity, duration})
}

// recordingRenderer captures draw calls in order
type recordingRenderer struct {
	calls   []string
	sprites []Sprite
	lines   int
}

func (r *recordingRenderer) Clear()   {}
func (r *recordingRenderer) Present() {}

func (r *recordingRenderer) Draw(s Sprite) {
	r.calls = append(r.calls, "draw:"+s.Kind.String())
	r.sprites = append(r.sprites, s)
}

func (r *recordingRenderer) DrawShadow(s Sprite) {
	r.calls = append(r.calls, "shadow:"+s.Kind.String())
}

func (r *recordingRenderer) DrawLine(_, _ physics.Vector2D, _ Kind) {
	r.lines++
}

// fakeInput is a scripted input source
type fakeInput struct {
	pressed map[Action]bool
	pointer physics.Vector2D
}

func (in *fakeInput) Pressed(a Action) bool     { return in.pressed[a] }
func (in *fakeInput) Pointer() physics.Vector2D { return in.pointer }

// fakeWorld is a minimal World with the manager's lifetime and removal rules
type fakeWorld struct {
	cfg      *config.GameConfig
	entities []Entity
	score    int
	paused   bool
	rng      *rand.Rand
	sound    *recordingSound
	camera   *recordingCamera
	renderer *recordingRenderer
	input    *fakeInput
	events   []event.Event
}

func testConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Enemy.GrowTime = 0
	cfg.Enemy.DropChance = 0
	return cfg
}

func newFakeWorld(cfg *config.GameConfig) *fakeWorld {
	if cfg == nil {
		cfg = testConfig()
	}
	return &fakeWorld{
		cfg:      cfg,
		rng:      rand.New(rand.NewPCG(1, 2)),
		sound:    &recordingSound{},
		camera:   &recordingCamera{},
		renderer: &recordingRenderer{},
		input:    &fakeInput{pressed: make(map[Action]bool)},
	}
}

func (w *fakeWorld) Instantiate(e Entity, lifetime float64) Entity {
	if !math.IsInf(lifetime, 1) {
		e.Base().Lifetime = lifetime
	}
	e.Base().SetLive(true)
	w.entities = append(slices.Clone(w.entities), e)
	slices.SortStableFunc(w.entities, func(a, b Entity) int {
		return a.Base().Layer - b.Base().Layer
	})
	return e
}

func (w *fakeWorld) Destroy(e Entity) {
	if !e.Base().Live() {
		return
	}
	e.Base().SetLive(false)
	w.entities = slices.DeleteFunc(slices.Clone(w.entities), func(x Entity) bool { return x == e })
}

func (w *fakeWorld) Entities() []Entity { return w.entities }

func (w *fakeWorld) Player() *Player {
	for _, e := range w.entities {
		if p, ok := e.(*Player); ok && p.Live() {
			return p
		}
	}
	return nil
}

func (w *fakeWorld) AddScore(n int)             { w.score += n }
func (w *fakeWorld) Paused() bool               { return w.paused }
func (w *fakeWorld) Arena() physics.Rect        { return physics.NewArena(w.cfg.Arena.Width, w.cfg.Arena.Height) }
func (w *fakeWorld) Rand() *rand.Rand           { return w.rng }
func (w *fakeWorld) Config() *config.GameConfig { return w.cfg }
func (w *fakeWorld) Publish(e event.Event)      { w.events = append(w.events, e) }
func (w *fakeWorld) Sound() Sound               { return w.sound }
func (w *fakeWorld) Camera() Camera             { return w.camera }
func (w *fakeWorld) Renderer() Renderer         { return w.renderer }
func (w *fakeWorld) Input() Input               { return w.input }

// step runs one manager-style pass over a snapshot of the entities
func (w *fakeWorld) step(dt float64) {
	for _, e := range slices.Clone(w.entities) {
		c := e.Base()
		if !c.Live() {
			continue
		}
		if !w.paused && c.Finite() {
			c.Lifetime -= dt
			if c.Lifetime <= 0 {
				w.Destroy(e)
				continue
			}
		}
		e.Update(w, dt)
	}
}

func (w *fakeWorld) countKind(kind Kind) int {
	n := 0
	for _, e := range w.entities {
		if a, ok := e.(ActorEntity); ok && a.State().Kind == kind {
			n++
		}
		if _, ok := e.(*DamageNumber); ok && kind == KindDamageNumber {
			n++
		}
	}
	return n
}

func (w *fakeWorld) eventCount(t event.Type) int {
	n := 0
	for _, e := range w.events {
		if e.GetType() == t {
			n++
		}
	}
	return n
}

func (w *fakeWorld) contains(e Entity) bool {
	return slices.Contains(w.entities, e)
}
