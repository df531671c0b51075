// pkg/engine/game.go
package engine

import (
	"context"
	"math"
	"sync"

	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/entity"
	"github.com/opd-ai/go-arena/pkg/event"
	"github.com/opd-ai/go-arena/pkg/logging"
	"github.com/opd-ai/go-arena/pkg/physics"
	"github.com/opd-ai/go-arena/pkg/wave"
)

// GameStatus is the lifecycle phase of a game
type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusOver
)

func (s GameStatus) String() string {
	switch s {
	case GameStatusWaiting:
		return "waiting"
	case GameStatusActive:
		return "active"
	case GameStatusOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// updater is implemented by collaborators that animate over time, such as
// a shaking camera
type updater interface {
	Update(dt float64)
}

// Game runs the frame loop: pause handling, wave scheduling, the entity
// manager and game over detection.
type Game struct {
	Config   *config.GameConfig
	Manager  *Manager
	Waves    *wave.Manager
	EventBus *event.Bus
	Logger   *logging.Logger
	Status   GameStatus
	Clock    float64 // seconds of game time, paused frames included
	Frame    uint64

	lock            sync.RWMutex
	ctx             context.Context
	lastPauseToggle float64
}

// NewGame creates a game with the specified configuration. A nil logger
// discards all output.
func NewGame(cfg *config.GameConfig, logger *logging.Logger, opts ...Option) *Game {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	bus := event.NewEventBus()
	manager := NewManager(cfg, append([]Option{WithEventBus(bus)}, opts...)...)

	game := &Game{
		Config:          cfg,
		Manager:         manager,
		Waves:           wave.NewManager(cfg, manager),
		EventBus:        bus,
		Logger:          logger,
		ctx:             logging.WithSessionID(context.Background(), ""),
		lastPauseToggle: math.Inf(-1),
	}
	game.registerEventHandlers()
	return game
}

// SessionID identifies this game in log output
func (g *Game) SessionID() string {
	return logging.GetSessionID(g.ctx)
}

// Start spawns the player at the arena centre and begins the first wave
func (g *Game) Start() {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.startInternal()
}

func (g *Game) startInternal() {
	if g.Status == GameStatusActive {
		return
	}
	arena := g.Manager.Arena()
	g.Manager.Instantiate(entity.NewPlayer(g.Config, arena.Center), entity.Infinite)
	g.Status = GameStatusActive
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
	g.Logger.Info(g.ctx, "game started",
		"seed", g.Config.Seed,
		"arena_width", arena.Width,
		"arena_height", arena.Height,
	)
	g.Waves.StartNextWave()
}

// Restart clears the arena, resets score and waves and starts again
func (g *Game) Restart() {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.restartInternal()
}

func (g *Game) restartInternal() {
	g.Logger.Info(g.ctx, "game restarting", "score", g.Manager.Score(), "wave", g.Waves.Index)
	g.Manager.Clear()
	g.Manager.SetPaused(false)
	g.Waves.Reset()
	g.Status = GameStatusWaiting
	g.startInternal()
}

// Update advances the game by dt seconds
func (g *Game) Update(dt float64) {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.Clock += dt
	g.Frame++

	g.pollPause()
	if g.Manager.Input().Pressed(entity.ActionRestart) && g.Status == GameStatusOver {
		g.restartInternal()
	}
	if g.Status == GameStatusActive && !g.Manager.Paused() {
		g.Waves.Update(dt)
	}
	if cam, ok := g.Manager.Camera().(updater); ok {
		cam.Update(dt)
	}

	r := g.Manager.Renderer()
	r.Clear()
	g.Manager.Update(dt)
	r.Present()

	g.checkGameOver()
}

// pollPause toggles pause on the Pause action, at most once per debounce
// window of game time
func (g *Game) pollPause() {
	if !g.Manager.Input().Pressed(entity.ActionPause) {
		return
	}
	if g.Clock-g.lastPauseToggle < g.Config.Pause.Debounce {
		return
	}
	g.lastPauseToggle = g.Clock
	g.setPausedInternal(!g.Manager.Paused())
}

// SetPaused pauses or resumes the game
func (g *Game) SetPaused(paused bool) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.setPausedInternal(paused)
}

func (g *Game) setPausedInternal(paused bool) {
	if g.Manager.Paused() == paused {
		return
	}
	g.Manager.SetPaused(paused)

	eventType := event.GameResumed
	if paused {
		eventType = event.GamePaused
	}
	g.EventBus.Publish(&event.BaseEvent{
		EventType: eventType,
		Source:    g,
	})
	g.Logger.Debug(g.ctx, "pause toggled", "paused", paused, "clock", g.Clock)
}

// checkGameOver ends the game once the player has been removed
func (g *Game) checkGameOver() {
	if g.Status != GameStatusActive || g.Manager.Player() != nil {
		return
	}
	g.Status = GameStatusOver
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameEnded,
		Source:    g,
	})
	g.Logger.Info(g.ctx, "game over",
		"score", g.Manager.Score(),
		"wave", g.Waves.Index,
		"frames", g.Frame,
	)
}

// Run steps the game with a fixed dt. It stops after frames updates, or
// runs until ctx is cancelled when frames is zero.
func (g *Game) Run(ctx context.Context, frames int, dt float64) error {
	for i := 0; frames <= 0 || i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		g.Update(dt)
	}
	return nil
}

// GameState is a copy of the values a HUD displays
type GameState struct {
	Status      GameStatus
	Paused      bool
	Score       int
	Wave        int
	Enemies     int
	HP          float64
	MaxHP       float64
	BlastCharge float64
	Position    physics.Vector2D
}

// GetGameState returns a consistent snapshot for display
func (g *Game) GetGameState() GameState {
	g.lock.RLock()
	defer g.lock.RUnlock()

	state := GameState{
		Status:  g.Status,
		Paused:  g.Manager.Paused(),
		Score:   g.Manager.Score(),
		Wave:    g.Waves.Index,
		Enemies: g.Manager.CountTagged(entity.TagEnemy),
	}
	if p := g.Manager.Player(); p != nil {
		state.HP = p.HP
		state.MaxHP = p.MaxHP
		state.BlastCharge = 1 - p.BlastCooldownLeft()
		state.Position = p.Position
	}
	return state
}

// registerEventHandlers logs simulation events
func (g *Game) registerEventHandlers() {
	g.EventBus.Subscribe(event.WaveStarted, func(e event.Event) {
		if we, ok := e.(*event.WaveEvent); ok {
			g.Logger.Info(g.ctx, "wave started",
				"wave", we.Wave,
				"enemies", we.EnemyCount,
				"spawn_interval", g.Waves.Curve.SpawnInterval(we.Wave),
			)
		}
	})
	g.EventBus.Subscribe(event.WaveCleared, func(e event.Event) {
		if we, ok := e.(*event.WaveEvent); ok {
			g.Logger.Info(g.ctx, "wave cleared", "wave", we.Wave, "score", g.Manager.Score())
		}
	})
	g.EventBus.Subscribe(event.EntitySpawned, func(e event.Event) {
		if ee, ok := e.(*event.EntityEvent); ok {
			g.Logger.Debug(g.ctx, "enemy spawned",
				"kind", ee.Kind,
				"x", ee.Position.X,
				"y", ee.Position.Y,
			)
		}
	})
	g.EventBus.Subscribe(event.EnemyKilled, func(e event.Event) {
		if ee, ok := e.(*event.EntityEvent); ok {
			g.Logger.Debug(g.ctx, "enemy killed", "kind", ee.Kind, "entity_id", ee.EntityID)
		}
	})
	g.EventBus.Subscribe(event.PlayerDied, func(e event.Event) {
		g.Logger.Info(g.ctx, "player died", "score", g.Manager.Score(), "wave", g.Waves.Index)
	})
}
