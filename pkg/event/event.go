// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-arena/pkg/physics"
)

// Type represents the type of event
type Type string

// Common event types
const (
	EntitySpawned   Type = "entity_spawned"
	EnemyKilled     Type = "enemy_killed"
	PlayerDamaged   Type = "player_damaged"
	PlayerDied      Type = "player_died"
	PickupCollected Type = "pickup_collected"
	WaveStarted     Type = "wave_started"
	WaveCleared     Type = "wave_cleared"
	ScoreChanged    Type = "score_changed"
	GameStarted     Type = "game_started"
	GameEnded       Type = "game_ended"
	GamePaused      Type = "game_paused"
	GameResumed     Type = "game_resumed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it from the bus
// and is safe to call more than once.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine and may subscribe or publish themselves.
func (b *Bus) Publish(event Event) {
	if b == nil || event == nil {
		return
	}

	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	snapshot := make([]Handler, len(regs))
	for i, r := range regs {
		snapshot[i] = r.handler
	}
	b.mu.RUnlock()

	for _, handler := range snapshot {
		handler(event)
	}
}

// Specific event implementations

// EntityEvent reports a lifecycle change of a single entity
type EntityEvent struct {
	BaseEvent
	EntityID uint64
	Kind     string
	Position physics.Vector2D
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, entityID uint64, kind string, pos physics.Vector2D) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityID: entityID,
		Kind:     kind,
		Position: pos,
	}
}

// DamageEvent contains information about damage dealt to an actor
type DamageEvent struct {
	BaseEvent
	TargetID  uint64
	Amount    float64
	Remaining float64
}

// NewDamageEvent creates a new damage event
func NewDamageEvent(eventType Type, source interface{}, targetID uint64, amount, remaining float64) *DamageEvent {
	return &DamageEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		TargetID:  targetID,
		Amount:    amount,
		Remaining: remaining,
	}
}

// WaveEvent contains information about wave progression
type WaveEvent struct {
	BaseEvent
	Wave       int
	EnemyCount int
}

// NewWaveEvent creates a new wave event
func NewWaveEvent(eventType Type, source interface{}, wave, enemyCount int) *WaveEvent {
	return &WaveEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Wave:       wave,
		EnemyCount: enemyCount,
	}
}

// ScoreEvent contains the running score after a change
type ScoreEvent struct {
	BaseEvent
	Score int
	Delta int
}

// NewScoreEvent creates a new score event
func NewScoreEvent(source interface{}, score, delta int) *ScoreEvent {
	return &ScoreEvent{
		BaseEvent: BaseEvent{
			EventType: ScoreChanged,
			Source:    source,
		},
		Score: score,
		Delta: delta,
	}
}
