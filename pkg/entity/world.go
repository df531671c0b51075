package entity

import (
	"math/rand/v2"

	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/event"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// Sound effect names played by the simulation
const (
	SoundHit       = "hit"
	SoundExplosion = "explosion"
	SoundShoot     = "shoot"
	SoundBlast     = "blast"
	SoundPickup    = "pickup"
)

// Sound plays named effects. Unknown names must be ignored.
type Sound interface {
	Play(name string)
}

// Camera receives screen shake requests
type Camera interface {
	Shake(intensity, duration float64)
}

// Action is a logical input the player can hold
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionFire
	ActionBlast
	ActionPause
	ActionRestart
)

// Input is polled once per frame
type Input interface {
	Pressed(a Action) bool
	Pointer() physics.Vector2D
}

// World is the context passed to every entity update. It is implemented by
// the entity manager; entities never hold on to it between frames.
type World interface {
	Instantiate(e Entity, lifetime float64) Entity
	Destroy(e Entity)
	// Entities returns the live entities in update order. The slice is
	// owned by the world and must not be modified.
	Entities() []Entity
	Player() *Player
	AddScore(n int)
	Paused() bool
	Arena() physics.Rect
	Rand() *rand.Rand
	Config() *config.GameConfig
	Publish(e event.Event)

	Sound() Sound
	Camera() Camera
	Renderer() Renderer
	Input() Input
}

// NopSound ignores every request
type NopSound struct{}

func (NopSound) Play(string) {}

// NopCamera ignores every request
type NopCamera struct{}

func (NopCamera) Shake(_, _ float64) {}

// NopInput never reports a pressed action
type NopInput struct{}

func (NopInput) Pressed(Action) bool       { return false }
func (NopInput) Pointer() physics.Vector2D { return physics.Vector2D{} }
