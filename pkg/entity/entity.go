// pkg/entity/entity.go
package entity

import (
	"math"

	"github.com/EngoEngine/ecs"
)

// Infinite is the lifetime of entities that never expire on their own
var Infinite = math.Inf(1)

// Update and draw order. Lower layers update and draw first.
const (
	LayerPickup       = 0
	LayerBullet       = 1
	LayerEnemy        = 2
	LayerPlayer       = 3
	LayerEffect       = 5
	LayerDamageNumber = 100
)

// Entity is the base interface for all game objects
type Entity interface {
	Base() *Core
	Update(w World, dt float64)
	Draw(r Renderer)
	DrawShadow(r Renderer)
}

// Core contains the identity and lifecycle state shared by every entity
type Core struct {
	ecs.BasicEntity
	Tags     Tags
	Lifetime float64
	Layer    int
	live     bool
}

// NewCore creates a core with a fresh id and an infinite lifetime
func NewCore(layer int, tags ...Tag) Core {
	return Core{
		BasicEntity: ecs.NewBasic(),
		Tags:        NewTags(tags...),
		Lifetime:    Infinite,
		Layer:       layer,
	}
}

// Base returns the core itself so embedding types satisfy Entity
func (c *Core) Base() *Core {
	return c
}

// Live reports whether the entity is registered with a manager
func (c *Core) Live() bool {
	return c.live
}

// SetLive is called by the manager on registration and removal
func (c *Core) SetLive(live bool) {
	c.live = live
}

// Finite reports whether the entity has a lifetime countdown
func (c *Core) Finite() bool {
	return !math.IsInf(c.Lifetime, 1)
}
