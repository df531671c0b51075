package entity

import "github.com/opd-ai/go-arena/pkg/physics"

// Kind identifies what a sprite depicts
type Kind int

const (
	KindPlayer Kind = iota
	KindBullet
	KindChaser
	KindWanderer
	KindDasher
	KindExplosion
	KindBlast
	KindDamageNumber
	KindPickup
	KindAimLine
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBullet:
		return "bullet"
	case KindChaser:
		return "chaser"
	case KindWanderer:
		return "wanderer"
	case KindDasher:
		return "dasher"
	case KindExplosion:
		return "explosion"
	case KindBlast:
		return "blast"
	case KindDamageNumber:
		return "damage_number"
	case KindPickup:
		return "pickup"
	case KindAimLine:
		return "aim_line"
	default:
		return "unknown"
	}
}

// Sprite is everything a renderer needs to draw one entity
type Sprite struct {
	ID       uint64
	Part     int // tells apart several sprites drawn by one entity
	Kind     Kind
	Position physics.Vector2D
	Radius   float64
	Scale    float64
	Facing   physics.Vector2D
	Flash    bool
	Alpha    float64
	Text     string
}

// Renderer handles rendering game entities
type Renderer interface {
	Clear()
	Present()
	Draw(s Sprite)
	DrawShadow(s Sprite)
	DrawLine(from, to physics.Vector2D, kind Kind)
}

// NopRenderer discards all draw calls
type NopRenderer struct{}

func (NopRenderer) Clear()                                 {}
func (NopRenderer) Present()                               {}
func (NopRenderer) Draw(Sprite)                            {}
func (NopRenderer) DrawShadow(Sprite)                      {}
func (NopRenderer) DrawLine(_, _ physics.Vector2D, _ Kind) {}
