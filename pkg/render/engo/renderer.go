package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-arena/pkg/entity"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// Z layers, back to front
const (
	zShadow float32 = iota
	zLine
	zSprite
	zText
)

const (
	lineWidth     = 2
	shadowOffset  = 4
	minSpriteSize = 2
)

// spriteSink is the part of common.RenderSystem the renderer needs
type spriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// renderEntity is one engo entity backing a sprite, shadow or line
type renderEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	seen bool
}

// spriteKey identifies a render entity across frames
type spriteKey struct {
	id     uint64
	part   int
	shadow bool
}

// kindColors tints the white textures per kind
var kindColors = map[entity.Kind]color.RGBA{
	entity.KindPlayer:       {80, 220, 120, 255},
	entity.KindBullet:       {255, 230, 90, 255},
	entity.KindChaser:       {230, 70, 70, 255},
	entity.KindWanderer:     {200, 90, 220, 255},
	entity.KindDasher:       {255, 150, 40, 255},
	entity.KindExplosion:    {255, 110, 40, 255},
	entity.KindBlast:        {90, 200, 255, 255},
	entity.KindDamageNumber: {255, 255, 255, 255},
	entity.KindPickup:       {60, 255, 90, 255},
	entity.KindAimLine:      {160, 40, 40, 160},
}

var (
	flashColor  = color.RGBA{255, 255, 255, 255}
	shadowColor = color.RGBA{0, 0, 0, 90}
)

// EngoRenderer implements entity.Renderer on top of the engo RenderSystem.
// Each sprite id maps to a persistent render entity; entities not drawn
// during a frame are removed on Present.
type EngoRenderer struct {
	sink   spriteSink
	assets *AssetManager

	sprites map[spriteKey]*renderEntity
	lines   []*renderEntity
	used    int
}

// NewEngoRenderer creates a renderer adding its entities to sink
func NewEngoRenderer(sink spriteSink, assets *AssetManager) *EngoRenderer {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &EngoRenderer{
		sink:    sink,
		assets:  assets,
		sprites: make(map[spriteKey]*renderEntity),
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, e := range r.sprites {
		e.seen = false
	}
	r.used = 0
}

// Present implements entity.Renderer. Engo draws on its own; this only
// retires entities whose sprites were not drawn this frame.
func (r *EngoRenderer) Present() {
	r.cleanupInactiveEntities()
	for i, line := range r.lines {
		line.Hidden = i >= r.used
	}
}

// Draw implements entity.Renderer
func (r *EngoRenderer) Draw(s entity.Sprite) {
	z := zSprite
	if s.Text != "" {
		z = zText
	}
	e := r.getOrCreateEntity(spriteKey{id: s.ID, part: s.Part}, z)
	tint := kindColor(s.Kind)
	if s.Flash {
		tint = flashColor
	}
	tint.A = alpha(tint.A, s.Alpha)

	if s.Text != "" {
		font := r.assets.GetFont()
		if font == nil {
			e.Hidden = true
			return
		}
		e.Drawable = common.Text{Font: font, Text: s.Text}
		e.Color = tint
		e.Scale = engo.Point{X: 1, Y: 1}
		e.Hidden = false
		w, h, _ := font.TextDimensions(s.Text)
		e.Position = engo.Point{
			X: float32(s.Position.X) - float32(w)/2,
			Y: float32(s.Position.Y) - float32(h)/2,
		}
		e.Width, e.Height = float32(w), float32(h)
		return
	}

	r.placeSprite(e, s.Position, s.Radius*s.Scale, r.assets.GetSprite(s.Kind))
	e.Color = tint
}

// DrawShadow implements entity.Renderer
func (r *EngoRenderer) DrawShadow(s entity.Sprite) {
	e := r.getOrCreateEntity(spriteKey{id: s.ID, part: s.Part, shadow: true}, zShadow)
	pos := s.Position.Add(physics.Vec(shadowOffset, shadowOffset))
	r.placeSprite(e, pos, s.Radius*s.Scale, r.assets.GetShadow())
	c := shadowColor
	c.A = alpha(c.A, s.Alpha)
	e.Color = c
}

// DrawLine implements entity.Renderer. Lines are thin rectangles rotated
// about their start point and reused frame to frame.
func (r *EngoRenderer) DrawLine(from, to physics.Vector2D, kind entity.Kind) {
	e := r.nextLine()
	delta := to.Sub(from)

	e.Drawable = common.Rectangle{}
	e.Color = kindColor(kind)
	e.Hidden = false
	e.Position = engo.Point{X: float32(from.X), Y: float32(from.Y)}
	e.Width = float32(delta.Length())
	e.Height = lineWidth
	e.Rotation = float32(delta.Angle() * 180 / math.Pi)
}

// placeSprite centres a square texture of the given radius on pos
func (r *EngoRenderer) placeSprite(e *renderEntity, pos physics.Vector2D, radius float64, drawable common.Drawable) {
	size := float32(math.Max(2*radius, minSpriteSize))
	e.Drawable = drawable
	e.Hidden = drawable == nil
	e.Scale = engo.Point{X: size / spriteSize, Y: size / spriteSize}
	e.Position = engo.Point{
		X: float32(pos.X) - size/2,
		Y: float32(pos.Y) - size/2,
	}
	e.Width = size
	e.Height = size
}

// getOrCreateEntity gets an existing render entity or creates a new one
// on layer z
func (r *EngoRenderer) getOrCreateEntity(key spriteKey, z float32) *renderEntity {
	e, exists := r.sprites[key]
	if !exists {
		e = &renderEntity{BasicEntity: ecs.NewBasic()}
		e.SetZIndex(z)
		r.sprites[key] = e
		r.sink.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
	}
	e.seen = true
	return e
}

// nextLine returns the next free line entity for this frame
func (r *EngoRenderer) nextLine() *renderEntity {
	if r.used == len(r.lines) {
		e := &renderEntity{BasicEntity: ecs.NewBasic()}
		e.SetZIndex(zLine)
		r.lines = append(r.lines, e)
		r.sink.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
	}
	e := r.lines[r.used]
	r.used++
	return e
}

// cleanupInactiveEntities removes entities that were not drawn this frame
func (r *EngoRenderer) cleanupInactiveEntities() {
	for key, e := range r.sprites {
		if !e.seen {
			r.sink.Remove(e.BasicEntity)
			delete(r.sprites, key)
		}
	}
}

// Len returns the number of live sprite and shadow entities
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

func kindColor(kind entity.Kind) color.RGBA {
	if c, ok := kindColors[kind]; ok {
		return c
	}
	return color.RGBA{255, 255, 255, 255}
}

// alpha scales a color channel by a [0, 1] opacity
func alpha(a uint8, opacity float64) uint8 {
	opacity = math.Max(0, math.Min(opacity, 1))
	return uint8(float64(a) * opacity)
}
