package engo

import (
	"image/color"
	"math"
	"testing"

	"github.com/opd-ai/go-arena/pkg/entity"
	"github.com/opd-ai/go-arena/pkg/physics"
)

var _ entity.Renderer = (*EngoRenderer)(nil)

func newTestEngoRenderer() (*EngoRenderer, *fakeSink) {
	sink := newFakeSink()
	return NewEngoRenderer(sink, nil), sink
}

func TestEngoRenderer_ReusesEntityPerSprite(t *testing.T) {
	r, sink := newTestEngoRenderer()
	s := entity.Sprite{ID: 1, Kind: entity.KindPlayer, Position: physics.Vec(100, 100), Radius: 16, Scale: 1, Alpha: 1}

	for i := 0; i < 3; i++ {
		r.Clear()
		r.Draw(s)
		r.DrawShadow(s)
		r.Present()
	}

	if len(sink.added) != 2 {
		t.Errorf("render entities = %d, expected one sprite and one shadow", len(sink.added))
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", r.Len())
	}
}

func TestEngoRenderer_RemovesUndrawnSprites(t *testing.T) {
	r, sink := newTestEngoRenderer()
	a := entity.Sprite{ID: 1, Kind: entity.KindChaser, Scale: 1, Alpha: 1}
	b := entity.Sprite{ID: 2, Kind: entity.KindBullet, Scale: 1, Alpha: 1}

	r.Clear()
	r.Draw(a)
	r.Draw(b)
	r.Present()

	r.Clear()
	r.Draw(a)
	r.Present()

	if r.Len() != 1 {
		t.Errorf("Len() = %d, expected 1 after the bullet disappeared", r.Len())
	}
	if len(sink.removed) != 1 {
		t.Errorf("removed %d entities, expected 1", len(sink.removed))
	}
}

func TestEngoRenderer_PartsOfOneEntity(t *testing.T) {
	r, sink := newTestEngoRenderer()
	center := entity.Sprite{ID: 5, Kind: entity.KindExplosion, Position: physics.Vec(100, 100), Radius: 20, Scale: 1, Alpha: 1}
	burst := center
	burst.Part = 1
	burst.Position = physics.Vec(110, 100)

	r.Clear()
	r.Draw(center)
	r.Draw(burst)
	r.Present()

	if len(sink.added) != 2 || r.Len() != 2 {
		t.Errorf("render entities = %d, expected one per part", len(sink.added))
	}
	if r.sprites[spriteKey{id: 5}] == r.sprites[spriteKey{id: 5, part: 1}] {
		t.Error("parts share a render entity")
	}
}

func TestEngoRenderer_PlaceSprite(t *testing.T) {
	r, _ := newTestEngoRenderer()
	r.Clear()
	r.Draw(entity.Sprite{ID: 1, Kind: entity.KindChaser, Position: physics.Vec(100, 50), Radius: 20, Scale: 0.5, Alpha: 1})

	e := r.sprites[spriteKey{id: 1}]
	if e.Width != 20 || e.Height != 20 {
		t.Errorf("size = %vx%v, expected 20x20", e.Width, e.Height)
	}
	if e.Position.X != 90 || e.Position.Y != 40 {
		t.Errorf("Position = %v, expected the top-left corner (90, 40)", e.Position)
	}
	if e.Scale.X != 20.0/spriteSize {
		t.Errorf("Scale = %v, expected %v", e.Scale.X, 20.0/spriteSize)
	}
	if !e.Hidden {
		t.Error("Hidden = false, expected sprites to stay hidden until textures are loaded")
	}
}

func TestEngoRenderer_Colors(t *testing.T) {
	tests := []struct {
		name     string
		sprite   entity.Sprite
		expected color.RGBA
	}{
		{
			name:     "kind_tint",
			sprite:   entity.Sprite{ID: 1, Kind: entity.KindChaser, Alpha: 1},
			expected: kindColors[entity.KindChaser],
		},
		{
			name:     "flash",
			sprite:   entity.Sprite{ID: 1, Kind: entity.KindChaser, Alpha: 1, Flash: true},
			expected: flashColor,
		},
		{
			name:     "half_alpha",
			sprite:   entity.Sprite{ID: 1, Kind: entity.KindExplosion, Alpha: 0.5},
			expected: color.RGBA{255, 110, 40, 127},
		},
		{
			name:     "unknown_kind",
			sprite:   entity.Sprite{ID: 1, Kind: entity.Kind(99), Alpha: 1},
			expected: color.RGBA{255, 255, 255, 255},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestEngoRenderer()
			r.Draw(tt.sprite)
			if got := r.sprites[spriteKey{id: 1}].Color; got != tt.expected {
				t.Errorf("Color = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestEngoRenderer_TextWithoutFont(t *testing.T) {
	r, _ := newTestEngoRenderer()
	r.Draw(entity.Sprite{ID: 3, Kind: entity.KindDamageNumber, Text: "10", Alpha: 1})

	if e := r.sprites[spriteKey{id: 3}]; !e.Hidden {
		t.Error("Hidden = false, expected text to be hidden without a font")
	}
}

func TestEngoRenderer_Lines(t *testing.T) {
	r, sink := newTestEngoRenderer()

	r.Clear()
	r.DrawLine(physics.Vec(0, 0), physics.Vec(0, 10), entity.KindAimLine)
	r.DrawLine(physics.Vec(0, 0), physics.Vec(3, 4), entity.KindAimLine)
	r.Present()

	if len(r.lines) != 2 || len(sink.added) != 2 {
		t.Fatalf("lines = %d, added = %d, expected 2", len(r.lines), len(sink.added))
	}
	first := r.lines[0]
	if first.Width != 10 || math.Abs(float64(first.Rotation)-90) > 1e-4 {
		t.Errorf("line = width %v rotation %v, expected width 10 rotation 90", first.Width, first.Rotation)
	}

	r.Clear()
	r.DrawLine(physics.Vec(0, 0), physics.Vec(5, 0), entity.KindAimLine)
	r.Present()

	if len(r.lines) != 2 {
		t.Errorf("lines = %d, expected entities to be reused", len(r.lines))
	}
	if r.lines[0].Hidden || !r.lines[1].Hidden {
		t.Errorf("hidden = %v, %v, expected only the unused line hidden", r.lines[0].Hidden, r.lines[1].Hidden)
	}
}

func TestAlpha(t *testing.T) {
	tests := []struct {
		name     string
		opacity  float64
		expected uint8
	}{
		{"opaque", 1, 200},
		{"half", 0.5, 100},
		{"clamped_high", 2, 200},
		{"clamped_low", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alpha(200, tt.opacity); got != tt.expected {
				t.Errorf("alpha(200, %v) = %d, expected %d", tt.opacity, got, tt.expected)
			}
		})
	}
}
