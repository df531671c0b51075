package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-arena/pkg/entity"
)

const (
	// spriteSize is the edge length in pixels of every generated texture.
	// The renderer scales it to the sprite radius.
	spriteSize = 32

	fontURL  = "goregular.ttf"
	fontSize = 16
)

// AssetManager handles loading and managing game assets
type AssetManager struct {
	// sprites by kind
	sprites map[entity.Kind]common.Drawable

	// shadow is a soft disc drawn under actors
	shadow common.Drawable

	font *common.Font
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: make(map[entity.Kind]common.Drawable),
	}
}

// LoadAssets builds every texture and the HUD font. It needs an OpenGL
// context, so it runs from the scene setup.
func (am *AssetManager) LoadAssets() error {
	disc := discPattern(spriteSize)
	ring := ringPattern(spriteSize, 3)

	for _, kind := range []entity.Kind{
		entity.KindPlayer,
		entity.KindBullet,
		entity.KindChaser,
		entity.KindWanderer,
		entity.KindDasher,
		entity.KindPickup,
	} {
		am.sprites[kind] = am.createSprite(spriteSize, spriteSize, disc)
	}
	am.sprites[entity.KindExplosion] = am.createSprite(spriteSize, spriteSize, ring)
	am.sprites[entity.KindBlast] = am.createSprite(spriteSize, spriteSize, ring)
	am.shadow = am.createSprite(spriteSize, spriteSize, disc)

	return am.loadFont()
}

func (am *AssetManager) loadFont() error {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	font := &common.Font{
		URL:  fontURL,
		FG:   color.White,
		Size: fontSize,
	}
	if err := font.CreatePreloaded(); err != nil {
		return fmt.Errorf("failed to create font: %w", err)
	}
	am.font = font
	return nil
}

// discPattern returns a filled circle touching the edges of a size square
func discPattern(size int) [][]int {
	r := float64(size) / 2
	pattern := make([][]int, size)
	for y := range pattern {
		pattern[y] = make([]int, size)
		for x := range pattern[y] {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				pattern[y][x] = 1
			}
		}
	}
	return pattern
}

// ringPattern returns a circle outline of the given thickness
func ringPattern(size, thickness int) [][]int {
	outer := float64(size) / 2
	inner := outer - float64(thickness)
	pattern := make([][]int, size)
	for y := range pattern {
		pattern[y] = make([]int, size)
		for x := range pattern[y] {
			dx := float64(x) + 0.5 - outer
			dy := float64(y) + 0.5 - outer
			d := dx*dx + dy*dy
			if d <= outer*outer && d >= inner*inner {
				pattern[y][x] = 1
			}
		}
	}
	return pattern
}

// createSprite creates a sprite from a 2D pattern
func (am *AssetManager) createSprite(width, height int, pattern [][]int) common.Drawable {
	img := am.createBaseImage(width, height)
	am.drawPatternOnImage(img, pattern, width, height)
	return am.convertToEngoTexture(img)
}

// createBaseImage creates a transparent RGBA image with the specified dimensions.
func (am *AssetManager) createBaseImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)
	return img
}

// drawPatternOnImage draws a 2D pixel pattern onto the provided RGBA image.
// Pixels are white so the render component color tints them.
func (am *AssetManager) drawPatternOnImage(img *image.RGBA, pattern [][]int, width, height int) {
	for y, row := range pattern {
		if y >= height {
			break
		}
		for x, pixel := range row {
			if x >= width {
				break
			}
			if pixel == 1 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
}

// convertToEngoTexture converts an RGBA image to an Engo-compatible texture.
func (am *AssetManager) convertToEngoTexture(img *image.RGBA) common.Drawable {
	bounds := img.Bounds()
	nrgbaImg := image.NewNRGBA(bounds)
	draw.Draw(nrgbaImg, bounds, img, bounds.Min, draw.Src)

	texture := common.NewImageObject(nrgbaImg)
	return common.NewTextureSingle(texture)
}

// GetSprite returns the sprite for a kind. Unknown kinds fall back to the
// player disc; before LoadAssets every lookup is nil.
func (am *AssetManager) GetSprite(kind entity.Kind) common.Drawable {
	if sprite, exists := am.sprites[kind]; exists {
		return sprite
	}
	return am.sprites[entity.KindPlayer]
}

// GetShadow returns the shadow texture
func (am *AssetManager) GetShadow() common.Drawable {
	return am.shadow
}

// GetFont returns the HUD font, nil before LoadAssets
func (am *AssetManager) GetFont() *common.Font {
	return am.font
}
