package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-arena/pkg/engine"
	"github.com/opd-ai/go-arena/pkg/render"
)

const hudMargin = 10

// hudText is the status line entity, drawn in screen space
type hudText struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// HUDSystem shows the game status line in the top-left corner
type HUDSystem struct {
	state func() engine.GameState
	font  *common.Font
	text  *hudText
	line  string

	hudColor  color.Color
	overColor color.Color
}

// NewHUDSystem creates a HUD reading snapshots from state
func NewHUDSystem(state func() engine.GameState) *HUDSystem {
	return &HUDSystem{
		state:     state,
		hudColor:  color.RGBA{255, 255, 255, 255},
		overColor: color.RGBA{255, 80, 80, 255},
	}
}

// Attach creates the text entity in sink using font
func (hud *HUDSystem) Attach(sink spriteSink, font *common.Font) {
	if font == nil {
		return
	}
	hud.font = font
	hud.text = &hudText{BasicEntity: ecs.NewBasic()}
	hud.text.Drawable = common.Text{Font: font}
	hud.text.Color = hud.hudColor
	hud.text.SetShader(common.HUDShader)
	hud.text.SetZIndex(zText + 1)
	hud.text.Position = engo.Point{X: hudMargin, Y: hudMargin}
	sink.Add(&hud.text.BasicEntity, &hud.text.RenderComponent, &hud.text.SpaceComponent)
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity) {}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the status line when it changes
func (hud *HUDSystem) Update(dt float32) {
	state := hud.state()
	line := render.StatusLine(state)
	if line == hud.line {
		return
	}
	hud.line = line

	if hud.text == nil {
		return
	}
	hud.text.Drawable = common.Text{Font: hud.font, Text: line}
	hud.text.Color = hud.hudColor
	if state.Status == engine.GameStatusOver {
		hud.text.Color = hud.overColor
	}
}

// Line returns the text currently shown
func (hud *HUDSystem) Line() string {
	return hud.line
}
