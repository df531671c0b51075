package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-arena/pkg/physics"
	"github.com/opd-ai/go-arena/pkg/render"
)

// CameraSystem keeps the engo camera centred on the arena, displaced by
// the current screen shake, and handles zoom input.
type CameraSystem struct {
	arena physics.Rect
	shake render.Offsetter

	// Camera properties
	zoom    float32
	minZoom float32
	maxZoom float32

	// Current camera state
	currentPos physics.Vector2D
	sentPos    physics.Vector2D
	sentZoom   float32

	dispatch func(engo.Message)
	buttons  ButtonSource
}

// NewCameraSystem creates a camera over arena. shake may be nil.
func NewCameraSystem(arena physics.Rect, shake render.Offsetter) *CameraSystem {
	return &CameraSystem{
		arena:      arena,
		shake:      shake,
		zoom:       1.0,
		minZoom:    0.5,
		maxZoom:    3.0,
		currentPos: arena.Center,
		sentPos:    arena.Center,
		sentZoom:   1.0,
		dispatch:   func(m engo.Message) { engo.Mailbox.Dispatch(m) },
		buttons:    engoButtons{},
	}
}

// Add satisfies the ecs.System interface
func (cs *CameraSystem) Add(basic *ecs.BasicEntity) {}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update applies zoom input and the current shake to the camera
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()

	cs.currentPos = cs.arena.Center
	if cs.shake != nil {
		cs.currentPos = cs.currentPos.Add(cs.shake.Offset())
	}

	cs.applyCameraTransform()
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	if cs.buttons.Down(buttonZoomIn) {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if cs.buttons.Down(buttonZoomOut) {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if cs.buttons.JustPressed(buttonResetZoom) {
		cs.SetZoom(1.0)
	}
}

// applyCameraTransform sends camera messages for whatever changed since
// the last frame
func (cs *CameraSystem) applyCameraTransform() {
	if cs.currentPos.X != cs.sentPos.X {
		cs.dispatch(common.CameraMessage{Axis: common.XAxis, Value: float32(cs.currentPos.X)})
	}
	if cs.currentPos.Y != cs.sentPos.Y {
		cs.dispatch(common.CameraMessage{Axis: common.YAxis, Value: float32(cs.currentPos.Y)})
	}
	if cs.zoom != cs.sentZoom {
		cs.dispatch(common.CameraMessage{Axis: common.ZAxis, Value: cs.zoom})
	}
	cs.sentPos = cs.currentPos
	cs.sentZoom = cs.zoom
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

// clampZoom ensures zoom is within valid bounds
func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// GetCurrentPosition returns the current camera position
func (cs *CameraSystem) GetCurrentPosition() physics.Vector2D {
	return cs.currentPos
}

// WorldToScreen converts world coordinates to window coordinates
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vector2D) physics.Vector2D {
	relativeX := worldPos.X - cs.currentPos.X
	relativeY := worldPos.Y - cs.currentPos.Y

	screenX := relativeX*float64(cs.zoom) + cs.arena.Width/2
	screenY := relativeY*float64(cs.zoom) + cs.arena.Height/2

	return physics.Vector2D{X: screenX, Y: screenY}
}

// ScreenToWorld converts window coordinates to world coordinates
func (cs *CameraSystem) ScreenToWorld(screenPos physics.Vector2D) physics.Vector2D {
	relativeX := (screenPos.X - cs.arena.Width/2) / float64(cs.zoom)
	relativeY := (screenPos.Y - cs.arena.Height/2) / float64(cs.zoom)

	return physics.Vector2D{
		X: relativeX + cs.currentPos.X,
		Y: relativeY + cs.currentPos.Y,
	}
}

// SetZoomLimits sets the minimum and maximum zoom levels
func (cs *CameraSystem) SetZoomLimits(min, max float32) {
	cs.minZoom = min
	cs.maxZoom = max
	cs.zoom = cs.clampZoom(cs.zoom)
}

// GetZoomLimits returns the current zoom limits
func (cs *CameraSystem) GetZoomLimits() (float32, float32) {
	return cs.minZoom, cs.maxZoom
}
