package engo

import (
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-arena/pkg/entity"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// Button names registered with engo
const (
	buttonUp        = "up"
	buttonDown      = "down"
	buttonLeft      = "left"
	buttonRight     = "right"
	buttonFire      = "fire"
	buttonBlast     = "blast"
	buttonPause     = "pause"
	buttonRestart   = "restart"
	buttonQuit      = "quit"
	buttonZoomIn    = "zoomIn"
	buttonZoomOut   = "zoomOut"
	buttonResetZoom = "resetZoom"
)

// actionButtons maps each game action to its engo button
var actionButtons = map[entity.Action]string{
	entity.ActionUp:      buttonUp,
	entity.ActionDown:    buttonDown,
	entity.ActionLeft:    buttonLeft,
	entity.ActionRight:   buttonRight,
	entity.ActionFire:    buttonFire,
	entity.ActionBlast:   buttonBlast,
	entity.ActionPause:   buttonPause,
	entity.ActionRestart: buttonRestart,
}

// ButtonSource reads button and mouse state. engoButtons reads the live
// engo input; tests supply their own.
type ButtonSource interface {
	Down(name string) bool
	JustPressed(name string) bool
	Mouse() (x, y float32, action engo.Action, button engo.MouseButton)
}

type engoButtons struct{}

func (engoButtons) Down(name string) bool        { return engo.Input.Button(name).Down() }
func (engoButtons) JustPressed(name string) bool { return engo.Input.Button(name).JustPressed() }

func (engoButtons) Mouse() (float32, float32, engo.Action, engo.MouseButton) {
	m := engo.Input.Mouse
	return m.X, m.Y, m.Action, m.Button
}

// InputSystem samples engo input once per frame and serves it to the game
// as an entity.Input.
type InputSystem struct {
	mu        sync.Mutex
	buttons   ButtonSource
	camera    *CameraSystem
	pressed   map[entity.Action]bool
	pointer   physics.Vector2D
	mouseDown bool
	quit      bool
}

// NewInputSystem creates a new input system. camera converts the mouse
// position to world coordinates and may be nil.
func NewInputSystem(camera *CameraSystem) *InputSystem {
	return &InputSystem{
		buttons: engoButtons{},
		camera:  camera,
		pressed: make(map[entity.Action]bool),
	}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity) {}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Priority runs input ahead of the game system
func (is *InputSystem) Priority() int { return 10 }

// Update samples every bound button and the mouse
func (is *InputSystem) Update(dt float32) {
	is.mu.Lock()
	defer is.mu.Unlock()

	for action, name := range actionButtons {
		if action == entity.ActionPause || action == entity.ActionRestart {
			is.pressed[action] = is.buttons.JustPressed(name)
			continue
		}
		is.pressed[action] = is.buttons.Down(name)
	}

	x, y, action, button := is.buttons.Mouse()
	if button == engo.MouseButtonLeft {
		switch action {
		case engo.Press:
			is.mouseDown = true
		case engo.Release:
			is.mouseDown = false
		}
	}
	is.pressed[entity.ActionFire] = is.pressed[entity.ActionFire] || is.mouseDown

	is.pointer = physics.Vector2D{X: float64(x), Y: float64(y)}
	if is.camera != nil {
		is.pointer = is.camera.ScreenToWorld(is.pointer)
	}

	if is.buttons.JustPressed(buttonQuit) {
		is.quit = true
	}
}

// Pressed implements entity.Input
func (is *InputSystem) Pressed(a entity.Action) bool {
	is.mu.Lock()
	defer is.mu.Unlock()
	return is.pressed[a]
}

// Pointer implements entity.Input
func (is *InputSystem) Pointer() physics.Vector2D {
	is.mu.Lock()
	defer is.mu.Unlock()
	return is.pointer
}

// QuitRequested reports whether the quit button was pressed
func (is *InputSystem) QuitRequested() bool {
	is.mu.Lock()
	defer is.mu.Unlock()
	return is.quit
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	// Movement keys
	engo.Input.RegisterButton(buttonUp, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(buttonDown, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(buttonLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(buttonRight, engo.KeyD, engo.KeyArrowRight)

	// Weapon and action keys
	engo.Input.RegisterButton(buttonFire, engo.KeySpace)
	engo.Input.RegisterButton(buttonBlast, engo.KeyB)
	engo.Input.RegisterButton(buttonPause, engo.KeyP)
	engo.Input.RegisterButton(buttonRestart, engo.KeyR)
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape, engo.KeyQ)

	// Camera
	engo.Input.RegisterButton(buttonZoomIn, engo.KeyEquals)
	engo.Input.RegisterButton(buttonZoomOut, engo.KeyDash)
	engo.Input.RegisterButton(buttonResetZoom, engo.KeyZero)
}
