package render

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-arena/pkg/entity"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// DefaultHoldTime is how long a key counts as held after its last event.
// Terminals report presses and auto-repeat but never releases.
const DefaultHoldTime = 150 * time.Millisecond

// TerminalInput turns tcell events into held actions and a pointer
// position. Events are written by the reader goroutine and polled by the
// game loop.
type TerminalInput struct {
	mu       sync.Mutex
	lastSeen map[entity.Action]time.Time
	pointer  physics.Vector2D
	hold     time.Duration
	now      func() time.Time
	mapper   *TerminalRenderer

	quit     chan struct{}
	quitOnce sync.Once
}

// NewTerminalInput creates an input source. mapper converts mouse cells to
// world positions and may be nil to ignore the mouse.
func NewTerminalInput(mapper *TerminalRenderer) *TerminalInput {
	return &TerminalInput{
		lastSeen: make(map[entity.Action]time.Time),
		hold:     DefaultHoldTime,
		now:      time.Now,
		mapper:   mapper,
		quit:     make(chan struct{}),
	}
}

// Listen reads events from screen until it is finalized or quit is
// requested. It is meant to run in its own goroutine.
func (in *TerminalInput) Listen(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if !in.HandleEvent(ev) {
			return
		}
	}
}

// Quit is closed once the player asks to leave
func (in *TerminalInput) Quit() <-chan struct{} {
	return in.quit
}

// HandleEvent records one event. It returns false once quit was requested.
func (in *TerminalInput) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.handleKey(ev)
	case *tcell.EventMouse:
		in.handleMouse(ev)
	}
	return true
}

func (in *TerminalInput) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.requestQuit()
		return false
	case tcell.KeyUp:
		in.press(entity.ActionUp)
	case tcell.KeyDown:
		in.press(entity.ActionDown)
	case tcell.KeyLeft:
		in.press(entity.ActionLeft)
	case tcell.KeyRight:
		in.press(entity.ActionRight)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			in.press(entity.ActionUp)
		case 's', 'S':
			in.press(entity.ActionDown)
		case 'a', 'A':
			in.press(entity.ActionLeft)
		case 'd', 'D':
			in.press(entity.ActionRight)
		case ' ':
			in.press(entity.ActionFire)
		case 'b', 'B':
			in.press(entity.ActionBlast)
		case 'p', 'P':
			in.press(entity.ActionPause)
		case 'r', 'R':
			in.press(entity.ActionRestart)
		case 'q', 'Q':
			in.requestQuit()
			return false
		}
	}
	return true
}

func (in *TerminalInput) handleMouse(ev *tcell.EventMouse) {
	if in.mapper == nil {
		return
	}
	x, y := ev.Position()
	pos := in.mapper.ScreenToWorld(x, y)

	in.mu.Lock()
	in.pointer = pos
	in.mu.Unlock()

	if ev.Buttons()&tcell.Button1 != 0 {
		in.press(entity.ActionFire)
	}
}

func (in *TerminalInput) press(a entity.Action) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.lastSeen[a] = in.now()
}

func (in *TerminalInput) requestQuit() {
	in.quitOnce.Do(func() { close(in.quit) })
}

// Pressed implements entity.Input. Pause and restart are reported only
// once per key event so a held key does not toggle repeatedly.
func (in *TerminalInput) Pressed(a entity.Action) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	seen, ok := in.lastSeen[a]
	if !ok {
		return false
	}
	if a == entity.ActionPause || a == entity.ActionRestart {
		delete(in.lastSeen, a)
		return true
	}
	if in.now().Sub(seen) > in.hold {
		delete(in.lastSeen, a)
		return false
	}
	return true
}

// Pointer implements entity.Input
func (in *TerminalInput) Pointer() physics.Vector2D {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.pointer
}
