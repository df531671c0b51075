package render

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-arena/pkg/entity"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// Offsetter supplies the current view offset in world units
type Offsetter interface {
	Offset() physics.Vector2D
}

type cell struct {
	ch    rune
	style tcell.Style
}

var (
	defaultStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	borderStyle  = defaultStyle.Foreground(tcell.ColorGray)
	shadowStyle  = defaultStyle.Foreground(tcell.ColorDarkSlateGray)
	flashStyle   = defaultStyle.Foreground(tcell.ColorWhite).Bold(true)
	statusStyle  = defaultStyle.Foreground(tcell.ColorYellow)
)

// kindGlyphs maps each sprite kind to its glyph and style
var kindGlyphs = map[entity.Kind]cell{
	entity.KindPlayer:       {'@', defaultStyle.Foreground(tcell.ColorLime).Bold(true)},
	entity.KindBullet:       {'*', defaultStyle.Foreground(tcell.ColorYellow)},
	entity.KindChaser:       {'C', defaultStyle.Foreground(tcell.ColorRed)},
	entity.KindWanderer:     {'W', defaultStyle.Foreground(tcell.ColorFuchsia)},
	entity.KindDasher:       {'D', defaultStyle.Foreground(tcell.ColorOrange)},
	entity.KindExplosion:    {'#', defaultStyle.Foreground(tcell.ColorOrangeRed)},
	entity.KindBlast:        {'o', defaultStyle.Foreground(tcell.ColorAqua)},
	entity.KindDamageNumber: {' ', defaultStyle.Foreground(tcell.ColorWhite)},
	entity.KindPickup:       {'+', defaultStyle.Foreground(tcell.ColorGreen).Bold(true)},
	entity.KindAimLine:      {'.', defaultStyle.Foreground(tcell.ColorMaroon)},
}

// TerminalRenderer draws the arena into a tcell screen. The arena is scaled
// to fit the screen minus a border and one status row.
type TerminalRenderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	arena  physics.Rect
	view   Offsetter

	width  int
	height int
	buffer [][]cell
	scaleX float64
	scaleY float64
	status string
}

// NewTerminalRenderer creates a renderer for screen showing arena. view may
// be nil for a fixed camera.
func NewTerminalRenderer(screen tcell.Screen, arena physics.Rect, view Offsetter) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		arena:  arena,
		view:   view,
	}
	r.resize()
	r.fill()
	return r
}

// resize recomputes the buffer and scale from the screen size
func (r *TerminalRenderer) resize() {
	w, h := r.screen.Size()
	width := max(w-2, 1)
	height := max(h-3, 1)
	if width == r.width && height == r.height && r.buffer != nil {
		return
	}

	r.width = width
	r.height = height
	r.buffer = make([][]cell, height)
	for i := range r.buffer {
		r.buffer[i] = make([]cell, width)
	}
	r.scaleX = r.arena.Width / float64(width)
	r.scaleY = r.arena.Height / float64(height)
}

// Size returns the drawable area in cells
func (r *TerminalRenderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// SetStatus sets the text of the status row shown under the arena
func (r *TerminalRenderer) SetStatus(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = text
}

func (r *TerminalRenderer) offset() physics.Vector2D {
	if r.view == nil {
		return physics.Vector2D{}
	}
	return r.view.Offset()
}

// worldToScreen converts world coordinates to buffer coordinates
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	pos = pos.Add(r.offset())
	x := int(math.Floor((pos.X - r.arena.Left()) / r.scaleX))
	y := int(math.Floor((pos.Y - r.arena.Top()) / r.scaleY))
	return x, y
}

// ScreenToWorld converts a screen cell, including the border, to the world
// position at the centre of that cell.
func (r *TerminalRenderer) ScreenToWorld(x, y int) physics.Vector2D {
	r.mu.Lock()
	defer r.mu.Unlock()
	return physics.Vector2D{
		X: r.arena.Left() + (float64(x-1)+0.5)*r.scaleX,
		Y: r.arena.Top() + (float64(y-1)+0.5)*r.scaleY,
	}
}

func (r *TerminalRenderer) set(x, y int, c cell) {
	if r.inside(x, y) {
		r.buffer[y][x] = c
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resize()
	r.fill()
}

func (r *TerminalRenderer) fill() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = cell{' ', defaultStyle}
		}
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.SetContent(0, 0, tcell.RuneULCorner, nil, borderStyle)
	r.screen.SetContent(r.width+1, 0, tcell.RuneURCorner, nil, borderStyle)
	r.screen.SetContent(0, r.height+1, tcell.RuneLLCorner, nil, borderStyle)
	r.screen.SetContent(r.width+1, r.height+1, tcell.RuneLRCorner, nil, borderStyle)
	for x := 1; x <= r.width; x++ {
		r.screen.SetContent(x, 0, tcell.RuneHLine, nil, borderStyle)
		r.screen.SetContent(x, r.height+1, tcell.RuneHLine, nil, borderStyle)
	}
	for y := 1; y <= r.height; y++ {
		r.screen.SetContent(0, y, tcell.RuneVLine, nil, borderStyle)
		r.screen.SetContent(r.width+1, y, tcell.RuneVLine, nil, borderStyle)
	}

	for y := range r.buffer {
		for x, c := range r.buffer[y] {
			r.screen.SetContent(x+1, y+1, c.ch, nil, c.style)
		}
	}

	row := r.height + 2
	col := 0
	for _, ch := range r.status {
		r.screen.SetContent(col, row, ch, nil, statusStyle)
		col++
	}
	w, _ := r.screen.Size()
	for ; col < w; col++ {
		r.screen.SetContent(col, row, ' ', nil, defaultStyle)
	}

	r.screen.Show()
}

// Draw implements entity.Renderer. Actors larger than a cell are drawn as a
// filled disc, area effects as a ring.
func (r *TerminalRenderer) Draw(s entity.Sprite) {
	r.mu.Lock()
	defer r.mu.Unlock()

	glyph, ok := kindGlyphs[s.Kind]
	if !ok {
		glyph = cell{'?', defaultStyle}
	}
	if s.Flash {
		glyph.style = flashStyle
	}
	if s.Alpha > 0 && s.Alpha < 0.5 {
		glyph.style = glyph.style.Dim(true)
	}

	if s.Text != "" {
		x, y := r.worldToScreen(s.Position)
		x -= len(s.Text) / 2
		for i, ch := range s.Text {
			r.set(x+i, y, cell{ch, glyph.style})
		}
		return
	}

	switch s.Kind {
	case entity.KindExplosion, entity.KindBlast:
		r.ring(s.Position, s.Radius*s.Scale, glyph)
	default:
		r.disc(s.Position, s.Radius*s.Scale, glyph)
	}
}

// DrawShadow implements entity.Renderer. Shadows never cover another glyph.
func (r *TerminalRenderer) DrawShadow(s entity.Sprite) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, y := r.worldToScreen(s.Position.Add(physics.Vec(r.scaleX, r.scaleY)))
	if r.inside(x, y) && r.buffer[y][x].ch == ' ' {
		r.buffer[y][x] = cell{'.', shadowStyle}
	}
}

// DrawLine implements entity.Renderer
func (r *TerminalRenderer) DrawLine(from, to physics.Vector2D, kind entity.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	glyph, ok := kindGlyphs[kind]
	if !ok {
		glyph = cell{'.', defaultStyle}
	}
	x0, y0 := r.worldToScreen(from)
	x1, y1 := r.worldToScreen(to)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if r.inside(x0, y0) && r.buffer[y0][x0].ch == ' ' {
			r.buffer[y0][x0] = glyph
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (r *TerminalRenderer) inside(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// disc fills every cell whose centre lies within radius of pos. The centre
// cell is always drawn.
func (r *TerminalRenderer) disc(pos physics.Vector2D, radius float64, c cell) {
	cx, cy := r.worldToScreen(pos)
	r.set(cx, cy, c)

	rx := int(radius / r.scaleX)
	ry := int(radius / r.scaleY)
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			dx := float64(x-cx) * r.scaleX
			dy := float64(y-cy) * r.scaleY
			if dx*dx+dy*dy <= radius*radius {
				r.set(x, y, c)
			}
		}
	}
}

// ring draws the outline of a circle, one glyph per step around it
func (r *TerminalRenderer) ring(pos physics.Vector2D, radius float64, c cell) {
	if radius <= 0 {
		return
	}
	steps := max(int(2*math.Pi*radius/min(r.scaleX, r.scaleY)), 8)
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x, y := r.worldToScreen(pos.Add(physics.FromAngle(angle, radius)))
		r.set(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
