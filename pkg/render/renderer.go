// Package render provides the renderers and input sources used by the
// arena hosts.
package render

import (
	"context"

	"github.com/opd-ai/go-arena/pkg/entity"
	"github.com/opd-ai/go-arena/pkg/logging"
	"github.com/opd-ai/go-arena/pkg/physics"
)

// NullRenderer is a renderer that does nothing except log debug information.
// The headless host uses it so frame traffic shows up at debug level.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context
}

// NewNullRenderer creates a new NullRenderer logging to logger. A nil logger
// discards everything.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger,
		ctx:    context.Background(),
	}
}

// WithContext returns a copy of the renderer that logs with ctx, so the
// session id of the running game is attached to every line.
func (r *NullRenderer) WithContext(ctx context.Context) *NullRenderer {
	return &NullRenderer{logger: r.logger, ctx: ctx}
}

// Clear implements entity.Renderer
func (r *NullRenderer) Clear() {
	r.logger.Debug(r.ctx, "Clear called")
}

// Present implements entity.Renderer
func (r *NullRenderer) Present() {
	r.logger.Debug(r.ctx, "Present called")
}

// Draw implements entity.Renderer
func (r *NullRenderer) Draw(s entity.Sprite) {
	r.logger.Debug(r.ctx, "Draw called",
		"id", s.ID,
		"kind", s.Kind.String(),
		"x", s.Position.X,
		"y", s.Position.Y,
		"radius", s.Radius*s.Scale,
	)
}

// DrawShadow implements entity.Renderer
func (r *NullRenderer) DrawShadow(s entity.Sprite) {
	r.logger.Debug(r.ctx, "DrawShadow called", "id", s.ID, "kind", s.Kind.String())
}

// DrawLine implements entity.Renderer
func (r *NullRenderer) DrawLine(from, to physics.Vector2D, kind entity.Kind) {
	r.logger.Debug(r.ctx, "DrawLine called",
		"kind", kind.String(),
		"length", from.Distance(to),
	)
}
