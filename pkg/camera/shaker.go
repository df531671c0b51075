// Package camera provides the screen shake collaborator used by the hosts.
package camera

import (
	"math/rand/v2"
	"sync"

	"github.com/opd-ai/go-arena/pkg/physics"
)

// Shaker turns Shake requests into a decaying random view offset. A new
// shake replaces the current one, matching the most recent impact.
type Shaker struct {
	mu        sync.Mutex
	intensity float64
	duration  float64
	timer     float64
	offset    physics.Vector2D
	rng       *rand.Rand
}

// NewShaker creates an idle shaker with its own seeded random source
func NewShaker(seed uint64) *Shaker {
	return &Shaker{rng: rand.New(rand.NewPCG(seed, seed+1))}
}

// Shake starts a shake of the given peak intensity and duration in seconds
func (s *Shaker) Shake(intensity, duration float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if duration <= 0 || intensity <= 0 {
		return
	}
	s.intensity = intensity
	s.duration = duration
	s.timer = duration
}

// Update advances the shake and samples a new offset. The magnitude
// decays linearly to zero over the shake duration.
func (s *Shaker) Update(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer <= 0 {
		s.offset = physics.Vector2D{}
		return
	}
	s.timer -= dt
	if s.timer <= 0 {
		s.timer = 0
		s.offset = physics.Vector2D{}
		return
	}

	current := s.intensity * s.timer / s.duration
	s.offset = physics.Vector2D{
		X: (s.rng.Float64()*2 - 1) * current,
		Y: (s.rng.Float64()*2 - 1) * current,
	}
}

// Offset returns the current view offset
func (s *Shaker) Offset() physics.Vector2D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// Active reports whether a shake is still running
func (s *Shaker) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer > 0
}
