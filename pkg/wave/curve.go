// pkg/wave/curve.go
package wave

import (
	"math"

	"github.com/opd-ai/go-arena/pkg/config"
)

// Curve maps a wave index to its spawn count and interval. Waves follow the
// linear formulas and scale without bound. An override raises the count or
// tightens the interval from its wave onward, so the curve never eases off.
type Curve struct {
	BaseCount         int
	PerWave           int
	BaseInterval      float64
	IntervalDecrement float64
	MinInterval       float64
	Overrides         map[int]config.WaveOverride
}

// NewCurve builds a curve from the wave section of the game config
func NewCurve(cfg config.WaveConfig) Curve {
	return Curve{
		BaseCount:         cfg.BaseCount,
		PerWave:           cfg.PerWave,
		BaseInterval:      cfg.BaseInterval,
		IntervalDecrement: cfg.IntervalDecrement,
		MinInterval:       cfg.MinInterval,
		Overrides:         cfg.Overrides,
	}
}

// EnemyCount returns how many enemies wave w spawns
func (c Curve) EnemyCount(w int) int {
	n := c.BaseCount + w*c.PerWave
	for ow, o := range c.Overrides {
		if ow <= w && o.EnemyCount > n {
			n = o.EnemyCount
		}
	}
	return n
}

// SpawnInterval returns the seconds between spawns in wave w, never below
// MinInterval
func (c Curve) SpawnInterval(w int) float64 {
	interval := c.BaseInterval - float64(w)*c.IntervalDecrement
	for ow, o := range c.Overrides {
		if ow <= w && o.SpawnInterval > 0 {
			interval = math.Min(interval, o.SpawnInterval)
		}
	}
	return math.Max(c.MinInterval, interval)
}
