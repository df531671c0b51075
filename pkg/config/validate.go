package config

import "fmt"

// Validate checks the configuration for values the simulation cannot run
// with. Zero durations are allowed and mean "instant".
func Validate(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}
	if config.Arena.Width <= 0 || config.Arena.Height <= 0 {
		return fmt.Errorf("arena size must be positive: %vx%v", config.Arena.Width, config.Arena.Height)
	}

	p := config.Player
	if p.HP <= 0 {
		return fmt.Errorf("player hp must be positive: %v", p.HP)
	}
	if p.ShotCount < 1 {
		return fmt.Errorf("player shotCount must be at least 1: %d", p.ShotCount)
	}
	if err := nonNegative("player",
		p.Radius, p.Acceleration, p.MaxSpeed, p.Friction,
		p.InvulnerabilityDuration, p.FireCooldown, p.Spread, p.BlastCooldown); err != nil {
		return err
	}

	b := config.Bullet
	if err := nonNegative("bullet", b.Speed, b.Damage, b.Radius, b.Lifetime, b.ShrinkTime, b.Knockback); err != nil {
		return err
	}

	e := config.Enemy
	if e.MinHP <= 0 || e.MaxHP < e.MinHP {
		return fmt.Errorf("enemy hp range invalid: [%v, %v]", e.MinHP, e.MaxHP)
	}
	if e.MinRadius <= 0 || e.MaxRadius < e.MinRadius {
		return fmt.Errorf("enemy radius range invalid: [%v, %v]", e.MinRadius, e.MaxRadius)
	}
	if e.WanderMaxInterval < e.WanderMinInterval {
		return fmt.Errorf("enemy wander interval range invalid: [%v, %v]", e.WanderMinInterval, e.WanderMaxInterval)
	}
	if e.DropChance < 0 || e.DropChance > 1 {
		return fmt.Errorf("enemy dropChance must be within [0, 1]: %v", e.DropChance)
	}
	if err := nonNegative("enemy",
		e.Acceleration, e.MaxSpeed, e.Friction, e.Damage, e.Knockback,
		e.InvulnerabilityDuration, e.GrowTime, e.WanderMinInterval,
		e.BounceDamping, e.TelegraphTime, e.DashSpeed, e.EdgeMargin); err != nil {
		return err
	}

	w := config.Wave
	if w.StartWave < 1 {
		return fmt.Errorf("wave startWave must be at least 1: %d", w.StartWave)
	}
	if w.BaseCount < 0 || w.PerWave < 0 {
		return fmt.Errorf("wave counts must be non-negative: base=%d perWave=%d", w.BaseCount, w.PerWave)
	}
	if w.MinInterval <= 0 {
		return fmt.Errorf("wave minInterval must be positive: %v", w.MinInterval)
	}
	if w.Weights.Chaser+w.Weights.Wanderer+w.Weights.Dasher <= 0 {
		return fmt.Errorf("wave weights must not all be zero")
	}
	if err := nonNegative("wave", w.BaseInterval, w.IntervalDecrement, w.HPPerWave,
		w.Weights.Chaser, w.Weights.Wanderer, w.Weights.Dasher); err != nil {
		return err
	}
	for wave, o := range w.Overrides {
		if wave < 0 || o.EnemyCount < 0 || o.SpawnInterval < 0 {
			return fmt.Errorf("wave override %d invalid: %+v", wave, o)
		}
		if o.SpawnInterval > 0 && o.SpawnInterval < w.MinInterval {
			return fmt.Errorf("wave override %d spawnInterval %v below minInterval %v", wave, o.SpawnInterval, w.MinInterval)
		}
		if formula := w.BaseCount + wave*w.PerWave; o.EnemyCount > 0 && o.EnemyCount < formula {
			return fmt.Errorf("wave override %d enemyCount %d below the wave's base count %d", wave, o.EnemyCount, formula)
		}
	}

	if config.Audio.Enabled && config.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sampleRate must be positive: %d", config.Audio.SampleRate)
	}

	return nil
}

func nonNegative(section string, values ...float64) error {
	for i, v := range values {
		if v < 0 {
			return fmt.Errorf("%s: value #%d must be non-negative, got %v", section, i, v)
		}
	}
	return nil
}
