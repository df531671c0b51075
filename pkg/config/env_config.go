// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables understood by ApplyEnv
const (
	EnvSeed          = "ARENA_SEED"
	EnvWidth         = "ARENA_WIDTH"
	EnvHeight        = "ARENA_HEIGHT"
	EnvStartWave     = "ARENA_START_WAVE"
	EnvMute          = "ARENA_MUTE"
	EnvFreezeOnPause = "ARENA_FREEZE_ON_PAUSE"
)

// ApplyEnv overrides fields of config from ARENA_* environment variables.
// Unset variables leave the config untouched; malformed values are errors.
func ApplyEnv(config *GameConfig) error {
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		config.Seed = seed
	}

	if err := envFloat(EnvWidth, &config.Arena.Width); err != nil {
		return err
	}
	if err := envFloat(EnvHeight, &config.Arena.Height); err != nil {
		return err
	}

	if v, ok := os.LookupEnv(EnvStartWave); ok {
		wave, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvStartWave, err)
		}
		config.Wave.StartWave = wave
	}

	if v, ok := os.LookupEnv(EnvMute); ok {
		mute, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMute, err)
		}
		config.Audio.Enabled = !mute
	}

	if v, ok := os.LookupEnv(EnvFreezeOnPause); ok {
		freeze, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvFreezeOnPause, err)
		}
		config.Pause.FreezeActors = freeze
	}

	return nil
}

func envFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = f
	return nil
}
