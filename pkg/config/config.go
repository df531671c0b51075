// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// GameConfig contains configuration for an arena game
type GameConfig struct {
	Seed    uint64        `json:"seed"`
	Arena   ArenaConfig   `json:"arena"`
	Player  PlayerConfig  `json:"player"`
	Bullet  BulletConfig  `json:"bullet"`
	Enemy   EnemyConfig   `json:"enemy"`
	Effects EffectsConfig `json:"effects"`
	Camera  CameraConfig  `json:"camera"`
	Wave    WaveConfig    `json:"wave"`
	Pause   PauseConfig   `json:"pause"`
	Audio   AudioConfig   `json:"audio"`
}

// ArenaConfig describes the playfield in world units
type ArenaConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlayerConfig contains the player ship tuning
type PlayerConfig struct {
	HP                      float64 `json:"hp"`
	Radius                  float64 `json:"radius"`
	Acceleration            float64 `json:"acceleration"`
	MaxSpeed                float64 `json:"maxSpeed"`
	Friction                float64 `json:"friction"`
	InvulnerabilityDuration float64 `json:"invulnerabilityDuration"`
	FireCooldown            float64 `json:"fireCooldown"`
	ShotCount               int     `json:"shotCount"`
	Spread                  float64 `json:"spread"` // radians, full cone width
	BlastCooldown           float64 `json:"blastCooldown"`
}

// BulletConfig contains projectile tuning
type BulletConfig struct {
	Speed      float64 `json:"speed"`
	Damage     float64 `json:"damage"`
	Radius     float64 `json:"radius"`
	Lifetime   float64 `json:"lifetime"`
	ShrinkTime float64 `json:"shrinkTime"`
	Knockback  float64 `json:"knockback"`
}

// EnemyConfig contains the tuning shared by the enemy family
type EnemyConfig struct {
	MinHP                   float64 `json:"minHP"`
	MaxHP                   float64 `json:"maxHP"`
	MinRadius               float64 `json:"minRadius"`
	MaxRadius               float64 `json:"maxRadius"`
	Acceleration            float64 `json:"acceleration"`
	MaxSpeed                float64 `json:"maxSpeed"`
	Friction                float64 `json:"friction"`
	Damage                  float64 `json:"damage"`
	Knockback               float64 `json:"knockback"`
	InvulnerabilityDuration float64 `json:"invulnerabilityDuration"`
	GrowTime                float64 `json:"growTime"`
	ScoreValue              int     `json:"scoreValue"`
	DropChance              float64 `json:"dropChance"`

	WanderMinInterval float64 `json:"wanderMinInterval"`
	WanderMaxInterval float64 `json:"wanderMaxInterval"`
	BounceDamping     float64 `json:"bounceDamping"`

	TelegraphTime float64 `json:"telegraphTime"`
	DashSpeed     float64 `json:"dashSpeed"`
	EdgeMargin    float64 `json:"edgeMargin"`
}

// EffectsConfig contains tuning for transient effect entities
type EffectsConfig struct {
	FlashDuration        float64 `json:"flashDuration"`
	ExplosionRadius      float64 `json:"explosionRadius"`
	ExplosionLifetime    float64 `json:"explosionLifetime"`
	ExplosionDamage      float64 `json:"explosionDamage"`
	ExplosionKnockback   float64 `json:"explosionKnockback"`
	BlastRadius          float64 `json:"blastRadius"`
	BlastGrowTime        float64 `json:"blastGrowTime"`
	BlastHoldTime        float64 `json:"blastHoldTime"`
	BlastDamage          float64 `json:"blastDamage"`
	BlastKnockback       float64 `json:"blastKnockback"`
	DamageNumberLifetime float64 `json:"damageNumberLifetime"`
	DamageNumberRise     float64 `json:"damageNumberRise"`
	PickupHeal           float64 `json:"pickupHeal"`
	PickupRadius         float64 `json:"pickupRadius"`
	PickupLifetime       float64 `json:"pickupLifetime"`
}

// CameraConfig contains shake magnitudes triggered by deaths
type CameraConfig struct {
	PlayerShakeIntensity float64 `json:"playerShakeIntensity"`
	PlayerShakeDuration  float64 `json:"playerShakeDuration"`
	ShakeIntensity       float64 `json:"shakeIntensity"`
	ShakeDuration        float64 `json:"shakeDuration"`
}

// WaveConfig contains the difficulty curve
type WaveConfig struct {
	StartWave         int                  `json:"startWave"`
	BaseCount         int                  `json:"baseCount"`
	PerWave           int                  `json:"perWave"`
	BaseInterval      float64              `json:"baseInterval"`
	IntervalDecrement float64              `json:"intervalDecrement"`
	MinInterval       float64              `json:"minInterval"`
	HPPerWave         float64              `json:"hpPerWave"`
	DasherMinWave     int                  `json:"dasherMinWave"`
	Weights           SpawnWeights         `json:"weights"`
	Overrides         map[int]WaveOverride `json:"overrides,omitempty"`
}

// SpawnWeights are relative odds for each enemy kind
type SpawnWeights struct {
	Chaser   float64 `json:"chaser"`
	Wanderer float64 `json:"wanderer"`
	Dasher   float64 `json:"dasher"`
}

// WaveOverride pins the count and interval of a specific wave
type WaveOverride struct {
	EnemyCount    int     `json:"enemyCount"`
	SpawnInterval float64 `json:"spawnInterval"`
}

// PauseConfig contains pause toggle behavior
type PauseConfig struct {
	Debounce     float64 `json:"debounce"`
	FreezeActors bool    `json:"freezeActors"`
}

// AudioConfig contains sound collaborator settings
type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	Volume     float64 `json:"volume"`
	SampleRate int     `json:"sampleRate"`
}

// LoadConfig loads a configuration from a file. Fields missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Seed: 0,
		Arena: ArenaConfig{
			Width:  1280,
			Height: 720,
		},
		Player: PlayerConfig{
			HP:                      100,
			Radius:                  16,
			Acceleration:            2400,
			MaxSpeed:                320,
			Friction:                8,
			InvulnerabilityDuration: 1.0,
			FireCooldown:            0.25,
			ShotCount:               3,
			Spread:                  0.2,
			BlastCooldown:           5,
		},
		Bullet: BulletConfig{
			Speed:      900,
			Damage:     10,
			Radius:     5,
			Lifetime:   2,
			ShrinkTime: 0.1,
			Knockback:  120,
		},
		Enemy: EnemyConfig{
			MinHP:                   20,
			MaxHP:                   60,
			MinRadius:               12,
			MaxRadius:               28,
			Acceleration:            900,
			MaxSpeed:                150,
			Friction:                4,
			Damage:                  15,
			Knockback:               350,
			InvulnerabilityDuration: 0.1,
			GrowTime:                0.5,
			ScoreValue:              100,
			DropChance:              0.05,
			WanderMinInterval:       1,
			WanderMaxInterval:       3,
			BounceDamping:           0.5,
			TelegraphTime:           1.2,
			DashSpeed:               650,
			EdgeMargin:              10,
		},
		Effects: EffectsConfig{
			FlashDuration:        0.1,
			ExplosionRadius:      48,
			ExplosionLifetime:    0.4,
			ExplosionDamage:      10,
			ExplosionKnockback:   250,
			BlastRadius:          180,
			BlastGrowTime:        0.3,
			BlastHoldTime:        0.1,
			BlastDamage:          40,
			BlastKnockback:       500,
			DamageNumberLifetime: 0.8,
			DamageNumberRise:     40,
			PickupHeal:           25,
			PickupRadius:         10,
			PickupLifetime:       10,
		},
		Camera: CameraConfig{
			PlayerShakeIntensity: 10,
			PlayerShakeDuration:  0.5,
			ShakeIntensity:       4,
			ShakeDuration:        0.2,
		},
		Wave: WaveConfig{
			StartWave:         1,
			BaseCount:         3,
			PerWave:           2,
			BaseInterval:      1.5,
			IntervalDecrement: 0.1,
			MinInterval:       0.3,
			HPPerWave:         0.1,
			DasherMinWave:     3,
			Weights: SpawnWeights{
				Chaser:   70,
				Wanderer: 20,
				Dasher:   10,
			},
		},
		Pause: PauseConfig{
			Debounce:     0.2,
			FreezeActors: false,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
	}
}
