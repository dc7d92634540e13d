package effects

import "boulder-rain/internal/homing"

// ProjectileConfig describes the projectiles an effect rains down. It holds
// no references, so plain assignment produces an independent copy.
type ProjectileConfig struct {
	Kind          int                `json:"kind" jsonschema:"description=Entity kind spawned by the effect,default=99"`
	Speed         float64            `json:"speed" jsonschema:"description=Downward fall speed,default=10"`
	Damage        int                `json:"damage" jsonschema:"minimum=0,default=50"`
	Knockback     float64            `json:"knockback" jsonschema:"minimum=0,default=5"`
	Duration      int                `json:"duration" jsonschema:"description=Reserved frame budget for the effect (not consumed),default=1800"`
	SpawnInterval int                `json:"spawnInterval" jsonschema:"description=Frames between spawns,minimum=1,default=10"`
	Height        float64            `json:"height" jsonschema:"description=Spawn height above the owner,default=600"`
	Width         float64            `json:"width" jsonschema:"description=Horizontal spread centred on the owner,default=1000"`
	Lifetime      int                `json:"lifetime" jsonschema:"description=Frames a spawned entity lives,minimum=1,default=300"`
	ExtraUpdates  int                `json:"extraUpdates" jsonschema:"minimum=0,default=0"`
	Homing        bool               `json:"homing" jsonschema:"default=false"`
	HomingTarget  homing.TargetClass `json:"homingTarget"`
	HomingSpeed   float64            `json:"homingSpeed" jsonschema:"default=5"`
	HomingRange   float64            `json:"homingRange" jsonschema:"default=500"`
}

// DefaultProjectileConfig returns the stock boulder rain.
func DefaultProjectileConfig() ProjectileConfig {
	return ProjectileConfig{
		Kind:          99,
		Speed:         10,
		Damage:        50,
		Knockback:     5,
		Duration:      1800,
		SpawnInterval: 10,
		Height:        600,
		Width:         1000,
		Lifetime:      300,
		ExtraUpdates:  0,
		Homing:        false,
		HomingTarget:  homing.TargetMonsters,
		HomingSpeed:   5,
		HomingRange:   500,
	}
}

func (cfg ProjectileConfig) normalized() ProjectileConfig {
	normalized := cfg
	if normalized.Damage < 0 {
		normalized.Damage = 0
	}
	if normalized.Knockback < 0 {
		normalized.Knockback = 0
	}
	if normalized.ExtraUpdates < 0 {
		normalized.ExtraUpdates = 0
	}
	if normalized.SpawnInterval <= 0 {
		normalized.SpawnInterval = 1
	}
	if normalized.Lifetime <= 0 {
		normalized.Lifetime = 1
	}
	return normalized
}

// Normalized clamps values that would flood or break the world.
func (cfg ProjectileConfig) Normalized() ProjectileConfig {
	return cfg.normalized()
}

func (cfg ProjectileConfig) interval() uint64 {
	if cfg.SpawnInterval < 1 {
		return 1
	}
	return uint64(cfg.SpawnInterval)
}
