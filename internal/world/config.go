package world

import "strings"

const (
	DefaultSeed          = "boulder-rain"
	DefaultWidth         = 4000.0
	DefaultHeight        = 1600.0
	DefaultGroundDepth   = 200.0
	DefaultMaxEntities   = 1000
	DefaultCreatureCount = 8
	DefaultRespawnTicks  = 600
)

// Config shapes the sandbox world. Coordinates are y-down, the ground is a
// flat line GroundDepth above the bottom edge.
type Config struct {
	Seed          string  `json:"seed"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	GroundDepth   float64 `json:"groundDepth"`
	MaxEntities   int     `json:"maxEntities"`
	CreatureCount int     `json:"creatureCount"`
	CreatureLife  int     `json:"creatureLife"`
	RespawnTicks  int     `json:"respawnTicks"`
	PlayerLife    int     `json:"playerLife"`
}

func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = DefaultSeed
	}
	if normalized.Width <= 0 {
		normalized.Width = DefaultWidth
	}
	if normalized.Height <= 0 {
		normalized.Height = DefaultHeight
	}
	if normalized.GroundDepth < 0 || normalized.GroundDepth >= normalized.Height {
		normalized.GroundDepth = 0
	}
	if normalized.MaxEntities <= 0 {
		normalized.MaxEntities = DefaultMaxEntities
	}
	if normalized.CreatureCount < 0 {
		normalized.CreatureCount = 0
	}
	if normalized.CreatureLife <= 0 {
		normalized.CreatureLife = 250
	}
	if normalized.RespawnTicks <= 0 {
		normalized.RespawnTicks = DefaultRespawnTicks
	}
	if normalized.PlayerLife <= 0 {
		normalized.PlayerLife = 100
	}
	return normalized
}

func (cfg Config) Normalized() Config {
	return cfg.normalized()
}

func DefaultConfig() Config {
	return Config{
		Seed:          DefaultSeed,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		GroundDepth:   DefaultGroundDepth,
		MaxEntities:   DefaultMaxEntities,
		CreatureCount: DefaultCreatureCount,
		CreatureLife:  250,
		RespawnTicks:  DefaultRespawnTicks,
		PlayerLife:    100,
	}
}

// GroundLevel is the y coordinate entities collide with.
func (cfg Config) GroundLevel() float64 {
	return cfg.Height - cfg.GroundDepth
}
