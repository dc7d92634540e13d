package console

import (
	"fmt"
	"strconv"
	"strings"

	"boulder-rain/internal/effects"
	"boulder-rain/internal/homing"
)

type property struct {
	name  string
	label string
	unit  string
	get   func(effects.ProjectileConfig) string
	set   func(*effects.ProjectileConfig, string) error
}

var properties = []property{
	intProperty("id", "Entity kind", "", func(c *effects.ProjectileConfig) *int { return &c.Kind }),
	floatProperty("speed", "Fall speed", "", func(c *effects.ProjectileConfig) *float64 { return &c.Speed }),
	intProperty("damage", "Damage", "", func(c *effects.ProjectileConfig) *int { return &c.Damage }),
	floatProperty("knockback", "Knockback", "", func(c *effects.ProjectileConfig) *float64 { return &c.Knockback }),
	intProperty("duration", "Duration", "frames", func(c *effects.ProjectileConfig) *int { return &c.Duration }),
	intProperty("interval", "Spawn interval", "frames", func(c *effects.ProjectileConfig) *int { return &c.SpawnInterval }),
	floatProperty("height", "Spawn height", "px", func(c *effects.ProjectileConfig) *float64 { return &c.Height }),
	floatProperty("width", "Spawn width", "px", func(c *effects.ProjectileConfig) *float64 { return &c.Width }),
	intProperty("timeleft", "Lifetime", "frames", func(c *effects.ProjectileConfig) *int { return &c.Lifetime }),
	intProperty("extraupdates", "Extra updates", "", func(c *effects.ProjectileConfig) *int { return &c.ExtraUpdates }),
	{
		name:  "homing",
		label: "Homing",
		get:   func(c effects.ProjectileConfig) string { return strconv.FormatBool(c.Homing) },
		set: func(c *effects.ProjectileConfig, raw string) error {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("invalid boolean %q (true/false)", raw)
			}
			c.Homing = v
			return nil
		},
	},
	{
		name:  "trackingtarget",
		label: "Homing target",
		get:   func(c effects.ProjectileConfig) string { return c.HomingTarget.String() },
		set: func(c *effects.ProjectileConfig, raw string) error {
			v, err := homing.ParseTargetClass(raw)
			if err != nil {
				return fmt.Errorf("%w; available: none, monsters, players, all", err)
			}
			c.HomingTarget = v
			return nil
		},
	},
	floatProperty("trackingspeed", "Homing speed", "", func(c *effects.ProjectileConfig) *float64 { return &c.HomingSpeed }),
	floatProperty("trackingrange", "Homing range", "px", func(c *effects.ProjectileConfig) *float64 { return &c.HomingRange }),
}

func intProperty(name, label, unit string, field func(*effects.ProjectileConfig) *int) property {
	return property{
		name:  name,
		label: label,
		unit:  unit,
		get:   func(c effects.ProjectileConfig) string { return strconv.Itoa(*field(&c)) },
		set: func(c *effects.ProjectileConfig, raw string) error {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid integer %q", raw)
			}
			*field(c) = v
			return nil
		},
	}
}

func floatProperty(name, label, unit string, field func(*effects.ProjectileConfig) *float64) property {
	return property{
		name:  name,
		label: label,
		unit:  unit,
		get:   func(c effects.ProjectileConfig) string { return strconv.FormatFloat(*field(&c), 'g', -1, 64) },
		set: func(c *effects.ProjectileConfig, raw string) error {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("invalid number %q", raw)
			}
			*field(c) = v
			return nil
		},
	}
}

func lookupProperty(name string) (property, bool) {
	name = strings.ToLower(name)
	for _, p := range properties {
		if p.name == name {
			return p, true
		}
	}
	return property{}, false
}

func propertyNames() string {
	names := make([]string, 0, len(properties))
	for _, p := range properties {
		names = append(names, p.name)
	}
	return strings.Join(names, ", ")
}

// describe renders cfg one property per line.
func describe(cfg effects.ProjectileConfig) []string {
	lines := make([]string, 0, len(properties))
	for _, p := range properties {
		line := fmt.Sprintf("%s (%s): %s", p.label, p.name, p.get(cfg))
		if p.unit != "" {
			line += " " + p.unit
		}
		lines = append(lines, line)
	}
	return lines
}
