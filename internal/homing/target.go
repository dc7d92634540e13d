package homing

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// TargetClass selects which population a homing projectile may lock onto.
type TargetClass int

const (
	TargetNone TargetClass = iota
	TargetMonsters
	TargetPlayers
	TargetAll
)

var targetClassNames = [...]string{
	TargetNone:     "none",
	TargetMonsters: "monsters",
	TargetPlayers:  "players",
	TargetAll:      "all",
}

func (c TargetClass) String() string {
	if c < 0 || int(c) >= len(targetClassNames) {
		return fmt.Sprintf("TargetClass(%d)", int(c))
	}
	return targetClassNames[c]
}

// ParseTargetClass accepts the class name in any letter case.
func ParseTargetClass(raw string) (TargetClass, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for i, candidate := range targetClassNames {
		if candidate == name {
			return TargetClass(i), nil
		}
	}
	return TargetNone, fmt.Errorf("unknown target class %q", raw)
}

func (c TargetClass) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(targetClassNames) {
		return nil, fmt.Errorf("invalid target class %d", int(c))
	}
	return []byte(targetClassNames[c]), nil
}

func (c *TargetClass) UnmarshalText(text []byte) error {
	parsed, err := ParseTargetClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// JSONSchema describes the class as a string enum in generated schemas.
func (TargetClass) JSONSchema() *jsonschema.Schema {
	enum := make([]interface{}, 0, len(targetClassNames))
	for _, name := range targetClassNames {
		enum = append(enum, name)
	}
	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Target class",
		Description: "Population a homing projectile steers toward.",
		Enum:        enum,
	}
}

func (c TargetClass) includesCreatures() bool {
	return c == TargetMonsters || c == TargetAll
}

func (c TargetClass) includesPlayers() bool {
	return c == TargetPlayers || c == TargetAll
}
