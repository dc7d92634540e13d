package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"boulder-rain/internal/effects"
	"boulder-rain/internal/settings"
)

// Effects is the slice of the effect manager the console drives.
type Effects interface {
	Start(ctx context.Context, owner effects.OwnerID, cfg effects.ProjectileConfig) (effects.EffectID, error)
	Stop(ctx context.Context, owner effects.OwnerID) int
	Effects(owner effects.OwnerID) []effects.Snapshot
}

// Settings is the slice of the settings store the console drives.
type Settings interface {
	Default() effects.ProjectileConfig
	Reload(ctx context.Context) settings.Settings
	Update(ctx context.Context, fn func(*settings.Settings)) (settings.Settings, error)
}

// Reply is the console's answer to one command.
type Reply struct {
	OK       bool     `json:"ok"`
	Lines    []string `json:"lines,omitempty"`
	Error    string   `json:"error,omitempty"`
	EffectID uint64   `json:"effectId,omitempty"`
}

// Console interprets rain commands. Each owner may stage edits with set;
// the next start consumes them.
type Console struct {
	effects  Effects
	settings Settings

	mu      sync.Mutex
	pending map[effects.OwnerID]effects.ProjectileConfig
}

func New(fx Effects, store Settings) *Console {
	return &Console{
		effects:  fx,
		settings: store,
		pending:  make(map[effects.OwnerID]effects.ProjectileConfig),
	}
}

// Parse splits a command line into arguments, dropping a leading /rm or
// /rockrain.
func Parse(line string) []string {
	args := strings.Fields(line)
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "/rm", "/rockrain", "rm", "rockrain":
			args = args[1:]
		}
	}
	return args
}

// Execute runs one command on behalf of owner.
func (c *Console) Execute(ctx context.Context, owner effects.OwnerID, args []string) Reply {
	if len(args) == 0 {
		return c.help()
	}
	switch strings.ToLower(args[0]) {
	case "help":
		return c.help()
	case "start":
		return c.start(ctx, owner)
	case "stop":
		return c.stop(ctx, owner)
	case "list":
		return c.list(owner)
	case "set":
		return c.set(owner, args[1:])
	case "default":
		return c.setDefault(ctx, args[1:])
	case "reload":
		return c.reload(ctx)
	default:
		return failure(fmt.Sprintf("unknown command %q, try help", args[0]))
	}
}

func (c *Console) help() Reply {
	return Reply{OK: true, Lines: []string{
		"help - show this message",
		"start - start a rain with your pending settings",
		"stop - stop all of your rains",
		"list - list your running rains",
		"set - show your pending settings",
		"set <property> <value> - stage a setting for your next start",
		"default <property> <value> - change and save the server default",
		"reload - reload the settings file",
		"properties: " + propertyNames(),
	}}
}

func (c *Console) start(ctx context.Context, owner effects.OwnerID) Reply {
	cfg, staged := c.pendingConfig(owner)
	id, err := c.effects.Start(ctx, owner, cfg)
	switch {
	case errors.Is(err, effects.ErrCapacityExceeded):
		return failure("the server is already running the maximum number of rains")
	case errors.Is(err, effects.ErrInvalidOwner):
		return failure("you must be in the world to start a rain")
	case err != nil:
		return failure(err.Error())
	}
	if staged {
		c.clearPending(owner)
	}
	return Reply{OK: true, EffectID: uint64(id), Lines: []string{fmt.Sprintf("rain %d started", id)}}
}

func (c *Console) stop(ctx context.Context, owner effects.OwnerID) Reply {
	removed := c.effects.Stop(ctx, owner)
	if removed == 0 {
		return Reply{OK: true, Lines: []string{"no rain was running"}}
	}
	return Reply{OK: true, Lines: []string{fmt.Sprintf("stopped %d rain(s)", removed)}}
}

func (c *Console) list(owner effects.OwnerID) Reply {
	running := c.effects.Effects(owner)
	if len(running) == 0 {
		return Reply{OK: true, Lines: []string{"no rain is running"}}
	}
	lines := make([]string, 0, len(running))
	for _, snap := range running {
		lines = append(lines, fmt.Sprintf("rain %d: kind %d every %d frames, homing %t (%s)",
			snap.ID, snap.Config.Kind, snap.Config.SpawnInterval, snap.Config.Homing, snap.Config.HomingTarget))
	}
	return Reply{OK: true, Lines: lines}
}

func (c *Console) set(owner effects.OwnerID, args []string) Reply {
	cfg, _ := c.pendingConfig(owner)
	switch len(args) {
	case 0:
		return Reply{OK: true, Lines: describe(cfg)}
	case 1:
		return failure("usage: set <property> <value>")
	}

	prop, ok := lookupProperty(args[0])
	if !ok {
		return failure(fmt.Sprintf("unknown property %q; properties: %s", args[0], propertyNames()))
	}
	if err := prop.set(&cfg, args[1]); err != nil {
		return failure(err.Error())
	}
	cfg = cfg.Normalized()

	c.mu.Lock()
	c.pending[owner] = cfg
	c.mu.Unlock()
	return Reply{OK: true, Lines: []string{fmt.Sprintf("pending %s set to %s", prop.name, prop.get(cfg))}}
}

func (c *Console) setDefault(ctx context.Context, args []string) Reply {
	if len(args) < 2 {
		return failure("usage: default <property> <value>")
	}
	prop, ok := lookupProperty(args[0])
	if !ok {
		return failure(fmt.Sprintf("unknown property %q; properties: %s", args[0], propertyNames()))
	}

	cfg := c.settings.Default()
	if err := prop.set(&cfg, args[1]); err != nil {
		return failure(err.Error())
	}
	updated, err := c.settings.Update(ctx, func(s *settings.Settings) {
		s.DefaultProjectile = cfg
	})
	if err != nil {
		return failure(err.Error())
	}
	return Reply{OK: true, Lines: []string{fmt.Sprintf("default %s set to %s", prop.name, prop.get(updated.DefaultProjectile))}}
}

func (c *Console) reload(ctx context.Context) Reply {
	loaded := c.settings.Reload(ctx)
	return Reply{OK: true, Lines: []string{
		"settings reloaded",
		fmt.Sprintf("homing: %t, auto enable on join: %t, max rains: %d",
			loaded.DefaultProjectile.Homing, loaded.AutoEnableOnJoin, loaded.MaxEffects),
	}}
}

// pendingConfig returns the owner's staged config, or a copy of the default.
func (c *Console) pendingConfig(owner effects.OwnerID) (effects.ProjectileConfig, bool) {
	c.mu.Lock()
	cfg, ok := c.pending[owner]
	c.mu.Unlock()
	if ok {
		return cfg, true
	}
	return c.settings.Default(), false
}

func (c *Console) clearPending(owner effects.OwnerID) {
	c.mu.Lock()
	delete(c.pending, owner)
	c.mu.Unlock()
}

// Forget drops the owner's staged edits, e.g. when it disconnects.
func (c *Console) Forget(owner effects.OwnerID) {
	c.clearPending(owner)
}

func failure(msg string) Reply {
	return Reply{OK: false, Error: msg}
}
