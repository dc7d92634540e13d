package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"boulder-rain/internal/effects"
	"boulder-rain/internal/telemetry"
	"boulder-rain/logging"
	settingslog "boulder-rain/logging/settings"
)

// Settings is the persisted gameplay configuration.
type Settings struct {
	DefaultProjectile effects.ProjectileConfig `json:"defaultProjectile" jsonschema:"description=Config used by start when the owner has no pending edits"`
	DebugMode         bool                     `json:"debugMode" jsonschema:"description=Publish debug level events"`
	MaxEffects        int                      `json:"maxEffects" jsonschema:"minimum=1,default=10"`
	AutoEnableOnJoin  bool                     `json:"autoEnableOnJoin" jsonschema:"description=Start an effect for owners shortly after they join"`
}

// Default returns the settings written when no file exists.
func Default() Settings {
	return Settings{
		DefaultProjectile: effects.DefaultProjectileConfig(),
		MaxEffects:        effects.DefaultMaxEffects,
	}
}

func (s Settings) normalized() Settings {
	normalized := s
	normalized.DefaultProjectile = normalized.DefaultProjectile.Normalized()
	if normalized.MaxEffects <= 0 {
		normalized.MaxEffects = effects.DefaultMaxEffects
	}
	return normalized
}

// Listener observes settings after a reload or update.
type Listener func(ctx context.Context, s Settings)

// Deps bundles the store's observers.
type Deps struct {
	Publisher logging.Publisher
	Logger    telemetry.Logger
}

// Store owns the settings file.
type Store struct {
	mu        sync.RWMutex
	path      string
	current   Settings
	publisher logging.Publisher
	logger    telemetry.Logger
	listeners []Listener
}

// Open loads path. A missing file is created with defaults; an unreadable or
// malformed file leaves defaults in effect and is reported, not returned.
func Open(ctx context.Context, path string, deps Deps) *Store {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	logger := deps.Logger
	if logger == nil {
		logger = telemetry.WrapLogger(nil)
	}
	store := &Store{path: path, publisher: publisher, logger: logger}
	loaded, created := store.load(ctx)
	store.current = loaded
	settingslog.Loaded(ctx, publisher, summary(path, loaded, created))
	return store
}

// load reads the file, falling back to defaults. It does not touch s.current.
func (s *Store) load(ctx context.Context) (Settings, bool) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		defaults := Default()
		if err := writeAtomic(s.path, defaults); err != nil {
			s.logger.Printf("settings: create %s: %v", s.path, err)
		} else {
			s.logger.Printf("settings: created default settings at %s", s.path)
		}
		return defaults, true
	}
	if err == nil {
		var decoded Settings
		decoded, err = decode(data)
		if err == nil {
			return decoded, false
		}
	}
	s.logger.Printf("settings: load %s: %v", s.path, err)
	settingslog.LoadFailed(ctx, s.publisher, settingslog.LoadFailedPayload{Path: s.path, Error: err.Error()})
	return Default(), false
}

func decode(data []byte) (Settings, error) {
	decoded := Default()
	if err := json.Unmarshal(data, &decoded); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return decoded.normalized(), nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Current returns a copy of the settings in effect.
func (s *Store) Current() Settings {
	if s == nil {
		return Default()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Default returns a copy of the default projectile config.
func (s *Store) Default() effects.ProjectileConfig {
	return s.Current().DefaultProjectile
}

// OnChange registers l to run after every reload or update.
func (s *Store) OnChange(l Listener) {
	if s == nil || l == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Reload re-reads the file and notifies listeners with the result.
func (s *Store) Reload(ctx context.Context) Settings {
	loaded, created := s.load(ctx)

	s.mu.Lock()
	s.current = loaded
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	settingslog.Reloaded(ctx, s.publisher, summary(s.path, loaded, created))
	s.logger.Printf("settings: reloaded (homing=%t autoEnableOnJoin=%t maxEffects=%d)",
		loaded.DefaultProjectile.Homing, loaded.AutoEnableOnJoin, loaded.MaxEffects)
	for _, l := range listeners {
		l(ctx, loaded)
	}
	return loaded
}

// Update applies fn to a copy of the current settings, persists the result
// and notifies listeners. Nothing changes when the write fails.
func (s *Store) Update(ctx context.Context, fn func(*Settings)) (Settings, error) {
	s.mu.Lock()
	next := s.current
	fn(&next)
	next = next.normalized()
	if err := writeAtomic(s.path, next); err != nil {
		s.mu.Unlock()
		return s.Current(), fmt.Errorf("save settings: %w", err)
	}
	s.current = next
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	settingslog.Saved(ctx, s.publisher, settingslog.SavedPayload{Path: s.path})
	for _, l := range listeners {
		l(ctx, next)
	}
	return next, nil
}

// Save writes the current settings.
func (s *Store) Save(ctx context.Context) error {
	current := s.Current()
	if err := writeAtomic(s.path, current); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	settingslog.Saved(ctx, s.publisher, settingslog.SavedPayload{Path: s.path})
	return nil
}

func writeAtomic(path string, settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp settings: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func summary(path string, s Settings, created bool) settingslog.LoadedPayload {
	return settingslog.LoadedPayload{
		Path:             path,
		Created:          created,
		Homing:           s.DefaultProjectile.Homing,
		AutoEnableOnJoin: s.AutoEnableOnJoin,
		MaxEffects:       s.MaxEffects,
	}
}
