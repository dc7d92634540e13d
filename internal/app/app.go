package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"boulder-rain/internal/console"
	"boulder-rain/internal/effects"
	servernet "boulder-rain/internal/net"
	"boulder-rain/internal/net/ws"
	"boulder-rain/internal/settings"
	"boulder-rain/internal/sim"
	"boulder-rain/internal/telemetry"
	"boulder-rain/internal/world"
	"boulder-rain/logging"
	loggingSinks "boulder-rain/logging/sinks"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	Logger       telemetry.Logger
	Addr         string
	SettingsPath string
	TickRate     int
	LogSinks     []string
	LogJSONPath  string
	WorldSeed    string
}

// ConfigFromEnv reads ADDR, SETTINGS_PATH, TICK_RATE, LOG_SINKS,
// LOG_JSON_PATH and WORLD_SEED. Invalid values are logged and ignored.
func ConfigFromEnv(logger telemetry.Logger) Config {
	if logger == nil {
		logger = telemetry.WrapLogger(log.Default())
	}
	cfg := Config{
		Logger:       logger,
		Addr:         ":8080",
		SettingsPath: "config/boulder-rain.json",
		TickRate:     sim.DefaultTickRate,
		LogSinks:     []string{"console"},
		WorldSeed:    world.DefaultSeed,
	}
	if raw := os.Getenv("ADDR"); raw != "" {
		cfg.Addr = raw
	}
	if raw := os.Getenv("SETTINGS_PATH"); raw != "" {
		cfg.SettingsPath = raw
	}
	if raw := os.Getenv("TICK_RATE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.TickRate = value
		} else {
			logger.Printf("invalid TICK_RATE=%q", raw)
		}
	}
	if raw := os.Getenv("LOG_SINKS"); raw != "" {
		cfg.LogSinks = logging.ParseSinkList(raw)
	}
	cfg.LogJSONPath = os.Getenv("LOG_JSON_PATH")
	if raw := os.Getenv("WORLD_SEED"); raw != "" {
		cfg.WorldSeed = raw
	}
	return cfg
}

// Run wires the server together and blocks until ctx is cancelled or a
// component fails.
func Run(ctx context.Context, cfg Config) error {
	telemetryLogger := cfg.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.WrapLogger(log.Default())
	}

	logConfig := logging.DefaultConfig()
	if len(cfg.LogSinks) > 0 {
		logConfig.EnabledSinks = cfg.LogSinks
	}
	if cfg.LogJSONPath != "" {
		logConfig.JSON.FilePath = cfg.LogJSONPath
	}
	logConfig.Fields = map[string]any{"seed": cfg.WorldSeed}

	namedSinks, err := buildSinks(logConfig)
	if err != nil {
		return err
	}
	router, err := logging.NewRouter(logging.SystemClock{}, logConfig, log.Default(), namedSinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	metrics := &logging.Metrics{}
	store := settings.Open(ctx, cfg.SettingsPath, settings.Deps{Publisher: router, Logger: telemetryLogger})
	applySeverity(router, logConfig, store.Current())

	worldConfig := world.DefaultConfig()
	worldConfig.Seed = cfg.WorldSeed
	w := world.New(worldConfig, world.Deps{Publisher: router})
	manager := effects.NewManager(effects.ManagerConfig{
		World:      w,
		MaxEffects: store.Current().MaxEffects,
		RNG:        world.NewDeterministicRNG(cfg.WorldSeed, "effects"),
		Publisher:  router,
		Metrics:    telemetry.WrapMetrics(metrics),
	})
	defer manager.Dispose(context.Background())

	store.OnChange(func(ctx context.Context, s settings.Settings) {
		applySeverity(router, logConfig, s)
		manager.SetCapacity(s.MaxEffects)
		manager.RefreshAllConfigs(ctx, s.DefaultProjectile)
	})

	loop := sim.NewLoop(w, manager, sim.LoopConfig{TickRate: cfg.TickRate}, sim.Deps{
		Publisher: router,
		Logger:    telemetryLogger,
		Metrics:   telemetry.WrapMetrics(metrics),
	}, sim.LoopHooks{})

	wsHandler := ws.NewHandler(ws.HandlerConfig{
		World:     w,
		Effects:   manager,
		Console:   console.New(manager, store),
		Settings:  store,
		Logger:    telemetryLogger,
		Publisher: router,
	})
	handler := servernet.NewHTTPHandler(servernet.HTTPHandlerConfig{
		WebSocket:   http.HandlerFunc(wsHandler.Handle),
		Diagnostics: diagnostics(w, manager, router, metrics),
		TickRate:    cfg.TickRate,
		Logger:      telemetryLogger,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return loop.Run(groupCtx)
	})
	group.Go(func() error {
		telemetryLogger.Printf("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func buildSinks(cfg logging.Config) ([]logging.NamedSink, error) {
	var named []logging.NamedSink
	for _, name := range cfg.EnabledSinks {
		switch name {
		case "console":
			named = append(named, logging.NamedSink{Name: name, Sink: loggingSinks.NewConsoleSink(os.Stdout, cfg.Console)})
		case "json":
			sink, err := loggingSinks.OpenJSONFile(cfg.JSON.FilePath, cfg.JSON.FlushInterval)
			if err != nil {
				return nil, fmt.Errorf("open json log sink: %w", err)
			}
			named = append(named, logging.NamedSink{Name: name, Sink: sink})
		default:
			return nil, fmt.Errorf("unknown log sink %q", name)
		}
	}
	return named, nil
}

func applySeverity(router *logging.Router, cfg logging.Config, s settings.Settings) {
	if s.DebugMode {
		router.SetMinimumSeverity(logging.SeverityDebug)
		return
	}
	router.SetMinimumSeverity(cfg.MinimumSeverity)
}

// Diagnostics is the state reported on /diagnostics.
type Diagnostics struct {
	World           world.Stats         `json:"world"`
	ActiveEffects   int                 `json:"activeEffects"`
	MaxEffects      int                 `json:"maxEffects"`
	TrackedEntities int                 `json:"trackedEntities"`
	Router          logging.RouterStats `json:"router"`
	Metrics         map[string]uint64   `json:"metrics"`
}

func diagnostics(w *world.World, manager *effects.Manager, router *logging.Router, metrics *logging.Metrics) func() any {
	return func() any {
		return Diagnostics{
			World:           w.Stats(),
			ActiveEffects:   len(manager.Snapshot()),
			MaxEffects:      manager.Capacity(),
			TrackedEntities: manager.TrackedCount(),
			Router:          router.Stats(),
			Metrics:         metrics.Snapshot(),
		}
	}
}
