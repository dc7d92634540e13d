package telemetry

import (
	"log"

	"boulder-rain/logging"
)

// Metric keys recorded by the effect manager and the simulation loop.
const (
	MetricEffectsActive      = "effects_active"
	MetricEffectsStarted     = "effects_started_total"
	MetricEffectsStopped     = "effects_stopped_total"
	MetricCapacityRejections = "effects_capacity_rejections_total"
	MetricProjectilesSpawned = "projectiles_spawned_total"
	MetricSpawnRejections    = "projectiles_spawn_rejections_total"
	MetricTrackedEntities    = "tracked_entities"
	MetricSteeringFaults     = "steering_faults_total"
	MetricTicks              = "sim_ticks_total"
	MetricTickOverruns       = "sim_tick_overruns_total"
)

// Logger is the operational text log used by the server and its loops.
type Logger interface {
	Printf(format string, args ...any)
}

type LoggerFunc func(format string, args ...any)

func (f LoggerFunc) Printf(format string, args ...any) {
	if f == nil {
		return
	}
	f(format, args...)
}

// WrapLogger adapts a *log.Logger. A nil logger discards output.
func WrapLogger(logger *log.Logger) Logger {
	return LoggerFunc(func(format string, args ...any) {
		if logger == nil {
			return
		}
		logger.Printf(format, args...)
	})
}

// Metrics records counters and gauges.
type Metrics interface {
	Add(key string, delta uint64)
	Store(key string, value uint64)
}

// WrapMetrics adapts the shared logging.Metrics registry. A nil registry
// yields a Metrics that drops every update.
func WrapMetrics(metrics *logging.Metrics) Metrics {
	return registry{metrics: metrics}
}

// Nop returns a Metrics that ignores every update.
func Nop() Metrics {
	return registry{}
}

type registry struct {
	metrics *logging.Metrics
}

func (r registry) Add(key string, delta uint64) {
	if r.metrics == nil {
		return
	}
	r.metrics.TelemetryAdd(key, delta)
}

func (r registry) Store(key string, value uint64) {
	if r.metrics == nil {
		return
	}
	r.metrics.TelemetryStore(key, value)
}
