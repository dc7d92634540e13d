package sim

import (
	"context"
	"time"

	"boulder-rain/internal/telemetry"
	"boulder-rain/internal/world"
	"boulder-rain/logging"
	"boulder-rain/logging/simulation"
)

// DefaultTickRate matches the host game's 60 updates per second.
const DefaultTickRate = 60

// Stepper advances the world by one tick.
type Stepper interface {
	Step() world.StepResult
}

// Ticker runs per-tick work after the world moved, e.g. the effect manager.
type Ticker interface {
	Tick(ctx context.Context, tick uint64)
}

// LoopConfig tunes the fixed-timestep loop.
type LoopConfig struct {
	TickRate int
}

// Deps bundles the loop's observers.
type Deps struct {
	Publisher logging.Publisher
	Logger    telemetry.Logger
	Metrics   telemetry.Metrics
	Clock     logging.Clock
}

// LoopHooks lets callers observe each completed step.
type LoopHooks struct {
	AfterStep func(LoopStepResult)
}

// LoopStepResult describes one completed step.
type LoopStepResult struct {
	Tick     uint64
	World    world.StepResult
	Duration time.Duration
	Budget   time.Duration
}

// Loop drives the world and the effect manager at a fixed rate.
type Loop struct {
	world   Stepper
	manager Ticker
	config  LoopConfig
	deps    Deps
	hooks   LoopHooks

	overrunStreak uint64
}

func NewLoop(w Stepper, manager Ticker, cfg LoopConfig, deps Deps, hooks LoopHooks) *Loop {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if deps.Publisher == nil {
		deps.Publisher = logging.NopPublisher()
	}
	if deps.Logger == nil {
		deps.Logger = telemetry.WrapLogger(nil)
	}
	if deps.Metrics == nil {
		deps.Metrics = telemetry.Nop()
	}
	if deps.Clock == nil {
		deps.Clock = logging.SystemClock{}
	}
	return &Loop{world: w, manager: manager, config: cfg, deps: deps, hooks: hooks}
}

// Budget is the wall time available to one tick.
func (l *Loop) Budget() time.Duration {
	return time.Second / time.Duration(l.config.TickRate)
}

// Advance runs a single step: the world moves first, then the manager sees
// the new tick.
func (l *Loop) Advance(ctx context.Context) LoopStepResult {
	if l == nil {
		return LoopStepResult{}
	}
	start := l.deps.Clock.Now()
	stepped := l.world.Step()
	if l.manager != nil {
		l.manager.Tick(ctx, stepped.Tick)
	}
	result := LoopStepResult{
		Tick:     stepped.Tick,
		World:    stepped,
		Duration: l.deps.Clock.Now().Sub(start),
		Budget:   l.Budget(),
	}
	l.deps.Metrics.Add(telemetry.MetricTicks, 1)
	l.observe(ctx, result)
	if l.hooks.AfterStep != nil {
		l.hooks.AfterStep(result)
	}
	return result
}

// Run advances the loop on every tick of a wall-clock ticker until ctx is
// cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if l == nil {
		return nil
	}
	ticker := time.NewTicker(l.Budget())
	defer ticker.Stop()

	l.deps.Logger.Printf("simulation loop running at %d ticks per second", l.config.TickRate)
	for {
		select {
		case <-ctx.Done():
			l.deps.Logger.Printf("simulation loop stopped")
			return nil
		case <-ticker.C:
			l.Advance(ctx)
		}
	}
}

func (l *Loop) observe(ctx context.Context, result LoopStepResult) {
	if result.Budget <= 0 || result.Duration <= result.Budget {
		l.overrunStreak = 0
		return
	}
	l.overrunStreak++
	l.deps.Metrics.Add(telemetry.MetricTickOverruns, 1)
	simulation.TickBudgetOverrun(ctx, l.deps.Publisher, result.Tick, simulation.TickBudgetOverrunPayload{
		DurationMillis: result.Duration.Milliseconds(),
		BudgetMillis:   result.Budget.Milliseconds(),
		Ratio:          float64(result.Duration) / float64(result.Budget),
		Streak:         l.overrunStreak,
	})
}
