package agent

import (
	"context"
	"image"
	"log/slog"
	"math/rand"
	"time"

	"pixelbot/internal/combat"
	"pixelbot/internal/config"
	"pixelbot/internal/input"
	"pixelbot/internal/policy"
	"pixelbot/internal/util"
	"pixelbot/internal/vision"
)

// FrameSource supplies the current screen image, called once per tick.
type FrameSource interface {
	Capture() (image.Image, error)
}

const (
	taskRetreat    = "retreat"
	taskRest       = "rest"
	taskReposition = "reposition"
)

// Agent wires the perception-decision-action loop together. All mutation
// of combat state happens on the loop goroutine; movement plays out on the
// runner's task goroutine and is preempted by higher-priority decisions.
type Agent struct {
	cfg       *config.Bundle
	frames    FrameSource
	extractor *vision.Extractor
	combat    *combat.Controller
	movement  *input.Movement
	runner    *input.Runner
	policy    *policy.Policy
	rec       *Recorder
	rng       *rand.Rand

	prev         vision.GameState
	havePrev     bool
	inCombat     bool
	tick         int
	captureFails int
}

// New assembles an agent from a validated config bundle and its two
// external collaborators. rec may be nil to disable session recording.
func New(cfg *config.Bundle, frames FrameSource, act input.Actuator, rec *Recorder, seed int64) *Agent {
	return &Agent{
		cfg:       cfg,
		frames:    frames,
		extractor: vision.NewExtractor(cfg.Vision),
		combat: combat.NewController(
			cfg.Abilities,
			cfg.Control.Thresholds.AoEEnemies,
			cfg.Control.Keys.Interrupt,
			act,
		),
		movement: input.NewMovement(act, cfg.Control.Keys),
		runner:   input.NewRunner(),
		policy:   policy.New(cfg.Control.Thresholds, cfg.Control.RepositionAfter),
		rec:      rec,
		rng:      util.New(seed),
	}
}

// Run ticks the loop at the configured interval until ctx is cancelled.
// Cooldowns advance by measured wall-clock elapsed time, not by an assumed
// constant, so a slow tick does not skew them.
func (a *Agent) Run(ctx context.Context) error {
	interval := time.Duration(a.cfg.Control.TickInterval * float64(time.Second))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("control loop started", "interval", interval)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			a.runner.Cancel()
			a.runner.Wait()
			if a.rec != nil {
				if err := a.rec.Flush(); err != nil {
					slog.Error("session flush failed", "err", err)
				} else {
					slog.Info("session written", "path", a.rec.Path(), "events", a.rec.Len())
				}
			}
			slog.Info("control loop stopped", "ticks", a.tick)
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			a.Step(ctx, elapsed)
		}
	}
}

// Step runs one perception-decision-action tick. Exposed so tests can
// drive the loop with scripted time.
func (a *Agent) Step(ctx context.Context, elapsed float64) {
	a.tick++

	frame, err := a.frames.Capture()
	if err != nil {
		a.captureFails++
		slog.Warn("frame capture failed", "err", err, "consecutive", a.captureFails)
		frame = nil
	} else {
		a.captureFails = 0
	}
	st := a.extractor.Extract(frame)

	wasBusy := a.combat.Busy()
	activeChain := a.combat.ActiveChain()
	if err := a.combat.Tick(elapsed); err != nil {
		// actuator trouble: drop this action, keep the loop alive
		slog.Error("attack tick failed", "err", err)
	}
	if wasBusy && !a.combat.Busy() {
		a.emit("ChainDone", map[string]any{"chain": activeChain})
	}

	a.updateCombatFlag(st)

	d := a.policy.Decide(st, a.combat.Busy(), a.combat)
	a.apply(ctx, d)

	a.emit("Decision", map[string]any{
		"action":    d.Kind.String(),
		"chain":     d.Chain,
		"health":    st.Health,
		"endurance": st.Endurance,
		"target":    st.HasTarget,
		"enemies":   st.EnemyCount,
		"in_combat": a.inCombat,
		"task":      a.runner.Active(),
	})
}

// updateCombatFlag marks the agent as in combat on rapid endurance drain
// between consecutive snapshots. Telemetry only; the policy does not read
// it.
func (a *Agent) updateCombatFlag(st vision.GameState) {
	if a.havePrev && a.prev.Endurance-st.Endurance > a.cfg.Control.CombatDrain {
		a.inCombat = true
	} else if !st.HasTarget {
		a.inCombat = false
	}
	a.prev = st
	a.havePrev = true
}

func (a *Agent) apply(ctx context.Context, d policy.Decision) {
	switch d.Kind {
	case policy.Retreat:
		// survival preempts combat: kill the chain, replace any task
		a.combat.Interrupt()
		if a.runner.Active() != taskRetreat {
			a.runner.Start(ctx, taskRetreat, a.movement.Retreat)
		}
	case policy.Rest:
		if !a.runner.Busy() {
			a.runner.Start(ctx, taskRest, a.movement.Rest)
		}
	case policy.Attack:
		if err := a.combat.ExecuteChain(d.Chain); err != nil {
			slog.Error("chain start failed", "chain", d.Chain, "err", err)
		} else {
			a.emit("ChainStart", map[string]any{"chain": d.Chain})
		}
	case policy.Reposition:
		if !a.runner.Busy() {
			clockwise := a.rng.Intn(2) == 0
			a.runner.Start(ctx, taskReposition, func(taskCtx context.Context) error {
				return a.reposition(taskCtx, clockwise)
			})
		}
	}
}

// reposition scans for something to fight: tab-target, a small turn in a
// random direction, a short step forward.
func (a *Agent) reposition(ctx context.Context, clockwise bool) error {
	if err := a.movement.AcquireTarget(); err != nil {
		return err
	}
	turn := a.movement.TurnLeft
	if clockwise {
		turn = a.movement.TurnRight
	}
	if err := turn(ctx, 45); err != nil {
		return err
	}
	return a.movement.MoveForward(ctx, 500*time.Millisecond)
}

func (a *Agent) emit(evType string, payload map[string]any) {
	if a.rec != nil {
		a.rec.Emit(evType, payload)
	}
}

// InCombat reports the endurance-drain combat heuristic.
func (a *Agent) InCombat() bool {
	return a.inCombat
}

// Ticks returns how many loop iterations have run.
func (a *Agent) Ticks() int {
	return a.tick
}

// Combat exposes the attack controller for status inspection.
func (a *Agent) Combat() *combat.Controller {
	return a.combat
}
