package input

import (
	"context"
	"fmt"
	"math"
	"time"

	"pixelbot/internal/config"
)

const (
	// holdSlice bounds how long a single Press blocks, so a cancelled
	// context stops a long hold within one slice.
	holdSlice = 250 * time.Millisecond
	// turnRate approximates the in-game turn speed: one second of held
	// turn key sweeps about 180 degrees.
	turnRate = 180.0
	// restPause is how long Rest stands still to let endurance recover.
	restPause = 2 * time.Second
)

// Movement translates semantic movement intents into timed key holds.
// It is stateless between calls; every call blocks for roughly its stated
// duration and aborts early when ctx is cancelled. Movement cannot perceive
// obstacles, so no world-feasibility checks are attempted.
type Movement struct {
	act  Actuator
	keys config.Keys
}

func NewMovement(act Actuator, keys config.Keys) *Movement {
	return &Movement{act: act, keys: keys}
}

func (m *Movement) MoveForward(ctx context.Context, d time.Duration) error {
	return m.hold(ctx, m.keys.Forward, d)
}

func (m *Movement) MoveBackward(ctx context.Context, d time.Duration) error {
	return m.hold(ctx, m.keys.Backward, d)
}

func (m *Movement) StrafeLeft(ctx context.Context, d time.Duration) error {
	return m.hold(ctx, m.keys.StrafeLeft, d)
}

func (m *Movement) StrafeRight(ctx context.Context, d time.Duration) error {
	return m.hold(ctx, m.keys.StrafeRight, d)
}

// TurnLeft turns by approximately angle degrees.
func (m *Movement) TurnLeft(ctx context.Context, angle float64) error {
	return m.hold(ctx, m.keys.TurnLeft, turnDuration(angle))
}

// TurnRight turns by approximately angle degrees.
func (m *Movement) TurnRight(ctx context.Context, angle float64) error {
	return m.hold(ctx, m.keys.TurnRight, turnDuration(angle))
}

func (m *Movement) Jump() error {
	return m.tap(m.keys.Jump)
}

func (m *Movement) ToggleSprint() error {
	return m.tap(m.keys.Sprint)
}

func (m *Movement) ToggleFly() error {
	return m.tap(m.keys.Fly)
}

// AcquireTarget taps the target key to select the nearest enemy.
func (m *Movement) AcquireTarget() error {
	return m.tap(m.keys.Target)
}

// CircleStrafe orbits the current target for duration: short forward and
// strafe bursts interleaved with turn corrections summing to a full circle.
// The orbit radius is whatever the interleave produces at the current turn
// rate; it is not measured.
func (m *Movement) CircleStrafe(ctx context.Context, duration time.Duration, clockwise bool) error {
	steps := int(duration.Seconds() * 10)
	if steps < 1 {
		steps = 1
	}
	stepDur := duration / time.Duration(steps)
	turnAngle := 360.0 / float64(steps)
	strafe, turn := m.StrafeLeft, m.TurnLeft
	if clockwise {
		strafe, turn = m.StrafeRight, m.TurnRight
	}
	for i := 0; i < steps; i++ {
		if err := m.MoveForward(ctx, stepDur*3/10); err != nil {
			return err
		}
		if err := strafe(ctx, stepDur*4/10); err != nil {
			return err
		}
		if err := turn(ctx, turnAngle); err != nil {
			return err
		}
		if err := pause(ctx, stepDur*3/10); err != nil {
			return err
		}
	}
	return nil
}

// Kite backs away from the current target while weaving small turns to keep
// it roughly in front. distance scales the backing durations around a
// 15-unit baseline.
func (m *Movement) Kite(ctx context.Context, distance float64) error {
	scale := distance / 15
	if scale < 0.5 {
		scale = 0.5
	}
	back := func(base float64) time.Duration {
		return time.Duration(base * scale * float64(time.Second))
	}
	if err := m.MoveBackward(ctx, back(2.0)); err != nil {
		return err
	}
	if err := m.TurnLeft(ctx, 15); err != nil {
		return err
	}
	if err := m.MoveBackward(ctx, back(1.0)); err != nil {
		return err
	}
	if err := m.TurnRight(ctx, 30); err != nil {
		return err
	}
	if err := m.MoveBackward(ctx, back(1.0)); err != nil {
		return err
	}
	return m.TurnLeft(ctx, 15)
}

// Retreat is the emergency escape: back off, turn around, run.
func (m *Movement) Retreat(ctx context.Context) error {
	if err := m.MoveBackward(ctx, 3*time.Second); err != nil {
		return err
	}
	if err := m.TurnLeft(ctx, 180); err != nil {
		return err
	}
	return m.MoveForward(ctx, 5*time.Second)
}

// Rest stands still so endurance can recover. No keys are held.
func (m *Movement) Rest(ctx context.Context) error {
	return pause(ctx, restPause)
}

// NavigateTo performs one turn-then-move step toward a relative offset.
// It reports true when the offset is close enough to count as arrived.
func (m *Movement) NavigateTo(ctx context.Context, dx, dy float64) (bool, error) {
	dist := math.Hypot(dx, dy)
	if dist < 5 {
		return true, nil
	}
	angle := math.Atan2(dy, dx) * 180 / math.Pi
	switch {
	case angle > 10:
		if err := m.TurnRight(ctx, math.Min(angle, 45)); err != nil {
			return false, err
		}
	case angle < -10:
		if err := m.TurnLeft(ctx, math.Min(-angle, 45)); err != nil {
			return false, err
		}
	}
	move := time.Duration(math.Min(dist/20, 2.0) * float64(time.Second))
	if err := m.MoveForward(ctx, move); err != nil {
		return false, err
	}
	return false, nil
}

// hold presses key in holdSlice bursts until d is spent or ctx cancels.
func (m *Movement) hold(ctx context.Context, key string, d time.Duration) error {
	for d > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		slice := d
		if slice > holdSlice {
			slice = holdSlice
		}
		if err := m.act.Press(key, slice); err != nil {
			return fmt.Errorf("press %q: %w", key, err)
		}
		d -= slice
	}
	return nil
}

func (m *Movement) tap(key string) error {
	if err := m.act.Press(key, 0); err != nil {
		return fmt.Errorf("tap %q: %w", key, err)
	}
	return nil
}

func turnDuration(angle float64) time.Duration {
	if angle < 0 {
		angle = -angle
	}
	return time.Duration(angle / turnRate * float64(time.Second))
}

func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
