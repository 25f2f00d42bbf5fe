package input

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelbot/internal/config"
)

type press struct {
	key  string
	hold time.Duration
}

// recordActuator records presses without sleeping, so movement sequences
// run instantly in tests.
type recordActuator struct {
	mu      sync.Mutex
	presses []press
	after   int                // cancel after this many presses, 0 disables
	cancel  context.CancelFunc // called when after is reached
}

func (r *recordActuator) Press(key string, hold time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presses = append(r.presses, press{key, hold})
	if r.after > 0 && len(r.presses) >= r.after && r.cancel != nil {
		r.cancel()
	}
	return nil
}

func (r *recordActuator) Click(x, y int) error        { return nil }
func (r *recordActuator) MoveCursor(dx, dy int) error { return nil }

func (r *recordActuator) heldFor(key string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total time.Duration
	for _, p := range r.presses {
		if p.key == key {
			total += p.hold
		}
	}
	return total
}

func (r *recordActuator) keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.presses))
	for i, p := range r.presses {
		out[i] = p.key
	}
	return out
}

func newTestMovement(act Actuator) *Movement {
	return NewMovement(act, config.DefaultControl().Keys)
}

func TestHoldSlicesLongPresses(t *testing.T) {
	act := &recordActuator{}
	m := newTestMovement(act)

	require.NoError(t, m.MoveForward(context.Background(), 600*time.Millisecond))

	want := []press{
		{"w", 250 * time.Millisecond},
		{"w", 250 * time.Millisecond},
		{"w", 100 * time.Millisecond},
	}
	assert.Equal(t, want, act.presses)
}

func TestTurnDurationFromAngle(t *testing.T) {
	act := &recordActuator{}
	m := newTestMovement(act)

	require.NoError(t, m.TurnLeft(context.Background(), 90))
	assert.Equal(t, 500*time.Millisecond, act.heldFor("q"))

	require.NoError(t, m.TurnRight(context.Background(), 180))
	assert.Equal(t, time.Second, act.heldFor("e"))
}

func TestTaps(t *testing.T) {
	act := &recordActuator{}
	m := newTestMovement(act)

	require.NoError(t, m.Jump())
	require.NoError(t, m.ToggleSprint())
	require.NoError(t, m.ToggleFly())
	require.NoError(t, m.AcquireTarget())

	assert.Equal(t, []press{
		{"space", 0}, {"r", 0}, {"f", 0}, {"tab", 0},
	}, act.presses)
}

func TestRetreatSequence(t *testing.T) {
	act := &recordActuator{}
	m := newTestMovement(act)

	require.NoError(t, m.Retreat(context.Background()))

	// back 3s, 180 degree turn, forward 5s
	assert.Equal(t, 3*time.Second, act.heldFor("s"))
	assert.Equal(t, time.Second, act.heldFor("q"))
	assert.Equal(t, 5*time.Second, act.heldFor("w"))

	ks := act.keys()
	assert.Equal(t, "s", ks[0])
	assert.Equal(t, "w", ks[len(ks)-1])
}

func TestRetreatStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	act := &recordActuator{after: 3, cancel: cancel}
	m := newTestMovement(act)

	err := m.Retreat(ctx)
	require.ErrorIs(t, err, context.Canceled)
	// the backward hold was cut off mid-way; nothing after it ran
	assert.Less(t, act.heldFor("s"), 3*time.Second)
	assert.Zero(t, act.heldFor("w"))
}

func TestKiteScalesWithDistance(t *testing.T) {
	act := &recordActuator{}
	m := newTestMovement(act)

	require.NoError(t, m.Kite(context.Background(), 30))

	// scale 2.0: backing totals (2 + 1 + 1) * 2 seconds
	assert.Equal(t, 8*time.Second, act.heldFor("s"))
	// weave turns: 15 + 15 left, 30 right
	weaveDeg := 30.0
	assert.Equal(t, time.Duration(float64(time.Second)*weaveDeg/180), act.heldFor("q"))
	assert.Equal(t, time.Duration(float64(time.Second)*weaveDeg/180), act.heldFor("e"))
}

func TestKiteMinimumScale(t *testing.T) {
	act := &recordActuator{}
	m := newTestMovement(act)

	require.NoError(t, m.Kite(context.Background(), 1))
	assert.Equal(t, 2*time.Second, act.heldFor("s"))
}

func TestCircleStrafeCoversFullTurn(t *testing.T) {
	act := &recordActuator{}
	m := newTestMovement(act)

	require.NoError(t, m.CircleStrafe(context.Background(), 2*time.Second, false))

	// counter-clockwise uses left strafe and left turn only
	assert.Zero(t, act.heldFor("d"))
	assert.Zero(t, act.heldFor("e"))
	assert.Positive(t, act.heldFor("a"))
	// turn corrections sum to a full circle
	assert.InDelta(t, 2.0, act.heldFor("q").Seconds(), 0.01)
}

func TestNavigateToArrival(t *testing.T) {
	act := &recordActuator{}
	m := newTestMovement(act)

	done, err := m.NavigateTo(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Empty(t, act.presses)
}

func TestNavigateToTurnsAndMoves(t *testing.T) {
	act := &recordActuator{}
	m := newTestMovement(act)

	done, err := m.NavigateTo(context.Background(), 0, 40)
	require.NoError(t, err)
	assert.False(t, done)
	// 90 degrees clamped to 45, then a forward step
	assert.Equal(t, 250*time.Millisecond, act.heldFor("e"))
	assert.Equal(t, 2*time.Second, act.heldFor("w"))
}

func TestRunnerPreemption(t *testing.T) {
	r := NewRunner()
	first := make(chan struct{})

	r.Start(context.Background(), "slow", func(ctx context.Context) error {
		<-ctx.Done()
		close(first)
		return ctx.Err()
	})
	require.True(t, r.Busy())
	assert.Equal(t, "slow", r.Active())

	started := make(chan struct{})
	r.Start(context.Background(), "urgent", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	// preemption cancelled the first task
	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatal("first task was not cancelled")
	}
	<-started
	assert.Equal(t, "urgent", r.Active())

	r.Cancel()
	r.Wait()
	assert.False(t, r.Busy())
	assert.Equal(t, "", r.Active())
}

func TestRunnerIdle(t *testing.T) {
	r := NewRunner()
	assert.False(t, r.Busy())
	assert.Equal(t, "", r.Active())
	r.Cancel() // no-op when idle
	r.Wait()
}

func TestRunnerTaskCompletes(t *testing.T) {
	r := NewRunner()
	ran := make(chan struct{})
	r.Start(context.Background(), "quick", func(ctx context.Context) error {
		close(ran)
		return nil
	})
	<-ran
	r.Wait()
	assert.False(t, r.Busy())
}
