package input

import "time"

// Actuator is the primitive synthetic-input surface. Implementations inject
// real OS input (see internal/platform) or record calls in tests. Each call
// is expected to be cheap relative to the control loop's tick interval,
// except Press which blocks for its hold duration.
type Actuator interface {
	// Press holds key down for hold, then releases it. A hold of zero is a
	// plain tap.
	Press(key string, hold time.Duration) error
	// Click moves the cursor to absolute frame coordinates and left-clicks.
	Click(x, y int) error
	// MoveCursor moves the cursor by a relative offset.
	MoveCursor(dx, dy int) error
}
