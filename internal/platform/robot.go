package platform

import (
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"
)

// Robot injects synthetic keyboard and mouse input into whatever window
// has focus. It satisfies input.Actuator.
type Robot struct{}

func NewRobot() *Robot { return &Robot{} }

// Press taps key when hold is zero, otherwise holds it down for the
// given duration before releasing.
func (r *Robot) Press(key string, hold time.Duration) error {
	if hold <= 0 {
		if err := robotgo.KeyTap(key); err != nil {
			return fmt.Errorf("tapping %q: %w", key, err)
		}
		return nil
	}
	if err := robotgo.KeyDown(key); err != nil {
		return fmt.Errorf("pressing %q: %w", key, err)
	}
	time.Sleep(hold)
	if err := robotgo.KeyUp(key); err != nil {
		return fmt.Errorf("releasing %q: %w", key, err)
	}
	return nil
}

// Click moves the cursor to absolute screen coordinates and left-clicks.
func (r *Robot) Click(x, y int) error {
	robotgo.Move(x, y)
	robotgo.Click()
	return nil
}

// MoveCursor shifts the cursor relative to its current position.
func (r *Robot) MoveCursor(dx, dy int) error {
	robotgo.MoveRelative(dx, dy)
	return nil
}
