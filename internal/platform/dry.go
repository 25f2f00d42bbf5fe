package platform

import (
	"log/slog"
	"time"
)

// DryActuator logs every input action instead of injecting it. Useful
// for watching what the agent would do without touching the game.
type DryActuator struct{}

func NewDryActuator() *DryActuator { return &DryActuator{} }

func (d *DryActuator) Press(key string, hold time.Duration) error {
	slog.Info("dry press", "key", key, "hold", hold.Seconds())
	if hold > 0 {
		time.Sleep(hold)
	}
	return nil
}

func (d *DryActuator) Click(x, y int) error {
	slog.Info("dry click", "x", x, "y", y)
	return nil
}

func (d *DryActuator) MoveCursor(dx, dy int) error {
	slog.Info("dry cursor", "dx", dx, "dy", dy)
	return nil
}
