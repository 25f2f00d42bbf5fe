package config

import "fmt"

// Thresholds drive the decision policy. They are tuning values, not
// contracts; the defaults match conservative solo play.
type Thresholds struct {
	HealthRetreat float64 `yaml:"health_retreat"` // retreat below this health %
	Rest          float64 `yaml:"rest"`           // rest below this endurance %
	AoEEnemies    int     `yaml:"aoe_enemies"`    // aoe_combo at/above this enemy count
}

// Keys maps movement and utility actions to keyboard keys.
type Keys struct {
	Forward     string `yaml:"forward"`
	Backward    string `yaml:"backward"`
	StrafeLeft  string `yaml:"strafe_left"`
	StrafeRight string `yaml:"strafe_right"`
	TurnLeft    string `yaml:"turn_left"`
	TurnRight   string `yaml:"turn_right"`
	Jump        string `yaml:"jump"`
	Sprint      string `yaml:"sprint"`
	Fly         string `yaml:"fly"`
	Target      string `yaml:"target"`    // acquire nearest enemy
	Interrupt   string `yaml:"interrupt"` // cancel the current activation
}

// ControlConfig holds loop timing, thresholds and the key map.
type ControlConfig struct {
	TickInterval    float64    `yaml:"tick_interval"`    // seconds between decision ticks
	RepositionAfter int        `yaml:"reposition_after"` // idle ticks before scanning for targets
	CombatDrain     float64    `yaml:"combat_drain"`     // endurance %-drop per tick marking combat
	LogLevel        string     `yaml:"log_level"`
	Thresholds      Thresholds `yaml:"thresholds"`
	Keys            Keys       `yaml:"keys"`
}

func DefaultControl() ControlConfig {
	return ControlConfig{
		TickInterval:    0.2,
		RepositionAfter: 10,
		CombatDrain:     5,
		LogLevel:        "info",
		Thresholds: Thresholds{
			HealthRetreat: 20,
			Rest:          30,
			AoEEnemies:    3,
		},
		Keys: Keys{
			Forward:     "w",
			Backward:    "s",
			StrafeLeft:  "a",
			StrafeRight: "d",
			TurnLeft:    "q",
			TurnRight:   "e",
			Jump:        "space",
			Sprint:      "r",
			Fly:         "f",
			Target:      "tab",
			Interrupt:   "esc",
		},
	}
}

func (c *ControlConfig) validate() error {
	if c.TickInterval < 0.05 || c.TickInterval > 2 {
		return fmt.Errorf("control: tick_interval %.3fs outside 0.05-2s", c.TickInterval)
	}
	if c.RepositionAfter < 0 {
		return fmt.Errorf("control: reposition_after must not be negative")
	}
	t := c.Thresholds
	if t.HealthRetreat < 0 || t.HealthRetreat > 100 {
		return fmt.Errorf("control: health_retreat %.1f outside 0-100", t.HealthRetreat)
	}
	if t.Rest < 0 || t.Rest > 100 {
		return fmt.Errorf("control: rest %.1f outside 0-100", t.Rest)
	}
	if t.AoEEnemies < 1 {
		return fmt.Errorf("control: aoe_enemies must be at least 1")
	}
	for name, key := range map[string]string{
		"forward":      c.Keys.Forward,
		"backward":     c.Keys.Backward,
		"strafe_left":  c.Keys.StrafeLeft,
		"strafe_right": c.Keys.StrafeRight,
		"turn_left":    c.Keys.TurnLeft,
		"turn_right":   c.Keys.TurnRight,
		"target":       c.Keys.Target,
	} {
		if key == "" {
			return fmt.Errorf("control: key %q is not bound", name)
		}
	}
	return nil
}
