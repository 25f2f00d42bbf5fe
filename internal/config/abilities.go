package config

import "fmt"

// Ability maps a hotkey slot to its keyboard key, cooldown and endurance cost.
// Cost is an estimate used for bookkeeping only; the game enforces the real
// price.
type Ability struct {
	Hotkey   int     `yaml:"hotkey"`
	Key      string  `yaml:"key"`
	Cooldown float64 `yaml:"cooldown"` // seconds
	Cost     float64 `yaml:"cost"`
}

// ChainStep is one (ability, wait) pair of an attack chain.
type ChainStep struct {
	Hotkey int     `yaml:"hotkey"`
	Wait   float64 `yaml:"wait"` // seconds before the next step fires
}

// AbilitiesConfig holds the hotkey table and the named attack chains.
// Chains are configuration: registered at startup, read-only after.
type AbilitiesConfig struct {
	Abilities []Ability              `yaml:"abilities"`
	Chains    map[string][]ChainStep `yaml:"chains"`
}

// Chain names the policy depends on. They must exist in every valid config.
const (
	ChainBasic = "basic_combo"
	ChainPower = "power_combo"
	ChainAoE   = "aoe_combo"
)

// DefaultAbilities mirrors the stock hotkey bar: slots 1-9 with per-slot
// activation cooldowns and a handful of predefined chains.
func DefaultAbilities() AbilitiesConfig {
	cooldowns := []float64{1.2, 1.0, 1.8, 1.5, 2.2, 3.5, 2.5, 3.0, 1.0}
	costs := []float64{5, 4, 8, 6, 10, 15, 12, 14, 3}
	abilities := make([]Ability, 0, 9)
	for i := 0; i < 9; i++ {
		abilities = append(abilities, Ability{
			Hotkey:   i + 1,
			Key:      fmt.Sprintf("%d", i+1),
			Cooldown: cooldowns[i],
			Cost:     costs[i],
		})
	}
	return AbilitiesConfig{
		Abilities: abilities,
		Chains: map[string][]ChainStep{
			ChainBasic:     {{1, 1.2}, {2, 1.5}, {3, 2.0}},
			ChainPower:     {{4, 2.0}, {5, 2.5}, {6, 3.0}},
			ChainAoE:       {{7, 2.5}, {8, 3.0}, {9, 1.0}},
			"quick_strike": {{1, 0.8}, {2, 0.8}},
			"heavy_attack": {{6, 3.5}},
			"defensive":    {{5, 2.0}, {3, 1.5}},
			"ranged_combo": {{2, 1.0}, {4, 1.5}, {7, 2.0}},
			"melee_combo":  {{1, 1.2}, {3, 1.8}, {5, 2.2}},
		},
	}
}

func (c *AbilitiesConfig) validate() error {
	if len(c.Abilities) == 0 {
		return fmt.Errorf("abilities: empty hotkey table")
	}
	slots := make(map[int]bool, len(c.Abilities))
	for _, a := range c.Abilities {
		if a.Hotkey < 1 || a.Hotkey > 9 {
			return fmt.Errorf("abilities: hotkey %d outside 1-9", a.Hotkey)
		}
		if slots[a.Hotkey] {
			return fmt.Errorf("abilities: hotkey %d defined twice", a.Hotkey)
		}
		if a.Key == "" {
			return fmt.Errorf("abilities: hotkey %d has no key", a.Hotkey)
		}
		if a.Cooldown < 0 || a.Cost < 0 {
			return fmt.Errorf("abilities: hotkey %d has negative cooldown or cost", a.Hotkey)
		}
		slots[a.Hotkey] = true
	}
	for _, name := range []string{ChainBasic, ChainAoE} {
		if _, ok := c.Chains[name]; !ok {
			return fmt.Errorf("abilities: required chain %q missing", name)
		}
	}
	for name, steps := range c.Chains {
		if len(steps) == 0 {
			return fmt.Errorf("abilities: chain %q is empty", name)
		}
		for i, s := range steps {
			if !slots[s.Hotkey] {
				return fmt.Errorf("abilities: chain %q step %d uses unknown hotkey %d", name, i, s.Hotkey)
			}
			if s.Wait <= 0 {
				return fmt.Errorf("abilities: chain %q step %d wait must be positive", name, i)
			}
		}
	}
	return nil
}
