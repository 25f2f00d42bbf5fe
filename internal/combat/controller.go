package combat

import (
	"errors"
	"fmt"
	"log/slog"

	"pixelbot/internal/config"
	"pixelbot/internal/input"
)

var (
	// ErrUnavailable means the ability is still on cooldown.
	ErrUnavailable = errors.New("ability on cooldown")
	// ErrUnknownAbility means the hotkey is not in the ability table.
	ErrUnknownAbility = errors.New("unknown ability hotkey")
	// ErrUnknownChain means no chain is registered under that name.
	ErrUnknownChain = errors.New("unknown attack chain")
	// ErrAlreadyRunning means a chain execution is already active.
	ErrAlreadyRunning = errors.New("attack chain already running")
)

// Controller owns all ability and chain state: the hotkey slots, the
// registered chains and the single live execution. All mutating calls must
// come from the control-loop goroutine; the controller does no locking of
// its own.
type Controller struct {
	act          input.Actuator
	interruptKey string
	aoeThreshold int

	slots  map[int]*AbilitySlot
	chains map[string]*Chain
	exec   *execution
}

func NewController(cfg config.AbilitiesConfig, aoeThreshold int, interruptKey string, act input.Actuator) *Controller {
	slots := make(map[int]*AbilitySlot, len(cfg.Abilities))
	for _, a := range cfg.Abilities {
		slots[a.Hotkey] = &AbilitySlot{
			Hotkey:   a.Hotkey,
			Key:      a.Key,
			Cooldown: a.Cooldown,
			Cost:     a.Cost,
		}
	}
	chains := make(map[string]*Chain, len(cfg.Chains))
	for name, steps := range cfg.Chains {
		ch := &Chain{Name: name, Steps: make([]Step, len(steps))}
		for i, s := range steps {
			ch.Steps[i] = Step{Hotkey: s.Hotkey, Wait: s.Wait}
		}
		chains[name] = ch
	}
	return &Controller{
		act:          act,
		interruptKey: interruptKey,
		aoeThreshold: aoeThreshold,
		slots:        slots,
		chains:       chains,
	}
}

// UseAbility presses the ability's key and starts its cooldown. It fails
// with ErrUnavailable while the slot is cooling down and performs no
// actuator call in that case.
func (c *Controller) UseAbility(hotkey int) error {
	slot, ok := c.slots[hotkey]
	if !ok {
		return fmt.Errorf("hotkey %d: %w", hotkey, ErrUnknownAbility)
	}
	if !slot.Ready() {
		return fmt.Errorf("hotkey %d (%.1fs left): %w", hotkey, slot.Remaining(), ErrUnavailable)
	}
	if err := c.act.Press(slot.Key, 0); err != nil {
		return fmt.Errorf("ability %d: %w", hotkey, err)
	}
	slot.trigger()
	slog.Debug("ability used", "hotkey", hotkey, "cooldown", slot.Cooldown)
	return nil
}

// ExecuteChain starts the named chain at step zero. At most one chain may
// run at a time; overlapping chains would double-press hotkeys.
func (c *Controller) ExecuteChain(name string) error {
	chain, ok := c.chains[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownChain)
	}
	if c.Busy() {
		return fmt.Errorf("%q while %q active: %w", name, c.exec.chain.Name, ErrAlreadyRunning)
	}
	c.exec = &execution{chain: chain}
	slog.Debug("chain started", "chain", name, "steps", len(chain.Steps), "duration", chain.Duration())
	return nil
}

// Tick advances cooldowns and the live execution by elapsed wall-clock
// seconds. Steps whose ability is still cooling down are skipped rather
// than retried, so a mistimed press can never stall the chain. Only
// actuator failures are returned; the current step is dropped but the
// execution stays live.
func (c *Controller) Tick(elapsed float64) error {
	for _, slot := range c.slots {
		slot.decay(elapsed)
	}
	if !c.Busy() {
		return nil
	}

	ex := c.exec
	ex.elapsed += elapsed
	for ex.state == execRunning {
		if !ex.fired {
			step := ex.chain.Steps[ex.step]
			ex.fired = true
			if err := c.UseAbility(step.Hotkey); err != nil {
				if errors.Is(err, ErrUnavailable) {
					// best-effort: skip, never retry
					slog.Debug("chain step skipped", "chain", ex.chain.Name, "step", ex.step, "hotkey", step.Hotkey)
				} else {
					c.advance(ex)
					return fmt.Errorf("chain %q step %d: %w", ex.chain.Name, ex.step, err)
				}
			}
		}
		if ex.elapsed < ex.chain.Steps[ex.step].Wait {
			return nil
		}
		ex.elapsed -= ex.chain.Steps[ex.step].Wait
		c.advance(ex)
	}
	return nil
}

func (c *Controller) advance(ex *execution) {
	ex.step++
	ex.fired = false
	if ex.step >= len(ex.chain.Steps) {
		ex.state = execCompleted
		slog.Debug("chain completed", "chain", ex.chain.Name)
		c.exec = nil
	}
}

// Interrupt cancels the active execution immediately. It is idempotent and
// taps the interrupt key to cut the in-flight ability animation.
func (c *Controller) Interrupt() {
	if !c.Busy() {
		return
	}
	name := c.exec.chain.Name
	c.exec.state = execInterrupted
	c.exec = nil
	if c.interruptKey != "" {
		if err := c.act.Press(c.interruptKey, 0); err != nil {
			slog.Warn("interrupt key press failed", "err", err)
		}
	}
	slog.Debug("chain interrupted", "chain", name)
}

// SelectChain is the pure attack-selection rule: the AoE chain at or above
// the configured enemy threshold, the basic chain otherwise. No side
// effects; the caller decides whether to ExecuteChain the result.
func (c *Controller) SelectChain(enemyCount int) string {
	if enemyCount >= c.aoeThreshold {
		return config.ChainAoE
	}
	return config.ChainBasic
}

// Busy reports whether a chain execution is active.
func (c *Controller) Busy() bool {
	return c.exec != nil && c.exec.state == execRunning
}

// ActiveChain returns the running chain's name, or "" when idle.
func (c *Controller) ActiveChain() string {
	if !c.Busy() {
		return ""
	}
	return c.exec.chain.Name
}

// CooldownRemaining returns the seconds left on a slot, zero for unknown
// hotkeys.
func (c *Controller) CooldownRemaining(hotkey int) float64 {
	if slot, ok := c.slots[hotkey]; ok {
		return slot.Remaining()
	}
	return 0
}

// Chains lists the registered chain names.
func (c *Controller) Chains() []string {
	names := make([]string, 0, len(c.chains))
	for name := range c.chains {
		names = append(names, name)
	}
	return names
}
