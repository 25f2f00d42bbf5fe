package combat

// Step is one (ability, wait) pair of a chain: press the ability, then wait
// Wait seconds before the next step.
type Step struct {
	Hotkey int
	Wait   float64
}

// Chain is a named ordered attack sequence. Chains are configuration:
// registered at startup, immutable after.
type Chain struct {
	Name  string
	Steps []Step
}

// Duration is the worst-case play time of the chain, the sum of step waits.
func (c *Chain) Duration() float64 {
	total := 0.0
	for _, s := range c.Steps {
		total += s.Wait
	}
	return total
}

type execState int

const (
	execRunning execState = iota
	execCompleted
	execInterrupted
)

// execution is the run-time cursor over a chain. Created when a chain
// starts, discarded when it completes or is interrupted.
type execution struct {
	chain   *Chain
	step    int
	elapsed float64 // time spent waiting on the current step
	fired   bool    // current step's ability already pressed
	state   execState
}
