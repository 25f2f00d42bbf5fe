package policy

import (
	"pixelbot/internal/config"
	"pixelbot/internal/vision"
)

// Kind tags a decision. Exactly one is emitted per tick.
type Kind int

const (
	Idle Kind = iota
	Attack
	Retreat
	Rest
	Reposition
)

func (k Kind) String() string {
	switch k {
	case Attack:
		return "attack"
	case Retreat:
		return "retreat"
	case Rest:
		return "rest"
	case Reposition:
		return "reposition"
	default:
		return "idle"
	}
}

// Decision is the single output of one policy tick. Nothing about it is
// persisted; the loop consumes it and moves on.
type Decision struct {
	Kind  Kind
	Chain string // set for Attack
}

// ChainSelector picks an attack chain for an observed enemy count.
// Satisfied by combat.Controller.
type ChainSelector interface {
	SelectChain(enemyCount int) string
}

// Policy is the threshold-driven decision rule. Priority, top to bottom,
// first match wins:
//
//  1. health below the retreat threshold — Retreat, unconditionally
//  2. endurance below the rest threshold and no chain running — Rest
//  3. idle with a target — Attack with the selected chain
//  4. idle without a target for long enough — Reposition to scan
//  5. otherwise — Idle
//
// Survival dominates: Retreat wins every tie.
type Policy struct {
	thresholds      config.Thresholds
	repositionAfter int

	idleStreak int
}

func New(thresholds config.Thresholds, repositionAfter int) *Policy {
	return &Policy{thresholds: thresholds, repositionAfter: repositionAfter}
}

// Decide maps one snapshot plus the attack controller's busy flag to a
// decision.
func (p *Policy) Decide(st vision.GameState, chainRunning bool, sel ChainSelector) Decision {
	switch {
	case st.Health < p.thresholds.HealthRetreat:
		p.idleStreak = 0
		return Decision{Kind: Retreat}
	case st.Endurance < p.thresholds.Rest && !chainRunning:
		p.idleStreak = 0
		return Decision{Kind: Rest}
	case !chainRunning && st.HasTarget:
		p.idleStreak = 0
		return Decision{Kind: Attack, Chain: sel.SelectChain(st.EnemyCount)}
	case !chainRunning && !st.HasTarget:
		p.idleStreak++
		if p.repositionAfter > 0 && p.idleStreak >= p.repositionAfter {
			p.idleStreak = 0
			return Decision{Kind: Reposition}
		}
		return Decision{Kind: Idle}
	default:
		return Decision{Kind: Idle}
	}
}
