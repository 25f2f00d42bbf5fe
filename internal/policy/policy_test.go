package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pixelbot/internal/config"
	"pixelbot/internal/vision"
)

type fixedSelector struct{ calls []int }

func (s *fixedSelector) SelectChain(enemyCount int) string {
	s.calls = append(s.calls, enemyCount)
	if enemyCount >= 3 {
		return config.ChainAoE
	}
	return config.ChainBasic
}

func newTestPolicy() *Policy {
	return New(config.DefaultControl().Thresholds, 5)
}

func TestRetreatDominatesEverything(t *testing.T) {
	p := newTestPolicy()
	sel := &fixedSelector{}

	// low health, low endurance, target present, chain running: retreat wins
	st := vision.GameState{Health: 10, Endurance: 10, HasTarget: true, EnemyCount: 4}
	d := p.Decide(st, true, sel)
	assert.Equal(t, Retreat, d.Kind)
	assert.Empty(t, sel.calls)
}

func TestRestWhenEnduranceLow(t *testing.T) {
	p := newTestPolicy()
	st := vision.GameState{Health: 80, Endurance: 15}

	d := p.Decide(st, false, &fixedSelector{})
	assert.Equal(t, Rest, d.Kind)
}

func TestNoRestWhileChainRunning(t *testing.T) {
	p := newTestPolicy()
	st := vision.GameState{Health: 80, Endurance: 15, HasTarget: true}

	d := p.Decide(st, true, &fixedSelector{})
	assert.Equal(t, Idle, d.Kind)
}

func TestAttackWithSelectedChain(t *testing.T) {
	p := newTestPolicy()
	sel := &fixedSelector{}
	st := vision.GameState{Health: 90, Endurance: 90, HasTarget: true, EnemyCount: 4}

	d := p.Decide(st, false, sel)
	assert.Equal(t, Attack, d.Kind)
	assert.Equal(t, config.ChainAoE, d.Chain)
	assert.Equal(t, []int{4}, sel.calls)

	st.EnemyCount = 1
	d = p.Decide(st, false, sel)
	assert.Equal(t, Attack, d.Kind)
	assert.Equal(t, config.ChainBasic, d.Chain)
}

func TestNoAttackWhileChainRunning(t *testing.T) {
	p := newTestPolicy()
	sel := &fixedSelector{}
	st := vision.GameState{Health: 90, Endurance: 90, HasTarget: true}

	d := p.Decide(st, true, sel)
	assert.Equal(t, Idle, d.Kind)
	assert.Empty(t, sel.calls)
}

func TestRepositionAfterIdleStreak(t *testing.T) {
	p := New(config.DefaultControl().Thresholds, 3)
	st := vision.GameState{Health: 90, Endurance: 90}

	assert.Equal(t, Idle, p.Decide(st, false, nil).Kind)
	assert.Equal(t, Idle, p.Decide(st, false, nil).Kind)
	assert.Equal(t, Reposition, p.Decide(st, false, nil).Kind)
	// the streak resets after a reposition
	assert.Equal(t, Idle, p.Decide(st, false, nil).Kind)
}

func TestIdleStreakResetByActivity(t *testing.T) {
	p := New(config.DefaultControl().Thresholds, 3)
	calm := vision.GameState{Health: 90, Endurance: 90}
	hostile := vision.GameState{Health: 90, Endurance: 90, HasTarget: true}

	p.Decide(calm, false, nil)
	p.Decide(calm, false, nil)
	p.Decide(hostile, false, &fixedSelector{})
	// two more idle ticks are not enough to reposition again
	assert.Equal(t, Idle, p.Decide(calm, false, nil).Kind)
	assert.Equal(t, Idle, p.Decide(calm, false, nil).Kind)
	assert.Equal(t, Reposition, p.Decide(calm, false, nil).Kind)
}

func TestRepositionDisabled(t *testing.T) {
	p := New(config.DefaultControl().Thresholds, 0)
	st := vision.GameState{Health: 90, Endurance: 90}
	for i := 0; i < 50; i++ {
		assert.Equal(t, Idle, p.Decide(st, false, nil).Kind)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "attack", Attack.String())
	assert.Equal(t, "retreat", Retreat.String())
	assert.Equal(t, "rest", Rest.String())
	assert.Equal(t, "reposition", Reposition.String())
	assert.Equal(t, "idle", Idle.String())
}
