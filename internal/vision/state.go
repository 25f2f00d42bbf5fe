package vision

// GameState is one tick's snapshot of everything the agent can see.
// Percentage fields are clamped to [0,100]. A snapshot is produced fresh
// every tick and never mutated after that.
type GameState struct {
	Health     float64
	Endurance  float64
	Experience float64
	HasTarget  bool
	EnemyCount int
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
