package combat

// AbilitySlot is one hotkey on the ability bar with its cooldown and cost
// bookkeeping. Slots are owned by the Controller and only mutated by its
// Tick decay and by successful activations.
type AbilitySlot struct {
	Hotkey   int
	Key      string
	Cooldown float64 // configured activation cooldown, seconds
	Cost     float64 // estimated endurance cost

	remaining float64
}

// Ready reports whether the slot is off cooldown.
func (s *AbilitySlot) Ready() bool {
	return s.remaining <= 0
}

// Remaining returns the cooldown seconds left, zero when ready.
func (s *AbilitySlot) Remaining() float64 {
	if s.remaining < 0 {
		return 0
	}
	return s.remaining
}

func (s *AbilitySlot) trigger() {
	s.remaining = s.Cooldown
}

func (s *AbilitySlot) decay(elapsed float64) {
	s.remaining -= elapsed
	if s.remaining < 0 {
		s.remaining = 0
	}
}
