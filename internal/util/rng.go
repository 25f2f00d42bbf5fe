package util

import (
	"math/rand"
	"time"
)

// New returns a seeded generator. A zero seed draws from the clock so
// default runs differ; fixed seeds make runs reproducible.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}
