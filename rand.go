package noisim

import (
	"math/rand"
	"time"
)

// uniformSource yields uniform draws on [0,1). Noise channels and
// measurement sampling consume the same source in deterministic invocation
// order, so reseeding before a shot loop reproduces its histogram
// bit-for-bit.
type uniformSource = *rand.Rand

func newUniformSource() uniformSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func seededUniformSource(seed int64) uniformSource {
	return rand.New(rand.NewSource(seed))
}
