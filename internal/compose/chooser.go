package compose

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Chooser picks one decorative option. Tests inject a deterministic one.
type Chooser interface {
	Choose(options []string) string
}

// RandomChooser draws uniformly from a seeded PCG source.
type RandomChooser struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomChooser seeds the source; zero means "seed from the clock".
func NewRandomChooser(seed int64) *RandomChooser {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomChooser{rnd: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

// Choose returns a random element or "" for an empty slice.
func (c *RandomChooser) Choose(options []string) string {
	if len(options) == 0 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return options[c.rnd.IntN(len(options))]
}
