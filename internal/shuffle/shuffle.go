// Package shuffle orders learning queues and answer options.
package shuffle

import (
	"math/rand/v2"
	"time"
)

// NoConsecutive returns a shuffled copy of items in which, as far as a
// single repair pass allows, no two neighbours share a key.
//
// The copy is shuffled uniformly with rng, then scanned once from left to
// right: when out[i] has the same key as out[i-1], the first later element
// with a different key is swapped into position i. When nothing later
// qualifies (a run at the tail), out[i] is swapped with an earlier element
// whose neighbours both accept it. Inputs dominated by one key can keep
// adjacent duplicates; that is accepted.
func NoConsecutive[T any, K comparable](rng *rand.Rand, items []T, keyOf func(T) K) []T {
	out := Shuffle(rng, items)
	for i := 1; i < len(out); i++ {
		prev := keyOf(out[i-1])
		if keyOf(out[i]) != prev {
			continue
		}
		if !swapForward(out, i, prev, keyOf) {
			swapBackward(out, i, keyOf)
		}
	}
	return out
}

func swapForward[T any, K comparable](out []T, i int, prev K, keyOf func(T) K) bool {
	for j := i + 1; j < len(out); j++ {
		if keyOf(out[j]) != prev {
			out[i], out[j] = out[j], out[i]
			return true
		}
	}
	return false
}

func swapBackward[T any, K comparable](out []T, i int, keyOf func(T) K) {
	dup := keyOf(out[i])
	for k := 0; k < i-1; k++ {
		cand := keyOf(out[k])
		if cand == dup {
			continue
		}
		if i+1 < len(out) && keyOf(out[i+1]) == cand {
			continue
		}
		if k > 0 && keyOf(out[k-1]) == dup {
			continue
		}
		if keyOf(out[k+1]) == dup {
			continue
		}
		out[i], out[k] = out[k], out[i]
		return
	}
}

// Shuffle returns a uniformly shuffled copy of items.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	if rng == nil {
		rng = NewRand()
	}
	out := make([]T, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// NewRand returns a time-seeded source for production use.
func NewRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Seeded returns a deterministic source, for tests and replays.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
