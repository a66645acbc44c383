package engine_test

import (
	"testing"

	"sedmice/internal/engine/sim"
)

func TestSelfPlayGamesManySeeds(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		if err := sim.RunSelfPlayGames(seed, 5, 200); err != nil {
			t.Fatalf("self-play failed: %v", err)
		}
	}
}

func FuzzSelfPlayGames(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Add(int64(20261019))
	f.Fuzz(func(t *testing.T, seed int64) {
		if err := sim.RunSelfPlayGames(seed, 2, 200); err != nil {
			t.Fatalf("self-play failed: %v", err)
		}
	})
}
