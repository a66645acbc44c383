package engine

import (
	"fmt"
	"math/rand"
)

func hand(rs ...Rank) Counts {
	var c Counts
	for _, r := range rs {
		c[r]++
	}
	return c
}

// newTestGame builds a table with fixed hands and deck; seat 0 leads.
func newTestGame(hands [Seats]Counts, deck ...Rank) *Game {
	g := &Game{
		rewards: DefaultRewards(),
		rng:     rand.New(rand.NewSource(1)),
		deck:    append([]Rank(nil), deck...),
	}
	for i := range g.players {
		g.players[i] = NewPlayer(fmt.Sprintf("P%d", i+1))
		g.players[i].Hand = hands[i]
	}
	g.phase = g.derivePhase()
	return g
}
