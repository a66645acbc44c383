package engine

import "math/rand"

// BuildDeck returns the 32 cards in rank order.
func BuildDeck() []Rank {
	deck := make([]Rank, 0, DeckSize)
	for r := Rank7; r <= RankA; r++ {
		for i := 0; i < CopiesPerRank; i++ {
			deck = append(deck, r)
		}
	}
	return deck
}

// Shuffle returns a shuffled copy of deck.
func Shuffle(deck []Rank, rng *rand.Rand) []Rank {
	shuffled := make([]Rank, len(deck))
	copy(shuffled, deck)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

func (g *Game) anyNeedsCards() bool {
	for i := range g.players {
		if g.players[i].NeedsCards() {
			return true
		}
	}
	return false
}

// dealCards tops seats up round-robin, one card at a time, until every seat
// holds HandSize cards or the deck runs out.
func (g *Game) dealCards() {
	for g.anyNeedsCards() && len(g.deck) > 0 {
		for i := range g.players {
			if g.players[i].NeedsCards() && len(g.deck) > 0 {
				g.players[i].Draw(g.draw())
			}
		}
	}
}

func (g *Game) draw() Rank {
	last := len(g.deck) - 1
	r := g.deck[last]
	g.deck = g.deck[:last]
	return r
}
