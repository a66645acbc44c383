package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerDrawAndPlay(t *testing.T) {
	p := NewPlayer("A")
	p.Draw(Rank9)
	p.Draw(Rank9)

	r, ok := p.Play(Rank9)
	assert.True(t, ok)
	assert.Equal(t, Rank9, r)
	assert.Equal(t, 1, p.Hand[Rank9])

	_, ok = p.Play(RankK)
	assert.False(t, ok)
	assert.Zero(t, p.Hand[RankK])
}

func TestPlayerNeedsCards(t *testing.T) {
	p := NewPlayer("A")
	for i := 0; i < HandSize-1; i++ {
		p.Draw(Rank8)
		assert.True(t, p.NeedsCards())
	}
	p.Draw(Rank8)
	assert.False(t, p.NeedsCards())
}

func TestAddWonCardsScoresTensAndAces(t *testing.T) {
	p := NewPlayer("A")
	p.AddWonCards(hand(Rank10, Rank10, RankA))
	assert.Equal(t, 30, p.Points)
	assert.Equal(t, 3, p.WonCount())

	p.AddWonCards(hand(Rank7, RankK, RankQ))
	assert.Equal(t, 30, p.Points)
	assert.Equal(t, 6, p.WonCount())
	assert.Equal(t, p.Won.Points(), p.Points)
}

func TestVisibleDropsZeroCounts(t *testing.T) {
	p := NewPlayer("A")
	p.Draw(RankJ)
	p.Play(RankJ)
	p.Draw(RankQ)

	assert.Equal(t, map[Rank]int{RankQ: 1}, p.VisibleHand())
	assert.Empty(t, p.VisibleWon())
}

func TestReadAccessorsOnSnapshot(t *testing.T) {
	g := newTestGame([Seats]Counts{hand(Rank8, Rank9), hand(RankA)}, RankK)
	g.players[1].AddWonCards(hand(Rank10))

	assert.Equal(t, 2, g.Player(0).HandCount())
	assert.True(t, g.Player(0).NeedsCards())
	assert.Equal(t, 1, g.Player(1).WonCount())
	assert.Equal(t, map[Rank]int{Rank8: 1, Rank9: 1}, g.Player(0).VisibleHand())
	assert.Equal(t, map[Rank]int{Rank10: 1}, g.Player(1).VisibleWon())
}
