package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sedmice/internal/engine"
)

func TestActionDTOToEngine(t *testing.T) {
	m, err := (&ActionDTO{Type: "play", Rank: "10"}).ToEngine()
	require.NoError(t, err)
	assert.Equal(t, engine.Play(engine.Rank10), m)

	m, err = (&ActionDTO{Type: "end"}).ToEngine()
	require.NoError(t, err)
	assert.Equal(t, engine.EndTrick, m)

	for _, bad := range []*ActionDTO{nil, {Type: "play"}, {Type: "play", Rank: "2"}, {Type: "bid"}} {
		_, err := bad.ToEngine()
		assert.Error(t, err)
	}
}

func TestActionFromEngine(t *testing.T) {
	assert.Equal(t, ActionDTO{Type: "play", Rank: "A"}, ActionFromEngine(engine.Play(engine.RankA)))
	assert.Equal(t, ActionDTO{Type: "end"}, ActionFromEngine(engine.EndTrick))
	assert.Equal(t, "unknown", ActionFromEngine(engine.Move(42)).Type)
}

func TestBuildGameViewHidesOpponentHand(t *testing.T) {
	v := engine.View{
		Phase:     engine.PhaseAwaitingFollow,
		Current:   1,
		Leader:    0,
		FirstCard: engine.RankJ,
		Led:       true,
		Deck:      10,
	}
	v.Pile[engine.RankJ] = 1
	v.Players[0] = engine.NewPlayer("A")
	v.Players[0].Hand[engine.Rank9] = 2
	v.Players[1] = engine.NewPlayer("B")
	v.Players[1].Hand[engine.RankJ] = 1

	gv := BuildGameView(v, 0, "s1")
	assert.Equal(t, map[string]int{"9": 2}, gv.Players[0].Hand)
	assert.Nil(t, gv.Players[1].Hand)
	assert.Equal(t, 1, gv.Players[1].HandCount)
	require.NotNil(t, gv.Table.LedRank)
	assert.Equal(t, "J", *gv.Table.LedRank)
	assert.Equal(t, map[string]int{"J": 1}, gv.Table.Pile)
	// Not the viewer's turn.
	assert.Empty(t, gv.LegalActions)

	gv = BuildGameView(v, 1, "s1")
	assert.Equal(t, []ActionDTO{{Type: "play", Rank: "J"}}, gv.LegalActions)
}
