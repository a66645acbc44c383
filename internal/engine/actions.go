package engine

import "fmt"

// Step applies m for the seat to act. Refused moves end the episode with the
// configured illegal-move reward; nothing is mutated.
func (g *Game) Step(m Move) Outcome {
	if g.closed {
		return g.illegal(ReasonGameOver)
	}
	if reason := g.Check(m); reason != ReasonNone {
		return g.illegal(reason)
	}
	if m.IsEnd() {
		return g.endTrick()
	}
	return g.play(m.Rank())
}

// Check returns why Step would refuse m, or ReasonNone. It never mutates.
func (g *Game) Check(m Move) Reason {
	if g.closed {
		return ReasonGameOver
	}
	return check(g.phase, g.trick(), g.players[g.current].Hand, m)
}

// LegalMoves lists what the seat to act may play: ranks ascending, then
// EndTrick. It is empty once the episode is closed.
func (g *Game) LegalMoves() []Move {
	if g.closed {
		return nil
	}
	return legalMoves(g.phase, g.trick(), g.players[g.current].Hand)
}

// AutoPlayOpponent plays a uniformly random legal move for the seat to act.
func (g *Game) AutoPlayOpponent() (done bool, playsAgain bool) {
	out := g.AutoPlay()
	return out.Done, out.PlaysAgain
}

// AutoPlay is AutoPlayOpponent returning the full outcome. With no legal move
// left it reports the game-over refusal Step would give.
func (g *Game) AutoPlay() Outcome {
	legal := g.LegalMoves()
	if len(legal) == 0 {
		return g.Step(EndTrick)
	}
	return g.Step(legal[g.rng.Intn(len(legal))])
}

func (g *Game) illegal(reason Reason) Outcome {
	g.closed = true
	return Outcome{
		Reward: g.rewards.IllegalMove,
		Done:   true,
		Info:   Info{Illegal: true, Reason: reason},
	}
}

func (g *Game) play(r Rank) Outcome {
	if _, ok := g.players[g.current].Play(r); !ok {
		panic(fmt.Sprintf("engine: seat %d played %s without holding it", g.current, r))
	}
	g.pile[r]++

	t := g.trick()
	if !t.led {
		g.firstCard = r
		g.led = true
		g.first = g.current
		g.pileWinner = g.current
	} else if claims(t, r) {
		g.pileWinner = g.current
	}
	g.current = other(g.current)
	g.phase = g.derivePhase()

	done := g.GameOver()
	if done {
		g.closed = true
	}
	return Outcome{Reward: g.rewards.LegalMove, Done: done}
}

func (g *Game) endTrick() Outcome {
	reward, again := g.resolveTrick()
	done := g.GameOver()
	if done {
		g.closed = true
	}
	return Outcome{Reward: reward, Done: done, PlaysAgain: again}
}

// resolveTrick hands the pile to the trick winner, who leads next, and tops
// hands back up.
func (g *Game) resolveTrick() (float64, bool) {
	winner := g.pileWinner
	g.players[winner].AddWonCards(g.pile)
	reward := float64(g.pile.Points()) + g.rewards.TrickBonus

	g.pile = Counts{}
	g.firstCard = 0
	g.led = false
	again := winner == g.first
	g.first = winner
	g.current = winner
	g.phase = PhaseRoundEndPending

	if !g.GameOver() {
		g.dealCards()
	}
	g.phase = g.derivePhase()
	return reward, again
}
