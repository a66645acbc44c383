package sim

import (
	"fmt"
	"math/rand"

	"sedmice/internal/bots"
	"sedmice/internal/engine"
)

type MoveRecord struct {
	Game    int
	Step    int
	Phase   engine.Phase
	P       int
	M       engine.Move
	Outcome engine.Outcome
}

// RunSelfPlayGames plays full games, seat 0 driven by the greedy bot and
// seat 1 by the engine's random auto-play, and checks the table invariants
// after every step.
func RunSelfPlayGames(seed int64, games int, maxStepsPerGame int) error {
	g, err := engine.NewGame([]string{"P1", "P2"}, engine.DefaultRewards(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	greedy := bots.NewGreedy()

	for n := 0; n < games; n++ {
		if n > 0 {
			g.Reset()
		}
		if err := checkInvariants(g.View()); err != nil {
			return failure(seed, n, 0, g.Phase(), -1, nil, err.Error())
		}

		records := []MoveRecord{}
		for step := 0; ; step++ {
			if step >= maxStepsPerGame {
				return failure(seed, n, step, g.Phase(), g.Current(), records, "game did not finish")
			}
			player := g.Current()
			phase := g.Phase()
			legal := g.LegalMoves()
			if len(legal) == 0 {
				return failure(seed, n, step, phase, player, records, "no legal moves")
			}

			var m engine.Move
			var out engine.Outcome
			if player == 0 {
				m = greedy.ChooseMove(g.View())
				out = g.Step(m)
			} else {
				before := g.View()
				out = g.AutoPlay()
				m = inferMove(before, g.View())
			}
			records = append(records, MoveRecord{Game: n, Step: step, Phase: phase, P: player, M: m, Outcome: out})

			if out.Info.Illegal {
				return failure(seed, n, step, phase, player, records, fmt.Sprintf("legal move refused: %s", out.Info.Reason))
			}
			if err := checkInvariants(g.View()); err != nil {
				return failure(seed, n, step, g.Phase(), player, records, err.Error())
			}
			if g.Closed() != out.Done {
				return failure(seed, n, step, g.Phase(), player, records, "closed flag disagrees with outcome")
			}
			if out.Done {
				if !g.GameOver() {
					return failure(seed, n, step, g.Phase(), player, records, "done before game over")
				}
				break
			}
		}
	}
	return nil
}

// inferMove recovers what the auto-played seat did from two snapshots.
func inferMove(before, after engine.View) engine.Move {
	seat := before.Current
	for r := engine.Rank7; r <= engine.RankA; r++ {
		if after.Players[seat].Hand[r] < before.Players[seat].Hand[r] {
			return engine.Play(r)
		}
	}
	return engine.EndTrick
}

func checkInvariants(v engine.View) error {
	if n := v.CardsInPlay(); n != engine.DeckSize {
		return fmt.Errorf("card count mismatch: %d", n)
	}
	for i, p := range v.Players {
		for r, c := range p.Hand {
			if c < 0 || p.Won[r] < 0 {
				return fmt.Errorf("negative count for seat %d rank %s", i, engine.Rank(r))
			}
		}
		if p.Hand.Total() > engine.HandSize {
			return fmt.Errorf("hand size too large: seat %d has %d", i, p.Hand.Total())
		}
		if p.Points != p.Won.Points() {
			return fmt.Errorf("seat %d points %d do not match won cards %s", i, p.Points, p.Won)
		}
	}
	for r, c := range v.Pile {
		if c < 0 {
			return fmt.Errorf("negative pile count for rank %s", engine.Rank(r))
		}
	}
	if want := expectedPhase(v); want != v.Phase {
		return fmt.Errorf("phase %s, table says %s", v.Phase, want)
	}
	if v.Led && v.Pile.Total() == 0 {
		return fmt.Errorf("trick led with empty pile")
	}
	return nil
}

func expectedPhase(v engine.View) engine.Phase {
	empty := v.Deck == 0
	for _, p := range v.Players {
		if p.Hand.Total() != 0 {
			empty = false
		}
	}
	switch {
	case empty:
		return engine.PhaseGameOver
	case !v.Led:
		return engine.PhaseAwaitingLead
	case v.Current == v.Leader:
		return engine.PhaseAwaitingLeaderDecision
	default:
		return engine.PhaseAwaitingFollow
	}
}

func failure(seed int64, game int, step int, phase engine.Phase, player int, records []MoveRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	log := ""
	for _, r := range records[start:] {
		log += fmt.Sprintf("[g%d s%d p%d %v] %v reward=%v done=%v\n", r.Game, r.Step, r.P, r.Phase, r.M, r.Outcome.Reward, r.Outcome.Done)
	}
	return fmt.Errorf("seed=%d game=%d step=%d phase=%v player=%d reason=%s\nlast moves:\n%s",
		seed, game, step, phase, player, reason, log)
}
