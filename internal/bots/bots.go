package bots

import (
	"fmt"
	"math/rand"

	"sedmice/internal/engine"
)

type Bot interface {
	ChooseMove(v engine.View) engine.Move
}

const (
	KindRandom = "random"
	KindGreedy = "greedy"
	KindLua    = "lua"
)

type RandomBot struct {
	RNG *rand.Rand
}

func NewRandom(seed int64) *RandomBot {
	return &RandomBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) ChooseMove(v engine.View) engine.Move {
	legal := v.LegalMoves()
	if len(legal) == 0 {
		return engine.EndTrick
	}
	return legal[b.RNG.Intn(len(legal))]
}

// GreedyBot grabs tricks that carry points and otherwise sheds its cheapest
// cards.
type GreedyBot struct{}

func NewGreedy() *GreedyBot {
	return &GreedyBot{}
}

func (b *GreedyBot) ChooseMove(v engine.View) engine.Move {
	legal := v.LegalMoves()
	if len(legal) == 0 {
		return engine.EndTrick
	}
	me := v.Current
	switch v.Phase {
	case engine.PhaseAwaitingLead:
		return leadHeuristic(v.Players[me].Hand, legal)
	case engine.PhaseAwaitingFollow:
		if v.Pile.Points() > 0 {
			if m, ok := capture(v, legal); ok {
				return m
			}
		}
		return cheapest(legal)
	case engine.PhaseAwaitingLeaderDecision:
		if v.PileWinner != me {
			if m, ok := capture(v, legal); ok {
				return m
			}
		}
		return engine.EndTrick
	default:
		return legal[0]
	}
}

// leadHeuristic leads the rank held most often, keeping sevens and point
// cards back on ties.
func leadHeuristic(hand engine.Counts, legal []engine.Move) engine.Move {
	best := legal[0]
	bestScore := -1
	for _, m := range legal {
		if m.IsEnd() {
			continue
		}
		score := hand[m.Rank()]*1000 - keepValue(m.Rank())
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best
}

// capture returns a move that takes over the trick, preferring the led rank
// to a seven.
func capture(v engine.View, legal []engine.Move) (engine.Move, bool) {
	var seven *engine.Move
	for i, m := range legal {
		if m.IsEnd() {
			continue
		}
		if m.Rank() == v.FirstCard {
			return m, true
		}
		if m.Rank() == engine.Wildcard {
			seven = &legal[i]
		}
	}
	if seven != nil {
		return *seven, true
	}
	return engine.EndTrick, false
}

func cheapest(legal []engine.Move) engine.Move {
	best := legal[0]
	bestScore := 1 << 30
	for _, m := range legal {
		if m.IsEnd() {
			continue
		}
		score := keepValue(m.Rank())
		if score < bestScore {
			bestScore = score
			best = m
		}
	}
	return best
}

// keepValue is higher for cards worth holding on to.
func keepValue(r engine.Rank) int {
	switch {
	case r == engine.Wildcard:
		return 100
	case r.Scores():
		return 50
	default:
		return int(r)
	}
}

// New builds a bot by kind. script is only read for KindLua.
func New(kind string, seed int64, script string, opts ...LuaOption) (Bot, error) {
	switch kind {
	case "", KindRandom:
		return NewRandom(seed), nil
	case KindGreedy:
		return NewGreedy(), nil
	case KindLua:
		return NewLua(script, opts...)
	default:
		return nil, fmt.Errorf("unknown bot kind %q", kind)
	}
}
