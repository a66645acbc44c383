// Package env wraps a Game as a reset/step episode for a learning agent in
// seat 0. The opponent answers inside Step until the turn comes back.
package env

import (
	"math/rand"
	"time"

	"sedmice/internal/bots"
	"sedmice/internal/engine"
	"sedmice/internal/obs"
)

const AgentSeat = 0

type Config struct {
	Names   [engine.Seats]string
	Rewards engine.Rewards
	Seed    int64

	// Opponent drives the other seat. When nil the engine's random auto-play
	// is used.
	Opponent bots.Bot
}

type StepResult struct {
	Obs    obs.Observation
	Reward float64
	Done   bool
	Info   engine.Info
}

type Env struct {
	game     *engine.Game
	opponent bots.Bot
}

func New(cfg Config) (*Env, error) {
	names := cfg.Names
	if names[0] == "" {
		names[0] = "Agent"
	}
	if names[1] == "" {
		names[1] = "Opponent"
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := engine.NewGame(names[:], cfg.Rewards, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	e := &Env{game: g, opponent: cfg.Opponent}
	e.catchUp()
	return e, nil
}

func (e *Env) Game() *engine.Game { return e.game }

// Reset deals a new game and returns the first observation.
func (e *Env) Reset() obs.Observation {
	e.game.Reset()
	e.catchUp()
	return e.Observation()
}

func (e *Env) Observation() obs.Observation {
	return obs.Encode(e.game.View(), AgentSeat)
}

// Step plays action for the agent, then lets the opponent move while it holds
// the turn. The winner bonus is added on the step that ends the game.
func (e *Env) Step(action int) (StepResult, error) {
	m, err := obs.ActionToMove(action)
	if err != nil {
		return StepResult{}, err
	}
	wasClosed := e.game.Closed()

	out := e.game.Step(m)
	res := StepResult{Reward: out.Reward, Done: out.Done, Info: out.Info}
	for !res.Done && e.game.Current() != AgentSeat {
		opp := e.opponentMove()
		res.Done = opp.Done
		if opp.Info.Illegal {
			res.Info = opp.Info
		}
	}
	if res.Done && !wasClosed && e.game.GameOver() {
		res.Reward += e.game.WinnerBonus(AgentSeat)
	}
	res.Obs = e.Observation()
	return res, nil
}

func (e *Env) opponentMove() engine.Outcome {
	if e.opponent == nil {
		done, again := e.game.AutoPlayOpponent()
		return engine.Outcome{Done: done, PlaysAgain: again}
	}
	return e.game.Step(e.opponent.ChooseMove(e.game.View()))
}

// catchUp lets the opponent act until the agent holds the turn. A fresh deal
// always starts with seat 0, so this only matters for custom seatings.
func (e *Env) catchUp() {
	for !e.game.Closed() && e.game.Current() != AgentSeat {
		e.opponentMove()
	}
}
