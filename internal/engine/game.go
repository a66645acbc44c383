package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var ErrPlayerCount = fmt.Errorf("exactly %d players required", Seats)

// Game is one table. It is not safe for concurrent use; every driver owns its
// own instance.
type Game struct {
	rewards Rewards
	rng     *rand.Rand

	players [Seats]Player
	deck    []Rank
	pile    Counts

	current    int
	first      int
	pileWinner int
	firstCard  Rank
	led        bool

	phase  Phase
	closed bool
}

// NewGame shuffles a fresh deck and deals. A nil rng is seeded from the clock.
func NewGame(names []string, rewards Rewards, rng *rand.Rand) (*Game, error) {
	if len(names) != Seats {
		return nil, ErrPlayerCount
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Game{rewards: rewards, rng: rng}
	for i, name := range names {
		if name == "" {
			return nil, errors.New("player name required")
		}
		g.players[i] = NewPlayer(name)
	}
	g.Reset()
	return g, nil
}

// Reset starts a new game with a freshly shuffled deck.
func (g *Game) Reset() {
	g.deck = Shuffle(BuildDeck(), g.rng)
	g.pile = Counts{}
	g.current = 0
	g.first = 0
	g.pileWinner = 0
	g.firstCard = 0
	g.led = false
	g.closed = false
	for i := range g.players {
		g.players[i].clear()
	}
	g.dealCards()
	g.phase = g.derivePhase()
}

func (g *Game) derivePhase() Phase {
	switch {
	case g.handsEmpty() && len(g.deck) == 0:
		return PhaseGameOver
	case !g.led:
		return PhaseAwaitingLead
	case g.current == g.first:
		return PhaseAwaitingLeaderDecision
	default:
		return PhaseAwaitingFollow
	}
}

func (g *Game) handsEmpty() bool {
	for i := range g.players {
		if g.players[i].HandCount() != 0 {
			return false
		}
	}
	return true
}

func (g *Game) trick() trick {
	return trick{led: g.led, firstCard: g.firstCard}
}

// GameOver reports whether the deck and every hand are empty. A trick still
// on the pile at that point is never awarded.
func (g *Game) GameOver() bool {
	return len(g.deck) == 0 && g.handsEmpty()
}

func (g *Game) Phase() Phase { return g.phase }

// Closed reports whether the last Step ended the episode. Only Reset reopens it.
func (g *Game) Closed() bool { return g.closed }

func (g *Game) Current() int { return g.current }

func (g *Game) Leader() int { return g.first }

func (g *Game) PileWinner() int { return g.pileWinner }

func (g *Game) Player(seat int) Player { return g.players[seat] }

func (g *Game) Pile() Counts { return g.pile }

// FirstCard returns the led rank; ok is false before the trick starts.
func (g *Game) FirstCard() (Rank, bool) { return g.firstCard, g.led }

func (g *Game) DeckRemaining() int { return len(g.deck) }

func (g *Game) Rewards() Rewards { return g.rewards }

// WinnerBonus is the end-of-game adjustment for seat. It is zero until the
// game is over and on a tie.
func (g *Game) WinnerBonus(seat int) float64 {
	if !g.GameOver() {
		return 0
	}
	mine, theirs := g.players[seat].Points, g.players[other(seat)].Points
	switch {
	case mine > theirs:
		return g.rewards.WinBonus
	case mine < theirs:
		return -g.rewards.LossPenalty
	default:
		return 0
	}
}

// View is a read-only snapshot of the table.
type View struct {
	Phase      Phase
	Closed     bool
	Current    int
	Leader     int
	PileWinner int
	FirstCard  Rank
	Led        bool
	Pile       Counts
	Deck       int
	Players    [Seats]Player
}

func (g *Game) View() View {
	return View{
		Phase:      g.phase,
		Closed:     g.closed,
		Current:    g.current,
		Leader:     g.first,
		PileWinner: g.pileWinner,
		FirstCard:  g.firstCard,
		Led:        g.led,
		Pile:       g.pile,
		Deck:       len(g.deck),
		Players:    g.players,
	}
}

// LegalMoves lists the moves the seat to act may make, using the same checks
// as Step.
func (v View) LegalMoves() []Move {
	if v.Closed {
		return nil
	}
	return legalMoves(v.Phase, trick{led: v.Led, firstCard: v.FirstCard}, v.Players[v.Current].Hand)
}

// CardsInPlay counts every card the view accounts for. It is DeckSize in
// every reachable state.
func (v View) CardsInPlay() int {
	n := v.Deck + v.Pile.Total()
	for _, p := range v.Players {
		n += p.Hand.Total() + p.Won.Total()
	}
	return n
}
