package engine

import (
	"fmt"
	"strings"
)

type Rank int

const (
	Rank7 Rank = iota
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
)

// NumRanks is the number of distinct ranks in the deck.
const NumRanks = 8

// Wildcard continues any trick regardless of the led rank.
const Wildcard = Rank7

const (
	CopiesPerRank = 4
	DeckSize      = NumRanks * CopiesPerRank
	HandSize      = 4
	Seats         = 2
	PointsPerCard = 10
)

var rankNames = [NumRanks]string{"7", "8", "9", "10", "J", "Q", "K", "A"}

func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return rankNames[r]
}

func (r Rank) Valid() bool {
	return r >= Rank7 && r <= RankA
}

// Scores reports whether the rank carries points when won.
func (r Rank) Scores() bool {
	return r == Rank10 || r == RankA
}

func ParseRank(s string) (Rank, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range rankNames {
		if name == s {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("invalid rank %q", s)
}

// AllRanks lists ranks in index order.
func AllRanks() []Rank {
	out := make([]Rank, NumRanks)
	for i := range out {
		out[i] = Rank(i)
	}
	return out
}

// Counts maps each rank to a non-negative number of copies.
type Counts [NumRanks]int

func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Points is the score value of the cards counted.
func (c Counts) Points() int {
	return PointsPerCard * (c[Rank10] + c[RankA])
}

// Visible drops zero entries.
func (c Counts) Visible() map[Rank]int {
	out := make(map[Rank]int)
	for r, v := range c {
		if v > 0 {
			out[Rank(r)] = v
		}
	}
	return out
}

func (c Counts) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	for r, v := range c {
		if v <= 0 {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s:%d", Rank(r), v)
	}
	b.WriteString("}")
	return b.String()
}

// Move is either a rank the current seat plays or EndTrick.
type Move int

const EndTrick Move = NumRanks

func Play(r Rank) Move { return Move(r) }

func (m Move) IsEnd() bool { return m == EndTrick }

func (m Move) Rank() Rank { return Rank(m) }

func (m Move) Valid() bool {
	return m == EndTrick || Rank(m).Valid()
}

func (m Move) String() string {
	if m.IsEnd() {
		return "END"
	}
	return Rank(m).String()
}

// ParseMove accepts a rank name or END.
func ParseMove(s string) (Move, error) {
	if strings.EqualFold(strings.TrimSpace(s), "END") {
		return EndTrick, nil
	}
	r, err := ParseRank(s)
	if err != nil {
		return 0, err
	}
	return Play(r), nil
}

type Phase int

const (
	PhaseAwaitingLead Phase = iota
	PhaseAwaitingFollow
	PhaseAwaitingLeaderDecision
	PhaseRoundEndPending
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingLead:
		return "AwaitingLead"
	case PhaseAwaitingFollow:
		return "AwaitingFollow"
	case PhaseAwaitingLeaderDecision:
		return "AwaitingLeaderDecision"
	case PhaseRoundEndPending:
		return "RoundEndPending"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Reason explains why a move was refused. The empty reason means accepted.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonEndByNonLeader      Reason = "end played by non-leader"
	ReasonEndBeforeCard       Reason = "end played before any card"
	ReasonInvalidContinuation Reason = "leader continued with non-matching card"
	ReasonNotInHand           Reason = "rank not in hand"
	ReasonInvalidMove         Reason = "invalid move"
	ReasonRoundEndPending     Reason = "round end pending"
	ReasonGameOver            Reason = "game over"
)

type Info struct {
	Illegal bool
	Reason  Reason
}

// Outcome is the result of one Step.
type Outcome struct {
	Reward     float64
	Done       bool
	PlaysAgain bool
	Info       Info
}

// Rewards are the reward magnitudes handed back by Step. They are a policy of
// the caller; the rules do not depend on them.
type Rewards struct {
	LegalMove   float64 `json:"legal_move"`
	IllegalMove float64 `json:"illegal_move"`
	TrickBonus  float64 `json:"trick_bonus"`
	WinBonus    float64 `json:"win_bonus"`
	LossPenalty float64 `json:"loss_penalty"`
}

// DefaultRewards is the training scale.
func DefaultRewards() Rewards {
	return Rewards{
		LegalMove:   5,
		IllegalMove: -1000,
		TrickBonus:  10,
		WinBonus:    50,
		LossPenalty: 30,
	}
}

// ConsoleRewards is the smaller scale used for interactive play.
func ConsoleRewards() Rewards {
	return Rewards{
		LegalMove:   0,
		IllegalMove: -100,
		TrickBonus:  5,
	}
}
