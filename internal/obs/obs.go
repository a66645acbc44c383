// Package obs encodes a table snapshot as a fixed-size integer vector and
// maps the discrete action space onto engine moves.
//
// Layout, in order:
//
//	[0:8)   the seat's hand counts, rank order 7..A
//	[8:16)  pile counts
//	[16:24) won counts summed over both seats
//	[24:26) points of seat 0 and seat 1
//	[26]    index of the led rank, or -1
//
// Actions 0..7 play the rank with that index; action 8 ends the trick.
package obs

import (
	"errors"
	"fmt"

	"sedmice/internal/engine"
)

const (
	Size       = 3*engine.NumRanks + engine.Seats + 1
	NumActions = engine.NumRanks + 1
	EndAction  = engine.NumRanks

	handOffset   = 0
	pileOffset   = handOffset + engine.NumRanks
	wonOffset    = pileOffset + engine.NumRanks
	pointsOffset = wonOffset + engine.NumRanks
	ledOffset    = pointsOffset + engine.Seats
)

var ErrUnknownAction = errors.New("unknown action")

type Observation [Size]int

// Encode builds the observation for seat.
func Encode(v engine.View, seat int) Observation {
	var o Observation
	hand := v.Players[seat].Hand
	for r := 0; r < engine.NumRanks; r++ {
		o[handOffset+r] = hand[r]
		o[pileOffset+r] = v.Pile[r]
		for _, p := range v.Players {
			o[wonOffset+r] += p.Won[r]
		}
	}
	for i, p := range v.Players {
		o[pointsOffset+i] = p.Points
	}
	o[ledOffset] = -1
	if v.Led {
		o[ledOffset] = int(v.FirstCard)
	}
	return o
}

// Slice returns the observation as a slice, for JSON.
func (o Observation) Slice() []int {
	return append([]int(nil), o[:]...)
}

func ActionToMove(a int) (engine.Move, error) {
	if a < 0 || a >= NumActions {
		return 0, fmt.Errorf("%w: %d", ErrUnknownAction, a)
	}
	if a == EndAction {
		return engine.EndTrick, nil
	}
	return engine.Play(engine.Rank(a)), nil
}

func MoveToAction(m engine.Move) int {
	if m.IsEnd() {
		return EndAction
	}
	return int(m.Rank())
}

// LegalMask marks the actions the seat to act may take.
func LegalMask(v engine.View) [NumActions]bool {
	var mask [NumActions]bool
	for _, m := range v.LegalMoves() {
		mask[MoveToAction(m)] = true
	}
	return mask
}
