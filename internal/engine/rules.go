package engine

// trick is the part of the table state a legality check needs.
type trick struct {
	led       bool
	firstCard Rank
}

type playCheck func(t trick, hand Counts, r Rank) Reason

// transition describes what each phase accepts. end is the reason EndTrick is
// refused, or ReasonNone when it resolves the trick.
type transition struct {
	end  Reason
	play playCheck
}

var transitions = map[Phase]transition{
	PhaseAwaitingLead:           {end: ReasonEndBeforeCard, play: fromHand},
	PhaseAwaitingFollow:         {end: ReasonEndByNonLeader, play: fromHand},
	PhaseAwaitingLeaderDecision: {end: ReasonNone, play: continueTrick},
	PhaseRoundEndPending:        {end: ReasonRoundEndPending, play: refuse(ReasonRoundEndPending)},
	PhaseGameOver:               {end: ReasonGameOver, play: refuse(ReasonGameOver)},
}

func fromHand(_ trick, hand Counts, r Rank) Reason {
	if hand[r] <= 0 {
		return ReasonNotInHand
	}
	return ReasonNone
}

// continueTrick lets the leader extend their own trick with the led rank or a 7.
func continueTrick(t trick, hand Counts, r Rank) Reason {
	if r != t.firstCard && r != Wildcard {
		return ReasonInvalidContinuation
	}
	return fromHand(t, hand, r)
}

func refuse(reason Reason) playCheck {
	return func(trick, Counts, Rank) Reason { return reason }
}

// check returns why m is refused in phase, or ReasonNone.
func check(phase Phase, t trick, hand Counts, m Move) Reason {
	tr, ok := transitions[phase]
	if !ok {
		return ReasonInvalidMove
	}
	if m.IsEnd() {
		return tr.end
	}
	if !m.Valid() {
		return ReasonInvalidMove
	}
	return tr.play(t, hand, m.Rank())
}

// legalMoves lists accepted moves: ranks ascending, then EndTrick.
func legalMoves(phase Phase, t trick, hand Counts) []Move {
	var out []Move
	for r := Rank7; r <= RankA; r++ {
		if check(phase, t, hand, Play(r)) == ReasonNone {
			out = append(out, Play(r))
		}
	}
	if check(phase, t, hand, EndTrick) == ReasonNone {
		out = append(out, EndTrick)
	}
	return out
}

// claims reports whether a non-leading play takes over the trick.
func claims(t trick, r Rank) bool {
	return r == t.firstCard || r == Wildcard
}

func other(seat int) int {
	return (seat + 1) % Seats
}
