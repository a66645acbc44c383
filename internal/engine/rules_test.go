package engine

import (
	"reflect"
	"testing"
)

func TestTransitionTableCoversEveryPhase(t *testing.T) {
	for p := PhaseAwaitingLead; p <= PhaseGameOver; p++ {
		if _, ok := transitions[p]; !ok {
			t.Fatalf("missing transition for %s", p)
		}
	}
}

func TestCheckEndTrickByPhase(t *testing.T) {
	h := hand(Rank8)
	tr := trick{led: true, firstCard: Rank8}

	cases := []struct {
		phase Phase
		t     trick
		want  Reason
	}{
		{PhaseAwaitingLead, trick{}, ReasonEndBeforeCard},
		{PhaseAwaitingFollow, tr, ReasonEndByNonLeader},
		{PhaseAwaitingLeaderDecision, tr, ReasonNone},
		{PhaseRoundEndPending, trick{}, ReasonRoundEndPending},
		{PhaseGameOver, trick{}, ReasonGameOver},
	}
	for _, c := range cases {
		if got := check(c.phase, c.t, h, EndTrick); got != c.want {
			t.Fatalf("%s: got %q want %q", c.phase, got, c.want)
		}
	}
}

func TestCheckLeaderContinuation(t *testing.T) {
	h := hand(Rank7, Rank8, RankK)
	tr := trick{led: true, firstCard: Rank8}

	cases := []struct {
		t    trick
		r    Rank
		want Reason
	}{
		{tr, Rank8, ReasonNone},
		{tr, Rank7, ReasonNone},
		{tr, RankK, ReasonInvalidContinuation},
		// Matching rank the leader does not hold.
		{trick{led: true, firstCard: Rank9}, Rank9, ReasonNotInHand},
	}
	for _, c := range cases {
		if got := check(PhaseAwaitingLeaderDecision, c.t, h, Play(c.r)); got != c.want {
			t.Fatalf("continue with %s on %s: got %q want %q", c.r, c.t.firstCard, got, c.want)
		}
	}
}

func TestCheckFollowerPlaysAnyHeldRank(t *testing.T) {
	h := hand(RankQ)
	tr := trick{led: true, firstCard: Rank9}

	if got := check(PhaseAwaitingFollow, tr, h, Play(RankQ)); got != ReasonNone {
		t.Fatalf("follower Q: got %q", got)
	}
	if got := check(PhaseAwaitingFollow, tr, h, Play(Rank9)); got != ReasonNotInHand {
		t.Fatalf("follower 9: got %q", got)
	}
}

func TestCheckRejectsOutOfRangeMove(t *testing.T) {
	for _, m := range []Move{-1, 12} {
		if got := check(PhaseAwaitingLead, trick{}, hand(Rank8), m); got != ReasonInvalidMove {
			t.Fatalf("move %d: got %q", int(m), got)
		}
	}
}

func TestLegalMovesByPhase(t *testing.T) {
	h := hand(Rank7, Rank9, Rank9, RankA)

	cases := []struct {
		phase Phase
		t     trick
		want  []Move
	}{
		{PhaseAwaitingLead, trick{}, []Move{Play(Rank7), Play(Rank9), Play(RankA)}},
		{PhaseAwaitingFollow, trick{led: true, firstCard: Rank8}, []Move{Play(Rank7), Play(Rank9), Play(RankA)}},
		{PhaseAwaitingLeaderDecision, trick{led: true, firstCard: Rank9}, []Move{Play(Rank7), Play(Rank9), EndTrick}},
		{PhaseGameOver, trick{}, nil},
	}
	for _, c := range cases {
		if got := legalMoves(c.phase, c.t, h); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("%s: got %v want %v", c.phase, got, c.want)
		}
	}
}

func TestLedSevenOnlyMatchesSevens(t *testing.T) {
	tr := trick{led: true, firstCard: Rank7}
	h := hand(Rank7, Rank8)

	want := []Move{Play(Rank7), EndTrick}
	if got := legalMoves(PhaseAwaitingLeaderDecision, tr, h); !reflect.DeepEqual(got, want) {
		t.Fatalf("legal after led 7: got %v want %v", got, want)
	}
	if !claims(tr, Rank7) || claims(tr, Rank8) {
		t.Fatalf("only a 7 claims a trick led with 7")
	}
}

func TestParseMove(t *testing.T) {
	cases := map[string]Move{
		"end":  EndTrick,
		"END":  EndTrick,
		" 10 ": Play(Rank10),
		"a":    Play(RankA),
		"7":    Play(Rank7),
	}
	for in, want := range cases {
		got, err := ParseMove(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: got %s want %s", in, got, want)
		}
	}
	if _, err := ParseMove("6"); err == nil {
		t.Fatalf("parse 6: expected error")
	}
}
