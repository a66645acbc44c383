package server

import "sedmice/internal/engine"

type EventPayload struct {
	Player int            `json:"player"`
	Rank   string         `json:"rank,omitempty"`
	Cards  map[string]int `json:"cards,omitempty"`
	Points int            `json:"points,omitempty"`
	Reason string         `json:"reason,omitempty"`
	Scores []int          `json:"scores,omitempty"`
	Winner *int           `json:"winner,omitempty"`
}

func buildEvents(prev, next engine.View, player int, m engine.Move) []Event {
	events := []Event{}
	if !m.IsEnd() {
		events = append(events, Event{Type: "card_played", Data: EventPayload{Player: player, Rank: m.Rank().String()}})
	}

	// Trick won
	for i := range next.Players {
		var gained engine.Counts
		for r := range gained {
			gained[r] = next.Players[i].Won[r] - prev.Players[i].Won[r]
		}
		if gained.Total() > 0 {
			events = append(events, Event{Type: "trick_won", Data: EventPayload{
				Player: i,
				Cards:  countsToDTO(gained),
				Points: next.Players[i].Points - prev.Players[i].Points,
			}})
		}
	}

	if prev.Phase != engine.PhaseGameOver && next.Phase == engine.PhaseGameOver {
		events = append(events, gameOverEvent(next))
	}
	return events
}

func illegalEvent(player int, reason engine.Reason) Event {
	return Event{Type: "illegal_move", Data: EventPayload{Player: player, Reason: string(reason)}}
}

// gameOverEvent reports final scores; Winner is nil on a tie.
func gameOverEvent(v engine.View) Event {
	scores := make([]int, 0, len(v.Players))
	for _, p := range v.Players {
		scores = append(scores, p.Points)
	}
	data := EventPayload{Scores: scores}
	switch {
	case scores[0] > scores[1]:
		w := 0
		data.Winner = &w
	case scores[1] > scores[0]:
		w := 1
		data.Winner = &w
	}
	return Event{Type: "game_over", Data: data}
}
