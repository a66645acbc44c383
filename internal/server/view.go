package server

import "sedmice/internal/engine"

type PlayerView struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Hand      map[string]int `json:"hand,omitempty"`
	HandCount int            `json:"handCount"`
	Won       map[string]int `json:"won"`
	Points    int            `json:"points"`
}

type TableView struct {
	Phase      string         `json:"phase"`
	Current    int            `json:"current"`
	Leader     int            `json:"leader"`
	PileWinner int            `json:"pileWinner"`
	LedRank    *string        `json:"ledRank,omitempty"`
	Pile       map[string]int `json:"pile"`
	Deck       int            `json:"deck"`
	Closed     bool           `json:"closed"`
}

type GameView struct {
	SessionID    string       `json:"sessionId"`
	Seat         int          `json:"seat"`
	Players      []PlayerView `json:"players"`
	Table        TableView    `json:"table"`
	LegalActions []ActionDTO  `json:"legalActions"`
}

// BuildGameView renders v for viewer. Only the viewer's hand is exposed, and
// legal actions are listed only when it is the viewer's turn.
func BuildGameView(v engine.View, viewer int, sessionID string) *GameView {
	players := make([]PlayerView, 0, len(v.Players))
	for i, p := range v.Players {
		view := PlayerView{
			ID:        i,
			Name:      p.Name,
			HandCount: p.HandCount(),
			Won:       countsToDTO(p.Won),
			Points:    p.Points,
		}
		if i == viewer {
			view.Hand = countsToDTO(p.Hand)
		}
		players = append(players, view)
	}
	var led *string
	if v.Led {
		s := v.FirstCard.String()
		led = &s
	}
	legal := []ActionDTO{}
	if v.Current == viewer {
		for _, m := range v.LegalMoves() {
			legal = append(legal, ActionFromEngine(m))
		}
	}
	return &GameView{
		SessionID: sessionID,
		Seat:      viewer,
		Players:   players,
		Table: TableView{
			Phase:      v.Phase.String(),
			Current:    v.Current,
			Leader:     v.Leader,
			PileWinner: v.PileWinner,
			LedRank:    led,
			Pile:       countsToDTO(v.Pile),
			Deck:       v.Deck,
			Closed:     v.Closed,
		},
		LegalActions: legal,
	}
}
