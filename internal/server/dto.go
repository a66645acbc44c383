package server

import (
	"errors"

	"sedmice/internal/engine"
)

// ActionDTO is a move on the wire: {"type":"play","rank":"10"} or {"type":"end"}.
type ActionDTO struct {
	Type string `json:"type"`
	Rank string `json:"rank,omitempty"`
}

func (a *ActionDTO) ToEngine() (engine.Move, error) {
	if a == nil {
		return 0, errors.New("action missing")
	}
	switch a.Type {
	case "play":
		if a.Rank == "" {
			return 0, errors.New("rank required")
		}
		r, err := engine.ParseRank(a.Rank)
		if err != nil {
			return 0, err
		}
		return engine.Play(r), nil
	case "end":
		return engine.EndTrick, nil
	default:
		return 0, errors.New("unknown action type")
	}
}

func ActionFromEngine(m engine.Move) ActionDTO {
	switch {
	case m.IsEnd():
		return ActionDTO{Type: "end"}
	case m.Valid():
		return ActionDTO{Type: "play", Rank: m.Rank().String()}
	default:
		return ActionDTO{Type: "unknown"}
	}
}

// countsToDTO keys a rank multiset by rank name, omitting zeros.
func countsToDTO(c engine.Counts) map[string]int {
	out := make(map[string]int)
	for r, n := range c.Visible() {
		out[r.String()] = n
	}
	return out
}
