package env

import (
	"fmt"
	"io"
	"strings"

	"sedmice/internal/engine"
)

// WriteTable prints both seats, the pile and the led rank.
func WriteTable(w io.Writer, v engine.View) {
	bar := strings.Repeat("=", 20)
	fmt.Fprintf(w, "\n%s GAME STATE %s\n", bar, bar)
	for i, p := range v.Players {
		fmt.Fprintf(w, "Player %d (%s):\n", i+1, p.Name)
		fmt.Fprintf(w, "  Hand: %s\n", p.Hand)
		fmt.Fprintf(w, "  Won Cards: %s\n", p.Won)
		fmt.Fprintf(w, "  Points: %d\n", p.Points)
		fmt.Fprintln(w, strings.Repeat("-", 50))
	}
	fmt.Fprintf(w, "Pile: %s\n", v.Pile)
	fmt.Fprintf(w, "First Card Played: %s\n", LedRank(v))
	fmt.Fprintf(w, "Deck: %d\n", v.Deck)
	fmt.Fprintln(w, strings.Repeat("=", 50))
}

// LedRank renders the led rank, or "None" before the trick starts.
func LedRank(v engine.View) string {
	if !v.Led {
		return "None"
	}
	return v.FirstCard.String()
}

func (e *Env) Render(w io.Writer) {
	WriteTable(w, e.game.View())
}
