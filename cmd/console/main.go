package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"sedmice/internal/config"
	"sedmice/internal/engine"
	"sedmice/internal/env"
)

const humanSeat = 0

var errInputClosed = errors.New("input closed before the game ended")

func main() {
	seed := flag.Int64("seed", 0, "shuffle seed (0 uses the clock)")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		panic(err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	logger.Debug("console game", zap.Int64("seed", *seed))
	if err := run(os.Stdin, os.Stdout, *seed); err != nil {
		logger.Fatal("console", zap.Error(err))
	}
}

// run plays one game with the human in seat 0. The opponent answers with the
// engine's random auto-play whenever it holds the turn.
func run(in io.Reader, out io.Writer, seed int64) error {
	g, err := engine.NewGame([]string{"Player 1", "Player 2"}, engine.ConsoleRewards(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	sc := bufio.NewScanner(in)

	for !g.Closed() {
		v := g.View()
		env.WriteTable(out, v)
		p := v.Players[v.Current]
		fmt.Fprintf(out, "%s, enter a rank (7, 8, 9, 10, J, Q, K, A) or END: ", p.Name)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			return errInputClosed
		}
		m, ok := parseInput(sc.Text(), p.Hand)
		if !ok {
			fmt.Fprintln(out, "Invalid input. Enter a rank you hold or END.")
			continue
		}

		res := g.Step(m)
		fmt.Fprintf(out, "Reward: %g\n", res.Reward)
		if res.Info.Illegal {
			fmt.Fprintf(out, "Illegal move: %s\n", res.Info.Reason)
		}
		for !g.Closed() && g.Current() != humanSeat {
			g.AutoPlayOpponent()
		}
	}

	fmt.Fprintln(out, "\nGame over.")
	for i := 0; i < engine.Seats; i++ {
		p := g.Player(i)
		fmt.Fprintf(out, "%s won cards: %s, points: %d\n", p.Name, p.Won, p.Points)
	}
	return nil
}

// parseInput accepts END or a rank the hand holds.
func parseInput(s string, hand engine.Counts) (engine.Move, bool) {
	m, err := engine.ParseMove(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	if !m.IsEnd() && hand[m.Rank()] == 0 {
		return 0, false
	}
	return m, true
}
