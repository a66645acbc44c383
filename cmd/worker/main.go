// Command worker drives one training episode over JSON lines: a command per
// line on stdin, a response per line on stdout.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"sedmice/internal/bots"
	"sedmice/internal/config"
	"sedmice/internal/engine"
	"sedmice/internal/env"
	"sedmice/internal/obs"
)

type Command struct {
	Action string `json:"action"`
	Seed   int64  `json:"seed,omitempty"`
	Move   *int   `json:"move,omitempty"`
}

type Response struct {
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
	Obs     []int     `json:"obs,omitempty"`
	Reward  float64   `json:"reward"`
	Done    bool      `json:"done"`
	Info    *InfoView `json:"info,omitempty"`
	Legal   []int     `json:"legal,omitempty"`
	Render  string    `json:"render,omitempty"`
}

type InfoView struct {
	Illegal bool   `json:"illegal"`
	Reason  string `json:"reason,omitempty"`
}

type worker struct {
	rewards engine.Rewards
	// kind and script rebuild the opponent on every seeded reset.
	kind     string
	script   string
	opponent bots.Bot
	env      *env.Env
	logger   *zap.Logger
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		panic(err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	script, err := cfg.Script()
	if err != nil {
		logger.Fatal("opponent script", zap.Error(err))
	}
	w, err := newWorker(cfg.Rewards, cfg.Opponent, script, 0, logger)
	if err != nil {
		logger.Fatal("worker", zap.Error(err))
	}
	defer w.close()
	if err := w.serve(os.Stdin, os.Stdout); err != nil {
		logger.Fatal("worker", zap.Error(err))
	}
}

func newWorker(rewards engine.Rewards, kind, script string, seed int64, logger *zap.Logger) (*worker, error) {
	w := &worker{rewards: rewards, kind: kind, script: script, logger: logger}
	if err := w.newEnv(seed); err != nil {
		return nil, err
	}
	return w, nil
}

// newEnv starts a fresh episode. The deal and the opponent are both seeded
// from seed, so equal seeds replay equal episodes; 0 uses the clock.
func (w *worker) newEnv(seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opponent, err := bots.New(w.kind, seed+1, w.script, bots.WithLogger(w.logger))
	if err != nil {
		return err
	}
	e, err := env.New(env.Config{Rewards: w.rewards, Seed: seed, Opponent: opponent})
	if err != nil {
		closeBot(opponent)
		return err
	}
	w.close()
	w.opponent = opponent
	w.env = e
	return nil
}

func (w *worker) close() {
	closeBot(w.opponent)
	w.opponent = nil
}

func closeBot(b bots.Bot) {
	if c, ok := b.(interface{ Close() }); ok {
		c.Close()
	}
}

// serve answers every non-empty line until in is exhausted.
func (w *worker) serve(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	enc := json.NewEncoder(out)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var cmd Command
		var resp Response
		if err := json.Unmarshal(line, &cmd); err != nil {
			resp = Response{Error: fmt.Sprintf("invalid JSON: %v", err)}
		} else {
			resp = w.handle(cmd)
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	return scanner.Err()
}

func (w *worker) handle(cmd Command) Response {
	switch cmd.Action {
	case "ping":
		return Response{Success: true}
	case "reset":
		if cmd.Seed != 0 {
			if err := w.newEnv(cmd.Seed); err != nil {
				return Response{Error: err.Error()}
			}
		} else {
			w.env.Reset()
		}
		w.logger.Debug("episode reset", zap.Int64("seed", cmd.Seed))
		return w.observe(Response{Success: true})
	case "step":
		if cmd.Move == nil {
			return Response{Error: "move required"}
		}
		res, err := w.env.Step(*cmd.Move)
		if err != nil {
			return Response{Error: err.Error()}
		}
		resp := Response{
			Success: true,
			Reward:  res.Reward,
			Done:    res.Done,
			Info:    &InfoView{Illegal: res.Info.Illegal, Reason: string(res.Info.Reason)},
		}
		return w.observe(resp)
	case "legal":
		return w.observe(Response{Success: true})
	case "render":
		var buf bytes.Buffer
		w.env.Render(&buf)
		return Response{Success: true, Render: buf.String()}
	default:
		return Response{Error: fmt.Sprintf("unknown action: %s", cmd.Action)}
	}
}

// observe fills the observation and legal action indices.
func (w *worker) observe(resp Response) Response {
	resp.Obs = w.env.Observation().Slice()
	resp.Done = resp.Done || w.env.Game().Closed()
	for a, ok := range obs.LegalMask(w.env.Game().View()) {
		if ok {
			resp.Legal = append(resp.Legal, a)
		}
	}
	return resp
}
