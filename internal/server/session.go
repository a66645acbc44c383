package server

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"sedmice/internal/bots"
	"sedmice/internal/engine"
)

const (
	HumanSeat = 0
	BotSeat   = 1
)

// Options configure every session a Handler opens.
type Options struct {
	Rewards  engine.Rewards
	Opponent string

	// Script is Lua source for the lua opponent; empty selects the bundled one.
	Script string
	Logger *zap.Logger
}

type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// Session is one websocket client playing seat 0 against a bot.
type Session struct {
	mu        sync.Mutex
	id        string
	opts      Options
	game      *engine.Game
	opponent  bots.Bot
	started   bool
	actionIds map[string]bool
	conn      jsonWriter
	logger    *zap.Logger
}

func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:        id,
		opts:      opts,
		actionIds: map[string]bool{},
		logger:    opts.Logger.With(zap.String("session", id)),
	}
}

func (s *Session) ID() string { return s.id }

type ClientMessage struct {
	Type     string     `json:"type"`
	ActionId string     `json:"actionId,omitempty"`
	Action   *ActionDTO `json:"action,omitempty"`

	// Seed fixes the shuffle for start_game.
	Seed *int64 `json:"seed,omitempty"`
}

type ServerMessage struct {
	Type   string     `json:"type"`
	State  *GameView  `json:"state,omitempty"`
	Events []Event    `json:"events,omitempty"`
	Error  *ErrorView `json:"error,omitempty"`
}

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// SessionInfo summarizes a session for the /sessions listing.
type SessionInfo struct {
	ID      string `json:"id"`
	Started bool   `json:"started"`
	Phase   string `json:"phase,omitempty"`
	Points  []int  `json:"points,omitempty"`
}

func (s *Session) Info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := SessionInfo{ID: s.id, Started: s.started}
	if s.started {
		v := s.game.View()
		info.Phase = v.Phase.String()
		for _, p := range v.Players {
			info.Points = append(info.Points, p.Points)
		}
	}
	return info
}

func (s *Session) HandleConnection(conn *websocket.Conn) {
	s.attach(conn)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Debug("connection closed", zap.Error(err))
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError("bad_request", "invalid json")
			continue
		}
		s.handleMessage(msg)
	}
}

func (s *Session) attach(w jsonWriter) {
	s.mu.Lock()
	s.conn = w
	s.mu.Unlock()
}

// Close releases the opponent's resources.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeBotLocked()
}

func (s *Session) handleMessage(msg ClientMessage) {
	switch msg.Type {
	case "start_game":
		s.startGame(msg.Seed)
	case "request_state":
		s.sendState(nil)
	case "player_action":
		s.applyAction(msg.ActionId, msg.Action)
	default:
		s.sendError("unknown_type", "unknown message type")
	}
}

func (s *Session) startGame(seed *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sd := time.Now().UnixNano()
	if seed != nil {
		sd = *seed
	}
	game, err := engine.NewGame([]string{"You", "Bot"}, s.opts.Rewards, rand.New(rand.NewSource(sd)))
	if err != nil {
		s.sendErrorLocked("start_failed", err.Error())
		return
	}
	bot, err := bots.New(s.opts.Opponent, sd+1, s.opts.Script, bots.WithLogger(s.logger))
	if err != nil {
		s.sendErrorLocked("start_failed", err.Error())
		return
	}
	s.closeBotLocked()
	s.game = game
	s.opponent = bot
	s.started = true
	s.actionIds = map[string]bool{}
	s.logger.Info("game started", zap.Int64("seed", sd), zap.String("opponent", s.opts.Opponent))
	s.sendStateLocked(nil)
	s.botAutoPlayLocked()
}

func (s *Session) applyAction(actionId string, dto *ActionDTO) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		s.sendErrorLocked("not_started", "game not started")
		return
	}
	if actionId == "" {
		s.sendErrorLocked("missing_action_id", "actionId required")
		return
	}
	if s.actionIds[actionId] {
		s.sendStateLocked(nil)
		return
	}
	s.actionIds[actionId] = true

	move, err := dto.ToEngine()
	if err != nil {
		s.sendErrorLocked("bad_action", err.Error())
		return
	}
	if s.game.Current() != HumanSeat && !s.game.Closed() {
		s.sendErrorLocked("not_your_turn", "waiting for the opponent")
		return
	}
	// Refused moves are reported without ending the game.
	if reason := s.game.Check(move); reason != engine.ReasonNone {
		s.sendStateLocked([]Event{illegalEvent(HumanSeat, reason)})
		return
	}
	prev := s.game.View()
	s.game.Step(move)
	s.sendStateLocked(buildEvents(prev, s.game.View(), HumanSeat, move))
	s.botAutoPlayLocked()
}

func (s *Session) botAutoPlayLocked() {
	for !s.game.Closed() && s.game.Current() == BotSeat {
		prev := s.game.View()
		move := s.opponent.ChooseMove(prev)
		if reason := s.game.Check(move); reason != engine.ReasonNone {
			s.logger.Error("bot move refused", zap.Stringer("move", move), zap.String("reason", string(reason)))
			return
		}
		s.game.Step(move)
		s.sendStateLocked(buildEvents(prev, s.game.View(), BotSeat, move))
	}
}

func (s *Session) closeBotLocked() {
	if c, ok := s.opponent.(interface{ Close() }); ok {
		c.Close()
	}
	s.opponent = nil
}

func (s *Session) sendState(events []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendStateLocked(events)
}

func (s *Session) sendStateLocked(events []Event) {
	msg := ServerMessage{Type: "state", Events: events}
	if s.started {
		msg.State = BuildGameView(s.game.View(), HumanSeat, s.id)
	}
	s.writeLocked(msg)
}

func (s *Session) sendError(code, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendErrorLocked(code, message)
}

func (s *Session) sendErrorLocked(code, message string) {
	s.writeLocked(ServerMessage{
		Type:  "error",
		Error: &ErrorView{Code: code, Message: message},
	})
}

func (s *Session) writeLocked(msg ServerMessage) {
	if s.conn == nil {
		return
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Warn("write failed", zap.String("type", msg.Type), zap.Error(err))
	}
}
