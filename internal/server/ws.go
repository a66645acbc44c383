package server

import (
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Hub tracks live sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewHub() *Hub {
	return &Hub{sessions: map[string]*Session{}}
}

func (h *Hub) add(s *Session) {
	h.mu.Lock()
	h.sessions[s.ID()] = s
	h.mu.Unlock()
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
}

// Sessions lists live sessions ordered by ID.
func (h *Hub) Sessions() []SessionInfo {
	h.mu.RLock()
	list := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		list = append(list, s)
	}
	h.mu.RUnlock()

	out := make([]SessionInfo, 0, len(list))
	for _, s := range list {
		out = append(out, s.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Handler serves the websocket table. Each connection gets its own session.
type Handler struct {
	hub      *Hub
	opts     Options
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler accepts any origin when allowOrigins is empty.
func NewHandler(opts Options, allowOrigins []string) *Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Handler{
		hub:    NewHub(),
		opts:   opts,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin(allowOrigins),
		},
	}
}

func checkOrigin(allow []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		if len(allow) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		for _, a := range allow {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/ws", h.ServeWS)
	e.GET("/sessions", h.ListSessions)
}

func (h *Handler) Hub() *Hub { return h.hub }

func (h *Handler) ServeWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already replied.
		h.logger.Warn("ws upgrade", zap.Error(err))
		return nil
	}
	defer conn.Close()

	s := NewSession(h.opts)
	h.hub.add(s)
	defer h.hub.remove(s.ID())
	defer s.Close()

	h.logger.Info("session opened", zap.String("session", s.ID()), zap.String("remote", c.RealIP()))
	s.HandleConnection(conn)
	h.logger.Info("session closed", zap.String("session", s.ID()))
	return nil
}

func (h *Handler) ListSessions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.hub.Sessions())
}
