package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sedmice/internal/engine"
)

func newTestServer(t *testing.T, allow []string) (*httptest.Server, *Handler) {
	t.Helper()
	e := echo.New()
	h := NewHandler(Options{Rewards: engine.DefaultRewards()}, allow)
	h.Register(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, h
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestWebsocketRoundTrip(t *testing.T) {
	srv, h := newTestServer(t, nil)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer conn.Close()

	seed := int64(7)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "start_game", Seed: &seed}))

	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "state", msg.Type)
	require.NotNil(t, msg.State)
	assert.NotEmpty(t, msg.State.SessionID)
	assert.NotEmpty(t, msg.State.LegalActions)

	resp, err := http.Get(srv.URL + "/sessions")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []SessionInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	require.Len(t, infos, 1)
	assert.Equal(t, msg.State.SessionID, infos[0].ID)
	assert.True(t, infos[0].Started)
	assert.Len(t, h.Hub().Sessions(), 1)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "player_action", ActionId: "x", Action: &ActionDTO{Type: "end"}}))
	require.NoError(t, conn.ReadJSON(&msg))
	require.Len(t, msg.Events, 1)
	assert.Equal(t, "illegal_move", msg.Events[0].Type)
}

func TestWebsocketInvalidJSON(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "bad_request", msg.Error.Code)
}

func TestCheckOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "http://evil.example")

	assert.True(t, checkOrigin(nil)(req))
	assert.False(t, checkOrigin([]string{"http://localhost:5173"})(req))
	assert.True(t, checkOrigin([]string{"*"})(req))

	req.Header.Set("Origin", "http://localhost:5173")
	assert.True(t, checkOrigin([]string{"http://localhost:5173"})(req))
}
