package bots

import (
	_ "embed"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"sedmice/internal/engine"
)

//go:embed scripts/default.lua
var DefaultScript string

// LuaBot delegates move choice to a Lua function choose(state) returning a
// move string such as "9" or "END". Answers that are not legal fall back to
// the first legal move.
type LuaBot struct {
	L      *lua.LState
	fn     lua.LValue
	logger *zap.Logger
}

type LuaOption func(*LuaBot)

func WithLogger(l *zap.Logger) LuaOption {
	return func(b *LuaBot) { b.logger = l }
}

// NewLua loads script, or DefaultScript when empty. Close releases the VM.
func NewLua(script string, opts ...LuaOption) (*LuaBot, error) {
	if script == "" {
		script = DefaultScript
	}
	L := lua.NewState()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("load lua policy: %w", err)
	}
	fn := L.GetGlobal("choose")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, errors.New("lua policy must define choose(state)")
	}
	b := &LuaBot{L: L, fn: fn, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *LuaBot) Close() {
	b.L.Close()
}

func (b *LuaBot) ChooseMove(v engine.View) engine.Move {
	legal := v.LegalMoves()
	if len(legal) == 0 {
		return engine.EndTrick
	}
	m, err := b.call(v, legal)
	if err != nil {
		b.logger.Warn("lua policy failed, using first legal move", zap.Error(err))
		return legal[0]
	}
	for _, l := range legal {
		if l == m {
			return m
		}
	}
	b.logger.Warn("lua policy chose an illegal move", zap.String("move", m.String()))
	return legal[0]
}

func (b *LuaBot) call(v engine.View, legal []engine.Move) (engine.Move, error) {
	if err := b.L.CallByParam(lua.P{Fn: b.fn, NRet: 1, Protect: true}, b.stateTable(v, legal)); err != nil {
		return 0, err
	}
	ret := b.L.Get(-1)
	b.L.Pop(1)
	if ret.Type() != lua.LTString {
		return 0, fmt.Errorf("choose returned %s, want string", ret.Type())
	}
	return engine.ParseMove(lua.LVAsString(ret))
}

func (b *LuaBot) stateTable(v engine.View, legal []engine.Move) *lua.LTable {
	L := b.L
	me := v.Current

	t := L.NewTable()
	t.RawSetString("seat", lua.LNumber(me))
	t.RawSetString("phase", lua.LString(v.Phase.String()))
	t.RawSetString("leader", lua.LNumber(v.Leader))
	t.RawSetString("pile_winner", lua.LNumber(v.PileWinner))
	t.RawSetString("deck", lua.LNumber(v.Deck))
	t.RawSetString("pile_points", lua.LNumber(v.Pile.Points()))
	if v.Led {
		t.RawSetString("first_card", lua.LString(v.FirstCard.String()))
	}
	t.RawSetString("hand", b.countsTable(v.Players[me].Hand))
	t.RawSetString("pile", b.countsTable(v.Pile))

	points := L.NewTable()
	for _, p := range v.Players {
		points.Append(lua.LNumber(p.Points))
	}
	t.RawSetString("points", points)

	moves := L.NewTable()
	for _, m := range legal {
		moves.Append(lua.LString(m.String()))
	}
	t.RawSetString("legal", moves)
	return t
}

func (b *LuaBot) countsTable(c engine.Counts) *lua.LTable {
	t := b.L.NewTable()
	for r, n := range c.Visible() {
		t.RawSetString(r.String(), lua.LNumber(n))
	}
	return t
}
