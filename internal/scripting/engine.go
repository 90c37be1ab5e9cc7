package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for scoring formulas.
// Single-goroutine access only (simulation loop). A nil *Engine is valid and
// answers every call with the Go fallback.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)

	for _, sub := range []string{"core", "scoring"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// NewEngineFromSource creates an engine from an inline chunk.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load inline script: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// AsteroidScoreContext holds pre-packed data for an asteroid kill.
type AsteroidScoreContext struct {
	Tier      string
	Size      float64
	BaseScore int // tier table score
	Weapon    string
}

// CalcAsteroidScore calls the Lua calc_asteroid_score function. Falls back to
// the tier score when the function is missing or fails.
func (e *Engine) CalcAsteroidScore(ctx AsteroidScoreContext) int {
	if e == nil {
		return ctx.BaseScore
	}
	fn := e.vm.GetGlobal("calc_asteroid_score")
	if fn == lua.LNil {
		return ctx.BaseScore
	}

	t := e.vm.NewTable()
	t.RawSetString("tier", lua.LString(ctx.Tier))
	t.RawSetString("size", lua.LNumber(ctx.Size))
	t.RawSetString("base_score", lua.LNumber(ctx.BaseScore))
	t.RawSetString("weapon", lua.LString(ctx.Weapon))

	v, ok := e.callNumber("calc_asteroid_score", fn, t)
	if !ok {
		return ctx.BaseScore
	}
	return int(v)
}

// GiftPenaltyContext holds pre-packed data for a shot gift.
type GiftPenaltyContext struct {
	Kind        string
	BasePenalty int
}

// CalcGiftPenalty calls the Lua calc_gift_penalty function. The result is a
// positive amount to subtract; negative script results are clamped to 0.
func (e *Engine) CalcGiftPenalty(ctx GiftPenaltyContext) int {
	if e == nil {
		return ctx.BasePenalty
	}
	fn := e.vm.GetGlobal("calc_gift_penalty")
	if fn == lua.LNil {
		return ctx.BasePenalty
	}

	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(ctx.Kind))
	t.RawSetString("base_penalty", lua.LNumber(ctx.BasePenalty))

	v, ok := e.callNumber("calc_gift_penalty", fn, t)
	if !ok {
		return ctx.BasePenalty
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

// Has reports whether a global function is defined.
func (e *Engine) Has(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// callNumber runs fn with one table argument and expects a number back.
func (e *Engine) callNumber(name string, fn lua.LValue, arg *lua.LTable) (float64, bool) {
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number",
			zap.String("func", name), zap.String("type", result.Type().String()))
		return 0, false
	}
	return float64(n), true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.vm.Close()
}
