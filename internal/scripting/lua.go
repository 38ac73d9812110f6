// Package scripting runs fighter policies written in Lua. A script defines a
// global decide(situation) that returns a list of commands; the commands go
// through the same Intent entry points as the keyboard and the built-in CPU.
package scripting

import (
	"embed"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/barnyard-arcade/internal/games/brawl"
)

//go:embed policies/*.lua
var builtins embed.FS

// LuaPolicy is a brawl.Policy backed by a gopher-lua VM.
// Single-goroutine access only (the round's tick).
type LuaPolicy struct {
	name string
	vm   *lua.LState
	rng  *rand.Rand
	err  error
}

// Option configures a LuaPolicy.
type Option func(*LuaPolicy)

// WithRand sets the source behind the script's rand() function.
func WithRand(rng *rand.Rand) Option {
	return func(p *LuaPolicy) { p.rng = rng }
}

// NewLuaPolicy compiles source. The script must define decide.
func NewLuaPolicy(name, source string, opts ...Option) (*LuaPolicy, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: true})
	p := &LuaPolicy{name: name, vm: vm}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(1))
	}

	if err := p.openLibs(); err != nil {
		vm.Close()
		return nil, fmt.Errorf("scripting: %s: %w", name, err)
	}
	vm.SetGlobal("rand", vm.NewFunction(p.luaRand))

	if err := vm.DoString(source); err != nil {
		vm.Close()
		return nil, fmt.Errorf("scripting: load %s: %w", name, err)
	}
	if _, ok := vm.GetGlobal("decide").(*lua.LFunction); !ok {
		vm.Close()
		return nil, fmt.Errorf("scripting: %s does not define decide()", name)
	}
	return p, nil
}

// LoadFile reads a policy script from disk.
func LoadFile(file string, opts ...Option) (*LuaPolicy, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}
	return NewLuaPolicy(filepath.Base(file), string(src), opts...)
}

// Builtin loads one of the bundled policies by name ("bully", "turtle").
func Builtin(name string, opts ...Option) (*LuaPolicy, error) {
	src, err := builtins.ReadFile("policies/" + name + ".lua")
	if err != nil {
		return nil, fmt.Errorf("scripting: no built-in policy %q", name)
	}
	return NewLuaPolicy(name, string(src), opts...)
}

// Builtins lists the bundled policy names.
func Builtins() []string {
	entries, _ := builtins.ReadDir("policies")
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".lua"))
	}
	sort.Strings(names)
	return names
}

// openLibs loads the side-effect free standard libraries only.
func (p *LuaPolicy) openLibs() error {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := p.vm.CallByParam(lua.P{
			Fn:      p.vm.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return fmt.Errorf("open %s: %w", lib.name, err)
		}
	}
	for _, unsafe := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		p.vm.SetGlobal(unsafe, lua.LNil)
	}
	return nil
}

func (p *LuaPolicy) luaRand(L *lua.LState) int {
	L.Push(lua.LNumber(p.rng.Float64()))
	return 1
}

// Name returns the script name.
func (p *LuaPolicy) Name() string { return p.name }

// Err returns the last runtime error raised by the script, if any.
func (p *LuaPolicy) Err() error { return p.err }

// Close releases the VM.
func (p *LuaPolicy) Close() { p.vm.Close() }

// Decide calls the script. A script error makes the fighter idle for this
// frame; the error is kept for Err.
func (p *LuaPolicy) Decide(s brawl.Situation) []brawl.Intent {
	if err := p.vm.CallByParam(lua.P{
		Fn:      p.vm.GetGlobal("decide"),
		NRet:    1,
		Protect: true,
	}, p.situation(s)); err != nil {
		p.err = fmt.Errorf("scripting: %s: %w", p.name, err)
		return nil
	}
	ret := p.vm.Get(-1)
	p.vm.Pop(1)

	list, ok := ret.(*lua.LTable)
	if !ok {
		if ret != lua.LNil {
			p.err = fmt.Errorf("scripting: %s: decide returned %s, expected a table", p.name, ret.Type())
		}
		return nil
	}

	var out []brawl.Intent
	list.ForEach(func(_, v lua.LValue) {
		if in, ok := p.intent(v); ok {
			out = append(out, in)
		}
	})
	return out
}

// intent reads "attack" or {cmd = "moveLeft", speed = 4}.
func (p *LuaPolicy) intent(v lua.LValue) (brawl.Intent, bool) {
	var name string
	var speed float64
	switch t := v.(type) {
	case lua.LString:
		name = string(t)
	case *lua.LTable:
		name = lua.LVAsString(t.RawGetString("cmd"))
		speed = float64(lua.LVAsNumber(t.RawGetString("speed")))
	default:
		return brawl.Intent{}, false
	}
	cmd, ok := brawl.ParseCommand(name)
	if !ok || cmd == brawl.CmdNone || cmd == brawl.CmdPause {
		p.err = fmt.Errorf("scripting: %s: unknown command %q", p.name, name)
		return brawl.Intent{}, false
	}
	if speed < 0 {
		speed = 0
	}
	return brawl.Intent{Command: cmd, Speed: speed}, true
}

func (p *LuaPolicy) situation(s brawl.Situation) *lua.LTable {
	t := p.vm.NewTable()
	t.RawSetString("now_ms", lua.LNumber(s.Now.Milliseconds()))
	t.RawSetString("distance", lua.LNumber(s.Distance()))
	t.RawSetString("self", p.view(s.Self))
	t.RawSetString("opponent", p.view(s.Opponent))
	return t
}

func (p *LuaPolicy) view(v brawl.View) *lua.LTable {
	t := p.vm.NewTable()
	t.RawSetString("character", lua.LString(v.Character))
	t.RawSetString("x", lua.LNumber(v.X))
	t.RawSetString("y", lua.LNumber(v.Y))
	t.RawSetString("vx", lua.LNumber(v.VX))
	t.RawSetString("facing", lua.LNumber(v.Facing))
	t.RawSetString("grounded", lua.LBool(v.Grounded))
	t.RawSetString("jumps", lua.LNumber(v.Jumps))
	t.RawSetString("health", lua.LNumber(v.Health))
	t.RawSetString("blocking", lua.LBool(v.Blocking))
	t.RawSetString("attacking", lua.LBool(v.Attacking))
	t.RawSetString("special_ready", lua.LBool(v.SpecialReady))
	return t
}
