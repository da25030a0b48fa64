package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pairjump/internal/delim"
	"github.com/dshills/pairjump/internal/engine/buffer"
)

// ModuleName is the global table scripts use.
const ModuleName = "pair"

// motionFuncs maps Lua function names to motion names.
var motionFuncs = map[string]string{
	"exit":          "exit",
	"enter":         "enter",
	"exit_backward": "exitBackward",
	"enter_forward": "enterForward",
}

// motionFunc returns pair.<name>(text, offset) -> offset|nil.
// Offsets are 0-based character offsets.
func motionFunc(motion delim.Motion) lua.LGFunction {
	return func(L *lua.LState) int {
		text := L.CheckString(1)
		offset := L.CheckInt(2)
		next, ok := motion(buffer.NewSnapshot(text), offset)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(next))
		return 1
	}
}

func newModule(L *lua.LState, register lua.LGFunction) *lua.LTable {
	mod := L.NewTable()
	for luaName, motionName := range motionFuncs {
		motion, _ := delim.Lookup(motionName)
		L.SetField(mod, luaName, L.NewFunction(motionFunc(motion)))
	}
	L.SetField(mod, "register", L.NewFunction(register))
	return mod
}
