package shell

import (
	"errors"
	"net/http"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

type handler func(*shellcmd) (*Response, error)

// scriptCommands are the shell commands a script may call, each exposed as
// the Lua global wordlebits_<name>.
func (sc *ShellController) scriptCommands() map[string]handler {
	return map[string]handler{
		"load":        sc.load,
		"set":         sc.set,
		"single":      sc.single,
		"info":        sc.info,
		"joint":       sc.joint,
		"buckets":     sc.buckets,
		"besttwo":     sc.bestTwo,
		"above":       sc.pairsAbove,
		"below":       sc.pairsBelow,
		"second":      sc.second,
		"third":       sc.third,
		"bestsecond":  sc.bestSecond,
		"conditional": sc.conditional,
		"prune":       sc.prune,
		"state":       sc.showState,
		"reset":       sc.reset,
		"ask":         sc.ask,
		"autoplay":    sc.autoplay,
		"analyze":     sc.analyze,
	}
}

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("wordlebits_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// Remaining pushes the answers still possible, as a Lua table.
func Remaining(L *lua.LState) int {
	sc := getShell(L)
	t := L.NewTable()
	if sc.state != nil {
		for _, a := range sc.state.Answers() {
			t.Append(lua.LString(a))
		}
	}
	L.Push(t)
	return 1
}

// luaCommand wraps a shell command. The Lua function takes the rest of the
// command line as a single string and returns the command's output, or
// the error prefixed with "ERROR: ".
func luaCommand(name string, h handler) lua.LGFunction {
	return func(L *lua.LState) int {
		cmd, err := extractFields(name + " " + L.OptString(1, ""))
		if err != nil {
			log.Err(err).Str("command", name).Msg("error-parsing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		r, err := h(cmd)
		if err != nil {
			log.Err(err).Str("command", name).Msg("error-executing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		if r == nil {
			L.Push(lua.LString(""))
			return 1
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

// script runs a Lua file. Any further arguments are available to it in the
// global table arg. The json and http modules can be required.
func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{}).Loader)

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal("wordlebits_shell", lsc)
	L.SetGlobal("wordlebits_remaining", L.NewFunction(Remaining))
	for name, h := range sc.scriptCommands() {
		L.SetGlobal("wordlebits_"+name, L.NewFunction(luaCommand(name, h)))
	}
	args := L.NewTable()
	for _, a := range cmd.args[1:] {
		args.Append(lua.LString(a))
	}
	L.SetGlobal("arg", args)

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
