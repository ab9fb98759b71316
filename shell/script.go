package shell

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

const scriptHTTPTimeout = 30 * time.Second

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("gomoku_shell")
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

// luaCommand wraps a shell command as a lua function taking one string of
// arguments and returning the command's output.
func luaCommand(name string, run func(sc *ShellController, cmd *shellcmd) (*Response, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		lv := L.OptString(1, "")
		sc := getShell(L)
		cmd, err := extractFields(strings.TrimSpace(name + " " + lv))
		if err != nil {
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		r, err := run(sc, cmd)
		if err != nil {
			log.Err(err).Msg("error-executing-" + name)
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

// State pushes the current game record as a table, or nil with no game.
func State(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		return 1
	}
	data, err := json.Marshal(sc.game.Record())
	if err != nil {
		L.RaiseError("encoding game: %v", err)
		return 0
	}
	v, err := luajson.Decode(L, data)
	if err != nil {
		L.RaiseError("decoding game: %v", err)
		return 0
	}
	L.Push(v)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{Timeout: scriptHTTPTimeout}).Loader)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("gomoku_shell", lsc)
	L.SetGlobal("gomoku_new", L.NewFunction(luaCommand("new", (*ShellController).newGame)))
	L.SetGlobal("gomoku_play", L.NewFunction(luaCommand("play", (*ShellController).play)))
	L.SetGlobal("gomoku_gen", L.NewFunction(luaCommand("gen", (*ShellController).aiplay)))
	L.SetGlobal("gomoku_hint", L.NewFunction(luaCommand("hint", (*ShellController).hint)))
	L.SetGlobal("gomoku_set", L.NewFunction(luaCommand("set", (*ShellController).set)))
	L.SetGlobal("gomoku_show", L.NewFunction(luaCommand("show", (*ShellController).show)))
	L.SetGlobal("gomoku_state", L.NewFunction(State))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
