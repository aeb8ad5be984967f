package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Scripts only run at startup to
// produce tuning tables; the VM is never touched from the tick.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script in scriptsDir.
// A missing directory yields an empty engine.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
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

// LoadString runs a chunk of Lua source in the engine's VM.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// Numbers returns the numeric fields of the global table name. A missing
// global yields an empty map; a non-table global or a non-numeric field is
// an error so typos in tuning scripts fail at boot.
func (e *Engine) Numbers(name string) (map[string]float64, error) {
	out := make(map[string]float64)
	v := e.vm.GetGlobal(name)
	if v == lua.LNil {
		return out, nil
	}
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("lua global %s is %s, want table", name, v.Type())
	}
	var bad []string
	tbl.ForEach(func(k, val lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			bad = append(bad, k.String())
			return
		}
		num, ok := val.(lua.LNumber)
		if !ok {
			bad = append(bad, string(key))
			return
		}
		out[string(key)] = float64(num)
	})
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, fmt.Errorf("lua table %s: non-numeric entries %v", name, bad)
	}
	return out, nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
