package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/wayfarer/prefabs"
)

// aiScriptRuntime is one entity's copy of a compiled behavior script plus
// the `state` map the script keeps between calls.
type aiScriptRuntime struct {
	scriptPath  string
	compiled    *tengo.Compiled
	stateData   *tengo.Map
	initial     string
	initialized bool
	pending     string
}

// aiScript is a compiled script shared by every entity running it.
type aiScript struct {
	compiled *tengo.Compiled
	initial  string
}

const aiLifecycleDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "update" {
	update(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

const defaultInitialState = "idle"

func compileAIScript(path string) (*aiScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("ai: load script %s: %w", path, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + aiLifecycleDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")
	script.SetImports(stdlib.GetModuleMap("math", "text", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile script %s: %w", path, err)
	}

	// A noop run evaluates the globals so initial_state can be read.
	probe := &aiScriptRuntime{scriptPath: path, compiled: compiled, stateData: newStateMap()}
	if err := probe.runPhase("noop", "", nil); err != nil {
		return nil, fmt.Errorf("ai: run script %s: %w", path, err)
	}
	initial := defaultInitialState
	if compiled.IsDefined("initial_state") {
		if s := strings.TrimSpace(compiled.Get("initial_state").String()); s != "" {
			initial = s
		}
	}
	return &aiScript{compiled: compiled, initial: initial}, nil
}

func (s *aiScript) instance(path string) *aiScriptRuntime {
	return &aiScriptRuntime{
		scriptPath: path,
		compiled:   s.compiled.Clone(),
		stateData:  newStateMap(),
		initial:    s.initial,
	}
}

func newStateMap() *tengo.Map {
	return &tengo.Map{Value: map[string]tengo.Object{}}
}

// step runs one tick of the lifecycle: enter on first use, update, then
// exit/enter when update asked for a transition. It returns the state the
// entity ends the tick in.
func (rt *aiScriptRuntime) step(current string, engine *tengo.ImmutableMap) (string, error) {
	if current == "" {
		current = rt.initial
	}
	if !rt.initialized {
		rt.initialized = true
		if err := rt.runPhase("enter", current, engine); err != nil {
			return current, fmt.Errorf("onEnter %s: %w", current, err)
		}
	}
	if err := rt.runPhase("update", current, engine); err != nil {
		return current, fmt.Errorf("update %s: %w", current, err)
	}

	next := rt.pending
	rt.pending = ""
	if next == "" || next == current {
		return current, nil
	}
	if err := rt.runPhase("exit", current, engine); err != nil {
		return current, fmt.Errorf("onExit %s: %w", current, err)
	}
	if err := rt.runPhase("enter", next, engine); err != nil {
		return next, fmt.Errorf("onEnter %s: %w", next, err)
	}
	return next, nil
}

func (rt *aiScriptRuntime) runPhase(phase, current string, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__current_state", current); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object, fallback float64) float64 {
	if obj == nil {
		return fallback
	}
	if f, ok := tengo.ToFloat64(obj); ok {
		return f
	}
	return fallback
}

func objectAsInt(obj tengo.Object, fallback int) int {
	if obj == nil {
		return fallback
	}
	if n, ok := tengo.ToInt(obj); ok {
		return n
	}
	return fallback
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
