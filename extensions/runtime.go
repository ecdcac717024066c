package extensions

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/Shopify/goluago/util"
	"github.com/google/uuid"
	"github.com/tfkr-ae/launchboard/domain"
)

// transformFunction is the global a script defines to rewrite records.
const transformFunction = "transform"

// Globals removed from the Lua state before any script runs.
var blockedGlobals = []string{"dofile", "loadfile", "io", "os", "require"}

var _ domain.RecordTransformer = (*Runtime)(nil)

// Runtime executes one extension script and applies its transform to records.
// A Runtime is not safe for concurrent use; it is meant to run during the single
// threaded dataset load.
type Runtime struct {
	Data         *domain.Extension // The extension being executed.
	LuaState     *lua.State        // The Lua state holding the script globals.
	Logger       *slog.Logger      // Logger receiving print and launchboard:log output.
	hasTransform bool
}

// NewRuntime prepares a Lua state for extension and runs its top-level code.
func NewRuntime(extension *domain.Extension, options ...func(*Runtime) error) (*Runtime, error) {
	runtime := &Runtime{Data: extension}
	if err := runtime.PrepareState(options); err != nil {
		return nil, err
	}
	return runtime, nil
}

// LoadFile reads a Lua script from path and prepares a runtime named after the file.
func LoadFile(path string, options ...func(*Runtime) error) (*Runtime, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading extension %s : %w", path, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating uuid : %w", err)
	}

	return NewRuntime(&domain.Extension{
		ID:         id,
		Name:       filepath.Base(path),
		LuaContent: string(code),
	}, options...)
}

// WithLogger sets the logger used by print and launchboard:log.
func WithLogger(logger *slog.Logger) func(*Runtime) error {
	return func(runtime *Runtime) error {
		if logger != nil {
			runtime.Logger = logger
		}
		return nil
	}
}

// PrepareState creates the Lua state, registers the launchboard library, applies the
// options and executes the extension's top-level code.
func (runtime *Runtime) PrepareState(options []func(*Runtime) error) error {
	if runtime.Data == nil {
		return errors.New("runtime has no extension data")
	}
	if runtime.Logger == nil {
		runtime.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	for _, option := range options {
		if err := option(runtime); err != nil {
			return fmt.Errorf("applying option on extension %s : %w", runtime.Data.Name, err)
		}
	}
	runtime.Logger = runtime.Logger.With("extension", runtime.Data.Name, "extension_id", runtime.Data.ID.String())

	runtime.LuaState = lua.NewState()
	lua.OpenLibraries(runtime.LuaState)
	for _, name := range blockedGlobals {
		runtime.LuaState.PushNil()
		runtime.LuaState.SetGlobal(name)
	}

	registerLaunchboardLibrary(runtime.LuaState, runtime)
	RegisterCustomPrint(runtime)

	if err := runtime.ExecuteLua(runtime.Data.LuaContent); err != nil {
		return fmt.Errorf("executing extension %s : %w", runtime.Data.Name, err)
	}

	runtime.LuaState.Global(transformFunction)
	runtime.hasTransform = runtime.LuaState.IsFunction(-1)
	runtime.LuaState.Pop(1)

	return nil
}

// ExecuteLua runs code in the runtime's Lua state.
func (runtime *Runtime) ExecuteLua(code string) error {
	if runtime.LuaState == nil {
		return errors.New("lua state is not prepared")
	}
	if err := lua.DoString(runtime.LuaState, code); err != nil {
		return fmt.Errorf("running lua : %w", err)
	}
	return nil
}

// HasTransform reports whether the script defined a transform function.
func (runtime *Runtime) HasTransform() bool {
	return runtime.hasTransform
}

// Transform passes record to the script's transform function.
//
// The function receives a table {site, payload, class, booster} and returns either a
// table, whose present fields replace the record's, or nil to drop the record.
// Without a transform function every record is kept unchanged.
func (runtime *Runtime) Transform(record domain.LaunchRecord) (domain.LaunchRecord, bool, error) {
	if !runtime.hasTransform || runtime.LuaState == nil {
		return record, true, nil
	}

	l := runtime.LuaState
	top := l.Top()
	defer l.SetTop(top)

	l.Global(transformFunction)
	util.DeepPush(l, map[string]any{
		"site":    record.LaunchSite,
		"payload": record.PayloadMassKg,
		"class":   record.OutcomeClass,
		"booster": record.BoosterVersionCategory,
	})

	if err := l.ProtectedCall(1, 1, 0); err != nil {
		return record, false, fmt.Errorf("calling %s : %w", transformFunction, err)
	}

	if l.IsNil(-1) {
		return domain.LaunchRecord{}, false, nil
	}
	if !l.IsTable(-1) {
		return record, false, fmt.Errorf("%s returned %s, expected table or nil", transformFunction, lua.TypeNameOf(l, -1))
	}

	out := record
	if site, ok, err := stringField(l, "site"); err != nil {
		return record, false, err
	} else if ok {
		out.LaunchSite = site
	}
	if booster, ok, err := stringField(l, "booster"); err != nil {
		return record, false, err
	} else if ok {
		out.BoosterVersionCategory = booster
	}
	if payload, ok, err := numberField(l, "payload"); err != nil {
		return record, false, err
	} else if ok {
		out.PayloadMassKg = payload
	}
	if class, ok, err := numberField(l, "class"); err != nil {
		return record, false, err
	} else if ok {
		if class != domain.OutcomeFailure && class != domain.OutcomeSuccess {
			return record, false, fmt.Errorf("%s returned class %g, expected 0 or 1", transformFunction, class)
		}
		out.OutcomeClass = int(class)
	}

	if strings.TrimSpace(out.LaunchSite) == "" {
		return record, false, fmt.Errorf("%s returned an empty site", transformFunction)
	}
	if out.PayloadMassKg < 0 || math.IsNaN(out.PayloadMassKg) || math.IsInf(out.PayloadMassKg, 0) {
		return record, false, fmt.Errorf("%s returned payload %g, expected a non-negative number", transformFunction, out.PayloadMassKg)
	}

	return out, true, nil
}

// Name returns the name of the script, which snapshots store alongside the records it
// transformed.
func (runtime *Runtime) Name() string {
	return runtime.Data.Name
}

// Close releases the Lua state. Transform keeps every record unchanged afterwards.
func (runtime *Runtime) Close() {
	runtime.LuaState = nil
	runtime.hasTransform = false
}

func stringField(l *lua.State, name string) (string, bool, error) {
	l.Field(-1, name)
	defer l.Pop(1)

	if l.IsNil(-1) {
		return "", false, nil
	}
	if !l.IsString(-1) {
		return "", false, fmt.Errorf("%s returned %s for %q, expected string", transformFunction, lua.TypeNameOf(l, -1), name)
	}
	value, _ := l.ToString(-1)
	return value, true, nil
}

func numberField(l *lua.State, name string) (float64, bool, error) {
	l.Field(-1, name)
	defer l.Pop(1)

	if l.IsNil(-1) {
		return 0, false, nil
	}
	value, ok := l.ToNumber(-1)
	if !ok {
		return 0, false, fmt.Errorf("%s returned %s for %q, expected number", transformFunction, lua.TypeNameOf(l, -1), name)
	}
	return value, true, nil
}

// RegisterCustomPrint replaces the Lua print function so output goes to the runtime logger.
func RegisterCustomPrint(runtime *Runtime) {
	printFunc := func(l *lua.State) int {
		n := l.Top()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			if str, ok := lua.ToStringMeta(l, i); ok {
				parts = append(parts, str)
			} else {
				parts = append(parts, lua.TypeNameOf(l, i))
			}
		}
		runtime.Logger.Info(strings.Join(parts, "\t"))
		return 0
	}
	runtime.LuaState.Register("print", printFunc)
}
