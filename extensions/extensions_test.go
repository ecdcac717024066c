package extensions

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/Shopify/go-lua"
	"github.com/google/uuid"
	"github.com/tfkr-ae/launchboard/domain"
)

func setupTestRuntime(t *testing.T, luaCode string, options ...func(*Runtime) error) *Runtime {
	t.Helper()

	id, err := uuid.NewV7()
	if err != nil {
		t.Fatalf("generating uuid : %v", err)
	}
	ext := &domain.Extension{
		ID:         id,
		Name:       "test-extension",
		LuaContent: luaCode,
	}

	runtime, err := NewRuntime(ext, options...)
	if err != nil {
		t.Fatalf("preparing state: %v", err)
	}
	return runtime
}

func setupLoggedRuntime(t *testing.T, luaCode string) (*Runtime, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return setupTestRuntime(t, luaCode, WithLogger(logger)), &buf
}

// goValue converts the Lua value at index into the matching Go value.
func goValue(l *lua.State, index int) any {
	index = l.AbsIndex(index)
	switch l.TypeOf(index) {
	case lua.TypeString:
		value, _ := l.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := l.ToNumber(index)
		return value
	case lua.TypeBoolean:
		return l.ToBoolean(index)
	case lua.TypeTable:
		var values []any
		length := lua.LengthEx(l, index)
		for i := 1; i <= length; i++ {
			l.RawGetInt(index, i)
			values = append(values, goValue(l, -1))
			l.Pop(1)
		}
		return values
	default:
		return nil
	}
}
