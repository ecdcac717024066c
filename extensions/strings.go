package extensions

import (
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/Shopify/goluago/util"
)

func registerStringsLibrary(l *lua.State) {
	l.Global(libraryName)

	if l.IsNil(-1) {
		l.Pop(1)
		return
	}

	lua.NewLibrary(l, stringsLibrary())
	l.SetField(-2, "strings")
	l.Pop(1)
}

// stringsLibrary returns the string helpers available under `launchboard.strings`.
// Like the rest of the library they are called with a colon, e.g.
// launchboard.strings:upper(record.site).
func stringsLibrary() []lua.RegistryFunction {
	return []lua.RegistryFunction{
		// upper converts a string to uppercase.
		{Name: "upper", Function: func(l *lua.State) int {
			l.PushString(strings.ToUpper(lua.CheckString(l, 2)))
			return 1
		}},
		// lower converts a string to lowercase.
		{Name: "lower", Function: func(l *lua.State) int {
			l.PushString(strings.ToLower(lua.CheckString(l, 2)))
			return 1
		}},
		// trim removes leading and trailing whitespace.
		{Name: "trim", Function: func(l *lua.State) int {
			l.PushString(strings.TrimSpace(lua.CheckString(l, 2)))
			return 1
		}},
		// replace replaces occurrences of target with replacement.
		//
		// @param input string The original string.
		// @param target string The substring to replace.
		// @param replacement string (optional) Defaults to "".
		// @param n number (optional) Maximum number of replacements, -1 for all.
		{Name: "replace", Function: func(l *lua.State) int {
			input := lua.CheckString(l, 2)
			target := lua.CheckString(l, 3)
			replacement := lua.OptString(l, 4, "")
			n := lua.OptInteger(l, 5, -1)

			l.PushString(strings.Replace(input, target, replacement, n))
			return 1
		}},
		// contains reports whether input contains substr.
		{Name: "contains", Function: func(l *lua.State) int {
			l.PushBoolean(strings.Contains(lua.CheckString(l, 2), lua.CheckString(l, 3)))
			return 1
		}},
		// has_prefix reports whether input starts with prefix.
		{Name: "has_prefix", Function: func(l *lua.State) int {
			l.PushBoolean(strings.HasPrefix(lua.CheckString(l, 2), lua.CheckString(l, 3)))
			return 1
		}},
		// has_suffix reports whether input ends with suffix.
		{Name: "has_suffix", Function: func(l *lua.State) int {
			l.PushBoolean(strings.HasSuffix(lua.CheckString(l, 2), lua.CheckString(l, 3)))
			return 1
		}},
		// split splits input around separator and returns the parts as a table.
		{Name: "split", Function: func(l *lua.State) int {
			parts := strings.Split(lua.CheckString(l, 2), lua.CheckString(l, 3))
			util.DeepPush(l, parts)
			return 1
		}},
		// substring returns the runes of input in [start, end), clamped to the input.
		//
		// @param start number The starting index (0-based).
		// @param end number (optional) The ending index, defaults to the input length.
		{Name: "substring", Function: func(l *lua.State) int {
			runes := []rune(lua.CheckString(l, 2))
			start := lua.CheckInteger(l, 3)
			end := lua.OptInteger(l, 4, len(runes))

			start = max(0, min(start, len(runes)))
			end = max(start, min(end, len(runes)))

			l.PushString(string(runes[start:end]))
			return 1
		}},
	}
}
