package extensions

import (
	"strings"

	"github.com/Shopify/go-lua"
)

// libraryName is the global table exposed to extension scripts.
const libraryName = "launchboard"

// registerLaunchboardLibrary registers the `launchboard` global library and its
// sub-libraries into the Lua state.
func registerLaunchboardLibrary(l *lua.State, runtime *Runtime) {
	funcs := []lua.RegistryFunction{
		// log writes a message to the runtime's logger.
		//
		// @param message string The message to log.
		// @param level string (optional) The log level: DEBUG, INFO, WARN or ERROR.
		// Defaults to "INFO".
		{Name: "log", Function: func(l *lua.State) int {
			message := lua.CheckString(l, 2)
			level := lua.OptString(l, 3, "INFO")

			switch strings.ToUpper(level) {
			case "DEBUG":
				runtime.Logger.Debug(message)
			case "WARN":
				runtime.Logger.Warn(message)
			case "ERROR":
				runtime.Logger.Error(message)
			default:
				runtime.Logger.Info(message)
			}
			return 0
		}},
		// name returns the name of the running extension.
		//
		// @return string The extension name.
		{Name: "name", Function: func(l *lua.State) int {
			l.PushString(runtime.Data.Name)
			return 1
		}},
	}

	lua.NewLibrary(l, funcs)
	l.SetGlobal(libraryName)

	registerStringsLibrary(l)
}
