package domain

import (
	"time"

	"github.com/google/uuid"
)

// Extension is a Lua script that is run against every record while a dataset loads.
// It may define a global transform(record) function; scripts without one leave the
// records untouched.
type Extension struct {
	ID         uuid.UUID // Unique identifier for the extension, attached to its log lines.
	Name       string    // Name of the extension, usually the script file name.
	LuaContent string    // The Lua source code of the extension.
	UpdatedAt  time.Time // Last time the script was written to a snapshot.
}

// ExtensionRepository defines the interface for keeping the transform scripts a
// snapshot was built with.
type ExtensionRepository interface {
	// SaveExtension stores ext, replacing any script with the same name.
	SaveExtension(ext *Extension) error
	// GetExtensions returns every stored script ordered by name.
	GetExtensions() ([]*Extension, error)
	// GetExtensionByName returns the script stored under name.
	GetExtensionByName(name string) (*Extension, error)
	// GetExtensionLuaCodeByName returns only the Lua source stored under name.
	GetExtensionLuaCodeByName(name string) (string, error)
}
