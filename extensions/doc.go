// Package extensions provides the Lua-based record transform system for Launchboard.
// It includes the runtime that executes a user script while a dataset is loaded and
// the Go functions exposed to that script under the `launchboard` global, allowing a
// transform(record) function to normalise, relabel or drop launch records.
package extensions
