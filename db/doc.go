// Package db provides the snapshot store for Launchboard.
// A snapshot is a SQLite copy of a loaded launch dataset that the dataset loader can
// read back instead of the original delimited file.
//
// There are two ways in:
//   - Open creates or migrates a snapshot for writing (`db.go`). Only imports use it.
//   - OpenReadOnly reads an existing snapshot without touching the file. It refuses
//     SQLite files that are not snapshots at SchemaVersion.
//
// The repositories implement the domain interfaces (`LaunchRepository`,
// `ImportRepository`, `ExtensionRepository`, `StatsRepository`). Schema changes live in
// `migrations/`.
package db
