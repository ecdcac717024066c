// Package dataset loads launch records from a delimited text file or a SQLite
// snapshot into an immutable domain.Dataset. Loading happens once, before any query.
package dataset
