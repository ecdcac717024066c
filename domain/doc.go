// Package domain defines the core data structures of Launchboard.
// It contains the launch record model, the immutable Dataset handle that is shared
// between the loader and the query engine, the chart series types handed to renderers,
// and the repository interfaces implemented by the snapshot store.
package domain
