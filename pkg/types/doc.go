// Package types defines the shared Go types passed between the dataset, the
// query engine and the presentation layer. They are plain structs with JSON tags
// and carry no UI-specific state.
package types
