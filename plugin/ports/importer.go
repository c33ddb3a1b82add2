package ports

import "context"

// Importer loads a plugin's code unit by its canonical key
// (e.g. "guard/rspec"). Loading is a side-effecting operation: a
// successful import registers the unit's plugin types with the
// descriptor registry. Importing an already-loaded unit is a no-op.
//
// This is the stand-in for dynamic constant loading: the default
// implementation compiles a wasm unit from the plugin's package,
// while statically linked plugins register at process start and
// need no importer at all.
type Importer interface {
	Import(ctx context.Context, key string) error
}
