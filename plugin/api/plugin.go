// Package api defines the contract every guard plugin implements.
package api

import (
	"context"

	"github.com/guardhq/guard/plugin/values"
)

// Plugin is the behavioral contract for a guard. The watcher loop
// drives these hooks; implementations report failures through the
// returned error and must not panic across the boundary.
type Plugin interface {
	// Name returns the plugin's short name.
	Name() string

	// Start is called once when the watcher session begins.
	Start(ctx context.Context) error

	// Stop is called once when the watcher session ends.
	Stop(ctx context.Context) error

	// Reload is called when the session is reloaded without stopping.
	Reload(ctx context.Context) error

	// RunAll runs the plugin against everything it watches.
	RunAll(ctx context.Context) error

	// RunOnModifications is called with paths that changed on disk.
	RunOnModifications(ctx context.Context, paths []string) error

	// RunOnRemovals is called with paths that were deleted.
	RunOnRemovals(ctx context.Context, paths []string) error
}

// Config carries everything a modern plugin constructor needs.
// Plugins predating this contract take watchers and options as
// separate arguments instead.
type Config struct {
	Name     string
	Group    string
	Watchers []values.Watcher
	Options  map[string]any
}

// Factory constructs a plugin the modern way, from a single Config.
type Factory func(cfg Config) (Plugin, error)

// LegacyFactory constructs a plugin the legacy way, from positional
// watchers and options. Kept for plugins not yet migrated.
type LegacyFactory func(watchers []values.Watcher, options map[string]any) (Plugin, error)
