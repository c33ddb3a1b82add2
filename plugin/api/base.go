package api

import (
	"context"

	"github.com/guardhq/guard/plugin/values"
)

// Base provides default no-op hook implementations plus the common
// fields set from Config. Embed it and override the hooks you need.
type Base struct {
	name     string
	group    string
	watchers []values.Watcher
	options  map[string]any
}

// NewBase creates a Base from a Config.
func NewBase(cfg Config) Base {
	return Base{
		name:     cfg.Name,
		group:    cfg.Group,
		watchers: cfg.Watchers,
		options:  cfg.Options,
	}
}

// Name returns the plugin's short name.
func (b *Base) Name() string { return b.name }

// Group returns the group the plugin was configured into.
func (b *Base) Group() string { return b.group }

// Watchers returns the configured watch patterns.
func (b *Base) Watchers() []values.Watcher { return b.watchers }

// Options returns the raw plugin options.
func (b *Base) Options() map[string]any { return b.options }

func (b *Base) Start(ctx context.Context) error { return nil }

func (b *Base) Stop(ctx context.Context) error { return nil }

func (b *Base) Reload(ctx context.Context) error { return nil }

func (b *Base) RunAll(ctx context.Context) error { return nil }

func (b *Base) RunOnModifications(ctx context.Context, paths []string) error { return nil }

func (b *Base) RunOnRemovals(ctx context.Context, paths []string) error { return nil }
