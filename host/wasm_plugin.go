package host

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tetratelabs/wazero"

	"github.com/guardhq/guard/plugin/api"
)

// hookEvent is the JSON payload each hook invocation delivers to the
// unit on stdin.
type hookEvent struct {
	Name    string         `json:"name"`
	Group   string         `json:"group,omitempty"`
	Options map[string]any `json:"options,omitempty"`
	Paths   []string       `json:"paths,omitempty"`
}

// WASMPlugin adapts a compiled WASM unit to the plugin interface.
// Each hook call instantiates the unit once with the hook name as an
// argument, so units stay stateless between invocations.
type WASMPlugin struct {
	executor *Executor
	compiled wazero.CompiledModule
	cfg      api.Config
}

// NewWASMPlugin wraps a compiled unit as a plugin.
func NewWASMPlugin(executor *Executor, compiled wazero.CompiledModule, cfg api.Config) *WASMPlugin {
	return &WASMPlugin{executor: executor, compiled: compiled, cfg: cfg}
}

func (p *WASMPlugin) Name() string { return p.cfg.Name }

func (p *WASMPlugin) Start(ctx context.Context) error {
	return p.invoke(ctx, "start", nil)
}

func (p *WASMPlugin) Stop(ctx context.Context) error {
	return p.invoke(ctx, "stop", nil)
}

func (p *WASMPlugin) Reload(ctx context.Context) error {
	return p.invoke(ctx, "reload", nil)
}

func (p *WASMPlugin) RunAll(ctx context.Context) error {
	return p.invoke(ctx, "run_all", nil)
}

func (p *WASMPlugin) RunOnModifications(ctx context.Context, paths []string) error {
	return p.invoke(ctx, "run_on_modifications", paths)
}

func (p *WASMPlugin) RunOnRemovals(ctx context.Context, paths []string) error {
	return p.invoke(ctx, "run_on_removals", paths)
}

func (p *WASMPlugin) invoke(ctx context.Context, hook string, paths []string) error {
	event := hookEvent{
		Name:    p.cfg.Name,
		Group:   p.cfg.Group,
		Options: p.cfg.Options,
		Paths:   paths,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", hook, err)
	}

	if _, err := p.executor.Invoke(ctx, p.compiled, hook, payload); err != nil {
		return fmt.Errorf("plugin %s: %w", p.cfg.Name, err)
	}
	return nil
}
