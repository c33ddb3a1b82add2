// Package host provides the WASM runtime for packaged guard plugins.
package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

// Executor manages the lifecycle of WASM plugin units. Units follow
// the command convention: each hook invocation instantiates the
// module with the hook name as an argument and the event payload on
// stdin.
type Executor struct {
	runtime wazero.Runtime
	cache   wazero.CompilationCache
	verbose bool
	logger  *slog.Logger
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}

	cfg := wazero.NewRuntimeConfig()
	if e.cache != nil {
		cfg = cfg.WithCompilationCache(e.cache)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, cfg)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := e.registerHostFunctions(ctx); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// registerHostFunctions exposes the "guard" host module to plugins.
func (e *Executor) registerHostFunctions(ctx context.Context) error {
	_, err := e.runtime.NewHostModuleBuilder("guard").
		NewFunctionBuilder().
		WithGoModuleFunction(e.logMessageFunc(), logMessageParams, nil).
		Export("log_message").
		Instantiate(ctx)
	return err
}

// Compile compiles a WASM unit for repeated invocation.
func (e *Executor) Compile(ctx context.Context, wasmBytes []byte) (wazero.CompiledModule, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile unit: %w", err)
	}
	return compiled, nil
}

// Invoke runs one hook of a compiled unit. The payload arrives on the
// unit's stdin; whatever the unit writes to stdout is returned. A
// clean exit(0) is success, any other exit code is an error carrying
// the unit's stderr.
func (e *Executor) Invoke(ctx context.Context, compiled wazero.CompiledModule, hook string, payload []byte) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cfg := wazero.NewModuleConfig().
		WithName(""). // anonymous: one unit may be instantiated repeatedly
		WithArgs("guard-plugin", hook).
		WithStdin(bytes.NewReader(payload)).
		WithStdout(&stdout).
		WithStderr(&stderr)

	mod, err := e.runtime.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 0 {
			return stdout.Bytes(), nil
		}
		if e.verbose && stderr.Len() > 0 {
			e.logger.Debug("plugin unit stderr", "hook", hook, "stderr", stderr.String())
		}
		return nil, fmt.Errorf("unit hook %q failed: %w (stderr: %s)", hook, err, stderr.String())
	}
	defer func() { _ = mod.Close(ctx) }()

	return stdout.Bytes(), nil
}

// Close releases resources held by the executor.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}
