// Package guardfile scaffolds plugins into a project's Guardfile.
package guardfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/guardhq/guard/plugin/ports"
	"github.com/guardhq/guard/plugin/values"
	"github.com/guardhq/guard/template"
)

// DefaultFileName is the conventional configuration document name.
const DefaultFileName = "Guardfile"

// Integrator appends a plugin's usage template to the Guardfile,
// exactly once.
type Integrator struct {
	path     string // the project Guardfile
	sys      ports.PackageSystem
	eval     ports.Evaluator
	engine   template.Engine
	reporter ports.Reporter
	logger   *slog.Logger
}

// Option configures an Integrator.
type Option func(*Integrator)

// WithEngine overrides the template engine.
func WithEngine(e template.Engine) Option {
	return func(i *Integrator) { i.engine = e }
}

// WithReporter sets the diagnostics sink.
func WithReporter(r ports.Reporter) Option {
	return func(i *Integrator) { i.reporter = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Integrator) { i.logger = l }
}

// NewIntegrator creates an integrator for the Guardfile at path.
func NewIntegrator(path string, sys ports.PackageSystem, eval ports.Evaluator, opts ...Option) *Integrator {
	i := &Integrator{
		path:   path,
		sys:    sys,
		eval:   eval,
		engine: template.NewTextEngine(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.reporter == nil {
		i.reporter = noopReporter{}
	}
	return i
}

// PackagePath returns the install path of the plugin's package,
// looked up under the canonical "guard-<name>" package name.
// A missing package propagates as entities.ErrPackageNotFound.
func (i *Integrator) PackagePath(ctx context.Context, ref values.PluginReference) (string, error) {
	spec, err := i.sys.Find(ctx, ref.PackageName())
	if err != nil {
		return "", err
	}
	return spec.InstallPath, nil
}

// TemplatePath returns the conventional location of the plugin's
// bundled Guardfile snippet inside its package.
func TemplatePath(installPath string, ref values.PluginReference) string {
	return filepath.Join(installPath, values.Namespace, ref.Name(), "templates", DefaultFileName)
}

// Add appends the plugin's template to the Guardfile. When the
// evaluator reports the plugin already declared, nothing is read or
// written and an informational line is emitted instead.
func (i *Integrator) Add(ctx context.Context, ref values.PluginReference) error {
	if i.eval.Includes(ref.Name()) {
		i.reporter.Info(fmt.Sprintf("Guardfile already includes %s guard", ref.Name()))
		return nil
	}

	installPath, err := i.PackagePath(ctx, ref)
	if err != nil {
		return err
	}

	// A fresh project has no Guardfile yet; start from empty.
	existing, err := os.ReadFile(i.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", i.path, err)
	}

	raw, err := os.ReadFile(TemplatePath(installPath, ref))
	if err != nil {
		return fmt.Errorf("read template for %s: %w", ref.Name(), err)
	}

	snippet, err := i.engine.Render(raw, map[string]interface{}{"name": ref.Name()})
	if err != nil {
		return fmt.Errorf("render template for %s: %w", ref.Name(), err)
	}

	content := string(snippet)
	if len(existing) > 0 {
		content = string(existing) + "\n\n" + content
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if err := i.write(content); err != nil {
		return err
	}

	i.logger.Info("plugin added to Guardfile", "plugin", ref.Name(), "path", i.path)
	i.reporter.Info(fmt.Sprintf("%s guard added to Guardfile, feel free to edit it", ref.Name()))
	return nil
}

// write replaces the Guardfile content through a single scoped
// open-write-close; the handle is released on every exit path.
func (i *Integrator) write(content string) error {
	file, err := os.OpenFile(filepath.Clean(i.path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for writing: %w", i.path, err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.WriteString(content); err != nil {
		return fmt.Errorf("write %s: %w", i.path, err)
	}
	return nil
}

type noopReporter struct{}

func (noopReporter) Info(string)  {}
func (noopReporter) Error(string) {}
