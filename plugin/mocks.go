package plugin

import (
	"context"
	"io"
	"log/slog"

	"github.com/guardhq/guard/plugin/entities"
	"github.com/guardhq/guard/plugin/ports"
	"github.com/guardhq/guard/plugin/services"
	"github.com/guardhq/guard/plugin/values"
)

// MockResolver implements services.TypeResolutionStrategy for testing.
type MockResolver struct {
	services.BaseResolver
	Found  *entities.Descriptor
	Err    error
	Called bool
}

func (m *MockResolver) Resolve(ctx context.Context, ref values.PluginReference) (*entities.Descriptor, error) {
	m.Called = true
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Found != nil {
		return m.Found, nil
	}
	return m.ResolveNext(ctx, ref)
}

// MockReporter captures diagnostic lines.
type MockReporter struct {
	Infos  []string
	Errors []string
}

func (m *MockReporter) Info(message string) {
	m.Infos = append(m.Infos, message)
}

func (m *MockReporter) Error(message string) {
	m.Errors = append(m.Errors, message)
}

// MockImporter implements ports.Importer.
type MockImporter struct {
	Err      error
	Imported []string
	OnImport func(ctx context.Context, key string) error
}

func (m *MockImporter) Import(ctx context.Context, key string) error {
	m.Imported = append(m.Imported, key)
	if m.OnImport != nil {
		return m.OnImport(ctx, key)
	}
	return m.Err
}

// MockPackageSystem implements ports.PackageSystem.
type MockPackageSystem struct {
	Specs   []ports.PackageSpec
	ListErr error
}

func (m *MockPackageSystem) List(ctx context.Context) ([]ports.PackageSpec, error) {
	return m.Specs, m.ListErr
}

func (m *MockPackageSystem) Find(ctx context.Context, name string) (ports.PackageSpec, error) {
	for _, s := range m.Specs {
		if s.Name == name {
			return s, nil
		}
	}
	return ports.PackageSpec{}, &entities.PackageNotFoundError{PackageName: name}
}

// MockEvaluator implements ports.Evaluator.
type MockEvaluator struct {
	Present map[string]bool
}

func (m *MockEvaluator) Includes(name string) bool {
	return m.Present[name]
}

// NewTestLogger returns a logger that discards output.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
