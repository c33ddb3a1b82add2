package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/guardhq/guard/parser"
	"github.com/guardhq/guard/pkgsystem"
	"github.com/guardhq/guard/plugin/api"
	"github.com/guardhq/guard/plugin/entities"
	"github.com/guardhq/guard/plugin/ports"
	"github.com/guardhq/guard/plugin/resolvers"
	"github.com/guardhq/guard/plugin/services"
	"github.com/guardhq/guard/plugin/values"
	"github.com/guardhq/guard/registry"
)

// UnitImporter loads plugin code units from installed packages and
// registers their types with the descriptor registry. It is the
// production Importer: given "guard/rspec" it locates the guard-rspec
// package (or a package embedding a unit under its own name), compiles
// the unit and registers a descriptor whose factory instantiates the
// unit per hook.
type UnitImporter struct {
	executor *Executor
	sys      ports.PackageSystem
	reg      registry.DescriptorRegistry
	logger   *slog.Logger
}

// NewUnitImporter creates an importer backed by the given executor,
// package system and registry.
func NewUnitImporter(executor *Executor, sys ports.PackageSystem, reg registry.DescriptorRegistry, logger *slog.Logger) *UnitImporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnitImporter{executor: executor, sys: sys, reg: reg, logger: logger}
}

// Import loads the unit behind a canonical key. Importing a key whose
// type is already registered is a no-op.
func (i *UnitImporter) Import(ctx context.Context, key string) error {
	name, ok := strings.CutPrefix(key, values.Namespace+"/")
	if !ok || name == "" {
		return &entities.UnitLoadError{Key: key, Cause: fmt.Errorf("malformed unit key")}
	}

	if _, found := resolvers.LookupByConvention(i.reg, name); found {
		i.logger.Debug("unit already loaded", "key", key)
		return nil
	}

	spec, manifest, err := i.locate(ctx, values.NewPluginReference(name))
	if err != nil {
		return &entities.UnitLoadError{Key: key, Cause: err}
	}

	desc, err := i.describe(ctx, manifest, spec)
	if err != nil {
		return &entities.UnitLoadError{Key: key, Cause: err}
	}
	if err := i.reg.Register(desc); err != nil {
		return &entities.UnitLoadError{Key: key, Cause: err}
	}

	i.logger.Info("loaded plugin unit",
		"key", key,
		"type", desc.TypeName(),
		"package", spec.Name,
		"version", spec.Version)
	return nil
}

// locate finds the package carrying the unit. Conventionally named
// packages (guard-<name>) win; a package named exactly <name> is
// accepted when it embeds a unit under the guard/ directory.
func (i *UnitImporter) locate(ctx context.Context, ref values.PluginReference) (ports.PackageSpec, *parser.Manifest, error) {
	spec, err := i.sys.Find(ctx, ref.PackageName())
	if err != nil {
		if !errors.Is(err, entities.ErrPackageNotFound) {
			return ports.PackageSpec{}, nil, err
		}
		spec, err = i.sys.Find(ctx, ref.Name())
		if err != nil {
			return ports.PackageSpec{}, nil, err
		}
		if !pkgsystem.HasEmbeddedUnit(spec) {
			return ports.PackageSpec{}, nil, &entities.PackageNotFoundError{PackageName: ref.PackageName()}
		}
	}

	manifest, _, err := pkgsystem.ReadManifest(spec)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return ports.PackageSpec{}, nil, err
		}
		// Packages without a manifest can still ship a unit at the
		// conventional path.
		manifest = &parser.Manifest{Name: ref.Name(), Version: spec.Version}
	}
	return spec, manifest, nil
}

// describe compiles the located unit and builds its descriptor.
func (i *UnitImporter) describe(ctx context.Context, m *parser.Manifest, spec ports.PackageSpec) (*entities.Descriptor, error) {
	typeName := m.TypeName
	if typeName == "" {
		typeName = services.DashToCamel(m.Name)
	}

	wasmBytes, err := os.ReadFile(pkgsystem.UnitPath(spec, m))
	if err != nil {
		return nil, fmt.Errorf("read unit: %w", err)
	}
	compiled, err := i.executor.Compile(ctx, wasmBytes)
	if err != nil {
		return nil, err
	}

	if m.Legacy {
		factory := func(watchers []values.Watcher, options map[string]any) (api.Plugin, error) {
			cfg := api.Config{Watchers: watchers, Options: options}
			if g, ok := options["group"].(string); ok {
				cfg.Group = g
			}
			return NewWASMPlugin(i.executor, compiled, cfg), nil
		}
		desc, err := entities.NewLegacyDescriptor(typeName, factory)
		if err != nil {
			return nil, err
		}
		return desc.WithPackageSource(spec.Name), nil
	}

	factory := func(cfg api.Config) (api.Plugin, error) {
		return NewWASMPlugin(i.executor, compiled, cfg), nil
	}
	desc, err := entities.NewDescriptor(typeName, factory)
	if err != nil {
		return nil, err
	}
	return desc.WithPackageSource(spec.Name), nil
}
