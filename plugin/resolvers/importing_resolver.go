package resolvers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/guardhq/guard/plugin/entities"
	"github.com/guardhq/guard/plugin/ports"
	"github.com/guardhq/guard/plugin/services"
	"github.com/guardhq/guard/plugin/values"
	"github.com/guardhq/guard/registry"
)

// ImportingTypeResolver loads the reference's code unit through the
// Importer, then retries the convention lookup against whatever the
// import registered.
type ImportingTypeResolver struct {
	services.BaseResolver
	registry registry.DescriptorRegistry
	importer ports.Importer
	logger   *slog.Logger
}

// NewImportingTypeResolver creates an import-backed resolver.
func NewImportingTypeResolver(reg registry.DescriptorRegistry, importer ports.Importer, logger *slog.Logger) *ImportingTypeResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportingTypeResolver{registry: reg, importer: importer, logger: logger}
}

// Resolve imports the unit at the canonical key and rechecks the
// registry. Import failures surface as UnitLoadError; a clean import
// that registers nothing matching surfaces through the chain tail.
func (r *ImportingTypeResolver) Resolve(ctx context.Context, ref values.PluginReference) (*entities.Descriptor, error) {
	if r.importer == nil {
		return r.ResolveNext(ctx, ref)
	}

	key := ref.ConstKey()
	r.logger.Debug("importing plugin unit", "key", key)

	if err := r.importer.Import(ctx, key); err != nil {
		var loadErr *entities.UnitLoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &entities.UnitLoadError{Key: key, Cause: err}
	}

	if desc, ok := LookupByConvention(r.registry, ref.Name()); ok {
		return desc, nil
	}
	return r.ResolveNext(ctx, ref)
}
