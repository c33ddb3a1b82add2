// Package plugin orchestrates guard plugin resolution and
// instantiation.
package plugin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/guardhq/guard/plugin/api"
	"github.com/guardhq/guard/plugin/entities"
	"github.com/guardhq/guard/plugin/ports"
	"github.com/guardhq/guard/plugin/resolvers"
	"github.com/guardhq/guard/plugin/services"
	"github.com/guardhq/guard/plugin/values"
	"github.com/guardhq/guard/registry"
	"github.com/guardhq/guard/validation"
)

// Service coordinates the descriptor registry, the resolution chain,
// and options validation behind one facade.
type Service struct {
	registry  registry.DescriptorRegistry
	resolver  services.TypeResolutionStrategy
	importer  ports.Importer
	reporter  ports.Reporter
	validator validation.OptionsValidator
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// NewService creates a plugin service over the given registry.
func NewService(reg registry.DescriptorRegistry, opts ...ServiceOption) *Service {
	s := &Service{
		registry:  reg,
		logger:    slog.Default(),
		validator: validation.NewSchemaOptionsValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.reporter == nil {
		s.reporter = NewSlogReporter(s.logger)
	}
	if s.resolver == nil {
		head := resolvers.NewRegisteredTypeResolver(reg)
		head.SetNext(resolvers.NewImportingTypeResolver(reg, s.importer, s.logger))
		s.resolver = head
	}
	return s
}

// WithImporter sets the dynamic unit importer.
func WithImporter(imp ports.Importer) ServiceOption {
	return func(s *Service) { s.importer = imp }
}

// WithReporter sets the diagnostics sink.
func WithReporter(r ports.Reporter) ServiceOption {
	return func(s *Service) { s.reporter = r }
}

// WithResolver replaces the resolution chain.
func WithResolver(r services.TypeResolutionStrategy) ServiceOption {
	return func(s *Service) { s.resolver = r }
}

// WithValidator sets the options validator.
func WithValidator(v validation.OptionsValidator) ServiceOption {
	return func(s *Service) { s.validator = v }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// ResolveOptions controls failure behavior during type resolution.
type ResolveOptions struct {
	// FailGracefully suppresses the diagnostic lines on not-found,
	// leaving a silent nil result.
	FailGracefully bool
}

// ResolveType locates the registered plugin type for a reference.
// Resolution failure is never a raised fault: the result is nil and,
// unless graceful mode is set, three diagnostic lines go to the
// reporter (what failed, the underlying error, and a hint).
func (s *Service) ResolveType(ctx context.Context, ref values.PluginReference, opts ResolveOptions) *entities.Descriptor {
	desc, err := s.resolver.Resolve(ctx, ref)
	if err != nil {
		if !opts.FailGracefully {
			s.reporter.Error(fmt.Sprintf("could not load plugin %q", ref.Name()))
			s.reporter.Error(err.Error())
			s.reporter.Error(fmt.Sprintf("make sure the plugin package is installed and its unit at %q registers a type matching one of the guard naming conventions", ref.ConstKey()))
		}
		s.logger.Debug("plugin resolution failed", "plugin", ref.Name(), "error", err)
		return nil
	}
	return desc
}

// Instantiate resolves the plugin type and constructs an instance
// with the given configuration, dispatching to the constructor
// convention recorded on the descriptor. Options are validated
// against the registered schema first, when one exists.
//
// A nil, nil return means resolution failed upstream; diagnostics
// were already handled per opts.
func (s *Service) Instantiate(ctx context.Context, ref values.PluginReference, cfg api.Config, opts ResolveOptions) (api.Plugin, error) {
	desc := s.ResolveType(ctx, ref, opts)
	if desc == nil {
		return nil, nil
	}

	if cfg.Name == "" {
		cfg.Name = ref.Name()
	}

	if schema, ok := s.registry.GetSchema(desc.TypeName()); ok {
		if err := s.validator.Validate(schema, cfg.Options); err != nil {
			return nil, fmt.Errorf("options for plugin %q: %w", ref.Name(), err)
		}
	}

	instance, err := desc.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("construct plugin %q: %w", ref.Name(), err)
	}

	s.logger.Info("plugin instantiated",
		"plugin", ref.Name(),
		"type", desc.TypeName(),
		"modern", desc.UsesModernConstructor())
	return instance, nil
}
