package entities

import (
	"fmt"

	"github.com/guardhq/guard/plugin/api"
	"github.com/guardhq/guard/plugin/values"
)

// Descriptor is the registered form of a plugin type: the exported
// type name it answers to, the factory that constructs it, and an
// optional model describing its options.
//
// Which factory field is set decides the construction convention.
// The tag replaces runtime type-hierarchy inspection: it is fixed at
// registration time.
type Descriptor struct {
	typeName  string
	factory   api.Factory
	legacy    api.LegacyFactory
	options   any // sample options struct, used for schema generation
	pkgSource string
}

// NewDescriptor creates a descriptor for a plugin using the modern
// single-Config constructor.
func NewDescriptor(typeName string, factory api.Factory) (*Descriptor, error) {
	if typeName == "" {
		return nil, fmt.Errorf("descriptor type name cannot be empty")
	}
	if factory == nil {
		return nil, fmt.Errorf("descriptor %s: factory cannot be nil", typeName)
	}
	return &Descriptor{typeName: typeName, factory: factory}, nil
}

// NewLegacyDescriptor creates a descriptor for a plugin that predates
// the shared contract and takes (watchers, options) positionally.
func NewLegacyDescriptor(typeName string, factory api.LegacyFactory) (*Descriptor, error) {
	if typeName == "" {
		return nil, fmt.Errorf("descriptor type name cannot be empty")
	}
	if factory == nil {
		return nil, fmt.Errorf("descriptor %s: legacy factory cannot be nil", typeName)
	}
	return &Descriptor{typeName: typeName, legacy: factory}, nil
}

// WithOptionsModel attaches a sample options struct. The registry
// derives a JSON schema from it and instantiation validates incoming
// options against that schema.
func (d *Descriptor) WithOptionsModel(model any) *Descriptor {
	d.options = model
	return d
}

// WithPackageSource records which installed package registered this
// descriptor. Empty for inline-defined plugins.
func (d *Descriptor) WithPackageSource(pkg string) *Descriptor {
	d.pkgSource = pkg
	return d
}

// TypeName returns the exported type identifier, e.g. "DashedClassName".
func (d *Descriptor) TypeName() string {
	return d.typeName
}

// UsesModernConstructor reports which construction convention applies.
func (d *Descriptor) UsesModernConstructor() bool {
	return d.factory != nil
}

// OptionsModel returns the sample options struct, or nil.
func (d *Descriptor) OptionsModel() any {
	return d.options
}

// PackageSource returns the registering package name, or "".
func (d *Descriptor) PackageSource() string {
	return d.pkgSource
}

// New constructs a plugin instance, dispatching on the registered
// construction convention.
func (d *Descriptor) New(cfg api.Config) (api.Plugin, error) {
	if d.factory != nil {
		return d.factory(cfg)
	}
	return d.legacy(cfg.Watchers, legacyOptions(cfg))
}

// legacyOptions rebuilds the flat option map legacy constructors
// expect: plain options plus the group under its conventional key.
func legacyOptions(cfg api.Config) map[string]any {
	opts := make(map[string]any, len(cfg.Options)+1)
	for k, v := range cfg.Options {
		opts[k] = v
	}
	if cfg.Group != "" {
		opts["group"] = cfg.Group
	}
	return opts
}

// Watchers is a convenience for validating a pattern list into
// watcher values, used by callers assembling a Config.
func Watchers(patterns ...string) ([]values.Watcher, error) {
	ws := make([]values.Watcher, 0, len(patterns))
	for _, p := range patterns {
		w, err := values.NewWatcher(p)
		if err != nil {
			return nil, err
		}
		ws = append(ws, w)
	}
	return ws, nil
}
