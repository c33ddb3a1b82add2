// Package registry implements the in-memory plugin descriptor registry.
package registry

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/guardhq/guard/plugin/entities"
)

// Registry implements DescriptorRegistry using in-memory storage.
type Registry struct {
	descriptors map[string]*entities.Descriptor
	schemas     map[string]string
	mu          sync.RWMutex
	reflector   *jsonschema.Reflector
}

// Option configures the Registry.
type Option func(*Registry)

// WithReflector overrides the schema reflector.
func WithReflector(r *jsonschema.Reflector) Option {
	return func(reg *Registry) {
		reg.reflector = r
	}
}

// New creates a new descriptor registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		descriptors: make(map[string]*entities.Descriptor),
		schemas:     make(map[string]string),
		reflector:   new(jsonschema.Reflector),
	}

	r.reflector.ExpandedStruct = true

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a descriptor under its type name. When the
// descriptor carries an options model, a JSON schema is generated
// from it at registration time.
func (r *Registry) Register(desc *entities.Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := desc.TypeName()
	if _, exists := r.descriptors[name]; exists {
		return fmt.Errorf("plugin type already registered: %s", name)
	}

	if model := desc.OptionsModel(); model != nil {
		s := r.reflector.Reflect(model)
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal generated schema for %s: %w", name, err)
		}
		r.schemas[name] = string(b)
	}

	r.descriptors[name] = desc
	return nil
}

// Lookup returns the descriptor registered under the exact type name.
func (r *Registry) Lookup(typeName string) (*entities.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[typeName]
	return d, ok
}

// GetSchema retrieves the options schema for a plugin type.
func (r *Registry) GetSchema(typeName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[typeName]
	return s, ok
}

// List returns all registered plugin type names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.descriptors))
	for k := range r.descriptors {
		keys = append(keys, k)
	}
	return keys
}
