package registry

import "github.com/guardhq/guard/plugin/entities"

// DescriptorRegistry holds the plugin types known to the process,
// keyed by exported type name within the guard namespace. Loading a
// plugin's code unit populates it; convention-based resolution reads
// from it.
type DescriptorRegistry interface {
	// Register adds a descriptor under its type name. Registering a
	// name twice is an error.
	Register(desc *entities.Descriptor) error

	// Lookup returns the descriptor registered under the exact type
	// name, if any.
	Lookup(typeName string) (*entities.Descriptor, bool)

	// GetSchema returns the JSON schema generated from the
	// descriptor's options model, if one was attached.
	GetSchema(typeName string) (string, bool)

	// List returns all registered type names.
	List() []string
}
