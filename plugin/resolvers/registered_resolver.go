// Package resolvers implements the plugin type resolution chain.
package resolvers

import (
	"context"
	"sort"
	"strings"

	"github.com/guardhq/guard/plugin/entities"
	"github.com/guardhq/guard/plugin/services"
	"github.com/guardhq/guard/plugin/values"
	"github.com/guardhq/guard/registry"
)

// RegisteredTypeResolver resolves references against types already
// present in the descriptor registry, covering units loaded earlier
// in the process and inline-defined plugins.
type RegisteredTypeResolver struct {
	services.BaseResolver
	registry registry.DescriptorRegistry
}

// NewRegisteredTypeResolver creates a registry-backed resolver.
func NewRegisteredTypeResolver(reg registry.DescriptorRegistry) *RegisteredTypeResolver {
	return &RegisteredTypeResolver{registry: reg}
}

// Resolve tries the naming conventions against registry contents,
// otherwise delegates to the next resolver.
func (r *RegisteredTypeResolver) Resolve(ctx context.Context, ref values.PluginReference) (*entities.Descriptor, error) {
	if desc, ok := LookupByConvention(r.registry, ref.Name()); ok {
		return desc, nil
	}
	return r.ResolveNext(ctx, ref)
}

// LookupByConvention tries each naming convention in precedence
// order against the registry and returns the first hit:
//
//  1. exact-case scan: a registered type name equal to the short
//     name ignoring case ("vspec" or "VSpec" finds VSpec)
//  2. dash-to-CamelCase
//  3. underscore-to-CamelCase
//  4. plain capitalization
//
// The case-insensitive scan runs over sorted registry contents so
// type names differing only in case resolve deterministically; an
// exact match always wins.
func LookupByConvention(reg registry.DescriptorRegistry, name string) (*entities.Descriptor, bool) {
	if desc, ok := reg.Lookup(name); ok {
		return desc, true
	}

	typeNames := reg.List()
	sort.Strings(typeNames)
	for _, typeName := range typeNames {
		if strings.EqualFold(typeName, name) {
			desc, ok := reg.Lookup(typeName)
			return desc, ok
		}
	}

	for _, candidate := range services.MangledCandidates(name) {
		if desc, ok := reg.Lookup(candidate); ok {
			return desc, true
		}
	}

	return nil, false
}
