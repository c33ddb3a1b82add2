package services

import (
	"context"

	"github.com/guardhq/guard/plugin/entities"
	"github.com/guardhq/guard/plugin/values"
)

// TypeResolutionStrategy locates the registered plugin type for a
// reference. Implements Chain of Responsibility: registry-only
// resolution first, dynamic import as the fallback.
type TypeResolutionStrategy interface {
	// Resolve attempts to locate a descriptor matching the reference.
	Resolve(ctx context.Context, ref values.PluginReference) (*entities.Descriptor, error)

	// SetNext sets the next resolver in the chain.
	SetNext(next TypeResolutionStrategy)
}

// BaseResolver provides common chain-of-responsibility logic.
type BaseResolver struct {
	next TypeResolutionStrategy
}

// SetNext sets the next resolver in chain.
func (b *BaseResolver) SetNext(next TypeResolutionStrategy) {
	b.next = next
}

// ResolveNext delegates to the next resolver in chain, or fails with
// a not-found error carrying the type names that were tried.
func (b *BaseResolver) ResolveNext(ctx context.Context, ref values.PluginReference) (*entities.Descriptor, error) {
	if b.next == nil {
		return nil, &entities.PluginNotFoundError{
			Reference: ref,
			Tried:     append([]string{ref.Name()}, MangledCandidates(ref.Name())...),
		}
	}
	return b.next.Resolve(ctx, ref)
}
