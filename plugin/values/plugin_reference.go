package values

import (
	"strings"
)

// PackagePrefix marks a package as a guard plugin by naming convention.
const PackagePrefix = "guard-"

// Namespace is the canonical namespace guard types are registered under.
const Namespace = "guard"

// PluginReference identifies a plugin as the user supplied it.
// The raw form may or may not carry the canonical package prefix;
// the short name never does. Constructing from "guard-rspec" and
// "rspec" yields identical references for resolution purposes.
type PluginReference struct {
	raw  string // as supplied, e.g. "guard-rspec" or "rspec"
	name string // canonical short name, e.g. "rspec"
}

// NewPluginReference creates a reference from a user-supplied
// identifier, stripping the canonical prefix if present.
// It always succeeds; validation of the short name happens where a
// PluginName is required.
func NewPluginReference(raw string) PluginReference {
	return PluginReference{
		raw:  raw,
		name: strings.TrimPrefix(raw, PackagePrefix),
	}
}

// Name returns the canonical short name.
func (r PluginReference) Name() string {
	return r.name
}

// Raw returns the identifier as supplied by the caller.
func (r PluginReference) Raw() string {
	return r.raw
}

// PackageName returns the conventional package name, e.g. "guard-rspec".
func (r PluginReference) PackageName() string {
	return PackagePrefix + r.name
}

// ConstKey returns the canonical lookup key for the plugin's code
// unit, e.g. "guard/rspec".
func (r PluginReference) ConstKey() string {
	return Namespace + "/" + r.name
}

// String returns the canonical short name.
func (r PluginReference) String() string {
	return r.name
}

// Equals checks equality with another reference. Two references are
// equal when they resolve to the same short name, regardless of how
// they were written.
func (r PluginReference) Equals(other PluginReference) bool {
	return r.name == other.name
}
