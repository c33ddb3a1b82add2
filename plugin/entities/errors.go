package entities

import (
	"errors"
	"fmt"

	"github.com/guardhq/guard/plugin/values"
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detailed information.
var (
	// ErrPluginNotFound is returned when no naming convention resolves
	// a reference to a registered plugin type.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrUnitLoadFailed is returned when a plugin's code unit cannot
	// be loaded from its package.
	ErrUnitLoadFailed = errors.New("plugin unit load failed")

	// ErrPackageNotFound is returned when the package system has no
	// installed package under the requested name.
	ErrPackageNotFound = errors.New("package not found")
)

// PluginNotFoundError indicates that the code unit loaded (or was
// already loaded) but no naming convention matched a registered type.
type PluginNotFoundError struct {
	Reference values.PluginReference
	Tried     []string // type names tried, in convention order
}

func (e *PluginNotFoundError) Error() string {
	return fmt.Sprintf("no plugin type registered for %s (tried %v)", e.Reference.Name(), e.Tried)
}

// Is implements error matching for errors.Is() checks.
func (e *PluginNotFoundError) Is(target error) bool {
	return target == ErrPluginNotFound
}

// UnitLoadError indicates the dynamically computed code unit could
// not be loaded. Recovered by the loader, never raised to callers.
type UnitLoadError struct {
	Key   string // canonical lookup key, e.g. "guard/rspec"
	Cause error
}

func (e *UnitLoadError) Error() string {
	return fmt.Sprintf("could not load %s: %v", e.Key, e.Cause)
}

func (e *UnitLoadError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is() checks.
func (e *UnitLoadError) Is(target error) bool {
	return target == ErrUnitLoadFailed
}

// PackageNotFoundError indicates an installed package lookup failed.
// Unlike resolution failures this propagates to the caller.
type PackageNotFoundError struct {
	PackageName string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package not found: %s", e.PackageName)
}

// Is implements error matching for errors.Is() checks.
func (e *PackageNotFoundError) Is(target error) bool {
	return target == ErrPackageNotFound
}
