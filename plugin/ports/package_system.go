// Package ports defines the narrow interfaces this core uses to talk
// to its collaborators: the host package system, the Guardfile
// evaluator, the diagnostics sink, and the dynamic unit importer.
package ports

import "context"

// PackageSpec describes one installed package candidate. Produced
// fresh on each enumeration, never persisted.
type PackageSpec struct {
	// Name is the declared package name, e.g. "guard-rspec" or "gem2".
	Name string

	// Version is the installed version string.
	Version string

	// InstallPath is the package's install directory. May be empty
	// for built-in packages that carry no files on disk.
	InstallPath string
}

// PackageSystem is the host package system: local metadata plus
// filesystem existence, never the network.
type PackageSystem interface {
	// List enumerates all installed packages.
	List(ctx context.Context) ([]PackageSpec, error)

	// Find returns the installed package with the given name.
	// Returns an error matching entities.ErrPackageNotFound when absent.
	Find(ctx context.Context, name string) (PackageSpec, error)
}
