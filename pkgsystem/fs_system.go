// Package pkgsystem implements the host package system over local
// install directories. A root contains one directory per installed
// package, named "<package>@<version>" (or bare "<package>" when
// unversioned). Nothing here touches the network.
package pkgsystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/guardhq/guard/plugin/entities"
	"github.com/guardhq/guard/plugin/ports"
	"github.com/guardhq/guard/plugin/resolvers"
)

// EnvRoots is the environment variable overriding the package roots,
// in PATH list form.
const EnvRoots = "GUARD_PATH"

// FSPackageSystem implements ports.PackageSystem by scanning install
// roots. Earlier roots shadow later ones, like PATH.
type FSPackageSystem struct {
	roots    []string
	versions ports.VersionResolver
}

// Option configures the FSPackageSystem.
type Option func(*FSPackageSystem)

// WithVersionResolver overrides the version selection strategy.
func WithVersionResolver(vr ports.VersionResolver) Option {
	return func(s *FSPackageSystem) {
		s.versions = vr
	}
}

// New creates a package system over the given roots. With no roots it
// falls back to GUARD_PATH, then to ~/.guard/packages.
func New(roots []string, opts ...Option) *FSPackageSystem {
	if len(roots) == 0 {
		roots = DefaultRoots()
	}

	s := &FSPackageSystem{
		roots:    roots,
		versions: resolvers.NewSemverResolver(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultRoots returns the install roots from GUARD_PATH, or the
// per-user default.
func DefaultRoots() []string {
	if env := os.Getenv(EnvRoots); env != "" {
		var roots []string
		for _, r := range filepath.SplitList(env) {
			if r != "" {
				roots = append(roots, r)
			}
		}
		return roots
	}

	home, _ := os.UserHomeDir()
	return []string{filepath.Join(home, ".guard", "packages")}
}

// List enumerates all installed packages across the roots. Shadowed
// duplicates (same name and version in a later root) are dropped.
func (s *FSPackageSystem) List(ctx context.Context) ([]ports.PackageSpec, error) {
	var specs []ports.PackageSpec
	seen := make(map[string]struct{})

	for _, root := range s.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue // missing roots are fine
			}
			return nil, fmt.Errorf("read package root %s: %w", root, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name, version := splitDirName(entry.Name())
			key := name + "@" + version
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			specs = append(specs, ports.PackageSpec{
				Name:        name,
				Version:     version,
				InstallPath: filepath.Join(root, entry.Name()),
			})
		}
	}

	return specs, nil
}

// Find returns the installed package with the given name. When
// multiple versions are installed the highest one wins.
func (s *FSPackageSystem) Find(ctx context.Context, name string) (ports.PackageSpec, error) {
	all, err := s.List(ctx)
	if err != nil {
		return ports.PackageSpec{}, err
	}

	byVersion := make(map[string]ports.PackageSpec)
	var versions []string
	for _, spec := range all {
		if spec.Name != name {
			continue
		}
		if spec.Version == "" {
			// Unversioned install wins only when nothing else matches.
			if _, ok := byVersion[""]; !ok {
				byVersion[""] = spec
			}
			continue
		}
		byVersion[spec.Version] = spec
		versions = append(versions, spec.Version)
	}

	if len(versions) > 0 {
		best, err := s.versions.Resolve("latest", versions)
		if err != nil {
			// Installed but not semver-versioned (e.g. "snapshot").
			// The package exists, so pick deterministically rather
			// than reporting absence.
			sort.Strings(versions)
			best = versions[len(versions)-1]
		}
		return byVersion[best], nil
	}
	if spec, ok := byVersion[""]; ok {
		return spec, nil
	}

	return ports.PackageSpec{}, &entities.PackageNotFoundError{PackageName: name}
}

// splitDirName splits "guard-rspec@4.7.0" into name and version.
// A directory without "@" is an unversioned install.
func splitDirName(dir string) (name, version string) {
	if i := strings.LastIndex(dir, "@"); i >= 0 {
		return dir[:i], dir[i+1:]
	}
	return dir, ""
}
