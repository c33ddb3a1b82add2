// Package discovery enumerates the guard plugins installed on the
// host, without loading any of them.
package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/guardhq/guard/pkgsystem"
	"github.com/guardhq/guard/plugin/ports"
	"github.com/guardhq/guard/plugin/values"
)

// PluginNames returns the short names of all installed plugins.
// A package counts as a plugin when its name carries the canonical
// "guard-" prefix, or when it embeds a unit at the conventional
// guard/<package>.wasm location. Everything else is ignored.
//
// Pure read: local package metadata and filesystem existence checks
// only. The result is deduplicated; order is stable but carries no
// meaning.
func PluginNames(ctx context.Context, sys ports.PackageSystem) ([]string, error) {
	specs, err := sys.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate installed packages: %w", err)
	}

	seen := make(map[string]struct{})
	var names []string

	record := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, spec := range specs {
		switch {
		case strings.HasPrefix(spec.Name, values.PackagePrefix):
			record(strings.TrimPrefix(spec.Name, values.PackagePrefix))
		case pkgsystem.HasEmbeddedUnit(spec):
			// Plugin embedded in a larger package: keep the raw
			// package name, there is no prefix to strip.
			record(spec.Name)
		}
	}

	sort.Strings(names)
	return names, nil
}
