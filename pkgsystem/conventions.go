package pkgsystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/guardhq/guard/parser"
	"github.com/guardhq/guard/plugin/ports"
	"github.com/guardhq/guard/plugin/values"
)

// EmbeddedUnitPath returns the conventional location of a plugin code
// unit embedded inside a package that does not follow the naming
// convention: <install>/guard/<package>.wasm.
func EmbeddedUnitPath(spec ports.PackageSpec) string {
	return filepath.Join(spec.InstallPath, values.Namespace, spec.Name+".wasm")
}

// HasEmbeddedUnit probes the filesystem for an embedded plugin unit.
func HasEmbeddedUnit(spec ports.PackageSpec) bool {
	if spec.InstallPath == "" {
		return false
	}
	info, err := os.Stat(EmbeddedUnitPath(spec))
	return err == nil && !info.IsDir()
}

// UnitPath returns the code unit location declared by the manifest,
// falling back to the conventional guard/<name>.wasm.
func UnitPath(spec ports.PackageSpec, m *parser.Manifest) string {
	unit := m.Unit
	if unit == "" {
		unit = filepath.Join(values.Namespace, m.Name+".wasm")
	}
	return filepath.Join(spec.InstallPath, unit)
}

// ReadManifest loads and parses the package's guardplugin.yaml.
// The raw bytes are returned alongside for digesting.
func ReadManifest(spec ports.PackageSpec) (*parser.Manifest, []byte, error) {
	if spec.InstallPath == "" {
		return nil, nil, fmt.Errorf("package %s has no install path", spec.Name)
	}

	raw, err := os.ReadFile(filepath.Join(spec.InstallPath, parser.ManifestFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("read manifest for %s: %w", spec.Name, err)
	}

	m, err := parser.NewYamlManifestParser().Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("parse manifest for %s: %w", spec.Name, err)
	}
	return m, raw, nil
}
