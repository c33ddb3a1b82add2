// Package parser provides functionality for parsing plugin manifests.
package parser

import "fmt"

// ManifestFileName is the conventional manifest file inside a
// package's install directory.
const ManifestFileName = "guardplugin.yaml"

// Manifest declares a packaged plugin's identity and how its code
// unit registers into the guard namespace.
type Manifest struct {
	// Name is the plugin short name, without the package prefix.
	Name string `json:"name" yaml:"name"`

	// Version is the plugin's semantic version.
	Version string `json:"version" yaml:"version"`

	// Description is a human-readable summary.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// TypeName is the exported type identifier the unit registers,
	// e.g. "RSpec". Optional; resolution falls back to the naming
	// conventions when empty.
	TypeName string `json:"type_name,omitempty" yaml:"type_name,omitempty"`

	// Legacy marks plugins that predate the shared contract and take
	// (watchers, options) positionally.
	Legacy bool `json:"legacy,omitempty" yaml:"legacy,omitempty"`

	// Unit is the code unit path relative to the install directory.
	// Defaults to "guard/<name>.wasm".
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Validate checks the manifest's required fields.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("manifest %s: version is required", m.Name)
	}
	return nil
}

// ManifestParser parses raw manifest bytes into a Manifest.
type ManifestParser interface {
	// Parse unmarshals manifest bytes into a Manifest struct.
	Parse(data []byte) (*Manifest, error)
}
