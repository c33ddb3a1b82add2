// Package validation checks plugin options against registered schemas.
package validation

// OptionsValidator validates instantiation options against a plugin's
// registered options schema.
type OptionsValidator interface {
	// Validate checks options against the JSON schema. A nil error
	// means the options are acceptable.
	Validate(schema string, options map[string]any) error
}
