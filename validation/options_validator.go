package validation

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaOptionsValidator implements OptionsValidator with compiled
// JSON schemas.
type SchemaOptionsValidator struct{}

// NewSchemaOptionsValidator creates a schema-backed validator.
func NewSchemaOptionsValidator() *SchemaOptionsValidator {
	return &SchemaOptionsValidator{}
}

// Validate compiles the schema and checks the options document
// against it.
func (v *SchemaOptionsValidator) Validate(schema string, options map[string]any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("options.json", strings.NewReader(schema)); err != nil {
		return fmt.Errorf("invalid options schema: %w", err)
	}

	compiled, err := compiler.Compile("options.json")
	if err != nil {
		return fmt.Errorf("invalid options schema: %w", err)
	}

	// jsonschema validates generic documents; a nil map is an empty
	// options object.
	doc := map[string]any(options)
	if doc == nil {
		doc = map[string]any{}
	}

	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("plugin options rejected by schema: %w", err)
	}
	return nil
}
