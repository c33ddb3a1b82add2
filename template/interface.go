// Package template renders plugin-provided Guardfile snippets.
package template

// Engine renders templates with provided data.
type Engine interface {
	// Render processes raw bytes as a template using the provided data.
	Render(raw []byte, data map[string]interface{}) ([]byte, error)
}
