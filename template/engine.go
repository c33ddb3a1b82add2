package template

import (
	"bytes"
	"fmt"
	texttemplate "text/template"
)

// TextEngine implements Engine with the standard text/template syntax.
// Plugin templates are trusted content from installed packages, so no
// sandboxing applies beyond missing-key strictness.
type TextEngine struct{}

// NewTextEngine creates a text/template-backed engine.
func NewTextEngine() *TextEngine {
	return &TextEngine{}
}

// Render executes the template against the data map.
func (e *TextEngine) Render(raw []byte, data map[string]interface{}) ([]byte, error) {
	tmpl, err := texttemplate.New("guardfile-snippet").Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return buf.Bytes(), nil
}
