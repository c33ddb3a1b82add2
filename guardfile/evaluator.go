package guardfile

import (
	"os"
	"regexp"
)

// TextEvaluator is a minimal Guardfile evaluator sufficient for
// scaffolding: it scans the document for a guard declaration marker.
// Full evaluation belongs to the surrounding system.
type TextEvaluator struct {
	path string
}

// NewTextEvaluator creates an evaluator over the Guardfile at path.
func NewTextEvaluator(path string) *TextEvaluator {
	return &TextEvaluator{path: path}
}

// Includes reports whether the document declares the named plugin.
// An unreadable document counts as not declaring anything.
func (e *TextEvaluator) Includes(name string) bool {
	content, err := os.ReadFile(e.path)
	if err != nil {
		return false
	}

	// The name must terminate: a declaration of "rspec-formatter" is
	// not a declaration of "rspec". Quoted forms require the closing
	// quote; the symbol form requires a non-name character or end of
	// line after the name.
	q := regexp.QuoteMeta(name)
	marker := regexp.MustCompile(`(?m)^\s*guard\s+(?:'` + q + `'|"` + q + `"|:` + q + `(?:[^-\w]|$))`)
	return marker.Match(content)
}
