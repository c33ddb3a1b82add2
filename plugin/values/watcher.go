package values

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Watcher pairs a glob pattern with the files a plugin reacts to.
// Patterns use doublestar syntax ("spec/**/*_spec.rb"). Immutable
// after creation.
type Watcher struct {
	pattern string
}

// NewWatcher creates a watcher, validating the glob pattern.
func NewWatcher(pattern string) (Watcher, error) {
	if pattern == "" {
		return Watcher{}, fmt.Errorf("watcher pattern cannot be empty")
	}
	if !doublestar.ValidatePattern(pattern) {
		return Watcher{}, fmt.Errorf("invalid watcher pattern %q", pattern)
	}
	return Watcher{pattern: pattern}, nil
}

// MustNewWatcher creates a watcher or panics.
func MustNewWatcher(pattern string) Watcher {
	w, err := NewWatcher(pattern)
	if err != nil {
		panic(err)
	}
	return w
}

// Pattern returns the glob pattern.
func (w Watcher) Pattern() string {
	return w.pattern
}

// Match reports whether the given path matches the watcher pattern.
func (w Watcher) Match(path string) bool {
	ok, err := doublestar.Match(w.pattern, path)
	return err == nil && ok
}

// String returns the glob pattern.
func (w Watcher) String() string {
	return w.pattern
}
