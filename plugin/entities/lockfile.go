package entities

import (
	"fmt"
	"time"
)

// Lockfile pins the plugin versions a project resolved against, so a
// later session can detect drift between the Guardfile's plugins and
// what is installed.
//
// Invariants:
// - Each plugin entry must have a manifest digest
// - Generated timestamp must be set once entries exist
type Lockfile struct {
	Generated time.Time
	Plugins   map[string]PluginLock
	Version   int
}

// PluginLock is a value object pinning a single plugin.
// Immutable after creation.
type PluginLock struct {
	Requested string // identifier as the user wrote it
	Resolved  string // installed version that was selected
	Source    string // package name that provided the plugin
	Digest    string // manifest content hash (sha256:...)
}

// NewLockfile creates a new lockfile with the current version.
func NewLockfile() *Lockfile {
	return &Lockfile{
		Version:   1,
		Generated: time.Now().UTC(),
		Plugins:   make(map[string]PluginLock),
	}
}

// AddPlugin adds a plugin lock entry.
// Returns error if digest is empty (invariant enforcement).
func (l *Lockfile) AddPlugin(name string, lock PluginLock) error {
	if lock.Digest == "" {
		return fmt.Errorf("plugin %q: digest is required", name)
	}
	if l.Plugins == nil {
		l.Plugins = make(map[string]PluginLock)
	}
	l.Plugins[name] = lock
	return nil
}

// GetPlugin retrieves a plugin lock entry by name.
// Returns nil if not found.
func (l *Lockfile) GetPlugin(name string) *PluginLock {
	if lock, ok := l.Plugins[name]; ok {
		return &lock
	}
	return nil
}

// PluginCount returns the number of pinned plugins.
func (l *Lockfile) PluginCount() int {
	return len(l.Plugins)
}

// Validate checks lockfile invariants.
func (l *Lockfile) Validate() error {
	if l.PluginCount() > 0 && l.Generated.IsZero() {
		return fmt.Errorf("lockfile with entries must have a generated timestamp")
	}
	for name, lock := range l.Plugins {
		if lock.Digest == "" {
			return fmt.Errorf("plugin %q: digest is required", name)
		}
	}
	return nil
}
