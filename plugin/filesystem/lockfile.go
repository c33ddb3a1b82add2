package filesystem

import (
	"time"

	"github.com/guardhq/guard/plugin/entities"
)

// Lockfile is the YAML shape of a Guardfile.lock.
type Lockfile struct {
	Generated time.Time             `yaml:"generated"`
	Plugins   map[string]PluginLock `yaml:"plugins"`
	Version   int                   `yaml:"lockfile_version"`
}

// PluginLock is a pinned plugin entry in YAML.
type PluginLock struct {
	Requested string `yaml:"requested"`
	Resolved  string `yaml:"resolved"`
	Source    string `yaml:"source"`
	Digest    string `yaml:"sha256"`
}

// ToEntity converts the YAML document to a domain entity.
func (l *Lockfile) ToEntity() *entities.Lockfile {
	entity := &entities.Lockfile{
		Generated: l.Generated,
		Version:   l.Version,
		Plugins:   make(map[string]entities.PluginLock, len(l.Plugins)),
	}
	for name, lock := range l.Plugins {
		entity.Plugins[name] = entities.PluginLock{
			Requested: lock.Requested,
			Resolved:  lock.Resolved,
			Source:    lock.Source,
			Digest:    lock.Digest,
		}
	}
	return entity
}

// FromEntity converts a domain entity to its YAML document.
func FromEntity(entity *entities.Lockfile) *Lockfile {
	doc := &Lockfile{
		Generated: entity.Generated,
		Version:   entity.Version,
		Plugins:   make(map[string]PluginLock, len(entity.Plugins)),
	}
	for name, lock := range entity.Plugins {
		doc.Plugins[name] = PluginLock{
			Requested: lock.Requested,
			Resolved:  lock.Resolved,
			Source:    lock.Source,
			Digest:    lock.Digest,
		}
	}
	return doc
}
