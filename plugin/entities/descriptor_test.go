package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardhq/guard/plugin/api"
	"github.com/guardhq/guard/plugin/values"
)

type stubPlugin struct {
	api.Base
	cfg      api.Config
	watchers []values.Watcher
	options  map[string]any
}

func Test_NewDescriptor_Validation(t *testing.T) {
	_, err := NewDescriptor("", func(cfg api.Config) (api.Plugin, error) { return nil, nil })
	assert.Error(t, err)

	_, err = NewDescriptor("RSpec", nil)
	assert.Error(t, err)

	_, err = NewLegacyDescriptor("RSpec", nil)
	assert.Error(t, err)
}

func Test_Descriptor_ModernConstruction(t *testing.T) {
	d, err := NewDescriptor("RSpec", func(cfg api.Config) (api.Plugin, error) {
		return &stubPlugin{Base: api.NewBase(cfg), cfg: cfg}, nil
	})
	require.NoError(t, err)
	assert.True(t, d.UsesModernConstructor())

	ws, err := Watchers("spec/**/*_spec.rb")
	require.NoError(t, err)

	cfg := api.Config{Name: "rspec", Group: "backend", Watchers: ws, Options: map[string]any{"cli": "--color"}}
	p, err := d.New(cfg)
	require.NoError(t, err)

	// The instance is exactly what the factory produced, with the
	// config passed through as a single argument.
	sp := p.(*stubPlugin)
	assert.Equal(t, cfg, sp.cfg)
	assert.Equal(t, "backend", sp.Group())
}

func Test_Descriptor_LegacyConstruction(t *testing.T) {
	d, err := NewLegacyDescriptor("OldSchool", func(watchers []values.Watcher, options map[string]any) (api.Plugin, error) {
		return &stubPlugin{watchers: watchers, options: options}, nil
	})
	require.NoError(t, err)
	assert.False(t, d.UsesModernConstructor())

	ws, err := Watchers("lib/**/*.rb")
	require.NoError(t, err)

	p, err := d.New(api.Config{Name: "oldschool", Group: "misc", Watchers: ws, Options: map[string]any{"all": true}})
	require.NoError(t, err)

	sp := p.(*stubPlugin)
	assert.Equal(t, ws, sp.watchers)
	// Legacy plugins receive the group folded into their option map.
	assert.Equal(t, map[string]any{"all": true, "group": "misc"}, sp.options)
}
