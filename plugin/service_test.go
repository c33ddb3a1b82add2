package plugin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardhq/guard/plugin"
	"github.com/guardhq/guard/plugin/api"
	"github.com/guardhq/guard/plugin/entities"
	"github.com/guardhq/guard/plugin/values"
	"github.com/guardhq/guard/registry"
)

type recordingPlugin struct {
	api.Base
	cfg api.Config
}

func registerModern(t *testing.T, reg *registry.Registry, typeName string) {
	t.Helper()
	d, err := entities.NewDescriptor(typeName, func(cfg api.Config) (api.Plugin, error) {
		return &recordingPlugin{Base: api.NewBase(cfg), cfg: cfg}, nil
	})
	require.NoError(t, err)
	require.NoError(t, reg.Register(d))
}

func Test_Service_ResolveType(t *testing.T) {
	reg := registry.New()
	registerModern(t, reg, "RSpec")

	reporter := &plugin.MockReporter{}
	svc := plugin.NewService(reg,
		plugin.WithReporter(reporter),
		plugin.WithLogger(plugin.NewTestLogger()),
	)

	t.Run("resolves registered plugin", func(t *testing.T) {
		desc := svc.ResolveType(context.Background(), values.NewPluginReference("rspec"), plugin.ResolveOptions{})
		require.NotNil(t, desc)
		assert.Equal(t, "RSpec", desc.TypeName())
	})

	t.Run("prefixed and bare names are equivalent", func(t *testing.T) {
		bare := svc.ResolveType(context.Background(), values.NewPluginReference("rspec"), plugin.ResolveOptions{})
		prefixed := svc.ResolveType(context.Background(), values.NewPluginReference("guard-rspec"), plugin.ResolveOptions{})
		assert.Same(t, bare, prefixed)
	})
}

func Test_Service_ResolveType_Failure(t *testing.T) {
	t.Run("default mode reports exactly three lines", func(t *testing.T) {
		reporter := &plugin.MockReporter{}
		svc := plugin.NewService(registry.New(),
			plugin.WithReporter(reporter),
			plugin.WithLogger(plugin.NewTestLogger()),
		)

		desc := svc.ResolveType(context.Background(), values.NewPluginReference("notAGuardClass"), plugin.ResolveOptions{})
		assert.Nil(t, desc)
		require.Len(t, reporter.Errors, 3)
		assert.Contains(t, reporter.Errors[0], "could not load plugin")
		assert.Empty(t, reporter.Infos)
	})

	t.Run("graceful mode is silent", func(t *testing.T) {
		reporter := &plugin.MockReporter{}
		svc := plugin.NewService(registry.New(),
			plugin.WithReporter(reporter),
			plugin.WithLogger(plugin.NewTestLogger()),
		)

		desc := svc.ResolveType(context.Background(), values.NewPluginReference("notAGuardClass"), plugin.ResolveOptions{FailGracefully: true})
		assert.Nil(t, desc)
		assert.Empty(t, reporter.Errors)
		assert.Empty(t, reporter.Infos)
	})
}

func Test_Service_Instantiate(t *testing.T) {
	reg := registry.New()
	registerModern(t, reg, "RSpec")

	svc := plugin.NewService(reg, plugin.WithLogger(plugin.NewTestLogger()), plugin.WithReporter(&plugin.MockReporter{}))

	ws, err := entities.Watchers("spec/**/*_spec.rb")
	require.NoError(t, err)
	cfg := api.Config{Group: "backend", Watchers: ws, Options: map[string]any{"cli": "--color"}}

	p, err := svc.Instantiate(context.Background(), values.NewPluginReference("rspec"), cfg, plugin.ResolveOptions{})
	require.NoError(t, err)
	require.NotNil(t, p)

	// The returned instance is exactly what the factory produced and
	// saw the full config as a single argument.
	rp := p.(*recordingPlugin)
	assert.Equal(t, "rspec", rp.cfg.Name, "name defaulted from the reference")
	assert.Equal(t, "backend", rp.cfg.Group)
	assert.Equal(t, ws, rp.cfg.Watchers)
}

func Test_Service_Instantiate_ResolutionFailed(t *testing.T) {
	svc := plugin.NewService(registry.New(),
		plugin.WithLogger(plugin.NewTestLogger()),
		plugin.WithReporter(&plugin.MockReporter{}),
	)

	p, err := svc.Instantiate(context.Background(), values.NewPluginReference("ghost"), api.Config{}, plugin.ResolveOptions{FailGracefully: true})
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func Test_Service_Instantiate_ValidatesOptions(t *testing.T) {
	type rspecOptions struct {
		CLI string `json:"cli"`
	}

	reg := registry.New()
	d, err := entities.NewDescriptor("RSpec", func(cfg api.Config) (api.Plugin, error) {
		return &recordingPlugin{Base: api.NewBase(cfg)}, nil
	})
	require.NoError(t, err)
	require.NoError(t, reg.Register(d.WithOptionsModel(rspecOptions{})))

	svc := plugin.NewService(reg, plugin.WithLogger(plugin.NewTestLogger()), plugin.WithReporter(&plugin.MockReporter{}))

	_, err = svc.Instantiate(context.Background(), values.NewPluginReference("rspec"),
		api.Config{Options: map[string]any{"cli": 42}}, plugin.ResolveOptions{})
	assert.Error(t, err, "schema violation must surface")

	p, err := svc.Instantiate(context.Background(), values.NewPluginReference("rspec"),
		api.Config{Options: map[string]any{"cli": "--color"}}, plugin.ResolveOptions{})
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func Test_Service_WithCustomResolver(t *testing.T) {
	reg := registry.New()
	d, err := entities.NewDescriptor("Custom", func(cfg api.Config) (api.Plugin, error) {
		return &recordingPlugin{Base: api.NewBase(cfg)}, nil
	})
	require.NoError(t, err)

	resolver := &plugin.MockResolver{Found: d}
	svc := plugin.NewService(reg,
		plugin.WithResolver(resolver),
		plugin.WithLogger(plugin.NewTestLogger()),
		plugin.WithReporter(&plugin.MockReporter{}),
	)

	desc := svc.ResolveType(context.Background(), values.NewPluginReference("anything"), plugin.ResolveOptions{})
	assert.Same(t, d, desc)
	assert.True(t, resolver.Called)
}
