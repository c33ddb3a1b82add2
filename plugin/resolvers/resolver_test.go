package resolvers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardhq/guard/plugin/api"
	"github.com/guardhq/guard/plugin/entities"
	"github.com/guardhq/guard/plugin/resolvers"
	"github.com/guardhq/guard/plugin/values"
	"github.com/guardhq/guard/registry"
)

func register(t *testing.T, reg *registry.Registry, typeName string) {
	t.Helper()
	d, err := entities.NewDescriptor(typeName, func(cfg api.Config) (api.Plugin, error) {
		return nil, nil
	})
	require.NoError(t, err)
	require.NoError(t, reg.Register(d))
}

// stubImporter registers descriptors when asked to import a key.
type stubImporter struct {
	registers map[string]string // key -> type name to register
	err       error
	calls     []string
	reg       *registry.Registry
}

func (s *stubImporter) Import(ctx context.Context, key string) error {
	s.calls = append(s.calls, key)
	if s.err != nil {
		return s.err
	}
	if typeName, ok := s.registers[key]; ok {
		d, err := entities.NewDescriptor(typeName, func(cfg api.Config) (api.Plugin, error) {
			return nil, nil
		})
		if err != nil {
			return err
		}
		return s.reg.Register(d)
	}
	return nil
}

func Test_LookupByConvention_Precedence(t *testing.T) {
	reg := registry.New()
	register(t, reg, "Classname")
	register(t, reg, "DashedClassName")
	register(t, reg, "UnderscoreClassName")
	register(t, reg, "VSpec")

	tests := []struct {
		input string
		want  string
	}{
		{"classname", "Classname"},
		{"dashed-class-name", "DashedClassName"},
		{"underscore_class_name", "UnderscoreClassName"},
		{"vspec", "VSpec"},
		{"VSpec", "VSpec"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			desc, ok := resolvers.LookupByConvention(reg, tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, desc.TypeName())
		})
	}

	_, ok := resolvers.LookupByConvention(reg, "notAGuardClass")
	assert.False(t, ok)
}

func Test_LookupByConvention_CaseCollision(t *testing.T) {
	// Type names differing only in case must resolve the same way on
	// every call: an exact hit wins, and the case-insensitive scan
	// runs in sorted order.
	reg := registry.New()
	register(t, reg, "VSpec")
	register(t, reg, "Vspec")

	for i := 0; i < 10; i++ {
		desc, ok := resolvers.LookupByConvention(reg, "Vspec")
		require.True(t, ok)
		assert.Equal(t, "Vspec", desc.TypeName(), "exact match must win")

		desc, ok = resolvers.LookupByConvention(reg, "vspec")
		require.True(t, ok)
		assert.Equal(t, "VSpec", desc.TypeName(), "scan order must be stable")
	}
}

func Test_RegisteredTypeResolver_HitsWithoutImport(t *testing.T) {
	reg := registry.New()
	register(t, reg, "RSpec")

	imp := &stubImporter{reg: reg}
	head := resolvers.NewRegisteredTypeResolver(reg)
	head.SetNext(resolvers.NewImportingTypeResolver(reg, imp, nil))

	desc, err := head.Resolve(context.Background(), values.NewPluginReference("rspec"))
	require.NoError(t, err)
	assert.Equal(t, "RSpec", desc.TypeName())
	assert.Empty(t, imp.calls, "registered types must not trigger an import")
}

func Test_ImportingTypeResolver_ImportsThenResolves(t *testing.T) {
	reg := registry.New()
	imp := &stubImporter{reg: reg, registers: map[string]string{"guard/rspec": "RSpec"}}

	head := resolvers.NewRegisteredTypeResolver(reg)
	head.SetNext(resolvers.NewImportingTypeResolver(reg, imp, nil))

	desc, err := head.Resolve(context.Background(), values.NewPluginReference("guard-rspec"))
	require.NoError(t, err)
	assert.Equal(t, "RSpec", desc.TypeName())
	assert.Equal(t, []string{"guard/rspec"}, imp.calls)
}

func Test_ImportingTypeResolver_ImportFailure(t *testing.T) {
	reg := registry.New()
	imp := &stubImporter{reg: reg, err: errors.New("no such unit")}

	head := resolvers.NewRegisteredTypeResolver(reg)
	head.SetNext(resolvers.NewImportingTypeResolver(reg, imp, nil))

	_, err := head.Resolve(context.Background(), values.NewPluginReference("missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrUnitLoadFailed))
}

func Test_Chain_NothingRegistered(t *testing.T) {
	reg := registry.New()
	imp := &stubImporter{reg: reg} // import succeeds but registers nothing

	head := resolvers.NewRegisteredTypeResolver(reg)
	head.SetNext(resolvers.NewImportingTypeResolver(reg, imp, nil))

	_, err := head.Resolve(context.Background(), values.NewPluginReference("ghost"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrPluginNotFound))
}
