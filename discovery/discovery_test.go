package discovery_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardhq/guard/discovery"
	"github.com/guardhq/guard/pkgsystem"
	"github.com/guardhq/guard/plugin/ports"
)

// fixedSystem is a PackageSystem serving a fixed spec list.
type fixedSystem struct {
	specs []ports.PackageSpec
	err   error
}

func (f *fixedSystem) List(ctx context.Context) ([]ports.PackageSpec, error) {
	return f.specs, f.err
}

func (f *fixedSystem) Find(ctx context.Context, name string) (ports.PackageSpec, error) {
	for _, s := range f.specs {
		if s.Name == name {
			return s, nil
		}
	}
	return ports.PackageSpec{}, errors.New("not found")
}

func installDir(t *testing.T, name string, embedded bool) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	if embedded {
		unit := filepath.Join(dir, "guard", name+".wasm")
		require.NoError(t, os.MkdirAll(filepath.Dir(unit), 0o750))
		require.NoError(t, os.WriteFile(unit, []byte("\x00asm"), 0o600))
	}
	return dir
}

func Test_PluginNames(t *testing.T) {
	sys := &fixedSystem{specs: []ports.PackageSpec{
		{Name: "guard-myplugin", Version: "1.0.0", InstallPath: installDir(t, "guard-myplugin", false)},
		{Name: "gem1", Version: "1.0.0", InstallPath: installDir(t, "gem1", false)},
		{Name: "gem2", Version: "1.0.0", InstallPath: installDir(t, "gem2", true)},
	}}

	names, err := discovery.PluginNames(context.Background(), sys)
	require.NoError(t, err)

	assert.Contains(t, names, "myplugin", "prefixed package discovered stripped")
	assert.Contains(t, names, "gem2", "embedded unit discovered under raw package name")
	assert.NotContains(t, names, "gem1")
	assert.NotContains(t, names, "guard-myplugin")
}

func Test_PluginNames_Deduplicates(t *testing.T) {
	sys := &fixedSystem{specs: []ports.PackageSpec{
		{Name: "guard-rspec", Version: "4.6.0"},
		{Name: "guard-rspec", Version: "4.7.0"},
	}}

	names, err := discovery.PluginNames(context.Background(), sys)
	require.NoError(t, err)
	assert.Equal(t, []string{"rspec"}, names)
}

func Test_PluginNames_ListError(t *testing.T) {
	sys := &fixedSystem{err: errors.New("boom")}
	_, err := discovery.PluginNames(context.Background(), sys)
	assert.Error(t, err)
}

func Test_PluginNames_AgainstFSPackageSystem(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "guard-coffeescript@2.0.0"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "gem2@1.0.0", "guard"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "gem2@1.0.0", "guard", "gem2.wasm"), []byte("\x00asm"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "gem1@1.0.0"), 0o750))

	names, err := discovery.PluginNames(context.Background(), pkgsystem.New([]string{root}))
	require.NoError(t, err)
	assert.Equal(t, []string{"coffeescript", "gem2"}, names)
}
