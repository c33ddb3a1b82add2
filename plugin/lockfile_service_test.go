package plugin_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardhq/guard/pkgsystem"
	"github.com/guardhq/guard/plugin"
	"github.com/guardhq/guard/plugin/filesystem"
)

func installPlugin(t *testing.T, root, dir, manifest string) {
	t.Helper()
	path := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(path, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(path, "guardplugin.yaml"), []byte(manifest), 0o600))
}

func Test_LockfileService_PinAndDrift(t *testing.T) {
	root := t.TempDir()
	installPlugin(t, root, "guard-rspec@4.7.0", "name: rspec\nversion: 4.7.0\n")

	sys := pkgsystem.New([]string{root})
	repo := filesystem.NewFileLockfileRepository()
	svc := plugin.NewLockfileService(repo, sys)

	lockPath := filepath.Join(t.TempDir(), "Guardfile.lock")

	lock, err := svc.Pin(context.Background(), []string{"rspec"}, lockPath)
	require.NoError(t, err)
	require.NotNil(t, lock.GetPlugin("rspec"))
	assert.Equal(t, "4.7.0", lock.GetPlugin("rspec").Resolved)
	assert.Equal(t, "guard-rspec", lock.GetPlugin("rspec").Source)

	// Round-trip through the repository.
	loaded, err := repo.Load(context.Background(), lockPath)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, lock.GetPlugin("rspec").Digest, loaded.GetPlugin("rspec").Digest)

	// Nothing changed, no drift.
	drifted, err := svc.Drift(context.Background(), lockPath)
	require.NoError(t, err)
	assert.Empty(t, drifted)

	// Change the installed manifest; drift must be detected.
	installPlugin(t, root, "guard-rspec@4.7.0", "name: rspec\nversion: 4.7.0\ndescription: changed\n")
	drifted, err = svc.Drift(context.Background(), lockPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"rspec"}, drifted)
}

func Test_LockfileService_Pin_PackageMissing(t *testing.T) {
	sys := pkgsystem.New([]string{t.TempDir()})
	svc := plugin.NewLockfileService(filesystem.NewFileLockfileRepository(), sys)

	_, err := svc.Pin(context.Background(), []string{"ghost"}, filepath.Join(t.TempDir(), "Guardfile.lock"))
	assert.Error(t, err)
}

func Test_LockfileService_Drift_NoLockfile(t *testing.T) {
	sys := pkgsystem.New([]string{t.TempDir()})
	svc := plugin.NewLockfileService(filesystem.NewFileLockfileRepository(), sys)

	drifted, err := svc.Drift(context.Background(), filepath.Join(t.TempDir(), "Guardfile.lock"))
	require.NoError(t, err)
	assert.Nil(t, drifted)
}
