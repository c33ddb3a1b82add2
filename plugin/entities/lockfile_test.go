package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Lockfile_AddPlugin(t *testing.T) {
	l := NewLockfile()

	err := l.AddPlugin("rspec", PluginLock{Requested: "rspec", Resolved: "4.7.0", Source: "guard-rspec", Digest: "sha256:abc"})
	require.NoError(t, err)
	assert.Equal(t, 1, l.PluginCount())

	got := l.GetPlugin("rspec")
	require.NotNil(t, got)
	assert.Equal(t, "4.7.0", got.Resolved)

	assert.Nil(t, l.GetPlugin("minitest"))
}

func Test_Lockfile_AddPlugin_RequiresDigest(t *testing.T) {
	l := NewLockfile()
	err := l.AddPlugin("rspec", PluginLock{Requested: "rspec", Resolved: "4.7.0"})
	assert.Error(t, err)
}

func Test_Lockfile_Validate(t *testing.T) {
	l := NewLockfile()
	require.NoError(t, l.Validate())

	require.NoError(t, l.AddPlugin("rspec", PluginLock{Digest: "sha256:abc"}))
	require.NoError(t, l.Validate())

	// Bypass AddPlugin to violate the invariant directly.
	l.Plugins["bad"] = PluginLock{}
	assert.Error(t, l.Validate())
}
