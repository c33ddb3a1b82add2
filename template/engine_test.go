package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TextEngine_Render(t *testing.T) {
	out, err := NewTextEngine().Render([]byte(`guard {{.name}} do\nend`), map[string]interface{}{"name": "rspec"})
	require.NoError(t, err)
	assert.Equal(t, `guard rspec do\nend`, string(out))
}

func Test_TextEngine_PlainTextPassesThrough(t *testing.T) {
	raw := []byte("Template content")
	out, err := NewTextEngine().Render(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func Test_TextEngine_Errors(t *testing.T) {
	_, err := NewTextEngine().Render([]byte("{{.name"), nil)
	assert.Error(t, err)

	_, err = NewTextEngine().Render([]byte("{{.missing}}"), map[string]interface{}{})
	assert.Error(t, err)
}
