package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_NewPluginReference tests canonical prefix stripping.
func Test_NewPluginReference(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
	}{
		{"bare short name", "rspec", "rspec"},
		{"prefixed package name", "guard-rspec", "rspec"},
		{"prefix only at start", "my-guard-thing", "my-guard-thing"},
		{"dashed", "dashed-class-name", "dashed-class-name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := NewPluginReference(tt.input)
			assert.Equal(t, tt.wantName, ref.Name())
			assert.Equal(t, tt.input, ref.Raw())
		})
	}
}

// Prefixed and bare identifiers must yield equal references.
func Test_PluginReference_Equals(t *testing.T) {
	assert.True(t, NewPluginReference("rspec").Equals(NewPluginReference("guard-rspec")))
	assert.False(t, NewPluginReference("rspec").Equals(NewPluginReference("minitest")))
}

func Test_PluginReference_ConstKey(t *testing.T) {
	assert.Equal(t, "guard/dashed-class-name", NewPluginReference("dashed-class-name").ConstKey())
	assert.Equal(t, "guard/rspec", NewPluginReference("guard-rspec").ConstKey())
}

func Test_PluginReference_PackageName(t *testing.T) {
	assert.Equal(t, "guard-rspec", NewPluginReference("rspec").PackageName())
	assert.Equal(t, "guard-rspec", NewPluginReference("guard-rspec").PackageName())
}
