package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalWithContext(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, UnmarshalWithContext([]byte(`{"name":"x"}`), &v, "ctx"))
	assert.Equal(t, "x", v.Name)

	err := UnmarshalWithContext([]byte(`{bad`), &v, "decode thing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode thing")
}

func TestUnmarshalObject(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"object", `  {"items":[]}`, ""},
		{"empty", "   ", "empty body"},
		{"array", `[]`, "expected JSON object"},
		{"null", `null`, "expected JSON object"},
		{"broken", `{"items":`, "ctx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v map[string]interface{}
			err := UnmarshalObject([]byte(tt.data), &v, "ctx")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "abc", Snippet([]byte("abc"), 5))
	assert.Equal(t, "ab...", Snippet([]byte("abcdef"), 2))
}
