package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCheck(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
		arg  string
	}{
		{"name and arg", "contains:func", "contains", "func"},
		{"numeric arg", "min_length:100", "min_length", "100"},
		{"name only", "not_empty", "not_empty", ""},
		{"csv arg", "contains_any:foo,bar", "contains_any", "foo,bar"},
		{"arg with colons", "matches:^a:b$", "matches", "^a:b$"},
		{"padded name", " min : 3", "min", " 3"},
		{"empty", "", "", ""},
		{"trailing colon", "not_empty:", "not_empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, arg := ParseCheck(tt.expr)
			assert.Equal(t, tt.want, name)
			assert.Equal(t, tt.arg, arg)
		})
	}
}
