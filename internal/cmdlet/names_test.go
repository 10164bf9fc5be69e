package cmdlet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type StatusCmd struct{}
type FooBarCmd struct{}

func TestNameFromType(t *testing.T) {
	tests := []struct {
		cmd  any
		want string
	}{
		{&StatusCmd{}, "status"},
		{StatusCmd{}, "status"},
		{&FooBarCmd{}, "foo-bar"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NameFromType(tt.cmd))
	}
}

func TestNameFromTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"StatusCmd", "status"},
		{"Cmd", "cmd"}, // too short to strip
		{"ACmd", "a"},
		{"FooBarCmd", "foo-bar"},
		{"HTTPServerCmd", "httpserver"},
		{"ListHTTP", "list-http"},
		{"Snake_Case", "snake-case"},
		{"V2MigrateCmd", "v2-migrate"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nameFromTypeName(tt.in), "input %q", tt.in)
	}
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "first", firstLine("first\nsecond"))
	assert.Equal(t, "first", firstLine("\n\n  first  \nsecond"))
	assert.Equal(t, "", firstLine("\n \n"))
}
