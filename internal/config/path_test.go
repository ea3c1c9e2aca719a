package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("MF_DIR", "/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde alone", in: "~", want: "/home/tester"},
		{name: "tilde prefix", in: "~/mf/db.sqlite", want: "/home/tester/mf/db.sqlite"},
		{name: "env var", in: "$MF_DIR/db.sqlite", want: "/data/db.sqlite"},
		{name: "plain", in: "/var/lib/mf.db", want: "/var/lib/mf.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
