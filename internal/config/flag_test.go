package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name:     "db and log overridden",
			args:     []string{"cmd", "-db", "/tmp/alt.db", "-log", "/tmp/alt.log"},
			expected: &Config{DBPath: "/tmp/alt.db", LogPath: "/tmp/alt.log"},
		},
		{
			name:     "positional password ignored",
			args:     []string{"cmd", "hunter2", "-db", "/tmp/alt.db"},
			expected: &Config{DBPath: "/tmp/alt.db"},
		},
		{
			name:     "no flags leaves config untouched",
			args:     []string{"cmd", "hunter2"},
			expected: &Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
