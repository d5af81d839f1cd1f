package flagx

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-db", "/tmp/x.db", "-other", "y"},
			allowed: []string{"-db"},
			want:    []string{"-db", "/tmp/x.db"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-v"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "b"},
			allowed: []string{"-z"},
			want:    []string{},
		},
		{
			name:    "positional ignored",
			args:    []string{"hunter2", "-db", "x"},
			allowed: []string{"-db"},
			want:    []string{"-db", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			assert.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}

func TestPositionals(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "no args", args: nil, want: nil},
		{name: "only positional", args: []string{"hunter2"}, want: []string{"hunter2"}},
		{name: "flag value skipped", args: []string{"-db", "/tmp/x.db", "hunter2"}, want: []string{"hunter2"}},
		{name: "equals flag", args: []string{"-db=/tmp/x.db", "hunter2"}, want: []string{"hunter2"}},
		{name: "trailing flag", args: []string{"hunter2", "-v"}, want: []string{"hunter2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Positionals(tt.args)
			assert.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"cmd", "-c", "conf.json", "secretpw"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cmd", "secretpw"}
	assert.Equal(t, "", JsonConfigFlags())
}
