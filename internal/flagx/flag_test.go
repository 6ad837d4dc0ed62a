package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value kept, foreign flags dropped",
			args:         []string{"-d", "postgres://db", "-v", "-b", "photos"},
			allowedFlags: []string{"-d", "-b"},
			want:         []string{"-d", "postgres://db", "-b", "photos"},
		},
		{
			name:         "equals form",
			args:         []string{"-config=server.yaml", "-a", ":50051"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=server.yaml"},
		},
		{
			name:         "equals form with dash in value",
			args:         []string{"-config=--odd.json"},
			allowedFlags: []string{"-config"},
			want:         []string{"-config=--odd.json"},
		},
		{
			name:         "flag at end without value",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-x"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "repeated flag keeps order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:         "nothing allowed matches",
			args:         []string{"rsvp", "--event", "e1"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short", func(t *testing.T) {
		os.Args = []string{"bin", "-c", "/etc/eventkeeper.json"}
		assert.Equal(t, "/etc/eventkeeper.json", ConfigFileFlag())
	})

	t.Run("long", func(t *testing.T) {
		os.Args = []string{"bin", "-config", "/etc/eventkeeper.yaml"}
		assert.Equal(t, "/etc/eventkeeper.yaml", ConfigFileFlag())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"bin", "-d", "dsn"}
		assert.Empty(t, ConfigFileFlag())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"bin", "-c", "a.json", "-config", "b.json"}
		assert.Equal(t, "b.json", ConfigFileFlag())
	})
}
