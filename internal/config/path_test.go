package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	t.Setenv("VERTRAG_TEST_DIR", "/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "tilde prefix", in: "~/contracts.db", want: filepath.Join(home, "contracts.db")},
		{name: "bare tilde", in: "~", want: home},
		{name: "env var", in: "$VERTRAG_TEST_DIR/contracts.db", want: "/data/contracts.db"},
		{name: "plain path", in: "/tmp/contracts.db", want: "/tmp/contracts.db"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDatabasePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if got := DatabasePath("/tmp/contracts.db"); got != "/tmp/contracts.db" {
		t.Errorf("DatabasePath(configured) = %q", got)
	}
	if got := DatabasePath("~/custom.db"); got != filepath.Join(home, "custom.db") {
		t.Errorf("DatabasePath(tilde) = %q", got)
	}

	want := filepath.Join(home, ".local/share/vertrag/contracts.db")
	for _, configured := range []string{"", "   "} {
		if got := DatabasePath(configured); got != want {
			t.Errorf("DatabasePath(%q) = %q, want default %q", configured, got, want)
		}
	}
}
