package system

import (
	"testing"
)

func TestCurrentUsername(t *testing.T) {
	name, err := CurrentUsername()
	if err != nil {
		t.Skipf("current user not available: %v", err)
	}
	if name == "" {
		t.Error("CurrentUsername() returned empty name")
	}
}

func TestStartDirectoryPrefersHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir, err := StartDirectory()
	if err != nil {
		t.Fatalf("StartDirectory() error = %v", err)
	}
	if dir != home {
		t.Errorf("StartDirectory() = %v, want %v", dir, home)
	}
}
