// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package xdg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirs(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		fn   func() string
		want string
	}{
		{"config env", map[string]string{"XDG_CONFIG_HOME": "/custom/config"}, ConfigDir, "/custom/config/quill"},
		{"config default", map[string]string{"XDG_CONFIG_HOME": "", "HOME": "/home/u"}, ConfigDir, "/home/u/.config/quill"},
		{"data env", map[string]string{"XDG_DATA_HOME": "/custom/data"}, DataDir, "/custom/data/quill"},
		{"data default", map[string]string{"XDG_DATA_HOME": "", "HOME": "/home/u"}, DataDir, "/home/u/.local/share/quill"},
		{"state env", map[string]string{"XDG_STATE_HOME": "/custom/state"}, StateDir, "/custom/state/quill"},
		{"state default", map[string]string{"XDG_STATE_HOME": "", "HOME": "/home/u"}, StateDir, "/home/u/.local/state/quill"},
		{"plugins", map[string]string{"XDG_DATA_HOME": "/d"}, PluginsDir, "/d/quill/plugins"},
		{"config file", map[string]string{"XDG_CONFIG_HOME": "/c"}, ConfigFile, "/c/quill/quill.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := tt.fn(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")

	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Errorf("perm = %o, want 700", perm)
	}
	if err := EnsureDir(path); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}

func TestEnsureDir_Failure(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(filepath.Join(file, "sub")); err == nil {
		t.Error("EnsureDir() under a file should fail")
	}
}
