// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhost/quill/internal/plugin"
	"github.com/quillhost/quill/pkg/errutil"
)

func TestParseManifest(t *testing.T) {
	yaml := `
name: word-tools
description: Word counting
modules:
  - count
  - case.upper
exclude:
  - "*_test.lua"
`
	m, err := plugin.ParseManifest([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "word-tools", m.Name)
	assert.Equal(t, "Word counting", m.Description)
	assert.Equal(t, []string{"count", "case.upper"}, m.Modules)
	assert.Equal(t, []string{"*_test.lua"}, m.Exclude)
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"malformed yaml", "name: [oops"},
		{"missing name", "description: x\n"},
		{"bad name", "name: Has Spaces\n"},
		{"bad module", "name: ok\nmodules:\n  - \"../escape\"\n"},
		{"empty module segment", "name: ok\nmodules:\n  - \"a..b\"\n"},
		{"bad glob", "name: ok\nexclude:\n  - \"[unclosed\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := plugin.ParseManifest([]byte(tt.yaml))
			errutil.AssertErrorCode(t, err, plugin.CodeInvalidManifest)
		})
	}
}

func TestManifest_ModuleNames_Listed(t *testing.T) {
	m := &plugin.Manifest{Name: "pkg", Modules: []string{"main", "sub.extra"}}

	names, err := m.ModuleNames("pkg", t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, []string{"pkg.main", "pkg.sub.extra"}, names)
}

func TestManifest_ModuleNames_DirectoryListing(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"b.lua", "a.lua", "a_test.lua", "_private.lua", "x.y.lua", "notes.txt"} {
		writeModule(t, dir, f, "")
	}
	m := &plugin.Manifest{Name: "pkg", Exclude: []string{"*_test.lua"}}

	names, err := m.ModuleNames("pkg", dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"pkg.a", "pkg.b"}, names)
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	good := writeModule(t, dir, "good/"+plugin.ManifestFile, "name: good\n")
	bad := writeModule(t, dir, "bad/"+plugin.ManifestFile, "name: good\nextra: field\n")

	m, err := plugin.LoadManifest(good)
	require.NoError(t, err)
	assert.Equal(t, "good", m.Name)

	_, err = plugin.LoadManifest(bad)
	errutil.AssertErrorCode(t, err, plugin.CodeInvalidManifest)
	errutil.AssertErrorContext(t, err, "path", bad)

	_, err = plugin.LoadManifest(filepath.Join(dir, "missing", plugin.ManifestFile))
	errutil.AssertErrorCode(t, err, plugin.CodeInvalidManifest)
}
