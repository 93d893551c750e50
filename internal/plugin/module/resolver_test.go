// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package module_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhost/quill/internal/plugin/module"
	"github.com/quillhost/quill/pkg/errutil"
)

func touch(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolver_Resolve_SourceNamespaceAndMissing(t *testing.T) {
	root := t.TempDir()
	bar := touch(t, filepath.Join(root, "foo", "bar.lua"), "")
	r := module.NewResolver(root)

	loc, err := r.Resolve("foo.bar")
	require.NoError(t, err)
	assert.Equal(t, module.Location{Kind: module.LocationSource, Path: bar}, loc)

	_, err = r.Resolve("foo.baz")
	errutil.AssertErrorCode(t, err, module.CodeModuleNotFound)

	loc, err = r.Resolve("foo")
	require.NoError(t, err)
	assert.Equal(t, module.Location{Kind: module.LocationNamespace, Path: filepath.Join(root, "foo")}, loc)
}

func TestResolver_Resolve_FirstRootWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	want := touch(t, filepath.Join(first, "dup.lua"), "")
	touch(t, filepath.Join(second, "dup.lua"), "")
	only := touch(t, filepath.Join(second, "only.lua"), "")
	r := module.NewResolver(first, second)

	loc, err := r.Resolve("dup")
	require.NoError(t, err)
	assert.Equal(t, want, loc.Path)

	loc, err = r.Resolve("only")
	require.NoError(t, err)
	assert.Equal(t, only, loc.Path)
}

func TestResolver_Resolve_DirectoryBeatsSourceInSameRoot(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "pkg.lua"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))

	loc, err := module.NewResolver(root).Resolve("pkg")
	require.NoError(t, err)
	assert.Equal(t, module.LocationNamespace, loc.Kind)
}

func TestResolver_Resolve_EarlierRootNamespaceBeatsLaterSource(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(first, "pkg"), 0o755))
	touch(t, filepath.Join(second, "pkg.lua"), "")

	loc, err := module.NewResolver(first, second).Resolve("pkg")
	require.NoError(t, err)
	assert.Equal(t, module.Location{Kind: module.LocationNamespace, Path: filepath.Join(first, "pkg")}, loc)
}

func TestResolver_Resolve_IgnoresNonLuaFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "notes.txt"), "")
	touch(t, filepath.Join(root, "notes"), "")

	_, err := module.NewResolver(root).Resolve("notes")
	errutil.AssertErrorCode(t, err, module.CodeModuleNotFound)
}

func TestResolver_Resolve_RejectsMalformedNames(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "ok.lua"), "")
	touch(t, filepath.Join(filepath.Dir(root), "escape.lua"), "")
	r := module.NewResolver(root)

	for _, name := range []string{"", ".", "ok.", ".ok", "a..b", "..", "../escape", "a/b", `a\b`} {
		t.Run(name, func(t *testing.T) {
			_, err := r.Resolve(name)
			errutil.AssertErrorCode(t, err, module.CodeModuleNotFound)
		})
	}
}

func TestResolver_Resolve_NoRoots(t *testing.T) {
	_, err := module.NewResolver().Resolve("anything")
	errutil.AssertErrorCode(t, err, module.CodeModuleNotFound)
}

func TestResolver_Roots_ReturnsCopy(t *testing.T) {
	r := module.NewResolver("/a", "/b")
	roots := r.Roots()
	roots[0] = "/changed"

	assert.Equal(t, []string{"/a", "/b"}, r.Roots())
}

func TestLocationKind_String(t *testing.T) {
	assert.Equal(t, "source", module.LocationSource.String())
	assert.Equal(t, "namespace", module.LocationNamespace.String())
	assert.Equal(t, "unknown", module.LocationKind(0).String())
}
