// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quillhost/quill/internal/event"
	"github.com/quillhost/quill/internal/plugin"
	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// mockCommandTable records Register calls.
type mockCommandTable struct {
	mock.Mock
}

func (m *mockCommandTable) Register(name string, factory pluginpkg.CommandFactory) error {
	args := m.Called(name, factory)
	return args.Error(0)
}

// fakeCommandTable keeps registered factories by name.
type fakeCommandTable struct {
	factories map[string]pluginpkg.CommandFactory
}

func newFakeCommandTable() *fakeCommandTable {
	return &fakeCommandTable{factories: make(map[string]pluginpkg.CommandFactory)}
}

func (f *fakeCommandTable) Register(name string, factory pluginpkg.CommandFactory) error {
	f.factories[name] = factory
	return nil
}

func writeModule(t *testing.T, root, rel, code string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(code), 0o600))
	return path
}

func openCore(t *testing.T, table pluginpkg.CommandTable, roots ...string) *plugin.Core {
	t.Helper()
	core, err := plugin.Open(context.Background(), plugin.Config{
		Paths:    roots,
		Commands: table,
		Events:   event.NewRegistry(),
	})
	require.NoError(t, err)
	t.Cleanup(core.Close)
	return core
}

type fakeView struct {
	id   string
	text []rune
}

func newFakeView(id, text string) *fakeView {
	return &fakeView{id: id, text: []rune(text)}
}

func (v *fakeView) ID() string       { return v.id }
func (v *fakeView) FileName() string { return "" }
func (v *fakeView) Size() int        { return len(v.text) }

func (v *fakeView) Substr(start, end int) string {
	return string(v.text[start:end])
}

func (v *fakeView) Insert(at int, text string) (int, error) {
	if at < 0 || at > len(v.text) {
		return 0, errors.New("offset out of range")
	}
	r := []rune(text)
	v.text = append(v.text[:at], append(r, v.text[at:]...)...)
	return len(r), nil
}

func (v *fakeView) Erase(start, end int) error {
	v.text = append(v.text[:start], v.text[end:]...)
	return nil
}

type fakeWindow struct {
	id   string
	view pluginpkg.View
}

func (w *fakeWindow) ID() string { return w.id }

func (w *fakeWindow) ActiveView() pluginpkg.View { return w.view }

func (w *fakeWindow) Views() []pluginpkg.View {
	if w.view == nil {
		return nil
	}
	return []pluginpkg.View{w.view}
}
