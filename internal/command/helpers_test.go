// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"context"

	"github.com/stretchr/testify/mock"

	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

type mockCommand struct {
	mock.Mock
}

func (m *mockCommand) IsEnabled(args pluginpkg.Args) bool {
	return m.Called(args).Bool(0)
}

func (m *mockCommand) IsVisible(args pluginpkg.Args) bool {
	return m.Called(args).Bool(0)
}

func (m *mockCommand) Run(ctx context.Context, args pluginpkg.Args) error {
	return m.Called(ctx, args).Error(0)
}

type stubFactory struct {
	kind   pluginpkg.Kind
	source string
	cmd    pluginpkg.Command
	err    error
	target pluginpkg.Target
}

func (f *stubFactory) Kind() pluginpkg.Kind { return f.kind }

func (f *stubFactory) New(_ context.Context, target pluginpkg.Target) (pluginpkg.Command, error) {
	f.target = target
	if f.err != nil {
		return nil, f.err
	}
	return f.cmd, nil
}

// sourcedFactory adds a Source method the registry reads.
type sourcedFactory struct {
	stubFactory
}

func (f *sourcedFactory) Source() string { return f.source }
