// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindApplicationCommand, "application_command"},
		{KindWindowCommand, "window_command"},
		{KindTextCommand, "text_command"},
		{KindEventListener, "event_listener"},
		{Kind(0), "unknown"},
		{Kind(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestKind_IsCommand(t *testing.T) {
	assert.True(t, KindApplicationCommand.IsCommand())
	assert.True(t, KindWindowCommand.IsCommand())
	assert.True(t, KindTextCommand.IsCommand())
	assert.False(t, KindEventListener.IsCommand())
	assert.False(t, Kind(0).IsCommand())
}
