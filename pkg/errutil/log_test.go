// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package errutil_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhost/quill/pkg/errutil"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogError_WithOopsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.In("module").
		Code("TEST_ERROR").
		With("key", "value").
		Hint("check the search path").
		Errorf("something failed")

	errutil.LogError(logger, "operation failed", err, "plugin", "demo")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "operation failed", entry["msg"])
	assert.Equal(t, "TEST_ERROR", entry["code"])
	assert.Equal(t, "module", entry["domain"])
	assert.Equal(t, "check the search path", entry["hint"])
	assert.Equal(t, "demo", entry["plugin"])

	ctx, ok := entry["context"].(map[string]any)
	require.True(t, ok, "context should be an object")
	assert.Equal(t, "value", ctx["key"])
}

func TestLogError_WithStandardError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := errors.New("standard error")

	errutil.LogError(logger, "operation failed", err)

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Contains(t, entry["error"], "standard error")
	assert.NotContains(t, entry, "code")
}

func TestLogWarn_UsesWarnLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	errutil.LogWarn(logger, "member skipped", oops.Code("SKIPPED").Errorf("nope"))

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "SKIPPED", entry["code"])
}

func TestHasCode(t *testing.T) {
	assert.True(t, errutil.HasCode(oops.Code("A").Errorf("x"), "A"))
	assert.False(t, errutil.HasCode(oops.Code("A").Errorf("x"), "B"))
	assert.False(t, errutil.HasCode(errors.New("plain"), "A"))
	assert.False(t, errutil.HasCode(nil, "A"))
}
