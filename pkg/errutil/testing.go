// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package errutil

import (
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestingT is the subset of *testing.T the assertions need. GinkgoT()
// satisfies it too, so the helpers work inside Ginkgo specs.
type TestingT interface {
	require.TestingT
	Helper()
}

// AssertErrorCode asserts that err is an oops error with the given code.
// oops reports the innermost code of a wrapped chain.
func AssertErrorCode(t TestingT, err error, code string) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	assert.Equal(t, code, oopsErr.Code())
}

// AssertErrorContext asserts that err is an oops error with the given context key/value.
func AssertErrorContext(t TestingT, err error, key string, value any) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	ctx := oopsErr.Context()
	assert.Contains(t, ctx, key)
	assert.Equal(t, value, ctx[key])
}

// AssertErrorHint asserts that err is an oops error whose hint mentions substr.
func AssertErrorHint(t TestingT, err error, substr string) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected oops error, got %T", err)
	assert.Contains(t, oopsErr.Hint(), substr)
}
