// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package event

import (
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Error codes for channel failures.
const (
	CodeObserverFailed   = "OBSERVER_FAILED"
	CodeObserverNotFound = "OBSERVER_NOT_FOUND"
)

// ErrObserverNotFound creates an error for removing a subscription the channel does not hold.
func ErrObserverNotFound(channel string, id ulid.ULID) error {
	return oops.In("event").
		Code(CodeObserverNotFound).
		With("channel", channel).
		With("subscription", id.String()).
		Errorf("observer not subscribed to %s", channel)
}

func errObserverFailed(channel string, id ulid.ULID, cause error) error {
	return oops.In("event").
		Code(CodeObserverFailed).
		With("channel", channel).
		With("subscription", id.String()).
		Wrap(cause)
}

func errObserverPanicked(channel string, id ulid.ULID, recovered any) error {
	return oops.In("event").
		Code(CodeObserverFailed).
		With("channel", channel).
		With("subscription", id.String()).
		Errorf("observer panicked: %v", recovered)
}
