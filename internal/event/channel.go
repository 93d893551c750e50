// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package event

import (
	"log/slog"
	"slices"

	"github.com/oklog/ulid/v2"

	"github.com/quillhost/quill/pkg/errutil"
)

// Observer receives the value passed to Fire.
// A returned error is logged by the channel and never reaches the caller of Fire.
type Observer[T any] func(T) error

// Subscription identifies one observer registration on a channel.
// Subscribing the same observer twice yields two distinct subscriptions.
type Subscription struct {
	ID      ulid.ULID
	Channel string
}

type registration[T any] struct {
	sub Subscription
	fn  Observer[T]
}

// Channel is a named multicast dispatcher.
type Channel[T any] struct {
	name      string
	observers []registration[T]
	logger    *slog.Logger
}

// Option configures a Channel or Registry.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger observer failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewChannel creates an empty channel.
func NewChannel[T any](name string, opts ...Option) *Channel[T] {
	o := buildOptions(opts)
	return &Channel[T]{
		name:   name,
		logger: o.logger.With("channel", name),
	}
}

// Name returns the channel name.
func (c *Channel[T]) Name() string {
	return c.name
}

// Len returns the number of current subscriptions.
func (c *Channel[T]) Len() int {
	return len(c.observers)
}

// Subscribe appends fn to the observer list.
func (c *Channel[T]) Subscribe(fn Observer[T]) Subscription {
	sub := Subscription{ID: ulid.Make(), Channel: c.name}
	c.observers = append(c.observers, registration[T]{sub: sub, fn: fn})
	return sub
}

// Unsubscribe removes the first registration matching sub.
// Removing a subscription the channel does not hold is an error.
func (c *Channel[T]) Unsubscribe(sub Subscription) error {
	i := slices.IndexFunc(c.observers, func(r registration[T]) bool {
		return r.sub == sub
	})
	if i < 0 {
		return ErrObserverNotFound(c.name, sub.ID)
	}
	c.observers = slices.Delete(c.observers, i, i+1)
	return nil
}

// Fire invokes every observer in subscription order with arg.
// Observers subscribed or removed while Fire runs take effect on the next call.
func (c *Channel[T]) Fire(arg T) {
	Fires.WithLabelValues(c.name).Inc()

	for _, r := range slices.Clone(c.observers) {
		if err := c.invoke(r, arg); err != nil {
			ObserverFailures.WithLabelValues(c.name).Inc()
			errutil.LogError(c.logger, "event observer failed", err)
		}
	}
}

func (c *Channel[T]) invoke(r registration[T], arg T) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errObserverPanicked(c.name, r.sub.ID, rec)
		}
	}()

	if err := r.fn(arg); err != nil {
		return errObserverFailed(c.name, r.sub.ID, err)
	}
	return nil
}
