// Copyright 2025 samber.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://github.com/samber/ro/blob/main/licenses/LICENSE.apache.md
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reactor

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/samber/lo"
)

// Subscriber is the consumer of a Subscribable. It receives notifications: Next,
// Error, and Complete. Subscribers are safe for concurrent calls to Next,
// Error, and Complete. It is the responsibility of the Subscriber to ensure
// that notifications are not forwarded after it has been closed.
type Subscriber[T any] interface {
	// Next receives the next value from the Subscribable. It is called zero or
	// more times by the Subscribable. The Subscribable may call Next synchronously
	// or asynchronously. If Next is called after the Subscriber has been closed,
	// the value will be dropped.
	Next(value T)
	NextWithContext(ctx context.Context, value T)
	// Error receives an error from the Subscribable. It is called at most once by
	// the Subscribable. The Subscribable may call Error synchronously or
	// asynchronously. If Error is called after the Subscriber has been closed, the
	// error will be dropped.
	Error(err error)
	ErrorWithContext(ctx context.Context, err error)
	// Complete receives a completion notification from the Subscribable. It is called
	// at most once by the Subscribable. The Subscribable may call Complete
	// synchronously or asynchronously. If Complete is called after the Subscriber has
	// been closed, the completion notification will be dropped.
	Complete()
	CompleteWithContext(ctx context.Context)

	// IsClosed returns true if the Subscriber has been closed, either by an error
	// or completion notification. If the Subscriber is closed, it will not receive
	// any more notifications.
	IsClosed() bool
	// HasThrown returns true if the Subscriber has received an error notification.
	HasThrown() bool
	// IsCompleted returns true if the Subscriber has received a completion notification.
	IsCompleted() bool
}

/************************
 *     Base Subscriber    *
 ************************/

var _ Subscriber[int] = (*subscriberImpl[int])(nil)

// NewSubscriber creates a new Subscriber with the provided callbacks. No context
// is provided.
func NewSubscriber[T any](onNext func(value T), onError func(err error), onComplete func()) Subscriber[T] {
	return &subscriberImpl[T]{
		status: 0,
		onNext: func(ctx context.Context, value T) {
			onNext(value)
		},
		onError: func(ctx context.Context, err error) {
			onError(err)
		},
		onComplete: func(ctx context.Context) {
			onComplete()
		},
	}
}

// NewSubscriberWithContext creates a new Subscriber with the provided callbacks. A context
// is provided to each callback.
func NewSubscriberWithContext[T any](onNext func(ctx context.Context, value T), onError func(ctx context.Context, err error), onComplete func(ctx context.Context)) Subscriber[T] {
	return &subscriberImpl[T]{
		status:     0,
		onNext:     onNext,
		onError:    onError,
		onComplete: onComplete,
	}
}

type subscriberImpl[T any] struct {
	// 0: active
	// 1: errored
	// 2: completed
	status     int32
	onNext     func(context.Context, T)
	onError    func(context.Context, error) // @TODO: add a default onError that log the error ?
	onComplete func(context.Context)
}

func (o *subscriberImpl[T]) Next(value T) {
	o.NextWithContext(context.Background(), value)
}

func (o *subscriberImpl[T]) NextWithContext(ctx context.Context, value T) {
	if o.onNext == nil || atomic.LoadInt32(&o.status) != 0 {
		OnDroppedNotification(ctx, NewNotificationNext(value))
		return
	}

	o.tryNext(ctx, value)
}

func (o *subscriberImpl[T]) Error(err error) {
	o.ErrorWithContext(context.Background(), err)
}

func (o *subscriberImpl[T]) ErrorWithContext(ctx context.Context, err error) {
	if o.onError == nil || !atomic.CompareAndSwapInt32(&o.status, 0, 1) {
		OnDroppedNotification(ctx, NewNotificationError[T](err))
		return
	}

	o.tryError(ctx, err)
}

func (o *subscriberImpl[T]) Complete() {
	o.CompleteWithContext(context.Background())
}

func (o *subscriberImpl[T]) CompleteWithContext(ctx context.Context) {
	if o.onComplete == nil || !atomic.CompareAndSwapInt32(&o.status, 0, 2) {
		OnDroppedNotification(ctx, NewNotificationComplete[T]())
		return
	}

	o.tryComplete(ctx)
}

func (o *subscriberImpl[T]) tryNext(ctx context.Context, value T) {
	lo.TryCatchWithErrorValue(
		func() error {
			o.onNext(ctx, value)
			return nil
		},
		func(e any) {
			err := newSubscriberError(recoverValueToError(e))

			if o.onError == nil {
				OnUnhandledError(ctx, err)
			} else {
				o.tryError(ctx, err)
			}
		},
	)
}

func (o *subscriberImpl[T]) tryError(ctx context.Context, err error) {
	lo.TryCatchWithErrorValue(
		func() error {
			o.onError(ctx, err)
			return nil
		},
		func(e any) {
			err := newSubscriberError(recoverValueToError(e))
			OnUnhandledError(ctx, err)
		},
	)
}

func (o *subscriberImpl[T]) tryComplete(ctx context.Context) {
	lo.TryCatchWithErrorValue(
		func() error {
			o.onComplete(ctx)
			return nil
		},
		func(e any) {
			err := newSubscriberError(recoverValueToError(e))
			OnUnhandledError(ctx, err)
		},
	)
}

func (o *subscriberImpl[T]) IsClosed() bool {
	return atomic.LoadInt32(&o.status) != 0
}

func (o *subscriberImpl[T]) HasThrown() bool {
	return atomic.LoadInt32(&o.status) == 1
}

func (o *subscriberImpl[T]) IsCompleted() bool {
	return atomic.LoadInt32(&o.status) == 2
}

/*********************
 * Partial Subscribers *
 *********************/

// OnNext is a partial Subscriber with only the Next method implemented.
// Warning: This observer will silent errors.
func OnNext[T any](onNext func(value T)) Subscriber[T] {
	onError := func(err error) {}
	onComplete := func() {}

	return NewSubscriber(onNext, onError, onComplete)
}

// OnNextWithContext is a partial Subscriber with only the Next method implemented.
// Warning: This observer will silent errors.
func OnNextWithContext[T any](onNext func(ctx context.Context, value T)) Subscriber[T] {
	onError := func(ctx context.Context, err error) {}
	onComplete := func(ctx context.Context) {}

	return NewSubscriberWithContext(onNext, onError, onComplete)
}

// OnError is a partial Subscriber with only the Error method implemented.
func OnError[T any](onError func(err error)) Subscriber[T] {
	onNext := func(value T) {}
	onComplete := func() {}

	return NewSubscriber(onNext, onError, onComplete)
}

// OnErrorWithContext is a partial Subscriber with only the Error method implemented.
func OnErrorWithContext[T any](onError func(ctx context.Context, err error)) Subscriber[T] {
	onNext := func(ctx context.Context, value T) {}
	onComplete := func(ctx context.Context) {}

	return NewSubscriberWithContext(onNext, onError, onComplete)
}

// OnComplete is a partial Subscriber with only the Complete method implemented.
// Warning: This observer will silent errors.
func OnComplete[T any](onComplete func()) Subscriber[T] {
	onNext := func(value T) {}
	onError := func(err error) {}

	return NewSubscriber(onNext, onError, onComplete)
}

// OnCompleteWithContext is a partial Subscriber with only the Complete method implemented.
// Warning: This observer will silent errors.
func OnCompleteWithContext[T any](onComplete func(ctx context.Context)) Subscriber[T] {
	onNext := func(ctx context.Context, value T) {}
	onError := func(ctx context.Context, err error) {}

	return NewSubscriberWithContext(onNext, onError, onComplete)
}

// NoopSubscriber is an Subscriber that does nothing.
// Warning: This observer will silent errors.
func NoopSubscriber[T any]() Subscriber[T] {
	return NewSubscriberWithContext(
		func(ctx context.Context, value T) {},
		func(ctx context.Context, err error) {},
		func(ctx context.Context) {},
	)
}

// PrintSubscriber is an utilitary Subscriber that dump notifications for debug purpose.
func PrintSubscriber[T any]() Subscriber[T] {
	return NewSubscriberWithContext(
		func(ctx context.Context, value T) {
			fmt.Printf("Next: %v\n", value)
		},
		func(ctx context.Context, err error) {
			fmt.Printf("Error: %s\n", err.Error())
		},
		func(ctx context.Context) {
			fmt.Printf("Completed\n")
		},
	)
}
