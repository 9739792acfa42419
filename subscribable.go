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
	"sync"

	"github.com/samber/lo"
)

// Backpressure is a type that represents the backpressure strategy to use.
type Backpressure int8

const (
	// BackpressureBlock blocks the source observable when the destination is not ready to receive more values.
	BackpressureBlock Backpressure = iota
	// BackpressureDrop drops the source observable when the destination is not ready to receive more values.
	BackpressureDrop
)

// ConcurrencyMode is a type that represents the concurrency mode to use.
type ConcurrencyMode int8

// ConcurrencyModeSafe is a concurrency mode that is safe to use.
// Spinlock is ignored because it is too slow when chaining operators. Spinlock should be used
// only for short-lived local locks.
const (
	ConcurrencyModeSafe ConcurrencyMode = iota
	ConcurrencyModeUnsafe
	ConcurrencyModeEventuallySafe
)

// Subscribable is the producer of values. It is the source of values that are
// emitted to Subscribers.
// Subscribable is a representation of any set of values over any amount of time.
//
// The primary method of a Subscribable is subscribe, which is used to attach an
// Subscriber to the Subscribable. Once an Subscriber is subscribed, the Subscribable
// may begin to emit items to the Subscriber. An Subscribable may emit any number
// of items (including zero items), then may either complete or error, but not
// both. Upon completion or error, the Subscribable will not emit any more items.
//
// An Subscribable may call an Subscriber's methods synchronously or asynchronously.
//
// An Subscribable is not a stream. It is a factory for streams.
type Subscribable[T any] interface {
	// Subscribe subscribes an Subscriber to the Subscribable. The Subscriber will begin
	// to receive items emitted by the Subscribable. The Subscriber may receive any
	// number of items (including zero items), then may either complete or error,
	// but not both. Upon completion or error, the Subscriber will not receive any
	// more items.
	//
	// The Subscribe method returns a Disposable that can be used to dispose
	// the Subscriber from the Subscribable. The Disposable may be used to cancel the
	// subscription, and to wait for the subscription to complete.
	//
	// The Disposable might be already disposed when the Subscribe method returns.
	// In this case, the Teardown function is not called.
	//
	// The Subscribe method may call the Subscriber's methods synchronously or
	// asynchronously. The Subscriber is responsible for handling concurrency and
	// synchronization.
	Subscribe(destination Subscriber[T]) Disposable
	SubscribeWithContext(ctx context.Context, destination Subscriber[T]) Disposable
}

var _ Subscribable[int] = (*subscribableImpl[int])(nil)

// NewSubscribable creates a new Subscribable. The subscribe function is called when
// the Subscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error,
// but not both. Upon completion or error, the Subscribable will not emit any more
// items.
//
// The subscribe function should return a Teardown function that will be called
// when the Disposable is unsubscribed. The Teardown function should clean up
// any resources created during the subscription.
//
// The subscribe function may return a Teardown function that does nothing, if
// no cleanup is necessary. In this case, the Teardown function should return nil.
//
// This method is safe for concurrent use.
func NewSubscribable[T any](subscribe func(destination Subscriber[T]) Teardown) Subscribable[T] {
	return NewSafeSubscribable(subscribe)
}

// NewSafeSubscribable creates a new Subscribable. The subscribe function is called when
// the Subscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error,
// but not both. Upon completion or error, the Subscribable will not emit any more
// items.
//
// The subscribe function should return a Teardown function that will be called
// when the Disposable is unsubscribed. The Teardown function should clean up
// any resources created during the subscription.
//
// The subscribe function may return a Teardown function that does nothing, if
// no cleanup is necessary. In this case, the Teardown function should return nil.
//
// This method is safe for concurrent use.
func NewSafeSubscribable[T any](subscribe func(destination Subscriber[T]) Teardown) Subscribable[T] {
	return NewSubscribableWithConcurrencyMode(
		func(ctx context.Context, destination Subscriber[T]) Teardown {
			return subscribe(destination)
		},
		ConcurrencyModeSafe,
	)
}

// NewUnsafeSubscribable creates a new Subscribable. The subscribe function is called when
// the Subscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error,
// but not both. Upon completion or error, the Subscribable will not emit any more
// items.
//
// The subscribe function should return a Teardown function that will be called
// when the Disposable is unsubscribed. The Teardown function should clean up
// any resources created during the subscription.
//
// The subscribe function may return a Teardown function that does nothing, if
// no cleanup is necessary. In this case, the Teardown function should return nil.
//
// This method is not safe for concurrent use.
func NewUnsafeSubscribable[T any](subscribe func(destination Subscriber[T]) Teardown) Subscribable[T] {
	return NewSubscribableWithConcurrencyMode(
		func(ctx context.Context, destination Subscriber[T]) Teardown {
			return subscribe(destination)
		},
		ConcurrencyModeUnsafe,
	)
}

// NewEventuallySafeSubscribable creates a new Subscribable. The subscribe function is called when
// the Subscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error,
// but not both. Upon completion or error, the Subscribable will not emit any more
// items.
//
// The subscribe function should return a Teardown function that will be called
// when the Disposable is unsubscribed. The Teardown function should clean up
// any resources created during the subscription.
//
// The subscribe function may return a Teardown function that does nothing, if
// no cleanup is necessary. In this case, the Teardown function should return nil.
//
// This method is safe for concurrent use, but concurrent messages are dropped.
func NewEventuallySafeSubscribable[T any](subscribe func(destination Subscriber[T]) Teardown) Subscribable[T] {
	return NewSubscribableWithConcurrencyMode(
		func(ctx context.Context, destination Subscriber[T]) Teardown {
			return subscribe(destination)
		},
		ConcurrencyModeEventuallySafe,
	)
}

// NewSubscribableWithContext creates a new Subscribable. The subscribe function is called when
// the Subscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error,
// but not both. Upon completion or error, the Subscribable will not emit any more
// items.
//
// The subscribe function should return a Teardown function that will be called
// when the Disposable is unsubscribed. The Teardown function should clean up
// any resources created during the subscription.
//
// The subscribe function may return a Teardown function that does nothing, if
// no cleanup is necessary. In this case, the Teardown function should return nil.
//
// This method is safe for concurrent use.
func NewSubscribableWithContext[T any](subscribe func(ctx context.Context, destination Subscriber[T]) Teardown) Subscribable[T] {
	return NewSafeSubscribableWithContext(subscribe)
}

// NewSafeSubscribableWithContext creates a new Subscribable. The subscribe function is called when
// the Subscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error,
// but not both. Upon completion or error, the Subscribable will not emit any more
// items.
//
// The subscribe function should return a Teardown function that will be called
// when the Disposable is unsubscribed. The Teardown function should clean up
// any resources created during the subscription.
//
// The subscribe function may return a Teardown function that does nothing, if
// no cleanup is necessary. In this case, the Teardown function should return nil.
//
// This method is safe for concurrent use.
func NewSafeSubscribableWithContext[T any](subscribe func(ctx context.Context, destination Subscriber[T]) Teardown) Subscribable[T] {
	return NewSubscribableWithConcurrencyMode(subscribe, ConcurrencyModeSafe)
}

// NewUnsafeSubscribableWithContext creates a new Subscribable. The subscribe function is called when
// the Subscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error,
// but not both. Upon completion or error, the Subscribable will not emit any more
// items.
//
// The subscribe function should return a Teardown function that will be called
// when the Disposable is unsubscribed. The Teardown function should clean up
// any resources created during the subscription.
//
// The subscribe function may return a Teardown function that does nothing, if
// no cleanup is necessary. In this case, the Teardown function should return nil.
//
// This method is not safe for concurrent use.
func NewUnsafeSubscribableWithContext[T any](subscribe func(ctx context.Context, destination Subscriber[T]) Teardown) Subscribable[T] {
	return NewSubscribableWithConcurrencyMode(subscribe, ConcurrencyModeUnsafe)
}

// NewEventuallySafeSubscribableWithContext creates a new Subscribable. The subscribe function is called when
// the Subscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error,
// but not both. Upon completion or error, the Subscribable will not emit any more
// items.
//
// The subscribe function should return a Teardown function that will be called
// when the Disposable is unsubscribed. The Teardown function should clean up
// any resources created during the subscription.
//
// The subscribe function may return a Teardown function that does nothing, if
// no cleanup is necessary. In this case, the Teardown function should return nil.
//
// This method is safe for concurrent use, but concurrent messages are dropped.
func NewEventuallySafeSubscribableWithContext[T any](subscribe func(ctx context.Context, destination Subscriber[T]) Teardown) Subscribable[T] {
	return NewSubscribableWithConcurrencyMode(subscribe, ConcurrencyModeEventuallySafe)
}

// NewSubscribableWithConcurrencyMode creates a new Subscribable with the given concurrency mode.
// The subscribe function is called when the Subscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error, but not both. Upon completion or error, the Subscribable will not emit any more items.
//
// The subscribe function should return a Teardown function that will be called
// when the Disposable is unsubscribed. The Teardown function should clean up
// any resources created during the subscription.
//
// The subscribe function may return a Teardown function that does nothing, if
// no cleanup is necessary. In this case, the Teardown function should return nil.
//
// The Subscribable will use the given concurrency mode.
//
// It is rarely used as a public API.
func NewSubscribableWithConcurrencyMode[T any](subscribe func(ctx context.Context, destination Subscriber[T]) Teardown, mode ConcurrencyMode) Subscribable[T] {
	return &subscribableImpl[T]{
		mode:      mode,
		subscribe: subscribe,
	}
}

type subscribableImpl[T any] struct {
	mode      ConcurrencyMode
	subscribe func(ctx context.Context, destination Subscriber[T]) Teardown
}

// Subscribe subscribes an Subscriber to the Subscribable. The Subscriber will begin
// to receive items emitted by the Subscribable. The Subscriber may receive any
// number of items (including zero items), then may either complete or error,
// but not both. Upon completion or error, the Subscriber will not receive any
// more items.
//
// The Subscribe method returns a Disposable that can be used to dispose
// the Subscriber from the Subscribable. The Disposable may be used to cancel the
// subscription, and to wait for the subscription to complete.
//
// The Disposable might be already disposed when the Subscribe method returns.
// In this case, the Teardown function is not called.
//
// The Subscribe method may call the Subscriber's methods synchronously or
// asynchronously. The Subscriber is responsible for handling concurrency and
// synchronization.
func (s *subscribableImpl[T]) Subscribe(destination Subscriber[T]) Disposable {
	return s.SubscribeWithContext(context.Background(), destination)
}

// SubscribeWithContext subscribes an Subscriber to the Subscribable. The Subscriber will begin
// to receive items emitted by the Subscribable. The Subscriber may receive any
// number of items (including zero items), then may either complete or error,
// but not both. Upon completion or error, the Subscriber will not receive any
// more items.
//
// The Subscribe method returns a Disposable that can be used to dispose
// the Subscriber from the Subscribable. The Disposable may be used to cancel the
// subscription, and to wait for the subscription to complete.
//
// The Disposable might be already disposed when the Subscribe method returns.
// In this case, the Teardown function is not called.
//
// The Subscribe method may call the Subscriber's methods synchronously or
// asynchronously. The Subscriber is responsible for handling concurrency and
// synchronization.
func (s *subscribableImpl[T]) SubscribeWithContext(ctx context.Context, destination Subscriber[T]) Disposable {
	subscription := NewConsumerWithConcurrencyMode(destination, s.mode)

	lo.TryCatchWithErrorValue(
		func() error {
			// Warning: here, we are catching panic in subscription.Add.
			// I'm not sure if it's a good idea.
			subscription.Add(s.subscribe(ctx, subscription))
			return nil
		},
		func(e any) {
			err := recoverValueToError(e)
			subscription.ErrorWithContext(ctx, newSubscribableError(err))
			subscription.Dispose()
		},
	)

	return subscription
}

// Collect collects all values emitted by the source Subscribable and returns them
// as a slice. It waits for the source Subscribable to complete before returning.
// If the source Subscribable emits an error, the error is returned along with the
// values collected so far.
func Collect[T any](obs Subscribable[T]) ([]T, error) {
	v, _, err := CollectWithContext(context.Background(), obs)
	return v, err
}

// CollectWithContext collects all values emitted by the source Subscribable and returns them
// as a slice. It waits for the source Subscribable to complete before returning.
// If the source Subscribable emits an error, the error is returned along with the
// values collected so far.
// @TODO: return more values, such as (isCanceled bool) or (duration time.Duration) ?
func CollectWithContext[T any](ctx context.Context, obs Subscribable[T]) ([]T, context.Context, error) {
	values := []T{}

	var lastCtx context.Context
	var err error

	sub := obs.SubscribeWithContext(
		ctx,
		NewSubscriberWithContext(
			func(ctx context.Context, value T) {
				values = append(values, value)
			},
			func(ctx context.Context, thrown error) {
				err = thrown
				lastCtx = ctx
			},
			func(ctx context.Context) {
				lastCtx = ctx
			},
		),
	)

	sub.Wait() // Note: using .Wait() is not recommended.

	return values, lastCtx, err
}
