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
	"sync/atomic"

	"github.com/flowkit/reactor/internal/xsync"
)

// Consumer implements the Subscriber and Disposable interfaces. While the Subscriber is
// the public API for consuming the values of a Subscribable, all Subscribers get
// converted to a Consumer, in order to provide Disposable-like capabilities
// such as `Dispose()`. Consumer is a common type in samber/ro, and crucial for
// implementing operators, but it is rarely used as a public API.
type Consumer[T any] interface {
	Disposable
	Subscriber[T]
}

var _ Consumer[int] = (*consumerImpl[int])(nil)

// NewConsumer creates a new Consumer from an Subscriber. If the Subscriber
// is already a Consumer, it is returned as is. Otherwise, a new Consumer
// is created that wraps the Subscriber.
//
// The returned Consumer will dispose from the destination Subscriber when
// Dispose() is called.
//
// This method is safe for concurrent use.
//
// It is rarely used as a public API.
func NewConsumer[T any](destination Subscriber[T]) Consumer[T] {
	return NewSafeConsumer(destination)
}

// NewSafeConsumer creates a new Consumer from an Subscriber. If the Subscriber
// is already a Consumer, it is returned as is. Otherwise, a new Consumer
// is created that wraps the Subscriber.
//
// The returned Consumer will dispose from the destination Subscriber when
// Dispose() is called.
//
// This method is safe for concurrent use.
//
// It is rarely used as a public API.
func NewSafeConsumer[T any](destination Subscriber[T]) Consumer[T] {
	return NewConsumerWithConcurrencyMode(destination, ConcurrencyModeSafe)
}

// NewUnsafeConsumer creates a new Consumer from an Subscriber. If the Subscriber
// is already a Consumer, it is returned as is. Otherwise, a new Consumer
// is created that wraps the Subscriber.
//
// The returned Consumer will dispose from the destination Subscriber when
// Dispose() is called.
//
// This method is not safe for concurrent use.
//
// It is rarely used as a public API.
func NewUnsafeConsumer[T any](destination Subscriber[T]) Consumer[T] {
	return NewConsumerWithConcurrencyMode(destination, ConcurrencyModeUnsafe)
}

// NewEventuallySafeConsumer creates a new Consumer from an Subscriber. If the Subscriber
// is already a Consumer, it is returned as is. Otherwise, a new Consumer
// is created that wraps the Subscriber.
//
// The returned Consumer will dispose from the destination Subscriber when
// Dispose() is called.
//
// This method is safe for concurrent use, but concurrent messages are dropped.
//
// It is rarely used as a public API.
func NewEventuallySafeConsumer[T any](destination Subscriber[T]) Consumer[T] {
	return NewConsumerWithConcurrencyMode(destination, ConcurrencyModeEventuallySafe)
}

// NewConsumerWithConcurrencyMode creates a new Consumer from an Subscriber. If the Subscriber
// is already a Consumer, it is returned as is. Otherwise, a new Consumer
// is created that wraps the Subscriber.
//
// The returned Consumer will dispose from the destination Subscriber when
// Dispose() is called.
//
// It is rarely used as a public API.
func NewConsumerWithConcurrencyMode[T any](destination Subscriber[T], mode ConcurrencyMode) Consumer[T] {
	// Spinlock is ignored because it is too slow when chaining operators. Spinlock should be used
	// only for short-lived local locks.
	switch mode {
	case ConcurrencyModeSafe:
		return newConsumerImpl(mode, xsync.NewMutexWithLock(), BackpressureBlock, destination)
	case ConcurrencyModeUnsafe:
		return newConsumerImpl(mode, xsync.NewMutexWithoutLock(), BackpressureBlock, destination)
	case ConcurrencyModeEventuallySafe:
		return newConsumerImpl(mode, xsync.NewMutexWithLock(), BackpressureDrop, destination)
	default:
		panic("invalid concurrency mode")
	}
}

// newConsumerImpl creates a new subscriber implementation with the specified
// synchronization behavior and destination observer.
func newConsumerImpl[T any](mode ConcurrencyMode, mu xsync.Mutex, backpressure Backpressure, destination Subscriber[T]) Consumer[T] {
	// Protect against multiple encapsulation layers.
	if subscriber, ok := destination.(Consumer[T]); ok {
		return subscriber
	}

	subscriber := &consumerImpl[T]{
		Disposable: NewDisposable(nil),
		destination:  destination,

		mode:         mode,
		mu:           mu,
		backpressure: backpressure,
		status:       0, // KindNext
	}

	if subscription, ok := destination.(Disposable); ok {
		subscription.Add(subscriber.Dispose)
	}

	return subscriber
}

type consumerImpl[T any] struct {
	Disposable
	destination Subscriber[T]

	// Mutex are much much faster than channels.
	//
	// Also, generators has been added in go1.23. A different implem of Subscribable/Subscriber
	// might reduce latency induced by mutexes.
	//
	// It could be interesting to implement a lock-free version of this,
	// with message drop instead of backpressure, and when SLO must be kept under
	// control (real-time streams?).
	mode         ConcurrencyMode
	mu           xsync.Mutex
	backpressure Backpressure

	// While mutex is used for synchronization of producer, status is used for storing state of
	// the subscriber. Using the mutex for reading the status would have create a dead lock if
	// an Subscriber calls Dispose(), IsClosed(), HasThrown(), IsCompleted() synchronously.
	//
	// 0 - KindNext
	// 1 - KindError
	// 2 - KindComplete
	status int32
}

// Implements Subscriber.
func (s *consumerImpl[T]) Next(v T) {
	s.NextWithContext(context.Background(), v)
}

// Implements Subscriber.
func (s *consumerImpl[T]) NextWithContext(ctx context.Context, v T) {
	if s.destination == nil {
		return
	}

	if s.backpressure == BackpressureDrop {
		if !s.mu.TryLock() {
			OnDroppedNotification(ctx, NewNotificationNext(v))
			return
		}
	} else {
		s.mu.Lock()
	}

	if atomic.LoadInt32(&s.status) == 0 {
		s.destination.NextWithContext(ctx, v)
	} else {
		OnDroppedNotification(ctx, NewNotificationNext(v))
	}

	s.mu.Unlock()
}

// Implements Subscriber.
func (s *consumerImpl[T]) Error(err error) {
	s.ErrorWithContext(context.Background(), err)
}

// Implements Subscriber.
func (s *consumerImpl[T]) ErrorWithContext(ctx context.Context, err error) {
	s.mu.Lock()

	if atomic.CompareAndSwapInt32(&s.status, 0, 1) {
		if s.destination != nil {
			s.destination.ErrorWithContext(ctx, err)
		}
	} else {
		OnDroppedNotification(ctx, NewNotificationError[T](err))
	}

	s.mu.Unlock()

	s.dispose()
}

// Implements Subscriber.
func (s *consumerImpl[T]) Complete() {
	s.CompleteWithContext(context.Background())
}

// Implements Subscriber.
func (s *consumerImpl[T]) CompleteWithContext(ctx context.Context) {
	s.mu.Lock()

	if atomic.CompareAndSwapInt32(&s.status, 0, 2) {
		if s.destination != nil {
			s.destination.CompleteWithContext(ctx)
		}
	} else {
		OnDroppedNotification(ctx, NewNotificationComplete[T]())
	}

	s.mu.Unlock()

	s.dispose()
}

// Implements Subscriber.
func (s *consumerImpl[T]) IsClosed() bool {
	return atomic.LoadInt32(&s.status) != 0
}

// Implements Subscriber.
func (s *consumerImpl[T]) HasThrown() bool {
	return atomic.LoadInt32(&s.status) == 1
}

// Implements Subscriber.
func (s *consumerImpl[T]) IsCompleted() bool {
	return atomic.LoadInt32(&s.status) == 2
}

// Implements Subscriber.
func (s *consumerImpl[T]) Dispose() {
	if atomic.CompareAndSwapInt32(&s.status, 0, 2) {
		s.dispose()
	}
}

func (s *consumerImpl[T]) dispose() {
	// s.Disposable.Dispose() is protected against concurrent calls.
	s.Disposable.Dispose()
}
