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
	"time"
)

// ContextWithValue returns a Subscribable that emits the same items as the source
// Subscribable, but adds a key-value pair to the context of each item.
// Play: https://go.dev/play/p/l70D6fuiVhK
func ContextWithValue[T any](k, v any) func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			sub := source.SubscribeWithContext(
				context.WithValue(subscriberCtx, k, v),
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						ctx = context.WithValue(ctx, k, v)
						destination.NextWithContext(ctx, value)
					},
					func(ctx context.Context, err error) {
						ctx = context.WithValue(ctx, k, v)
						destination.ErrorWithContext(ctx, err)
					},
					func(ctx context.Context) {
						ctx = context.WithValue(ctx, k, v)
						destination.CompleteWithContext(ctx)
					},
				),
			)

			return sub.Dispose
		})
	}
}

// ContextWithTimeout returns a Subscribable that emits the same items as the source
// Subscribable, but attaches a per-item timeout to the context. Chain with
// ThrowOnContextCancel to turn an expired deadline into a terminal error.
// Play: https://go.dev/play/p/1qijKGsyn0D
func ContextWithTimeout[T any](timeout time.Duration) func(Subscribable[T]) Subscribable[T] {
	return ContextWithTimeoutCause[T](timeout, nil)
}

// ContextWithTimeoutCause is ContextWithTimeout, but once the deadline fires
// context.Cause reports cause; ctx.Err() is still context.DeadlineExceeded.
func ContextWithTimeoutCause[T any](timeout time.Duration, cause error) func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						childCtx, cancel := context.WithTimeoutCause(ctx, timeout, cause)
						// cancel is intentionally not deferred here: downstream operators
						// chained via ObserveOn/SubscribeOn may still read from childCtx
						// after this call returns.
						_ = cancel
						destination.NextWithContext(childCtx, value)
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

// ContextWithDeadline returns a Subscribable that emits the same items as the source
// Subscribable, but adds a deadline to the context of each item.
// This operator should be chained with ThrowOnContextCancel.
// Play: https://go.dev/play/p/NPYFzhI2YDK
func ContextWithDeadline[T any](deadline time.Time) func(Subscribable[T]) Subscribable[T] {
	return ContextWithDeadlineCause[T](deadline, nil)
}

// ContextWithDeadlineCause is ContextWithDeadline, but once the deadline fires
// context.Cause reports cause; ctx.Err() is still context.DeadlineExceeded.
func ContextWithDeadlineCause[T any](deadline time.Time, cause error) func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						childCtx, cancel := context.WithDeadlineCause(ctx, deadline, cause)
						_ = cancel
						destination.NextWithContext(childCtx, value)
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

// ContextReset returns a Subscribable that emits the same items as the source
// Subscribable, but with a new context. If the new context is nil, it uses
// context.Background().
// Play: https://go.dev/play/p/PgvV0SejJpH
func ContextReset[T any](newCtx context.Context) func(Subscribable[T]) Subscribable[T] {
	if newCtx == nil {
		newCtx = context.Background()
	}

	return func(source Subscribable[T]) Subscribable[T] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(_ context.Context, value T) {
						destination.NextWithContext(newCtx, value)
					},
					func(_ context.Context, err error) {
						destination.ErrorWithContext(newCtx, err)
					},
					func(_ context.Context) {
						destination.CompleteWithContext(newCtx)
					},
				),
			)

			return sub.Dispose
		})
	}
}

// ContextMap returns a Subscribable that emits the same items as the source
// Subscribable, but with a new context. The project function is called for each
// item emitted by the source Subscribable, and the context is replaced with the
// context returned by the project function.
// Play: https://go.dev/play/p/jbshjD3sb6M
func ContextMap[T any](project func(ctx context.Context) context.Context) func(Subscribable[T]) Subscribable[T] {
	return ContextMapI[T](func(ctx context.Context, _ int64) context.Context {
		return project(ctx)
	})
}

// ContextMapI returns a Subscribable that emits the same items as the source
// Subscribable, but with a new context. The project function is called for each
// item emitted by the source Subscribable, and the context is replaced with the
// context returned by the project function.
// Play: https://go.dev/play/p/jbshjD3sb6M
func ContextMapI[T any](project func(ctx context.Context, index int64) context.Context) func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			i := int64(0)

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						destination.NextWithContext(project(ctx, i), value)

						i++
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

// ThrowOnContextCancel returns a Subscribable that emits the same items as the source
// Subscribable, but throws an error if the context is canceled. This operator should
// be chained after an operator such as ContextWithTimeout or ContextWithDeadline.
// Play: https://go.dev/play/p/K9oGdZFa-b1
func ThrowOnContextCancel[T any]() func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			if subscriberCtx.Err() != nil {
				destination.ErrorWithContext(subscriberCtx, subscriberCtx.Err())
				return nil
			}

			done := make(chan struct{})

			go func() {
				select {
				case <-subscriberCtx.Done():
					destination.ErrorWithContext(subscriberCtx, subscriberCtx.Err())
				case <-done:
					destination.CompleteWithContext(subscriberCtx)
				}
			}()

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						if ctx.Err() != nil {
							destination.ErrorWithContext(ctx, ctx.Err())
							return
						}

						destination.NextWithContext(ctx, value)

						if ctx.Err() != nil {
							destination.ErrorWithContext(ctx, ctx.Err())
							return
						}
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return func() {
				sub.Dispose()
				close(done)
			}
		})
	}
}
