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
)

// ToSlice drains the source stream into a single slice, emitted once the
// source completes. An empty source yields an empty slice rather than no
// emission at all.
// Play: https://go.dev/play/p/kxbU_PzpN6t
func ToSlice[T any]() func(Subscribable[T]) Subscribable[[]T] {
	return func(source Subscribable[T]) Subscribable[[]T] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[[]T]) Teardown {
			slice := []T{}

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						slice = append(slice, value)
					},
					destination.ErrorWithContext,
					func(ctx context.Context) {
						destination.NextWithContext(ctx, slice) // @TODO: use the context.Context from the last Next notification ?
						destination.CompleteWithContext(ctx)
					},
				),
			)

			return sub.Dispose
		})
	}
}

// ToMap drains the source stream into a single map keyed by project, emitted
// once the source completes. Later items overwrite earlier ones on key
// collision. An empty source yields an empty map.
// Play: https://go.dev/play/p/FiF83XYB0ba
func ToMap[T any, K comparable, V any](project func(item T) (K, V)) func(Subscribable[T]) Subscribable[map[K]V] {
	return ToMapIWithContext(func(ctx context.Context, item T, _ int64) (K, V) {
		return project(item)
	})
}

// ToMapWithContext is ToMap with access to the per-item context.
// Play: https://go.dev/play/p/FiF83XYB0ba
func ToMapWithContext[T any, K comparable, V any](project func(ctx context.Context, item T) (K, V)) func(Subscribable[T]) Subscribable[map[K]V] {
	return ToMapIWithContext(func(ctx context.Context, item T, _ int64) (K, V) {
		return project(ctx, item)
	})
}

// ToMapI is ToMap with the zero-based emission index passed to the key/value
// projector.
// Play: https://go.dev/play/p/FiF83XYB0ba
func ToMapI[T any, K comparable, V any](mapper func(item T, index int64) (K, V)) func(Subscribable[T]) Subscribable[map[K]V] {
	return ToMapIWithContext(func(ctx context.Context, item T, index int64) (K, V) {
		return mapper(item, index)
	})
}

// ToMapIWithContext is ToMap with both the per-item context and the
// zero-based emission index passed to the key/value projector.
// Play: https://go.dev/play/p/FiF83XYB0ba
func ToMapIWithContext[T any, K comparable, V any](mapper func(ctx context.Context, item T, index int64) (K, V)) func(Subscribable[T]) Subscribable[map[K]V] {
	return func(source Subscribable[T]) Subscribable[map[K]V] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[map[K]V]) Teardown {
			output := map[K]V{}
			i := int64(0)

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						k, v := mapper(ctx, value, i)
						i++
						output[k] = v
					},
					destination.ErrorWithContext,
					func(ctx context.Context) {
						destination.NextWithContext(ctx, output)
						destination.CompleteWithContext(ctx)
					},
				),
			)

			return sub.Dispose
		})
	}
}

// ToChannel hands the caller a receive-only channel fed with a Notification
// per source emission, terminated and closed on error or completion. size
// sets the channel's buffer; a negative size panics.
// Play: https://go.dev/play/p/WMKa26sirV0
func ToChannel[T any](size int) func(Subscribable[T]) Subscribable[<-chan Notification[T]] {
	if size < 0 {
		panic(ErrToChannelWrongSize)
	}

	return func(source Subscribable[T]) Subscribable[<-chan Notification[T]] {
		return NewSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[<-chan Notification[T]]) Teardown {
			ch := make(chan Notification[T], size)

			once := sync.Once{}
			closeChan := func() {
				once.Do(func() {
					close(ch)
				})
			}

			subscriptions := NewDisposable(nil)

			// The channel is handed to the observer before subscribing upstream
			// (below), so the observer never races the subscribe-time Next()
			// against the subscription being established.
			ready := make(chan struct{})

			go func() {
				<-ready

				subscriptions.AddDisposer(
					source.SubscribeWithContext(
						subscriberCtx,
						NewSubscriberWithContext(
							func(ctx context.Context, value T) {
								ch <- NewNotificationNext(value)
							},
							func(ctx context.Context, err error) {
								ch <- NewNotificationError[T](err)

								closeChan()
								destination.CompleteWithContext(ctx)
							},
							func(ctx context.Context) {
								ch <- NewNotificationComplete[T]()

								closeChan()
								destination.CompleteWithContext(ctx)
							},
						),
					),
				)
			}()

			destination.NextWithContext(context.TODO(), ch)
			close(ready)

			return func() {
				subscriptions.Dispose()
				closeChan()
			}
		})
	}
}
