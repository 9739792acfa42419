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

import "context"

// CombineLatest maintains the latest value from each source, and emits a
// slice of every latest value each time any source emits, once every source
// has emitted at least once. It completes when all sources complete, and
// errors as soon as any source errors.
//
// Unlike CombineLatestAll, which flattens a Subscribable of Subscribables,
// CombineLatest takes a plain slice of already-known sources.
func CombineLatest[T any](sources []Subscribable[T]) Subscribable[[]T] {
	return CombineLatestAll[T]()(Just(sources...))
}

// CombineLatestWithReduce is CombineLatest followed by a projection applied to
// each emitted slice of latest values.
func CombineLatestWithReduce[T, R any](sources []Subscribable[T], reduce func(values []T) R) Subscribable[R] {
	return Map(reduce)(CombineLatest(sources))
}

// WhenAll emits a single `struct{}{}` once every source has emitted at least
// one value, then completes. It propagates the first error encountered.
func WhenAll[T any](sources []Subscribable[T]) Subscribable[struct{}] {
	return Map(func(_ []T) struct{} { return struct{}{} })(
		Take[[]T](1)(CombineLatest(sources)),
	)
}

// Let creates a single multicast-once shared view of source and passes it to
// block, returning block's result. It guarantees source is subscribed at
// most once across whatever derived graph block builds from the shared view,
// by wrapping source in Share before handing it off.
func Let[T, R any](source Subscribable[T], block func(shared Subscribable[T]) Subscribable[R]) Subscribable[R] {
	return block(Share[T]()(source))
}

// AsMaybes wraps each next/error into a Notification and never errors
// downstream: on an upstream error, it emits a single wrapped-error
// Notification then completes; on next, it forwards a wrapped-value
// Notification; on completion, it completes without emitting anything extra.
func AsMaybes[T any](source Subscribable[T]) Subscribable[Notification[T]] {
	return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[Notification[T]]) Teardown {
		sub := source.SubscribeWithContext(
			subscriberCtx,
			NewSubscriberWithContext(
				func(ctx context.Context, value T) {
					destination.NextWithContext(ctx, NewNotificationNext(value))
				},
				func(ctx context.Context, err error) {
					destination.NextWithContext(ctx, NewNotificationError[T](err))
					destination.CompleteWithContext(ctx)
				},
				destination.CompleteWithContext,
			),
		)

		return sub.Dispose
	})
}
