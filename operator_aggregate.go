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

// AggregateWithStart folds every item emitted by source into a single
// accumulator, seeded with start, and emits only the final value once source
// completes. Unlike Scan, which emits every intermediate accumulation,
// AggregateWithStart emits nothing until termination.
func AggregateWithStart[T, R any](reduce func(accumulator R, item T) R, start R) func(Subscribable[T]) Subscribable[R] {
	return AggregateWithStartFactory(reduce, func() R { return start })
}

// AggregateWithStartFactory is AggregateWithStart, except the seed is
// produced lazily by startFactory on each subscription, so a fresh mutable
// seed can be used per-subscriber instead of being shared across them.
func AggregateWithStartFactory[T, R any](reduce func(accumulator R, item T) R, startFactory func() R) func(Subscribable[T]) Subscribable[R] {
	return func(source Subscribable[T]) Subscribable[R] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[R]) Teardown {
			accumulator := startFactory()

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						accumulator = reduce(accumulator, value)
					},
					destination.ErrorWithContext,
					func(ctx context.Context) {
						destination.NextWithContext(ctx, accumulator)
						destination.CompleteWithContext(ctx)
					},
				),
			)

			return sub.Dispose
		})
	}
}
