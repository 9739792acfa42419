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

	"github.com/samber/lo"
)

// All determines whether all elements of an observable sequence satisfy a condition.
// Play: https://go.dev/play/p/t22F_crlA-l
func All[T any](predicate func(T) bool) func(Subscribable[T]) Subscribable[bool] {
	return AllIWithContext(func(ctx context.Context, v T, _ int64) bool {
		return predicate(v)
	})
}

// AllWithContext determines whether all elements of an observable sequence satisfy a condition.
// Play: https://go.dev/play/p/NEA7Zi7yVNh
func AllWithContext[T any](predicate func(ctx context.Context, item T) bool) func(Subscribable[T]) Subscribable[bool] {
	return AllIWithContext(func(ctx context.Context, item T, _ int64) bool {
		return predicate(ctx, item)
	})
}

// AllI determines whether all elements of an observable sequence satisfy a condition.
func AllI[T any](predicate func(item T, index int64) bool) func(Subscribable[T]) Subscribable[bool] {
	return AllIWithContext(func(ctx context.Context, item T, index int64) bool {
		return predicate(item, index)
	})
}

// AllIWithContext determines whether all elements of an observable sequence satisfy a condition.
// Play: https://go.dev/play/p/UkOzE4wQXPG
func AllIWithContext[T any](predicate func(ctx context.Context, item T, index int64) bool) func(Subscribable[T]) Subscribable[bool] {
	return func(source Subscribable[T]) Subscribable[bool] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[bool]) Teardown {
			ok := true
			i := int64(0)

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						if ok {
							ok = predicate(ctx, value, i)
							i++
						}
					},
					destination.ErrorWithContext,
					func(ctx context.Context) {
						destination.NextWithContext(ctx, ok)
						destination.CompleteWithContext(ctx)
					},
				),
			)

			return sub.Dispose
		})
	}
}

// Any emits true as soon as source emits its first item, then completes
// without waiting for source to terminate; it emits false if source
// completes having emitted nothing. Unlike All, a positive result disposes
// the upstream subscription early instead of draining it.
// Play: https://go.dev/play/p/t22F_crlA-l
func Any[T any]() func(Subscribable[T]) Subscribable[bool] {
	return AnyIWithContext[T](nil)
}

// AnyWithPredicate emits true as soon as source emits an item satisfying
// predicate, then completes without waiting for source to terminate; it
// emits false if source completes without any matching item.
func AnyWithPredicate[T any](predicate func(item T) bool) func(Subscribable[T]) Subscribable[bool] {
	return AnyIWithContext(func(ctx context.Context, item T, _ int64) bool {
		return predicate(item)
	})
}

// AnyWithContext is AnyWithPredicate, except predicate also receives the
// subscription context.
func AnyWithContext[T any](predicate func(ctx context.Context, item T) bool) func(Subscribable[T]) Subscribable[bool] {
	return AnyIWithContext(func(ctx context.Context, item T, _ int64) bool {
		return predicate(ctx, item)
	})
}

// AnyI is AnyWithPredicate, except predicate also receives the zero-based
// index of item within the sequence.
func AnyI[T any](predicate func(item T, index int64) bool) func(Subscribable[T]) Subscribable[bool] {
	return AnyIWithContext(func(ctx context.Context, item T, index int64) bool {
		return predicate(item, index)
	})
}

// AnyIWithContext is AnyI, except predicate also receives the subscription
// context. A nil predicate matches every item, i.e. Any() degenerates to
// "did source emit anything at all".
func AnyIWithContext[T any](predicate func(ctx context.Context, item T, index int64) bool) func(Subscribable[T]) Subscribable[bool] {
	return func(source Subscribable[T]) Subscribable[bool] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[bool]) Teardown {
			i := int64(0)

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						if predicate == nil || predicate(ctx, value, i) {
							destination.NextWithContext(ctx, true)
							destination.CompleteWithContext(ctx)
							return
						}
						i++
					},
					destination.ErrorWithContext,
					func(ctx context.Context) {
						destination.NextWithContext(ctx, false)
						destination.CompleteWithContext(ctx)
					},
				),
			)

			return sub.Dispose
		})
	}
}

// Contains determines whether an observable sequence contains a specified element with an equality comparer.
// Play: https://go.dev/play/p/ldteqqGsMWM
func Contains[T any](predicate func(item T) bool) func(Subscribable[T]) Subscribable[bool] {
	return ContainsI(func(v T, _ int64) bool {
		return predicate(v)
	})
}

// ContainsWithContext determines whether an observable sequence contains a specified element with an equality comparer.
// Play: https://go.dev/play/p/RPHkyiLrFVW
func ContainsWithContext[T any](predicate func(ctx context.Context, item T) bool) func(Subscribable[T]) Subscribable[bool] {
	return ContainsIWithContext(func(ctx context.Context, v T, _ int64) bool {
		return predicate(ctx, v)
	})
}

// ContainsI determines whether an observable sequence contains a specified element with an equality comparer.
func ContainsI[T any](predicate func(item T, index int64) bool) func(Subscribable[T]) Subscribable[bool] {
	return ContainsIWithContext(func(ctx context.Context, v T, i int64) bool {
		return predicate(v, i)
	})
}

// ContainsIWithContext determines whether an observable sequence contains a specified element with an equality comparer.
// Play: https://go.dev/play/p/TkLfujMVNJb
func ContainsIWithContext[T any](predicate func(ctx context.Context, item T, index int64) bool) func(Subscribable[T]) Subscribable[bool] {
	return func(source Subscribable[T]) Subscribable[bool] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[bool]) Teardown {
			i := int64(0)

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						ok := predicate(ctx, value, i)
						if ok {
							destination.NextWithContext(ctx, ok)
							destination.CompleteWithContext(ctx)
						}

						i++
					},
					destination.ErrorWithContext,
					func(ctx context.Context) {
						destination.NextWithContext(ctx, false)
						destination.CompleteWithContext(ctx)
					},
				),
			)

			return sub.Dispose
		})
	}
}

// Find returns the first element of an observable sequence that satisfies the condition.
// Play: https://go.dev/play/p/2f5rn0HoKeq
func Find[T any](predicate func(item T) bool) func(Subscribable[T]) Subscribable[T] {
	return FindI(func(item T, _ int64) bool {
		return predicate(item)
	})
}

// FindWithContext returns the first element of an observable sequence that satisfies the condition.
// Play: https://go.dev/play/p/BVm-Grgv11w
func FindWithContext[T any](predicate func(ctx context.Context, item T) bool) func(Subscribable[T]) Subscribable[T] {
	return FindIWithContext(func(ctx context.Context, v T, _ int64) bool {
		return predicate(ctx, v)
	})
}

// FindI returns the first element of an observable sequence that satisfies the condition.
func FindI[T any](predicate func(item T, index int64) bool) func(Subscribable[T]) Subscribable[T] {
	return FindIWithContext(func(ctx context.Context, v T, i int64) bool {
		return predicate(v, i)
	})
}

// FindIWithContext returns the first element of an observable sequence that satisfies the condition.
// Play: https://go.dev/play/p/X8oT_CF9IKM
func FindIWithContext[T any](predicate func(ctx context.Context, item T, index int64) bool) func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			i := int64(0)

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						ok := predicate(ctx, value, i)
						if ok {
							destination.NextWithContext(ctx, value)
							destination.CompleteWithContext(ctx)
						}

						i++
					},
					destination.ErrorWithContext,
					// return zero value or error ?
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

// Iif determines which one of two observables to return based on a condition.
// Play: https://go.dev/play/p/t-sNgL5EZA-
func Iif[T any](predicate func() bool, source1, source2 Subscribable[T]) func() Subscribable[T] {
	return func() Subscribable[T] {
		if predicate() {
			return source1
		}

		return source2
	}
}

// DefaultIfEmpty emits a default value if the source observable emits no items.
// Play: https://go.dev/play/p/WDh807OLPWv
func DefaultIfEmpty[T any](defaultValue T) func(Subscribable[T]) Subscribable[T] {
	return DefaultIfEmptyWithContext(context.Background(), defaultValue)
}

// DefaultIfEmptyWithContext emits a default value if the source observable emits no items.
func DefaultIfEmptyWithContext[T any](defaultCtx context.Context, defaultValue T) func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			empty := true

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						empty = false

						destination.NextWithContext(ctx, value)
					},
					destination.ErrorWithContext,
					func(ctx context.Context) {
						if empty {
							destination.NextWithContext(defaultCtx, defaultValue)
						}

						destination.CompleteWithContext(ctx)
					},
				),
			)

			return sub.Dispose
		})
	}
}

// SequenceEqual determines whether two observable sequences are equal by comparing the elements pairwise.
// Play: https://go.dev/play/p/cBIQlH01byQ
func SequenceEqual[T comparable](obsB Subscribable[T]) func(Subscribable[T]) Subscribable[bool] {
	return func(source Subscribable[T]) Subscribable[bool] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[bool]) Teardown {
			sub := Zip2(source, obsB).
				SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, values lo.Tuple2[T, T]) {
							if values.A != values.B {
								destination.NextWithContext(ctx, false)
								destination.CompleteWithContext(ctx)
							}
						},
						destination.ErrorWithContext,
						func(ctx context.Context) {
							destination.NextWithContext(ctx, true)
							destination.CompleteWithContext(ctx)
						},
					),
				)

			return sub.Dispose
		})
	}
}
