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

// SwitchAll flattens a Subscribable of Subscribables by always forwarding the
// most recently emitted inner Subscribable. Unlike MergeAll, a new inner
// emission disposes whatever inner subscription is currently active, so only
// one inner Subscribable is ever live at a time.
//
// It completes once the outer Subscribable and the currently active inner
// Subscribable have both completed.
func SwitchAll[T any]() func(Subscribable[Subscribable[T]]) Subscribable[T] {
	return func(source Subscribable[Subscribable[T]]) Subscribable[T] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			var mu sync.Mutex
			current := Disposer(nil)
			generation := 0
			outerDone := false
			innerDone := true

			maybeComplete := func(ctx context.Context) {
				if outerDone && innerDone {
					destination.CompleteWithContext(ctx)
				}
			}

			outer := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, inner Subscribable[T]) {
						mu.Lock()
						if current != nil {
							current.Dispose()
						}
						generation++
						gen := generation
						innerDone = false
						mu.Unlock()

						innerSub := inner.SubscribeWithContext(
							subscriberCtx,
							NewSubscriberWithContext(
								func(ctx context.Context, value T) {
									mu.Lock()
									stale := gen != generation
									mu.Unlock()

									if !stale {
										destination.NextWithContext(ctx, value)
									}
								},
								destination.ErrorWithContext,
								func(ctx context.Context) {
									mu.Lock()
									stale := gen != generation
									if !stale {
										innerDone = true
									}
									mu.Unlock()

									if !stale {
										maybeComplete(ctx)
									}
								},
							),
						)

						mu.Lock()
						current = innerSub
						mu.Unlock()
					},
					destination.ErrorWithContext,
					func(ctx context.Context) {
						mu.Lock()
						outerDone = true
						mu.Unlock()

						maybeComplete(ctx)
					},
				),
			)

			return func() {
				mu.Lock()
				defer mu.Unlock()

				outer.Dispose()

				if current != nil {
					current.Dispose()
				}
			}
		})
	}
}

// SwitchMap projects each item emitted by the source into a Subscribable,
// then flattens with SwitchAll semantics: a new projected Subscribable
// disposes whatever previous one is still active.
func SwitchMap[T, R any](projection func(item T) Subscribable[R]) func(Subscribable[T]) Subscribable[R] {
	return func(source Subscribable[T]) Subscribable[R] {
		return SwitchAll[R]()(Map(projection)(source))
	}
}
