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
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"github.com/flowkit/reactor/internal/xsync"
)

// Map applies a given project function to each item emitted by a Subscribable and emits the result.
func Map[T, R any](project func(item T) R) func(Subscribable[T]) Subscribable[R] {
	return MapIWithContext(func(ctx context.Context, v T, _ int64) (context.Context, R) {
		return ctx, project(v)
	})
}

// MapWithContext applies a given project function to each item emitted by a Subscribable and emits the result.
func MapWithContext[T, R any](project func(ctx context.Context, item T) (context.Context, R)) func(Subscribable[T]) Subscribable[R] {
	return MapIWithContext(func(ctx context.Context, v T, _ int64) (context.Context, R) {
		return project(ctx, v)
	})
}

// MapI applies a given project function to each item emitted by a Subscribable and emits the result.
func MapI[T, R any](project func(item T, index int64) R) func(Subscribable[T]) Subscribable[R] {
	return MapIWithContext(func(ctx context.Context, v T, i int64) (context.Context, R) {
		return ctx, project(v, i)
	})
}

// MapIWithContext applies a given project function to each item emitted by a Subscribable and emits the result.
func MapIWithContext[T, R any](project func(ctx context.Context, item T, index int64) (context.Context, R)) func(Subscribable[T]) Subscribable[R] {
	return func(source Subscribable[T]) Subscribable[R] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[R]) Teardown {
			i := int64(0)

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						newCtx, result := project(ctx, value, i)
						destination.NextWithContext(newCtx, result)

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

// MapTo emits a constant value for each item emitted by a Subscribable.
func MapTo[T, R any](output R) func(Subscribable[T]) Subscribable[R] {
	return func(source Subscribable[T]) Subscribable[R] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[R]) Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						// ignore value
						destination.NextWithContext(ctx, output)
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

// MapErr applies a given project function to each item emitted by a Subscribable and emits the result.
func MapErr[T, R any](project func(item T) (R, error)) func(Subscribable[T]) Subscribable[R] {
	return MapErrIWithContext(func(ctx context.Context, t T, _ int64) (R, context.Context, error) {
		r, err := project(t)
		return r, ctx, err
	})
}

// MapErrWithContext applies a given project function to each item emitted by a Subscribable and emits the result.
func MapErrWithContext[T, R any](project func(ctx context.Context, item T) (R, context.Context, error)) func(Subscribable[T]) Subscribable[R] {
	return MapErrIWithContext(func(ctx context.Context, t T, _ int64) (R, context.Context, error) {
		return project(ctx, t)
	})
}

// MapErrI applies a given project function to each item emitted by a Subscribable and emits the result.
func MapErrI[T, R any](project func(item T, index int64) (R, error)) func(Subscribable[T]) Subscribable[R] {
	return MapErrIWithContext(func(ctx context.Context, v T, i int64) (R, context.Context, error) {
		r, err := project(v, i)
		return r, ctx, err
	})
}

// MapErrIWithContext applies a given project function to each item emitted by a Subscribable and emits the result.
func MapErrIWithContext[T, R any](project func(ctx context.Context, item T, index int64) (R, context.Context, error)) func(Subscribable[T]) Subscribable[R] {
	return func(source Subscribable[T]) Subscribable[R] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[R]) Teardown {
			count := int64(0)
			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, t T) {
						v, ctx, err := project(ctx, t, count)
						count++

						if err != nil {
							destination.ErrorWithContext(ctx, err)
							return
						}

						destination.NextWithContext(ctx, v)
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

// FlatMap transforms the items emitted by a Subscribable into Subscribables,
// then flatten the emissions from those into a single Subscribable.
func FlatMap[T, R any](project func(item T) Subscribable[R]) func(Subscribable[T]) Subscribable[R] {
	return FlatMapI(func(v T, _ int64) Subscribable[R] {
		return project(v)
	})
}

// FlatMapWithContext transforms the items emitted by a Subscribable into Subscribables,
// then flatten the emissions from those into a single Subscribable.
func FlatMapWithContext[T, R any](project func(ctx context.Context, item T) Subscribable[R]) func(Subscribable[T]) Subscribable[R] {
	return FlatMapIWithContext(func(ctx context.Context, v T, _ int64) Subscribable[R] {
		return project(ctx, v)
	})
}

// FlatMapI transforms the items emitted by a Subscribable into Subscribables,
// then flatten the emissions from those into a single Subscribable.
func FlatMapI[T, R any](project func(item T, index int64) Subscribable[R]) func(Subscribable[T]) Subscribable[R] {
	return FlatMapIWithContext(func(ctx context.Context, v T, i int64) Subscribable[R] {
		return project(v, i)
	})
}

// FlatMapIWithContext transforms the items emitted by a Subscribable into Subscribables,
// then flatten the emissions from those into a single Subscribable.
func FlatMapIWithContext[T, R any](project func(ctx context.Context, item T, index int64) Subscribable[R]) func(Subscribable[T]) Subscribable[R] {
	return func(source Subscribable[T]) Subscribable[R] {
		return ConcatAll[R]()(
			NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[Subscribable[R]]) Teardown {
				i := int64(0)

				sub := source.SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, value T) {
							destination.NextWithContext(ctx, project(ctx, value, i))

							i++
						},
						destination.ErrorWithContext,
						destination.CompleteWithContext,
					),
				)

				return sub.Dispose
			}),
		)
	}
}

// Flatten flattens a Subscribable of slices into a Subscribable of their items.
func Flatten[T any]() func(Subscribable[[]T]) Subscribable[T] {
	return func(source Subscribable[[]T]) Subscribable[T] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value []T) {
						for _, v := range value {
							destination.NextWithContext(ctx, v)
						}
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

// Cast converts each value emitted by a Subscribable into a specified type.
func Cast[T, U any]() func(Subscribable[T]) Subscribable[U] {
	return func(source Subscribable[T]) Subscribable[U] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[U]) Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						if v, ok := any(value).(U); ok {
							destination.NextWithContext(ctx, v)
						} else {
							destination.ErrorWithContext(ctx, newCastError[T, U]())
						}
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

// Scan applies an accumulator function over a Subscribable and emits each intermediate result.
// Play: https://go.dev/play/p/jZD5FyPN3P_D
func Scan[T, R any](reduce func(accumulator R, item T) R, seed R) func(Subscribable[T]) Subscribable[R] {
	return ScanIWithContext(func(ctx context.Context, accumulator R, item T, _ int64) (context.Context, R) {
		return ctx, reduce(accumulator, item)
	}, seed)
}

// ScanWithContext applies an accumulator function over a Subscribable and emits each intermediate result.
func ScanWithContext[T, R any](reduce func(ctx context.Context, accumulator R, item T) (context.Context, R), seed R) func(Subscribable[T]) Subscribable[R] {
	return ScanIWithContext(func(ctx context.Context, accumulator R, item T, _ int64) (context.Context, R) {
		return reduce(ctx, accumulator, item)
	}, seed)
}

// ScanI applies an accumulator function over a Subscribable and emits each intermediate result.
func ScanI[T, R any](reduce func(accumulator R, item T, index int64) R, seed R) func(Subscribable[T]) Subscribable[R] {
	return ScanIWithContext(func(ctx context.Context, accumulator R, item T, index int64) (context.Context, R) {
		return ctx, reduce(accumulator, item, index)
	}, seed)
}

// ScanIWithContext applies an accumulator function over a Subscribable and emits each intermediate result.
func ScanIWithContext[T, R any](reduce func(ctx context.Context, accumulator R, item T, index int64) (context.Context, R), seed R) func(Subscribable[T]) Subscribable[R] {
	return func(source Subscribable[T]) Subscribable[R] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[R]) Teardown {
			accumulator := seed
			i := int64(0)

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						ctx, accumulator = reduce(ctx, accumulator, value, i)
						i++

						destination.NextWithContext(ctx, accumulator)
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

// GroupBy groups the items emitted by a Subscribable according to a specified criterion,
// and emits these grouped items as Subscribables.
func GroupBy[T any, K comparable](iteratee func(item T) K) func(Subscribable[T]) Subscribable[Subscribable[T]] {
	return GroupByIWithContext(func(ctx context.Context, item T, _ int64) (context.Context, K) {
		return ctx, iteratee(item)
	})
}

// GroupByWithContext groups the items emitted by a Subscribable according to a specified criterion,
// and emits these grouped items as Subscribables.
func GroupByWithContext[T any, K comparable](iteratee func(ctx context.Context, item T) (context.Context, K)) func(Subscribable[T]) Subscribable[Subscribable[T]] {
	return GroupByIWithContext(func(ctx context.Context, item T, _ int64) (context.Context, K) {
		return iteratee(ctx, item)
	})
}

// GroupByI groups the items emitted by a Subscribable according to a specified criterion,
// and emits these grouped items as Subscribables.
func GroupByI[T any, K comparable](iteratee func(item T, index int64) K) func(Subscribable[T]) Subscribable[Subscribable[T]] {
	return GroupByIWithContext(func(ctx context.Context, item T, index int64) (context.Context, K) {
		return ctx, iteratee(item, index)
	})
}

// GroupByIWithContext groups the items emitted by a Subscribable according to a specified criterion,
// and emits these grouped items as Subscribables.
func GroupByIWithContext[T any, K comparable](iteratee func(ctx context.Context, item T, index int64) (context.Context, K)) func(Subscribable[T]) Subscribable[Subscribable[T]] {
	return func(source Subscribable[T]) Subscribable[Subscribable[T]] {
		return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[Subscribable[T]]) Teardown {
			groups := sync.Map{}
			i := int64(0)

			notifyAll := func(cb func(Subscriber[T])) {
				groups.Range(func(key, value any) bool {
					cb(value.(Subscriber[T])) //nolint:errcheck,forcetypeassert
					return true
				})
			}

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						ctx, key := iteratee(ctx, value, i)
						i++

						g, ok := groups.Load(key)
						if ok {
							g.(Subscriber[T]).NextWithContext(ctx, value) //nolint:errcheck,forcetypeassert
						} else if !ok {
							subject := NewUnicastSubject[T](UnicastSubjectUnlimitedBufferSize)
							groups.Store(key, subject)
							subject.NextWithContext(ctx, value)
							destination.NextWithContext(ctx, subject)
						}
					},
					func(ctx context.Context, err error) {
						destination.ErrorWithContext(ctx, err)
						notifyAll(func(o Subscriber[T]) { o.ErrorWithContext(ctx, err) })

						groups = sync.Map{}
					},
					func(ctx context.Context) {
						destination.CompleteWithContext(ctx)
						notifyAll(func(o Subscriber[T]) { o.CompleteWithContext(ctx) })

						groups = sync.Map{}
					},
				),
			)

			return func() {
				sub.Dispose()
				notifyAll(func(o Subscriber[T]) { o.CompleteWithContext(context.TODO()) })

				groups = sync.Map{}
			}
		})
	}
}

// BufferWhen buffers the items emitted by a Subscribable until a second Subscribable emits an item.
// Then it emits the buffer and starts a new buffer. It repeats this process until the source Subscribable completes.
// If the boundary Subscribable completes, the buffer is emitted and the source Subscribable completes.
// If the source Subscribable errors, the error is propagated and the pending buffer is dropped.
func BufferWhen[T, B any](boundary Subscribable[B]) func(Subscribable[T]) Subscribable[[]T] {
	return func(source Subscribable[T]) Subscribable[[]T] {
		return NewSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[[]T]) Teardown {
			buffer := []T{}
			mu := xsync.NewMutexWithSpinlock()

			flush := func(ctx context.Context) {
				// send even if buffer is empty
				mu.Lock()

				tmp := buffer
				buffer = []T{}

				mu.Unlock()

				destination.NextWithContext(ctx, tmp)
			}

			subscriptions := NewDisposable(nil)

			subscriptions.AddDisposer(
				source.SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, value T) {
							mu.Lock()

							buffer = append(buffer, value)

							mu.Unlock()
						},
						destination.ErrorWithContext,
						func(ctx context.Context) {
							flush(ctx)
							destination.CompleteWithContext(ctx)
						},
					),
				),
			)

			subscriptions.AddDisposer(
				boundary.SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, value B) {
							flush(ctx)
						},
						destination.ErrorWithContext,
						func(ctx context.Context) {
							flush(ctx)
							destination.CompleteWithContext(ctx)
						},
					),
				),
			)

			return func() {
				subscriptions.Dispose()
				mu.Lock()

				buffer = []T{}

				mu.Unlock()
			}
		})
	}
}

// BufferWithTimeOrCount buffers the items emitted by a Subscribable for a specified time or count.
// It emits the buffer and starts a new buffer. It repeats this process until the source Subscribable completes.
// If the source Subscribable errors, the error is propagated and the pending buffer is dropped. If the source Subscribable completes,
// the buffer is emitted and the complete notification is propagated. If the specified time or count is reached,
// the buffer is emitted and a new buffer is started.
func BufferWithTimeOrCount[T any](size int, duration time.Duration) func(Subscribable[T]) Subscribable[[]T] {
	if size < 1 {
		panic(ErrBufferWithTimeOrCountWrongSize)
	}

	if duration <= 0 {
		panic(ErrBufferWithTimeOrCountWrongDuration)
	}

	return func(source Subscribable[T]) Subscribable[[]T] {
		return NewSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[[]T]) Teardown {
			buffer := []T{}
			mu := xsync.NewMutexWithSpinlock()

			flush := func(ctx context.Context) {
				// send even if buffer is empty
				mu.Lock()

				tmp := buffer
				buffer = []T{}

				mu.Unlock()

				destination.NextWithContext(ctx, tmp)
			}

			subscriptions := NewDisposable(nil)

			subscriptions.AddDisposer(
				source.SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, value T) {
							mu.Lock()

							buffer = append(buffer, value)
							isFull := len(buffer) >= size

							mu.Unlock()

							if isFull {
								flush(ctx)
							}
						},
						destination.ErrorWithContext,
						func(ctx context.Context) {
							flush(ctx)
							destination.CompleteWithContext(ctx)
						},
					),
				),
			)

			subscriptions.AddDisposer(
				Interval(duration).SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, value int64) {
							flush(ctx)
						},
						destination.ErrorWithContext,
						func(ctx context.Context) {
							flush(ctx)
							destination.CompleteWithContext(ctx)
						},
					),
				),
			)

			return func() {
				subscriptions.Dispose()
				mu.Lock()

				buffer = []T{}

				mu.Unlock()
			}
		})
	}
}

// BufferWithCount buffers the items emitted by a Subscribable until the buffer is full.
// Then it emits the buffer and starts a new buffer. It repeats this process until the
// source Subscribable completes. If the source Subscribable errors, the error is propagated
// and the pending buffer is dropped. If the source Subscribable completes, the buffer is emitted
// when it is not empty and the complete notification is propagated. If the specified count is reached, the buffer
// is emitted and a new buffer is started.
// Play: https://go.dev/play/p/IXhDtSybE4R
func BufferWithCount[T any](size int) func(Subscribable[T]) Subscribable[[]T] {
	if size < 1 {
		panic(ErrBufferWithCountWrongSize)
	}

	return func(source Subscribable[T]) Subscribable[[]T] {
		return NewSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[[]T]) Teardown {
			buffer := make([]T, 0, size)

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						buffer = append(buffer, value)
						if len(buffer) >= size {
							destination.NextWithContext(ctx, buffer)
							buffer = make([]T, 0, size)
						}
					},
					destination.ErrorWithContext,
					func(ctx context.Context) {
						if len(buffer) > 0 {
							destination.NextWithContext(ctx, buffer)
						}

						destination.CompleteWithContext(ctx)
					},
				),
			)

			return func() {
				sub.Dispose()

				buffer = []T{}
			}
		})
	}
}

// BufferWithTime buffers the items emitted by a Subscribable for a specified time.
// It emits the buffer and starts a new buffer. It repeats this process until the source
// Subscribable completes. If the source Subscribable errors, the error is propagated and the
// pending buffer is dropped. If the source Subscribable completes, the buffer is emitted and the complete
// notification is propagated. If the specified time is reached, the buffer is emitted and a new buffer is started.
func BufferWithTime[T any](duration time.Duration) func(Subscribable[T]) Subscribable[[]T] {
	if duration <= 0 {
		panic(ErrBufferWithTimeWrongDuration)
	}

	return BufferWhen[T](Interval(duration))
}

// WindowWhen emits a Subscribable that represents a window of items emitted by the source Subscribable.
// The window emits items when the specified boundary Subscribable emits an item. The window closes
// and a new window opens when the boundary Subscribable emits an item. If the source Subscribable completes,
// the window emits the complete notification and the complete notification is propagated. If the boundary
// Subscribable completes, the window emits the complete notification and the complete notification is propagated.
func WindowWhen[T, B any](boundary Subscribable[B]) func(Subscribable[T]) Subscribable[Subscribable[T]] {
	return func(source Subscribable[T]) Subscribable[Subscribable[T]] {
		return NewSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[Subscribable[T]]) Teardown {
			var window Subject[T]

			mu := xsync.MutexWithSpinlock{}

			flush := func(ctx context.Context, skipNew bool) {
				// reset Subscribable even if no notification were sent
				mu.Lock()

				tmp := window

				var newSubject Subject[T]
				if !skipNew {
					newSubject = NewUnicastSubject[T](UnicastSubjectUnlimitedBufferSize)
					window = newSubject
				}

				mu.Unlock()

				if tmp != nil { // nil on first call of flush()
					tmp.CompleteWithContext(ctx)
				}

				if !skipNew {
					destination.NextWithContext(ctx, newSubject)
				}
			}

			flush(subscriberCtx, false) // create and send first window

			subscriptions := NewDisposable(nil)

			subscriptions.AddDisposer(
				source.SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, value T) {
							mu.Lock()

							tmp := window

							mu.Unlock()

							tmp.NextWithContext(ctx, value)
						},
						func(ctx context.Context, err error) {
							flush(ctx, true)
							destination.ErrorWithContext(ctx, err)
						},
						func(ctx context.Context) {
							flush(ctx, true)
							destination.CompleteWithContext(ctx)
						},
					),
				),
			)

			subscriptions.AddDisposer(
				boundary.SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, value B) {
							flush(ctx, false)
						},
						func(ctx context.Context, err error) {
							flush(ctx, true)
							destination.ErrorWithContext(ctx, err)
						},
						func(ctx context.Context) {
							flush(ctx, true)
							destination.CompleteWithContext(ctx)
						},
					),
				),
			)

			return subscriptions.Dispose
		})
	}
}

// SampleWhen emits the most recently emitted value from the source Subscribable
// within a period determined by another Subscribable?
//
// Note that if the source Subscribable has emitted no items since the last
// time it was sampled, the Subscribable that results from this operator will
// emit no item for that sampling period.
func SampleWhen[T, t any](tick Subscribable[t]) func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			var last lo.Tuple2[context.Context, T]

			var hasValue bool

			mu := xsync.NewMutexWithSpinlock()

			subscriptions := NewDisposable(nil)

			subscriptions.AddDisposer(
				source.SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, value T) {
							mu.Lock()

							last = lo.T2(ctx, value)
							hasValue = true

							mu.Unlock()
						},
						destination.ErrorWithContext,
						destination.CompleteWithContext,
					),
				),
			)

			subscriptions.AddDisposer(
				tick.SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, value t) {
							mu.Lock()

							if hasValue {
								hasValue = false
								cOpy := last

								// will be executed after mutex unlock
								defer destination.NextWithContext(cOpy.A, cOpy.B)
							}

							mu.Unlock()
						},
						destination.ErrorWithContext,
						destination.CompleteWithContext,
					),
				),
			)

			return subscriptions.Dispose
		})
	}
}

// SampleTime emits the most recently emitted value from the source Subscribable
// within periodic time intervals.
//
// Note that if the source Subscribable has emitted no items since the last
// time it was sampled, the Subscribable that results from this operator will
// emit no item for that sampling period.
func SampleTime[T any](interval time.Duration) func(Subscribable[T]) Subscribable[T] {
	return SampleWhen[T](
		Interval(interval),
	)
}

// ThrottleWhen emits the first source value that arrives after each emission of
// another Subscribable, and ignores the other source values. Values that arrive
// before the first emission of the other Subscribable are ignored.
func ThrottleWhen[T, t any](tick Subscribable[t]) func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			// 0: don't send
			// 1: send
			var send int32

			atomic.StoreInt32(&send, 0)

			subscription := NewDisposable(nil)

			// We must subscribe to `tick` first: if a synchronous Next notification
			// is sent, the first value of `source` will be forward.
			subscription.AddDisposer(
				tick.SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, value t) {
							atomic.StoreInt32(&send, 1)
						},
						destination.ErrorWithContext,
						destination.CompleteWithContext,
					),
				),
			)

			subscription.AddDisposer(
				source.SubscribeWithContext(
					subscriberCtx,
					NewSubscriberWithContext(
						func(ctx context.Context, value T) {
							if atomic.CompareAndSwapInt32(&send, 1, 0) {
								destination.NextWithContext(ctx, value)
							}
						},
						destination.ErrorWithContext,
						destination.CompleteWithContext,
					),
				),
			)

			return subscription.Dispose
		})
	}
}

// ThrottleTime emits a value from the source Subscribable, then ignores subsequent source
// values for the given interval, then repeats this process.
func ThrottleTime[T any](interval time.Duration) func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[T]) Teardown {
			var lastAt time.Time

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						now := time.Now()
						if lastAt.IsZero() || now.Sub(lastAt) >= interval {
							lastAt = now

							destination.NextWithContext(ctx, value)
						}
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}
