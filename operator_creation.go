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
	"math"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
)

// Of creates a Subscribable that emits some values you specify.
func Of[T any](values ...T) Subscribable[T] {
	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
		for _, v := range values {
			destination.NextWithContext(ctx, v)
		}

		destination.CompleteWithContext(ctx)

		return nil
	})
}

// Just is an alias for Of.
func Just[T any](values ...T) Subscribable[T] {
	return Of(values...)
}

// Start creates a Subscribable that emits lazily a single value.
func Start[T any](cb func() T) Subscribable[T] {
	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
		destination.NextWithContext(ctx, cb())
		destination.CompleteWithContext(ctx)

		return nil
	})
}

// Generate creates a Subscribable that paces its own production through
// scheduler instead of emitting all at once. It emits start, then repeatedly
// derives the following value by calling next on the previously emitted one,
// scheduling each emission as a separate unit of work on scheduler.
//
// If next is nil, Generate re-schedules start forever: it behaves like an
// infinite repeat of the seed value. Otherwise next returns the following
// value along with a bool: false ends the sequence with a Complete.
func Generate[T any](start T, next func(prev T) (T, bool), scheduler Scheduler) Subscribable[T] {
	return NewSafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
		var disposed int32

		var step func(value T)
		step = func(value T) {
			if atomic.LoadInt32(&disposed) != 0 {
				return
			}

			destination.NextWithContext(ctx, value)

			if atomic.LoadInt32(&disposed) != 0 {
				return
			}

			if next == nil {
				scheduler.Schedule(func() { step(value) })
				return
			}

			nextValue, ok := next(value)
			if !ok {
				destination.CompleteWithContext(ctx)
				return
			}

			scheduler.Schedule(func() { step(nextValue) })
		}

		scheduler.Schedule(func() { step(start) })

		return func() {
			atomic.StoreInt32(&disposed, 1)
		}
	})
}

// Timer creates a Subscribable that emits a value after a specified duration.
// Play: https://go.dev/play/p/G4HGY4DJ3Od
func Timer(duration time.Duration) Subscribable[time.Duration] {
	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[time.Duration]) Teardown {
		timer := time.NewTimer(duration)

		select {
		case <-timer.C:
			destination.NextWithContext(ctx, duration)
			destination.CompleteWithContext(ctx)
		case <-ctx.Done():
			if ctx.Err() != nil {
				destination.ErrorWithContext(ctx, ctx.Err())
				break
			}

			timer.Stop()
			destination.CompleteWithContext(ctx)
		}

		return nil
	})
}

// Interval creates a Subscribable that emits an infinite sequence of ascending
// integers, with a constant interval between them. The first value is not emitted
// immediately, but after the first interval has passed.
// Play: https://go.dev/play/p/7yskMPPFHA7
func Interval(interval time.Duration) Subscribable[int64] {
	return NewSubscribableWithContext(func(ctx context.Context, destination Subscriber[int64]) Teardown {
		ticker := time.NewTicker(interval)
		done := make(chan struct{})

		go recoverUnhandledError(func() {
			defer destination.CompleteWithContext(ctx)
			value := int64(0)

			for {
				select {
				case <-done:
					return
				case <-ctx.Done():
					return
				case _, ok := <-ticker.C:
					// `ok` is not expected to be false, because the go runtime will close the channel itself
					if ok {
						destination.NextWithContext(ctx, value)
						value++
					}
				}
			}
		})

		return func() {
			ticker.Stop()
			close(done)
		}
	})
}

// IntervalWithInitial creates a Subscribable that emits an infinite sequence of ascending
// integers, with a constant interval between them. The first value is not emitted immediately,
// but after the initial interval has passed. The first interval is `initial`, and the subsequent
// intervals are `interval`. The first value is emitted after `initial` time has passed.
func IntervalWithInitial(initial, interval time.Duration) Subscribable[int64] {
	return NewSubscribableWithContext(func(ctx context.Context, destination Subscriber[int64]) Teardown {
		ticker := time.NewTicker(initial * 2)
		timer := time.NewTimer(initial)
		done := make(chan struct{}, 1)

		value := int64(0)

		// Synchronous initial value when first tick must be triggered immediately.
		if initial == 0 {
			destination.NextWithContext(ctx, value)

			value++

			ticker.Reset(interval)
		}

		go recoverUnhandledError(func() {
			defer destination.CompleteWithContext(ctx)

			for {
				select {
				case <-done:
					return
				case <-ctx.Done():
					return
				case _, ok := <-timer.C:
					// `ok` is not expected to be false, because the go runtime will close the channel itself
					if ok && initial != 0 { // exclude initial tick when it is immediately
						destination.NextWithContext(ctx, value)
						value++

						ticker.Reset(interval)
					}
				case _, ok := <-ticker.C:
					// `ok` is not expected to be false, because the go runtime will close the channel itself
					if ok {
						destination.NextWithContext(ctx, value)
						value++
					}
				}
			}
		})

		return func() {
			ticker.Stop()
			timer.Stop()
			close(done)
		}
	})
}

// Range creates a Subscribable that emits a range of integers.
// The range is [start:end), so `start` is emitted but not `end`.
// If `start` is equal to `end`, an empty Subscribable is returned.
// If `start` is greater than `end`, the emitted values are in
// descending order. The step is 1.
func Range(start, end int64) Subscribable[int64] {
	sign := int64(1)

	if start == end {
		return Empty[int64]()
	} else if start > end {
		sign = -1
	}

	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[int64]) Teardown {
		cursor := start

		for cursor*sign < end*sign {
			destination.NextWithContext(ctx, cursor)
			cursor += sign
		}

		destination.CompleteWithContext(ctx)

		return nil
	})
}

// RangeWithStep creates a Subscribable that emits a range of floats.
// The range is [start:end), so `start` is emitted but not `end`.
// If `start` is equal to `end`, an empty Subscribable is returned.
// If `start` is greater than `end`, the emitted values are in
// descending order.
// The step must be greater than 0.
func RangeWithStep(start, end, step float64) Subscribable[float64] {
	sign := 1.0

	if start == end {
		return Empty[float64]()
	} else if start > end {
		sign = -1.0
	}

	if step <= 0 {
		panic(ErrRangeWithStepWrongStep)
	}

	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[float64]) Teardown {
		cursor := start

		for cursor*sign < end*sign {
			destination.NextWithContext(ctx, cursor)
			cursor += (step * sign)
		}

		destination.CompleteWithContext(ctx)

		return nil
	})
}

// RangeWithInterval creates a Subscribable that emits a range of integers.
// The range is [start:end), so `start` is emitted but not `end`.
// If `start` is equal to `end`, an empty Subscribable is returned.
// If `start` is greater than `end`, the emitted values are in
// descending order. The interval is the time between each value.
// The first value is emitted after the first interval has passed.
// The step is 1.
func RangeWithInterval(start, end int64, interval time.Duration) Subscribable[int64] {
	sign := int64(1)

	if start == end {
		return Empty[int64]()
	} else if start > end {
		sign = -1
	}

	return Pipe2(
		Interval(interval),
		Map(func(v int64) int64 {
			if start < end {
				return start + v
			}

			return start - v
		}),
		Take[int64]((end*sign)-(start*sign)),
	)
}

// RangeWithStepAndInterval creates a Subscribable that emits a range of floats.
// The range is [start:end), so `start` is emitted but not `end`.
// If `start` is equal to `end`, an empty Subscribable is returned.
// If `start` is greater than `end`, the emitted values are in
// descending order. The step must be greater than 0.
// The interval is the time between each value.
// The first value is emitted after the first interval has passed.
func RangeWithStepAndInterval(start, end, step float64, interval time.Duration) Subscribable[float64] {
	sign := 1.0

	if start == end {
		return Empty[float64]()
	} else if start > end {
		sign = -1.0
	}

	if step <= 0 {
		panic(ErrRangeWithStepAndIntervalWrongStep)
	}

	return Pipe2(
		Interval(interval),
		Map(func(v int64) float64 {
			return start + (float64(v) * sign * step)
		}),
		Take[float64](int64(math.Floor(((end*sign)-(start*sign))/(step)))),
	)
}

// Repeat creates a Subscribable that emits a single value multiple times.
// This is a creation operator. The pipeable equivalent is `RepeatWith`.
func Repeat[T any](item T, count int64) Subscribable[T] {
	if count < 0 {
		panic(ErrRepeatWrongCount)
	} else if count == 0 {
		return Empty[T]()
	}

	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
		for i := int64(0); i < count; i++ {
			destination.NextWithContext(ctx, item)
		}

		destination.CompleteWithContext(ctx)

		return nil
	})
}

// RepeatWithInterval creates a Subscribable that emits a single value multiple times.
// The interval is the time between each value. The first value is emitted
// after the first interval has passed.
func RepeatWithInterval[T any](item T, count int64, interval time.Duration) Subscribable[T] {
	if count < 0 {
		panic(ErrRepeatWithIntervalWrongCount)
	} else if count == 0 {
		return Empty[T]()
	}

	return Pipe1(
		RangeWithInterval(0, count, interval),
		Map(func(_ int64) T {
			return item
		}),
	)
}

// FromChannel creates a Subscribable from a channel. Closing the
// channel will complete the Subscribable.
func FromChannel[T any](in <-chan T) Subscribable[T] {
	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
		done := make(chan struct{})

		go recoverUnhandledError(func() {
			for {
				select {
				case item, ok := <-in:
					if !ok {
						destination.CompleteWithContext(ctx)
						return
					}

					destination.NextWithContext(ctx, item)
				case <-done:
					return
				}
			}
		})

		return func() {
			close(done)
		}
	})
}

// FromSlice creates a Subscribable from a slice. The values are emitted
// in the order they are in the slice.
func FromSlice[T any](collections ...[]T) Subscribable[T] {
	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
		for _, collection := range collections {
			for _, value := range collection {
				destination.NextWithContext(ctx, value)
			}
		}

		destination.CompleteWithContext(ctx)

		return nil
	})
}

// Empty creates a Subscribable that emits no values and completes immediately.
func Empty[T any]() Subscribable[T] {
	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
		destination.CompleteWithContext(ctx)

		return nil
	})
}

// Never creates a Subscribable that emits no values and never completes.
// This is useful for testing or when combining with other Subscribables.
func Never() Subscribable[struct{}] {
	return NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination Subscriber[struct{}]) Teardown {
		done := make(chan struct{})

		go func() {
			for {
				select {
				case <-subscriberCtx.Done():
					if subscriberCtx.Err() != nil {
						destination.ErrorWithContext(subscriberCtx, subscriberCtx.Err())
						return
					}

					destination.CompleteWithContext(subscriberCtx)
					return
				case <-done:
					return
				}
			}
		}()

		return func() {
			close(done)
		}
	})
}

// Throw creates a Subscribable that emits an error and completes immediately.
func Throw[T any](err error) Subscribable[T] {
	// `nil` is a valid value for `err`
	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
		destination.ErrorWithContext(ctx, err)

		return nil
	})
}

// Defer creates a Subscribable that waits until an Subscriber subscribes to it,
// and then it creates a Subscribable for each Subscriber. This is useful for
// creating Subscribables that depend on some external state that is not
// available at the time of creation. The `factory` function is called for each
// Subscriber that subscribes to the Subscribable.
func Defer[T any](factory func() Subscribable[T]) Subscribable[T] {
	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
		sub := factory().SubscribeWithContext(ctx, destination)

		return sub.Dispose
	})
}

// Future creates a Subscribable that waits until an Subscriber subscribes to it,
// and then it emits either a value or an error, returned by the `factory` function.
//
// This is useful for creating Subscribables that depend on some external state
// that is not available at the time of creation. The `factory` function is called
// for each Subscriber that subscribes to the Subscribable.
func Future[T any](factory func() (T, error)) Subscribable[T] {
	return NewUnsafeSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
		go func() {
			v, err := factory()
			if err != nil {
				destination.ErrorWithContext(ctx, err)
				return
			}

			destination.NextWithContext(ctx, v)
			destination.CompleteWithContext(ctx)
		}()

		return nil
	})
}

// Merge merges the values from all observables to a single observable result.
// It subscribes to each inner Subscribable, and emits all values
// from each inner Subscribable, maintaining their order. It completes when all
// inner Subscribables are done.
func Merge[T any](sources ...Subscribable[T]) Subscribable[T] {
	return MergeAll[T]()(Just(sources...))
}

// CombineLatest2 combines the values from the source Subscribable with the latest
// values from the other Subscribables. It will only emit when all Subscribables have
// emitted at least one value. It completes once all Subscribables have completed.
func CombineLatest2[A, B any](obsA Subscribable[A], obsB Subscribable[B]) Subscribable[lo.Tuple2[A, B]] {
	return CombineLatestWith1[A](obsB)(obsA)
}

// CombineLatest3 combines the values from the source Subscribable with the latest
// values from the other Subscribables. It will only emit when all Subscribables have
// emitted at least one value. It completes once all Subscribables have completed.
func CombineLatest3[A, B, C any](obsA Subscribable[A], obsB Subscribable[B], obsC Subscribable[C]) Subscribable[lo.Tuple3[A, B, C]] {
	return CombineLatestWith2[A](obsB, obsC)(obsA)
}

// CombineLatest4 combines the values from the source Subscribable with the latest
// values from the other Subscribables. It will only emit when all Subscribables have
// emitted at least one value. It completes once all Subscribables have completed.
func CombineLatest4[A, B, C, D any](obsA Subscribable[A], obsB Subscribable[B], obsC Subscribable[C], obsD Subscribable[D]) Subscribable[lo.Tuple4[A, B, C, D]] {
	return CombineLatestWith3[A](obsB, obsC, obsD)(obsA)
}

// CombineLatest5 combines the values from the source Subscribable with the latest
// values from the other Subscribables. It will only emit when all Subscribables have
// emitted at least one value. It completes once all Subscribables have completed.
func CombineLatest5[A, B, C, D, E any](obsA Subscribable[A], obsB Subscribable[B], obsC Subscribable[C], obsD Subscribable[D], obsE Subscribable[E]) Subscribable[lo.Tuple5[A, B, C, D, E]] {
	return CombineLatestWith4[A](obsB, obsC, obsD, obsE)(obsA)
}

// CombineLatestAny combines the values from the source Subscribable with the latest
// values from the other Subscribables. It will only emit when all Subscribables have
// emitted at least one value. It completes once all Subscribables have completed.
func CombineLatestAny(sources ...Subscribable[any]) Subscribable[[]any] {
	return CombineLatestAllAny()(Just(sources...))
}

// Zip combines the values from the given Subscribables by position: the nth
// emission of each Subscribable forms the nth result. It completes once any
// Subscribable has completed and all of its values have been paired.
func Zip[T any](sources ...Subscribable[T]) Subscribable[[]T] {
	return ZipAll[T]()(Just(sources...))
}

// Zip2 combines the values from the given Subscribables by position: the nth
// emission of each Subscribable forms the nth result. It completes once any
// Subscribable has completed and all of its values have been paired.
func Zip2[A, B any](obsA Subscribable[A], obsB Subscribable[B]) Subscribable[lo.Tuple2[A, B]] {
	return ZipWith1[A](obsB)(obsA)
}

// Zip3 combines the values from the given Subscribables by position: the nth
// emission of each Subscribable forms the nth result. It completes once any
// Subscribable has completed and all of its values have been paired.
func Zip3[A, B, C any](obsA Subscribable[A], obsB Subscribable[B], obsC Subscribable[C]) Subscribable[lo.Tuple3[A, B, C]] {
	return ZipWith2[A](obsB, obsC)(obsA)
}

// Zip4 combines the values from the given Subscribables by position: the nth
// emission of each Subscribable forms the nth result. It completes once any
// Subscribable has completed and all of its values have been paired.
func Zip4[A, B, C, D any](obsA Subscribable[A], obsB Subscribable[B], obsC Subscribable[C], obsD Subscribable[D]) Subscribable[lo.Tuple4[A, B, C, D]] {
	return ZipWith3[A](obsB, obsC, obsD)(obsA)
}

// Zip5 combines the values from the given Subscribables by position: the nth
// emission of each Subscribable forms the nth result. It completes once any
// Subscribable has completed and all of its values have been paired.
func Zip5[A, B, C, D, E any](obsA Subscribable[A], obsB Subscribable[B], obsC Subscribable[C], obsD Subscribable[D], obsE Subscribable[E]) Subscribable[lo.Tuple5[A, B, C, D, E]] {
	return ZipWith4[A](obsB, obsC, obsD, obsE)(obsA)
}

// Zip6 combines the values from the given Subscribables by position: the nth
// emission of each Subscribable forms the nth result. It completes once any
// Subscribable has completed and all of its values have been paired.
func Zip6[A, B, C, D, E, F any](obsA Subscribable[A], obsB Subscribable[B], obsC Subscribable[C], obsD Subscribable[D], obsE Subscribable[E], obsF Subscribable[F]) Subscribable[lo.Tuple6[A, B, C, D, E, F]] {
	return ZipWith5[A](obsB, obsC, obsD, obsE, obsF)(obsA)
}

// Concat concatenates the source Subscribable with other Subscribables. It subscribes
// to each inner Subscribable only after the previous one completes, maintaining their
// order. It completes when all inner Subscribables are done.
func Concat[T any](obs ...Subscribable[T]) Subscribable[T] {
	return ConcatAll[T]()(Just(obs...))
}

// Race creates a Subscribable that mirrors the first source Subscribable to
// emit a next, error or complete notification from the combination of the
// Subscribable sources. It cancels the subscriptions to all other Subscribables.
// It completes when the source Subscribable completes. If the source Subscribable
// emits an error, the error is emitted by the resulting Subscribable.
func Race[T any](sources ...Subscribable[T]) Subscribable[T] {
	if len(sources) == 0 {
		return Empty[T]()
	}

	return RaceWith(sources[1:]...)(sources[0])
}

// Amb is an alias for Race.
func Amb[T any](sources ...Subscribable[T]) Subscribable[T] {
	return Race(sources...)
}

