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

// Package metrics wires prometheus counters and observers onto a
// Subscribable pipeline as side-effect operators.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/flowkit/reactor"
)

const (
	labelNameOperator         = "operator"
	labelNameOperatorPosition = "position"
	labelNameOperatorIndex    = "index"
)

// IncCounterOnNext increments counter each time the source emits a value.
func IncCounterOnNext[T any](counter prometheus.Counter) func(reactor.Subscribable[T]) reactor.Subscribable[T] {
	return func(source reactor.Subscribable[T]) reactor.Subscribable[T] {
		return reactor.NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination reactor.Subscriber[T]) reactor.Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				reactor.NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						counter.Inc()
						destination.NextWithContext(ctx, value)
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

// IncCounterOnError increments counter each time the source errors.
func IncCounterOnError[T any](counter prometheus.Counter) func(reactor.Subscribable[T]) reactor.Subscribable[T] {
	return func(source reactor.Subscribable[T]) reactor.Subscribable[T] {
		return reactor.NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination reactor.Subscriber[T]) reactor.Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				reactor.NewSubscriberWithContext(
					destination.NextWithContext,
					func(ctx context.Context, err error) {
						counter.Inc()
						destination.ErrorWithContext(ctx, err)
					},
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

// IncCounterOnComplete increments counter each time the source completes.
func IncCounterOnComplete[T any](counter prometheus.Counter) func(reactor.Subscribable[T]) reactor.Subscribable[T] {
	return func(source reactor.Subscribable[T]) reactor.Subscribable[T] {
		return reactor.NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination reactor.Subscriber[T]) reactor.Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				reactor.NewSubscriberWithContext(
					destination.NextWithContext,
					destination.ErrorWithContext,
					func(ctx context.Context) {
						counter.Inc()
						destination.CompleteWithContext(ctx)
					},
				),
			)

			return sub.Dispose
		})
	}
}

// IncCounterOnSubscription increments counter each time the pipeline gains a
// new subscriber.
func IncCounterOnSubscription[T any](counter prometheus.Counter) func(reactor.Subscribable[T]) reactor.Subscribable[T] {
	return func(source reactor.Subscribable[T]) reactor.Subscribable[T] {
		return reactor.NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination reactor.Subscriber[T]) reactor.Teardown {
			counter.Inc()

			sub := source.SubscribeWithContext(subscriberCtx, destination)
			return sub.Dispose
		})
	}
}

// ObserveNextLag records, into summaryOrHistogram, the time it takes the
// destination to process each next notification.
func ObserveNextLag[T any](summaryOrHistogram prometheus.Observer) func(reactor.Subscribable[T]) reactor.Subscribable[T] {
	return func(source reactor.Subscribable[T]) reactor.Subscribable[T] {
		return reactor.NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination reactor.Subscriber[T]) reactor.Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				reactor.NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						start := time.Now()
						destination.NextWithContext(ctx, value)
						summaryOrHistogram.Observe(time.Since(start).Seconds())
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}

type checkpointCtx struct{}

// ObserveOperatorProcessingTime records, per (operatorName, operatorPosition,
// operatorIndex) label set, the time elapsed since the previous checkpoint
// in the pipeline was reached. Chaining it after each operator in a Pipe
// turns summaryOrHistogram into a per-operator latency breakdown.
func ObserveOperatorProcessingTime[T any](summaryOrHistogram *prometheus.HistogramVec, operatorName string, operatorPosition string, operatorIndex int) func(reactor.Subscribable[T]) reactor.Subscribable[T] {
	observer := summaryOrHistogram.With(prometheus.Labels{
		labelNameOperator:         operatorName,
		labelNameOperatorPosition: operatorPosition,
		labelNameOperatorIndex:    strconv.Itoa(operatorIndex),
	})

	return func(source reactor.Subscribable[T]) reactor.Subscribable[T] {
		return reactor.NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination reactor.Subscriber[T]) reactor.Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				reactor.NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						now := time.Now()

						if start, ok := ctx.Value(checkpointCtx{}).(time.Time); ok {
							observer.Observe(now.Sub(start).Seconds())
						}

						ctx = context.WithValue(ctx, checkpointCtx{}, now)
						destination.NextWithContext(ctx, value)
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Dispose
		})
	}
}
