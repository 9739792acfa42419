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

// SubscribeOnScheduler runs the upstream didSubscribe call on s, instead of
// on the subscribing goroutine. It only decides where the source begins
// producing: to retarget where events are delivered, use DeliverOn.
//
// Unlike SubscribeOn, which detaches upstream production from downstream
// consumption through a buffered channel, SubscribeOnScheduler simply defers
// the subscription side-effect to s and otherwise forwards events inline.
func SubscribeOnScheduler[T any](s Scheduler) func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
			composite := NewDisposable(nil)

			composite.AddDisposer(s.Schedule(func() {
				composite.AddDisposer(source.SubscribeWithContext(ctx, destination))
			}))

			return composite.Dispose
		})
	}
}

// DeliverOn re-emits every upstream event (next, error and completed alike)
// through a Work item scheduled on s, instead of forwarding it inline on the
// upstream's goroutine. Ordering relative to s is preserved when s is serial
// (e.g. MainScheduler); a non-serial scheduler (e.g. BackgroundScheduler) may
// reorder events scheduled concurrently from different upstream threads.
func DeliverOn[T any](s Scheduler) func(Subscribable[T]) Subscribable[T] {
	return func(source Subscribable[T]) Subscribable[T] {
		return NewSubscribableWithContext(func(ctx context.Context, destination Subscriber[T]) Teardown {
			sub := source.SubscribeWithContext(
				ctx,
				NewSubscriberWithContext(
					func(ctx context.Context, value T) {
						s.Schedule(func() { destination.NextWithContext(ctx, value) })
					},
					func(ctx context.Context, err error) {
						s.Schedule(func() { destination.ErrorWithContext(ctx, err) })
					},
					func(ctx context.Context) {
						s.Schedule(func() { destination.CompleteWithContext(ctx) })
					},
				),
			)

			return sub.Dispose
		})
	}
}
