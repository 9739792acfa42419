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

// Package trace tags each subscription with a correlation ID, so that a
// single subscriber's notifications can be grouped together across whatever
// downstream log/metrics sink consumes them.
package trace

import (
	"context"

	"github.com/google/uuid"

	"github.com/flowkit/reactor"
)

type correlationIDKey struct{}

// CorrelationID returns the correlation ID attached to ctx by WithCorrelationID,
// if any.
func CorrelationID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(correlationIDKey{}).(uuid.UUID)
	return id, ok
}

// WithCorrelationID generates a fresh uuid.UUID on each subscription and
// attaches it to the context every notification carries downstream, so
// correlated notifications (belonging to the same subscription) can be
// grouped by log/metrics sinks regardless of how many operators sit between
// this point and them.
func WithCorrelationID[T any]() func(reactor.Subscribable[T]) reactor.Subscribable[T] {
	return func(source reactor.Subscribable[T]) reactor.Subscribable[T] {
		return reactor.NewUnsafeSubscribableWithContext(func(subscriberCtx context.Context, destination reactor.Subscriber[T]) reactor.Teardown {
			id := uuid.New()
			taggedCtx := context.WithValue(subscriberCtx, correlationIDKey{}, id)

			sub := source.SubscribeWithContext(taggedCtx, destination)

			return sub.Dispose
		})
	}
}
