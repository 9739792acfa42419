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

// CancelableSubscribable is a ConnectableSubscribable that additionally
// exposes an external Cancel trigger: calling Cancel forces every current
// and future subscriber to complete immediately, regardless of whether the
// source itself has terminated.
//
// It composes a ConnectableSubscribable with a cancellation Subject, the
// same way TakeUntil composes a source with a signal Subscribable, except
// the signal here is exposed to the caller instead of being another stream
// operator argument.
type CancelableSubscribable[T any] interface {
	ConnectableSubscribable[T]

	// Cancel forces completion of every subscriber. It is idempotent: calling
	// it more than once has no additional effect.
	Cancel()
}

var _ CancelableSubscribable[int] = (*cancelableSubscribableImpl[int])(nil)

// AsCancelable wraps source in a CancelableSubscribable using the default
// connector (a PublishSubject, no replay).
func AsCancelable[T any](source Subscribable[T]) CancelableSubscribable[T] {
	return AsCancelableWithConfig(source, ConnectableConfig[T]{
		Connector:         defaultConnector[T],
		ResetOnDisconnect: true,
	})
}

// AsCancelableWithConfig wraps source in a CancelableSubscribable using the
// given ConnectableConfig, e.g. to plug in a ReplaySubject connector.
func AsCancelableWithConfig[T any](source Subscribable[T], config ConnectableConfig[T]) CancelableSubscribable[T] {
	cancel := NewReplaySubject[struct{}](1)

	guarded := TakeUntil[T, struct{}](cancel.AsSubscribable())(source)

	return &cancelableSubscribableImpl[T]{
		ConnectableSubscribable: ConnectableWithConfig(guarded, config),
		cancel:                  cancel,
	}
}

type cancelableSubscribableImpl[T any] struct {
	ConnectableSubscribable[T]

	cancel Subject[struct{}]
}

func (s *cancelableSubscribableImpl[T]) Cancel() {
	s.cancel.NextWithContext(context.Background(), struct{}{})
	s.cancel.CompleteWithContext(context.Background())
}
