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

// ConnectableSubscribable is a Subscribable that can be connected and disconnected.
// When connected, it will emit values to its observers.
//
// ConnectableSubscribable is useful when you want to share a single subscription to a Subscribable
// among multiple observers. This is useful when you want to multicast the values of a Subscribable.
type ConnectableSubscribable[T any] interface {
	Subscribable[T]

	// Connect connects the ConnectableSubscribable. When connected, the ConnectableSubscribable
	// will emit values to its observers. If the ConnectableSubscribable is already connected,
	// this method returns the existing connection; a new subscription to the source is made
	// only when there is none or the previous one has been disposed.
	//
	// The Connect method returns a Disposable that can be used to disconnect the
	// ConnectableSubscribable. The Disposable may be used to cancel the connection,
	// and to wait for the connection to complete.
	//
	// The Disposable might be already disposed when the Connect method returns.
	Connect() Disposable
	ConnectWithContext(ctx context.Context) Disposable
}

var (
	_ ConnectableSubscribable[int] = (*connectableSubscribableImpl[int])(nil)
	_ Subscribable[int]            = (*connectableSubscribableImpl[int])(nil)
)

// ConnectableConfig is the configuration for a ConnectableSubscribable.
type ConnectableConfig[T any] struct {
	Connector         func() Subject[T]
	ResetOnDisconnect bool
}

func defaultConnector[T any]() Subject[T] {
	return NewPublishSubject[T]()
}

// NewConnectableSubscribable creates a new ConnectableSubscribable. The subscribe function is called when
// the ConnectableSubscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error, but not both.
// Upon completion or error, the ConnectableSubscribable will not emit any more items.
//
// The ConnectableSubscribable will use the default connector, which is a PublishSubject.
// The ConnectableSubscribable will reset the source when disconnected. This means that
// when the ConnectableSubscribable is disconnected, it will create a new source when
// reconnected.
//
// If you want to use a different connector or change the reset behavior, use
// NewConnectableSubscribableWithConfig.
func NewConnectableSubscribable[T any](subscribe func(destination Subscriber[T]) Teardown) ConnectableSubscribable[T] {
	return newConnectableSubscribableImpl(
		NewSubscribable(subscribe),
		ConnectableConfig[T]{
			Connector:         defaultConnector[T],
			ResetOnDisconnect: true,
		},
	)
}

// NewConnectableSubscribableWithContext creates a new ConnectableSubscribable. The subscribe function is called when
// the ConnectableSubscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error, but not both.
// Upon completion or error, the ConnectableSubscribable will not emit any more items.
//
// The ConnectableSubscribable will use the default connector, which is a PublishSubject.
// The ConnectableSubscribable will reset the source when disconnected. This means that
// when the ConnectableSubscribable is disconnected, it will create a new source when
// reconnected.
//
// If you want to use a different connector or change the reset behavior, use
// NewConnectableSubscribableWithConfig.
func NewConnectableSubscribableWithContext[T any](subscribe func(ctx context.Context, destination Subscriber[T]) Teardown) ConnectableSubscribable[T] {
	return newConnectableSubscribableImpl(
		NewSubscribableWithContext(subscribe),
		ConnectableConfig[T]{
			Connector:         defaultConnector[T],
			ResetOnDisconnect: true,
		},
	)
}

// NewConnectableSubscribableWithConfig creates a new ConnectableSubscribable. The subscribe function is called when
// the ConnectableSubscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error, but not both.
// Upon completion or error, the ConnectableSubscribable will not emit any more items.
//
// The ConnectableSubscribable will use the given connector. The ConnectableSubscribable will reset
// the source when disconnected if ResetOnDisconnect is true. This means that when the
// ConnectableSubscribable is disconnected, it will create a new source when reconnected.
func NewConnectableSubscribableWithConfig[T any](subscribe func(destination Subscriber[T]) Teardown, config ConnectableConfig[T]) ConnectableSubscribable[T] {
	return newConnectableSubscribableImpl(
		NewSubscribable(subscribe),
		config,
	)
}

// NewConnectableSubscribableWithConfigAndContext creates a new ConnectableSubscribable. The subscribe function is called when
// the ConnectableSubscribable is subscribed to. The subscribe function is given an Subscriber,
// to which it may emit any number of items, then may either complete or error, but not both.
// Upon completion or error, the ConnectableSubscribable will not emit any more items.
//
// The ConnectableSubscribable will use the given connector. The ConnectableSubscribable will reset
// the source when disconnected if ResetOnDisconnect is true. This means that when the
// ConnectableSubscribable is disconnected, it will create a new source when reconnected.
func NewConnectableSubscribableWithConfigAndContext[T any](subscribe func(ctx context.Context, destination Subscriber[T]) Teardown, config ConnectableConfig[T]) ConnectableSubscribable[T] {
	return newConnectableSubscribableImpl(
		NewSubscribableWithContext(subscribe),
		config,
	)
}

// Connectable creates a new ConnectableSubscribable from a Subscribable. The ConnectableSubscribable
// will use the default connector, which is a PublishSubject. The ConnectableSubscribable will reset
// the source when disconnected. This means that when the ConnectableSubscribable is disconnected,
// it will create a new source when reconnected.
//
// If you want to use a different connector or change the reset behavior, use ConnectableWithConfig.
func Connectable[T any](source Subscribable[T]) ConnectableSubscribable[T] {
	return newConnectableSubscribableImpl(
		source,
		ConnectableConfig[T]{
			Connector:         defaultConnector[T],
			ResetOnDisconnect: true,
		},
	)
}

// ConnectableWithConfig creates a new ConnectableSubscribable from a Subscribable. The ConnectableSubscribable
// will use the given connector. The ConnectableSubscribable will reset the source when disconnected
// if ResetOnDisconnect is true. This means that when the ConnectableSubscribable is disconnected,
// it will create a new source when reconnected.
func ConnectableWithConfig[T any](source Subscribable[T], config ConnectableConfig[T]) ConnectableSubscribable[T] {
	return newConnectableSubscribableImpl(
		source,
		config,
	)
}

// Multicast returns an operator that shares a single upstream subscription
// to source across every downstream subscriber of the resulting
// ConnectableSubscribable, using connector to build the Subject each
// subscriber's events flow through. Unlike Share/ShareWithConfig, the
// upstream subscription is not created implicitly on first subscribe: the
// caller must invoke Connect (or ConnectWithContext) explicitly.
func Multicast[T any](connector func() Subject[T]) func(Subscribable[T]) ConnectableSubscribable[T] {
	return func(source Subscribable[T]) ConnectableSubscribable[T] {
		return ConnectableWithConfig(source, ConnectableConfig[T]{
			Connector:         connector,
			ResetOnDisconnect: true,
		})
	}
}

// Publish is Multicast with a PublishSubject connector: downstream
// subscribers receive only the values emitted after Connect is called and
// after they subscribed, with no replay.
func Publish[T any]() func(Subscribable[T]) ConnectableSubscribable[T] {
	return Multicast[T](NewPublishSubject[T])
}

func newConnectableSubscribableImpl[T any](source Subscribable[T], config ConnectableConfig[T]) ConnectableSubscribable[T] {
	if config.Connector == nil {
		panic(ErrConnectableSubscribableMissingConnectorFactory)
	}

	return &connectableSubscribableImpl[T]{
		config:       config,
		source:       source,
		subject:      config.Connector(),
		subscription: nil,
	}
}

type connectableSubscribableImpl[T any] struct {
	mu           sync.Mutex
	config       ConnectableConfig[T]
	source       Subscribable[T]
	subject      Subject[T]
	subscription Disposable
}

// Connect connects the ConnectableSubscribable. When connected, the ConnectableSubscribable
// will emit values to its observers. If the ConnectableSubscribable is already connected,
// this method returns the existing connection; a new subscription to the source is made
// only when there is none or the previous one has been disposed.
//
// The Connect method returns a Disposable that can be used to disconnect the
// ConnectableSubscribable. The Disposable may be used to cancel the connection,
// and to wait for the connection to complete.
//
// The Disposable might be already disposed when the Connect method returns.
func (s *connectableSubscribableImpl[T]) Connect() Disposable {
	return s.ConnectWithContext(context.Background())
}

// ConnectWithContext connects the ConnectableSubscribable. When connected, the ConnectableSubscribable
// will emit values to its observers. If the ConnectableSubscribable is already connected,
// this method returns the existing connection; a new subscription to the source is made
// only when there is none or the previous one has been disposed.
//
// The Connect method returns a Disposable that can be used to disconnect the
// ConnectableSubscribable. The Disposable may be used to cancel the connection,
// and to wait for the connection to complete.
//
// The Disposable might be already disposed when the Connect method returns.
func (s *connectableSubscribableImpl[T]) ConnectWithContext(ctx context.Context) Disposable {
	s.mu.Lock()
	if s.subscription == nil || s.subscription.IsClosed() {
		s.subscription = s.source.SubscribeWithContext(ctx, s.subject)
		s.mu.Unlock()
		s.subscription.Add(func() {
			if s.config.ResetOnDisconnect {
				s.subject = s.config.Connector()
			}
		})
	} else {
		s.mu.Unlock()
	}

	return s.subscription
}

func (s *connectableSubscribableImpl[T]) Subscribe(observer Subscriber[T]) Disposable {
	return s.SubscribeWithContext(context.Background(), observer)
}

func (s *connectableSubscribableImpl[T]) SubscribeWithContext(ctx context.Context, observer Subscriber[T]) Disposable {
	return s.subject.SubscribeWithContext(ctx, observer)
}
