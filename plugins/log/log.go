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

// Package log wires structured zap logging onto a Subscribable pipeline as a
// pair of side-effect operators.
package log

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/flowkit/reactor"
	"github.com/flowkit/reactor/plugins/trace"
)

// correlationField returns the zap field carrying the subscription's
// correlation ID, when ctx was tagged upstream by trace.WithCorrelationID.
func correlationField(ctx context.Context) []zap.Field {
	if id, ok := trace.CorrelationID(ctx); ok {
		return []zap.Field{zap.Stringer("correlation_id", id)}
	}

	return nil
}

// Log logs every next/error/complete notification at the given level.
func Log[T any](logger *zap.Logger, level zapcore.Level) func(reactor.Subscribable[T]) reactor.Subscribable[T] {
	return reactor.TapWithContext(
		func(ctx context.Context, value T) {
			logger.Log(level, fmt.Sprintf("reactor.Next: %v", value), correlationField(ctx)...)
		},
		func(ctx context.Context, err error) {
			logger.Log(level, fmt.Sprintf("reactor.Error: %s", err.Error()), correlationField(ctx)...)
		},
		func(ctx context.Context) {
			logger.Log(level, "reactor.Complete", correlationField(ctx)...)
		},
	)
}

// LogWithNotification is Log, except it attaches the value/error as
// structured zap fields instead of formatting them into the message.
func LogWithNotification[T any](logger *zap.Logger, level zapcore.Level) func(reactor.Subscribable[T]) reactor.Subscribable[T] {
	return reactor.TapWithContext(
		func(ctx context.Context, value T) {
			logger.Log(level, "reactor.Next", append([]zap.Field{zap.Any("value", value)}, correlationField(ctx)...)...)
		},
		func(ctx context.Context, err error) {
			logger.Log(level, "reactor.Error", append([]zap.Field{zap.Error(err)}, correlationField(ctx)...)...)
		},
		func(ctx context.Context) {
			logger.Log(level, "reactor.Complete", correlationField(ctx)...)
		},
	)
}

// LogWithFields is LogWithNotification, except the structured fields
// attached to the Next log line are produced by extract instead of a plain
// zap.Any("value", ...), for pipelines whose payload benefits from a
// flattened field set (e.g. a struct logged field-by-field).
func LogWithFields[T any](logger *zap.Logger, level zapcore.Level, extract func(value T) []zap.Field) func(reactor.Subscribable[T]) reactor.Subscribable[T] {
	return reactor.TapWithContext(
		func(ctx context.Context, value T) {
			logger.Log(level, "reactor.Next", append(extract(value), correlationField(ctx)...)...)
		},
		func(ctx context.Context, err error) {
			logger.Log(level, "reactor.Error", append([]zap.Field{zap.Error(err)}, correlationField(ctx)...)...)
		},
		func(ctx context.Context) {
			logger.Log(level, "reactor.Complete", correlationField(ctx)...)
		},
	)
}

// FatalOnError logs and calls os.Exit(1) via zap.Logger.Fatal whenever the
// source errors. It never fires on next or complete.
func FatalOnError[T any](logger *zap.Logger) func(reactor.Subscribable[T]) reactor.Subscribable[T] {
	return reactor.TapOnErrorWithContext[T](
		func(ctx context.Context, err error) {
			logger.Fatal("reactor.Error", zap.Error(err))
		},
	)
}
