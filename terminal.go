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

// FirstValue blocks until source emits its first item (or terminates) and
// returns it. If source is empty, it returns ErrHeadEmpty. If source errors
// before emitting, it returns that error.
//
// This is the blocking counterpart of Head: it composes Head with Collect
// rather than re-implementing a blocking wait. Per contract, it does not
// surface partial progress: the caller either gets exactly one value or an
// error.
func FirstValue[T any](source Subscribable[T]) (T, error) {
	values, err := Collect(Head[T]()(source))
	if err != nil {
		var zero T
		return zero, err
	}

	return values[0], nil
}

// FirstValueOrDefault is FirstValue, except an empty source yields
// defaultValue instead of ErrHeadEmpty.
func FirstValueOrDefault[T any](source Subscribable[T], defaultValue T) (T, error) {
	values, err := Collect(DefaultIfEmpty(defaultValue)(Head[T]()(source)))
	if err != nil {
		var zero T
		return zero, err
	}

	return values[0], nil
}

// ToArray blocks until source terminates and returns every item it emitted.
// On error, it returns the items collected so far without surfacing the
// error: callers that need to distinguish a partial array from a complete
// one should subscribe directly instead.
func ToArray[T any](source Subscribable[T]) []T {
	values, _ := Collect(source)
	return values
}

// ToArrayOrError is ToArray, except it additionally returns the terminal
// error, if any, alongside whatever prefix of items was collected before it.
func ToArrayOrError[T any](source Subscribable[T]) ([]T, error) {
	return Collect(source)
}
