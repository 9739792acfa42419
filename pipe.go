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
	"reflect"
)

// Pipe builds a composition of operators that will be chained to transform
// a stream. It provides a clean, declarative way to describe complex
// asynchronous operations.
//
// `PipeX()` should be favored over `Pipe()`, because it offers more type-safety.
// Typed variants are generated up to 12 operators (Pipe1..Pipe12); chains
// needing more stages should be split into multiple Pipe calls or fall back
// to the untyped Pipe(), since Go generics provide no variadic type
// parameters to generate an arbitrary arity from a single declaration.
//
// `PipeOp()` is the operator version of `Pipe()`.
func Pipe[First, Last any](source Subscribable[First], operators ...any) Subscribable[Last] {
	o := reflect.ValueOf(source)

	// Since generic type can vary for each operator, we decided to use reflection and validate
	// types at runtime. Type is not check for each message but only at Pipe() call.
	// This is a peace of shit. If anybody find a better way to do it, please contribute!!
	for _, operator := range operators {
		funcValue := reflect.ValueOf(operator)

		// check operator is a function with 1 input and 1 output
		if funcValue.Type().Kind() != reflect.Func || funcValue.Type().NumIn() != 1 || funcValue.Type().NumOut() != 1 {
			panic(newPipeError("%s is not an operator", funcValue.Type()))
		}
		// check operator input implements Subscribable[T]
		if funcValue.Type().In(0).Kind() != reflect.Interface {
			panic(newPipeError("%s does not implements Subscribable[T]", funcValue.Type().In(0)))
		}
		// check operator output implements Subscribable[T]
		if funcValue.Type().Out(0).Kind() != reflect.Interface {
			panic(newPipeError("%s does not implements Subscribable[T]", funcValue.Type().Out(0)))
		}
		// check operator input implements source Subscribable[T]
		if !o.Type().Implements(funcValue.Type().In(0)) {
			panic(newPipeError("%s does not implements %s", o.Type(), funcValue.Type().In(0)))
		}

		o = funcValue.Call([]reflect.Value{o})[0]
	}

	// check operator output implements destination Subscribable[T]
	mock := reflect.TypeOf((*Subscribable[Last])(nil)).Elem()
	if !o.Type().Implements(mock) {
		panic(newPipeError("%s does not implements %s", o.Type(), mock))
	}

	v, _ := o.Interface().(Subscribable[Last])

	return v
}

// Pipe1 is a typesafe 🎉 implementation of Pipe, that takes a source and 1 operator.
//
// `PipeOp1()` is the operator version of `Pipe1()`.
func Pipe1[A, B any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
) Subscribable[B] {
	return operator1(source)
}

// Pipe2 is a typesafe 🎉 implementation of Pipe, that takes a source and 2 operators.
//
// `PipeOp2()` is the operator version of `Pipe2()`.
func Pipe2[A, B, C any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
) Subscribable[C] {
	return operator2(
		operator1(source),
	)
}

// Pipe3 is a typesafe 🎉 implementation of Pipe, that takes a source and 3 operators.
//
// `PipeOp3()` is the operator version of `Pipe3()`.
func Pipe3[A, B, C, D any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
) Subscribable[D] {
	return operator3(
		operator2(
			operator1(source),
		),
	)
}

// Pipe4 is a typesafe 🎉 implementation of Pipe, that takes a source and 4 operators.
//
// `PipeOp4()` is the operator version of `Pipe4()`.
func Pipe4[A, B, C, D, E any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
) Subscribable[E] {
	return operator4(
		operator3(
			operator2(
				operator1(source),
			),
		),
	)
}

// Pipe5 is a typesafe 🎉 implementation of Pipe, that takes a source and 5 operators.
//
// `PipeOp5()` is the operator version of `Pipe5()`.
func Pipe5[A, B, C, D, E, F any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
) Subscribable[F] {
	return operator5(
		operator4(
			operator3(
				operator2(
					operator1(source),
				),
			),
		),
	)
}

// Pipe6 is a typesafe 🎉 implementation of Pipe, that takes a source and 6 operators.
//
// `PipeOp6()` is the operator version of `Pipe6()`.
func Pipe6[A, B, C, D, E, F, G any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
) Subscribable[G] {
	return operator6(
		operator5(
			operator4(
				operator3(
					operator2(
						operator1(source),
					),
				),
			),
		),
	)
}

// Pipe7 is a typesafe 🎉 implementation of Pipe, that takes a source and 7 operators.
//
// `PipeOp7()` is the operator version of `Pipe7()`.
func Pipe7[A, B, C, D, E, F, G, H any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
) Subscribable[H] {
	return operator7(
		operator6(
			operator5(
				operator4(
					operator3(
						operator2(
							operator1(source),
						),
					),
				),
			),
		),
	)
}

// Pipe8 is a typesafe 🎉 implementation of Pipe, that takes a source and 8 operators.
//
// `PipeOp8()` is the operator version of `Pipe8()`.
func Pipe8[A, B, C, D, E, F, G, H, I any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
	operator8 func(Subscribable[H]) Subscribable[I],
) Subscribable[I] {
	return operator8(
		operator7(
			operator6(
				operator5(
					operator4(
						operator3(
							operator2(
								operator1(source),
							),
						),
					),
				),
			),
		),
	)
}

// Pipe9 is a typesafe 🎉 implementation of Pipe, that takes a source and 9 operators.
//
// `PipeOp9()` is the operator version of `Pipe9()`.
func Pipe9[A, B, C, D, E, F, G, H, I, J any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
	operator8 func(Subscribable[H]) Subscribable[I],
	operator9 func(Subscribable[I]) Subscribable[J],
) Subscribable[J] {
	return operator9(
		operator8(
			operator7(
				operator6(
					operator5(
						operator4(
							operator3(
								operator2(
									operator1(source),
								),
							),
						),
					),
				),
			),
		),
	)
}

// Pipe10 is a typesafe 🎉 implementation of Pipe, that takes a source and 10 operators.
//
// `PipeOp10()` is the operator version of `Pipe10()`.
func Pipe10[A, B, C, D, E, F, G, H, I, J, K any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
	operator8 func(Subscribable[H]) Subscribable[I],
	operator9 func(Subscribable[I]) Subscribable[J],
	operator10 func(Subscribable[J]) Subscribable[K],
) Subscribable[K] {
	return operator10(
		operator9(
			operator8(
				operator7(
					operator6(
						operator5(
							operator4(
								operator3(
									operator2(
										operator1(source),
									),
								),
							),
						),
					),
				),
			),
		),
	)
}

// Pipe11 is a typesafe 🎉 implementation of Pipe, that takes a source and 11 operators.
//
// `PipeOp11()` is the operator version of `Pipe11()`.
func Pipe11[A, B, C, D, E, F, G, H, I, J, K, L any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
	operator8 func(Subscribable[H]) Subscribable[I],
	operator9 func(Subscribable[I]) Subscribable[J],
	operator10 func(Subscribable[J]) Subscribable[K],
	operator11 func(Subscribable[K]) Subscribable[L],
) Subscribable[L] {
	return operator11(
		operator10(
			operator9(
				operator8(
					operator7(
						operator6(
							operator5(
								operator4(
									operator3(
										operator2(
											operator1(source),
										),
									),
								),
							),
						),
					),
				),
			),
		),
	)
}

// Pipe12 is a typesafe 🎉 implementation of Pipe, that takes a source and 12 operators.
//
// `PipeOp12()` is the operator version of `Pipe12()`.
func Pipe12[A, B, C, D, E, F, G, H, I, J, K, L, M any](
	source Subscribable[A],
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
	operator8 func(Subscribable[H]) Subscribable[I],
	operator9 func(Subscribable[I]) Subscribable[J],
	operator10 func(Subscribable[J]) Subscribable[K],
	operator11 func(Subscribable[K]) Subscribable[L],
	operator12 func(Subscribable[L]) Subscribable[M],
) Subscribable[M] {
	return operator12(
		operator11(
			operator10(
				operator9(
					operator8(
						operator7(
							operator6(
								operator5(
									operator4(
										operator3(
											operator2(
												operator1(source),
											),
										),
									),
								),
							),
						),
					),
				),
			),
		),
	)
}

// PipeOp is similar to Pipe, but can be used as an operator.
func PipeOp[First, Last any](operators ...any) func(Subscribable[First]) Subscribable[Last] {
	return func(source Subscribable[First]) Subscribable[Last] {
		return Pipe[First, Last](source, operators...)
	}
}

// PipeOp1 is similar to Pipe1, but can be used as an operator.
func PipeOp1[A, B any](
	operator1 func(Subscribable[A]) Subscribable[B],
) func(Subscribable[A]) Subscribable[B] {
	return func(source Subscribable[A]) Subscribable[B] {
		return Pipe1(
			source,
			operator1,
		)
	}
}

// PipeOp2 is similar to Pipe2, but can be used as an operator.
func PipeOp2[A, B, C any](
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
) func(Subscribable[A]) Subscribable[C] {
	return func(source Subscribable[A]) Subscribable[C] {
		return Pipe2(
			source,
			operator1,
			operator2,
		)
	}
}

// PipeOp3 is similar to Pipe3, but can be used as an operator.
func PipeOp3[A, B, C, D any](
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
) func(Subscribable[A]) Subscribable[D] {
	return func(source Subscribable[A]) Subscribable[D] {
		return Pipe3(
			source,
			operator1,
			operator2,
			operator3,
		)
	}
}

// PipeOp4 is similar to Pipe4, but can be used as an operator.
func PipeOp4[A, B, C, D, E any](
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
) func(Subscribable[A]) Subscribable[E] {
	return func(source Subscribable[A]) Subscribable[E] {
		return Pipe4(
			source,
			operator1,
			operator2,
			operator3,
			operator4,
		)
	}
}

// PipeOp5 is similar to Pipe5, but can be used as an operator.
func PipeOp5[A, B, C, D, E, F any](
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
) func(Subscribable[A]) Subscribable[F] {
	return func(source Subscribable[A]) Subscribable[F] {
		return Pipe5(
			source,
			operator1,
			operator2,
			operator3,
			operator4,
			operator5,
		)
	}
}

// PipeOp6 is similar to Pipe6, but can be used as an operator.
func PipeOp6[A, B, C, D, E, F, G any](
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
) func(Subscribable[A]) Subscribable[G] {
	return func(source Subscribable[A]) Subscribable[G] {
		return Pipe6(
			source,
			operator1,
			operator2,
			operator3,
			operator4,
			operator5,
			operator6,
		)
	}
}

// PipeOp7 is similar to Pipe7, but can be used as an operator.
func PipeOp7[A, B, C, D, E, F, G, H any](
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
) func(Subscribable[A]) Subscribable[H] {
	return func(source Subscribable[A]) Subscribable[H] {
		return Pipe7(
			source,
			operator1,
			operator2,
			operator3,
			operator4,
			operator5,
			operator6,
			operator7,
		)
	}
}

// PipeOp8 is similar to Pipe8, but can be used as an operator.
func PipeOp8[A, B, C, D, E, F, G, H, I any](
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
	operator8 func(Subscribable[H]) Subscribable[I],
) func(Subscribable[A]) Subscribable[I] {
	return func(source Subscribable[A]) Subscribable[I] {
		return Pipe8(
			source,
			operator1,
			operator2,
			operator3,
			operator4,
			operator5,
			operator6,
			operator7,
			operator8,
		)
	}
}

// PipeOp9 is similar to Pipe9, but can be used as an operator.
func PipeOp9[A, B, C, D, E, F, G, H, I, J any](
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
	operator8 func(Subscribable[H]) Subscribable[I],
	operator9 func(Subscribable[I]) Subscribable[J],
) func(Subscribable[A]) Subscribable[J] {
	return func(source Subscribable[A]) Subscribable[J] {
		return Pipe9(
			source,
			operator1,
			operator2,
			operator3,
			operator4,
			operator5,
			operator6,
			operator7,
			operator8,
			operator9,
		)
	}
}

// PipeOp10 is similar to Pipe10, but can be used as an operator.
func PipeOp10[A, B, C, D, E, F, G, H, I, J, K any](
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
	operator8 func(Subscribable[H]) Subscribable[I],
	operator9 func(Subscribable[I]) Subscribable[J],
	operator10 func(Subscribable[J]) Subscribable[K],
) func(Subscribable[A]) Subscribable[K] {
	return func(source Subscribable[A]) Subscribable[K] {
		return Pipe10(
			source,
			operator1,
			operator2,
			operator3,
			operator4,
			operator5,
			operator6,
			operator7,
			operator8,
			operator9,
			operator10,
		)
	}
}

// PipeOp11 is similar to Pipe11, but can be used as an operator.
func PipeOp11[A, B, C, D, E, F, G, H, I, J, K, L any](
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
	operator8 func(Subscribable[H]) Subscribable[I],
	operator9 func(Subscribable[I]) Subscribable[J],
	operator10 func(Subscribable[J]) Subscribable[K],
	operator11 func(Subscribable[K]) Subscribable[L],
) func(Subscribable[A]) Subscribable[L] {
	return func(source Subscribable[A]) Subscribable[L] {
		return Pipe11(
			source,
			operator1,
			operator2,
			operator3,
			operator4,
			operator5,
			operator6,
			operator7,
			operator8,
			operator9,
			operator10,
			operator11,
		)
	}
}

// PipeOp12 is similar to Pipe12, but can be used as an operator.
func PipeOp12[A, B, C, D, E, F, G, H, I, J, K, L, M any](
	operator1 func(Subscribable[A]) Subscribable[B],
	operator2 func(Subscribable[B]) Subscribable[C],
	operator3 func(Subscribable[C]) Subscribable[D],
	operator4 func(Subscribable[D]) Subscribable[E],
	operator5 func(Subscribable[E]) Subscribable[F],
	operator6 func(Subscribable[F]) Subscribable[G],
	operator7 func(Subscribable[G]) Subscribable[H],
	operator8 func(Subscribable[H]) Subscribable[I],
	operator9 func(Subscribable[I]) Subscribable[J],
	operator10 func(Subscribable[J]) Subscribable[K],
	operator11 func(Subscribable[K]) Subscribable[L],
	operator12 func(Subscribable[L]) Subscribable[M],
) func(Subscribable[A]) Subscribable[M] {
	return func(source Subscribable[A]) Subscribable[M] {
		return Pipe12(
			source,
			operator1,
			operator2,
			operator3,
			operator4,
			operator5,
			operator6,
			operator7,
			operator8,
			operator9,
			operator10,
			operator11,
			operator12,
		)
	}
}

