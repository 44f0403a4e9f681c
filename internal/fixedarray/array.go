// Package fixedarray implements a fixed-size, bounds-checked array.
//
// It exists to back the per-alternative dispatch tables of the variant
// package, where the size is known when the table is built, and never
// changes.
package fixedarray

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type (
	// Array is a fixed-size array of T. The size is set by New, and cannot
	// change. The zero value is an empty array, which is valid, but not
	// useful.
	Array[T any] struct {
		s []T
	}

	// IndexOutOfRangeError is the panic value used for any out-of-range
	// access.
	IndexOutOfRangeError struct {
		Op    string
		Index int
		Size  int
	}
)

// New initializes an Array with size elements, each the zero value of T.
// A size <= 0 will cause a panic.
func New[T any](size int) *Array[T] {
	if size <= 0 {
		panic(`fixedarray: size must be greater than 0`)
	}
	return &Array[T]{s: make([]T, size)}
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf(`fixedarray: %s: index %d out of range [0, %d)`, e.Op, e.Index, e.Size)
}

// Size returns the (fixed) number of elements.
func (x *Array[T]) Size() int {
	return len(x.s)
}

// Data returns the backing slice, which has length Size.
func (x *Array[T]) Data() []T {
	return x.s
}

// At returns the element at index, panicking with *IndexOutOfRangeError if
// index is not in [0, Size).
func (x *Array[T]) At(index int) T {
	if index < 0 || index >= len(x.s) {
		panic(&IndexOutOfRangeError{Op: `at`, Index: index, Size: len(x.s)})
	}
	return x.s[index]
}

// Index converts any integer index to int, panicking with
// *IndexOutOfRangeError if it does not fit in [0, size).
func Index[I constraints.Integer](index I, size int) int {
	if index < 0 || uint64(index) >= uint64(size) {
		panic(&IndexOutOfRangeError{Op: `index`, Index: int(index), Size: size})
	}
	return int(index)
}
