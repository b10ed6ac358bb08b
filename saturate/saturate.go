// Package saturate provides integer arithmetic that clamps to the range of
// the operand type instead of wrapping. Commands that add, subtract, or
// multiply context values use it so that Execute can never overflow
package saturate

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Bounds returns the smallest and largest values representable by T
func Bounds[T constraints.Integer]() (lo, hi T) {
	if !signed[T]() {
		return 0, ^T(0)
	}
	bits := unsafe.Sizeof(T(0)) * 8
	lo = T(1) << (bits - 1)
	return lo, ^lo
}

// Add returns a+b, clamped to the range of T
func Add[T constraints.Integer](a, b T) T {
	lo, hi := Bounds[T]()
	switch {
	case b > 0 && a > hi-b:
		return hi
	case b < 0 && a < lo-b:
		return lo
	default:
		return a + b
	}
}

// Sub returns a-b, clamped to the range of T
func Sub[T constraints.Integer](a, b T) T {
	lo, hi := Bounds[T]()
	switch {
	case b < 0 && a > hi+b:
		return hi
	case b > 0 && a < lo+b:
		return lo
	default:
		return a - b
	}
}

// Mul returns a*b, clamped to the range of T
func Mul[T constraints.Integer](a, b T) T {
	if a == 0 || b == 0 {
		return 0
	}
	lo, hi := Bounds[T]()
	res := a * b
	overflow := res/b != a
	if signed[T]() && (a == lo && b == ^T(0) || b == lo && a == ^T(0)) {
		// lo * -1 wraps to lo, and lo / -1 == lo hides it
		overflow = true
	}
	if !overflow {
		return res
	}
	if (a < 0) != (b < 0) {
		return lo
	}
	return hi
}

func signed[T constraints.Integer]() bool {
	return ^T(0) < 0
}
