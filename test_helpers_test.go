// test_helpers_test.go - Shared element families and helpers for slotbox tests.

package slotbox_test

import (
	"math"
	"testing"
	"unsafe"
)

// =============================================================================
// The shape family
// =============================================================================

// Shape is the element family most tests store under.
type Shape interface {
	Area() float64
}

// Circle is the small family member.
type Circle struct {
	R float64
}

func (c *Circle) Area() float64 {
	return math.Pi * c.R * c.R
}

// Square is the large family member.
type Square struct {
	Side float64
	ID   uint64
}

func (s *Square) Area() float64 {
	return s.Side * s.Side
}

// Storage widths, declared with the constant pattern the package
// documentation recommends.
const (
	circleCap = unsafe.Sizeof(Circle{})
	shapeCap  = max(unsafe.Sizeof(Circle{}), unsafe.Sizeof(Square{}))
)

// CircleBuf holds a Circle and nothing larger.
type CircleBuf = [circleCap]byte

// ShapeBuf holds any shape family member.
type ShapeBuf = [shapeCap]byte

// Liquid is a family unrelated to shapes. No shape member implements it.
type Liquid interface {
	Volume() float64
}

// Beaker implements Liquid but not Shape.
type Beaker struct {
	ML float64
}

func (b *Beaker) Volume() float64 {
	return b.ML
}

// =============================================================================
// Panic capture helpers
// =============================================================================

// copiedSlotPanic is the copy guard's panic value.
const copiedSlotPanic = "slotbox: illegal use of non-zero Slot copied by value"

// capturePanic runs fn and returns the value it panicked with, or nil when fn
// returned normally.
func capturePanic(fn func()) (v any) {
	defer func() {
		v = recover()
	}()

	fn()

	return nil
}

// panicError runs fn, which must panic with an error, and returns that error.
func panicError(tb testing.TB, fn func()) error {
	tb.Helper()

	v := capturePanic(fn)
	if v == nil {
		tb.Fatal("expected a panic, got a normal return")
	}

	err, ok := v.(error)
	if !ok {
		tb.Fatalf("panic value is %T (%v), want an error", v, v)
	}

	return err
}

// panicMessage runs fn, which must panic with a string, and returns it.
func panicMessage(tb testing.TB, fn func()) string {
	tb.Helper()

	v := capturePanic(fn)
	if v == nil {
		tb.Fatal("expected a panic, got a normal return")
	}

	msg, ok := v.(string)
	if !ok {
		tb.Fatalf("panic value is %T (%v), want a string", v, v)
	}

	return msg
}
