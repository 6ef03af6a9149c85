package slotbox

import (
	"reflect"
	"unsafe"

	"github.com/calvinalkan/slotbox/internal/layout"
)

// SizeOf returns unsafe.Sizeof for T as an int.
//
// It exists for assertions and diagnostics, not for declaring storage: a
// generic function's result is never a Go constant, so array lengths come
// from the constant pattern instead:
//
//	const shapeCap = max(unsafe.Sizeof(Circle{}), unsafe.Sizeof(Square{}))
//	type ShapeBuf = [shapeCap]byte
func SizeOf[T any]() int {
	var v T

	return int(unsafe.Sizeof(v))
}

// AlignOf returns unsafe.Alignof for T as an int.
func AlignOf[T any]() int {
	var v T

	return int(unsafe.Alignof(v))
}

// Fits reports whether T satisfies storage B's shape requirements: size,
// alignment, and pointer-freedom of both types. It is the portion of [Check]
// that needs no element family; a triple passing Check always passes Fits.
func Fits[T any, B any]() bool {
	var v T
	var b B

	if unsafe.Sizeof(v) > unsafe.Sizeof(b) {
		return false
	}

	if unsafe.Alignof(v) > storageAlign {
		return false
	}

	return layout.PointerFree(reflect.TypeOf((*T)(nil)).Elem()) && layout.PointerFree(reflect.TypeOf((*B)(nil)).Elem())
}
