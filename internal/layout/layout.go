// Package layout inspects the memory shape of Go types.
//
// Slot storage is an opaque byte region that the garbage collector never
// scans as typed data, so everything placed there must be free of pointer
// words. This package answers that one question, with a memoized verdict so
// callers on hot paths pay for the reflect walk once per type.
package layout

import (
	"reflect"
	"sync"
)

// verdicts memoizes PointerFree results per reflect.Type.
//
// reflect.Type values are canonical (one per runtime type) and comparable,
// so they key the map directly; a lookup passes the interface value through
// unchanged and does not allocate. Only the first walk of a new type does.
var verdicts sync.Map // map[reflect.Type]bool

// PointerFree reports whether values of t contain no pointer words at any
// depth.
//
// Pointer-free kinds are booleans, integers, floats, complex numbers, and
// arrays or structs composed solely of pointer-free types. Everything else
// (pointers, strings, slices, maps, channels, funcs, interfaces,
// unsafe.Pointer) carries at least one pointer word.
func PointerFree(t reflect.Type) bool {
	if v, ok := verdicts.Load(t); ok {
		return v.(bool)
	}

	_, free := pointerPath(t)
	verdicts.Store(t, free)

	return free
}

// PointerPath locates the first pointer-bearing component of t for
// diagnostics, as a dotted field/element path like ".Meta.Name" or "[...]".
// It returns "" when t is pointer-free or when t itself (not a component)
// is the pointer-bearing type. Diagnostic only; it re-walks t and may
// allocate.
func PointerPath(t reflect.Type) string {
	path, _ := pointerPath(t)

	return path
}

// pointerPath walks t and returns (pathToFirstPointer, pointerFree).
func pointerPath(t reflect.Type) (string, bool) {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return "", true

	case reflect.Array:
		path, free := pointerPath(t.Elem())
		if free {
			return "", true
		}

		return "[...]" + path, false

	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)

			path, free := pointerPath(field.Type)
			if !free {
				return "." + field.Name + path, false
			}
		}

		return "", true

	default:
		// Ptr, String, Slice, Map, Chan, Func, Interface, UnsafePointer.
		return "", false
	}
}
