package slotbox

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/calvinalkan/slotbox/internal/layout"
)

// Sentinel errors reported by [Check] and [CheckTransfer] and carried by the
// panics that reject ill-formed type arguments. A rejection depends only on
// the type arguments at a call site, never on slot state or input values, so
// an ill-formed call fails the first time it executes.
//
// Use [errors.Is] to match, whether the error was returned or recovered:
//
//	if err := slotbox.Check[Square, Shape, ShapeBuf](); errors.Is(err, slotbox.ErrOversize) {
//	    // pick larger storage
//	}
var (
	// ErrNotInterface reports that a family type parameter is not an
	// interface type. Families are interfaces; there is no recovery except
	// fixing the type argument.
	ErrNotInterface = errors.New("slotbox: element family is not an interface")

	// ErrAbstract reports an attempt to store a value of a family interface
	// type itself rather than of a concrete member type.
	//
	// Recovery: store the concrete value, or transfer an existing slot's
	// occupant with [Move] or [Take].
	ErrAbstract = errors.New("slotbox: element type is abstract")

	// ErrHasPointers reports that a concrete element or storage type
	// contains pointer words (pointers, strings, slices, maps, channels,
	// funcs, interfaces) at some depth. Slot storage is opaque to the
	// garbage collector, so pointer-bearing types cannot be stored there.
	//
	// Recovery: restructure the type around scalar data, or hold the value
	// behind an ordinary pointer instead of a slot.
	ErrHasPointers = errors.New("slotbox: pointer-bearing type")

	// ErrOversize reports that a concrete element does not fit the storage
	// type.
	//
	// Recovery: size the storage to the largest family member, e.g.
	//
	//	const cap = max(unsafe.Sizeof(Circle{}), unsafe.Sizeof(Square{}))
	//	type Buf = [cap]byte
	ErrOversize = errors.New("slotbox: element exceeds storage capacity")

	// ErrOveraligned reports that a concrete element requires stricter
	// alignment than slot storage guarantees (the uint64 alignment class).
	ErrOveraligned = errors.New("slotbox: element alignment exceeds storage alignment")

	// ErrOutsideFamily reports that a concrete element's pointer type does
	// not implement the destination family, or that a transfer's source
	// family does not implement its destination family.
	ErrOutsideFamily = errors.New("slotbox: outside element family")

	// ErrShrink reports a transfer from larger storage into smaller
	// storage. Transfers may grow capacity, never shrink it, regardless of
	// how small the current occupant happens to be.
	//
	// Recovery: transfer in the widening direction, or widen the
	// destination storage type.
	ErrShrink = errors.New("slotbox: transfer shrinks storage capacity")
)

// errRecordMismatch reports a state occupancy validation makes unreachable:
// a live record whose view does not implement its slot's family. Reaching it
// means corrupted slot memory or a library bug.
var errRecordMismatch = errors.New("slotbox: internal: live record outside its slot's family")

// Check reports whether a concrete type T may occupy a Slot[E, B]. It is the
// exact validation [Of], [Emplace], and [New] apply; those panic with the
// error Check returns. nil means the triple is accepted.
//
// Possible errors: [ErrNotInterface], [ErrAbstract], [ErrHasPointers],
// [ErrOversize], [ErrOveraligned], [ErrOutsideFamily].
func Check[T any, E any, B any]() error {
	family := reflect.TypeOf((*E)(nil)).Elem()
	if family.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %v", ErrNotInterface, family)
	}

	elem := reflect.TypeOf((*T)(nil)).Elem()
	if elem.Kind() == reflect.Interface {
		return fmt.Errorf("%w: %v holds concrete members of %v, not %v values", ErrAbstract, family, family, elem)
	}

	if !layout.PointerFree(elem) {
		return fmt.Errorf("%w: %v%s", ErrHasPointers, elem, layout.PointerPath(elem))
	}

	store := reflect.TypeOf((*B)(nil)).Elem()
	if !layout.PointerFree(store) {
		return fmt.Errorf("%w: storage %v%s", ErrHasPointers, store, layout.PointerPath(store))
	}

	if elem.Size() > store.Size() {
		return fmt.Errorf("%w: %v needs %d bytes, %v holds %d", ErrOversize, elem, elem.Size(), store, store.Size())
	}

	if uintptr(elem.Align()) > storageAlign {
		return fmt.Errorf("%w: %v needs %d-byte alignment, storage guarantees %d", ErrOveraligned, elem, elem.Align(), storageAlign)
	}

	if !reflect.PointerTo(elem).Implements(family) {
		return fmt.Errorf("%w: *%v does not implement %v", ErrOutsideFamily, elem, family)
	}

	return nil
}

// CheckTransfer reports whether occupants may transfer from a Slot[SE, SB]
// into a Slot[DE, DB]. It is the exact validation [Move] and [Take] apply;
// those panic with the error CheckTransfer returns. nil means the slot pair
// is accepted.
//
// A transfer is accepted when both families are interfaces, both storage
// types are pointer-free, the destination storage is at least as large as
// the source storage, and the source family implements the destination
// family. The verdict is independent of what the source currently holds.
//
// Possible errors: [ErrNotInterface], [ErrHasPointers], [ErrShrink],
// [ErrOutsideFamily].
func CheckTransfer[DE any, DB any, SE any, SB any]() error {
	dstFamily := reflect.TypeOf((*DE)(nil)).Elem()
	if dstFamily.Kind() != reflect.Interface {
		return fmt.Errorf("%w: destination family %v", ErrNotInterface, dstFamily)
	}

	srcFamily := reflect.TypeOf((*SE)(nil)).Elem()
	if srcFamily.Kind() != reflect.Interface {
		return fmt.Errorf("%w: source family %v", ErrNotInterface, srcFamily)
	}

	srcStore := reflect.TypeOf((*SB)(nil)).Elem()
	if !layout.PointerFree(srcStore) {
		return fmt.Errorf("%w: source storage %v%s", ErrHasPointers, srcStore, layout.PointerPath(srcStore))
	}

	dstStore := reflect.TypeOf((*DB)(nil)).Elem()
	if !layout.PointerFree(dstStore) {
		return fmt.Errorf("%w: destination storage %v%s", ErrHasPointers, dstStore, layout.PointerPath(dstStore))
	}

	if srcStore.Size() > dstStore.Size() {
		return fmt.Errorf("%w: %v (%d bytes) into %v (%d bytes)", ErrShrink, srcStore, srcStore.Size(), dstStore, dstStore.Size())
	}

	if !srcFamily.Implements(dstFamily) {
		return fmt.Errorf("%w: %v does not implement %v", ErrOutsideFamily, srcFamily, dstFamily)
	}

	return nil
}

// mustStore panics when T cannot occupy a Slot[E, B]. It runs before any
// state is read or written, so an ill-formed call site fails deterministically
// on its first execution regardless of slot state.
func mustStore[T any, E any, B any]() {
	if err := Check[T, E, B](); err != nil {
		panic(err)
	}
}

// mustTransfer panics when occupants cannot transfer from Slot[SE, SB] into
// Slot[DE, DB]. Like mustStore it runs before any state is touched.
func mustTransfer[DE any, DB any, SE any, SB any]() {
	if err := CheckTransfer[DE, DB, SE, SB](); err != nil {
		panic(err)
	}
}
