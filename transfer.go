package slotbox

import "unsafe"

// Move transfers ownership of src's occupant into dst, the slot analogue of
// move assignment.
//
// Any existing occupant of dst is destroyed first, through dst's own record.
// When src is occupied, its occupant and a clone of its record move into dst
// through src's record, the only party that knows the concrete type, and src
// resets to its zero value. When src is empty, dst simply ends empty. Moving
// a slot into itself is a no-op.
//
// The returned error, when non-nil, is the advisory dispose error of the
// displaced dst occupant. The transfer completes regardless.
//
// Move panics when the slot pair is statically ill-formed, whatever the
// slots hold; [CheckTransfer] reports the same verdict as an error.
func Move[DE any, DB any, SE any, SB any](dst *Slot[DE, DB], src *Slot[SE, SB]) error {
	mustTransfer[DE, DB, SE, SB]()

	if unsafe.Pointer(dst) == unsafe.Pointer(src) {
		dst.verifyAddr()

		return nil
	}

	dst.copyCheck()
	src.verifyAddr()

	// Destroy dst's occupant before touching src so it cannot leak, and
	// clear dst's record first so a reaching-back Close sees an empty slot.
	var evictErr error
	if dst.rec != nil {
		rec := dst.rec
		dst.rec = nil
		evictErr = rec.dispose(dst.storage())
	}

	if src.rec == nil {
		dst.reset()

		return evictErr
	}

	src.rec.relocate(dst.storage(), src.storage())
	dst.rec = src.rec.clone()
	src.reset()

	return evictErr
}

// Take moves src's occupant into a freshly constructed slot and returns it,
// the slot analogue of move construction. The destination family and storage
// are given explicitly and the source's are inferred:
//
//	wide := slotbox.Take[Shape, WideBuf](&narrow)
//
// An empty src yields an empty slot; an occupied src is reset to its zero
// value.
//
// Take panics when the slot pair is statically ill-formed, whatever src
// holds; [CheckTransfer] reports the same verdict as an error.
func Take[DE any, DB any, SE any, SB any](src *Slot[SE, SB]) Slot[DE, DB] {
	mustTransfer[DE, DB, SE, SB]()
	src.verifyAddr()

	var dst Slot[DE, DB]
	if src.rec == nil {
		return dst
	}

	// relocate keeps neither pointer, so the fresh slot may stay on the
	// stack and travel to the caller as an ordinary return value.
	src.rec.relocate(noescape(dst.storage()), src.storage())
	dst.rec = src.rec.clone()
	src.reset()

	return dst
}
