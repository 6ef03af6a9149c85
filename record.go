package slotbox

import (
	"fmt"
	"io"
	"unsafe"
)

// lifecycle is the per-concrete-type operation table of a slot occupant. A
// slot is empty exactly when its record is nil; every occupied slot carries
// the record synthesized for the concrete type it holds, and all work on the
// occupant (moving it, destroying it, viewing it) dispatches through that
// record, never through the storage bytes themselves.
//
// The implementation is a zero-size struct per concrete type, so
// synthesizing or cloning a record is an allocation-free interface
// conversion. Implementations must not retain the storage pointers passed to
// relocate beyond the call.
type lifecycle interface {
	// relocate moves the occupant from src storage into dst storage and
	// scrubs src back to zero bytes. Both regions must be large enough for
	// the concrete type and src must hold a live occupant of it.
	relocate(dst, src unsafe.Pointer)

	// clone returns a record with identical dispatch, for the destination
	// of a transfer.
	clone() lifecycle

	// dispose destroys the occupant at p: runs its Close when the concrete
	// type implements [io.Closer], then zeroes the occupant's bytes. The
	// returned error is the occupant's own Close error, wrapped.
	dispose(p unsafe.Pointer) error

	// view returns the occupant at p as a typed pointer wrapped in any.
	view(p unsafe.Pointer) any
}

// ops implements lifecycle for one concrete type.
type ops[T any] struct{}

var _ lifecycle = ops[struct{}]{}

func (ops[T]) relocate(dst, src unsafe.Pointer) {
	d := (*T)(dst)
	s := (*T)(src)

	*d = *s

	var zero T
	*s = zero
}

func (ops[T]) clone() lifecycle {
	return ops[T]{}
}

func (ops[T]) dispose(p unsafe.Pointer) error {
	occ := (*T)(p)

	var err error
	if c, ok := any(occ).(io.Closer); ok {
		if closeErr := c.Close(); closeErr != nil {
			err = fmt.Errorf("slotbox: dispose %T: %w", *occ, closeErr)
		}
	}

	// The slot empties whether or not Close failed.
	var zero T
	*occ = zero

	return err
}

func (ops[T]) view(p unsafe.Pointer) any {
	return (*T)(p)
}
