package slotbox

import (
	"io"
	"unsafe"
)

// storageAlign is the alignment every slot guarantees for its storage field,
// independent of the storage type: a zero-size uint64 field precedes the
// storage and puts it in the uint64 alignment class. Concrete types with
// stricter alignment are rejected at validation.
const storageAlign = unsafe.Alignof(uint64(0))

// Slot is a fixed-capacity owning container for at most one value of the
// element family E, stored inline in a field of type B.
//
// E must be an interface type (the family); B is the storage, conventionally
// a byte array sized to the largest family member. The zero Slot is empty
// and ready to use. See the package documentation for the ownership and
// validation rules.
type Slot[E any, B any] struct {
	_ [0]func() // Slots are not comparable.

	// rec is the occupant's operation table. nil means the slot is empty;
	// every other field invariant hangs off this one.
	rec lifecycle

	// addr detects use of a copied slot, in the manner of strings.Builder.
	// nil until the first bound use; emptying a slot unbinds it again.
	addr *Slot[E, B]

	_   [0]uint64 // Keeps buf in the uint64 alignment class.
	buf B         // Inline storage for the occupant.
}

var _ io.Closer = (*Slot[any, [0]byte])(nil)

// noescape hides p from escape analysis. The pointer must not be retained
// past the call it is passed to; slot internals use it only for relocate,
// which copies bytes and keeps nothing.
//
//go:nosplit
//go:nocheckptr
func noescape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)

	return unsafe.Pointer(x ^ 0)
}

// copyCheck binds s on its first mutating use and panics when s is a copy of
// a slot bound elsewhere. Constructors return unbound slots so the result
// can be assigned and passed by value until first use.
func (s *Slot[E, B]) copyCheck() {
	if s.addr == nil {
		s.addr = (*Slot[E, B])(noescape(unsafe.Pointer(s)))
	} else if s.addr != s {
		panic("slotbox: illegal use of non-zero Slot copied by value")
	}
}

// verifyAddr panics when s is a copy of a bound slot. Unlike copyCheck it
// never binds, so operations that leave the slot empty or untouched keep
// unbound slots unbound.
func (s *Slot[E, B]) verifyAddr() {
	if s.addr != nil && s.addr != s {
		panic("slotbox: illegal use of non-zero Slot copied by value")
	}
}

// storage returns the address of the slot's storage field.
func (s *Slot[E, B]) storage() unsafe.Pointer {
	return unsafe.Pointer(&s.buf)
}

// reset returns s to the zero value. The caller has already disposed or
// relocated the occupant.
func (s *Slot[E, B]) reset() {
	s.rec = nil
	s.addr = nil
}

// Occupied reports whether the slot currently holds a value.
func (s *Slot[E, B]) Occupied() bool {
	s.verifyAddr()

	return s.rec != nil
}

// Get returns the occupant viewed as the family interface E, or the nil
// interface when the slot is empty.
//
// The result is a view into the slot's own storage: it remains valid only
// while the slot stays occupied at the same address. Transferring out of the
// slot, closing it, or letting it go out of scope invalidates the view.
// Calling a method on the nil result panics like any nil interface call;
// gate on [Slot.Occupied] when emptiness is possible.
func (s *Slot[E, B]) Get() E {
	s.verifyAddr()

	var zero E
	if s.rec == nil {
		return zero
	}

	e, ok := s.rec.view(s.storage()).(E)
	if !ok {
		// Unreachable while occupancy validation holds: a live record views
		// as the family it was validated against.
		panic(errRecordMismatch)
	}

	return e
}

// Close destroys the occupant, if any, and returns the slot to its zero
// value. The occupant's own Close runs when its concrete type implements
// [io.Closer]; its error is returned, wrapped. Close on an empty slot is a
// no-op, so Close is idempotent and Slot satisfies [io.Closer].
func (s *Slot[E, B]) Close() error {
	s.verifyAddr()

	if s.rec == nil {
		return nil
	}

	// Clear occupancy before disposing so the occupant's own Close observes
	// an already-empty slot if it reaches back in.
	rec := s.rec
	s.rec = nil

	err := rec.dispose(s.storage())
	s.addr = nil

	return err
}
