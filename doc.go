// Package slotbox provides a bounded-capacity owning slot for polymorphic
// values: at most one value of an interface family, stored inline in a
// fixed-size storage field, with single-owner move semantics and no
// per-value heap allocation.
//
// A [Slot] pairs a family interface E with a storage type B, conventionally
// a byte array sized to the largest family member with the constant pattern:
//
//	const shapeCap = max(unsafe.Sizeof(Circle{}), unsafe.Sizeof(Square{}))
//	type ShapeBuf = [shapeCap]byte
//
//	s := slotbox.Of[Shape, ShapeBuf](Square{Side: 4})
//	area := s.Get().Area()                  // dispatches Square.Area
//	t := slotbox.Take[Shape, ShapeBuf](&s)  // s is empty again
//	err := t.Close()                        // destroys the Square
//
// The occupant lives in the slot's own bytes. [Slot.Get] hands out a view
// backed by those bytes, so method calls dispatch on the concrete type
// without the value ever moving to the heap.
//
// # Ownership
//
// Slots are move-only. [Move] transfers an occupant into an existing slot,
// destroying whatever that slot held; [Take] transfers into a freshly
// constructed slot. Both empty the source, and both accept a destination
// with equal or larger storage and an equal or wider family. Each value
// placed in a slot is disposed exactly once, however many transfers it
// rides through.
//
// Value copies of a slot in use are misuse and panic when detected, in the
// manner of strings.Builder. Empty slots are plain zero values and may be
// copied and reused freely.
//
// # Validation
//
// Whether a concrete type may occupy a slot, and whether one slot shape may
// transfer into another, depend only on the type arguments at a call site.
// Violations panic with a sentinel error before any state changes, so an
// ill-formed call fails on its first execution no matter what the involved
// slots hold. [Check] and [CheckTransfer] report the same verdicts as
// ordinary errors for callers that want to probe instead of panic.
//
// Concrete element types and storage types must be free of pointer words.
// Slot storage is opaque to the garbage collector, so a stored pointer
// would be invisible to it; such types are rejected with [ErrHasPointers].
//
// # Destruction
//
// Go has no destructors, so occupants are destroyed explicitly. [Slot.Close]
// disposes the occupant, running its Close first when the concrete type
// implements [io.Closer], and returns the slot to its zero value. [Move]
// likewise disposes a displaced destination occupant and reports that
// occupant's Close error as advisory. Close on an empty slot is a no-op,
// and a Slot is itself an [io.Closer].
package slotbox
