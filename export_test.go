package slotbox

import "unsafe"

// Export internal state for testing.
// This file is only compiled during tests.

// RawStorageForTesting returns the slot's storage bytes as a slice aliasing
// the slot. Tests use it to observe scrubbing; nothing else may.
func RawStorageForTesting[E any, B any](s *Slot[E, B]) []byte {
	var b B
	n := int(unsafe.Sizeof(b))

	return unsafe.Slice((*byte)(s.storage()), n)
}

// BoundForTesting reports whether the slot's copy guard is bound to its
// current address.
func BoundForTesting[E any, B any](s *Slot[E, B]) bool {
	return s.addr == s
}
