package slotbox

// Of returns an occupied slot holding v. The family and storage are given
// explicitly and the concrete type is inferred:
//
//	s := slotbox.Of[Shape, ShapeBuf](Square{Side: 4})
//
// Of panics when T cannot occupy a Slot[E, B]; [Check] reports the same
// verdict as an error.
func Of[E any, B any, T any](v T) Slot[E, B] {
	mustStore[T, E, B]()

	var s Slot[E, B]
	*(*T)(s.storage()) = v
	s.rec = ops[T]{}

	return s
}

// Emplace constructs a T inside s only when s is empty: the element region
// of the storage is zeroed, init (when non-nil) runs against the in-place
// value, and the slot's record is synthesized. When s is already occupied,
// Emplace is a strict no-op: the occupant is untouched, init does not run,
// and no lifecycle operation fires.
//
// It reports whether the slot is occupied when the call returns, which is
// true on both paths because in-place construction cannot fail. The result
// deliberately does not distinguish construction from refusal; consult
// [Slot.Occupied] before the call when that matters.
//
// Emplace panics when T cannot occupy a Slot[E, B], occupied or not;
// [Check] reports the same verdict as an error.
func Emplace[T any, E any, B any](s *Slot[E, B], init func(*T)) bool {
	mustStore[T, E, B]()
	s.copyCheck()

	if s.rec != nil {
		return true
	}

	p := (*T)(s.storage())

	// A previous occupant or a panicked initializer may have left dirty
	// bytes behind.
	var zero T
	*p = zero

	if init != nil {
		init(p)
	}

	// Set the record last so a panicking init leaves the slot empty.
	s.rec = ops[T]{}

	return true
}

// Blueprint is a deferred unit of in-place construction: which concrete type
// to build, and an initializer to run against it once storage exists. A
// Blueprint carries intent, not a value; no T exists until [New] consumes it
// inside a slot. The zero Blueprint constructs a zero T.
type Blueprint[T any] struct {
	init func(*T)
}

// Plan packages an initializer as a [Blueprint] for [New]. A nil init plans
// a zero value.
func Plan[T any](init func(*T)) Blueprint[T] {
	return Blueprint[T]{init: init}
}

// New returns an occupied slot whose occupant was constructed by bp directly
// in the slot's storage. No intermediate T and no value of the family
// interface type exists at any point:
//
//	s := slotbox.New[Shape, ShapeBuf](slotbox.Plan(func(sq *Square) {
//	    sq.Side = 4
//	}))
//
// New panics when T cannot occupy a Slot[E, B]; [Check] reports the same
// verdict as an error.
func New[E any, B any, T any](bp Blueprint[T]) Slot[E, B] {
	mustStore[T, E, B]()

	var s Slot[E, B]

	if bp.init != nil {
		bp.init((*T)(s.storage()))
	}

	s.rec = ops[T]{}

	return s
}
