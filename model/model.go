// Package model provides a deliberately simple in-memory model of a fixed
// arena of slots, used as the oracle in differential and fuzz tests.
//
// The model mirrors observable slot behavior only: which arena positions are
// occupied, what each occupant's dispatched observations should be, and how
// often each placed value should have been disposed. It knows nothing about
// storage bytes, records, or copy guards; those are the real package's
// concern and are checked against this model from the outside.
//
// Operations mirror the real package's semantics for legal calls. Feeding
// the model an operation the real package would reject statically (wrong
// family, shrinking capacity) is a harness bug, not a modeled outcome.
package model

import "fmt"

// Class selects one of the arena's two storage capacities. Transfers may go
// within a class or from Small to Big, never from Big to Small.
type Class int

const (
	// Small is the narrow-storage arena, sized to the smallest family
	// member only.
	Small Class = iota

	// Big is the wide-storage arena, sized to every family member.
	Big
)

// String returns the class name used in test failure output.
func (c Class) String() string {
	switch c {
	case Small:
		return "small"
	case Big:
		return "big"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Occupant is the expected observable state of one held value: the results
// its dispatched methods should produce and the identity it carries through
// transfers.
type Occupant struct {
	// Weight is the expected result of the occupant's Weight method.
	Weight float64

	// Tag is the expected result of the occupant's Tag method. Tags are
	// unique per placed value, which lets disposal counts key on them.
	Tag int32
}

// SlotState is the expected observable state of one arena position.
type SlotState struct {
	// Live reports whether the position should be occupied.
	Live bool

	// Occ is the expected occupant. Meaningful only when Live is true; an
	// emptied position keeps a zero Occ.
	Occ Occupant
}

// Universe is the expected state of a whole slot arena: every position in
// both classes plus the disposal ledger the arena should have produced.
type Universe struct {
	// Small and Big hold per-position expected state, indexed like the real
	// arenas.
	Small []SlotState
	Big   []SlotState

	// Placed counts how many values were placed under each tag. Generators
	// keep tags unique, so entries are 1 in practice; the model does not
	// assume it.
	Placed map[int32]int

	// Disposed counts how many times each tag's value should have been
	// disposed so far.
	Disposed map[int32]int
}

// NewUniverse returns an all-empty universe with the given arena sizes.
func NewUniverse(small, big int) *Universe {
	return &Universe{
		Small:    make([]SlotState, small),
		Big:      make([]SlotState, big),
		Placed:   make(map[int32]int),
		Disposed: make(map[int32]int),
	}
}

// Clone returns a deep copy of u. Forked copies evolve independently, which
// metamorphic tests use to compare alternative operation routes.
func (u *Universe) Clone() *Universe {
	c := &Universe{
		Small:    make([]SlotState, len(u.Small)),
		Big:      make([]SlotState, len(u.Big)),
		Placed:   make(map[int32]int, len(u.Placed)),
		Disposed: make(map[int32]int, len(u.Disposed)),
	}

	copy(c.Small, u.Small)
	copy(c.Big, u.Big)

	for tag, n := range u.Placed {
		c.Placed[tag] = n
	}

	for tag, n := range u.Disposed {
		c.Disposed[tag] = n
	}

	return c
}

// Slot returns the expected state at a position. The pointer aliases the
// universe; mutations belong to the model's own operations.
func (u *Universe) Slot(class Class, index int) *SlotState {
	switch class {
	case Small:
		return &u.Small[index]
	case Big:
		return &u.Big[index]
	default:
		panic(fmt.Sprintf("broken model: unknown class %d", int(class)))
	}
}

// Place records a value being placed into an empty position, mirroring Of
// and New. Placing onto a live position is a harness bug: the real arena
// would leak the previous occupant, which no generated sequence does.
func (u *Universe) Place(class Class, index int, occ Occupant) {
	s := u.Slot(class, index)
	if s.Live {
		panic(fmt.Sprintf("broken model: place into live %v[%d]", class, index))
	}

	s.Live = true
	s.Occ = occ
	u.Placed[occ.Tag]++
}

// Emplace records a conditional in-place construction, mirroring Emplace: a
// live position refuses and nothing changes, an empty one fills. It reports
// whether construction happened.
func (u *Universe) Emplace(class Class, index int, occ Occupant) bool {
	s := u.Slot(class, index)
	if s.Live {
		return false
	}

	s.Live = true
	s.Occ = occ
	u.Placed[occ.Tag]++

	return true
}

// Move records a transfer between positions, mirroring Move: the
// destination's occupant is disposed, the source occupant (if any) moves
// across, and the source empties. Moving a position onto itself changes
// nothing.
func (u *Universe) Move(dstClass Class, dstIndex int, srcClass Class, srcIndex int) {
	if dstClass == srcClass && dstIndex == srcIndex {
		return
	}

	dst := u.Slot(dstClass, dstIndex)
	src := u.Slot(srcClass, srcIndex)

	if dst.Live {
		u.Disposed[dst.Occ.Tag]++
	}

	*dst = *src
	*src = SlotState{}
}

// Close records a position being closed: a live occupant is disposed and the
// position empties. Closing an empty position changes nothing.
func (u *Universe) Close(class Class, index int) {
	s := u.Slot(class, index)
	if !s.Live {
		return
	}

	u.Disposed[s.Occ.Tag]++
	*s = SlotState{}
}

// CloseAll closes every position in both classes.
func (u *Universe) CloseAll() {
	for i := range u.Small {
		u.Close(Small, i)
	}

	for i := range u.Big {
		u.Close(Big, i)
	}
}

// LiveTags returns how many positions currently hold each tag. At most one
// position holds any tag, since transfers move rather than duplicate.
func (u *Universe) LiveTags() map[int32]int {
	live := make(map[int32]int)

	for i := range u.Small {
		if u.Small[i].Live {
			live[u.Small[i].Occ.Tag]++
		}
	}

	for i := range u.Big {
		if u.Big[i].Live {
			live[u.Big[i].Occ.Tag]++
		}
	}

	return live
}

// CheckInvariants verifies the model's own bookkeeping: every disposal
// belongs to a placed tag, no tag is disposed more often than placed, no tag
// is live in two positions, and live plus disposed accounts for every
// placement. It returns the first violation found.
//
// A universe that has been fully closed out must additionally satisfy
// [Universe.CheckDrained].
func (u *Universe) CheckInvariants() error {
	for tag, n := range u.Disposed {
		placed, ok := u.Placed[tag]
		if !ok {
			return fmt.Errorf("tag %d disposed %d times but never placed", tag, n)
		}

		if n > placed {
			return fmt.Errorf("tag %d disposed %d times but placed %d times", tag, n, placed)
		}
	}

	live := u.LiveTags()
	for tag, n := range live {
		if n > 1 {
			return fmt.Errorf("tag %d live in %d positions", tag, n)
		}
	}

	for tag, placed := range u.Placed {
		if live[tag]+u.Disposed[tag] != placed {
			return fmt.Errorf("tag %d: placed %d, live %d, disposed %d", tag, placed, live[tag], u.Disposed[tag])
		}
	}

	return nil
}

// CheckDrained verifies the end-state invariant after closing everything:
// no position is live and every placed value was disposed exactly as often
// as it was placed. It returns the first violation found.
func (u *Universe) CheckDrained() error {
	for i := range u.Small {
		if u.Small[i].Live {
			return fmt.Errorf("small[%d] still live after drain", i)
		}
	}

	for i := range u.Big {
		if u.Big[i].Live {
			return fmt.Errorf("big[%d] still live after drain", i)
		}
	}

	for tag, placed := range u.Placed {
		if u.Disposed[tag] != placed {
			return fmt.Errorf("tag %d disposed %d times, want %d", tag, u.Disposed[tag], placed)
		}
	}

	return nil
}
