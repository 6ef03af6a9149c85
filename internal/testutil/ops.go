// Package testutil provides the shared domain, ops, and harness for
// model-vs-real slot behavior tests.
package testutil

import (
	"fmt"
	"strings"

	"github.com/calvinalkan/slotbox"
	"github.com/calvinalkan/slotbox/model"
)

// Result is what one operation returned on one side of the comparison.
//
// Err carries the operation's advisory error, nil for operations that
// report none. Occupied carries the emplace verdict and is true for every
// other operation. Model and real results for the same operation must agree
// on both fields.
type Result struct {
	Err      error
	Occupied bool
}

// Op is a behavior test operation executed against both the real arena and
// the model universe.
//
// ApplyReal mutates the harness arenas through the public slot API.
// ApplyModel applies the same operation to the model universe. Generators
// only emit operations that are statically legal for the harness arenas;
// rejection panics are covered by deterministic tests, not by ops.
type Op interface {
	ApplyReal(h *Harness) Result
	ApplyModel(h *Harness) Result
	String() string
}

// OpPlaceDisc fills an empty position with a freshly minted tracked Disc.
type OpPlaceDisc struct {
	Class  model.Class
	Index  int
	Serial int32
	R      float64
}

// ApplyReal constructs the slot value with Of and assigns it into the arena.
func (o OpPlaceDisc) ApplyReal(h *Harness) Result {
	d := h.Ledger.Disc(o.Serial, o.R)

	switch o.Class {
	case model.Small:
		h.Small[o.Index] = slotbox.Of[Widget, SmallBuf](d)
	case model.Big:
		h.Big[o.Index] = slotbox.Of[Widget, BigBuf](d)
	}

	return Result{Occupied: true}
}

// ApplyModel records the expected occupant.
func (o OpPlaceDisc) ApplyModel(h *Harness) Result {
	h.Model.Place(o.Class, o.Index, model.Occupant{Weight: 3 * o.R, Tag: o.Serial})

	return Result{Occupied: true}
}

func (o OpPlaceDisc) String() string {
	return fmt.Sprintf("PlaceDisc(%v[%d], serial=%d, r=%g)", o.Class, o.Index, o.Serial, o.R)
}

// OpPlaceBlock fills an empty big position with a tracked Block, built in
// place from a blueprint so constructor coverage differs from OpPlaceDisc.
type OpPlaceBlock struct {
	Index  int
	Serial int32
	W, H   float64
}

// ApplyReal constructs the slot value with New and assigns it into the arena.
func (o OpPlaceBlock) ApplyReal(h *Harness) Result {
	h.Big[o.Index] = slotbox.New[Widget, BigBuf](slotbox.Plan(func(b *Block) {
		*b = h.Ledger.Block(o.Serial, o.W, o.H)
	}))

	return Result{Occupied: true}
}

// ApplyModel records the expected occupant.
func (o OpPlaceBlock) ApplyModel(h *Harness) Result {
	h.Model.Place(model.Big, o.Index, model.Occupant{Weight: o.W * o.H, Tag: o.Serial})

	return Result{Occupied: true}
}

func (o OpPlaceBlock) String() string {
	return fmt.Sprintf("PlaceBlock(big[%d], serial=%d, w=%g, h=%g)", o.Index, o.Serial, o.W, o.H)
}

// OpEmplaceDisc tries to construct a tracked Disc in place. On an occupied
// position this must refuse without minting or disturbing anything.
type OpEmplaceDisc struct {
	Class  model.Class
	Index  int
	Serial int32
	R      float64
}

// ApplyReal calls Emplace. The mint happens inside the initializer so the
// ledger counts a value only when construction actually ran.
func (o OpEmplaceDisc) ApplyReal(h *Harness) Result {
	init := func(d *Disc) {
		*d = h.Ledger.Disc(o.Serial, o.R)
	}

	var occupied bool

	switch o.Class {
	case model.Small:
		occupied = slotbox.Emplace(&h.Small[o.Index], init)
	case model.Big:
		occupied = slotbox.Emplace(&h.Big[o.Index], init)
	}

	return Result{Occupied: occupied}
}

// ApplyModel fills the position only when it is empty.
func (o OpEmplaceDisc) ApplyModel(h *Harness) Result {
	h.Model.Emplace(o.Class, o.Index, model.Occupant{Weight: 3 * o.R, Tag: o.Serial})

	return Result{Occupied: true}
}

func (o OpEmplaceDisc) String() string {
	return fmt.Sprintf("EmplaceDisc(%v[%d], serial=%d, r=%g)", o.Class, o.Index, o.Serial, o.R)
}

// OpMove transfers between two arena positions. Generators only emit
// class pairs whose storage does not shrink.
type OpMove struct {
	DstClass model.Class
	DstIndex int
	SrcClass model.Class
	SrcIndex int
}

// ApplyReal calls Move on the two arena slots.
func (o OpMove) ApplyReal(h *Harness) Result {
	var err error

	switch {
	case o.SrcClass == model.Small && o.DstClass == model.Small:
		err = slotbox.Move(&h.Small[o.DstIndex], &h.Small[o.SrcIndex])
	case o.SrcClass == model.Small && o.DstClass == model.Big:
		err = slotbox.Move(&h.Big[o.DstIndex], &h.Small[o.SrcIndex])
	case o.SrcClass == model.Big && o.DstClass == model.Big:
		err = slotbox.Move(&h.Big[o.DstIndex], &h.Big[o.SrcIndex])
	default:
		panic(fmt.Sprintf("broken harness: shrinking move %v to %v", o.SrcClass, o.DstClass))
	}

	return Result{Err: err, Occupied: true}
}

// ApplyModel mirrors the transfer, including the eviction of a live
// destination occupant.
func (o OpMove) ApplyModel(h *Harness) Result {
	h.Model.Move(o.DstClass, o.DstIndex, o.SrcClass, o.SrcIndex)

	return Result{Occupied: true}
}

func (o OpMove) String() string {
	return fmt.Sprintf("Move(%v[%d] <- %v[%d])", o.DstClass, o.DstIndex, o.SrcClass, o.SrcIndex)
}

// OpTake routes a value through a freshly taken slot: Take the source into a
// temporary big slot, then Move the temporary into a big arena position.
// Net observable effect equals a single Move, which is what the model
// records.
type OpTake struct {
	SrcClass model.Class
	SrcIndex int
	DstIndex int
}

// ApplyReal takes from the arena into a local slot, then moves that slot
// into the arena.
func (o OpTake) ApplyReal(h *Harness) Result {
	var tmp slotbox.Slot[Widget, BigBuf]

	switch o.SrcClass {
	case model.Small:
		tmp = slotbox.Take[Widget, BigBuf](&h.Small[o.SrcIndex])
	case model.Big:
		tmp = slotbox.Take[Widget, BigBuf](&h.Big[o.SrcIndex])
	}

	err := slotbox.Move(&h.Big[o.DstIndex], &tmp)

	return Result{Err: err, Occupied: true}
}

// ApplyModel records the net transfer.
func (o OpTake) ApplyModel(h *Harness) Result {
	h.Model.Move(model.Big, o.DstIndex, o.SrcClass, o.SrcIndex)

	return Result{Occupied: true}
}

func (o OpTake) String() string {
	return fmt.Sprintf("Take(big[%d] <- %v[%d])", o.DstIndex, o.SrcClass, o.SrcIndex)
}

// OpClose closes one arena position.
type OpClose struct {
	Class model.Class
	Index int
}

// ApplyReal calls Close on the arena slot.
func (o OpClose) ApplyReal(h *Harness) Result {
	var err error

	switch o.Class {
	case model.Small:
		err = h.Small[o.Index].Close()
	case model.Big:
		err = h.Big[o.Index].Close()
	}

	return Result{Err: err, Occupied: true}
}

// ApplyModel records the disposal of a live occupant.
func (o OpClose) ApplyModel(h *Harness) Result {
	h.Model.Close(o.Class, o.Index)

	return Result{Occupied: true}
}

func (o OpClose) String() string {
	return fmt.Sprintf("Close(%v[%d])", o.Class, o.Index)
}

// FormatOps formats the operation trail for failure output, marking the
// last operation as the divergence point.
func FormatOps(ops []string) string {
	if len(ops) == 0 {
		return "Operations: (none)"
	}

	var b strings.Builder

	b.WriteString("Operations:")

	for i, op := range ops {
		b.WriteString("\n")

		if i == len(ops)-1 {
			b.WriteString("> ")
			b.WriteString(op)
			b.WriteString("  <- divergence")
		} else {
			b.WriteString("  ")
			b.WriteString(op)
		}
	}

	return b.String()
}
