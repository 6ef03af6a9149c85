package testutil

import (
	"github.com/calvinalkan/slotbox"
	"github.com/calvinalkan/slotbox/model"
)

// Harness wires a real slot arena to the model universe that predicts it.
//
// The arenas are fixed-size slices allocated once, so slots bound by use
// never move and the copy guard stays valid for the whole run. Position
// (class, index) in the arenas corresponds one to one with the model.
type Harness struct {
	Ledger *Ledger
	Small  []slotbox.Slot[Widget, SmallBuf]
	Big    []slotbox.Slot[Widget, BigBuf]
	Model  *model.Universe
}

// NewHarness returns a harness with all-empty arenas of the given sizes.
// Both sizes must be at least 1. Callers release the harness when done.
func NewHarness(small, big int) *Harness {
	return &Harness{
		Ledger: NewLedger(),
		Small:  make([]slotbox.Slot[Widget, SmallBuf], small),
		Big:    make([]slotbox.Slot[Widget, BigBuf], big),
		Model:  model.NewUniverse(small, big),
	}
}

// Release drops the harness ledger from the process-wide registry.
func (h *Harness) Release() {
	h.Ledger.Release()
}

// Apply runs the operation against the real arena first, then against the
// model, and returns both results for comparison.
func (h *Harness) Apply(op Op) (modelRes, realRes Result) {
	realRes = op.ApplyReal(h)
	modelRes = op.ApplyModel(h)

	return modelRes, realRes
}

// CloseAll drains both arenas and mirrors the drain in the model. It
// returns the first close error; remaining slots are closed regardless.
func (h *Harness) CloseAll() error {
	var firstErr error

	for i := range h.Small {
		if err := h.Small[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for i := range h.Big {
		if err := h.Big[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	h.Model.CloseAll()

	return firstErr
}
