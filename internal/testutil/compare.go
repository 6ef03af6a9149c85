package testutil

import (
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/slotbox"
	"github.com/calvinalkan/slotbox/model"
)

// CompareUniverse checks every observable of the real arena against the
// model: per-position occupancy, the dispatched weight and tag of every
// live occupant, the disposal ledger, and the model's own invariants. It
// returns an error describing the first divergence, with the operation
// trail appended.
//
// Weights compare exactly. Generators derive them from small integers, so
// the expected float64 arithmetic is exact on both sides.
func CompareUniverse(h *Harness, ops []string) error {
	for i := range h.Small {
		pos := fmt.Sprintf("small[%d]", i)
		if err := compareSlot(pos, &h.Small[i], &h.Model.Small[i]); err != nil {
			return fmt.Errorf("%w\n%s", err, FormatOps(ops))
		}
	}

	for i := range h.Big {
		pos := fmt.Sprintf("big[%d]", i)
		if err := compareSlot(pos, &h.Big[i], &h.Model.Big[i]); err != nil {
			return fmt.Errorf("%w\n%s", err, FormatOps(ops))
		}
	}

	diff := cmp.Diff(h.Model.Disposed, h.Ledger.Snapshot(), cmpopts.EquateEmpty())
	if diff != "" {
		return fmt.Errorf("disposal counts diverge (-model +real):\n%s\n%s", diff, FormatOps(ops))
	}

	if err := h.Model.CheckInvariants(); err != nil {
		return fmt.Errorf("model invariant violated: %w\n%s", err, FormatOps(ops))
	}

	return nil
}

// compareSlot checks one arena position against its expected state.
func compareSlot[B any](pos string, real *slotbox.Slot[Widget, B], want *model.SlotState) error {
	if got := real.Occupied(); got != want.Live {
		return fmt.Errorf("%s: occupied=%v, model wants %v", pos, got, want.Live)
	}

	if !want.Live {
		if got := real.Get(); got != nil {
			return fmt.Errorf("%s: empty but Get returned %T", pos, got)
		}

		return nil
	}

	w := real.Get()
	if w == nil {
		return fmt.Errorf("%s: occupied but Get returned nil", pos)
	}

	if got := w.Weight(); got != want.Occ.Weight {
		return fmt.Errorf("%s: weight %v, model wants %v", pos, got, want.Occ.Weight)
	}

	if got := w.Tag(); got != want.Occ.Tag {
		return fmt.Errorf("%s: tag %d, model wants %d", pos, got, want.Occ.Tag)
	}

	return nil
}

// SameResult reports whether the model and real results of one operation
// agree. Errors must match bidirectionally under [errors.Is] so sentinel
// wrapping on either side still counts as agreement.
func SameResult(op Op, modelRes, realRes Result) error {
	if !errorsMatch(modelRes.Err, realRes.Err) {
		return fmt.Errorf("%s: error diverges: model=%v real=%v", op, modelRes.Err, realRes.Err)
	}

	if modelRes.Occupied != realRes.Occupied {
		return fmt.Errorf("%s: occupied verdict diverges: model=%v real=%v", op, modelRes.Occupied, realRes.Occupied)
	}

	return nil
}

// errorsMatch reports whether two errors agree: both nil, or related in
// either direction under [errors.Is].
func errorsMatch(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return errors.Is(a, b) || errors.Is(b, a)
}
