// Metamorphic tests verifying route equivalences that must always hold:
//   - A widening Move matches Take followed by Move
//   - Evicting into an occupied slot matches Close followed by Move
//   - Chained Takes collapse to a single Take
//
// Each route pair starts from identical state, runs under its own ledger,
// and must converge on identical observations and disposal books.
//
// Failures mean: a transfer route changed what a value looks like or how
// often something was disposed.

package slotbox_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/slotbox"
	"github.com/calvinalkan/slotbox/internal/testutil"
)

// slotView is the observable face of one slot, for comparing routes.
type slotView struct {
	Occupied bool
	Weight   float64
	Tag      int32
}

func viewOf[B any](s *slotbox.Slot[testutil.Widget, B]) slotView {
	if !s.Occupied() {
		return slotView{}
	}

	w := s.Get()

	return slotView{Occupied: true, Weight: w.Weight(), Tag: w.Tag()}
}

func Test_Metamorphic_Move_Matches_Take_Then_Move_When_Widening(t *testing.T) {
	t.Parallel()

	ledgerA := testutil.NewLedger()
	defer ledgerA.Release()

	ledgerB := testutil.NewLedger()
	defer ledgerB.Release()

	srcA := slotbox.Of[testutil.Widget, testutil.SmallBuf](ledgerA.Disc(1, 2))
	srcB := slotbox.Of[testutil.Widget, testutil.SmallBuf](ledgerB.Disc(1, 2))

	var bigA, bigB slotbox.Slot[testutil.Widget, testutil.BigBuf]

	// Route A: one widening move.
	require.NoError(t, slotbox.Move(&bigA, &srcA), "direct move should succeed")

	// Route B: take into a temporary, then move the temporary in.
	tmp := slotbox.Take[testutil.Widget, testutil.BigBuf](&srcB)
	require.NoError(t, slotbox.Move(&bigB, &tmp), "move from the temporary should succeed")

	diff := cmp.Diff(viewOf(&bigA), viewOf(&bigB))
	assert.Empty(t, diff, "both routes should land the same observable value")

	assert.False(t, srcA.Occupied(), "route A source should be empty")
	assert.False(t, srcB.Occupied(), "route B source should be empty")
	assert.False(t, tmp.Occupied(), "the temporary should be empty")

	diff = cmp.Diff(ledgerA.Snapshot(), ledgerB.Snapshot())
	assert.Empty(t, diff, "neither route should dispose anything")

	require.NoError(t, bigA.Close(), "route A drain should succeed")
	require.NoError(t, bigB.Close(), "route B drain should succeed")
	require.NoError(t, ledgerA.CheckBalanced(), "route A books should balance")
	require.NoError(t, ledgerB.CheckBalanced(), "route B books should balance")
}

func Test_Metamorphic_Eviction_Matches_Close_Then_Move_When_Destination_Occupied(t *testing.T) {
	t.Parallel()

	ledgerA := testutil.NewLedger()
	defer ledgerA.Release()

	ledgerB := testutil.NewLedger()
	defer ledgerB.Release()

	dstA := slotbox.Of[testutil.Widget, testutil.BigBuf](ledgerA.Block(9, 2, 3))
	srcA := slotbox.Of[testutil.Widget, testutil.SmallBuf](ledgerA.Disc(1, 2))

	dstB := slotbox.Of[testutil.Widget, testutil.BigBuf](ledgerB.Block(9, 2, 3))
	srcB := slotbox.Of[testutil.Widget, testutil.SmallBuf](ledgerB.Disc(1, 2))

	// Route A: the move evicts the destination occupant itself.
	require.NoError(t, slotbox.Move(&dstA, &srcA), "evicting move should succeed")

	// Route B: close the destination first, then move into the empty slot.
	require.NoError(t, dstB.Close(), "explicit close should succeed")
	require.NoError(t, slotbox.Move(&dstB, &srcB), "move into the emptied slot should succeed")

	diff := cmp.Diff(viewOf(&dstA), viewOf(&dstB))
	assert.Empty(t, diff, "both routes should land the same observable value")

	diff = cmp.Diff(ledgerA.Snapshot(), ledgerB.Snapshot())
	assert.Empty(t, diff, "both routes should dispose the displaced value exactly once")

	require.NoError(t, dstA.Close(), "route A drain should succeed")
	require.NoError(t, dstB.Close(), "route B drain should succeed")
	require.NoError(t, ledgerA.CheckBalanced(), "route A books should balance")
	require.NoError(t, ledgerB.CheckBalanced(), "route B books should balance")
}

func Test_Metamorphic_Chained_Takes_Collapse_When_Repeated(t *testing.T) {
	t.Parallel()

	ledgerA := testutil.NewLedger()
	defer ledgerA.Release()

	ledgerB := testutil.NewLedger()
	defer ledgerB.Release()

	srcA := slotbox.Of[testutil.Widget, testutil.SmallBuf](ledgerA.Disc(1, 4))
	srcB := slotbox.Of[testutil.Widget, testutil.SmallBuf](ledgerB.Disc(1, 4))

	// Route A: two hops through temporaries.
	hop1 := slotbox.Take[testutil.Widget, testutil.BigBuf](&srcA)
	hop2 := slotbox.Take[testutil.Widget, testutil.BigBuf](&hop1)

	// Route B: a single take.
	single := slotbox.Take[testutil.Widget, testutil.BigBuf](&srcB)

	diff := cmp.Diff(viewOf(&hop2), viewOf(&single))
	assert.Empty(t, diff, "hop count should not change the observable value")

	assert.False(t, hop1.Occupied(), "the intermediate should be empty")

	diff = cmp.Diff(ledgerA.Snapshot(), ledgerB.Snapshot())
	assert.Empty(t, diff, "neither route should dispose anything")

	require.NoError(t, hop2.Close(), "route A drain should succeed")
	require.NoError(t, single.Close(), "route B drain should succeed")
	require.NoError(t, ledgerA.CheckBalanced(), "route A books should balance")
	require.NoError(t, ledgerB.CheckBalanced(), "route B books should balance")
}
