// Copy semantics: slots are values until their first bound use, then copies
// of a bound slot are rejected on use, in the manner of strings.Builder.

package slotbox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/slotbox"
)

func Test_Slot_Copies_Are_Independent_When_Copied_Before_Binding(t *testing.T) {
	t.Parallel()

	s := slotbox.Of[Shape, ShapeBuf](Square{Side: 4, ID: 7})

	require.False(t, slotbox.BoundForTesting(&s), "constructor results start unbound")

	// An unbound slot is a plain value. Copying it forks the occupant: each
	// copy owns its own bytes from here on.
	c := s

	sq, ok := c.Get().(*Square)
	require.True(t, ok, "the copy should view its own occupant")

	sq.Side = 6

	assert.InDelta(t, 36.0, c.Get().Area(), 1e-12, "the copy should see its own mutation")
	assert.InDelta(t, 16.0, s.Get().Area(), 1e-12, "the original should be unaffected")

	require.NoError(t, c.Close(), "the copy should close")
	require.NoError(t, s.Close(), "the original should close")
}

func Test_Slot_Binds_On_First_Mutating_Use_When_Fresh(t *testing.T) {
	t.Parallel()

	var s slotbox.Slot[Shape, ShapeBuf]

	slotbox.Emplace(&s, func(sq *Square) { sq.Side = 4 })
	require.True(t, slotbox.BoundForTesting(&s), "Emplace should bind the slot")

	// Reads never bind.
	var fresh slotbox.Slot[Shape, ShapeBuf]

	_ = fresh.Occupied()
	_ = fresh.Get()
	assert.False(t, slotbox.BoundForTesting(&fresh), "reads should leave the slot unbound")

	// A refused emplace still binds: the call declared the address in use.
	refused := slotbox.Of[Shape, ShapeBuf](Circle{R: 1})
	slotbox.Emplace[Circle](&refused, nil)
	assert.True(t, slotbox.BoundForTesting(&refused), "a refused Emplace should still bind")

	// Emptying unbinds, so a closed slot is a zero value again.
	require.NoError(t, s.Close(), "Close should succeed")
	assert.False(t, slotbox.BoundForTesting(&s), "Close should unbind the slot")
}

func Test_Slot_Use_Panics_When_Bound_Slot_Copied(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		use  func(c *slotbox.Slot[Shape, ShapeBuf])
	}{
		{
			name: "Occupied",
			use: func(c *slotbox.Slot[Shape, ShapeBuf]) {
				_ = c.Occupied()
			},
		},
		{
			name: "Get",
			use: func(c *slotbox.Slot[Shape, ShapeBuf]) {
				_ = c.Get()
			},
		},
		{
			name: "Close",
			use: func(c *slotbox.Slot[Shape, ShapeBuf]) {
				_ = c.Close()
			},
		},
		{
			name: "Emplace",
			use: func(c *slotbox.Slot[Shape, ShapeBuf]) {
				slotbox.Emplace[Circle](c, nil)
			},
		},
		{
			name: "MoveDestination",
			use: func(c *slotbox.Slot[Shape, ShapeBuf]) {
				var src slotbox.Slot[Shape, ShapeBuf]
				_ = slotbox.Move(c, &src)
			},
		},
		{
			name: "MoveSource",
			use: func(c *slotbox.Slot[Shape, ShapeBuf]) {
				var dst slotbox.Slot[Shape, ShapeBuf]
				_ = slotbox.Move(&dst, c)
			},
		},
		{
			name: "TakeSource",
			use: func(c *slotbox.Slot[Shape, ShapeBuf]) {
				_ = slotbox.Take[Shape, ShapeBuf](c)
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var s slotbox.Slot[Shape, ShapeBuf]

			slotbox.Emplace(&s, func(sq *Square) { sq.Side = 4 })

			c := s

			msg := panicMessage(t, func() {
				testCase.use(&c)
			})

			assert.Equal(t, copiedSlotPanic, msg, "using a copy of a bound slot should panic")
			assert.True(t, s.Occupied(), "the original should remain usable")
		})
	}
}

func Test_Slot_Copy_Is_Zero_Value_When_Source_Was_Moved_Out(t *testing.T) {
	t.Parallel()

	var src slotbox.Slot[Shape, ShapeBuf]

	slotbox.Emplace(&src, func(sq *Square) { sq.Side = 4 })

	var dst slotbox.Slot[Shape, ShapeBuf]

	require.NoError(t, slotbox.Move(&dst, &src), "Move should succeed")

	// Moving out resets the source to the zero value, so copies of it are
	// fresh slots, not poisoned ones.
	c := src

	assert.False(t, c.Occupied(), "the copy should be empty")

	slotbox.Emplace(&c, func(sq *Square) { sq.Side = 2 })
	assert.InDelta(t, 4.0, c.Get().Area(), 1e-12, "the copy should accept a new occupant")

	require.NoError(t, c.Close(), "the copy should close")
	require.NoError(t, dst.Close(), "the destination should close")
}

func Test_Slot_Use_Panics_When_Backing_Array_Reallocated(t *testing.T) {
	t.Parallel()

	arena := make([]slotbox.Slot[Shape, ShapeBuf], 1, 1)
	slotbox.Emplace(&arena[0], func(sq *Square) { sq.Side = 4 })

	// Growing the slice relocates the bound slot, which is a copy like any
	// other.
	grown := append(arena, slotbox.Of[Shape, ShapeBuf](Circle{R: 1}))

	msg := panicMessage(t, func() {
		_ = grown[0].Get()
	})

	assert.Equal(t, copiedSlotPanic, msg, "a relocated bound slot should be rejected on use")
	assert.True(t, arena[0].Occupied(), "the original backing array entry should remain usable")
}
