package testutil

import (
	"fmt"

	"github.com/calvinalkan/slotbox/model"
)

// SeedBuilder builds deterministic byte seeds for OpGenerator without
// hand-writing raw byte sequences.
//
// The builder encodes values according to OpGenerator's byte consumption
// order. It tracks its own model universe and serial counter so position
// picks and serials come out identical when the seed is replayed; its arena
// sizes and config must therefore match the replaying run's.
type SeedBuilder struct {
	cfg    OpGenConfig
	u      *model.Universe
	serial int32
	data   []byte
}

// NewSeedBuilder creates a builder for the given generator config and arena
// sizes.
func NewSeedBuilder(cfg OpGenConfig, small, big int) *SeedBuilder {
	return &SeedBuilder{cfg: cfg, u: model.NewUniverse(small, big)}
}

// Bytes returns a copy of the built seed bytes.
func (b *SeedBuilder) Bytes() []byte {
	return append([]byte(nil), b.data...)
}

// PlaceDisc encodes filling an empty position with a disc of radius r.
// r must be in [1,8], the range the generator derives from one byte.
func (b *SeedBuilder) PlaceDisc(class model.Class, index int, r int) *SeedBuilder {
	b.choice(b.cfg.placeStart())
	b.pickFrom(emptyPositions(b.u), class, index, "place target")

	if class == model.Big {
		b.data = append(b.data, 0) // even: disc, not block
	}

	b.param(r)

	b.serial++
	b.u.Place(class, index, model.Occupant{Tag: b.serial})

	return b
}

// PlaceBlock encodes filling an empty big position with a w by h block.
// w and h must be in [1,8].
func (b *SeedBuilder) PlaceBlock(index int, w, h int) *SeedBuilder {
	b.choice(b.cfg.placeStart())
	b.pickFrom(emptyPositions(b.u), model.Big, index, "place target")
	b.data = append(b.data, 1) // odd: block
	b.param(w)
	b.param(h)

	b.serial++
	b.u.Place(model.Big, index, model.Occupant{Tag: b.serial})

	return b
}

// EmplaceDisc encodes an emplace aimed at any position, occupied or not.
// r must be in [1,8].
func (b *SeedBuilder) EmplaceDisc(class model.Class, index int, r int) *SeedBuilder {
	b.choice(b.cfg.emplaceStart())
	b.pickFrom(allPositions(b.u), class, index, "emplace target")
	b.param(r)

	b.serial++
	b.u.Emplace(class, index, model.Occupant{Tag: b.serial})

	return b
}

// Move encodes a transfer between two positions, self included.
func (b *SeedBuilder) Move(dstClass model.Class, dstIndex int, srcClass model.Class, srcIndex int) *SeedBuilder {
	b.choice(b.cfg.moveStart())
	b.pickFrom(allPositions(b.u), srcClass, srcIndex, "move source")
	b.pickFrom(wideningTargets(b.u, srcClass), dstClass, dstIndex, "move target")

	b.u.Move(dstClass, dstIndex, srcClass, srcIndex)

	return b
}

// Take encodes routing a value from a source position through a taken slot
// into a big position.
func (b *SeedBuilder) Take(srcClass model.Class, srcIndex int, dstIndex int) *SeedBuilder {
	b.choice(b.cfg.takeStart())
	b.pickFrom(allPositions(b.u), srcClass, srcIndex, "take source")
	b.data = append(b.data, byte(dstIndex))

	b.u.Move(model.Big, dstIndex, srcClass, srcIndex)

	return b
}

// Close encodes closing one position.
func (b *SeedBuilder) Close(class model.Class, index int) *SeedBuilder {
	b.choice(b.cfg.closeStart())
	b.pickFrom(allPositions(b.u), class, index, "close target")

	b.u.Close(class, index)

	return b
}

// choice appends the roulette byte selecting an op branch.
func (b *SeedBuilder) choice(start int) {
	b.data = append(b.data, byte(start))
}

// pickFrom appends the byte selecting (class, index) from list, which must
// be the same list the generator will build at this point of the stream.
func (b *SeedBuilder) pickFrom(list []position, class model.Class, index int, what string) {
	for i, p := range list {
		if p.class == class && p.index == index {
			b.data = append(b.data, byte(i))

			return
		}
	}

	panic(fmt.Sprintf("seed builder: %s %v[%d] not selectable", what, class, index))
}

// param appends the byte for a size parameter in [1,8].
func (b *SeedBuilder) param(v int) {
	if v < 1 || v > 8 {
		panic(fmt.Sprintf("seed builder: param %d out of range [1,8]", v))
	}

	b.data = append(b.data, byte(v-1))
}

// Branch start offsets in the roulette. Must mirror OpGenerator.NextOp.

func (c OpGenConfig) placeStart() int {
	return 0
}

func (c OpGenConfig) emplaceStart() int {
	return c.PlaceRate
}

func (c OpGenConfig) moveStart() int {
	return c.PlaceRate + c.EmplaceRate
}

func (c OpGenConfig) takeStart() int {
	return c.PlaceRate + c.EmplaceRate + c.MoveRate
}

func (c OpGenConfig) closeStart() int {
	return c.PlaceRate + c.EmplaceRate + c.MoveRate + c.TakeRate
}
