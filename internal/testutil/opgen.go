package testutil

import "github.com/calvinalkan/slotbox/model"

// OpGenConfig configures the operation generator. Rates are percentages of
// generated ops; whatever the first five leave of 100 goes to close ops.
type OpGenConfig struct {
	// PlaceRate is the percentage of ops that fill an empty position with
	// Of or New.
	PlaceRate int

	// EmplaceRate is the percentage of ops that emplace, aimed at occupied
	// positions as readily as empty ones.
	EmplaceRate int

	// MoveRate is the percentage of ops that move between positions,
	// including a position onto itself.
	MoveRate int

	// TakeRate is the percentage of ops that route a value through a
	// freshly taken slot.
	TakeRate int
}

// DefaultOpGenConfig returns a balanced configuration.
func DefaultOpGenConfig() OpGenConfig {
	return OpGenConfig{
		PlaceRate:   30,
		EmplaceRate: 15,
		MoveRate:    25,
		TakeRate:    10,
	}
}

// OpGenerator derives deterministic operations from a byte stream.
//
// It generates only operations that are legal for the harness: placements
// target empty positions, transfers never shrink storage. To do that it
// reads the same model universe the harness mutates, so ops must be applied
// in generation order.
type OpGenerator struct {
	stream *ByteStream
	config OpGenConfig
	model  *model.Universe
	serial int32
}

// NewOpGenerator creates a generator over fuzzBytes for the given universe.
func NewOpGenerator(fuzzBytes []byte, u *model.Universe, cfg OpGenConfig) *OpGenerator {
	return &OpGenerator{
		stream: NewByteStream(fuzzBytes),
		config: cfg,
		model:  u,
	}
}

// HasMore reports whether more operations can be generated.
func (g *OpGenerator) HasMore() bool {
	return g.stream.HasMore()
}

// NextOp generates the next operation.
func (g *OpGenerator) NextOp() Op {
	choice := int(g.stream.NextByte()) % 100

	cumulative := g.config.PlaceRate
	if choice < cumulative {
		return g.genPlace()
	}

	cumulative += g.config.EmplaceRate
	if choice < cumulative {
		return g.genEmplace()
	}

	cumulative += g.config.MoveRate
	if choice < cumulative {
		return g.genMove()
	}

	cumulative += g.config.TakeRate
	if choice < cumulative {
		return g.genTake()
	}

	return g.genClose()
}

func (g *OpGenerator) genPlace() Op {
	empties := emptyPositions(g.model)
	if len(empties) == 0 {
		// Arena full; close something instead.
		return g.genClose()
	}

	pos := empties[g.stream.NextInt(len(empties))]

	if pos.class == model.Big && g.stream.NextBool() {
		return OpPlaceBlock{
			Index:  pos.index,
			Serial: g.nextSerial(),
			W:      1 + float64(g.stream.NextInt(8)),
			H:      1 + float64(g.stream.NextInt(8)),
		}
	}

	return OpPlaceDisc{
		Class:  pos.class,
		Index:  pos.index,
		Serial: g.nextSerial(),
		R:      1 + float64(g.stream.NextInt(8)),
	}
}

func (g *OpGenerator) genEmplace() Op {
	all := allPositions(g.model)
	pos := all[g.stream.NextInt(len(all))]

	return OpEmplaceDisc{
		Class:  pos.class,
		Index:  pos.index,
		Serial: g.nextSerial(),
		R:      1 + float64(g.stream.NextInt(8)),
	}
}

func (g *OpGenerator) genMove() Op {
	all := allPositions(g.model)
	src := all[g.stream.NextInt(len(all))]

	dsts := wideningTargets(g.model, src.class)
	dst := dsts[g.stream.NextInt(len(dsts))]

	return OpMove{
		DstClass: dst.class,
		DstIndex: dst.index,
		SrcClass: src.class,
		SrcIndex: src.index,
	}
}

func (g *OpGenerator) genTake() Op {
	all := allPositions(g.model)
	src := all[g.stream.NextInt(len(all))]

	return OpTake{
		SrcClass: src.class,
		SrcIndex: src.index,
		DstIndex: g.stream.NextInt(len(g.model.Big)),
	}
}

func (g *OpGenerator) genClose() Op {
	all := allPositions(g.model)
	pos := all[g.stream.NextInt(len(all))]

	return OpClose{Class: pos.class, Index: pos.index}
}

func (g *OpGenerator) nextSerial() int32 {
	g.serial++

	return g.serial
}

// position names one arena slot by class and index.
type position struct {
	class model.Class
	index int
}

// allPositions lists every position, small before big, in index order. The
// ordering is part of the seed format: SeedBuilder computes pick bytes
// against the same lists.
func allPositions(u *model.Universe) []position {
	out := make([]position, 0, len(u.Small)+len(u.Big))

	for i := range u.Small {
		out = append(out, position{model.Small, i})
	}

	for i := range u.Big {
		out = append(out, position{model.Big, i})
	}

	return out
}

// emptyPositions lists every currently empty position in allPositions order.
func emptyPositions(u *model.Universe) []position {
	var out []position

	for i := range u.Small {
		if !u.Small[i].Live {
			out = append(out, position{model.Small, i})
		}
	}

	for i := range u.Big {
		if !u.Big[i].Live {
			out = append(out, position{model.Big, i})
		}
	}

	return out
}

// wideningTargets lists the legal move destinations for a source class:
// same class first, then big for a small source. Never small for a big
// source, which would shrink storage.
func wideningTargets(u *model.Universe, src model.Class) []position {
	var out []position

	if src == model.Small {
		for i := range u.Small {
			out = append(out, position{model.Small, i})
		}
	}

	for i := range u.Big {
		out = append(out, position{model.Big, i})
	}

	return out
}
