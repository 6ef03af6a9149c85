package testutil

import "unsafe"

// The widget family is the shared test domain: pointer-free concrete types
// of two sizes under one interface, each reporting a dispatched weight and a
// serial identity, and each notifying its minting [Ledger] when disposed.
// Two storage widths exist so transfers can widen but never shrink.

// Massy is the wider family: anything with a weight. The widget family
// implements it, which lets tests transfer widget slots into massy slots.
type Massy interface {
	Weight() float64
}

// Widget is the test family: massy values carrying a serial identity.
type Widget interface {
	Massy
	Tag() int32
}

// Disc is the small family member.
type Disc struct {
	// Owner is the id of the minting ledger, zero for untracked values.
	Owner int32

	// Serial identifies the logical value across transfers.
	Serial int32

	// R is the disc's radius; its weight is 3*R.
	R float64
}

// Weight implements [Widget].
func (d *Disc) Weight() float64 {
	return 3 * d.R
}

// Tag implements [Widget].
func (d *Disc) Tag() int32 {
	return d.Serial
}

// Close records the disposal with the minting ledger.
func (d *Disc) Close() error {
	return noteDisposal(d.Owner, d.Serial)
}

// Block is the large family member.
type Block struct {
	// Owner is the id of the minting ledger, zero for untracked values.
	Owner int32

	// Serial identifies the logical value across transfers.
	Serial int32

	// W and H are the block's sides; its weight is W*H.
	W, H float64
}

// Weight implements [Widget].
func (b *Block) Weight() float64 {
	return b.W * b.H
}

// Tag implements [Widget].
func (b *Block) Tag() int32 {
	return b.Serial
}

// Close records the disposal with the minting ledger.
func (b *Block) Close() error {
	return noteDisposal(b.Owner, b.Serial)
}

// Storage widths for the widget family, sized with the constant pattern the
// package documentation recommends.
const (
	discSize  = unsafe.Sizeof(Disc{})
	blockSize = unsafe.Sizeof(Block{})
)

// SmallBuf holds a Disc and nothing larger.
type SmallBuf = [discSize]byte

// BigBuf holds any widget family member.
type BigBuf = [max(discSize, blockSize)]byte
