package testutil

import "github.com/calvinalkan/slotbox/model"

// Seed bundles a human-readable name with seed bytes.
//
// Curated seed sequences are hand-crafted to exercise specific scenarios
// that random fuzzing might take a long time to discover. Each seed produces
// a deterministic operation sequence when fed to OpGenerator with
// [DefaultOpGenConfig] and the [DefaultRunConfig] arena sizes.
//
// Use RunBehavior to execute one:
//
//	testutil.RunBehavior(t, testutil.DefaultRunConfig(), testutil.SeedBasicLifecycle())
type Seed struct {
	Name string
	Data []byte
}

// CuratedSeeds returns all curated seeds with descriptive names.
func CuratedSeeds() []Seed {
	return []Seed{
		{Name: "basic_lifecycle", Data: SeedBasicLifecycle()},
		{Name: "widening_chain", Data: SeedWideningChain()},
		{Name: "eviction", Data: SeedEviction()},
		{Name: "emplace_refusal", Data: SeedEmplaceRefusal()},
		{Name: "self_move", Data: SeedSelfMove()},
		{Name: "empty_transfers", Data: SeedEmptyTransfers()},
		{Name: "drain_all", Data: SeedDrainAll()},
		{Name: "mixed_operations", Data: SeedMixedOperations()},
	}
}

// defaultSeedBuilder returns a builder matching DefaultOpGenConfig and the
// DefaultRunConfig arena sizes. Seeds break if either drifts.
func defaultSeedBuilder() *SeedBuilder {
	cfg := DefaultRunConfig()

	return NewSeedBuilder(DefaultOpGenConfig(), cfg.Small, cfg.Big)
}

// SeedBasicLifecycle places a value, bounces an emplace off it, widens it
// into the big arena, and closes it.
func SeedBasicLifecycle() []byte {
	return defaultSeedBuilder().
		PlaceDisc(model.Small, 0, 2).
		EmplaceDisc(model.Small, 0, 5).
		Move(model.Big, 1, model.Small, 0).
		Close(model.Big, 1).
		Bytes()
}

// SeedWideningChain walks one value through same-class and widening moves,
// then routes it through a taken slot.
func SeedWideningChain() []byte {
	return defaultSeedBuilder().
		PlaceDisc(model.Small, 2, 3).
		Move(model.Small, 1, model.Small, 2).
		Move(model.Big, 3, model.Small, 1).
		Take(model.Big, 3, 0).
		Close(model.Big, 0).
		Bytes()
}

// SeedEviction moves onto an occupied destination so the block there is
// disposed by the transfer.
func SeedEviction() []byte {
	return defaultSeedBuilder().
		PlaceBlock(0, 3, 4).
		PlaceDisc(model.Small, 1, 1).
		Move(model.Big, 0, model.Small, 1).
		Close(model.Big, 0).
		Bytes()
}

// SeedEmplaceRefusal constructs via emplace, then aims a second emplace at
// the now-occupied position.
func SeedEmplaceRefusal() []byte {
	return defaultSeedBuilder().
		EmplaceDisc(model.Small, 3, 4).
		EmplaceDisc(model.Small, 3, 7).
		Close(model.Small, 3).
		Bytes()
}

// SeedSelfMove moves a position onto itself, which must change nothing.
func SeedSelfMove() []byte {
	return defaultSeedBuilder().
		PlaceDisc(model.Big, 2, 6).
		Move(model.Big, 2, model.Big, 2).
		Close(model.Big, 2).
		Bytes()
}

// SeedEmptyTransfers moves and takes from empty sources, including onto an
// occupied destination, which empties it.
func SeedEmptyTransfers() []byte {
	return defaultSeedBuilder().
		Move(model.Big, 0, model.Small, 0).
		Take(model.Small, 1, 2).
		PlaceDisc(model.Big, 3, 2).
		Move(model.Big, 3, model.Small, 0).
		Bytes()
}

// SeedDrainAll fills every position, then closes every position.
func SeedDrainAll() []byte {
	b := defaultSeedBuilder().
		PlaceDisc(model.Small, 0, 1).
		PlaceDisc(model.Small, 1, 2).
		PlaceDisc(model.Small, 2, 3).
		PlaceDisc(model.Small, 3, 4).
		PlaceBlock(0, 1, 2).
		PlaceBlock(1, 2, 3).
		PlaceDisc(model.Big, 2, 5).
		PlaceBlock(3, 4, 4)

	b.Close(model.Small, 0).
		Close(model.Small, 1).
		Close(model.Small, 2).
		Close(model.Small, 3).
		Close(model.Big, 0).
		Close(model.Big, 1).
		Close(model.Big, 2).
		Close(model.Big, 3)

	return b.Bytes()
}

// SeedMixedOperations interleaves every op kind across both classes.
func SeedMixedOperations() []byte {
	return defaultSeedBuilder().
		PlaceDisc(model.Small, 0, 2).
		PlaceBlock(1, 2, 5).
		EmplaceDisc(model.Big, 0, 3).
		Move(model.Big, 1, model.Small, 0).
		EmplaceDisc(model.Small, 0, 6).
		Take(model.Big, 1, 2).
		Move(model.Big, 2, model.Big, 0).
		Close(model.Big, 1).
		PlaceDisc(model.Small, 2, 8).
		Move(model.Small, 3, model.Small, 2).
		Close(model.Small, 3).
		Close(model.Big, 2).
		Close(model.Small, 0).
		Bytes()
}
