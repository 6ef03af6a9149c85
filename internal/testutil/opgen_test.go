package testutil_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/slotbox/internal/testutil"
	"github.com/calvinalkan/slotbox/model"
)

// decodeOps replays seed through a generator wired to a fresh harness,
// applying each op so the generator sees the state it generated against.
func decodeOps(tb testing.TB, seed []byte, maxOps int) []string {
	tb.Helper()

	cfg := testutil.DefaultRunConfig()
	h := testutil.NewHarness(cfg.Small, cfg.Big)

	tb.Cleanup(h.Release)

	gen := testutil.NewOpGenerator(seed, h.Model, testutil.DefaultOpGenConfig())

	var decoded []string

	for len(decoded) < maxOps && gen.HasMore() {
		op := gen.NextOp()
		decoded = append(decoded, op.String())

		modelRes, realRes := h.Apply(op)
		if err := testutil.SameResult(op, modelRes, realRes); err != nil {
			tb.Fatalf("replay: %v", err)
		}
	}

	return decoded
}

func Test_OpGenerator_Produces_Same_Ops_When_Bytes_Are_Same(t *testing.T) {
	t.Parallel()

	seed := testutil.SeedMixedOperations()

	first := decodeOps(t, seed, 100)
	second := decodeOps(t, seed, 100)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("same bytes decoded differently (-first +second):\n%s", diff)
	}
}

func Test_OpGenerator_Places_Only_Into_Empty_Positions(t *testing.T) {
	t.Parallel()

	// Arbitrary bytes, long enough to cycle through full and empty arenas.
	seed := make([]byte, 512)
	for i := range seed {
		seed[i] = byte(i*37 + 11)
	}

	cfg := testutil.DefaultRunConfig()
	h := testutil.NewHarness(cfg.Small, cfg.Big)

	t.Cleanup(h.Release)

	gen := testutil.NewOpGenerator(seed, h.Model, testutil.DefaultOpGenConfig())

	for gen.HasMore() {
		op := gen.NextOp()

		switch o := op.(type) {
		case testutil.OpPlaceDisc:
			if h.Model.Slot(o.Class, o.Index).Live {
				t.Fatalf("generator emitted %s into a live position", op)
			}
		case testutil.OpPlaceBlock:
			if h.Model.Slot(model.Big, o.Index).Live {
				t.Fatalf("generator emitted %s into a live position", op)
			}
		case testutil.OpMove:
			if o.SrcClass == model.Big && o.DstClass == model.Small {
				t.Fatalf("generator emitted shrinking %s", op)
			}
		}

		h.Apply(op)
	}
}

func Test_SeedBuilder_Encodes_Ops_The_Generator_Decodes(t *testing.T) {
	t.Parallel()

	cfg := testutil.DefaultRunConfig()
	seed := testutil.NewSeedBuilder(testutil.DefaultOpGenConfig(), cfg.Small, cfg.Big).
		PlaceDisc(model.Small, 1, 4).
		PlaceBlock(2, 3, 5).
		EmplaceDisc(model.Small, 1, 2).
		Move(model.Big, 0, model.Small, 1).
		Take(model.Big, 0, 3).
		Close(model.Big, 3).
		Bytes()

	want := []string{
		"PlaceDisc(small[1], serial=1, r=4)",
		"PlaceBlock(big[2], serial=2, w=3, h=5)",
		"EmplaceDisc(small[1], serial=3, r=2)",
		"Move(big[0] <- small[1])",
		"Take(big[3] <- big[0])",
		"Close(big[3])",
	}

	got := decodeOps(t, seed, len(want)+1)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded ops diverge from encoded ops (-want +got):\n%s", diff)
	}
}

func Test_CuratedSeeds_Have_Unique_Names_And_Data(t *testing.T) {
	t.Parallel()

	seeds := testutil.CuratedSeeds()
	names := make(map[string]bool, len(seeds))

	for _, seed := range seeds {
		if seed.Name == "" {
			t.Fatal("curated seed with empty name")
		}

		if names[seed.Name] {
			t.Fatalf("duplicate curated seed name %q", seed.Name)
		}

		names[seed.Name] = true

		if len(seed.Data) == 0 {
			t.Fatalf("curated seed %q has no data", seed.Name)
		}
	}
}
