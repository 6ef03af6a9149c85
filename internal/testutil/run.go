package testutil

import "testing"

// RunConfig configures a behavior test run.
type RunConfig struct {
	// MaxOps is the maximum number of operations to execute.
	MaxOps int

	// CompareEveryN runs full universe comparison every N operations.
	// Set to 0 to compare only after the drain at the end.
	CompareEveryN int

	// Small and Big are the arena sizes.
	Small int
	Big   int
}

// DefaultRunConfig returns a balanced configuration for behavior tests.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		MaxOps:        200,
		CompareEveryN: 1,
		Small:         4,
		Big:           4,
	}
}

// RunBehavior executes the operation stream derived from seed against both
// the real arena and the model, comparing per-op results and, periodically,
// the whole universe. At the end it drains the arena and verifies the
// disposal books balance: every value placed during the run was disposed
// exactly once.
func RunBehavior(tb testing.TB, cfg RunConfig, seed []byte) {
	tb.Helper()

	if cfg.MaxOps <= 0 {
		tb.Fatalf("RunBehavior requires MaxOps > 0")
	}

	h := NewHarness(cfg.Small, cfg.Big)
	defer h.Release()

	gen := NewOpGenerator(seed, h.Model, DefaultOpGenConfig())
	history := make([]string, 0, cfg.MaxOps)

	for opIndex := 1; opIndex <= cfg.MaxOps && gen.HasMore(); opIndex++ {
		op := gen.NextOp()
		history = append(history, op.String())

		modelRes, realRes := h.Apply(op)

		if err := SameResult(op, modelRes, realRes); err != nil {
			tb.Fatalf("%v\n%s", err, FormatOps(history))
		}

		if cfg.CompareEveryN > 0 && opIndex%cfg.CompareEveryN == 0 {
			if err := CompareUniverse(h, history); err != nil {
				tb.Fatal(err)
			}
		}
	}

	if err := CompareUniverse(h, history); err != nil {
		tb.Fatal(err)
	}

	if err := h.CloseAll(); err != nil {
		tb.Fatalf("drain: %v\n%s", err, FormatOps(history))
	}

	if err := CompareUniverse(h, history); err != nil {
		tb.Fatal(err)
	}

	if err := h.Ledger.CheckBalanced(); err != nil {
		tb.Fatalf("ledger after drain: %v\n%s", err, FormatOps(history))
	}

	if err := h.Model.CheckDrained(); err != nil {
		tb.Fatalf("model after drain: %v\n%s", err, FormatOps(history))
	}
}
