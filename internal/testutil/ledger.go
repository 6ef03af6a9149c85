package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ledgerSeq hands out process-unique ledger ids; ledgers resolves an id back
// to its ledger when a tracked value's Close runs. Tracked values must stay
// pointer-free, so they carry the id instead of a *Ledger.
var (
	ledgerSeq atomic.Int32
	ledgers   sync.Map // map[int32]*Ledger
)

// noteDisposal records one disposal of serial with the owning ledger.
// Untracked values (owner zero or released ledger) are dropped silently.
func noteDisposal(owner, serial int32) error {
	v, ok := ledgers.Load(owner)
	if !ok {
		return nil
	}

	return v.(*Ledger).noteDisposal(serial)
}

// Ledger observes the lifecycle of tracked values from outside the slots:
// it counts how often each serial was minted and how often it was disposed,
// and can script the error a serial's Close returns.
//
// Minting a value declares one expected disposal. A balanced ledger, where
// every serial was disposed exactly as often as minted, is the end-state
// invariant of every test that drains its slots.
type Ledger struct {
	id int32

	mu        sync.Mutex
	minted    map[int32]int
	disposed  map[int32]int
	closeErrs map[int32]error
}

// NewLedger returns a registered ledger. Callers own the registration and
// release it with [Ledger.Release] when the test is done.
func NewLedger() *Ledger {
	l := &Ledger{
		id:        ledgerSeq.Add(1),
		minted:    make(map[int32]int),
		disposed:  make(map[int32]int),
		closeErrs: make(map[int32]error),
	}

	ledgers.Store(l.id, l)

	return l
}

// Release removes the ledger from the process-wide registry. Disposals of
// its values after release are dropped.
func (l *Ledger) Release() {
	ledgers.Delete(l.id)
}

// Disc mints a tracked Disc and counts one expected disposal for serial.
func (l *Ledger) Disc(serial int32, r float64) Disc {
	l.noteMint(serial)

	return Disc{Owner: l.id, Serial: serial, R: r}
}

// Block mints a tracked Block and counts one expected disposal for serial.
func (l *Ledger) Block(serial int32, w, h float64) Block {
	l.noteMint(serial)

	return Block{Owner: l.id, Serial: serial, W: w, H: h}
}

// SetCloseError scripts the error the serial's Close returns on every
// disposal. Disposal counting is unaffected.
func (l *Ledger) SetCloseError(serial int32, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closeErrs[serial] = err
}

// Disposals returns how often serial has been disposed.
func (l *Ledger) Disposals(serial int32) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.disposed[serial]
}

// Snapshot returns a copy of the disposal counts keyed by serial.
func (l *Ledger) Snapshot() map[int32]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[int32]int, len(l.disposed))
	for serial, n := range l.disposed {
		out[serial] = n
	}

	return out
}

// CheckBalanced verifies that every minted serial was disposed exactly as
// often as it was minted and that nothing was disposed without a mint. It
// returns the first violation found.
func (l *Ledger) CheckBalanced() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for serial, want := range l.minted {
		if got := l.disposed[serial]; got != want {
			return fmt.Errorf("serial %d disposed %d times, want %d", serial, got, want)
		}
	}

	for serial, n := range l.disposed {
		if l.minted[serial] == 0 {
			return fmt.Errorf("serial %d disposed %d times but never minted", serial, n)
		}
	}

	return nil
}

func (l *Ledger) noteMint(serial int32) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.minted[serial]++
}

func (l *Ledger) noteDisposal(serial int32) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.disposed[serial]++

	return l.closeErrs[serial]
}
