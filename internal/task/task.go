// Package task runs file operations on background goroutines and tracks
// them until the main loop observes their completion.
package task

import (
	"fmt"
	"sync/atomic"

	"github.com/bpetrich/skipper/internal/fileops"
)

const progressBuffer = 64

var nextID atomic.Uint64

// Operation is one tracked background file operation. The progress channel
// carries snapshots in the order the worker sent them and is closed exactly
// once when the worker finishes; the worker's verdict is only available
// from the result channel after that close.
type Operation struct {
	id      uint64
	Kind    string // "copy" or "move"
	SrcTab  int
	DestTab int
	Latest  fileops.Progress
	HasProg bool

	progress chan fileops.Progress
	result   chan error
}

// ID returns the operation's stable identifier
func (op *Operation) ID() uint64 {
	return op.id
}

// send forwards a progress snapshot without ever blocking the worker on a
// slow UI. Dropped snapshots are fine; order of the kept ones is preserved
func (op *Operation) send(p fileops.Progress) {
	select {
	case op.progress <- p:
	default:
	}
}

// Spawn starts run on its own goroutine and returns the tracked handle.
// A panicking worker is reported as a join error, not a crashed process
func Spawn(kind string, srcTab, destTab int, run func(report fileops.ProgressFunc) error) *Operation {
	op := &Operation{
		id:       nextID.Add(1),
		Kind:     kind,
		SrcTab:   srcTab,
		DestTab:  destTab,
		progress: make(chan fileops.Progress, progressBuffer),
		result:   make(chan error, 1),
	}

	go func() {
		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker panicked: %v", r)
				}
			}()
			return run(op.send)
		}()
		// The result must be readable before the disconnect is observable
		op.result <- err
		close(op.progress)
	}()

	return op
}

// Done reports one observed completion
type Done struct {
	Op  *Operation
	Err error
}

// Tracker owns the set of in-flight operations. It is only ever touched by
// the main loop; the progress channels are the sole thread boundary.
type Tracker struct {
	ops []*Operation
}

// NewTracker returns an empty tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// Register adds an operation to the tracked set
func (t *Tracker) Register(op *Operation) {
	t.ops = append(t.ops, op)
}

// Running returns the number of tracked operations
func (t *Tracker) Running() int {
	return len(t.ops)
}

// Operations returns the tracked set for display purposes
func (t *Tracker) Operations() []*Operation {
	return t.ops
}

// Poll performs one non-blocking pass over the tracked set. Buffered
// progress snapshots are drained onto each operation's Latest field. The
// first observed disconnect removes the operation, joins the worker and
// ends the pass; remaining completions wait for the next pass so per-frame
// work stays bounded.
func (t *Tracker) Poll() *Done {
	for _, op := range t.ops {
	drain:
		for {
			select {
			case p, ok := <-op.progress:
				if !ok {
					t.remove(op.id)
					return &Done{Op: op, Err: <-op.result}
				}
				op.Latest = p
				op.HasProg = true
			default:
				break drain
			}
		}
	}
	return nil
}

// remove filters by id rather than position so completions can never be
// confused by reordering
func (t *Tracker) remove(id uint64) {
	kept := t.ops[:0]
	for _, op := range t.ops {
		if op.id != id {
			kept = append(kept, op)
		}
	}
	t.ops = kept
}
