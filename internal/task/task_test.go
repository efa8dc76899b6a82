package task

import (
	"errors"
	"testing"
	"time"

	"github.com/bpetrich/skipper/internal/fileops"
)

// pollUntilDone polls the tracker until it reports a completion
func pollUntilDone(t *testing.T, tracker *Tracker) *Done {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if done := tracker.Poll(); done != nil {
			return done
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for a completion")
	return nil
}

func TestSpawnReportsProgressInOrder(t *testing.T) {
	release := make(chan struct{})
	op := Spawn("copy", 0, 1, func(report fileops.ProgressFunc) error {
		for i := 1; i <= 3; i++ {
			report(fileops.Progress{DoneFiles: i, TotalFiles: 3})
		}
		<-release
		return nil
	})

	tracker := NewTracker()
	tracker.Register(op)

	// All three snapshots are buffered; one pass drains them in order,
	// leaving the newest on the operation
	deadline := time.Now().Add(2 * time.Second)
	for !op.HasProg || op.Latest.DoneFiles != 3 {
		if time.Now().After(deadline) {
			t.Fatalf("progress not drained, latest = %+v", op.Latest)
		}
		tracker.Poll()
		time.Sleep(time.Millisecond)
	}

	if tracker.Running() != 1 {
		t.Errorf("operation should still be tracked, running = %d", tracker.Running())
	}

	close(release)
	done := pollUntilDone(t, tracker)
	if done.Err != nil {
		t.Errorf("unexpected join error: %v", done.Err)
	}
	if tracker.Running() != 0 {
		t.Errorf("running = %d after completion, want 0", tracker.Running())
	}
}

func TestPollDrainsOneCompletionPerPass(t *testing.T) {
	const n = 3

	tracker := NewTracker()
	release := make(chan struct{})
	for i := 0; i < n; i++ {
		op := Spawn("copy", i, i, func(report fileops.ProgressFunc) error {
			<-release
			return nil
		})
		tracker.Register(op)
	}

	if done := tracker.Poll(); done != nil {
		t.Fatal("nothing should complete while workers are held")
	}

	close(release)

	seen := make(map[uint64]int)
	for i := 0; i < n; i++ {
		done := pollUntilDone(t, tracker)
		seen[done.Op.ID()]++
		if want := n - i - 1; tracker.Running() != want {
			t.Errorf("running = %d after completion %d, want %d", tracker.Running(), i+1, want)
		}
	}

	// Exactly N joins, each operation observed exactly once
	if len(seen) != n {
		t.Errorf("observed %d distinct operations, want %d", len(seen), n)
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("operation %d completed %d times", id, count)
		}
	}

	if done := tracker.Poll(); done != nil {
		t.Error("no completions should remain")
	}
}

func TestJoinSurfacesWorkerError(t *testing.T) {
	wantErr := errors.New("disk full")
	op := Spawn("move", 0, 0, func(report fileops.ProgressFunc) error {
		return wantErr
	})

	tracker := NewTracker()
	tracker.Register(op)

	done := pollUntilDone(t, tracker)
	if !errors.Is(done.Err, wantErr) {
		t.Errorf("join error = %v, want %v", done.Err, wantErr)
	}
}

func TestJoinSurfacesWorkerPanic(t *testing.T) {
	op := Spawn("copy", 0, 0, func(report fileops.ProgressFunc) error {
		panic("boom")
	})

	tracker := NewTracker()
	tracker.Register(op)

	done := pollUntilDone(t, tracker)
	if done.Err == nil {
		t.Fatal("a panicking worker must produce a join error")
	}
}

func TestDoneCarriesTabIndexes(t *testing.T) {
	op := Spawn("copy", 2, 5, func(report fileops.ProgressFunc) error {
		return nil
	})

	tracker := NewTracker()
	tracker.Register(op)

	done := pollUntilDone(t, tracker)
	if done.Op.SrcTab != 2 || done.Op.DestTab != 5 {
		t.Errorf("tab indexes = (%d, %d), want (2, 5)", done.Op.SrcTab, done.Op.DestTab)
	}
}

func TestProgressSendNeverBlocks(t *testing.T) {
	finished := make(chan struct{})
	op := Spawn("copy", 0, 0, func(report fileops.ProgressFunc) error {
		// Far more snapshots than the buffer holds; the worker must not stall
		for i := 0; i < progressBuffer*10; i++ {
			report(fileops.Progress{DoneFiles: i})
		}
		close(finished)
		return nil
	})

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("worker blocked on progress reporting")
	}

	tracker := NewTracker()
	tracker.Register(op)
	done := pollUntilDone(t, tracker)
	if done.Err != nil {
		t.Errorf("unexpected join error: %v", done.Err)
	}
}
