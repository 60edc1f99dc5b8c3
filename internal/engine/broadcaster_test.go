package engine

import (
	"testing"
	"time"
)

func drainEvents(t *testing.T, ch <-chan Event, n int) []Event {
	t.Helper()
	var got []Event
	for i := 0; i < n; i++ {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("channel closed after %d events, wanted %d", len(got), n)
			}
			got = append(got, ev)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d/%d", i+1, n)
		}
	}
	return got
}

func TestBroadcasterLiveDelivery(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Subscribe(false)

	b.publishStdout([]byte("hello"))
	b.publishExit(0)

	got := drainEvents(t, sub, 2)
	if got[0].Kind != Stdout || string(got[0].Data) != "hello" {
		t.Fatalf("unexpected first event: %+v", got[0])
	}
	if got[1].Kind != Exit || got[1].ExitCode != 0 {
		t.Fatalf("unexpected second event: %+v", got[1])
	}

	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed after exit")
	}
}

func TestBroadcasterReplayFromBeginning(t *testing.T) {
	b := NewBroadcaster()
	b.publishStdout([]byte("one"))
	b.publishStderr([]byte("two"))

	sub := b.Subscribe(true)
	b.publishExit(3)

	got := drainEvents(t, sub, 3)
	if string(got[0].Data) != "one" || got[0].Kind != Stdout {
		t.Fatalf("replay event 0 wrong: %+v", got[0])
	}
	if string(got[1].Data) != "two" || got[1].Kind != Stderr {
		t.Fatalf("replay event 1 wrong: %+v", got[1])
	}
	if got[2].Kind != Exit || got[2].ExitCode != 3 {
		t.Fatalf("replay event 2 wrong: %+v", got[2])
	}
}

func TestBroadcasterReplayAfterExitIsClosed(t *testing.T) {
	b := NewBroadcaster()
	b.publishStdout([]byte("only"))
	b.publishExit(1)

	sub := b.Subscribe(true)
	got := drainEvents(t, sub, 2)
	if string(got[0].Data) != "only" {
		t.Fatalf("unexpected replay: %+v", got)
	}
	if got[1].Kind != Exit {
		t.Fatalf("expected exit replayed, got %+v", got[1])
	}
	if _, ok := <-sub; ok {
		t.Fatal("channel should already be closed for a finished job")
	}
}

func TestBroadcasterNoEventsAfterExit(t *testing.T) {
	b := NewBroadcaster()
	b.publishExit(0)
	b.publishStdout([]byte("too late"))

	if got := b.Snapshot(); len(got) != 1 {
		t.Fatalf("expected exactly one event after exit, got %d: %+v", len(got), got)
	}
}

func TestBroadcasterDeadSubscriberIsolation(t *testing.T) {
	b := NewBroadcaster()
	slow := b.Subscribe(false)
	fast := b.Subscribe(false)

	total := subscriberBuffer + 10

	// Fill both buffers to capacity, then let fast catch up on its backlog
	// while slow is never read.
	for i := 0; i < subscriberBuffer; i++ {
		b.publishStdout([]byte("x"))
	}
	backlog := drainEvents(t, fast, subscriberBuffer)

	fastDone := make(chan []Event, 1)
	go func() {
		fastDone <- append(backlog, drainEvents(t, fast, total+1-subscriberBuffer)...)
	}()

	// Overflow slow's full buffer, while fast drains the rest concurrently
	// in the background.
	for i := subscriberBuffer; i < total; i++ {
		b.publishStdout([]byte("x"))
	}
	b.publishExit(0)

	// fast must still observe everything published, proving one
	// subscriber's fate doesn't affect another's.
	select {
	case got := <-fastDone:
		if got[len(got)-1].Kind != Exit {
			t.Fatalf("fast subscriber missed exit: %+v", got[len(got)-1])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fast subscriber never finished draining")
	}

	select {
	case _, ok := <-slow:
		if ok {
			// slow may still have buffered entries before being dropped;
			// just ensure it terminates without blocking the test.
		}
	case <-time.After(time.Second):
		t.Fatal("slow subscriber channel never resolved")
	}
}

func TestBroadcasterSnapshotOrder(t *testing.T) {
	b := NewBroadcaster()
	b.publishStdout([]byte("a"))
	b.publishStderr([]byte("b"))
	b.publishExit(7)

	snap := b.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	for i, ev := range snap {
		if int(ev.Seq) != i {
			t.Fatalf("event %d has seq %d, want %d", i, ev.Seq, i)
		}
	}
}
