package engine

import (
	"testing"
	"time"
)

func waitForExit(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatal("channel closed before exit event observed")
			}
			if ev.Kind == Exit {
				return ev
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for exit event")
		}
	}
}

func TestSupervisorCapturesStdout(t *testing.T) {
	sup, err := Launch(ProcessSpec{Program: "/bin/sh", Args: []string{"-c", "echo hi"}})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	b := NewBroadcaster()
	if err := sup.Attach(b); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	sub := b.Subscribe(false)
	ev := waitForExit(t, sub)
	if ev.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", ev.ExitCode)
	}

	var stdout []byte
	for _, e := range b.Snapshot() {
		if e.Kind == Stdout {
			stdout = append(stdout, e.Data...)
		}
	}
	if string(stdout) != "hi\n" {
		t.Fatalf("stdout = %q, want %q", stdout, "hi\n")
	}
}

func TestSupervisorCapturesStderr(t *testing.T) {
	sup, err := Launch(ProcessSpec{Program: "/bin/sh", Args: []string{"-c", "echo oops 1>&2"}})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	b := NewBroadcaster()
	if err := sup.Attach(b); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	waitForExit(t, b.Subscribe(false))

	var stderr []byte
	for _, e := range b.Snapshot() {
		if e.Kind == Stderr {
			stderr = append(stderr, e.Data...)
		}
	}
	if string(stderr) != "oops\n" {
		t.Fatalf("stderr = %q, want %q", stderr, "oops\n")
	}
}

func TestSupervisorAttachTwiceFails(t *testing.T) {
	sup, err := Launch(ProcessSpec{Program: "/bin/sh", Args: []string{"-c", "true"}})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	b := NewBroadcaster()
	if err := sup.Attach(b); err != nil {
		t.Fatalf("first Attach: %v", err)
	}
	if err := sup.Attach(NewBroadcaster()); err != ErrAlreadyAttached {
		t.Fatalf("second Attach = %v, want ErrAlreadyAttached", err)
	}
	waitForExit(t, b.Subscribe(false))
}

func TestSupervisorStopDeliversInterrupt(t *testing.T) {
	// Stop signals only the shell, and a shell runs a trap only after its
	// current foreground command ends, so the loop keeps that command short.
	sup, err := Launch(ProcessSpec{Program: "/bin/sh", Args: []string{"-c", "trap 'exit 0' INT; while :; do sleep 0.1; done"}})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	b := NewBroadcaster()
	if err := sup.Attach(b); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	sub := b.Subscribe(false)

	if err := sup.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	waitForExit(t, sub)

	if err := sup.Stop(); err != ErrAlreadyStopped {
		t.Fatalf("second Stop = %v, want ErrAlreadyStopped", err)
	}
}
