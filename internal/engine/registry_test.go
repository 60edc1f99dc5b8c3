package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRegistrySpawnAndStatus(t *testing.T) {
	r := NewRegistry()
	id, err := r.Spawn("alice", ProcessSpec{Program: "/bin/sh", Args: []string{"-c", "exit 7"}})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	var status JobStatus
	for time.Now().Before(deadline) {
		status, err = r.Status("alice", id)
		if err != nil {
			t.Fatalf("Status: %v", err)
		}
		if !status.Running {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if status.Running {
		t.Fatal("job did not finish in time")
	}
	if status.ExitCode != 7 {
		t.Fatalf("ExitCode = %d, want 7", status.ExitCode)
	}
}

func TestRegistryOwnershipIsolation(t *testing.T) {
	r := NewRegistry()
	id, err := r.Spawn("alice", ProcessSpec{Program: "/bin/sh", Args: []string{"-c", "sleep 30"}})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	if _, err := r.Status("bob", id); err != ErrNotFound {
		t.Fatalf("cross-owner Status = %v, want ErrNotFound", err)
	}
	if err := r.Stop("bob", id); err != ErrNotFound {
		t.Fatalf("cross-owner Stop = %v, want ErrNotFound", err)
	}
	if _, err := r.Subscribe("bob", id, false); err != ErrNotFound {
		t.Fatalf("cross-owner Subscribe = %v, want ErrNotFound", err)
	}

	_ = r.Stop("alice", id)
}

func TestRegistryUnknownJob(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Status("alice", uuid.New()); err != ErrNotFound {
		t.Fatalf("Status = %v, want ErrNotFound", err)
	}
}
