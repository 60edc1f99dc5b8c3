package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// JobStatus is the caller-visible snapshot of a job's run state.
type JobStatus struct {
	Running  bool
	ExitCode int // meaningful only when !Running
}

type jobRecord struct {
	owner       string
	id          uuid.UUID
	supervisor  *Supervisor
	broadcaster *Broadcaster
}

// Registry is the process-global, owner-scoped table of live and finished
// jobs. Lookups never hold the registry lock while doing I/O: a matching
// record is copied out from under the lock, then used after it is released.
type Registry struct {
	mu   sync.Mutex
	jobs map[string]map[uuid.UUID]*jobRecord // owner -> job id -> record
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]map[uuid.UUID]*jobRecord)}
}

// Spawn launches spec under owner's namespace and returns its newly assigned
// job ID. The process is attached to a fresh Broadcaster before Spawn
// returns, so no output can be missed between launch and the first
// subscription.
func (r *Registry) Spawn(owner string, spec ProcessSpec) (uuid.UUID, error) {
	sup, err := Launch(spec)
	if err != nil {
		return uuid.UUID{}, err
	}

	b := NewBroadcaster()
	if err := sup.Attach(b); err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	id := uuid.New()
	rec := &jobRecord{owner: owner, id: id, supervisor: sup, broadcaster: b}

	r.mu.Lock()
	byOwner, ok := r.jobs[owner]
	if !ok {
		byOwner = make(map[uuid.UUID]*jobRecord)
		r.jobs[owner] = byOwner
	}
	byOwner[id] = rec
	r.mu.Unlock()

	return id, nil
}

// lookup returns the record for (owner, id), or ErrNotFound. A job belonging
// to a different owner is indistinguishable from a nonexistent one: the
// registry never leaks existence across tenants.
func (r *Registry) lookup(owner string, id uuid.UUID) (*jobRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byOwner, ok := r.jobs[owner]
	if !ok {
		return nil, ErrNotFound
	}
	rec, ok := byOwner[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Stop signals the job's process to terminate. See Supervisor.Stop for the
// exact signal semantics.
func (r *Registry) Stop(owner string, id uuid.UUID) error {
	rec, err := r.lookup(owner, id)
	if err != nil {
		return err
	}
	return rec.supervisor.Stop()
}

// Status reports whether the job is still running and, if not, its exit
// code.
func (r *Registry) Status(owner string, id uuid.UUID) (JobStatus, error) {
	rec, err := r.lookup(owner, id)
	if err != nil {
		return JobStatus{}, err
	}
	events := rec.broadcaster.Snapshot()
	for _, ev := range events {
		if ev.Kind == Exit {
			return JobStatus{Running: false, ExitCode: ev.ExitCode}, nil
		}
	}
	return JobStatus{Running: true}, nil
}

// Subscribe returns a channel of the job's output events, replaying
// everything published so far when fromBeginning is true.
func (r *Registry) Subscribe(owner string, id uuid.UUID, fromBeginning bool) (<-chan Event, error) {
	rec, err := r.lookup(owner, id)
	if err != nil {
		return nil, err
	}
	return rec.broadcaster.Subscribe(fromBeginning), nil
}
