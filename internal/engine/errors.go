package engine

import "errors"

// Sentinel errors returned by engine operations. Callers use errors.Is to
// classify them; internal/rpc maps each to a gRPC status code.
var (
	// ErrNotFound is returned when a job ID does not exist for the
	// requesting owner. Cross-tenant lookups return this too, never
	// ErrPermissionDenied — a job's existence is not revealed to a
	// non-owner.
	ErrNotFound = errors.New("job not found")

	// ErrSpawnFailed is returned when the child process could not be
	// started (missing binary, exec permission, bad working directory).
	ErrSpawnFailed = errors.New("failed to spawn process")

	// ErrAlreadyAttached is returned by Supervisor.Attach when output
	// capture has already been wired to this process.
	ErrAlreadyAttached = errors.New("process already attached")

	// ErrAlreadyStopped is returned by Supervisor.Stop when the process has
	// already been signaled or has already exited.
	ErrAlreadyStopped = errors.New("process already stopped")

	// ErrMalformed classifies structurally invalid input. No engine
	// operation returns it: engine calls take an already-parsed uuid.UUID,
	// and internal/rpc rejects a malformed job ID with codes.InvalidArgument
	// itself.
	ErrMalformed = errors.New("malformed request")

	// ErrPermissionDenied classifies a caller that lacks the capability
	// claim required for the operation. No engine operation returns it:
	// internal/rpc checks capabilities and returns codes.PermissionDenied
	// itself.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInternal covers unexpected failures not otherwise classified.
	ErrInternal = errors.New("internal error")
)
