// Package jobexecpb holds the wire types and gRPC service descriptor for
// JobExecService. See jobexec.proto for the canonical message layout; these
// Go types and jobexec_grpc.go are hand-maintained to match it (no protoc
// invocation is available — see DESIGN.md for the codec this implies).
package jobexecpb

type IssueJwtRequest struct {
	Username  string `json:"username"`
	Spawn     bool   `json:"spawn"`
	Stop      bool   `json:"stop"`
	StreamLog bool   `json:"stream_log"`
	Status    bool   `json:"status"`
}

type IssueJwtResponse struct {
	Token string `json:"token"`
}

type SpawnRequest struct {
	Program          string            `json:"program"`
	WorkingDirectory string            `json:"working_directory"`
	Args             []string          `json:"args"`
	Envs             map[string]string `json:"envs"`
}

type SpawnResponse struct {
	Uuid []byte `json:"uuid"`
}

type StopRequest struct {
	Uuid []byte `json:"uuid"`
}

type StopResponse struct{}

type StatusRequest struct {
	Uuid []byte `json:"uuid"`
}

// StatusResponse carries exactly one of Running or Terminated, mirroring the
// proto3 "status" oneof.
type StatusResponse struct {
	Running    *RunningStatus    `json:"running,omitempty"`
	Terminated *TerminatedStatus `json:"terminated,omitempty"`
}

type RunningStatus struct{}

type TerminatedStatus struct {
	ExitCode int32 `json:"exit_code"`
}

type StreamLogRequest struct {
	Uuid          []byte `json:"uuid"`
	FromBeginning bool   `json:"from_beginning"`
}

// StreamLogResponse carries exactly one of Stdout, Stderr, or Exit,
// mirroring the proto3 "event" oneof.
type StreamLogResponse struct {
	Stdout *StdoutEvent `json:"stdout,omitempty"`
	Stderr *StderrEvent `json:"stderr,omitempty"`
	Exit   *ExitEvent   `json:"exit,omitempty"`
}

type StdoutEvent struct {
	Output []byte `json:"output"`
}

type StderrEvent struct {
	Output []byte `json:"output"`
}

type ExitEvent struct {
	Code int32 `json:"code"`
}
