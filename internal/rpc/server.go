package rpc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/matgreaves/jobexec/api/jobexecpb"
	"github.com/matgreaves/jobexec/internal/auth"
	"github.com/matgreaves/jobexec/internal/engine"
	"github.com/matgreaves/jobexec/internal/log"
)

// Server implements jobexecpb.JobExecServiceServer over an engine.Registry.
type Server struct {
	jobexecpb.UnimplementedJobExecServiceServer

	registry       *engine.Registry
	issuer         *auth.Issuer
	enableIssueJWT bool
}

// NewServer returns a Server backed by registry and issuer. If
// enableIssueJWT is false, IssueJwt always fails — the flag exists because
// the RPC is a development convenience that a production deployment may
// want to disable (see SPEC_FULL.md §9).
func NewServer(registry *engine.Registry, issuer *auth.Issuer, enableIssueJWT bool) *Server {
	return &Server{registry: registry, issuer: issuer, enableIssueJWT: enableIssueJWT}
}

func (s *Server) IssueJwt(ctx context.Context, req *jobexecpb.IssueJwtRequest) (*jobexecpb.IssueJwtResponse, error) {
	if !s.enableIssueJWT {
		return nil, status.Error(codes.PermissionDenied, "token issuance is disabled on this server")
	}
	token, err := s.issuer.Issue(auth.Claims{
		Username:  req.Username,
		Spawn:     req.Spawn,
		Stop:      req.Stop,
		StreamLog: req.StreamLog,
		Status:    req.Status,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "issue token: %v", err)
	}
	return &jobexecpb.IssueJwtResponse{Token: token}, nil
}

func (s *Server) Spawn(ctx context.Context, req *jobexecpb.SpawnRequest) (*jobexecpb.SpawnResponse, error) {
	claims, err := requireCapability(ctx, func(c auth.Claims) bool { return c.Spawn }, "spawn")
	if err != nil {
		return nil, err
	}

	id, err := s.registry.Spawn(claims.Username, engine.ProcessSpec{
		Program: req.Program,
		Dir:     req.WorkingDirectory,
		Args:    req.Args,
		Env:     envSlice(req.Envs),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	log.WithOwner(claims.Username).Info().Str("job_id", id.String()).Str("program", req.Program).Msg("spawned job")
	return &jobexecpb.SpawnResponse{Uuid: id[:]}, nil
}

func (s *Server) Stop(ctx context.Context, req *jobexecpb.StopRequest) (*jobexecpb.StopResponse, error) {
	claims, err := requireCapability(ctx, func(c auth.Claims) bool { return c.Stop }, "stop")
	if err != nil {
		return nil, err
	}
	id, err := parseUUID(req.Uuid)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Stop(claims.Username, id); err != nil {
		return nil, toStatus(err)
	}
	return &jobexecpb.StopResponse{}, nil
}

func (s *Server) Status(ctx context.Context, req *jobexecpb.StatusRequest) (*jobexecpb.StatusResponse, error) {
	claims, err := requireCapability(ctx, func(c auth.Claims) bool { return c.Status }, "status")
	if err != nil {
		return nil, err
	}
	id, err := parseUUID(req.Uuid)
	if err != nil {
		return nil, err
	}
	st, err := s.registry.Status(claims.Username, id)
	if err != nil {
		return nil, toStatus(err)
	}
	if st.Running {
		return &jobexecpb.StatusResponse{Running: &jobexecpb.RunningStatus{}}, nil
	}
	return &jobexecpb.StatusResponse{Terminated: &jobexecpb.TerminatedStatus{ExitCode: int32(st.ExitCode)}}, nil
}

func (s *Server) StreamLog(req *jobexecpb.StreamLogRequest, stream jobexecpb.JobExecService_StreamLogServer) error {
	claims, err := requireCapability(stream.Context(), func(c auth.Claims) bool { return c.StreamLog }, "stream_log")
	if err != nil {
		return err
	}
	id, err := parseUUID(req.Uuid)
	if err != nil {
		return err
	}
	events, err := s.registry.Subscribe(claims.Username, id, req.FromBeginning)
	if err != nil {
		return toStatus(err)
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			resp, ok := toStreamLogResponse(ev)
			if !ok {
				continue
			}
			if err := stream.Send(resp); err != nil {
				return err
			}
		case <-stream.Context().Done():
			return stream.Context().Err()
		}
	}
}

func toStreamLogResponse(ev engine.Event) (*jobexecpb.StreamLogResponse, bool) {
	switch ev.Kind {
	case engine.Stdout:
		return &jobexecpb.StreamLogResponse{Stdout: &jobexecpb.StdoutEvent{Output: ev.Data}}, true
	case engine.Stderr:
		return &jobexecpb.StreamLogResponse{Stderr: &jobexecpb.StderrEvent{Output: ev.Data}}, true
	case engine.Exit:
		return &jobexecpb.StreamLogResponse{Exit: &jobexecpb.ExitEvent{Code: int32(ev.ExitCode)}}, true
	default:
		return nil, false
	}
}

// envSlice converts the wire's KEY -> VALUE map into the KEY=VALUE entries
// os/exec.Cmd.Env expects, in no particular order.
func envSlice(envs map[string]string) []string {
	if len(envs) == 0 {
		return nil
	}
	out := make([]string, 0, len(envs))
	for k, v := range envs {
		out = append(out, k+"="+v)
	}
	return out
}

func parseUUID(b []byte) (uuid.UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.UUID{}, status.Errorf(codes.InvalidArgument, "malformed uuid: %v", err)
	}
	return id, nil
}

// toStatus maps an engine sentinel error to its gRPC status code.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, engine.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, engine.ErrSpawnFailed), errors.Is(err, engine.ErrInternal):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, engine.ErrAlreadyAttached), errors.Is(err, engine.ErrAlreadyStopped):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, engine.ErrMalformed):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, engine.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}
