// Package client is the Go SDK for jobexecd: a thin wrapper over the
// hand-maintained jobexecpb gRPC stub that handles mTLS dialing and
// bearer-token attachment.
package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"

	"github.com/matgreaves/jobexec/api/jobexecpb"
	"github.com/matgreaves/jobexec/internal/rpc"
	"github.com/matgreaves/jobexec/internal/tlsconfig"
)

// Permissions is the capability set requested when issuing a token.
type Permissions struct {
	Spawn     bool
	Stop      bool
	StreamLog bool
	Status    bool
}

// FullPermissions grants every capability.
func FullPermissions() Permissions {
	return Permissions{Spawn: true, Stop: true, StreamLog: true, Status: true}
}

// UnauthorizedClient holds an mTLS-authenticated connection that has not yet
// obtained a bearer token. It can only call IssueJwt.
type UnauthorizedClient struct {
	conn   *grpc.ClientConn
	remote jobexecpb.JobExecServiceClient
}

// Dial opens a mutually-authenticated TLS connection to endpoint. certFile
// and keyFile are the caller's own client identity; caFile verifies the
// server's certificate; serverName is matched against the server's SAN.
func Dial(endpoint, certFile, keyFile, caFile, serverName string) (*UnauthorizedClient, error) {
	tlsCfg, err := tlsconfig.ClientConfig(certFile, keyFile, caFile, serverName)
	if err != nil {
		return nil, fmt.Errorf("build tls config: %w", err)
	}

	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(credentials.NewTLS(tlsCfg)),
		rpc.DialOption(),
	)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}

	return &UnauthorizedClient{conn: conn, remote: jobexecpb.NewJobExecServiceClient(conn)}, nil
}

// IssueJwt requests a bearer token for username with the given permissions.
func (u *UnauthorizedClient) IssueJwt(ctx context.Context, username string, perms Permissions) (string, error) {
	resp, err := u.remote.IssueJwt(ctx, &jobexecpb.IssueJwtRequest{
		Username:  username,
		Spawn:     perms.Spawn,
		Stop:      perms.Stop,
		StreamLog: perms.StreamLog,
		Status:    perms.Status,
	})
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Authorize attaches token to u's connection, returning a Client that sends
// it as a bearer credential on every call.
func (u *UnauthorizedClient) Authorize(token string) *Client {
	return &Client{conn: u.conn, remote: u.remote, token: token}
}

// Close releases the underlying connection.
func (u *UnauthorizedClient) Close() error {
	return u.conn.Close()
}

// Client is an authenticated connection to jobexecd.
type Client struct {
	conn   *grpc.ClientConn
	remote jobexecpb.JobExecServiceClient
	token  string
}

func (c *Client) authorize(ctx context.Context) context.Context {
	return metadata.NewOutgoingContext(ctx, metadata.Pairs("authorization", "Bearer "+c.token))
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Spawn launches program under the caller's namespace and returns its job
// ID.
func (c *Client) Spawn(ctx context.Context, program, workingDirectory string, args []string, envs map[string]string) (uuid.UUID, error) {
	resp, err := c.remote.Spawn(c.authorize(ctx), &jobexecpb.SpawnRequest{
		Program:          program,
		WorkingDirectory: workingDirectory,
		Args:             args,
		Envs:             envs,
	})
	if err != nil {
		return uuid.UUID{}, err
	}
	return uuid.FromBytes(resp.Uuid)
}

// Stop signals the job to terminate.
func (c *Client) Stop(ctx context.Context, id uuid.UUID) error {
	_, err := c.remote.Stop(c.authorize(ctx), &jobexecpb.StopRequest{Uuid: id[:]})
	return err
}

// JobStatus is the caller-facing status of a job.
type JobStatus struct {
	Running  bool
	ExitCode int32
}

// Status reports whether the job is still running.
func (c *Client) Status(ctx context.Context, id uuid.UUID) (JobStatus, error) {
	resp, err := c.remote.Status(c.authorize(ctx), &jobexecpb.StatusRequest{Uuid: id[:]})
	if err != nil {
		return JobStatus{}, err
	}
	if resp.Running != nil {
		return JobStatus{Running: true}, nil
	}
	return JobStatus{ExitCode: resp.Terminated.ExitCode}, nil
}

// StreamLog opens a streaming call delivering the job's output events.
// pastEvents replays everything published before the call, in addition to
// everything published afterward.
func (c *Client) StreamLog(ctx context.Context, id uuid.UUID, pastEvents bool) (jobexecpb.JobExecService_StreamLogClient, error) {
	return c.remote.StreamLog(c.authorize(ctx), &jobexecpb.StreamLogRequest{Uuid: id[:], FromBeginning: pastEvents})
}
