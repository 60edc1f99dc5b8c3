package rpc

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/matgreaves/jobexec/internal/auth"
)

// issueJwtMethod is exempt from authentication: it is how a caller obtains a
// token in the first place.
const issueJwtMethod = "/jobexec.JobExecService/IssueJwt"

type claimsKey struct{}

// claimsFromContext retrieves the Claims a successful auth check attached to
// ctx.
func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

func bearerToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing metadata")
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", status.Error(codes.Unauthenticated, "missing authorization header")
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(values[0], prefix) {
		return "", status.Error(codes.Unauthenticated, "authorization header must be a bearer token")
	}
	return strings.TrimPrefix(values[0], prefix), nil
}

func authenticate(ctx context.Context, issuer *auth.Issuer) (context.Context, error) {
	token, err := bearerToken(ctx)
	if err != nil {
		return nil, err
	}
	claims, err := issuer.Validate(token)
	if err != nil {
		return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
	}
	return context.WithValue(ctx, claimsKey{}, claims), nil
}

// UnaryAuthInterceptor validates the bearer token on every unary call except
// IssueJwt, attaching the resulting Claims to the context handlers receive.
func UnaryAuthInterceptor(issuer *auth.Issuer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if info.FullMethod == issueJwtMethod {
			return handler(ctx, req)
		}
		authed, err := authenticate(ctx, issuer)
		if err != nil {
			return nil, err
		}
		return handler(authed, req)
	}
}

// StreamAuthInterceptor is the streaming-RPC counterpart of
// UnaryAuthInterceptor; StreamLog is the only streaming method and is always
// authenticated.
func StreamAuthInterceptor(issuer *auth.Issuer) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		authed, err := authenticate(ss.Context(), issuer)
		if err != nil {
			return err
		}
		return handler(srv, &authedServerStream{ServerStream: ss, ctx: authed})
	}
}

type authedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authedServerStream) Context() context.Context { return s.ctx }

// requireCapability checks that claims grants the capability needed for an
// RPC, returning a PermissionDenied status otherwise.
func requireCapability(ctx context.Context, capability func(auth.Claims) bool, rpcName string) (*auth.Claims, error) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no claims in context")
	}
	if !capability(*claims) {
		return nil, status.Errorf(codes.PermissionDenied, "%s: missing %s capability", claims.Username, rpcName)
	}
	return claims, nil
}
