// Command jobexecd is the job execution server: it accepts mutually
// authenticated gRPC connections and lets bearer-token holders spawn, stop,
// and stream the output of OS processes.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/matgreaves/jobexec/api/jobexecpb"
	"github.com/matgreaves/jobexec/internal/auth"
	"github.com/matgreaves/jobexec/internal/config"
	"github.com/matgreaves/jobexec/internal/engine"
	"github.com/matgreaves/jobexec/internal/log"
	"github.com/matgreaves/jobexec/internal/rpc"
	"github.com/matgreaves/jobexec/internal/tlsconfig"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobexecd",
		Short:   "jobexecd runs the remote job execution server",
		Version: Version,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("jobexecd %s (%s)\n", Version, Commit))
	cmd.AddCommand(serveCmd())
	return cmd
}

func serveCmd() *cobra.Command {
	cfg := config.DefaultServerConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start the gRPC server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flags.StringVar(&cfg.CertFile, "cert", cfg.CertFile, "server certificate PEM file")
	flags.StringVar(&cfg.KeyFile, "key", cfg.KeyFile, "server private key PEM file")
	flags.StringVar(&cfg.ClientCAFile, "client-ca", cfg.ClientCAFile, "CA certificate PEM file trusted to verify client certificates")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "HMAC secret used to sign and verify bearer tokens (development convenience, not a production credential store)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "emit logs as JSON")
	flags.BoolVar(&cfg.EnableIssueJWT, "enable-issue-jwt", cfg.EnableIssueJWT, "allow unauthenticated IssueJwt calls")

	return cmd
}

func serve(cfg config.ServerConfig) error {
	log.Init(log.Config{Level: log.Level(cfg.LogLevel), JSONOutput: cfg.LogJSON})

	if cfg.JWTSecret == "" {
		return fmt.Errorf("--jwt-secret (or JOBEXECD_JWT_SECRET) is required")
	}
	if cfg.CertFile == "" || cfg.KeyFile == "" || cfg.ClientCAFile == "" {
		return fmt.Errorf("--cert, --key, and --client-ca (or their JOBEXECD_* equivalents) are required")
	}

	tlsCfg, err := tlsconfig.ServerConfig(cfg.CertFile, cfg.KeyFile, cfg.ClientCAFile)
	if err != nil {
		return fmt.Errorf("build tls config: %w", err)
	}

	issuer := auth.NewIssuer([]byte(cfg.JWTSecret))
	registry := engine.NewRegistry()

	grpcServer := grpc.NewServer(
		grpc.Creds(credentials.NewTLS(tlsCfg)),
		grpc.UnaryInterceptor(rpc.UnaryAuthInterceptor(issuer)),
		grpc.StreamInterceptor(rpc.StreamAuthInterceptor(issuer)),
	)
	jobexecpb.RegisterJobExecServiceServer(grpcServer, rpc.NewServer(registry, issuer, cfg.EnableIssueJWT))

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	log.WithComponent("jobexecd").Info().Str("addr", cfg.Addr).Msg("listening")
	return grpcServer.Serve(lis)
}
