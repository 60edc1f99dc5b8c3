// Package config resolves jobexecd's runtime configuration from flags with
// JOBEXECD_* environment-variable fallback, in the teacher's
// environment-first style (see DefaultRigDir in the reference's
// server/orchestrator.go).
package config

import "os"

// ServerConfig holds everything jobexecd needs to start listening.
type ServerConfig struct {
	Addr           string
	CertFile       string
	KeyFile        string
	ClientCAFile   string
	JWTSecret      string
	LogLevel       string
	LogJSON        bool
	EnableIssueJWT bool
}

// envOr returns the value of the named environment variable, or fallback if
// it is unset or empty.
func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// DefaultServerConfig returns a ServerConfig seeded from JOBEXECD_*
// environment variables, falling back to development-friendly defaults.
// Flags bound via cobra in cmd/jobexecd override these when explicitly set.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           envOr("JOBEXECD_ADDR", "0.0.0.0:7005"),
		CertFile:       envOr("JOBEXECD_CERT", ""),
		KeyFile:        envOr("JOBEXECD_KEY", ""),
		ClientCAFile:   envOr("JOBEXECD_CLIENT_CA", ""),
		JWTSecret:      envOr("JOBEXECD_JWT_SECRET", ""),
		LogLevel:       envOr("JOBEXECD_LOG_LEVEL", "info"),
		LogJSON:        envOr("JOBEXECD_LOG_FORMAT", "json") == "json",
		EnableIssueJWT: envOr("JOBEXECD_ENABLE_ISSUE_JWT", "true") == "true",
	}
}
