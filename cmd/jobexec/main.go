// Command jobexec is the CLI client for jobexecd: spawn, stop, stream-log,
// and status, each backed by the client package's Go SDK.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matgreaves/jobexec/client"
)

type globalOpts struct {
	endpoint string
	domain   string
	username string
	cert     string
	key      string
	ca       string
	token    string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &globalOpts{}

	cmd := &cobra.Command{
		Use:   "jobexec",
		Short: "jobexec talks to a jobexecd server",
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.endpoint, "endpoint", "e", "", "server address (host:port)")
	flags.StringVarP(&opts.domain, "domain", "d", "", "server name expected on its TLS certificate")
	flags.StringVarP(&opts.username, "username", "u", "", "username to authenticate as")
	flags.StringVar(&opts.cert, "cert", "", "client certificate PEM file")
	flags.StringVar(&opts.key, "key", "", "client private key PEM file")
	flags.StringVar(&opts.ca, "ca", "", "CA certificate PEM file trusted to verify the server")
	flags.StringVar(&opts.token, "token", "", "pre-issued bearer token (if empty, one is requested with full permissions)")
	_ = cmd.MarkPersistentFlagRequired("endpoint")
	_ = cmd.MarkPersistentFlagRequired("domain")
	_ = cmd.MarkPersistentFlagRequired("username")

	cmd.AddCommand(spawnCmd(opts), stopCmd(opts), streamLogCmd(opts), statusCmd(opts))
	return cmd
}

// authorize dials and authenticates, returning a ready-to-use Client.
func authorize(opts *globalOpts) (*client.Client, error) {
	unauth, err := client.Dial(opts.endpoint, opts.cert, opts.key, opts.ca, opts.domain)
	if err != nil {
		return nil, err
	}

	token := opts.token
	if token == "" {
		token, err = unauth.IssueJwt(context.Background(), opts.username, client.FullPermissions())
		if err != nil {
			return nil, fmt.Errorf("issue jwt: %w", err)
		}
	}
	return unauth.Authorize(token), nil
}

func spawnCmd(opts *globalOpts) *cobra.Command {
	var (
		programPath      string
		workingDirectory string
		args             string
		envs             string
	)
	cmd := &cobra.Command{
		Use:   "spawn",
		Short: "launch a process",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			envMap, err := parseEnvs(envs)
			if err != nil {
				return err
			}

			c, err := authorize(opts)
			if err != nil {
				return err
			}
			defer c.Close()

			id, err := c.Spawn(context.Background(), programPath, workingDirectory, splitNonEmpty(args, ","), envMap)
			if err != nil {
				return err
			}
			fmt.Println(id.String())
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&programPath, "program-path", "p", "", "path to the program to run")
	flags.StringVarP(&workingDirectory, "working-directory", "w", ".", "working directory for the process")
	flags.StringVarP(&args, "args", "a", "", "comma-separated process arguments")
	flags.StringVarP(&envs, "envs", "n", "", "comma-separated KEY=VALUE environment entries")
	_ = cmd.MarkFlagRequired("program-path")
	return cmd
}

func stopCmd(opts *globalOpts) *cobra.Command {
	var jobUUID string
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "stop a running process",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(jobUUID)
			if err != nil {
				return fmt.Errorf("invalid --uuid: %w", err)
			}
			c, err := authorize(opts)
			if err != nil {
				return err
			}
			defer c.Close()
			return c.Stop(context.Background(), id)
		},
	}
	cmd.Flags().StringVarP(&jobUUID, "uuid", "i", "", "job UUID")
	_ = cmd.MarkFlagRequired("uuid")
	return cmd
}

func streamLogCmd(opts *globalOpts) *cobra.Command {
	var (
		jobUUID    string
		pastEvents bool
		streamType string
	)
	cmd := &cobra.Command{
		Use:   "stream-log",
		Short: "stream a job's output",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(jobUUID)
			if err != nil {
				return fmt.Errorf("invalid --uuid: %w", err)
			}
			renderer, err := client.NewRenderer(streamType, os.Stdout)
			if err != nil {
				return err
			}

			c, err := authorize(opts)
			if err != nil {
				return err
			}
			defer c.Close()

			stream, err := c.StreamLog(context.Background(), id, pastEvents)
			if err != nil {
				return err
			}
			for {
				ev, err := stream.Recv()
				if err != nil {
					return nil
				}
				if err := renderer.Render(ev); err != nil {
					return err
				}
				if ev.Exit != nil {
					return nil
				}
			}
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&jobUUID, "uuid", "i", "", "job UUID")
	flags.BoolVarP(&pastEvents, "past-events", "r", false, "replay events published before this call")
	flags.StringVarP(&streamType, "stream-type", "t", "raw", "one of raw, stdout, stderr")
	_ = cmd.MarkFlagRequired("uuid")
	return cmd
}

func statusCmd(opts *globalOpts) *cobra.Command {
	var jobUUID string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "check whether a job is still running",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(jobUUID)
			if err != nil {
				return fmt.Errorf("invalid --uuid: %w", err)
			}
			c, err := authorize(opts)
			if err != nil {
				return err
			}
			defer c.Close()

			st, err := c.Status(context.Background(), id)
			if err != nil {
				return err
			}
			if st.Running {
				fmt.Println("running")
			} else {
				fmt.Printf("terminated: exit code %d\n", st.ExitCode)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&jobUUID, "uuid", "i", "", "job UUID")
	_ = cmd.MarkFlagRequired("uuid")
	return cmd
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}

// parseEnvs turns a comma-separated list of KEY=VALUE entries into a map.
func parseEnvs(s string) (map[string]string, error) {
	entries := splitNonEmpty(s, ",")
	if len(entries) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --envs entry %q: want KEY=VALUE", entry)
		}
		out[k] = v
	}
	return out, nil
}
