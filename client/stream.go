package client

import (
	"fmt"
	"io"

	"github.com/matgreaves/jobexec/api/jobexecpb"
)

// Renderer writes one StreamLogResponse to its destination. The three modes
// built by NewRenderer (raw, stdout, stderr; served by the two
// implementations below) form a closed set selected by --stream-type; new
// rendering modes are added by extending this set, not by making it open
// for arbitrary external implementations.
type Renderer interface {
	Render(*jobexecpb.StreamLogResponse) error
}

// NewRenderer returns the Renderer named by streamType ("raw", "stdout", or
// "stderr"), writing to w.
func NewRenderer(streamType string, w io.Writer) (Renderer, error) {
	switch streamType {
	case "raw":
		return &rawRenderer{w: w}, nil
	case "stdout":
		return &singleStreamRenderer{w: w}, nil
	case "stderr":
		return &singleStreamRenderer{w: w, stderr: true}, nil
	default:
		return nil, fmt.Errorf("unknown stream type %q (want raw, stdout, or stderr)", streamType)
	}
}

// rawRenderer prints every event, tagged with its kind, exactly as received.
type rawRenderer struct {
	w io.Writer
}

func (r *rawRenderer) Render(resp *jobexecpb.StreamLogResponse) error {
	switch {
	case resp.Stdout != nil:
		_, err := fmt.Fprintf(r.w, "stdout: %s", resp.Stdout.Output)
		return err
	case resp.Stderr != nil:
		_, err := fmt.Fprintf(r.w, "stderr: %s", resp.Stderr.Output)
		return err
	case resp.Exit != nil:
		_, err := fmt.Fprintf(r.w, "exit: %d\n", resp.Exit.Code)
		return err
	default:
		return nil
	}
}

// singleStreamRenderer prints only stdout or only stderr bytes, unadorned,
// and stays silent on the other stream and on exit.
type singleStreamRenderer struct {
	w      io.Writer
	stderr bool
}

func (r *singleStreamRenderer) Render(resp *jobexecpb.StreamLogResponse) error {
	if r.stderr {
		if resp.Stderr == nil {
			return nil
		}
		_, err := r.w.Write(resp.Stderr.Output)
		return err
	}
	if resp.Stdout == nil {
		return nil
	}
	_, err := r.w.Write(resp.Stdout.Output)
	return err
}
