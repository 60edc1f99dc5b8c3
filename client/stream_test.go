package client

import (
	"bytes"
	"testing"

	"github.com/matgreaves/jobexec/api/jobexecpb"
)

func TestRawRendererTagsEveryEvent(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer("raw", &buf)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if err := r.Render(&jobexecpb.StreamLogResponse{Stdout: &jobexecpb.StdoutEvent{Output: []byte("hi\n")}}); err != nil {
		t.Fatalf("Render stdout: %v", err)
	}
	if err := r.Render(&jobexecpb.StreamLogResponse{Exit: &jobexecpb.ExitEvent{Code: 0}}); err != nil {
		t.Fatalf("Render exit: %v", err)
	}
	want := "stdout: hi\nexit: 0\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestStdoutRendererIgnoresStderr(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer("stdout", &buf)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	_ = r.Render(&jobexecpb.StreamLogResponse{Stderr: &jobexecpb.StderrEvent{Output: []byte("oops")}})
	_ = r.Render(&jobexecpb.StreamLogResponse{Stdout: &jobexecpb.StdoutEvent{Output: []byte("ok")}})
	if buf.String() != "ok" {
		t.Fatalf("got %q, want %q", buf.String(), "ok")
	}
}

func TestStderrRendererIgnoresStdout(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer("stderr", &buf)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	_ = r.Render(&jobexecpb.StreamLogResponse{Stdout: &jobexecpb.StdoutEvent{Output: []byte("ignored")}})
	_ = r.Render(&jobexecpb.StreamLogResponse{Stderr: &jobexecpb.StderrEvent{Output: []byte("bad")}})
	if buf.String() != "bad" {
		t.Fatalf("got %q, want %q", buf.String(), "bad")
	}
}

func TestNewRendererRejectsUnknownType(t *testing.T) {
	if _, err := NewRenderer("bogus", &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error for an unknown stream type")
	}
}
