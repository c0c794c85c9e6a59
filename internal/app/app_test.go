package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/matbench/internal/errors"
	"github.com/agbru/matbench/internal/logging"
)

// spawnerFunc adapts a function to executor.Spawner.
type spawnerFunc func(task func()) error

func (f spawnerFunc) Spawn(task func()) error { return f(task) }

func newApp(t *testing.T, opts []AppOption, args ...string) *Application {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var errBuf bytes.Buffer
	opts = append([]AppOption{WithLogger(logging.NopLogger{})}, opts...)
	a, err := New(append([]string{"matbench"}, args...), &errBuf, opts...)
	if err != nil {
		t.Fatalf("New: %v (stderr: %s)", err, errBuf.String())
	}
	return a
}

func TestNew_ParsesConfig(t *testing.T) {
	a := newApp(t, nil, "-n", "8", "--seed", "3", "--repeat", "2")
	if a.Config.N != 8 || a.Config.Seed != 3 || a.Config.Repeat != 2 {
		t.Errorf("unexpected config %+v", a.Config)
	}
}

func TestNew_Errors(t *testing.T) {
	var errBuf bytes.Buffer
	if _, err := New([]string{"matbench", "--help"}, &errBuf); !IsHelpError(err) {
		t.Errorf("--help should yield flag.ErrHelp, got %v", err)
	}
	_, err := New([]string{"matbench", "-n", "0"}, &errBuf)
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("-n 0 should yield a ConfigError, got %v", err)
	}
}

func TestRun_Quiet(t *testing.T) {
	a := newApp(t, nil, "-n", "4", "--seed", "1", "--quiet")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected one line per block size 1..3, got:\n%s", out.String())
	}
	wantBlocks := []string{"1 16 ", "2 4 ", "3 4 "}
	for i, want := range wantBlocks {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want)
		}
	}
}

func TestRun_DefaultOutput(t *testing.T) {
	a := newApp(t, nil, "-n", "5", "--seed", "9", "--verify", "--legacy-block-count")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
	for _, want := range []string{
		"--- Execution Configuration ---",
		"seed 9",
		"sweeping 4 block sizes (1..4)",
		"--- Sweep Report (n=5) ---",
		"Best speedup:",
		"matched the unblocked product",
		"ceil(n/r)*n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q:\n%s", want, out.String())
		}
	}
}

func TestRun_OrderOne(t *testing.T) {
	a := newApp(t, nil, "-n", "1")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out.String(), "No block size to measure for n=1") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRun_SavesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	a := newApp(t, nil, "-n", "4", "--seed", "5", "-q", "-o", path)
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		N       int    `json:"n"`
		Seed    uint64 `json:"seed"`
		Records []struct {
			BlockSize int `json:"block_size"`
		} `json:"records"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.N != 4 || doc.Seed != 5 || len(doc.Records) != 3 {
		t.Errorf("unexpected report %+v", doc)
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	refuse := spawnerFunc(func(func()) error { return apperrors.ErrTaskLimit })
	a := newApp(t, []AppOption{WithSpawner(refuse)}, "-n", "4", "-q", "-o", filepath.Join(t.TempDir(), "r.txt"))
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorGeneric {
		t.Fatalf("exit code %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("failure should be reported, got:\n%s", out.String())
	}
	if _, err := os.Stat(a.Config.OutputFile); !os.IsNotExist(err) {
		t.Error("no report may be saved after a failed sweep")
	}
}

func TestRun_Timeout(t *testing.T) {
	a := newApp(t, nil, "-n", "64", "-q", "--timeout", "1ns")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorTimeout {
		t.Fatalf("exit code %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if !strings.Contains(out.String(), `operation "sweep" timed out after 1ns`) {
		t.Errorf("timeout should name the limit, got:\n%s", out.String())
	}
}

func TestRun_Canceled(t *testing.T) {
	a := newApp(t, nil, "-n", "4", "-q")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if code := a.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRun_MetricsServer(t *testing.T) {
	a := newApp(t, nil, "-n", "4", "-q", "--metrics-addr", "127.0.0.1:0")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output:\n%s", code, out.String())
	}
}

func TestRun_MetricsServerListenFailure(t *testing.T) {
	a := newApp(t, nil, "-n", "4", "-q", "--metrics-addr", "256.0.0.1:bad")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(out.String(), "metrics server") {
		t.Errorf("listen failure should be reported, got:\n%s", out.String())
	}
}

func TestRun_Completion(t *testing.T) {
	a := newApp(t, nil, "--completion", "fish")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out.String(), "complete -c matbench") {
		t.Error("expected a fish completion script")
	}

	a = newApp(t, nil, "--completion", "tcsh")
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("unsupported shell: exit code %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestRun_Version(t *testing.T) {
	a := newApp(t, nil, "--version")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	if !strings.HasPrefix(out.String(), "matbench dev") {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-n", "4", "-V"}, true},
		{[]string{"-n", "4"}, false},
		{[]string{"--", "--version"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
