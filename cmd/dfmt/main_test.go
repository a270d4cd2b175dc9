package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gopkg.in/dfmt.v0/internal/batch"
	"gopkg.in/dfmt.v0/internal/config"
	"gopkg.in/dfmt.v0/render"
	"gopkg.in/dfmt.v0/scan"
)

// setup resets the global flags and returns a command writing to a buffer.
func setup(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	timeout = time.Minute
	rounding, noNewline, maxField = "", false, 0
	workers, output, outPath = 0, "", ""

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestRenderCmd(t *testing.T) {
	cmd, buf := setup(t)
	err := runRender(cmd, []string{"%-8s|%08.3Lf|%#x", "s:total", "L:12.3456", "i:255"})
	if err != nil {
		t.Fatalf("runRender failed: %v", err)
	}
	if got, want := buf.String(), "total   |0012.346|0xff\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderCmdRounding(t *testing.T) {
	tests := []struct {
		mode string
		want string
	}{
		{"", "0.13"},
		{"half_even", "0.12"},
		{"floor", "-0.13"},
		{"down", "-0.12"},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cmd, buf := setup(t)
			rounding = tt.mode
			noNewline = true
			arg := "L:0.125"
			if tt.mode == "floor" || tt.mode == "down" {
				arg = "L:-0.125"
			}
			if err := runRender(cmd, []string{"%.2Lf", arg}); err != nil {
				t.Fatalf("runRender failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRenderCmdErrors(t *testing.T) {
	cmd, buf := setup(t)
	err := runRender(cmd, []string{"[%d %d]", "i:1"})
	if !errors.Is(err, render.ErrMissingArg) {
		t.Errorf("err = %v, want ErrMissingArg", err)
	}
	if got := buf.String(); got != "[1 \n" {
		t.Errorf("partial output %q, want %q", got, "[1 \n")
	}

	cmd, _ = setup(t)
	if err := runRender(cmd, []string{"%d", "seven"}); err == nil {
		t.Error("expected error for malformed argument")
	}

	cmd, _ = setup(t)
	rounding = "sideways"
	if err := runRender(cmd, []string{"%d", "i:1"}); err == nil || !strings.Contains(err.Error(), "invalid rounding mode") {
		t.Errorf("err = %v, want invalid rounding mode", err)
	}

	cmd, _ = setup(t)
	maxField = 3
	if err := runRender(cmd, []string{"%5d", "i:1"}); !errors.Is(err, render.ErrResourceExhausted) {
		t.Errorf("err = %v, want ErrResourceExhausted", err)
	}
}

func TestScanCmd(t *testing.T) {
	cmd, buf := setup(t)
	if err := runScan(cmd, []string{"2024-03-15", "%d-%d-%d"}); err != nil {
		t.Fatalf("runScan failed: %v", err)
	}
	if got, want := buf.String(), "1\t2024\n2\t3\n3\t15\ncount\t3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScanCmdStdin(t *testing.T) {
	cmd, buf := setup(t)
	cmd.SetIn(strings.NewReader("0x1f z 2.5"))
	if err := runScan(cmd, []string{"-", "%x %c %*f%n"}); err != nil {
		t.Fatalf("runScan failed: %v", err)
	}
	if got, want := buf.String(), "1\t31\n2\tz\n3\t10\ncount\t2\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScanCmdFailure(t *testing.T) {
	cmd, buf := setup(t)
	err := runScan(cmd, []string{"abc", "%d"})
	if !errors.Is(err, scan.ErrNoDigits) {
		t.Errorf("err = %v, want ErrNoDigits", err)
	}
	if got := buf.String(); got != "count\t-1\n" {
		t.Errorf("got %q", got)
	}

	cmd, _ = setup(t)
	if err := runScan(cmd, []string{"1", "%q"}); !errors.Is(err, scan.ErrUnknownVerb) {
		t.Errorf("err = %v, want ErrUnknownVerb", err)
	}
}

const jobFile = `jobs:
  - name: price
    template: "%.2Lf"
    args: ["L:19.995"]
  - name: date
    op: scan
    template: "%d-%d-%d"
    input: "2024-03-15"
`

func TestBatchCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte(jobFile), 0644); err != nil {
		t.Fatal(err)
	}

	for _, format := range []string{"json", "cbor"} {
		t.Run(format, func(t *testing.T) {
			cmd, buf := setup(t)
			output = format
			workers = 2
			if err := runBatch(cmd, []string{path}); err != nil {
				t.Fatalf("runBatch failed: %v", err)
			}
			results, err := batch.ReadResults(buf, format)
			if err != nil {
				t.Fatalf("ReadResults failed: %v", err)
			}
			if len(results) != 2 {
				t.Fatalf("got %d results, want 2", len(results))
			}
			if results[0].Output != "20.00" {
				t.Errorf("price output %q, want %q", results[0].Output, "20.00")
			}
			if strings.Join(results[1].Values, ",") != "2024,3,15" {
				t.Errorf("date values %v", results[1].Values)
			}
		})
	}
}

func TestBatchCmdOutFile(t *testing.T) {
	dir := t.TempDir()
	jobs := filepath.Join(dir, "jobs.yaml")
	if err := os.WriteFile(jobs, []byte(jobFile), 0644); err != nil {
		t.Fatal(err)
	}

	cmd, buf := setup(t)
	output = "cbor"
	outPath = filepath.Join(dir, "results.cbor.zst")
	if err := runBatch(cmd, []string{jobs}); err != nil {
		t.Fatalf("runBatch failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("stdout got %d bytes, want none", buf.Len())
	}
	results, err := batch.ReadResultsFile(outPath, "cbor")
	if err != nil {
		t.Fatalf("ReadResultsFile failed: %v", err)
	}
	if len(results) != 2 || results[0].Name != "price" {
		t.Errorf("unexpected results %+v", results)
	}
}

func TestBatchCmdErrors(t *testing.T) {
	cmd, _ := setup(t)
	if err := runBatch(cmd, []string{filepath.Join(t.TempDir(), "none.yaml")}); err == nil {
		t.Error("expected error for missing job file")
	}

	cmd, _ = setup(t)
	output = "xml"
	if err := runBatch(cmd, []string{"unused"}); err == nil || !strings.Contains(err.Error(), "invalid batch output") {
		t.Errorf("err = %v, want invalid batch output", err)
	}
}

func TestRootCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got := buf.String(); got != "dfmt dev\n" {
		t.Errorf("version printed %q", got)
	}

	buf.Reset()
	rootCmd.SetArgs([]string{"kinds"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("kinds failed: %v", err)
	}
	for _, want := range []string{"lc", "exact decimal", "half_even"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("kinds output missing %q:\n%s", want, buf.String())
		}
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("render: [1"), 0644); err != nil {
		t.Fatal(err)
	}
	defer func() { configPath = "" }()
	rootCmd.SetArgs([]string{"--config", bad, "version"})
	if err := rootCmd.Execute(); err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("err = %v, want config parse error", err)
	}
}
