// Package batch runs many render and scan jobs concurrently and writes
// their results as a stream.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"gopkg.in/dfmt.v0/internal/cliargs"
	"gopkg.in/dfmt.v0/internal/codec"
	"gopkg.in/dfmt.v0/render"
	"gopkg.in/dfmt.v0/scan"
)

// Job operations.
const (
	OpRender = "render"
	OpScan   = "scan"
)

// A Job is one template applied either to arguments (render) or to input
// text (scan).
type Job struct {
	Name     string   `yaml:"name" json:"name"`
	Op       string   `yaml:"op" json:"op"`
	Template string   `yaml:"template" json:"template"`
	Args     []string `yaml:"args,omitempty" json:"args,omitempty"`
	Input    string   `yaml:"input,omitempty" json:"input,omitempty"`
}

// A Result is the outcome of one Job. Count is the number of bytes
// rendered or the number of slots assigned.
type Result struct {
	Name   string   `json:"name" cbor:"name"`
	Op     string   `json:"op" cbor:"op"`
	Output string   `json:"output,omitempty" cbor:"output,omitempty"`
	Count  int      `json:"count" cbor:"count"`
	Values []string `json:"values,omitempty" cbor:"values,omitempty"`
	Error  string   `json:"error,omitempty" cbor:"error,omitempty"`
}

type jobFile struct {
	Jobs []Job `yaml:"jobs" json:"jobs"`
}

// LoadJobs reads a job file with a top level jobs list. Files named
// *.json or *.jsonc are JSON with comments and trailing commas allowed;
// anything else is YAML. Jobs without an op render; jobs without a name
// are named by position.
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	switch filepath.Ext(path) {
	case ".json", ".jsonc":
		return ParseJobsJSON(data)
	}
	return ParseJobs(data)
}

// ParseJobs parses a YAML job file already in memory.
func ParseJobs(data []byte) ([]Job, error) {
	var f jobFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	return normalize(f.Jobs)
}

// ParseJobsJSON parses a JSONC job file already in memory.
func ParseJobsJSON(data []byte) ([]Job, error) {
	var f jobFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	return normalize(f.Jobs)
}

func normalize(jobs []Job) ([]Job, error) {
	for i := range jobs {
		j := &jobs[i]
		if j.Name == "" {
			j.Name = fmt.Sprintf("job-%d", i+1)
		}
		if j.Op == "" {
			j.Op = OpRender
		}
		if j.Op != OpRender && j.Op != OpScan {
			return nil, fmt.Errorf("job %s: unknown op %q", j.Name, j.Op)
		}
	}
	return jobs, nil
}

// Runner executes jobs with a bounded number of workers.
type Runner struct {
	Printer *render.Printer
	Workers int
	Logger  *zap.Logger
}

// Run executes jobs and returns their results in job order. A job that
// fails records its error in its Result; Run itself only fails when ctx
// is done.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run", uuid.NewString()))
	p := r.Printer
	if p == nil {
		p = &render.Printer{}
	}

	results := make([]Result, len(jobs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(r.Workers, 1))
	for i, job := range jobs {
		if egCtx.Err() != nil {
			break
		}
		i, job := i, job
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = runJob(p, job)
			if results[i].Error != "" {
				logger.Debug("job failed",
					zap.String("job", job.Name),
					zap.String("template", job.Template),
					zap.String("error", results[i].Error))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Info("batch complete", zap.Int("jobs", len(jobs)), zap.Int("workers", max(r.Workers, 1)))
	return results, nil
}

func runJob(p *render.Printer, job Job) Result {
	res := Result{Name: job.Name, Op: job.Op}
	var err error
	switch job.Op {
	case OpScan:
		err = scanJob(job, &res)
	default:
		err = renderJob(p, job, &res)
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func renderJob(p *render.Printer, job Job, res *Result) error {
	args, err := cliargs.ParseArgs(job.Args)
	if err != nil {
		return err
	}
	out, err := p.Sprintf(job.Template, args...)
	res.Output = out
	res.Count = len(out)
	return err
}

func scanJob(job Job, res *Result) error {
	vals, err := cliargs.SlotsFor(job.Template)
	if err != nil {
		res.Count = scan.Failed
		return err
	}
	slots := make([]scan.Slot, len(vals))
	for i, v := range vals {
		slots[i] = v.Slot
	}
	n, err := scan.Fscanf(strings.NewReader(job.Input), job.Template, slots...)
	res.Count = n
	for _, v := range cliargs.Assigned(vals, n) {
		res.Values = append(res.Values, v.Text())
	}
	return err
}

// WriteResults encodes results to w in format.
func WriteResults(w io.Writer, format string, results []Result) error {
	enc, err := codec.NewEncoder(w, format)
	if err != nil {
		return err
	}
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to write result %s: %w", res.Name, err)
		}
	}
	return nil
}

// ReadResults decodes a result stream written by WriteResults.
func ReadResults(rd io.Reader, format string) ([]Result, error) {
	d, err := codec.NewDecoder(rd, format)
	if err != nil {
		return nil, err
	}
	var results []Result
	for {
		var res Result
		err := d.Decode(&res)
		if errors.Is(err, io.EOF) {
			return results, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read result %d: %w", len(results)+1, err)
		}
		results = append(results, res)
	}
}

// CreateResults creates the result file at path. A path ending in .zst
// is zstd-compressed. Closing the returned writer flushes and closes the
// file.
func CreateResults(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create result file: %w", err)
	}
	if filepath.Ext(path) != ".zst" {
		return f, nil
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start zstd stream: %w", err)
	}
	return &zstdFile{Encoder: zw, f: f}, nil
}

type zstdFile struct {
	*zstd.Encoder
	f *os.File
}

func (z *zstdFile) Close() error {
	err := z.Encoder.Close()
	if cerr := z.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReadResultsFile reads a result file written through CreateResults.
func ReadResultsFile(path, format string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file: %w", err)
	}
	defer f.Close()
	if filepath.Ext(path) != ".zst" {
		return ReadResults(f, format)
	}
	zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to start zstd stream: %w", err)
	}
	defer zr.Close()
	return ReadResults(zr, format)
}
