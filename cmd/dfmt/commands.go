package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"gopkg.in/dfmt.v0/internal/batch"
	"gopkg.in/dfmt.v0/internal/cliargs"
	"gopkg.in/dfmt.v0/internal/config"
	"gopkg.in/dfmt.v0/scan"
)

var (
	// render flags
	rounding  string
	noNewline bool
	maxField  int

	// batch flags
	workers int
	output  string
	outPath string
)

// renderCmd renders a template with typed arguments.
var renderCmd = &cobra.Command{
	Use:   "render TEMPLATE [ARG...]",
	Short: "Render a template with kind:value arguments",
	Long: `Renders TEMPLATE with the given arguments, like printf.

Each ARG is kind:value. Run "dfmt kinds" for the list of kinds.

Example:
  dfmt render "%-8s|%08.3Lf|%#x" s:total L:12.3456 i:255`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

// scanCmd reads values out of input text.
var scanCmd = &cobra.Command{
	Use:   "scan INPUT TEMPLATE",
	Short: "Scan INPUT under TEMPLATE and print the assigned values",
	Long: `Scans INPUT under TEMPLATE, like sscanf, and prints one line per
assigned value (index, tab, value) followed by the assignment count.
An INPUT of "-" reads standard input.

Example:
  dfmt scan "2024-03-15" "%d-%d-%d"`,
	Args: cobra.ExactArgs(2),
	RunE: runScan,
}

// batchCmd runs a job file.
var batchCmd = &cobra.Command{
	Use:   "batch JOBFILE",
	Short: "Run a YAML file of render and scan jobs concurrently",
	Long: `Runs every job of JOBFILE and writes one result per job, in job order,
as JSON lines or as a CBOR sequence. JOBFILE is YAML, or JSON with
comments when named *.json or *.jsonc. With --out the results go to a
file, zstd-compressed when the name ends in .zst.

Job file format:
  jobs:
    - name: price
      template: "%.2Lf"
      args: ["L:19.995"]
    - name: date
      op: scan
      template: "%d-%d-%d"
      input: "2024-03-15"`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List argument kinds and rounding modes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Argument kinds:")
		for _, k := range cliargs.Kinds {
			fmt.Fprintf(w, "  %-3s %s\n", k.Kind, k.Desc)
		}
		fmt.Fprintln(w, "Rounding modes:")
		fmt.Fprintf(w, "  %s\n", strings.Join(config.RoundingModes(), ", "))
	},
}

func runRender(cmd *cobra.Command, args []string) error {
	if rounding != "" {
		cfg.Render.Rounding = rounding
	}
	if maxField > 0 {
		cfg.Render.MaxField = maxField
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	tmpl := args[0]
	rargs, err := cliargs.ParseArgs(args[1:])
	if err != nil {
		return err
	}
	out, err := cfg.Printer().Sprintf(tmpl, rargs...)
	logger.Debug("rendered",
		zap.String("template", tmpl),
		zap.Int("args", len(rargs)),
		zap.Int("count", len(out)))
	w := cmd.OutOrStdout()
	io.WriteString(w, out)
	if !noNewline {
		fmt.Fprintln(w)
	}
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	input, tmpl := args[0], args[1]
	vals, err := cliargs.SlotsFor(tmpl)
	if err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	slots := make([]scan.Slot, len(vals))
	for i, v := range vals {
		slots[i] = v.Slot
	}

	var n int
	if input == "-" {
		n, err = scan.Fscanf(cmd.InOrStdin(), tmpl, slots...)
	} else {
		n, err = scan.Sscanf(input, tmpl, slots...)
	}
	logger.Debug("scanned",
		zap.String("template", tmpl),
		zap.Int("count", n),
		zap.Error(err))

	w := cmd.OutOrStdout()
	for _, v := range cliargs.Assigned(vals, n) {
		fmt.Fprintf(w, "%d\t%s\n", v.Index, v.Text())
	}
	fmt.Fprintf(w, "count\t%d\n", n)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	if workers > 0 {
		cfg.Batch.Workers = workers
	}
	if output != "" {
		cfg.Batch.Output = output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	jobs, err := batch.LoadJobs(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	runner := &batch.Runner{
		Printer: cfg.Printer(),
		Workers: cfg.Batch.Workers,
		Logger:  logger,
	}
	results, err := runner.Run(ctx, jobs)
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	if outPath != "" {
		w, err := batch.CreateResults(outPath)
		if err != nil {
			return err
		}
		if err := batch.WriteResults(w, cfg.Batch.Output, results); err != nil {
			w.Close()
			return err
		}
		logger.Info("results written", zap.String("path", outPath), zap.Int("results", len(results)))
		return w.Close()
	}

	w := cmd.OutOrStdout()
	if f, ok := w.(*os.File); ok && cfg.Batch.Output == "cbor" && term.IsTerminal(int(f.Fd())) {
		return errors.New("refusing to write CBOR to a terminal; use --out or redirect output")
	}
	return batch.WriteResults(w, cfg.Batch.Output, results)
}
