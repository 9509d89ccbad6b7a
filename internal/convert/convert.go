// Package convert drives the quantized-model conversion batch. For
// every (model, qbits) combination it computes a unique output
// directory, refuses to clobber an existing one, and runs the external
// mlx_lm converter with equivalent flags.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// DefaultModels are the published NEKO-Translate checkpoints converted
// when no --model flag is given.
var DefaultModels = []string{
	"cyberagent/NEKO-Translate-1.4b",
	"cyberagent/NEKO-Translate-0.8b",
}

// DefaultQBits is the default quantization bit-width list.
var DefaultQBits = []int{8, 4}

// SupportedQBits are the bit-widths mlx_lm can quantize to here.
var SupportedQBits = []int{4, 8}

// Errors reported by the driver.
var (
	ErrUnsupportedQBits = errors.New("unsupported quantization bits")
	ErrOutputExists     = errors.New("output path already exists")
)

// Options configures a conversion batch.
type Options struct {
	Models          []string
	QBits           []int
	OutputDir       string
	QGroupSize      int    // 0 means converter default
	DType           string // "", "float16", "bfloat16" or "float32"
	TrustRemoteCode bool
	Python          string // python interpreter, default python3
}

// Job is one (model, qbits) conversion with its computed output path.
type Job struct {
	Model     string
	QBits     int
	OutputDir string
}

// Runner executes an external command. The driver goes through this
// port so the batch logic is testable without spawning converters.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands via os/exec, inheriting stdout/stderr so
// converter progress stays visible.
type ExecRunner struct{}

// Run executes the command synchronously.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// PlanJobs validates the requested bit-widths and expands the
// model × qbits grid into jobs, outer loop over models, inner loop
// over bit-widths. Any invalid bit-width fails the whole plan before
// a single job runs, reporting the full invalid list.
func PlanJobs(models []string, qbits []int, outputDir string) ([]Job, error) {
	invalid := lo.Filter(qbits, func(q int, _ int) bool {
		return !lo.Contains(SupportedQBits, q)
	})
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %v (supported: %v)", ErrUnsupportedQBits, invalid, SupportedQBits)
	}

	jobs := make([]Job, 0, len(models)*len(qbits))
	for _, model := range models {
		for _, q := range qbits {
			jobs = append(jobs, Job{
				Model:     model,
				QBits:     q,
				OutputDir: filepath.Join(outputDir, model, fmt.Sprintf("q%d", q)),
			})
		}
	}
	return jobs, nil
}

// Command builds the argv for one conversion, mirroring the mlx_lm
// convert CLI flag for flag.
func (j Job) Command(opts *Options) []string {
	args := []string{
		"-m", "mlx_lm", "convert",
		"--hf-path", j.Model,
		"--mlx-path", j.OutputDir,
		"-q",
		"--q-bits", strconv.Itoa(j.QBits),
	}
	if opts.QGroupSize > 0 {
		args = append(args, "--q-group-size", strconv.Itoa(opts.QGroupSize))
	}
	if opts.DType != "" {
		args = append(args, "--dtype", opts.DType)
	}
	if opts.TrustRemoteCode {
		args = append(args, "--trust-remote-code")
	}
	return args
}

// Run performs the whole batch. The first failing job aborts the run;
// completed conversions are left in place and nothing is retried or
// cleaned up.
func Run(ctx context.Context, opts *Options, runner Runner) error {
	jobs, err := PlanJobs(opts.Models, opts.QBits, opts.OutputDir)
	if err != nil {
		return err
	}

	python := opts.Python
	if python == "" {
		python = "python3"
	}

	for _, job := range jobs {
		if err := os.MkdirAll(filepath.Dir(job.OutputDir), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if _, err := os.Stat(job.OutputDir); err == nil {
			return fmt.Errorf("%w: %s (delete/move it or choose another output directory)",
				ErrOutputExists, job.OutputDir)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to check output path %s: %w", job.OutputDir, err)
		}

		args := job.Command(opts)
		log.Info().Str("command", QuoteCommand(append([]string{python}, args...))).Msg("running")

		if err := runner.Run(ctx, python, args...); err != nil {
			return fmt.Errorf("conversion of %s (q%d) failed: %w", job.Model, job.QBits, err)
		}
	}
	return nil
}
