package infer

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const defaultPython = "python3"

// MLXEngine runs generation through the mlx_lm command-line frontend.
// The model is loaded fresh for every invocation and released when the
// subprocess exits, which matches the one-translation-per-run shape of
// the CLI.
type MLXEngine struct {
	python string
	model  string
}

// NewMLXEngine creates an engine invoking python -m mlx_lm generate.
func NewMLXEngine(python, model string) *MLXEngine {
	if python == "" {
		python = defaultPython
	}
	return &MLXEngine{python: python, model: model}
}

// Name returns the engine name.
func (e *MLXEngine) Name() string {
	return "mlx"
}

// IsAvailable checks that the configured python interpreter exists.
func (e *MLXEngine) IsAvailable() error {
	if _, err := exec.LookPath(e.python); err != nil {
		return fmt.Errorf("python interpreter %q not found: %w", e.python, err)
	}
	return nil
}

// Generate runs one mlx_lm generation and returns its output verbatim
// (modulo surrounding whitespace).
func (e *MLXEngine) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	cmd := exec.CommandContext(ctx, e.python, e.args(prompt, p)...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("mlx_lm generate failed: %w\nOutput: %s", err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

// args builds the mlx_lm generate argument list. Sampler flags are
// only emitted for non-greedy parameter sets; mlx_lm decodes greedily
// when none are given.
func (e *MLXEngine) args(prompt string, p Params) []string {
	args := []string{
		"-m", "mlx_lm", "generate",
		"--model", e.model,
		"--max-tokens", strconv.Itoa(p.MaxNewTokens),
		"--prompt", prompt,
	}
	if sampler := p.Sampler(); sampler != nil {
		args = append(args,
			"--temp", strconv.FormatFloat(sampler.Temperature, 'g', -1, 64),
			"--top-p", strconv.FormatFloat(sampler.TopP, 'g', -1, 64),
			"--top-k", strconv.Itoa(sampler.TopK),
		)
	}
	if !p.ChatTemplate {
		args = append(args, "--ignore-chat-template")
	}
	if p.TrustRemoteCode {
		args = append(args, "--trust-remote-code")
	}
	return args
}
