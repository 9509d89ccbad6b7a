package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/hotchpotch/NEKO-translate/internal/cli"
	"github.com/hotchpotch/NEKO-translate/internal/detect"
	"github.com/hotchpotch/NEKO-translate/internal/infer"
	"github.com/hotchpotch/NEKO-translate/internal/lang"
	"github.com/hotchpotch/NEKO-translate/internal/prompt"
)

// Processor handles the main translation logic
type Processor struct {
	flags    *cli.Flags
	detector lang.Detector
	engine   infer.Engine
	stdin    io.Reader
	stdout   io.Writer
}

// NewProcessor creates a translation processor with the real detector
// and the engine selected by the flags
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	engine, err := infer.NewEngine(&infer.Config{
		Engine:  flags.Engine,
		Model:   flags.Model,
		BaseURL: flags.BaseURL,
		APIKey:  cli.GetAPIKey(),
		Python:  flags.Python,
	})
	if err != nil {
		return nil, err
	}
	if err := engine.IsAvailable(); err != nil {
		return nil, fmt.Errorf("inference engine %s is not available: %w", engine.Name(), err)
	}
	return New(flags, detect.New(), engine), nil
}

// New creates a processor with explicit collaborators
func New(flags *cli.Flags, detector lang.Detector, engine infer.Engine) *Processor {
	return &Processor{
		flags:    flags,
		detector: detector,
		engine:   engine,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
	}
}

// Run performs one translation: read text, resolve the language pair,
// build the prompt, generate, print. Any error aborts the run.
func (p *Processor) Run(ctx context.Context) error {
	text, err := p.readText()
	if err != nil {
		return err
	}

	pair, err := lang.Resolve(p.detector, p.flags.InputLang, p.flags.OutputLang, text)
	if err != nil {
		return err
	}

	instruction := prompt.Build(pair, text)

	translation, err := p.engine.Generate(ctx, instruction, infer.Params{
		MaxNewTokens:    p.flags.MaxNewTokens,
		Temperature:     p.flags.Temperature,
		TopP:            p.flags.TopP,
		TopK:            p.flags.TopK,
		TrustRemoteCode: p.flags.TrustRemoteCode,
		ChatTemplate:    !p.flags.NoChatTemplate,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(p.stdout, translation)
	return nil
}

// readText returns the --text flag value or, failing that, everything
// piped via stdin. An interactive terminal or blank input is a usage
// error.
func (p *Processor) readText() (string, error) {
	if p.flags.Text != "" {
		return p.flags.Text, nil
	}

	if f, ok := p.stdin.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return "", fmt.Errorf("provide --text or pipe input via stdin")
		}
	}

	data, err := io.ReadAll(p.stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no input text provided via stdin")
	}
	return string(data), nil
}
