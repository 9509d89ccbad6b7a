package processor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hotchpotch/NEKO-translate/internal/cli"
	"github.com/hotchpotch/NEKO-translate/internal/lang"
	"github.com/hotchpotch/NEKO-translate/internal/testutil"
)

func newTestProcessor(flags *cli.Flags, det *testutil.MockDetector, eng *testutil.MockEngine) (*Processor, *strings.Builder) {
	p := New(flags, det, eng)
	out := &strings.Builder{}
	p.stdout = out
	return p, out
}

func TestRunExplicitPair(t *testing.T) {
	flags := cli.NewFlags()
	flags.Text = "Hello"
	flags.InputLang = "en"
	flags.OutputLang = "ja"

	det := &testutil.MockDetector{}
	eng := &testutil.MockEngine{Output: "こんにちは"}
	p, out := newTestProcessor(flags, det, eng)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if out.String() != "こんにちは\n" {
		t.Errorf("output = %q, want translation plus newline", out.String())
	}
	if det.Calls != 0 {
		t.Error("detector consulted despite explicit language pair")
	}
	if len(eng.Prompts) != 1 {
		t.Fatalf("engine called %d times, want 1", len(eng.Prompts))
	}
	want := "Translate the following English text into Japanese.\n\nHello"
	if eng.Prompts[0] != want {
		t.Errorf("prompt = %q, want %q", eng.Prompts[0], want)
	}
}

func TestRunDetectedPair(t *testing.T) {
	flags := cli.NewFlags()
	flags.Text = "Good morning"

	det := &testutil.MockDetector{Guesses: []lang.Guess{
		{Code: "fr", Confidence: 0.5},
		{Code: "en", Confidence: 0.4},
		{Code: "ja", Confidence: 0.1},
	}}
	eng := &testutil.MockEngine{Output: "おはよう"}
	p, _ := newTestProcessor(flags, det, eng)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if det.Calls != 1 {
		t.Errorf("detector called %d times, want 1", det.Calls)
	}
	if !strings.Contains(eng.Prompts[0], "English text into Japanese") {
		t.Errorf("prompt %q does not target Japanese for detected English", eng.Prompts[0])
	}
}

func TestRunParamsPassThrough(t *testing.T) {
	flags := cli.NewFlags()
	flags.Text = "Hello"
	flags.InputLang = "en"
	flags.MaxNewTokens = 128
	flags.Temperature = 0.7
	flags.TopP = 0.9
	flags.TopK = 40
	flags.NoChatTemplate = true
	flags.TrustRemoteCode = true

	eng := &testutil.MockEngine{Output: "x"}
	p, _ := newTestProcessor(flags, &testutil.MockDetector{}, eng)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := eng.Params[0]
	if got.MaxNewTokens != 128 || got.Temperature != 0.7 || got.TopP != 0.9 || got.TopK != 40 {
		t.Errorf("generation params not passed through: %+v", got)
	}
	if got.ChatTemplate {
		t.Error("ChatTemplate = true despite --no-chat-template")
	}
	if !got.TrustRemoteCode {
		t.Error("TrustRemoteCode not passed through")
	}
}

func TestRunStdinInput(t *testing.T) {
	flags := cli.NewFlags()
	flags.InputLang = "ja"

	eng := &testutil.MockEngine{Output: "Hello"}
	p, out := newTestProcessor(flags, &testutil.MockDetector{}, eng)
	p.stdin = strings.NewReader("こんにちは\n")

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(eng.Prompts[0], "こんにちは") {
		t.Errorf("stdin text missing from prompt %q", eng.Prompts[0])
	}
	if out.String() != "Hello\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunEmptyStdin(t *testing.T) {
	flags := cli.NewFlags()
	p, _ := newTestProcessor(flags, &testutil.MockDetector{}, &testutil.MockEngine{})
	p.stdin = strings.NewReader("   \n")

	if err := p.Run(context.Background()); err == nil {
		t.Error("expected error for blank stdin input")
	}
}

func TestRunEngineFailure(t *testing.T) {
	flags := cli.NewFlags()
	flags.Text = "Hello"
	flags.InputLang = "en"

	eng := &testutil.MockEngine{Err: errors.New("model not found")}
	p, out := newTestProcessor(flags, &testutil.MockDetector{}, eng)

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("expected engine error to propagate")
	}
	if out.String() != "" {
		t.Errorf("output written despite failure: %q", out.String())
	}
}

func TestNewProcessorUnavailableEngine(t *testing.T) {
	flags := cli.NewFlags()
	flags.Engine = "openai"
	flags.BaseURL = ""

	// The openai engine is unavailable without a base URL; the
	// processor must fail fast instead of reading input first.
	if _, err := NewProcessor(flags); err == nil {
		t.Error("expected error for unavailable engine")
	}
}

func TestRunInvalidPair(t *testing.T) {
	flags := cli.NewFlags()
	flags.Text = "Hello"
	flags.InputLang = "en"
	flags.OutputLang = "en"

	eng := &testutil.MockEngine{}
	p, _ := newTestProcessor(flags, &testutil.MockDetector{}, eng)

	err := p.Run(context.Background())
	if !errors.Is(err, lang.ErrInvalidPair) {
		t.Errorf("error = %v, want ErrInvalidPair", err)
	}
	if len(eng.Prompts) != 0 {
		t.Error("engine invoked despite invalid pair")
	}
}
