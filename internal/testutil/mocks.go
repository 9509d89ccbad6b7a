// Package testutil provides shared fakes for testing the translation
// pipeline without a real detector, inference engine or converter.
package testutil

import (
	"context"

	"github.com/hotchpotch/NEKO-translate/internal/infer"
	"github.com/hotchpotch/NEKO-translate/internal/lang"
)

// MockDetector returns canned language guesses.
type MockDetector struct {
	Guesses []lang.Guess
	Err     error
	Calls   int
}

// DetectTop returns the canned guesses truncated to k.
func (m *MockDetector) DetectTop(text string, k int) ([]lang.Guess, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Guesses) > k {
		return m.Guesses[:k], nil
	}
	return m.Guesses, nil
}

// MockEngine records the prompt and parameters it was asked to
// generate with and returns a canned result.
type MockEngine struct {
	Output  string
	Err     error
	Prompts []string
	Params  []infer.Params
}

// Generate records the call and returns the canned output.
func (m *MockEngine) Generate(ctx context.Context, prompt string, p infer.Params) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.Params = append(m.Params, p)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Output, nil
}

// Name returns the engine name.
func (m *MockEngine) Name() string { return "mock" }

// IsAvailable always succeeds.
func (m *MockEngine) IsAvailable() error { return nil }

// MockRunner records external command invocations.
type MockRunner struct {
	Commands [][]string
	Err      error
}

// Run records the argv and returns the scripted error.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) error {
	m.Commands = append(m.Commands, append([]string{name}, args...))
	return m.Err
}
