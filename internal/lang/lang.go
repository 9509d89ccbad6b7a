package lang

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Code is a canonical language code. Only English and Japanese exist.
type Code string

const (
	English  Code = "en"
	Japanese Code = "ja"
)

// Errors returned by Normalize and Resolve.
var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrDetectionFailed     = errors.New("language detection failed")
	ErrInvalidPair         = errors.New("invalid language pair")
)

// synonyms maps lowercase-trimmed user tokens to canonical codes.
var synonyms = map[string]Code{
	"ja":       Japanese,
	"jp":       Japanese,
	"japanese": Japanese,
	"日本語":      Japanese,
	"en":       English,
	"eng":      English,
	"english":  English,
}

// Pair is an ordered (source, target) language pair. Source and target
// always differ and both belong to the supported set.
type Pair struct {
	Source Code
	Target Code
}

// Guess is a single ranked candidate from a language detector.
type Guess struct {
	Code       string
	Confidence float64
}

// Detector returns up to k ranked language guesses for the given text.
// Implementations live outside this package so the resolver stays
// testable without a real detector.
type Detector interface {
	DetectTop(text string, k int) ([]Guess, error)
}

// Supported reports whether code is one of the two canonical codes.
func Supported(code Code) bool {
	return code == English || code == Japanese
}

// Normalize maps a free-form language token ("jp", "English", "日本語")
// to its canonical code. An empty token yields the empty code with no
// error so optional flags pass through unchanged.
func Normalize(token string) (Code, error) {
	if token == "" {
		return "", nil
	}
	code, ok := synonyms[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return "", fmt.Errorf("%w: %q (supported: en, ja)", ErrUnsupportedLanguage, token)
	}
	return code, nil
}

// Complement returns the other member of the two-language set. With
// exactly two supported languages the missing side of a pair is always
// this fixed bijection; adding a third language would require a real
// per-pair default table instead.
func Complement(code Code) Code {
	if code == English {
		return Japanese
	}
	return English
}

// Resolve produces a validated Pair from optional user tokens and the
// input text. Explicit tokens always win; the detector is consulted
// only when both sides are unspecified, taking the first of its top-3
// guesses that is a supported code.
func Resolve(det Detector, inputToken, outputToken, text string) (Pair, error) {
	source, err := Normalize(inputToken)
	if err != nil {
		return Pair{}, err
	}
	target, err := Normalize(outputToken)
	if err != nil {
		return Pair{}, err
	}

	switch {
	case source == "" && target == "":
		detected, err := detect(det, text)
		if err != nil {
			return Pair{}, err
		}
		pair := Pair{Source: detected, Target: Complement(detected)}
		log.Info().
			Str("source", string(pair.Source)).
			Str("target", string(pair.Target)).
			Msg("detected language pair")
		return pair, nil

	case source == "":
		return Pair{Source: Complement(target), Target: target}, nil

	case target == "":
		return Pair{Source: source, Target: Complement(source)}, nil
	}

	if !Supported(source) || !Supported(target) {
		return Pair{}, fmt.Errorf("%w: only English and Japanese are supported", ErrInvalidPair)
	}
	if source == target {
		return Pair{}, fmt.Errorf("%w: source and target languages must differ", ErrInvalidPair)
	}
	return Pair{Source: source, Target: target}, nil
}

func detect(det Detector, text string) (Code, error) {
	guesses, err := det.DetectTop(text, 3)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDetectionFailed, err)
	}
	for _, g := range guesses {
		code := Code(g.Code)
		if Supported(code) {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: could not detect text as English or Japanese", ErrDetectionFailed)
}
