// Package detect implements the language detector used when the user
// declares neither side of the translation pair. It wraps lingua with
// a fixed candidate set so unsupported languages can still outrank the
// supported ones in the returned guesses.
package detect

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/hotchpotch/NEKO-translate/internal/lang"
)

// candidateLanguages is deliberately wider than the supported set.
// Ranking against common neighbours is what lets the resolver notice
// that a text is not English or Japanese at all.
var candidateLanguages = []lingua.Language{
	lingua.English,
	lingua.Japanese,
	lingua.Chinese,
	lingua.Korean,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Russian,
}

// Lingua is a lang.Detector backed by the lingua statistical models.
type Lingua struct {
	detector lingua.LanguageDetector
}

// New builds a detector over the fixed candidate language set.
func New() *Lingua {
	return &Lingua{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidateLanguages...).
			Build(),
	}
}

// DetectTop returns up to k guesses ranked by confidence, highest
// first, using lowercase ISO 639-1 codes.
func (l *Lingua) DetectTop(text string, k int) ([]lang.Guess, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}

	values := l.detector.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 {
		return nil, fmt.Errorf("no detection candidates for input text")
	}
	if len(values) > k {
		values = values[:k]
	}

	guesses := make([]lang.Guess, 0, len(values))
	for _, v := range values {
		guesses = append(guesses, lang.Guess{
			Code:       strings.ToLower(v.Language().IsoCode639_1().String()),
			Confidence: v.Value(),
		})
	}
	return guesses, nil
}
