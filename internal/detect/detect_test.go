package detect

import (
	"testing"
)

func TestDetectTopEnglish(t *testing.T) {
	det := New()

	guesses, err := det.DetectTop("The quick brown fox jumps over the lazy dog.", 3)
	if err != nil {
		t.Fatalf("DetectTop failed: %v", err)
	}
	if len(guesses) == 0 || len(guesses) > 3 {
		t.Fatalf("got %d guesses, want 1..3", len(guesses))
	}
	if guesses[0].Code != "en" {
		t.Errorf("top guess = %q, want en", guesses[0].Code)
	}
}

func TestDetectTopJapanese(t *testing.T) {
	det := New()

	guesses, err := det.DetectTop("吾輩は猫である。名前はまだ無い。", 3)
	if err != nil {
		t.Fatalf("DetectTop failed: %v", err)
	}
	if guesses[0].Code != "ja" {
		t.Errorf("top guess = %q, want ja", guesses[0].Code)
	}
}

func TestDetectTopRanked(t *testing.T) {
	det := New()

	guesses, err := det.DetectTop("Good morning, have a wonderful day today.", 3)
	if err != nil {
		t.Fatalf("DetectTop failed: %v", err)
	}
	for i := 1; i < len(guesses); i++ {
		if guesses[i].Confidence > guesses[i-1].Confidence {
			t.Errorf("guesses not sorted by confidence: %v", guesses)
		}
	}
}

func TestDetectTopEmptyText(t *testing.T) {
	det := New()

	if _, err := det.DetectTop("   ", 3); err == nil {
		t.Error("expected error for blank text")
	}
}
