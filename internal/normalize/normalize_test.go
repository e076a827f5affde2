package normalize

import (
	"errors"
	"testing"
)

func TestWord(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"plain lower", "casa", "casa"},
		{"upper case", "CASA", "casa"},
		{"acute accent", "café", "cafe"},
		{"cedilla and tilde", "Coração", "coracao"},
		{"decomposed input", "cafe\u0301", "cafe"},
		{"punctuation kept", "d'água", "d'agua"},
		{"digits kept", "R2D2", "r2d2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Word(tt.input)
			if result != tt.expected {
				t.Errorf("Word(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestKey(t *testing.T) {
	key, err := Key("Ação")
	if err != nil {
		t.Fatalf("Key() unexpected error: %v", err)
	}
	if key != "acao" {
		t.Errorf("Key(%q) = %q, want %q", "Ação", key, "acao")
	}

	// invalid UTF-8 is carried through the transformers rather than rejected
	if _, err := Key("\xff"); err != nil && !errors.Is(err, ErrNormalization) {
		t.Errorf("Key() error = %v, want ErrNormalization", err)
	}
}

func TestWordIsIdempotent(t *testing.T) {
	for _, w := range []string{"Pão", "ÉLÈVE", "naïve", "coração"} {
		once := Word(w)
		if twice := Word(once); twice != once {
			t.Errorf("Word(Word(%q)) = %q, want %q", w, twice, once)
		}
	}
}

func TestStripPunctuation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"casa,", "casa"},
		{"d'agua", "dagua"},
		{"(rio)", "rio"},
		{"$100", "100"},
		{"...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := StripPunctuation(tt.input); result != tt.expected {
				t.Errorf("StripPunctuation(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTrimPunctuation(t *testing.T) {
	if result := TrimPunctuation("«d'água»,"); result != "d'água" {
		t.Errorf("TrimPunctuation() = %q, want %q", result, "d'água")
	}
}
