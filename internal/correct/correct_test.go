package correct

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/chriscorrea/ocrtidy/internal/dictionary"
	"github.com/chriscorrea/ocrtidy/internal/suggest"
	"github.com/chriscorrea/ocrtidy/internal/trace"
)

func TestCleanup(t *testing.T) {
	raw := "Texto detectado:\n===!\naaaaaaa foi encontrado\nO contrato foi assinado"

	got := Cleanup(raw)

	want := "Texto detectado:\nO contrato foi assinado\n"
	if got != want {
		t.Errorf("Cleanup() = %q, want %q", got, want)
	}
}

func TestCorrect_FrequentWordHasNoCorrection(t *testing.T) {
	dict := dictionary.New("casa", "carro")

	result, err := Correct(context.Background(), "a caza e bonita a caza e grande", dict)
	if err != nil {
		t.Fatalf("Correct() unexpected error: %v", err)
	}

	if _, ok := result.Corrections["caza"]; ok {
		t.Errorf("Corrections has entry for reliable word caza: %v", result.Corrections["caza"])
	}
	for _, w := range []string{"bonita", "grande"} {
		if _, ok := result.Corrections[w]; !ok {
			t.Errorf("Corrections missing suspicious word %q", w)
		}
	}
	if result.Original != "a caza e bonita a caza e grande" {
		t.Errorf("Original = %q, want the cleaned text unchanged", result.Original)
	}
}

func TestCorrect_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t\n"} {
		result, err := Correct(context.Background(), in, dictionary.New("casa"))
		if err != nil {
			t.Fatalf("Correct(%q) unexpected error: %v", in, err)
		}
		if result.Corrections == nil || len(result.Corrections) != 0 {
			t.Errorf("Correct(%q).Corrections = %v, want empty map", in, result.Corrections)
		}
	}
}

func TestCorrect_KeysAreSurfaceForms(t *testing.T) {
	dict := dictionary.New("contrato", "assinado", "foi", "pelo", "diretor")

	result, err := Correct(context.Background(), "O Contratto foi assinado pelo diretor", dict)
	if err != nil {
		t.Fatalf("Correct() unexpected error: %v", err)
	}

	got, ok := result.Corrections["Contratto"]
	if !ok {
		t.Fatalf("Corrections = %v, want key %q", result.Corrections, "Contratto")
	}
	if !slices.Contains(got, "contrato") {
		t.Errorf("Corrections[Contratto] = %v, want it to contain contrato", got)
	}
}

func TestCorrect_CandidateListShape(t *testing.T) {
	words := strings.Fields("bola bolo bota bote boca bico bolha bolsa")
	dict := dictionary.New(words...)
	text := "bola bola bolo bolo bota bota bote bote boca boca bico bico boxa"

	result, err := Correct(context.Background(), text, dict)
	if err != nil {
		t.Fatalf("Correct() unexpected error: %v", err)
	}

	got := result.Corrections["boxa"]
	if len(got) > 10 {
		t.Errorf("len(candidates) = %d, want <= 10", len(got))
	}
	want := []string{"bola", "bota", "boca", "bolo", "bote", "bola", "bota", "boca", "bolo", "bote"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Corrections[boxa] = %v, want %v", got, want)
	}
}

func TestRun(t *testing.T) {
	dict := dictionary.New("casa", "rosa", "carro")
	raw := "###\nxyzqw estava perto\nxx"

	var rec trace.Recorder
	result, err := Run(context.Background(), raw, dict,
		WithTracer(&rec),
		WithSuggestOptions(suggest.WithWorkers(1)))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if result.Original != "xyzqw estava perto\n" {
		t.Errorf("Original = %q", result.Original)
	}
	if got, want := result.Corrections["xyzqw"], []string{"casa", "rosa", "carro"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Corrections[xyzqw] = %v, want %v", got, want)
	}
	if len(rec.OfKind(trace.LineRejected)) != 2 {
		t.Errorf("rejected line events = %d, want 2", len(rec.OfKind(trace.LineRejected)))
	}
	if len(rec.OfKind(trace.Suggested)) != len(result.Corrections) {
		t.Errorf("suggested events = %d, want %d", len(rec.OfKind(trace.Suggested)), len(result.Corrections))
	}
}

func TestCorrect_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Correct(ctx, "palavra estranha aqui", dictionary.New())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Correct() error = %v, want context.Canceled", err)
	}
}
