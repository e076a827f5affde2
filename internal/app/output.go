package app

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/chriscorrea/ocrtidy/internal/correct"
	"github.com/chriscorrea/ocrtidy/internal/counter"
)

// report is the JSON document written to stdout.
type report struct {
	correct.Result
	Stats []counter.Stats `json:"stats,omitempty"`
}

// render formats the result; map keys come out sorted in both formats.
func render(format OutputFormat, result correct.Result, stats []counter.Stats) (string, error) {
	switch format {
	case JSON:
		data, err := json.MarshalIndent(report{Result: result, Stats: stats}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode result: %w", err)
		}
		return string(data) + "\n", nil
	case Text:
		return renderText(result, stats), nil
	default:
		return "", fmt.Errorf("unsupported output format %s", format)
	}
}

func renderText(result correct.Result, stats []counter.Stats) string {
	var b strings.Builder
	b.WriteString(result.Original)

	if len(result.Corrections) > 0 {
		words := make([]string, 0, len(result.Corrections))
		for w := range result.Corrections {
			words = append(words, w)
		}
		sort.Strings(words)

		b.WriteString("\nCorrections:\n")
		for _, w := range words {
			candidates := result.Corrections[w]
			if len(candidates) == 0 {
				fmt.Fprintf(&b, "  %s: (none)\n", w)
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", w, strings.Join(candidates, ", "))
		}
	}

	if len(stats) > 0 {
		b.WriteString("\nStats:\n")
		for _, s := range stats {
			fmt.Fprintf(&b, "  %s: %d -> %d (-%d)\n", s.Unit, s.Raw, s.Cleaned, s.Removed())
		}
	}

	return b.String()
}
