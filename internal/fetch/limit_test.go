package fetch

import (
	"io"
	"strings"
	"testing"
)

func TestLimitedReadCloser(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		limit       int64
		expectError bool
	}{
		{"under limit", "abc", 5, false},
		{"exactly at limit", "abcde", 5, false},
		{"one byte over", "abcdef", 5, true},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &limitedReadCloser{
				ReadCloser: io.NopCloser(strings.NewReader(tt.content)),
				N:          tt.limit,
				source:     "test",
			}

			data, err := io.ReadAll(r)
			if tt.expectError {
				if err == nil {
					t.Fatalf("ReadAll() = %q, expected size limit error", data)
				}
				if !strings.Contains(err.Error(), "exceeds size limit") {
					t.Errorf("ReadAll() error = %v, want size limit error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadAll() unexpected error: %v", err)
			}
			if string(data) != tt.content {
				t.Errorf("ReadAll() = %q, want %q", data, tt.content)
			}
		})
	}
}
