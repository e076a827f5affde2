// Package fetch opens OCR output for reading.
// Sources are either "-" for standard input or a local file path.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
)

// MaxSourceBytes bounds a single source to prevent memory overload
const MaxSourceBytes = 50 * 1024 * 1024

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		// content of exactly the limit is fine; only report once more data shows up
		var next [1]byte
		n, err = l.ReadCloser.Read(next[:])
		if n > 0 {
			return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
		}
		return 0, err
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// GetContent returns a reader for source. "-" reads standard input; anything
// else is treated as a local file path. The caller closes the reader.
func GetContent(ctx context.Context, source string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if source == "-" {
		// stdin is shared; closing the wrapper must not close it
		return &limitedReadCloser{
			ReadCloser: io.NopCloser(os.Stdin),
			N:          MaxSourceBytes,
			source:     "stdin",
		}, nil
	}
	return openFile(source)
}

// ReadAll reads the whole of source as text.
func ReadAll(ctx context.Context, source string) (string, error) {
	rc, err := GetContent(ctx, source)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", source, err)
	}
	return string(data), nil
}

// openFile opens a local file after checking its size
func openFile(path string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}
	if fileInfo.Size() > MaxSourceBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, fileInfo.Size(), MaxSourceBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	return file, nil
}
