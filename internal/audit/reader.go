package audit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound marks a missing input file. The caller treats it as a
// configuration error (exit code 2) rather than a runtime failure.
var ErrNotFound = errors.New("input file not found")

// Line is one raw line of the export with its 1-based position.
type Line struct {
	No   int
	Text string
}

// maxLineBytes bounds a single record line. Credential exports are short
// lines; anything past this is a corrupt input, not a record.
const maxLineBytes = 1 << 20

// ReadLines opens path and streams its lines in order to fn. The file handle
// is released on every exit path. fn returning an error stops the scan early.
func ReadLines(ctx context.Context, path string, fn func(Line) error) error {
	safePath := filepath.Clean(path)
	f, err := os.Open(safePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	no := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		no++
		if err := fn(Line{No: no, Text: scanner.Text()}); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}
