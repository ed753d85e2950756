package persist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/roach88/roster/internal/codec"
	"github.com/roach88/roster/internal/record"
)

// maxLineSize bounds a single persisted line.
const maxLineSize = 1 << 20

// TextFile stores records in a flat file, one encoded record per line.
type TextFile struct {
	path   string
	logger *slog.Logger
}

// NewTextFile returns a gateway for the file at path.
// The file is not touched until Load or Save.
func NewTextFile(path string) *TextFile {
	return &TextFile{
		path:   path,
		logger: slog.Default().With("component", "persist", "backend", "text"),
	}
}

// Location returns the file path.
func (t *TextFile) Location() string {
	return t.path
}

// Close is a no-op; files are opened and closed per call.
func (t *TextFile) Close() error {
	return nil
}

// Save truncates the file and writes one line per record.
// A write error after truncation leaves a partial file.
func (t *TextFile) Save(ctx context.Context, records []record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(t.path)
	if err != nil {
		return &IOError{Op: "save", Path: t.path, Err: err}
	}

	w := bufio.NewWriter(f)
	for _, r := range records {
		if _, err := w.WriteString(codec.Encode(r) + "\n"); err != nil {
			f.Close()
			return &IOError{Op: "save", Path: t.path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return &IOError{Op: "save", Path: t.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "save", Path: t.path, Err: err}
	}

	t.logger.Info("records saved", "path", t.path, "count", len(records))
	return nil
}

// Load reads the file line by line. A missing file yields an empty result.
// Blank lines are skipped. Lines that fail to decode, and lines repeating an
// id already seen, are collected as corrupt.
func (t *TextFile) Load(ctx context.Context) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &LoadResult{}

	f, err := os.Open(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		t.logger.Info("no existing data", "path", t.path)
		return res, nil
	}
	if err != nil {
		return nil, &IOError{Op: "load", Path: t.path, Err: err}
	}
	defer f.Close()

	seen := make(map[int]bool)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		r, err := codec.Decode(line)
		if err != nil {
			var ce *codec.CorruptError
			if !errors.As(err, &ce) {
				return nil, &IOError{Op: "load", Path: t.path, Err: err}
			}
			ce.Line = lineNo
			res.Corrupt = append(res.Corrupt, ce)
			t.logger.Warn("skipping corrupt line", "path", t.path, "line", lineNo, "reason", ce.Reason)
			continue
		}
		if seen[r.ID] {
			ce := &codec.CorruptError{Line: lineNo, Text: line, Reason: fmt.Sprintf("duplicate id %d", r.ID)}
			res.Corrupt = append(res.Corrupt, ce)
			t.logger.Warn("skipping duplicate id", "path", t.path, "line", lineNo, "id", r.ID)
			continue
		}
		seen[r.ID] = true
		res.Records = append(res.Records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, &IOError{Op: "load", Path: t.path, Err: err}
	}

	t.logger.Info("records loaded", "path", t.path, "count", len(res.Records), "corrupt", len(res.Corrupt))
	return res, nil
}
