package dataset

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"qaeval/pkg/core"
)

// FileDataset streams QA records from a JSON array or JSONL file.
// Both formats are decoded record by record, so file size is not
// bounded by memory.
type FileDataset struct {
	Path     string
	NameHint string
}

func NewFileDataset(path string) *FileDataset {
	return &FileDataset{Path: path}
}

func (d *FileDataset) Name() string {
	if d.NameHint != "" {
		return d.NameHint
	}
	return filepath.Base(d.Path)
}

func (d *FileDataset) Len(ctx context.Context) (int, error) {
	count := 0
	err := d.forEach(ctx, func(core.QAInput) error {
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (d *FileDataset) Records(ctx context.Context) (<-chan core.QAInput, <-chan error) {
	recordCh := make(chan core.QAInput)
	errCh := make(chan error, 1)

	go func() {
		defer close(recordCh)
		defer close(errCh)

		err := d.forEach(ctx, func(record core.QAInput) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case recordCh <- record:
				return nil
			}
		})
		if err != nil {
			errCh <- err
		}
	}()

	return recordCh, errCh
}

// forEach walks every record in the file in order, stopping at the
// first callback error.
func (d *FileDataset) forEach(ctx context.Context, fn func(core.QAInput) error) error {
	format, err := detectFormat(d.Path)
	if err != nil {
		return err
	}

	file, err := os.Open(d.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch format {
	case "json":
		return walkArray(ctx, file, fn)
	case "jsonl":
		return walkLines(ctx, file, fn)
	default:
		return errors.New("dataset: unsupported format")
	}
}

// detectFormat decides between a JSON array and JSONL, by extension
// when there is one and by the first non-space byte otherwise.
func detectFormat(path string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".json" || ext == ".jsonl" {
		return ext[1:], nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return "", err
		}
		switch {
		case unicode.IsSpace(rune(b)):
			continue
		case b == '[':
			return "json", nil
		case b == '{':
			return "jsonl", nil
		default:
			return "", errors.New("dataset: unsupported format")
		}
	}
}

func walkArray(ctx context.Context, r io.Reader, fn func(core.QAInput) error) error {
	decoder := json.NewDecoder(r)
	if _, err := decoder.Token(); err != nil {
		return err
	}
	for decoder.More() {
		if err := ctx.Err(); err != nil {
			return err
		}
		var record core.QAInput
		if err := decoder.Decode(&record); err != nil {
			return err
		}
		if err := fn(record); err != nil {
			return err
		}
	}
	_, err := decoder.Token()
	return err
}

func walkLines(ctx context.Context, r io.Reader, fn func(core.QAInput) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record core.QAInput
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return err
		}
		if err := fn(record); err != nil {
			return err
		}
	}
	return scanner.Err()
}
