// SPDX-License-Identifier: Apache-2.0

// Package dataset reads and writes record files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xataio/holocron/internal/json"
	"github.com/xataio/holocron/pkg/record"
)

var ErrNotRecordList = errors.New("file does not hold a list of records")

type csvConfig struct {
	delimiter rune
}

type CSVOption func(*csvConfig)

// WithDelimiter sets the field delimiter, a comma by default.
func WithDelimiter(d rune) CSVOption {
	return func(c *csvConfig) {
		c.delimiter = d
	}
}

// ReadCSV reads a CSV file with a header row. Every following row becomes a
// raw record keyed by the header names, with string values.
func ReadCSV(path string, opts ...CSVOption) ([]record.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	return DecodeCSV(f, opts...)
}

// DecodeCSV reads CSV rows from r. See ReadCSV.
func DecodeCSV(r io.Reader, opts ...CSVOption) ([]record.Raw, error) {
	cfg := &csvConfig{delimiter: ','}
	for _, opt := range opts {
		opt(cfg)
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []record.Raw{}, nil
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records := []record.Raw{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}

		raw := make(record.Raw, len(header))
		for i, name := range header {
			if i < len(row) {
				raw[name] = row[i]
			} else {
				raw[name] = nil
			}
		}
		records = append(records, raw)
	}
	return records, nil
}

// ReadJSON reads and decodes a JSON file.
func ReadJSON(path string) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading json file: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("decoding json file %s: %w", path, err)
	}
	return v, nil
}

// ReadRecords reads a list of raw records from a CSV file (.csv extension) or
// a JSON file holding a list of objects. A JSON file holding a single object
// returns a one record list.
func ReadRecords(path string) ([]record.Raw, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(path)
	}

	v, err := ReadJSON(path)
	if err != nil {
		return nil, err
	}
	return toRecords(v)
}

func toRecords(v any) ([]record.Raw, error) {
	switch val := v.(type) {
	case map[string]any:
		return []record.Raw{val}, nil
	case []any:
		records := make([]record.Raw, 0, len(val))
		for i, item := range val {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: item %d is a %T", ErrNotRecordList, i, item)
			}
			records = append(records, m)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotRecordList, v)
	}
}

// WriteJSON writes the value as indented JSON. Non-ASCII text is not escaped.
func WriteJSON(path string, v any) error {
	b, err := json.MarshalIndent(v)
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing json file: %w", err)
	}
	return nil
}
