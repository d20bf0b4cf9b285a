// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xataio/holocron/internal/json"
)

// FileStore keeps the cache document as an indented JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads the cache document. A missing file is an empty cache.
func (s *FileStore) Load(_ context.Context) (map[string]any, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	entries := map[string]any{}
	if len(b) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("decoding cache file %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *FileStore) Save(_ context.Context, entries map[string]any) error {
	b, err := json.MarshalIndent(entries)
	if err != nil {
		return fmt.Errorf("encoding cache file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
