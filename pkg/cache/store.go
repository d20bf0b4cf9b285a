// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
)

// Store persists the whole cache document, mapping cache keys to resources.
// Every save overwrites the previous document.
type Store interface {
	Load(ctx context.Context) (map[string]any, error)
	Save(ctx context.Context, entries map[string]any) error
	Close() error
}

// MemoryStore keeps the document in memory. It is meant for tests and
// ephemeral runs.
type MemoryStore struct {
	entries map[string]any
	saves   int
}

func NewMemoryStore(entries map[string]any) *MemoryStore {
	return &MemoryStore{
		entries: deepCopyMap(entries),
	}
}

func (s *MemoryStore) Load(_ context.Context) (map[string]any, error) {
	return deepCopyMap(s.entries), nil
}

func (s *MemoryStore) Save(_ context.Context, entries map[string]any) error {
	s.entries = deepCopyMap(entries)
	s.saves++
	return nil
}

// Saves returns the number of times the document has been saved.
func (s *MemoryStore) Saves() int {
	return s.saves
}

func (s *MemoryStore) Close() error {
	return nil
}
