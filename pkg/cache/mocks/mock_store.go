// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"
)

type Store struct {
	LoadFn    func(ctx context.Context) (map[string]any, error)
	SaveFn    func(ctx context.Context, entries map[string]any) error
	CloseFn   func() error
	saveCalls uint64
}

func (m *Store) Load(ctx context.Context) (map[string]any, error) {
	return m.LoadFn(ctx)
}

func (m *Store) Save(ctx context.Context, entries map[string]any) error {
	m.saveCalls++
	return m.SaveFn(ctx, entries)
}

func (m *Store) Close() error {
	if m.CloseFn == nil {
		return nil
	}
	return m.CloseFn()
}

func (m *Store) GetSaveCalls() uint64 {
	return m.saveCalls
}
