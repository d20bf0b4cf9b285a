// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"
	"sync/atomic"

	"github.com/xataio/holocron/pkg/cache"
)

type ResourceCache struct {
	GetFn    func(ctx context.Context, url string, params cache.Params) (any, error)
	getCalls uint64
}

func (m *ResourceCache) Get(ctx context.Context, url string, params cache.Params) (any, error) {
	atomic.AddUint64(&m.getCalls, 1)
	return m.GetFn(ctx, url, params)
}

func (m *ResourceCache) GetGetCalls() uint64 {
	return atomic.LoadUint64(&m.getCalls)
}
