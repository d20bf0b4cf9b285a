// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/xataio/holocron/pkg/cache"
)

type Fetcher struct {
	FetchFn    func(ctx context.Context, url string, params cache.Params, timeout time.Duration) (any, error)
	fetchCalls uint64
}

func (m *Fetcher) Fetch(ctx context.Context, url string, params cache.Params, timeout time.Duration) (any, error) {
	atomic.AddUint64(&m.fetchCalls, 1)
	return m.FetchFn(ctx, url, params, timeout)
}

func (m *Fetcher) GetFetchCalls() uint64 {
	return atomic.LoadUint64(&m.fetchCalls)
}
