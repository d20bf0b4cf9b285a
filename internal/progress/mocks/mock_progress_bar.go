// SPDX-License-Identifier: Apache-2.0

package mocks

import "sync/atomic"

type Bar struct {
	AddFn    func(int) error
	CloseFn  func() error
	addCalls uint64
}

func (b *Bar) Add(n int) error {
	atomic.AddUint64(&b.addCalls, 1)
	if b.AddFn != nil {
		return b.AddFn(n)
	}
	return nil
}

func (b *Bar) Close() error {
	if b.CloseFn != nil {
		return b.CloseFn()
	}
	return nil
}

func (b *Bar) GetAddCalls() uint64 {
	return atomic.LoadUint64(&b.addCalls)
}
