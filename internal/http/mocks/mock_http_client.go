// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"net/http"
	"sync/atomic"
)

type Client struct {
	DoFn    func(*http.Request) (*http.Response, error)
	doCalls uint64
}

func (m *Client) Do(req *http.Request) (*http.Response, error) {
	atomic.AddUint64(&m.doCalls, 1)
	return m.DoFn(req)
}

func (m *Client) GetDoCalls() uint64 {
	return atomic.LoadUint64(&m.doCalls)
}
