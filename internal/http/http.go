// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
)

// Client is the subset of *http.Client used to reach remote resource APIs.
type Client interface {
	Do(*http.Request) (*http.Response, error)
}

// NewClient returns an http client without a global timeout. Timeouts are
// applied per request through the request context.
func NewClient() *http.Client {
	return &http.Client{
		Transport: http.DefaultTransport,
	}
}
