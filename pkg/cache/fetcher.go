// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	httplib "github.com/xataio/holocron/internal/http"
	"github.com/xataio/holocron/internal/json"
)

// Fetcher retrieves a remote resource and returns its decoded JSON body.
type Fetcher interface {
	Fetch(ctx context.Context, url string, params Params, timeout time.Duration) (any, error)
}

// HTTPFetcher fetches resources with a GET request. It does not retry.
type HTTPFetcher struct {
	client httplib.Client
}

var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

const maxErrorBodyBytes = 512

type FetcherOption func(*HTTPFetcher)

func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client: httplib.NewClient(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithHTTPClient(c httplib.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// Fetch issues the request, bounded by the timeout when it is positive.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, params Params, timeout time.Duration) (any, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL(url, params), nil)
	if err != nil {
		return nil, fmt.Errorf("building resource request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending resource request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s, body: %s", ErrUnexpectedStatus, resp.Status, getResponseBody(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading resource response: %w", err)
	}

	var resource any
	if err := json.Unmarshal(body, &resource); err != nil {
		return nil, fmt.Errorf("decoding resource response: %w", err)
	}
	return resource, nil
}

func getResponseBody(respBody io.Reader) string {
	bodyBytes, err := io.ReadAll(io.LimitReader(respBody, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	return string(bodyBytes)
}
