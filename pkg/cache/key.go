// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"net/url"
	"sort"
	"strings"
)

// Params are the query parameters of a resource request.
type Params map[string]string

// Key returns the normalised identity of a request. The url and the
// parameters are lower cased and, when there are parameters, the query and
// fragment of the url are replaced by the parameters encoded in name order.
// Two requests that only differ in the order of their parameters or in letter
// case share the same key.
func Key(rawURL string, params Params) string {
	if len(params) == 0 {
		return strings.ToLower(rawURL)
	}
	return strings.ToLower(stripQuery(rawURL) + "?" + params.lower().Encode())
}

// Encode encodes the parameters sorted by name. Spaces are encoded as %20 and
// reserved characters are escaped, except for '/'.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}

	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(name))
		b.WriteByte('=')
		b.WriteString(escape(p[name]))
	}
	return b.String()
}

// lower returns the parameters with lower cased names and values. Names that
// only differ in case collapse into one, the value of the greatest original
// name wins.
func (p Params) lower() Params {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	lowered := make(Params, len(p))
	for _, name := range names {
		lowered[strings.ToLower(name)] = strings.ToLower(p[name])
	}
	return lowered
}

// requestURL returns the url used to issue the request. It keeps the letter
// case of the input.
func requestURL(rawURL string, params Params) string {
	if len(params) == 0 {
		return rawURL
	}
	return stripQuery(rawURL) + "?" + params.Encode()
}

func stripQuery(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

func escape(s string) string {
	return queryEscaper.Replace(url.QueryEscape(s))
}

var queryEscaper = strings.NewReplacer("+", "%20", "%2F", "/")
