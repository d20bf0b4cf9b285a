// SPDX-License-Identifier: Apache-2.0

package record

import (
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Getter is implemented by both Raw and *Record.
type Getter interface {
	Get(key string) (any, bool)
}

// Lookup returns the first item whose field matches value. Strings are
// compared case insensitively, numbers by value and anything else
// structurally. Items missing the field never match, and a nil value matches
// nothing.
func Lookup[T Getter](items []T, field string, value any) (T, bool) {
	var zero T
	if value == nil {
		return zero, false
	}
	for _, item := range items {
		if any(item) == nil {
			continue
		}
		v, found := item.Get(field)
		if !found {
			continue
		}
		if Matches(v, value) {
			return item, true
		}
	}
	return zero, false
}

// Matches reports whether the candidate value matches the filter value.
func Matches(candidate, filter any) bool {
	if candidate == nil || filter == nil {
		return false
	}

	cs, cIsString := candidate.(string)
	fs, fIsString := filter.(string)
	switch {
	case cIsString && fIsString:
		return strings.EqualFold(cs, fs)
	case cIsString || fIsString:
		return false
	}

	if cf, ok := asFloat(candidate); ok {
		ff, ok := asFloat(filter)
		return ok && cf == ff
	}
	return cmp.Equal(candidate, filter)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
