// SPDX-License-Identifier: Apache-2.0

// Package coerce converts loosely typed source values into typed values. None
// of the conversions fail: when a value cannot be converted it is returned
// unchanged, which lets callers apply them to every field of a record without
// checking the shape of each value first.
package coerce

import (
	"sort"
	"strings"
)

// Result is the outcome of a conversion. When OK is false, Value holds the
// input exactly as it was received.
type Result struct {
	Value any
	OK    bool
}

func converted(v any) Result {
	return Result{Value: v, OK: true}
}

func unchanged(v any) Result {
	return Result{Value: v, OK: false}
}

// NoneSet holds the sentinel strings that represent a missing value. Members
// are stored trimmed and lower cased.
type NoneSet map[string]struct{}

// DefaultNoneValues is the sentinel set used when none is configured.
var DefaultNoneValues = NewNoneSet("", "n/a", "none", "unknown")

func NewNoneSet(values ...string) NoneSet {
	set := make(NoneSet, len(values))
	for _, v := range values {
		set[normaliseNone(v)] = struct{}{}
	}
	return set
}

func (s NoneSet) Contains(v string) bool {
	_, found := s[normaliseNone(v)]
	return found
}

// Values returns the members of the set in lexical order.
func (s NoneSet) Values() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func normaliseNone(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// ToNone returns a nil value if the string input is a member of the none set.
// Any other input, including non string values, is returned unchanged.
func ToNone(value any, noneSet NoneSet) Result {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return unchanged(value)
	}

	if noneSet.Contains(str) {
		return converted(nil)
	}
	return unchanged(value)
}

// ToNoneAll returns a new map where every value has been passed through
// ToNone. The input map is not modified.
func ToNoneAll(data map[string]any, noneSet NoneSet) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = ToNone(v, noneSet).Value
	}
	return out
}
