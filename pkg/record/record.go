// SPDX-License-Identifier: Apache-2.0

// Package record defines the raw and canonical record representations shared
// by the cache and the transformer.
package record

import (
	"github.com/google/go-cmp/cmp"
	"github.com/mitchellh/mapstructure"
)

// Raw is an un-normalised source record, as decoded from an API response, a
// CSV row or a JSON document.
type Raw map[string]any

func (r Raw) Get(key string) (any, bool) {
	v, found := r[key]
	return v, found
}

// Record is a canonical record. Keys keep the order in which they were first
// set, which is the order they are serialised in. Records are not safe for
// concurrent use.
type Record struct {
	keys   []string
	values map[string]any
}

func New() *Record {
	return &Record{
		values: map[string]any{},
	}
}

// Set assigns the value to the key. New keys are appended after the existing
// ones, existing keys keep their position.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = map[string]any{}
	}
	if _, found := r.values[key]; !found {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, found := r.values[key]
	return v, found
}

// Value returns the value for the key, or nil if the key is not set.
func (r *Record) Value(key string) any {
	v, _ := r.Get(key)
	return v
}

func (r *Record) Has(key string) bool {
	_, found := r.Get(key)
	return found
}

// Int returns the value for the key if it holds an integer.
func (r *Record) Int(key string) (int64, bool) {
	switch v := r.Value(key).(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// Str returns the value for the key if it holds a string.
func (r *Record) Str(key string) (string, bool) {
	v, ok := r.Value(key).(string)
	return v, ok
}

func (r *Record) Delete(key string) {
	if !r.Has(key) {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the record keys in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Range calls fn for every key in order until fn returns false.
func (r *Record) Range(fn func(key string, value any) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// Equal reports whether both records hold the same keys with structurally
// equal values. Key order is not taken into account.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.keys) != len(other.keys) {
		return false
	}
	for _, k := range r.keys {
		ov, found := other.values[k]
		if !found || !cmp.Equal(r.values[k], ov) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := &Record{
		keys:   append([]string(nil), r.keys...),
		values: make(map[string]any, len(r.values)),
	}
	for k, v := range r.values {
		clone.values[k] = cloneValue(v)
	}
	return clone
}

// ToMap converts the record, and any nested records, into plain maps.
func (r *Record) ToMap() map[string]any {
	if r == nil {
		return nil
	}
	m := make(map[string]any, len(r.values))
	for k, v := range r.values {
		m[k] = toPlain(v)
	}
	return m
}

// Decode decodes the record into the struct pointed to by out, using the
// mapstructure tags of its fields.
func (r *Record) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(r.ToMap())
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Record:
		return val.Clone()
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = cloneValue(item)
		}
		return m
	case Raw:
		m := make(Raw, len(val))
		for k, item := range val {
			m[k] = cloneValue(item)
		}
		return m
	case []any:
		if val == nil {
			return val
		}
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = cloneValue(item)
		}
		return s
	case []*Record:
		if val == nil {
			return val
		}
		s := make([]*Record, len(val))
		for i, item := range val {
			s[i] = item.Clone()
		}
		return s
	case []string:
		if val == nil {
			return val
		}
		return append([]string{}, val...)
	default:
		return v
	}
}

func toPlain(v any) any {
	switch val := v.(type) {
	case *Record:
		return val.ToMap()
	case []*Record:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = item.ToMap()
		}
		return s
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = toPlain(item)
		}
		return s
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = toPlain(item)
		}
		return m
	case Raw:
		return toPlain(map[string]any(val))
	default:
		return v
	}
}
