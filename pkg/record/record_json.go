// SPDX-License-Identifier: Apache-2.0

package record

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/xataio/holocron/internal/json"
)

var errNotAnObject = errors.New("json value is not an object")

// MarshalJSON encodes the record as a JSON object with the keys in record
// order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	out := []byte("{}")
	for _, k := range r.keys {
		raw, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		path, ok := pathForKey(k)
		if !ok {
			if out, err = appendMember(out, k, raw); err != nil {
				return nil, err
			}
			continue
		}
		if out, err = sjson.SetRawBytes(out, path, raw); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UnmarshalJSON decodes a JSON object keeping the document key order. Nested
// objects are decoded as records.
func (r *Record) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return errors.New("invalid json")
	}
	res := gjson.ParseBytes(b)
	if !res.IsObject() {
		return errNotAnObject
	}
	*r = *fromObject(res)
	return nil
}

func fromObject(res gjson.Result) *Record {
	rec := New()
	res.ForEach(func(key, value gjson.Result) bool {
		rec.Set(key.String(), fromResult(value))
		return true
	})
	return rec
}

func fromResult(res gjson.Result) any {
	switch {
	case res.IsObject():
		return fromObject(res)
	case res.IsArray():
		items := res.Array()
		list := make([]any, 0, len(items))
		for _, item := range items {
			list = append(list, fromResult(item))
		}
		return list
	case res.Type == gjson.Null:
		return nil
	default:
		return res.Value()
	}
}

// pathForKey returns the sjson path that addresses the key literally. Keys
// holding query characters, or empty keys, have no such path.
func pathForKey(key string) (string, bool) {
	if key == "" || strings.ContainsAny(key, "|#@*?") {
		return "", false
	}
	var b strings.Builder
	if isIndexLike(key) {
		b.WriteByte(':')
	}
	for i := 0; i < len(key); i++ {
		if key[i] == '\\' || key[i] == '.' {
			b.WriteByte('\\')
		}
		b.WriteByte(key[i])
	}
	return b.String(), true
}

// appendMember appends the key and raw value as the last member of the
// encoded object.
func appendMember(obj []byte, key string, raw []byte) ([]byte, error) {
	encodedKey, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(obj)+len(encodedKey)+len(raw)+2)
	out = append(out, obj[:len(obj)-1]...)
	if len(obj) > 2 {
		out = append(out, ',')
	}
	out = append(out, encodedKey...)
	out = append(out, ':')
	out = append(out, raw...)
	return append(out, '}'), nil
}

func isIndexLike(key string) bool {
	if key == "" || key == "-1" || key[0] == ':' {
		return key != ""
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return false
		}
	}
	return true
}
