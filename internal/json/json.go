// SPDX-License-Identifier: Apache-2.0

package json

import (
	json "github.com/bytedance/sonic"
)

const indent = "  "

// sorted encodes map keys in lexical order so that documents written to disk
// are stable between runs.
var sorted = json.Config{SortMapKeys: true}.Froze()

func Unmarshal(b []byte, v any) error {
	return json.Unmarshal(b, v)
}

func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent encodes v with a two space indentation and sorted map keys.
// Non-ASCII text is written as is.
func MarshalIndent(v any) ([]byte, error) {
	b, err := sorted.MarshalIndent(v, "", indent)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
