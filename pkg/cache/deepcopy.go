// SPDX-License-Identifier: Apache-2.0

package cache

// DeepCopy returns a structurally independent copy of a decoded JSON value.
// Maps and lists are copied recursively, scalars are returned as is.
func DeepCopy(v any) any {
	return deepCopyValue(v)
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		return deepCopySlice(val)
	case []map[string]any:
		if val == nil {
			return val
		}
		dst := make([]map[string]any, len(val))
		for i, m := range val {
			dst[i] = deepCopyMap(m)
		}
		return dst
	case []string:
		if val == nil {
			return val
		}
		return append([]string{}, val...)
	default:
		return v
	}
}

func deepCopyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = deepCopyValue(v)
	}
	return dst
}

func deepCopySlice(src []any) []any {
	if src == nil {
		return nil
	}
	dst := make([]any, len(src))
	for i, v := range src {
		dst[i] = deepCopyValue(v)
	}
	return dst
}
