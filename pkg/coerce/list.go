// SPDX-License-Identifier: Apache-2.0

package coerce

import "strings"

// ToList splits a string into a list of strings. Leading and trailing
// whitespace is removed first; the string is then split on delimiter or, when
// delimiter is empty, on runs of whitespace. Non string values, lists
// included, are returned unchanged.
func ToList(value any, delimiter string) Result {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return unchanged(value)
	}

	str = strings.TrimSpace(str)
	if delimiter == "" {
		return converted(strings.Fields(str))
	}
	return converted(strings.Split(str, delimiter))
}
