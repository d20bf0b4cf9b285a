// SPDX-License-Identifier: Apache-2.0

package coerce

import "strings"

const gravityUnit = "standard"

// ToGravity parses planetary gravity values such as "1 standard",
// "5STANDARD" or "0.98" into a float64. Values that cannot be parsed are
// passed through ToNone with the default none set, so "N/A" becomes nil.
func ToGravity(value any) Result {
	str, ok := value.(string)
	if !ok {
		res := ToFloat(value)
		if res.OK {
			return res
		}
		return ToNone(value, DefaultNoneValues)
	}

	cleaned := strings.ToLower(str)
	if strings.Contains(cleaned, gravityUnit) {
		cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, gravityUnit, ""))
	}

	if res := ToFloat(cleaned); res.OK {
		return res
	}
	return ToNone(value, DefaultNoneValues)
}
