// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"math"
	"strconv"
	"strings"
)

const thousandsSeparator = ","

// ToInt converts the value to an int64. Strings may contain thousands
// separators and a fractional part, which is truncated ("5,000.99" -> 5000).
// Floats are truncated towards zero and booleans map to 1 and 0.
func ToInt(value any) Result {
	switch v := value.(type) {
	case string:
		return stringToInt(value, v)
	case []byte:
		return stringToInt(value, string(v))
	case bool:
		if v {
			return converted(int64(1))
		}
		return converted(int64(0))
	case int:
		return converted(int64(v))
	case int8:
		return converted(int64(v))
	case int16:
		return converted(int64(v))
	case int32:
		return converted(int64(v))
	case int64:
		return converted(v)
	case uint8:
		return converted(int64(v))
	case uint16:
		return converted(int64(v))
	case uint32:
		return converted(int64(v))
	case uint:
		if uint64(v) > math.MaxInt64 {
			return unchanged(value)
		}
		return converted(int64(v))
	case uint64:
		if v > math.MaxInt64 {
			return unchanged(value)
		}
		return converted(int64(v))
	case float32:
		return floatToInt(value, float64(v))
	case float64:
		return floatToInt(value, v)
	default:
		return unchanged(value)
	}
}

// ToFloat converts the value to a float64. Strings may contain thousands
// separators. NaN and infinite results are rejected since they cannot be
// serialised as JSON.
func ToFloat(value any) Result {
	switch v := value.(type) {
	case string:
		return stringToFloat(value, v)
	case []byte:
		return stringToFloat(value, string(v))
	case bool:
		if v {
			return converted(float64(1))
		}
		return converted(float64(0))
	case int:
		return converted(float64(v))
	case int8:
		return converted(float64(v))
	case int16:
		return converted(float64(v))
	case int32:
		return converted(float64(v))
	case int64:
		return converted(float64(v))
	case uint:
		return converted(float64(v))
	case uint8:
		return converted(float64(v))
	case uint16:
		return converted(float64(v))
	case uint32:
		return converted(float64(v))
	case uint64:
		return converted(float64(v))
	case float32:
		return checkedFloat(value, float64(v))
	case float64:
		return checkedFloat(value, v)
	default:
		return unchanged(value)
	}
}

func stringToInt(original any, s string) Result {
	s = cleanNumber(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return converted(i)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return unchanged(original)
	}
	return floatToInt(original, f)
}

func stringToFloat(original any, s string) Result {
	f, err := strconv.ParseFloat(cleanNumber(s), 64)
	if err != nil {
		return unchanged(original)
	}
	return checkedFloat(original, f)
}

func floatToInt(original any, f float64) Result {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return unchanged(original)
	}
	t := math.Trunc(f)
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return unchanged(original)
	}
	return converted(int64(t))
}

func checkedFloat(original any, f float64) Result {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return unchanged(original)
	}
	return converted(f)
}

func cleanNumber(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, thousandsSeparator, ""))
}
