// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"fmt"
	"regexp"
	"strings"
)

// YearEra is a calendar year relative to an era marker, such as 19BBY.
type YearEra struct {
	Year int64  `json:"year" mapstructure:"year"`
	Era  string `json:"era" mapstructure:"era"`
}

func (y YearEra) String() string {
	return fmt.Sprintf("%d%s", y.Year, y.Era)
}

var yearEraRegex = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([A-Za-z]+)\s*$`)

// ToYearEra parses values of the form <digits><ERA> ("19BBY", "0ABY",
// "41.9BBY") into a YearEra. Fractional years are truncated and the era is
// upper cased.
func ToYearEra(value any) Result {
	str, ok := value.(string)
	if !ok {
		return unchanged(value)
	}

	matches := yearEraRegex.FindStringSubmatch(str)
	if matches == nil {
		return unchanged(value)
	}

	year := ToInt(matches[1])
	if !year.OK {
		return unchanged(value)
	}

	return converted(YearEra{
		Year: year.Value.(int64),
		Era:  strings.ToUpper(matches[2]),
	})
}
