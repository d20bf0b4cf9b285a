// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"github.com/xataio/holocron/pkg/record"
)

const PlanetsVisitedField = "planets_visited"

// AssignCrew pairs crew positions with personnel in order. Only the first
// crewSize pairs are assigned, and never more than there are positions or
// personnel.
func AssignCrew(crewSize int, positions []string, personnel []*record.Record) *record.Record {
	n := min(crewSize, len(positions), len(personnel))
	crew := record.New()
	for i := 0; i < n; i++ {
		crew.Set(positions[i], personnel[i])
	}
	return crew
}

// BoardPassengers returns the first maxPassengers candidates, or all of them
// when there are fewer. A negative maximum boards nobody. The returned slice
// does not share its backing array with the input.
func BoardPassengers[T any](maxPassengers int, candidates []T) []T {
	n := min(len(candidates), maxPassengers)
	if n < 0 {
		n = 0
	}
	return append(make([]T, 0, n), candidates[:n]...)
}

// VisitPlanet adds the planet to the planets visited by the record, unless an
// equal planet is already listed.
func VisitPlanet(rec *record.Record, planet *record.Record) {
	switch visited := rec.Value(PlanetsVisitedField).(type) {
	case []any:
		// records decoded from JSON
		for _, v := range visited {
			if p, ok := v.(*record.Record); ok && p.Equal(planet) {
				return
			}
		}
		rec.Set(PlanetsVisitedField, append(visited, planet))
	case []*record.Record:
		for _, p := range visited {
			if p.Equal(planet) {
				return
			}
		}
		rec.Set(PlanetsVisitedField, append(visited, planet))
	default:
		rec.Set(PlanetsVisitedField, []*record.Record{planet})
	}
}
