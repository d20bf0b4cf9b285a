// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"fmt"
	"strings"
)

// Kind identifies the type of entity a record describes.
type Kind string

const (
	KindDroid    Kind = "droid"
	KindPerson   Kind = "person"
	KindPlanet   Kind = "planet"
	KindSpecies  Kind = "species"
	KindStarship Kind = "starship"
	KindVehicle  Kind = "vehicle"
)

// KnownKinds lists the entity kinds with built in coercion rules.
var KnownKinds = []Kind{KindDroid, KindPerson, KindPlanet, KindSpecies, KindStarship, KindVehicle}

func (k Kind) String() string {
	return string(k)
}

// ParseKind normalises the kind name on input. Any non empty name is valid,
// kinds without built in rules have all their fields passed through.
func ParseKind(s string) (Kind, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	if k == "" {
		return "", fmt.Errorf("%w: empty kind", ErrUnknownKind)
	}
	return Kind(k), nil
}
