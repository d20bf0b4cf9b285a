// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"github.com/xataio/holocron/pkg/coerce"
)

// Typed views of the records produced with the default mapping table. They
// are filled with record.Record.Decode.

type Droid struct {
	URL          string          `mapstructure:"url"`
	Name         *string         `mapstructure:"name"`
	Model        *string         `mapstructure:"model"`
	Manufacturer *string         `mapstructure:"manufacturer"`
	CreateDate   *coerce.YearEra `mapstructure:"create_date"`
	HeightCm     *float64        `mapstructure:"height_cm"`
	MassKg       *float64        `mapstructure:"mass_kg"`
	Equipment    []string        `mapstructure:"equipment"`
	Instructions []string        `mapstructure:"instructions"`
}

type Person struct {
	URL            string          `mapstructure:"url"`
	Name           *string         `mapstructure:"name"`
	BirthDate      *coerce.YearEra `mapstructure:"birth_date"`
	HeightCm       *float64        `mapstructure:"height_cm"`
	MassKg         *float64        `mapstructure:"mass_kg"`
	Homeworld      *Planet         `mapstructure:"homeworld"`
	Species        *Species        `mapstructure:"species"`
	ForceSensitive *string         `mapstructure:"force_sensitive"`
}

type Planet struct {
	URL               string   `mapstructure:"url"`
	Name              *string  `mapstructure:"name"`
	Region            *string  `mapstructure:"region"`
	Sector            *string  `mapstructure:"sector"`
	Suns              *int64   `mapstructure:"suns"`
	Moons             *int64   `mapstructure:"moons"`
	OrbitalPeriodDays *float64 `mapstructure:"orbital_period_days"`
	DiameterKm        *int64   `mapstructure:"diameter_km"`
	GravityStd        *float64 `mapstructure:"gravity_std"`
	Climate           []string `mapstructure:"climate"`
	Terrain           []string `mapstructure:"terrain"`
	Population        *int64   `mapstructure:"population"`
}

type Species struct {
	URL                string   `mapstructure:"url"`
	Name               *string  `mapstructure:"name"`
	Classification     *string  `mapstructure:"classification"`
	Designation        *string  `mapstructure:"designation"`
	AverageLifespanYrs *int64   `mapstructure:"average_lifespan_yrs"`
	AverageHeightCm    *float64 `mapstructure:"average_height_cm"`
	Language           *string  `mapstructure:"language"`
}

type Starship struct {
	URL                     string            `mapstructure:"url"`
	Name                    *string           `mapstructure:"name"`
	Model                   *string           `mapstructure:"model"`
	StarshipClass           *string           `mapstructure:"starship_class"`
	Manufacturer            *string           `mapstructure:"manufacturer"`
	LengthM                 *float64          `mapstructure:"length_m"`
	HyperdriveRating        *float64          `mapstructure:"hyperdrive_rating"`
	MaxMegalightHr          *int64            `mapstructure:"max_megalight_hr"`
	MaxAtmospheringSpeedKph *int64            `mapstructure:"max_atmosphering_speed_kph"`
	CrewSize                *int64            `mapstructure:"crew_size"`
	CrewMembers             map[string]Person `mapstructure:"crew_members"`
	MaxPassengers           *int64            `mapstructure:"max_passengers"`
	PassengersOnBoard       []map[string]any  `mapstructure:"passengers_on_board"`
	CargoCapacityKg         *int64            `mapstructure:"cargo_capacity_kg"`
	Consumables             *string           `mapstructure:"consumables"`
	Armament                []string          `mapstructure:"armament"`
}

type Vehicle struct {
	URL                  string            `mapstructure:"url"`
	Name                 *string           `mapstructure:"name"`
	Model                *string           `mapstructure:"model"`
	VehicleClass         *string           `mapstructure:"vehicle_class"`
	Manufacturer         *string           `mapstructure:"manufacturer"`
	LengthM              *float64          `mapstructure:"length_m"`
	MaxAtmospheringSpeed *int64            `mapstructure:"max_atmosphering_speed"`
	Armament             []string          `mapstructure:"armament"`
	CrewSize             *int64            `mapstructure:"crew_size"`
	CrewMembers          map[string]Person `mapstructure:"crew_members"`
	MaxPassengers        *int64            `mapstructure:"max_passengers"`
	PassengersOnBoard    []map[string]any  `mapstructure:"passengers_on_board"`
	CargoCapacityKg      *int64            `mapstructure:"cargo_capacity_kg"`
	Consumables          *string           `mapstructure:"consumables"`
}
