// SPDX-License-Identifier: Apache-2.0

package transform

// Rules maps source field names to the rule applied to them. Fields without a
// rule are none normalised and copied.
type Rules map[string]RuleConfig

func rule(t RuleType) RuleConfig {
	return RuleConfig{Type: t}
}

func listRule(delimiter string) RuleConfig {
	return RuleConfig{Type: RuleList, Parameters: Parameters{"delimiter": delimiter}}
}

// DefaultRules returns the coercion rules for the built in kinds, keyed by
// source field.
func DefaultRules() map[Kind]Rules {
	return map[Kind]Rules{
		KindDroid: {
			"url":          rule(RulePassthrough),
			"create_year":  rule(RuleYearEra),
			"height":       rule(RuleFloat),
			"mass":         rule(RuleFloat),
			"equipment":    listRule("|"),
			"instructions": listRule("|"),
		},
		KindPerson: {
			"url":        rule(RulePassthrough),
			"birth_year": rule(RuleYearEra),
			"height":     rule(RuleFloat),
			"mass":       rule(RuleFloat),
			"homeworld":  rule(RuleHomeworld),
			"species":    rule(RuleSpecies),
		},
		KindPlanet: {
			"url":            rule(RulePassthrough),
			"suns":           rule(RuleInt),
			"moons":          rule(RuleInt),
			"orbital_period": rule(RuleFloat),
			"diameter":       rule(RuleInt),
			"gravity":        rule(RuleGravity),
			"climate":        listRule(", "),
			"terrain":        listRule(", "),
			"population":     rule(RuleInt),
		},
		KindSpecies: {
			"url":              rule(RulePassthrough),
			"average_lifespan": rule(RuleInt),
			"average_height":   rule(RuleFloat),
		},
		KindStarship: {
			"url":                    rule(RulePassthrough),
			"length":                 rule(RuleFloat),
			"hyperdrive_rating":      rule(RuleFloat),
			"MGLT":                   rule(RuleInt),
			"max_atmosphering_speed": rule(RuleInt),
			"crew":                   rule(RuleInt),
			"passengers":             rule(RuleInt),
			"cargo_capacity":         rule(RuleInt),
			"armament":               listRule(","),
		},
		KindVehicle: {
			"url":                    rule(RulePassthrough),
			"length":                 rule(RuleFloat),
			"max_atmosphering_speed": rule(RuleInt),
			"crew":                   rule(RuleInt),
			"passengers":             rule(RuleInt),
			"cargo_capacity":         rule(RuleInt),
			"armament":               listRule(","),
		},
	}
}
