// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"fmt"

	"github.com/xataio/holocron/pkg/coerce"
)

// Builder creates field transformers from their rule configuration.
type Builder struct {
	resolver Resolver
}

func NewBuilder(resolver Resolver) *Builder {
	return &Builder{resolver: resolver}
}

var rulesMap = map[RuleType]struct {
	parameters []string
	buildFn    func(b *Builder, params Parameters) (FieldTransformer, error)
}{
	RuleNone: {
		buildFn: func(_ *Builder, _ Parameters) (FieldTransformer, error) {
			return &copyTransformer{}, nil
		},
	},
	RulePassthrough: {
		buildFn: func(_ *Builder, _ Parameters) (FieldTransformer, error) {
			return &copyTransformer{}, nil
		},
	},
	RuleInt: {
		buildFn: func(_ *Builder, _ Parameters) (FieldTransformer, error) {
			return &coercionTransformer{convert: coerce.ToInt}, nil
		},
	},
	RuleFloat: {
		buildFn: func(_ *Builder, _ Parameters) (FieldTransformer, error) {
			return &coercionTransformer{convert: coerce.ToFloat}, nil
		},
	},
	RuleGravity: {
		buildFn: func(_ *Builder, _ Parameters) (FieldTransformer, error) {
			return &coercionTransformer{convert: coerce.ToGravity}, nil
		},
	},
	RuleYearEra: {
		buildFn: func(_ *Builder, _ Parameters) (FieldTransformer, error) {
			return &coercionTransformer{convert: coerce.ToYearEra}, nil
		},
	},
	RuleList: {
		parameters: []string{"delimiter"},
		buildFn: func(_ *Builder, params Parameters) (FieldTransformer, error) {
			return newListTransformer(params)
		},
	},
	RuleHomeworld: {
		parameters: []string{"kind"},
		buildFn: func(b *Builder, params Parameters) (FieldTransformer, error) {
			return newReferenceTransformer(b.resolver, KindPlanet, false, params)
		},
	},
	RuleSpecies: {
		parameters: []string{"kind"},
		buildFn: func(b *Builder, params Parameters) (FieldTransformer, error) {
			return newReferenceTransformer(b.resolver, KindSpecies, true, params)
		},
	},
}

// New validates the rule parameters and returns its field transformer.
func (b *Builder) New(cfg RuleConfig) (FieldTransformer, error) {
	rule, found := rulesMap[cfg.Type]
	if !found {
		return nil, fmt.Errorf("%w: unexpected rule type '%s'", ErrUnsupportedRule, cfg.Type)
	}

	if err := ValidateParameters(cfg.Parameters, rule.parameters); err != nil {
		return nil, err
	}

	return rule.buildFn(b, cfg.Parameters)
}
