// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/xataio/holocron/pkg/cache"
	"github.com/xataio/holocron/pkg/coerce"
)

// FieldTransformer converts the value of a single field.
type FieldTransformer interface {
	Transform(ctx context.Context, value any) (any, error)
}

// RuleType names a field transformer.
type RuleType string

const (
	RuleNone        RuleType = "none"
	RuleInt         RuleType = "int"
	RuleFloat       RuleType = "float"
	RuleList        RuleType = "list"
	RuleGravity     RuleType = "gravity"
	RuleYearEra     RuleType = "year_era"
	RuleHomeworld   RuleType = "homeworld"
	RuleSpecies     RuleType = "species"
	RulePassthrough RuleType = "passthrough"
)

type Parameters map[string]any

// RuleConfig selects the field transformer for a field.
type RuleConfig struct {
	Type       RuleType   `mapstructure:"type" yaml:"type"`
	Parameters Parameters `mapstructure:"parameters" yaml:"parameters"`
}

var (
	ErrUnsupportedRule  = errors.New("unsupported rule")
	ErrInvalidParameter = errors.New("invalid rule parameters")
	ErrUnknownParameter = errors.New("unknown rule parameter")
	ErrMissingResolver  = errors.New("reference rule requires a resource cache")
)

// FindParameter returns the typed value of the named parameter, if present.
func FindParameter[T any](params Parameters, name string) (T, bool, error) {
	valAny, found := params[name]
	if !found {
		return *new(T), false, nil
	}

	val, ok := valAny.(T)
	if !ok {
		return *new(T), true, fmt.Errorf("%w: %s", ErrInvalidParameter, name)
	}

	return val, true, nil
}

// ValidateParameters checks all the parameters on input are supported.
func ValidateParameters(params Parameters, supported []string) error {
	for name := range params {
		if !slices.Contains(supported, name) {
			return fmt.Errorf("%w: %s", ErrUnknownParameter, name)
		}
	}
	return nil
}

// coercionTransformer wraps a conversion that never fails.
type coercionTransformer struct {
	convert func(any) coerce.Result
}

func (t *coercionTransformer) Transform(_ context.Context, value any) (any, error) {
	return t.convert(value).Value, nil
}

// copyTransformer returns the value as is. Maps and lists are copied so the
// output never shares state with the source record.
type copyTransformer struct{}

func (t *copyTransformer) Transform(_ context.Context, value any) (any, error) {
	return cache.DeepCopy(value), nil
}

func newListTransformer(params Parameters) (*coercionTransformer, error) {
	delimiter, _, err := FindParameter[string](params, "delimiter")
	if err != nil {
		return nil, fmt.Errorf("list rule: delimiter must be a string: %w", err)
	}
	return &coercionTransformer{
		convert: func(v any) coerce.Result {
			return coerce.ToList(v, delimiter)
		},
	}, nil
}

// Resolver transforms the resource a reference field points to.
type Resolver interface {
	Resolve(ctx context.Context, kind Kind, ref string) (any, error)
}

// referenceTransformer replaces a reference with the transformed resource it
// points to. When first is set the value may be a list of references and only
// the first one is followed.
type referenceTransformer struct {
	resolver Resolver
	kind     Kind
	first    bool
}

func newReferenceTransformer(resolver Resolver, kind Kind, first bool, params Parameters) (*referenceTransformer, error) {
	if resolver == nil {
		return nil, ErrMissingResolver
	}
	if k, found, err := FindParameter[string](params, "kind"); err != nil {
		return nil, fmt.Errorf("reference rule: kind must be a string: %w", err)
	} else if found {
		if kind, err = ParseKind(k); err != nil {
			return nil, err
		}
	}
	return &referenceTransformer{
		resolver: resolver,
		kind:     kind,
		first:    first,
	}, nil
}

func (t *referenceTransformer) Transform(ctx context.Context, value any) (any, error) {
	ref, ok := t.reference(value)
	if !ok {
		return nil, nil
	}
	return t.resolver.Resolve(ctx, t.kind, ref)
}

func (t *referenceTransformer) reference(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case []any:
		if !t.first || len(v) == 0 {
			return "", false
		}
		ref, ok := v[0].(string)
		return ref, ok && ref != ""
	case []string:
		if !t.first || len(v) == 0 {
			return "", false
		}
		return v[0], v[0] != ""
	default:
		return "", false
	}
}
