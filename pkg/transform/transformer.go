// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"context"
	"errors"
	"fmt"

	"github.com/xataio/holocron/pkg/cache"
	"github.com/xataio/holocron/pkg/coerce"
	loglib "github.com/xataio/holocron/pkg/log"
	"github.com/xataio/holocron/pkg/record"
)

// ResourceCache returns remote resources by url.
type ResourceCache interface {
	Get(ctx context.Context, url string, params cache.Params) (any, error)
}

// ReferencePolicy decides what happens when a referenced resource cannot be
// retrieved.
type ReferencePolicy string

const (
	// ReferenceStrict fails the transformation of the record.
	ReferenceStrict ReferencePolicy = "strict"
	// ReferenceLenient logs the failure and sets the field to nil.
	ReferenceLenient ReferencePolicy = "lenient"
)

func ParseReferencePolicy(s string) (ReferencePolicy, error) {
	switch p := ReferencePolicy(s); p {
	case "":
		return ReferenceStrict, nil
	case ReferenceStrict, ReferenceLenient:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedReferencePolicy, s)
	}
}

// Transformer converts raw records into canonical records following the
// mapping table and the per kind rules. The plans for every kind are compiled
// when the transformer is created. It is not concurrency safe.
type Transformer struct {
	table       *MappingTable
	rules       map[Kind]Rules
	plans       map[Kind][]step
	noneValues  coerce.NoneSet
	resources   ResourceCache
	supplements map[Kind][]record.Raw
	policy      ReferencePolicy
	logger      loglib.Logger
}

type step struct {
	source      string
	target      string
	normalise   bool
	transformer FieldTransformer
}

type Option func(*Transformer)

var (
	ErrUnknownKind       = errors.New("unknown kind")
	ErrResolvingResource = errors.New("resolving referenced resource")

	ErrUnsupportedReferencePolicy = errors.New("unsupported reference policy")
)

// New compiles the mapping table on input. The default rules apply unless
// replaced with WithRules.
func New(table *MappingTable, opts ...Option) (*Transformer, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", ErrInvalidMappingTable)
	}

	t := &Transformer{
		table:       table,
		rules:       DefaultRules(),
		noneValues:  coerce.DefaultNoneValues,
		supplements: map[Kind][]record.Raw{},
		policy:      ReferenceStrict,
		logger:      loglib.NewNoopLogger(),
	}

	for _, opt := range opts {
		opt(t)
	}
	if t.policy == "" {
		t.policy = ReferenceStrict
	}

	if err := t.compile(); err != nil {
		return nil, err
	}

	return t, nil
}

func WithLogger(l loglib.Logger) Option {
	return func(t *Transformer) {
		t.logger = loglib.NewLogger(l).WithFields(loglib.Fields{
			loglib.ModuleField: "record_transformer",
		})
	}
}

func WithNoneValues(set coerce.NoneSet) Option {
	return func(t *Transformer) {
		t.noneValues = set
	}
}

// WithResourceCache sets the cache used to resolve reference fields. It is
// required when the rules contain reference rules.
func WithResourceCache(c ResourceCache) Option {
	return func(t *Transformer) {
		t.resources = c
	}
}

// WithSupplements registers auxiliary records for a kind. Resolved resources
// of that kind are enriched with the auxiliary record sharing their name.
func WithSupplements(kind Kind, records []record.Raw) Option {
	return func(t *Transformer) {
		t.supplements[kind] = records
	}
}

func WithReferencePolicy(p ReferencePolicy) Option {
	return func(t *Transformer) {
		t.policy = p
	}
}

// WithRules replaces the rules of the kind.
func WithRules(kind Kind, rules Rules) Option {
	return func(t *Transformer) {
		t.rules[kind] = rules
	}
}

func (t *Transformer) compile() error {
	var resolver Resolver
	if t.resources != nil {
		resolver = t
	}
	builder := NewBuilder(resolver)

	t.plans = make(map[Kind][]step, len(t.table.kinds))
	for _, kind := range t.table.Kinds() {
		mappings, _ := t.table.Mappings(kind)
		plan := make([]step, 0, len(mappings))
		for _, m := range mappings {
			cfg, found := t.rules[kind][m.Source]
			if !found {
				cfg = RuleConfig{Type: RuleNone}
			}
			ft, err := builder.New(cfg)
			if err != nil {
				return fmt.Errorf("building rule for %s.%s: %w", kind, m.Source, err)
			}
			plan = append(plan, step{
				source:      m.Source,
				target:      m.Target,
				normalise:   cfg.Type != RulePassthrough,
				transformer: ft,
			})
		}
		t.plans[kind] = plan
	}
	return nil
}

// Kinds returns the kinds the transformer can process.
func (t *Transformer) Kinds() []Kind {
	return t.table.Kinds()
}

// Transform returns a new canonical record for the raw record on input. The
// output holds exactly the target fields of the kind, in mapping order.
// Fields missing from the raw record are set to nil.
func (t *Transformer) Transform(ctx context.Context, kind Kind, raw record.Raw) (*record.Record, error) {
	plan, found := t.plans[kind]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	out := record.New()
	for _, s := range plan {
		value, _ := raw.Get(s.source)
		if s.normalise {
			value = coerce.ToNone(value, t.noneValues).Value
		}
		v, err := s.transformer.Transform(ctx, value)
		if err != nil {
			return nil, fmt.Errorf("transforming %s.%s: %w", kind, s.source, err)
		}
		out.Set(s.target, v)
	}

	return out, nil
}

// TransformAll transforms every raw record on input, stopping at the first
// failure.
func (t *Transformer) TransformAll(ctx context.Context, kind Kind, raws []record.Raw) ([]*record.Record, error) {
	out := make([]*record.Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := t.Transform(ctx, kind, raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Resolve fetches the resource at ref and transforms it as the kind on input.
// Missing resources, and resources that are not objects, resolve to nil.
func (t *Transformer) Resolve(ctx context.Context, kind Kind, ref string) (any, error) {
	resource, err := t.resources.Get(ctx, ref, nil)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			t.logger.Debug("referenced resource not found", loglib.Fields{
				loglib.KindField: kind.String(),
				loglib.URLField:  ref,
			})
			return nil, nil
		}
		if t.policy == ReferenceLenient {
			t.logger.Warn(err, "resolving referenced resource", loglib.Fields{
				loglib.KindField: kind.String(),
				loglib.URLField:  ref,
			})
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrResolvingResource, ref, err)
	}

	raw, ok := resource.(map[string]any)
	if !ok {
		t.logger.Debug("referenced resource is not an object", loglib.Fields{
			loglib.KindField: kind.String(),
			loglib.URLField:  ref,
		})
		return nil, nil
	}

	merged := MergeSupplement(raw, t.supplements[kind])
	rec, err := t.Transform(ctx, kind, merged)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
