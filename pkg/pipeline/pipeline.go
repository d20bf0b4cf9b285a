// SPDX-License-Identifier: Apache-2.0

// Package pipeline wires the resource cache and the record transformer into a
// batch session: open, transform and fetch, then close.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/rs/xid"

	"github.com/xataio/holocron/internal/progress"
	"github.com/xataio/holocron/pkg/cache"
	"github.com/xataio/holocron/pkg/coerce"
	"github.com/xataio/holocron/pkg/dataset"
	loglib "github.com/xataio/holocron/pkg/log"
	"github.com/xataio/holocron/pkg/record"
	"github.com/xataio/holocron/pkg/transform"
)

// Pipeline is a batch session. It is not concurrency safe.
type Pipeline struct {
	logger      loglib.Logger
	runID       string
	store       cache.Store
	fetcher     cache.Fetcher
	cache       *cache.ResourceCache
	table       *transform.MappingTable
	transformer *transform.Transformer
	supplements map[transform.Kind][]record.Raw
	newBar      progress.NewBarFn
}

type Option func(*Pipeline)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNoResource     = errors.New("resource holds no record")
)

// resultsField holds the matches of a search request.
const resultsField = "results"

// New opens the cache store, loads the supplementary datasets and builds the
// transformer. A missing or malformed mapping table is an error.
func New(ctx context.Context, cfg *Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}

	p := &Pipeline{
		logger:      loglib.NewNoopLogger(),
		runID:       xid.New().String(),
		supplements: map[transform.Kind][]record.Raw{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithFields(loglib.Fields{loglib.RunIDField: p.runID})

	table, err := mappingTable(cfg.MappingFile)
	if err != nil {
		return nil, err
	}
	p.table = table

	for kind, path := range cfg.Supplements {
		records, err := dataset.ReadRecords(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s supplements: %w", kind, err)
		}
		p.supplements[kind] = records
		p.logger.Debug("supplementary dataset loaded", loglib.Fields{
			loglib.KindField: kind.String(),
			"path":           path,
			"records":        len(records),
		})
	}

	if p.store == nil {
		if p.store, err = newStore(ctx, &cfg.Cache); err != nil {
			return nil, err
		}
	}
	if p.fetcher == nil {
		p.fetcher = cache.NewHTTPFetcher()
	}
	p.cache = cache.New(ctx, p.store, p.fetcher,
		cache.WithLogger(p.logger),
		cache.WithTimeout(cfg.fetchTimeout()))

	policy, _ := transform.ParseReferencePolicy(string(cfg.ReferencePolicy))
	transformerOpts := []transform.Option{
		transform.WithLogger(p.logger),
		transform.WithResourceCache(p.cache),
		transform.WithReferencePolicy(policy),
	}
	if len(cfg.NoneValues) > 0 {
		transformerOpts = append(transformerOpts, transform.WithNoneValues(coerce.NewNoneSet(cfg.NoneValues...)))
	}
	for kind, records := range p.supplements {
		transformerOpts = append(transformerOpts, transform.WithSupplements(kind, records))
	}
	defaultRules := transform.DefaultRules()
	for kind, rules := range cfg.Rules {
		merged := transform.Rules{}
		maps.Copy(merged, defaultRules[kind])
		maps.Copy(merged, rules)
		transformerOpts = append(transformerOpts, transform.WithRules(kind, merged))
	}

	if p.transformer, err = transform.New(table, transformerOpts...); err != nil {
		_ = p.store.Close()
		return nil, fmt.Errorf("building transformer: %w", err)
	}

	p.logger.Info("pipeline ready", loglib.Fields{
		"kinds":         table.Kinds(),
		"cache_entries": p.cache.Stats().Size,
	})

	return p, nil
}

func WithLogger(l loglib.Logger) Option {
	return func(p *Pipeline) {
		p.logger = loglib.NewLogger(l).WithFields(loglib.Fields{
			loglib.ModuleField: "pipeline",
		})
	}
}

// WithStore overrides the cache store built from the configuration.
func WithStore(s cache.Store) Option {
	return func(p *Pipeline) {
		p.store = s
	}
}

// WithProgressBar reports the progress of file transformations.
func WithProgressBar(fn progress.NewBarFn) Option {
	return func(p *Pipeline) {
		p.newBar = fn
	}
}

// WithFetcher overrides the http fetcher.
func WithFetcher(f cache.Fetcher) Option {
	return func(p *Pipeline) {
		p.fetcher = f
	}
}

func mappingTable(path string) (*transform.MappingTable, error) {
	if path == "" {
		return transform.DefaultMappingTable(), nil
	}
	table, err := transform.LoadMappingTable(path)
	if err != nil {
		return nil, fmt.Errorf("loading mapping table: %w", err)
	}
	return table, nil
}

func newStore(ctx context.Context, cfg *CacheConfig) (cache.Store, error) {
	switch cfg.storeType() {
	case RedisStore:
		return cache.NewRedisStore(ctx, cfg.RedisURL, cfg.RedisKey)
	case MemoryStore:
		return cache.NewMemoryStore(nil), nil
	default:
		return cache.NewFileStore(cfg.path()), nil
	}
}

// RunID identifies the session in the logs.
func (p *Pipeline) RunID() string {
	return p.runID
}

func (p *Pipeline) Cache() *cache.ResourceCache {
	return p.cache
}

func (p *Pipeline) MappingTable() *transform.MappingTable {
	return p.table
}

func (p *Pipeline) Transformer() *transform.Transformer {
	return p.transformer
}

// TransformFile transforms the records of the input file. When name is not
// empty only the record with that name is transformed. Each record is merged
// with its auxiliary record first.
func (p *Pipeline) TransformFile(ctx context.Context, kind transform.Kind, input, name string) ([]*record.Record, error) {
	raws, err := dataset.ReadRecords(input)
	if err != nil {
		return nil, err
	}

	if name != "" {
		raw, found := record.Lookup(raws, transform.NameField, name)
		if !found {
			return nil, fmt.Errorf("%w: %s in %s", ErrRecordNotFound, name, input)
		}
		raws = []record.Raw{raw}
	}

	var bar progress.Bar
	if p.newBar != nil {
		bar = p.newBar(len(raws), fmt.Sprintf("transforming %s records", kind))
		defer bar.Close()
	}

	records := make([]*record.Record, 0, len(raws))
	for _, raw := range raws {
		rec, err := p.transform(ctx, kind, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		if bar != nil {
			if err := bar.Add(1); err != nil {
				p.logger.Warn(err, "updating progress bar")
			}
		}
	}

	p.logger.Info("file transformed", loglib.Fields{
		loglib.KindField: kind.String(),
		"input":          input,
		"records":        len(records),
	})
	return records, nil
}

// TransformResource fetches the resource and transforms it. Search responses
// are reduced to their first result.
func (p *Pipeline) TransformResource(ctx context.Context, kind transform.Kind, url string, params cache.Params) (*record.Record, error) {
	resource, err := p.Fetch(ctx, url, params)
	if err != nil {
		return nil, err
	}

	raw, ok := resource.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoResource, url)
	}
	if results, isSearch := raw[resultsField].([]any); isSearch {
		if len(results) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, cache.Key(url, params))
		}
		if raw, ok = results[0].(map[string]any); !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoResource, url)
		}
	}

	return p.transform(ctx, kind, raw)
}

func (p *Pipeline) transform(ctx context.Context, kind transform.Kind, raw record.Raw) (*record.Record, error) {
	merged := transform.MergeSupplement(raw, p.supplements[kind])
	return p.transformer.Transform(ctx, kind, merged)
}

// Fetch returns the resource through the cache.
func (p *Pipeline) Fetch(ctx context.Context, url string, params cache.Params) (any, error) {
	return p.cache.Get(ctx, url, params)
}

// Close flushes the cache and closes its store.
func (p *Pipeline) Close(ctx context.Context) error {
	flushErr := p.cache.Flush(ctx)
	closeErr := p.cache.Close()
	stats := p.cache.Stats()
	p.logger.Info("pipeline closed", loglib.Fields{
		"cache_hits":     stats.Hits,
		"cache_misses":   stats.Misses,
		"cache_entries":  stats.Size,
		"cache_hit_rate": stats.HitRate(),
	})
	return errors.Join(flushErr, closeErr)
}
