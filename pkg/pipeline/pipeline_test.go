// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/xataio/holocron/internal/progress"
	progressmocks "github.com/xataio/holocron/internal/progress/mocks"
	"github.com/xataio/holocron/pkg/cache"
	cachemocks "github.com/xataio/holocron/pkg/cache/mocks"
	"github.com/xataio/holocron/pkg/coerce"
	"github.com/xataio/holocron/pkg/transform"
)

var errTest = errors.New("oh noes")

const (
	swapiPeople  = "https://swapi.py4e.com/api/people/"
	tatooineURL  = "https://swapi.py4e.com/api/planets/1/"
	droidSpecies = "https://swapi.py4e.com/api/species/2/"
)

func swapiFetcher() *cachemocks.Fetcher {
	return &cachemocks.Fetcher{
		FetchFn: func(_ context.Context, url string, params cache.Params, _ time.Duration) (any, error) {
			switch {
			case url == swapiPeople && params["search"] == "r2-d2":
				return map[string]any{
					"count": float64(1),
					"results": []any{map[string]any{
						"name":       "R2-D2",
						"height":     "96",
						"mass":       "32",
						"birth_year": "33BBY",
						"homeworld":  "https://swapi.py4e.com/api/planets/8/",
						"url":        "https://swapi.py4e.com/api/people/3/",
					}},
				}, nil
			case url == swapiPeople:
				return map[string]any{"count": float64(0), "results": []any{}}, nil
			case url == tatooineURL:
				return map[string]any{"name": "Tatooine", "diameter": "10465", "url": tatooineURL}, nil
			default:
				return nil, fmt.Errorf("%s: %w", url, cache.ErrNotFound)
			}
		},
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	malformed := writeFile(t, dir, "malformed.json", `{"planet":`)
	duplicated := writeFile(t, dir, "duplicated.yaml", "planet:\n  name: name\n  title: name\n")
	valid := writeFile(t, dir, "keys.json", `{"planet":{"name":"name"}}`)

	tests := []struct {
		name string
		cfg  *Config

		wantErr error
	}{
		{
			name: "ok - default mapping table",
			cfg:  &Config{},
		},
		{
			name: "ok - mapping file",
			cfg:  &Config{MappingFile: valid, NoneValues: []string{"n/a"}},
		},
		{
			name:    "error - missing mapping file",
			cfg:     &Config{MappingFile: filepath.Join(dir, "missing.json")},
			wantErr: os.ErrNotExist,
		},
		{
			name:    "error - malformed mapping file",
			cfg:     &Config{MappingFile: malformed},
			wantErr: transform.ErrInvalidMappingTable,
		},
		{
			name:    "error - duplicated target",
			cfg:     &Config{MappingFile: duplicated},
			wantErr: transform.ErrDuplicateTarget,
		},
		{
			name:    "error - missing supplement",
			cfg:     &Config{Supplements: map[transform.Kind]string{transform.KindPlanet: filepath.Join(dir, "missing.json")}},
			wantErr: os.ErrNotExist,
		},
		{
			name: "ok - rule override",
			cfg: &Config{Rules: map[transform.Kind]transform.Rules{
				transform.KindPlanet: {"diameter": {Type: transform.RuleFloat}},
			}},
		},
		{
			name: "error - unsupported rule override",
			cfg: &Config{Rules: map[transform.Kind]transform.Rules{
				transform.KindPlanet: {"diameter": {Type: "hyperdrive"}},
			}},
			wantErr: transform.ErrUnsupportedRule,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p, err := New(context.Background(), tc.cfg,
				WithStore(cache.NewMemoryStore(nil)),
				WithFetcher(swapiFetcher()))
			require.ErrorIs(t, err, tc.wantErr)
			if tc.wantErr == nil {
				require.NotEmpty(t, p.RunID())
				require.NoError(t, p.Close(context.Background()))
			}
		})
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config

		wantErr bool
	}{
		{name: "ok - defaults", cfg: Config{}},
		{name: "ok - redis", cfg: Config{Cache: CacheConfig{Store: RedisStore, RedisURL: "redis://localhost:6379"}}},
		{name: "ok - lenient", cfg: Config{ReferencePolicy: transform.ReferenceLenient}},
		{name: "error - redis without url", cfg: Config{Cache: CacheConfig{Store: RedisStore}}, wantErr: true},
		{name: "error - unknown store", cfg: Config{Cache: CacheConfig{Store: "holonet"}}, wantErr: true},
		{name: "error - unknown policy", cfg: Config{ReferencePolicy: "relaxed"}, wantErr: true},
		{name: "error - negative timeout", cfg: Config{FetchTimeout: -time.Second}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.cfg.IsValid()
			require.Equal(t, tc.wantErr, err != nil, "err: %v", err)
		})
	}
}

func TestPipeline_TransformFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	planets := writeFile(t, dir, "planets.json", `[
		{"name": "Hoth", "diameter": "7,200", "climate": "frozen", "gravity": "1.1 standard"},
		{"name": "Tatooine", "diameter": "10465", "climate": "arid", "gravity": "1 standard"}
	]`)
	wookiee := writeFile(t, dir, "wookiee_planets.csv", "name,region,suns\ntatooine,Outer Rim Territories,2\n")

	ctx := context.Background()
	p, err := New(ctx, &Config{
		Supplements: map[transform.Kind]string{transform.KindPlanet: wookiee},
	}, WithStore(cache.NewMemoryStore(nil)), WithFetcher(swapiFetcher()))
	require.NoError(t, err)
	defer p.Close(ctx)

	all, err := p.TransformFile(ctx, transform.KindPlanet, planets, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, int64(7200), all[0].Value("diameter_km"))
	require.Equal(t, 1.1, all[0].Value("gravity_std"))
	require.Nil(t, all[0].Value("region"))

	tatooine, err := p.TransformFile(ctx, transform.KindPlanet, planets, "TATOOINE")
	require.NoError(t, err)
	require.Len(t, tatooine, 1)
	require.Equal(t, "Outer Rim Territories", tatooine[0].Value("region"))
	require.Equal(t, int64(2), tatooine[0].Value("suns"))
	require.Equal(t, []string{"arid"}, tatooine[0].Value("climate"))

	_, err = p.TransformFile(ctx, transform.KindPlanet, planets, "Alderaan")
	require.ErrorIs(t, err, ErrRecordNotFound)

	_, err = p.TransformFile(ctx, transform.KindPlanet, filepath.Join(dir, "missing.json"), "")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestPipeline_TransformFile_progress(t *testing.T) {
	t.Parallel()

	planets := writeFile(t, t.TempDir(), "planets.csv", "name,diameter\nHoth,7200\nTatooine,10465\nDagobah,8900\n")

	bar := &progressmocks.Bar{}
	var gotTotal int
	ctx := context.Background()
	p, err := New(ctx, &Config{},
		WithStore(cache.NewMemoryStore(nil)),
		WithFetcher(swapiFetcher()),
		WithProgressBar(func(total int, _ string) progress.Bar {
			gotTotal = total
			return bar
		}))
	require.NoError(t, err)
	defer p.Close(ctx)

	records, err := p.TransformFile(ctx, transform.KindPlanet, planets, "")
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, 3, gotTotal)
	require.Equal(t, uint64(3), bar.GetAddCalls())
}

func TestPipeline_TransformFile_ruleOverride(t *testing.T) {
	t.Parallel()

	planets := writeFile(t, t.TempDir(), "planets.csv", "name,diameter,suns\nHoth,\"7,200.5\",1\n")

	ctx := context.Background()
	p, err := New(ctx, &Config{
		Rules: map[transform.Kind]transform.Rules{
			transform.KindPlanet: {"diameter": {Type: transform.RuleFloat}},
		},
	}, WithStore(cache.NewMemoryStore(nil)), WithFetcher(swapiFetcher()))
	require.NoError(t, err)
	defer p.Close(ctx)

	records, err := p.TransformFile(ctx, transform.KindPlanet, planets, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 7200.5, records[0].Value("diameter_km"))
	// the rules of the other fields are kept
	require.Equal(t, int64(1), records[0].Value("suns"))
}

func TestPipeline_TransformResource(t *testing.T) {
	t.Parallel()

	wookieeDroids := writeFile(t, t.TempDir(), "wookiee_droids.json",
		`[{"name":"R2-D2","create_year":"33BBY","equipment":"Buzz saw|Fire extinguisher"}]`)

	ctx := context.Background()
	fetcher := swapiFetcher()
	store := cache.NewMemoryStore(nil)
	p, err := New(ctx, &Config{
		Supplements: map[transform.Kind]string{transform.KindDroid: wookieeDroids},
	}, WithStore(store), WithFetcher(fetcher))
	require.NoError(t, err)

	r2d2, err := p.TransformResource(ctx, transform.KindDroid, swapiPeople, cache.Params{"search": "r2-d2"})
	require.NoError(t, err)
	require.Equal(t, "R2-D2", r2d2.Value("name"))
	require.Equal(t, 96.0, r2d2.Value("height_cm"))
	require.Equal(t, coerce.YearEra{Year: 33, Era: "BBY"}, r2d2.Value("create_date"))
	require.Equal(t, []string{"Buzz saw", "Fire extinguisher"}, r2d2.Value("equipment"))

	// second lookup is served from the cache
	_, err = p.TransformResource(ctx, transform.KindDroid, swapiPeople, cache.Params{"search": "R2-D2"})
	require.NoError(t, err)
	require.Equal(t, uint64(1), fetcher.GetFetchCalls())

	tatooine, err := p.TransformResource(ctx, transform.KindPlanet, tatooineURL, nil)
	require.NoError(t, err)
	require.Equal(t, int64(10465), tatooine.Value("diameter_km"))

	_, err = p.TransformResource(ctx, transform.KindPerson, swapiPeople, cache.Params{"search": "Jar Jar"})
	require.ErrorIs(t, err, ErrRecordNotFound)

	_, err = p.TransformResource(ctx, transform.KindPlanet, "https://swapi.py4e.com/api/planets/404/", nil)
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, p.Close(ctx))
	entries, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestPipeline_Person(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fetcher := swapiFetcher()
	p, err := New(ctx, &Config{}, WithStore(cache.NewMemoryStore(nil)), WithFetcher(fetcher))
	require.NoError(t, err)
	defer p.Close(ctx)

	dir := t.TempDir()
	people := writeFile(t, dir, "people.json", fmt.Sprintf(`[{"name":"Shmi Skywalker","homeworld":%q,"species":[%q]}]`, tatooineURL, droidSpecies))

	records, err := p.TransformFile(ctx, transform.KindPerson, people, "")
	require.NoError(t, err)
	require.Len(t, records, 1)

	var person transform.Person
	require.NoError(t, records[0].Decode(&person))
	require.NotNil(t, person.Homeworld)
	require.Equal(t, tatooineURL, person.Homeworld.URL)
	// species 404 resolves to nil
	require.Nil(t, person.Species)
}

func TestPipeline_Close(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &cachemocks.Store{
		LoadFn: func(context.Context) (map[string]any, error) { return nil, nil },
		SaveFn: func(context.Context, map[string]any) error { return errTest },
		CloseFn: func() error {
			return nil
		},
	}
	p, err := New(ctx, &Config{}, WithStore(store), WithFetcher(swapiFetcher()))
	require.NoError(t, err)

	err = p.Close(ctx)
	require.ErrorIs(t, err, errTest)
	require.Equal(t, uint64(1), store.GetSaveCalls())
}

func TestPipeline_RedisStore(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	cfg := &Config{Cache: CacheConfig{Store: RedisStore, RedisURL: "redis://" + mr.Addr(), RedisKey: "swapi"}}

	p, err := New(ctx, cfg, WithFetcher(swapiFetcher()))
	require.NoError(t, err)
	_, err = p.Fetch(ctx, tatooineURL, nil)
	require.NoError(t, err)
	require.NoError(t, p.Close(ctx))
	require.True(t, mr.Exists("swapi"))

	fetcher := swapiFetcher()
	p, err = New(ctx, cfg, WithFetcher(fetcher))
	require.NoError(t, err)
	defer p.Close(ctx)
	require.Equal(t, []string{tatooineURL}, p.Cache().Keys())
	_, err = p.Fetch(ctx, tatooineURL, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(0), fetcher.GetFetchCalls())
}
