// SPDX-License-Identifier: Apache-2.0

package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testDroid struct {
	Name   string   `mapstructure:"name"`
	Height *float64 `mapstructure:"height"`
	Tools  []string `mapstructure:"equipment"`
}

func TestRecord_Set(t *testing.T) {
	t.Parallel()

	rec := New()
	rec.Set("name", "R2-D2")
	rec.Set("height", 0.96)
	rec.Set("name", "C-3PO")

	require.Equal(t, []string{"name", "height"}, rec.Keys())
	require.Equal(t, "C-3PO", rec.Value("name"))
	require.Equal(t, 2, rec.Len())

	rec.Delete("name")
	require.Equal(t, []string{"height"}, rec.Keys())
	require.False(t, rec.Has("name"))

	var nilRec *Record
	require.Equal(t, 0, nilRec.Len())
	require.Nil(t, nilRec.Value("name"))
}

func TestRecord_Equal(t *testing.T) {
	t.Parallel()

	newRecord := func(kv ...any) *Record {
		rec := New()
		for i := 0; i < len(kv); i += 2 {
			rec.Set(kv[i].(string), kv[i+1])
		}
		return rec
	}

	tests := []struct {
		name string
		a    *Record
		b    *Record

		wantEqual bool
	}{
		{
			name:      "ok - same keys different order",
			a:         newRecord("name", "Tatooine", "suns", int64(2)),
			b:         newRecord("suns", int64(2), "name", "Tatooine"),
			wantEqual: true,
		},
		{
			name:      "ok - nested records",
			a:         newRecord("homeworld", newRecord("name", "Naboo")),
			b:         newRecord("homeworld", newRecord("name", "Naboo")),
			wantEqual: true,
		},
		{
			name:      "different values",
			a:         newRecord("suns", int64(2)),
			b:         newRecord("suns", int64(1)),
			wantEqual: false,
		},
		{
			name:      "different keys",
			a:         newRecord("suns", int64(2)),
			b:         newRecord("moons", int64(2)),
			wantEqual: false,
		},
		{
			name:      "nil record",
			a:         nil,
			b:         New(),
			wantEqual: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.wantEqual, tc.a.Equal(tc.b))
		})
	}
}

func TestRecord_Clone(t *testing.T) {
	t.Parallel()

	rec := New()
	homeworld := New()
	homeworld.Set("name", "Tatooine")
	rec.Set("homeworld", homeworld)
	rec.Set("climate", []string{"arid"})
	rec.Set("films", []any{"A New Hope"})

	clone := rec.Clone()
	require.True(t, rec.Equal(clone))

	homeworld.Set("name", "Alderaan")
	rec.Value("climate").([]string)[0] = "temperate"
	rec.Value("films").([]any)[0] = "Empire"

	cloneHomeworld, ok := clone.Value("homeworld").(*Record)
	require.True(t, ok)
	require.Equal(t, "Tatooine", cloneHomeworld.Value("name"))
	require.Equal(t, []string{"arid"}, clone.Value("climate"))
	require.Equal(t, []any{"A New Hope"}, clone.Value("films"))
}

func TestRecord_Decode(t *testing.T) {
	t.Parallel()

	height := 0.96
	rec := New()
	rec.Set("name", "R2-D2")
	rec.Set("height", &height)
	rec.Set("equipment", []string{"saw", "fire extinguisher"})

	var droid testDroid
	err := rec.Decode(&droid)
	require.NoError(t, err)
	require.Equal(t, "R2-D2", droid.Name)
	require.NotNil(t, droid.Height)
	require.Equal(t, 0.96, *droid.Height)
	require.Equal(t, []string{"saw", "fire extinguisher"}, droid.Tools)
}

func TestRecord_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		record  func() *Record
		wantErr bool

		wantJSON string
	}{
		{
			name: "ok - keys in insertion order",
			record: func() *Record {
				rec := New()
				rec.Set("url", "https://swapi.py4e.com/api/planets/1/")
				rec.Set("name", "Tatooine")
				rec.Set("suns", int64(2))
				rec.Set("gravity", nil)
				rec.Set("climate", []string{"arid"})
				return rec
			},
			wantJSON: `{"url":"https://swapi.py4e.com/api/planets/1/","name":"Tatooine","suns":2,"gravity":null,"climate":["arid"]}`,
		},
		{
			name: "ok - keys with path characters",
			record: func() *Record {
				rec := New()
				rec.Set("a.b", 1)
				rec.Set("0", "zero")
				rec.Set("what?", true)
				rec.Set(":colon", "c")
				return rec
			},
			wantJSON: `{"a.b":1,"0":"zero","what?":true,":colon":"c"}`,
		},
		{
			name: "ok - nested record",
			record: func() *Record {
				inner := New()
				inner.Set("name", "Human")
				rec := New()
				rec.Set("species", inner)
				return rec
			},
			wantJSON: `{"species":{"name":"Human"}}`,
		},
		{
			name:     "ok - nil record",
			record:   func() *Record { return nil },
			wantJSON: `null`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, err := tc.record().MarshalJSON()
			require.NoError(t, err)
			require.Equal(t, tc.wantJSON, string(b))
		})
	}
}

func TestRecord_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	rec := New()
	err := rec.UnmarshalJSON([]byte(`{"name":"Luke","homeworld":{"name":"Tatooine"},"films":["a","b"],"height":172,"mass":null}`))
	require.NoError(t, err)
	require.Equal(t, []string{"name", "homeworld", "films", "height", "mass"}, rec.Keys())
	require.Equal(t, "Luke", rec.Value("name"))
	require.Equal(t, []any{"a", "b"}, rec.Value("films"))
	require.Equal(t, float64(172), rec.Value("height"))
	require.True(t, rec.Has("mass"))
	require.Nil(t, rec.Value("mass"))

	homeworld, ok := rec.Value("homeworld").(*Record)
	require.True(t, ok)
	require.Equal(t, "Tatooine", homeworld.Value("name"))

	require.Error(t, rec.UnmarshalJSON([]byte(`[1,2]`)))
	require.Error(t, rec.UnmarshalJSON([]byte(`{"name":`)))
}
