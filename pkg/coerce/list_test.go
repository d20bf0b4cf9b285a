// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     any
		delimiter string

		wantResult Result
	}{
		{
			name:       "ok - whitespace",
			value:      "Use the Force",
			wantResult: Result{Value: []string{"Use", "the", "Force"}, OK: true},
		},
		{
			name:       "ok - whitespace runs and padding",
			value:      "  Use   the\tForce ",
			wantResult: Result{Value: []string{"Use", "the", "Force"}, OK: true},
		},
		{
			name:       "ok - pipe delimiter",
			value:      "X-wing|Y-wing",
			delimiter:  "|",
			wantResult: Result{Value: []string{"X-wing", "Y-wing"}, OK: true},
		},
		{
			name:       "ok - comma space delimiter",
			value:      "Diag, Hatcher, North Quad",
			delimiter:  ", ",
			wantResult: Result{Value: []string{"Diag", "Hatcher", "North Quad"}, OK: true},
		},
		{
			name:       "ok - empty string without delimiter",
			value:      "",
			wantResult: Result{Value: []string{}, OK: true},
		},
		{
			name:       "list passes through",
			value:      []any{506, 507},
			delimiter:  ", ",
			wantResult: Result{Value: []any{506, 507}, OK: false},
		},
		{
			name:       "string list passes through",
			value:      []string{"arid"},
			wantResult: Result{Value: []string{"arid"}, OK: false},
		},
		{
			name:       "nil",
			value:      nil,
			delimiter:  ",",
			wantResult: Result{Value: nil, OK: false},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.wantResult, ToList(tc.value, tc.delimiter))
		})
	}
}
