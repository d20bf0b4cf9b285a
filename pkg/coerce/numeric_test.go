// SPDX-License-Identifier: Apache-2.0

package coerce

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any

		wantResult Result
	}{
		{
			name:       "ok - integer string",
			value:      "506",
			wantResult: Result{Value: int64(506), OK: true},
		},
		{
			name:       "ok - trailing whitespace",
			value:      "506 ",
			wantResult: Result{Value: int64(506), OK: true},
		},
		{
			name:       "ok - thousands separators and fraction",
			value:      "506,000,000.9999",
			wantResult: Result{Value: int64(506000000), OK: true},
		},
		{
			name:       "ok - negative fraction truncates towards zero",
			value:      "-1.9",
			wantResult: Result{Value: int64(-1), OK: true},
		},
		{
			name:       "ok - large population",
			value:      "1,000,000,000,000",
			wantResult: Result{Value: int64(1000000000000), OK: true},
		},
		{
			name:       "ok - float",
			value:      float64(4.7),
			wantResult: Result{Value: int64(4), OK: true},
		},
		{
			name:       "ok - int",
			value:      7,
			wantResult: Result{Value: int64(7), OK: true},
		},
		{
			name:       "ok - bool",
			value:      true,
			wantResult: Result{Value: int64(1), OK: true},
		},
		{
			name:       "non numeric string",
			value:      "Ahsoka Tano",
			wantResult: Result{Value: "Ahsoka Tano", OK: false},
		},
		{
			name:       "none value",
			value:      " unknown",
			wantResult: Result{Value: " unknown", OK: false},
		},
		{
			name:       "list",
			value:      []any{506, 507},
			wantResult: Result{Value: []any{506, 507}, OK: false},
		},
		{
			name:       "nil",
			value:      nil,
			wantResult: Result{Value: nil, OK: false},
		},
		{
			name:       "nan string",
			value:      "NaN",
			wantResult: Result{Value: "NaN", OK: false},
		},
		{
			name:       "out of range float",
			value:      math.MaxFloat64,
			wantResult: Result{Value: math.MaxFloat64, OK: false},
		},
		{
			name:       "out of range uint64",
			value:      uint64(math.MaxUint64),
			wantResult: Result{Value: uint64(math.MaxUint64), OK: false},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.wantResult, ToInt(tc.value))
		})
	}
}

func TestToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any

		wantResult Result
	}{
		{
			name:       "ok - integer string",
			value:      "4",
			wantResult: Result{Value: float64(4), OK: true},
		},
		{
			name:       "ok - decimal string",
			value:      "4.0",
			wantResult: Result{Value: float64(4), OK: true},
		},
		{
			name:       "ok - thousands separators",
			value:      "5,000",
			wantResult: Result{Value: float64(5000), OK: true},
		},
		{
			name:       "ok - thousands separators and fraction",
			value:      "506,000,000.9999",
			wantResult: Result{Value: 506000000.9999, OK: true},
		},
		{
			name:       "ok - int",
			value:      int64(3),
			wantResult: Result{Value: float64(3), OK: true},
		},
		{
			name:       "non numeric string",
			value:      "Darth Vader",
			wantResult: Result{Value: "Darth Vader", OK: false},
		},
		{
			name:       "list",
			value:      []any{618, 664},
			wantResult: Result{Value: []any{618, 664}, OK: false},
		},
		{
			name:       "infinity",
			value:      "Infinity",
			wantResult: Result{Value: "Infinity", OK: false},
		},
		{
			name:       "nil",
			value:      nil,
			wantResult: Result{Value: nil, OK: false},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.wantResult, ToFloat(tc.value))
		})
	}
}
