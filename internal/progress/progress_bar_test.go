// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordsBar(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	bar := newRecordsBar(&buf, 3, "transforming planets")
	for range 3 {
		require.NoError(t, bar.Add(1))
	}
	require.NoError(t, bar.Close())

	require.Contains(t, buf.String(), "transforming planets")
	require.Contains(t, buf.String(), "3/3")
}
