// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"github.com/xataio/holocron/pkg/record"
)

// NameField is the field used to pair a record with its auxiliary record.
const NameField = "name"

// MergeSupplement returns a new raw record holding the fields of raw updated
// with the fields of the auxiliary record that shares its name. Name matching
// is case insensitive. Neither input is modified.
func MergeSupplement(raw map[string]any, supplements []record.Raw) record.Raw {
	merged := make(record.Raw, len(raw))
	for k, v := range raw {
		merged[k] = v
	}
	if len(supplements) == 0 {
		return merged
	}

	supplement, found := record.Lookup(supplements, NameField, raw[NameField])
	if !found {
		return merged
	}
	for k, v := range supplement {
		merged[k] = v
	}
	return merged
}
