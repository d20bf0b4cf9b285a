// SPDX-License-Identifier: Apache-2.0

package transform

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Mapping renames a source field into a target field.
type Mapping struct {
	Source string
	Target string
}

// MappingTable holds, per entity kind, the ordered list of field mappings.
// The order of the mappings is the key order of the transformed records.
type MappingTable struct {
	kinds    []Kind
	mappings map[Kind][]Mapping
}

var (
	ErrInvalidMappingTable = errors.New("invalid mapping table")
	ErrDuplicateSource     = errors.New("duplicate source field")
	ErrDuplicateTarget     = errors.New("duplicate target field")
)

//go:embed mappings/default.json
var defaultMappingTable []byte

func NewMappingTable() *MappingTable {
	return &MappingTable{
		mappings: map[Kind][]Mapping{},
	}
}

// DefaultMappingTable returns the mapping table for the built in kinds.
func DefaultMappingTable() *MappingTable {
	t, err := ParseMappingTableJSON(defaultMappingTable)
	if err != nil {
		panic(fmt.Sprintf("default mapping table: %v", err))
	}
	return t
}

// Add appends a mapping to the kind. Source and target fields must be unique
// within a kind.
func (t *MappingTable) Add(kind Kind, source, target string) error {
	existing, found := t.mappings[kind]
	if !found {
		t.kinds = append(t.kinds, kind)
	}
	for _, m := range existing {
		if m.Source == source {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateSource, kind, source)
		}
		if m.Target == target {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateTarget, kind, target)
		}
	}
	t.mappings[kind] = append(existing, Mapping{Source: source, Target: target})
	return nil
}

// Mappings returns a copy of the mappings for the kind.
func (t *MappingTable) Mappings(kind Kind) ([]Mapping, bool) {
	m, found := t.mappings[kind]
	if !found {
		return nil, false
	}
	return append([]Mapping(nil), m...), true
}

// Kinds returns the kinds in the order they were declared.
func (t *MappingTable) Kinds() []Kind {
	return append([]Kind(nil), t.kinds...)
}

// LoadMappingTable reads a mapping table file. Files with a .yaml or .yml
// extension are parsed as YAML, anything else as JSON.
func LoadMappingTable(path string) (*MappingTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping table: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseMappingTableYAML(b)
	default:
		return ParseMappingTableJSON(b)
	}
}

// ParseMappingTableJSON parses a JSON object of kinds, each holding an object
// of source to target field names. Document order is preserved.
func ParseMappingTableJSON(b []byte) (*MappingTable, error) {
	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidMappingTable)
	}
	doc := gjson.ParseBytes(b)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected an object of kinds", ErrInvalidMappingTable)
	}

	t := NewMappingTable()
	var err error
	doc.ForEach(func(kindKey, fields gjson.Result) bool {
		var kind Kind
		if kind, err = ParseKind(kindKey.String()); err != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidMappingTable, err)
			return false
		}
		if !fields.IsObject() {
			err = fmt.Errorf("%w: kind %s: expected an object of fields", ErrInvalidMappingTable, kind)
			return false
		}
		t.declare(kind)
		fields.ForEach(func(source, target gjson.Result) bool {
			if target.Type != gjson.String || target.String() == "" {
				err = fmt.Errorf("%w: %s.%s: target must be a non empty string", ErrInvalidMappingTable, kind, source.String())
				return false
			}
			err = t.Add(kind, source.String(), target.String())
			return err == nil
		})
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// ParseMappingTableYAML parses the YAML rendition of the JSON mapping table.
func ParseMappingTableYAML(b []byte) (*MappingTable, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMappingTable, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping of kinds", ErrInvalidMappingTable)
	}

	t := NewMappingTable()
	kinds := doc.Content[0].Content
	for i := 0; i+1 < len(kinds); i += 2 {
		kind, err := ParseKind(kinds[i].Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMappingTable, err)
		}
		fields := kinds[i+1]
		if fields.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: kind %s: expected a mapping of fields", ErrInvalidMappingTable, kind)
		}
		t.declare(kind)
		for j := 0; j+1 < len(fields.Content); j += 2 {
			source, target := fields.Content[j], fields.Content[j+1]
			if target.Kind != yaml.ScalarNode || target.Value == "" {
				return nil, fmt.Errorf("%w: %s.%s: target must be a non empty string", ErrInvalidMappingTable, kind, source.Value)
			}
			if err := t.Add(kind, source.Value, target.Value); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}

// declare registers the kind so that kinds without fields are kept.
func (t *MappingTable) declare(kind Kind) {
	if _, found := t.mappings[kind]; found {
		return
	}
	t.kinds = append(t.kinds, kind)
	t.mappings[kind] = []Mapping{}
}
