// Catalog — declarative rules describing how canonical fields are recognized
// in arbitrary column headers. Loaded once at startup and read-only afterwards.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strings"
)

var (
	ErrNotFound  = errors.New("mapping config not found")
	ErrMalformed = errors.New("mapping config malformed")
)

// FieldRules holds the matching rules for one canonical field.
// Aliases and Keywords are stored lowercased; Patterns are compiled
// case-insensitive and unanchored.
type FieldRules struct {
	Aliases  []string
	Patterns []*regexp.Regexp
	Keywords []string
}

type Catalog struct {
	Fields   map[string]FieldRules
	Required []string
	Optional []string

	names []string // sorted, for deterministic iteration
}

// FieldNames returns all canonical field names in sorted order.
func (c *Catalog) FieldNames() []string { return c.names }

// raw JSON shape: field_mappings / required_fields / optional_fields
type rawCatalog struct {
	FieldMappings  map[string]rawField `json:"field_mappings"`
	RequiredFields []string            `json:"required_fields"`
	OptionalFields []string            `json:"optional_fields"`
}

type rawField struct {
	Aliases  []string `json:"aliases"`
	Patterns []string `json:"patterns"`
	Keywords []string `json:"keywords"`
}

// Load reads and parses the catalog from a JSON file.
// A missing file is ErrNotFound; anything undecodable or shape-invalid is
// ErrMalformed. Both are fatal to construction: there is no partially
// initialized catalog.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	return Parse(bytes.NewReader(b))
}

// Parse decodes a catalog document. Unknown keys, uncompilable patterns and
// required fields that have no entry in field_mappings are all rejected here,
// so the mapper never hits a missing-rule fault later.
func Parse(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var raw rawCatalog
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw.FieldMappings == nil {
		return nil, fmt.Errorf("%w: field_mappings is missing", ErrMalformed)
	}

	c := &Catalog{
		Fields:   make(map[string]FieldRules, len(raw.FieldMappings)),
		Required: raw.RequiredFields,
		Optional: raw.OptionalFields,
	}
	for name, rf := range raw.FieldMappings {
		if name == "" {
			return nil, fmt.Errorf("%w: empty field name", ErrMalformed)
		}
		rules := FieldRules{
			Aliases:  lowerAll(rf.Aliases),
			Keywords: lowerAll(rf.Keywords),
		}
		for _, p := range rf.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q pattern %q: %v", ErrMalformed, name, p, err)
			}
			rules.Patterns = append(rules.Patterns, re)
		}
		c.Fields[name] = rules
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)

	for _, f := range c.Required {
		if _, ok := c.Fields[f]; !ok {
			return nil, fmt.Errorf("%w: required field %q has no entry in field_mappings", ErrMalformed, f)
		}
	}
	return c, nil
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}
