package service

import (
	"strings"

	"tablemap-service/internal/mapping/catalog"
)

// Rule weights. An exact alias hit is absolute trust; everything below it is
// a progressively weaker signal, and the best firing rule wins.
const (
	fuzzyAliasWeight = 0.9
	patternScore     = 0.85
	keywordScore     = 0.7
	fieldNameScore   = 0.6
)

// Score rates how likely the observed column represents the canonical field,
// in [0..1]. The column is normalized (lowercase, trimmed); rules are
// evaluated alias-exact → alias-fuzzy → pattern → keyword → field-name
// substring, and the maximum candidate is returned. Aliases and keywords in
// the catalog are already lowercased at load time.
func Score(field string, rules catalog.FieldRules, column string) float64 {
	col := strings.ToLower(strings.TrimSpace(column))

	for _, a := range rules.Aliases {
		if col == a {
			return 1.0
		}
	}

	best := 0.0
	for _, a := range rules.Aliases {
		if s := ratio(col, a) * fuzzyAliasWeight; s > best {
			best = s
		}
	}
	for _, re := range rules.Patterns {
		if re.MatchString(col) && patternScore > best {
			best = patternScore
		}
	}
	for _, kw := range rules.Keywords {
		if strings.Contains(col, kw) && keywordScore > best {
			best = keywordScore
		}
	}
	if strings.Contains(col, strings.ToLower(field)) && fieldNameScore > best {
		best = fieldNameScore
	}
	return best
}
