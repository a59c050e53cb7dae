package service

import (
	"fmt"
	"sort"
	"strings"

	"tablemap-service/internal/mapping/model"
)

// confidence below this is reported as a warning, never a failure
const lowConfidence = 0.8

// Validate inspects a mapping result and returns (valid, issues).
// Missing required fields and low-confidence mappings each produce one issue
// line; the result is invalid only when strict is set and required fields are
// missing. Low confidence alone never invalidates.
func Validate(res model.Result, strict bool) (bool, []string) {
	var issues []string

	if len(res.MissingRequired) > 0 {
		issues = append(issues, fmt.Sprintf("missing required fields: %s",
			strings.Join(res.MissingRequired, ", ")))
	}

	var low []string
	for _, field := range sortedKeys(res.Confidence) {
		if score := res.Confidence[field]; score < lowConfidence {
			low = append(low, fmt.Sprintf("%s (%.2f)", field, score))
		}
	}
	if len(low) > 0 {
		issues = append(issues, "low confidence mappings: "+strings.Join(low, ", "))
	}

	valid := !(strict && len(res.MissingRequired) > 0)
	return valid, issues
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
