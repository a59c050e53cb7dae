package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d.\-]`)

// ParseFloat parses tolerant numeric text: "1 234,50", "1,234.50",
// NBSP/narrow-space thousands separators, "(42)" for negatives.
// Returns false when nothing numeric is left after cleanup.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	// strip regular and non-breaking separators
	repl := strings.NewReplacer(" ", "", " ", "", " ", "", " ", "", "\t", "")
	s = repl.Replace(s)

	// "1,234.50" keeps its dot; "1234,50" means a decimal comma
	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}

	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}
