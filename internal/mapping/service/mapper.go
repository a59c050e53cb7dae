package service

import (
	"tablemap-service/internal/mapping/catalog"
	"tablemap-service/internal/mapping/model"
)

// DefaultMinConfidence is the threshold below which a candidate column is
// never accepted for a field.
const DefaultMinConfidence = 0.6

// Mapper matches observed column names against a read-only catalog.
// It holds no per-call state, so one Mapper can serve concurrent requests.
type Mapper struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Mapper {
	return &Mapper{cat: cat}
}

// MapColumns scores every observed column against every catalog field and
// keeps, per field, the strictly-best column at or above minConfidence.
//
// Two deliberate policies:
//   - ties on the maximum score go to the first-seen column (input order);
//   - fields search independently, so the same column may be claimed by more
//     than one field — there is no cross-field reservation.
//
// MapColumns is total: it always returns a Result, never an error. A field
// with no qualifying column is simply absent from Mapped (and listed in
// MissingRequired when required).
func (m *Mapper) MapColumns(observed []string, minConfidence float64) model.Result {
	res := model.Result{
		Mapped:     make(map[string]string),
		Confidence: make(map[string]float64),
	}

	claimed := make(map[string]bool, len(observed))
	for _, field := range m.cat.FieldNames() {
		rules := m.cat.Fields[field]

		bestCol := ""
		bestScore := 0.0
		found := false
		for _, col := range observed {
			s := Score(field, rules, col)
			if s >= minConfidence && s > bestScore {
				bestCol, bestScore, found = col, s, true
			}
		}
		if found {
			res.Mapped[field] = bestCol
			res.Confidence[field] = bestScore
			claimed[bestCol] = true
		}
	}

	for _, col := range observed {
		if !claimed[col] {
			res.Unmapped = append(res.Unmapped, col)
		}
	}
	for _, f := range m.cat.Required {
		if _, ok := res.Mapped[f]; !ok {
			res.MissingRequired = append(res.MissingRequired, f)
		}
	}
	return res
}
