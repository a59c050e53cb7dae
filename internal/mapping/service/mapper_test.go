package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablemap-service/internal/mapping/catalog"
)

const testCatalog = `{
  "field_mappings": {
    "customer_id": {
      "aliases": ["customer_id", "cust_id"]
    },
    "order_date": {
      "aliases": ["order_date", "order date"],
      "patterns": ["(order|purchase)[_ ]?date"]
    },
    "sales": {
      "aliases": ["sales", "sales_amount"],
      "keywords": ["sales", "amount", "revenue"]
    },
    "quantity": {
      "aliases": ["quantity", "qty"],
      "keywords": ["qty"]
    },
    "segment": {
      "keywords": ["segment"]
    }
  },
  "required_fields": ["customer_id", "order_date", "sales"],
  "optional_fields": ["quantity", "segment"]
}`

func newTestMapper(t *testing.T) *Mapper {
	t.Helper()
	cat, err := catalog.Parse(strings.NewReader(testCatalog))
	require.NoError(t, err)
	return New(cat)
}

func TestMapColumns(t *testing.T) {
	m := newTestMapper(t)

	cols := []string{"Customer ID", "cust_id", "CustID", "Order Date", "Sales Amount", "qty_sold", "random_column"}
	res := m.MapColumns(cols, DefaultMinConfidence)

	// exact alias beats the fuzzy near-misses
	assert.Equal(t, "cust_id", res.Mapped["customer_id"])
	assert.Equal(t, 1.0, res.Confidence["customer_id"])

	assert.Equal(t, "Order Date", res.Mapped["order_date"])
	assert.Equal(t, 1.0, res.Confidence["order_date"])

	assert.Equal(t, "Sales Amount", res.Mapped["sales"])
	assert.Equal(t, "qty_sold", res.Mapped["quantity"])

	// no segment-ish column above threshold
	_, ok := res.Mapped["segment"]
	assert.False(t, ok)

	assert.Empty(t, res.MissingRequired)
	assert.Contains(t, res.Unmapped, "random_column")
	assert.NotContains(t, res.Unmapped, "cust_id")
	assert.NotContains(t, res.Unmapped, "Order Date")
}

func TestMapColumnsThreshold(t *testing.T) {
	m := newTestMapper(t)
	cols := []string{"CustID", "purchase date", "revenue_total", "units"}

	for _, threshold := range []float64{0.0, 0.6, 0.7, 0.8, 0.9, 1.0} {
		res := m.MapColumns(cols, threshold)
		for field, score := range res.Confidence {
			assert.GreaterOrEqual(t, score, threshold, "field %s at threshold %v", field, threshold)
		}
	}
}

func TestMapColumnsMonotone(t *testing.T) {
	m := newTestMapper(t)
	cols := []string{"CustID", "purchase date", "revenue_total", "units", "segment_code"}

	prev := m.MapColumns(cols, 0.0)
	for _, threshold := range []float64{0.6, 0.7, 0.85, 0.95} {
		cur := m.MapColumns(cols, threshold)
		// raising the threshold only removes mappings
		for field, col := range cur.Mapped {
			assert.Equal(t, prev.Mapped[field], col, "field %s appeared at threshold %v", field, threshold)
		}
		assert.LessOrEqual(t, len(cur.Mapped), len(prev.Mapped))
		prev = cur
	}
}

func TestMapColumnsTieBreak(t *testing.T) {
	cat, err := catalog.Parse(strings.NewReader(`{
	  "field_mappings": {"segment": {"keywords": ["seg"]}}
	}`))
	require.NoError(t, err)
	m := New(cat)

	// equal 0.7 keyword hits: first-seen column wins
	res := m.MapColumns([]string{"seg_a", "seg_b"}, 0.6)
	assert.Equal(t, "seg_a", res.Mapped["segment"])

	res = m.MapColumns([]string{"seg_b", "seg_a"}, 0.6)
	assert.Equal(t, "seg_b", res.Mapped["segment"])
}

func TestMapColumnsMultiClaim(t *testing.T) {
	cat, err := catalog.Parse(strings.NewReader(`{
	  "field_mappings": {
	    "billing_id": {"aliases": ["id"]},
	    "shipping_id": {"aliases": ["id"]}
	  }
	}`))
	require.NoError(t, err)
	m := New(cat)

	// fields search independently: both claim the same column
	res := m.MapColumns([]string{"id", "note"}, 0.6)
	assert.Equal(t, "id", res.Mapped["billing_id"])
	assert.Equal(t, "id", res.Mapped["shipping_id"])
	assert.Equal(t, []string{"note"}, res.Unmapped)
}

func TestMapColumnsMissingRequired(t *testing.T) {
	m := newTestMapper(t)

	res := m.MapColumns([]string{"cust_id", "random"}, DefaultMinConfidence)

	// missingRequired is exactly required - mapped
	assert.Equal(t, []string{"order_date", "sales"}, res.MissingRequired)

	res = m.MapColumns(nil, DefaultMinConfidence)
	assert.Empty(t, res.Mapped)
	assert.Equal(t, []string{"customer_id", "order_date", "sales"}, res.MissingRequired)
}

func TestMapColumnsZeroScoreNeverMapped(t *testing.T) {
	m := newTestMapper(t)

	// even with threshold 0, a column that fires no rule stays unmapped
	res := m.MapColumns([]string{"zzz"}, 0.0)
	assert.Empty(t, res.Mapped)
	assert.Equal(t, []string{"zzz"}, res.Unmapped)
}

func TestMapColumnsIdempotentOnProjected(t *testing.T) {
	m := newTestMapper(t)

	res := m.MapColumns([]string{"CustID", "Order Date", "Sales Amount", "qty"}, DefaultMinConfidence)
	require.NotEmpty(t, res.Mapped)

	// remap the canonical names produced by projection: every field whose
	// alias set contains its own name self-maps at 1.0
	canonical := make([]string, 0, len(res.Mapped))
	for f := range res.Mapped {
		canonical = append(canonical, f)
	}
	again := m.MapColumns(canonical, DefaultMinConfidence)
	for f := range res.Mapped {
		assert.Equal(t, f, again.Mapped[f])
		assert.Equal(t, 1.0, again.Confidence[f])
	}
}
