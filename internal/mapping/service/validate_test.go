package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tablemap-service/internal/mapping/model"
)

func TestValidateClean(t *testing.T) {
	res := model.Result{
		Mapped:     map[string]string{"sales": "Sales", "quantity": "qty"},
		Confidence: map[string]float64{"sales": 1.0, "quantity": 0.85},
	}
	valid, issues := Validate(res, true)
	assert.True(t, valid)
	assert.Empty(t, issues)
}

func TestValidateMissingRequired(t *testing.T) {
	res := model.Result{
		Mapped:          map[string]string{"sales": "Sales"},
		Confidence:      map[string]float64{"sales": 1.0},
		MissingRequired: []string{"customer_id", "order_date"},
	}

	valid, issues := Validate(res, true)
	assert.False(t, valid)
	assert.Equal(t, []string{"missing required fields: customer_id, order_date"}, issues)

	// lenient: same issue reported, but the result stays valid
	valid, issues = Validate(res, false)
	assert.True(t, valid)
	assert.Len(t, issues, 1)
}

func TestValidateLowConfidence(t *testing.T) {
	res := model.Result{
		Mapped:     map[string]string{"sales": "revenue_total", "quantity": "qty"},
		Confidence: map[string]float64{"sales": 0.7, "quantity": 0.85},
	}

	// low confidence warns but never invalidates, strict or not
	valid, issues := Validate(res, true)
	assert.True(t, valid)
	assert.Equal(t, []string{"low confidence mappings: sales (0.70)"}, issues)

	valid, _ = Validate(res, false)
	assert.True(t, valid)
}

func TestValidateBothIssues(t *testing.T) {
	res := model.Result{
		Mapped:          map[string]string{"b_field": "col2", "a_field": "col1"},
		Confidence:      map[string]float64{"b_field": 0.61, "a_field": 0.7},
		MissingRequired: []string{"customer_id"},
	}
	valid, issues := Validate(res, true)
	assert.False(t, valid)
	assert.Equal(t, []string{
		"missing required fields: customer_id",
		"low confidence mappings: a_field (0.70), b_field (0.61)",
	}, issues)
}
