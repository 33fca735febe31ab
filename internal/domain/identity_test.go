package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineItemID_Deterministic(t *testing.T) {
	assert.Equal(t, LineItemID("7", "M"), LineItemID("7", "M"))
	assert.Equal(t, "7:M", LineItemID("7", "M"))
}

func TestLineItemID_EmptyVariant(t *testing.T) {
	assert.Equal(t, "42:", LineItemID("42", ""))
}

func TestLineItemID_NoCollisionWithSeparatorInInputs(t *testing.T) {
	// Without escaping these pairs would both resolve to "a:b:c".
	assert.NotEqual(t, LineItemID("a:b", "c"), LineItemID("a", "b:c"))
	assert.NotEqual(t, LineItemID(`a\`, ":b"), LineItemID("a", `\:b`))
}

func TestTotals(t *testing.T) {
	items := []LineItem{
		{ID: "1:M", Quantity: 2, UnitPrice: 999},
		{ID: "2:L", Quantity: 1, UnitPrice: 1299},
	}
	assert.Equal(t, 3, TotalItems(items))
	assert.Equal(t, 2*999+1299.0, TotalPrice(items))
	assert.Equal(t, 0, TotalItems(nil))
	assert.Equal(t, 0.0, TotalPrice(nil))
}
