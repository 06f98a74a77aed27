package format_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/taller-inventario/pkg/format"
)

func TestQuantity(t *testing.T) {
	assert.Equal(t, "12.500", format.Quantity(12500))
	assert.Equal(t, "-3", format.Quantity(-3))
	assert.Equal(t, "0", format.Quantity(0))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "12.345,50 BOB", format.Money(decimal.RequireFromString("12345.5"), "BOB"))
	assert.Equal(t, "80,00", format.Money(decimal.NewFromInt(80), ""))
}
