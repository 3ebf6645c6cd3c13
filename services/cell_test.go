package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewCell(t *testing.T) {
	assert.Equal(t, CellEmpty, NewCell("").Kind)
	assert.Equal(t, CellEmpty, NewCell("   ").Kind)

	c := NewCell(" 19.99 ")
	assert.Equal(t, CellNumber, c.Kind)
	assert.Equal(t, 19.99, c.Number)
	assert.Equal(t, "19.99", c.Text)

	c = NewCell("Office Desk")
	assert.Equal(t, CellText, c.Kind)
	assert.Equal(t, "Office Desk", c.Text)
}

func TestCoercePrice(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain number", "10", "10", false},
		{"rounds half up", "10.005", "10.01", false},
		{"rounds to two places", "199.999", "200", false},
		{"text number", "49.5", "49.5", false},
		{"zero", "0", "", true},
		{"negative", "-5", "", true},
		{"non numeric", "free", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := CoercePrice(NewCell(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPrice)
				return
			}
			assert.NoError(t, err)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, price.Equal(want), "got %s want %s", price, want)
			assert.LessOrEqual(t, int(price.Exponent())*-1, 2)
		})
	}
}

func TestCoercePriceUnsupportedCell(t *testing.T) {
	_, err := CoercePrice(Cell{Kind: CellUnsupported})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCoerceStock(t *testing.T) {
	stock, err := CoerceStock(NewCell(""))
	assert.NoError(t, err)
	assert.Equal(t, 0, stock)

	stock, err = CoerceStock(NewCell("7"))
	assert.NoError(t, err)
	assert.Equal(t, 7, stock)

	// fractional counts truncate
	stock, err = CoerceStock(NewCell("7.9"))
	assert.NoError(t, err)
	assert.Equal(t, 7, stock)

	_, err = CoerceStock(NewCell("-3"))
	assert.ErrorIs(t, err, ErrInvalidStock)

	_, err = CoerceStock(NewCell("a few"))
	assert.ErrorIs(t, err, ErrInvalidStock)
}

func TestCoerceTags(t *testing.T) {
	assert.Nil(t, CoerceTags(NewCell("")))
	assert.Nil(t, CoerceTags(NewCell(" , , ")))
	assert.Equal(t, []string{"wood", "office", "sale"}, CoerceTags(NewCell(" wood, office ,sale, ")))
	assert.Equal(t, []string{"solo"}, CoerceTags(NewCell("solo")))
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "", NormalizeCategory(NewCell("  ")))
	assert.Equal(t, "Office Chairs", NormalizeCategory(NewCell("  office CHAIRS ")))
	assert.Equal(t, "Desks", NormalizeCategory(NewCell("desks")))
}

func TestNormalizeSKU(t *testing.T) {
	assert.Equal(t, "", NormalizeSKU(NewCell("   ")))
	assert.Equal(t, "CH001", NormalizeSKU(NewCell(" ch 001 ")))
	assert.Equal(t, "ABC-123", NormalizeSKU(NewCell("abc-123")))
}
