package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowFromStrings(values ...string) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = NewCell(v)
	}
	return cells
}

func TestValidateRowFullRecord(t *testing.T) {
	cells := rowFromStrings("Desk", "Solid wood desk", "199.999", "office furniture", " BrandX ", "sku 001", "5", "https://img.example/desk.png", "wood, office")

	record, err := ValidateRow(cells, 1)
	require.NoError(t, err)

	assert.Equal(t, "Desk", record.Name)
	require.NotNil(t, record.Description)
	assert.Equal(t, "Solid wood desk", *record.Description)
	assert.True(t, record.Price.Equal(decimal.NewFromInt(200)), "price %s", record.Price)
	require.NotNil(t, record.Category)
	assert.Equal(t, "Office Furniture", *record.Category)
	require.NotNil(t, record.Brand)
	assert.Equal(t, "BrandX", *record.Brand)
	require.NotNil(t, record.SKU)
	assert.Equal(t, "SKU001", *record.SKU)
	assert.Equal(t, 5, record.StockQuantity)
	require.NotNil(t, record.ImageURL)
	assert.Equal(t, "https://img.example/desk.png", *record.ImageURL)
	assert.Equal(t, []string{"wood", "office"}, []string(record.Tags))
}

func TestValidateRowEmptyRowSkipped(t *testing.T) {
	_, err := ValidateRow(rowFromStrings("", "", "", "", "", "", "", "", ""), 3)
	assert.ErrorIs(t, err, ErrSkipRow)

	// short rows of nothing are still empty rows
	_, err = ValidateRow([]Cell{}, 4)
	assert.ErrorIs(t, err, ErrSkipRow)
}

func TestValidateRowMissingName(t *testing.T) {
	_, err := ValidateRow(rowFromStrings("", "", "10.00", "", "", "", "", "", ""), 2)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Row)
	assert.Contains(t, rowErr.Reason, "name")
}

func TestValidateRowBadPrice(t *testing.T) {
	_, err := ValidateRow(rowFromStrings("Chair", "desc", "-5", "", "", "", "", "", ""), 1)
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, "Invalid price format", rowErr.Reason)

	_, err = ValidateRow(rowFromStrings("Chair", "desc", "", "", "", "", "", "", ""), 1)
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, "Price is required", rowErr.Reason)
}

func TestValidateRowShortSKU(t *testing.T) {
	_, err := ValidateRow(rowFromStrings("Chair", "desc", "10", "office", "BrandX", "CH", "5", "", ""), 1)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Contains(t, rowErr.Reason, "SKU")
}

func TestValidateRowOptionalFieldsDegrade(t *testing.T) {
	// bad stock degrades to the default instead of failing the row
	record, err := ValidateRow(rowFromStrings("Lamp", "", "49.5", "", "", "", "-2", "", ""), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, record.StockQuantity)
	assert.Nil(t, record.Description)
	assert.Nil(t, record.Category)
	assert.Nil(t, record.Brand)
	assert.Nil(t, record.SKU)
	assert.Nil(t, record.ImageURL)
	assert.Nil(t, record.Tags)
}

func TestUpdateFieldsOmitsAbsentColumns(t *testing.T) {
	record, err := ValidateRow(rowFromStrings("Chair", "", "10", "", "", "CH1", "", "", ""), 1)
	require.NoError(t, err)

	fields := record.UpdateFields()
	assert.Equal(t, "Chair", fields["name"])
	assert.Equal(t, "CH1", fields["sku"])
	assert.Equal(t, true, fields["is_active"])
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "stock_quantity")
	assert.NotContains(t, fields, "description")
	assert.NotContains(t, fields, "category")
	assert.NotContains(t, fields, "brand")
	assert.NotContains(t, fields, "image_url")
	assert.NotContains(t, fields, "tags")
}

func TestNewProductDefaults(t *testing.T) {
	record, err := ValidateRow(rowFromStrings("Chair", "", "10", "", "", "CH1", "", "", ""), 1)
	require.NoError(t, err)

	product := record.NewProduct()
	assert.NotEmpty(t, product.ID)
	assert.True(t, product.IsActive)
	assert.Equal(t, 0, product.StockQuantity)
}
