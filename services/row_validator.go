package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"catalog-service/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Column layout of an import sheet. Export writes the same nine columns in
// the same order so a downloaded file can be re-uploaded unchanged.
const (
	colName = iota
	colDescription
	colPrice
	colCategory
	colBrand
	colSKU
	colStockQuantity
	colImageURL
	colTags

	columnCount = 9
)

// minSKULength is the shortest SKU accepted after normalization.
const minSKULength = 3

// ErrSkipRow marks a row made entirely of empty cells. Such rows are skipped
// silently and count as neither success nor failure.
var ErrSkipRow = errors.New("row is empty")

// RowError is a validation failure for one row.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// NormalizedRecord is the validated, typed form of one imported row. Nil
// pointer fields were absent on the row and must not overwrite existing
// values during an update.
type NormalizedRecord struct {
	Name          string
	Description   *string
	Price         decimal.Decimal
	Category      *string
	Brand         *string
	SKU           *string
	StockQuantity int
	ImageURL      *string
	Tags          models.TagList
}

// NewProduct builds a fresh catalog entry from the record.
func (r *NormalizedRecord) NewProduct() *models.Product {
	return &models.Product{
		ID:            uuid.NewString(),
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Category:      r.Category,
		Brand:         r.Brand,
		SKU:           r.SKU,
		StockQuantity: r.StockQuantity,
		ImageURL:      r.ImageURL,
		Tags:          r.Tags,
		IsActive:      true,
	}
}

// UpdateFields returns only the columns present on the incoming row. Fields
// absent on the row are left untouched on the matched entry.
func (r *NormalizedRecord) UpdateFields() map[string]interface{} {
	fields := map[string]interface{}{
		"name":           r.Name,
		"price":          r.Price,
		"stock_quantity": r.StockQuantity,
		"is_active":      true,
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Brand != nil {
		fields["brand"] = *r.Brand
	}
	if r.SKU != nil {
		fields["sku"] = *r.SKU
	}
	if r.ImageURL != nil {
		fields["image_url"] = *r.ImageURL
	}
	if len(r.Tags) > 0 {
		fields["tags"] = r.Tags
	}
	return fields
}

// ValidateRow turns one raw row into a NormalizedRecord. Name and price are
// strict; SKU must be at least three characters when present; enrichment
// fields degrade to absent on coercion failure instead of failing the row.
// Pure: no side effects on any input.
func ValidateRow(cells []Cell, rowNumber int) (*NormalizedRecord, error) {
	padded := make([]Cell, columnCount)
	copy(padded, cells)

	empty := true
	for _, c := range padded {
		if !c.IsEmpty() {
			empty = false
			break
		}
	}
	if empty {
		return nil, ErrSkipRow
	}

	if padded[colName].IsEmpty() {
		return nil, &RowError{Row: rowNumber, Reason: "Product name is required"}
	}
	record := &NormalizedRecord{Name: padded[colName].Text}

	if padded[colPrice].IsEmpty() {
		return nil, &RowError{Row: rowNumber, Reason: "Price is required"}
	}
	price, err := CoercePrice(padded[colPrice])
	if err != nil {
		return nil, &RowError{Row: rowNumber, Reason: "Invalid price format"}
	}
	record.Price = price

	if sku := NormalizeSKU(padded[colSKU]); sku != "" {
		if utf8.RuneCountInString(sku) < minSKULength {
			return nil, &RowError{Row: rowNumber, Reason: fmt.Sprintf("SKU must be at least %d characters", minSKULength)}
		}
		record.SKU = &sku
	}

	// Stock is an enrichment field: a bad value degrades to the default
	// instead of failing the row.
	if stock, err := CoerceStock(padded[colStockQuantity]); err == nil {
		record.StockQuantity = stock
	}

	if !padded[colDescription].IsEmpty() {
		description := padded[colDescription].Text
		record.Description = &description
	}
	if category := NormalizeCategory(padded[colCategory]); category != "" {
		record.Category = &category
	}
	if !padded[colBrand].IsEmpty() {
		brand := padded[colBrand].Text
		record.Brand = &brand
	}
	if !padded[colImageURL].IsEmpty() {
		imageURL := padded[colImageURL].Text
		record.ImageURL = &imageURL
	}
	record.Tags = CoerceTags(padded[colTags])

	return record, nil
}
