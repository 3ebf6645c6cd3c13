package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CellKind discriminates the closed set of cell variants a parsed sheet can
// contain. Coercion functions switch exhaustively over it.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellUnsupported
)

// Cell is one untyped spreadsheet cell. Number cells also carry their
// original text form so label-like coercions (tags, SKU) can reuse it.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// NewCell classifies a raw cell value. Whitespace-only values are empty and
// numeric-looking text becomes a number cell.
func NewCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{Kind: CellEmpty}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Cell{Kind: CellNumber, Text: trimmed, Number: n}
	}
	return Cell{Kind: CellText, Text: trimmed}
}

func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

var (
	ErrInvalidPrice = errors.New("invalid price")
	ErrInvalidStock = errors.New("invalid stock quantity")
)

// CoercePrice converts a cell into a positive price rounded half-up to two
// decimal places. Empty, non-numeric and non-positive values are all
// ErrInvalidPrice.
func CoercePrice(c Cell) (decimal.Decimal, error) {
	var price decimal.Decimal
	switch c.Kind {
	case CellNumber:
		price = decimal.NewFromFloat(c.Number)
	case CellText:
		parsed, err := decimal.NewFromString(c.Text)
		if err != nil {
			return decimal.Zero, ErrInvalidPrice
		}
		price = parsed
	case CellEmpty, CellUnsupported:
		return decimal.Zero, ErrInvalidPrice
	default:
		return decimal.Zero, ErrInvalidPrice
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidPrice
	}
	return price.Round(2), nil
}

// CoerceStock converts a cell into a non-negative stock count, truncating
// fractional values. An empty cell defaults to zero.
func CoerceStock(c Cell) (int, error) {
	var stock int
	switch c.Kind {
	case CellEmpty:
		return 0, nil
	case CellNumber:
		stock = int(c.Number)
	case CellText:
		parsed, err := strconv.ParseFloat(c.Text, 64)
		if err != nil {
			return 0, ErrInvalidStock
		}
		stock = int(parsed)
	case CellUnsupported:
		return 0, ErrInvalidStock
	default:
		return 0, ErrInvalidStock
	}
	if stock < 0 {
		return 0, ErrInvalidStock
	}
	return stock, nil
}

// CoerceTags splits a comma-separated cell into trimmed labels, dropping
// empties. A cell with no usable labels collapses to nil, never an empty set.
func CoerceTags(c Cell) []string {
	if c.Kind == CellEmpty || c.Kind == CellUnsupported {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(c.Text, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// NormalizeCategory trims and title-cases each word of a category label.
func NormalizeCategory(c Cell) string {
	if c.IsEmpty() {
		return ""
	}
	return cases.Title(language.English).String(c.Text)
}

// NormalizeSKU trims, uppercases and strips internal spaces.
func NormalizeSKU(c Cell) string {
	if c.IsEmpty() {
		return ""
	}
	return strings.ToUpper(strings.Join(strings.Fields(c.Text), ""))
}
