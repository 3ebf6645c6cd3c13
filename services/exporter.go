package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"catalog-service/models"
	"catalog-service/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Products"

// maxExportColWidth caps the fitted column widths so long descriptions do not
// blow up the sheet.
const maxExportColWidth = 50

// exportHeaders mirror the import column layout exactly; a downloaded file
// can be re-uploaded unchanged (minus the header row).
var exportHeaders = []string{
	"Product Name",
	"Description",
	"Price",
	"Category",
	"Brand",
	"SKU",
	"Stock Quantity",
	"Image URL",
	"Tags",
}

// ExportService regenerates the canonical tabular representation of the
// catalog for download.
type ExportService struct {
	repo repository.ProductRepository
}

func NewExportService(repo repository.ProductRepository) *ExportService {
	return &ExportService{repo: repo}
}

// Export writes all products matching the filter into a styled workbook,
// newest first. Absent optional fields serialize to empty strings.
func (s *ExportService) Export(ctx context.Context, filter models.ExportFilter) (*bytes.Buffer, error) {
	products, err := s.repo.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query products for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
	})
	if err != nil {
		return nil, err
	}

	headers := make([]interface{}, len(exportHeaders))
	widths := make([]int, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
		widths[i] = len(h)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "I1", headerStyle); err != nil {
		return nil, err
	}

	for i := range products {
		row := exportRow(&products[i])
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
		for j, value := range row {
			if width := len(fmt.Sprint(value)); width > widths[j] {
				widths[j] = width
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if width > maxExportColWidth-2 {
			width = maxExportColWidth - 2
		}
		if err := f.SetColWidth(exportSheet, col, col, float64(width+2)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to generate Excel file: %w", err)
	}

	zap.L().Info("Exported products", zap.Int("count", len(products)), zap.Bool("include_inactive", filter.IncludeInactive))
	return buf, nil
}

// Filename derives a deterministic download name from the status tag and a
// capture timestamp.
func (s *ExportService) Filename(includeInactive bool) string {
	status := "active"
	if includeInactive {
		status = "all"
	}
	return fmt.Sprintf("products_%s_%s.xlsx", status, time.Now().UTC().Format("20060102_150405"))
}

func exportRow(p *models.Product) []interface{} {
	return []interface{}{
		p.Name,
		stringOrEmpty(p.Description),
		p.Price.InexactFloat64(),
		stringOrEmpty(p.Category),
		stringOrEmpty(p.Brand),
		stringOrEmpty(p.SKU),
		p.StockQuantity,
		stringOrEmpty(p.ImageURL),
		strings.Join(p.Tags, ", "),
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
