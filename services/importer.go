package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"catalog-service/models"
	"catalog-service/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportOptions control how the raw table is interpreted.
type ImportOptions struct {
	// SkipHeader treats the first row of the sheet as column headers rather
	// than data. The canonical import format ships header-less files, so the
	// zero value matches that convention; exported files need it set because
	// export always writes a header row.
	SkipHeader bool
}

// ImportService drives one bulk import: parse the workbook, validate and
// reconcile each row inside a single transaction, commit once at the end.
type ImportService struct {
	repo    repository.ProductRepository
	matcher Matcher
}

func NewImportService(repo repository.ProductRepository, matcher Matcher) *ImportService {
	if matcher == nil {
		matcher = CompositeMatcher{}
	}
	return &ImportService{repo: repo, matcher: matcher}
}

// ErrUnreadableFile marks an upload that could not be parsed as a workbook at
// all. ProcessImport still returns a result alongside it, carrying the parse
// error at row 0 with zero rows processed.
var ErrUnreadableFile = errors.New("unreadable workbook")

// ProcessImport imports all rows of an uploaded workbook. Row-level problems
// are collected on the result and never abort the loop; only an unreadable
// file (ErrUnreadableFile, with the parse error also on the result) or a
// failed final commit (with every row discarded) return an error. A nil error
// means the batch committed, so the result's counts are always durable.
func (s *ImportService) ProcessImport(ctx context.Context, raw []byte, filename string, opts ImportOptions) (*models.ImportResult, error) {
	result := &models.ImportResult{
		Filename: filename,
		Errors:   []models.ImportError{},
		Warnings: []models.ImportWarning{},
	}

	rows, err := parseWorkbook(raw)
	if err != nil {
		zap.L().Error("Failed to parse import file", zap.String("filename", filename), zap.Error(err))
		result.Errors = append(result.Errors, models.ImportError{
			Row:   0,
			Error: fmt.Sprintf("Failed to read Excel file: %v", err),
		})
		return result, ErrUnreadableFile
	}
	if opts.SkipHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	result.TotalRows = len(rows)
	if len(rows) == 0 {
		result.Errors = append(result.Errors, models.ImportError{Row: 0, Error: "Empty file or no data found"})
		return result, nil
	}

	batch, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open import batch: %w", err)
	}

	for i, cells := range rows {
		rowNumber := i + 1

		record, err := ValidateRow(cells, rowNumber)
		if err != nil {
			if errors.Is(err, ErrSkipRow) {
				continue
			}
			result.FailedRows++
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				result.Errors = append(result.Errors, models.ImportError{Row: rowNumber, Error: rowErr.Reason})
			} else {
				result.Errors = append(result.Errors, models.ImportError{Row: rowNumber, Error: err.Error()})
			}
			continue
		}

		if s.reconcile(ctx, batch, record, rowNumber, result) {
			result.SuccessfulRows++
		} else {
			result.FailedRows++
		}
	}

	if err := batch.Commit(); err != nil {
		batch.Rollback()
		zap.L().Error("Import batch commit failed, all rows discarded",
			zap.String("filename", filename), zap.Error(err))
		return nil, fmt.Errorf("failed to commit import batch: %w", err)
	}

	zap.L().Info("Import completed",
		zap.String("filename", filename),
		zap.Int("successful", result.SuccessfulRows),
		zap.Int("failed", result.FailedRows),
	)
	return result, nil
}

// reconcile applies the upsert policy for one validated record. Returns true
// when the row counts as a success. Store failures roll back to the row's
// savepoint so the rest of the batch survives.
func (s *ImportService) reconcile(ctx context.Context, batch repository.ProductBatch, record *NormalizedRecord, rowNumber int, result *models.ImportResult) bool {
	savepoint := fmt.Sprintf("row_%d", rowNumber)
	if err := batch.SavePoint(savepoint); err != nil {
		result.Errors = append(result.Errors, storeError(rowNumber, err))
		return false
	}

	existing, err := s.matcher.Match(ctx, batch, record)
	if err != nil {
		if rbErr := batch.RollbackTo(savepoint); rbErr != nil {
			zap.L().Error("Row rollback failed", zap.Int("row", rowNumber), zap.Error(rbErr))
		}
		result.Errors = append(result.Errors, storeError(rowNumber, err))
		return false
	}

	if existing != nil {
		if err := batch.Update(ctx, existing.ID, record.UpdateFields()); err != nil {
			if rbErr := batch.RollbackTo(savepoint); rbErr != nil {
				zap.L().Error("Row rollback failed", zap.Int("row", rowNumber), zap.Error(rbErr))
			}
			result.Errors = append(result.Errors, storeError(rowNumber, err))
			return false
		}
		result.Warnings = append(result.Warnings, models.ImportWarning{
			Row:     rowNumber,
			Message: fmt.Sprintf("Updated existing product: %s", record.Name),
		})
		return true
	}

	if err := batch.Insert(ctx, record.NewProduct()); err != nil {
		if rbErr := batch.RollbackTo(savepoint); rbErr != nil {
			zap.L().Error("Row rollback failed", zap.Int("row", rowNumber), zap.Error(rbErr))
		}
		result.Errors = append(result.Errors, storeError(rowNumber, err))
		return false
	}
	return true
}

func storeError(row int, err error) models.ImportError {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ImportError{Row: row, Error: "Database constraint error: Duplicate SKU or name"}
	}
	return models.ImportError{Row: row, Error: fmt.Sprintf("Failed to save product: %v", err)}
}

// parseWorkbook reads the first sheet into a rectangular table of cells.
// Short rows are padded with empty cells to the fixed column count.
func parseWorkbook(raw []byte) ([][]Cell, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	table := make([][]Cell, len(rows))
	for i, row := range rows {
		cells := make([]Cell, columnCount)
		for j := 0; j < columnCount && j < len(row); j++ {
			cells[j] = NewCell(row[j])
		}
		table[i] = cells
	}
	return table, nil
}
