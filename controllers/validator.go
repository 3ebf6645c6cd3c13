package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"catalog-service/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Validation constants
const (
	MaxPageSize   = 100
	MaxPageNumber = 1000000
	MaxUploadSize = 10 * 1024 * 1024 // 10MB
)

var allowedExcelExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

var allowedExcelContentTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel.sheet.macroenabled.12":                    true,
	"application/octet-stream":                                          true,
}

type exportQuery struct {
	IncludeInactive bool   `form:"include_inactive"`
	Category        string `form:"category" validate:"omitempty,max=100"`
	Brand           string `form:"brand" validate:"omitempty,max=100"`
}

// RequestValidator handles all input validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// ParsePagination validates and parses pagination parameters
func (rv *RequestValidator) ParsePagination(c *gin.Context) (int, int, error) {
	pageStr := c.DefaultQuery("page", "1")
	perPageStr := c.DefaultQuery("perPage", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, errors.New("invalid page number")
	}
	if page > MaxPageNumber {
		page = MaxPageNumber
	}

	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		return 0, 0, errors.New("invalid page size")
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	return page, perPage, nil
}

// ParseExportFilter validates and parses the export filter parameters.
func (rv *RequestValidator) ParseExportFilter(c *gin.Context) (models.ExportFilter, error) {
	var query exportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return models.ExportFilter{}, fmt.Errorf("invalid export parameters: %w", err)
	}
	if err := rv.validate.Struct(&query); err != nil {
		return models.ExportFilter{}, fmt.Errorf("invalid export parameters: %w", err)
	}
	return models.ExportFilter{
		IncludeInactive: query.IncludeInactive,
		Category:        strings.TrimSpace(query.Category),
		Brand:           strings.TrimSpace(query.Brand),
	}, nil
}

// ParseListParams validates and parses product listing filters.
func (rv *RequestValidator) ParseListParams(c *gin.Context) (models.ListProductsParams, error) {
	page, perPage, err := rv.ParsePagination(c)
	if err != nil {
		return models.ListProductsParams{}, err
	}

	params := models.ListProductsParams{
		Page:     page,
		PerPage:  perPage,
		Category: strings.TrimSpace(c.Query("category")),
		Brand:    strings.TrimSpace(c.Query("brand")),
	}

	if minPriceStr := strings.TrimSpace(c.Query("minPrice")); minPriceStr != "" {
		parsed, err := strconv.ParseFloat(minPriceStr, 64)
		if err != nil || parsed < 0 {
			return models.ListProductsParams{}, errors.New("invalid minPrice value")
		}
		params.MinPrice = &parsed
	}
	if maxPriceStr := strings.TrimSpace(c.Query("maxPrice")); maxPriceStr != "" {
		parsed, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil || parsed < 0 {
			return models.ListProductsParams{}, errors.New("invalid maxPrice value")
		}
		params.MaxPrice = &parsed
	}
	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		return models.ListProductsParams{}, errors.New("minPrice must be less than or equal to maxPrice")
	}

	if inStockStr := strings.TrimSpace(c.Query("in_stock")); inStockStr != "" {
		v, err := strconv.ParseBool(inStockStr)
		if err != nil {
			return models.ListProductsParams{}, errors.New("invalid boolean value for 'in_stock'")
		}
		params.InStock = &v
	}

	return params, nil
}

// IsValidExcelFile checks if the upload looks like an XLSX workbook.
func (rv *RequestValidator) IsValidExcelFile(file *multipart.FileHeader) bool {
	if allowedExcelContentTypes[file.Header.Get("Content-Type")] {
		return true
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	return allowedExcelExtensions[ext]
}

// ValidateFileSize checks if file size is within limits
func (rv *RequestValidator) ValidateFileSize(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file too large (max %dMB)", MaxUploadSize/(1024*1024))
	}
	return nil
}
