package controllers

import (
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ginContextWithQuery(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	rv := NewRequestValidator()

	page, perPage, err := rv.ParsePagination(ginContextWithQuery(""))
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, perPage)

	page, perPage, err = rv.ParsePagination(ginContextWithQuery("page=3&perPage=500"))
	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, MaxPageSize, perPage)

	_, _, err = rv.ParsePagination(ginContextWithQuery("page=0"))
	assert.Error(t, err)

	_, _, err = rv.ParsePagination(ginContextWithQuery("perPage=abc"))
	assert.Error(t, err)
}

func TestParseListParams(t *testing.T) {
	rv := NewRequestValidator()

	params, err := rv.ParseListParams(ginContextWithQuery("category=Office&minPrice=10&maxPrice=100&in_stock=true"))
	require.NoError(t, err)
	assert.Equal(t, "Office", params.Category)
	require.NotNil(t, params.MinPrice)
	assert.Equal(t, 10.0, *params.MinPrice)
	require.NotNil(t, params.MaxPrice)
	assert.Equal(t, 100.0, *params.MaxPrice)
	require.NotNil(t, params.InStock)
	assert.True(t, *params.InStock)

	_, err = rv.ParseListParams(ginContextWithQuery("minPrice=100&maxPrice=10"))
	assert.Error(t, err)

	_, err = rv.ParseListParams(ginContextWithQuery("in_stock=maybe"))
	assert.Error(t, err)
}

func fileHeader(filename, contentType string) *multipart.FileHeader {
	header := make(textproto.MIMEHeader)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{Filename: filename, Header: header}
}

func TestIsValidExcelFile(t *testing.T) {
	rv := NewRequestValidator()

	assert.True(t, rv.IsValidExcelFile(fileHeader("products.xlsx", "")))
	assert.True(t, rv.IsValidExcelFile(fileHeader("PRODUCTS.XLSX", "")))
	assert.True(t, rv.IsValidExcelFile(fileHeader("macro.xlsm", "")))
	assert.True(t, rv.IsValidExcelFile(fileHeader("anything.bin", excelContentType)))
	assert.False(t, rv.IsValidExcelFile(fileHeader("products.csv", "text/csv")))
	assert.False(t, rv.IsValidExcelFile(fileHeader("products.xls", "application/vnd.ms-excel")))
}

func TestValidateFileSize(t *testing.T) {
	rv := NewRequestValidator()

	assert.NoError(t, rv.ValidateFileSize(&multipart.FileHeader{Size: MaxUploadSize}))
	assert.Error(t, rv.ValidateFileSize(&multipart.FileHeader{Size: MaxUploadSize + 1}))
}
