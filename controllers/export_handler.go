package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves catalog downloads in the import-compatible format.
type ExportHandler struct {
	exporter  ExportServiceAPI
	validator *RequestValidator
	timeout   time.Duration
}

func NewExportHandler(exporter ExportServiceAPI, validator *RequestValidator) *ExportHandler {
	return &ExportHandler{
		exporter:  exporter,
		validator: validator,
		timeout:   DefaultContextTimeout,
	}
}

// DownloadProducts streams the filtered catalog as an Excel attachment.
func (h *ExportHandler) DownloadProducts(c *gin.Context) {
	filter, err := h.validator.ParseExportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	buf, err := h.exporter.Export(ctx, filter)
	if err != nil {
		zap.L().Error("Product export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate Excel file"})
		return
	}

	filename := h.exporter.Filename(filter.IncludeInactive)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, excelContentType, buf.Bytes())
}
