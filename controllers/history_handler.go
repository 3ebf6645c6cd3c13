package controllers

import (
	"context"
	"net/http"
	"time"

	"catalog-service/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HistoryHandler lists past import audit records.
type HistoryHandler struct {
	history   repository.UploadHistoryRepository
	validator *RequestValidator
	timeout   time.Duration
}

func NewHistoryHandler(history repository.UploadHistoryRepository, validator *RequestValidator) *HistoryHandler {
	return &HistoryHandler{
		history:   history,
		validator: validator,
		timeout:   DefaultContextTimeout,
	}
}

func (h *HistoryHandler) ListUploads(c *gin.Context) {
	page, perPage, err := h.validator.ParsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	records, total, err := h.history.List(ctx, page, perPage)
	if err != nil {
		zap.L().Error("Failed to list upload history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch upload history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": records,
		"total": total,
		"page":  page,
		"size":  perPage,
	})
}
