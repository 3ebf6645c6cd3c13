package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalog-service/models"
	"catalog-service/repository"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportHandler handles bulk product import operations
type ImportHandler struct {
	importer   ImportServiceAPI
	history    repository.UploadHistoryRepository
	redis      *redis.Client
	cache      *CacheManager
	validator  *RequestValidator
	storageDir string
	timeout    time.Duration
}

func NewImportHandler(importer ImportServiceAPI, history repository.UploadHistoryRepository, redis *redis.Client, cache *CacheManager, validator *RequestValidator, storageDir string) *ImportHandler {
	if storageDir == "" {
		storageDir = "./data/bulk_imports"
	}
	return &ImportHandler{
		importer:   importer,
		history:    history,
		redis:      redis,
		cache:      cache,
		validator:  validator,
		storageDir: storageDir,
		timeout:    DefaultContextTimeout,
	}
}

// ImportProducts imports products from an uploaded Excel workbook. Row-level
// failures still return 200 with the per-row breakdown; only an unreadable
// request or a failed batch commit produce an error status.
func (h *ImportHandler) ImportProducts(c *gin.Context) {
	file, err := h.getAndValidateFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHandle, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer fileHandle.Close()

	raw, err := io.ReadAll(fileHandle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	opts := services.ImportOptions{
		SkipHeader: strings.EqualFold(strings.TrimSpace(c.Query("skip_header")), "true"),
	}

	if strings.EqualFold(strings.TrimSpace(c.Query("async")), "true") {
		h.handleAsyncImport(c, raw, file.Filename, opts)
		return
	}

	h.handleSyncImport(c, raw, file.Filename, opts)
}

// GetImportJobStatus returns the async job status/result stored in Redis.
func (h *ImportHandler) GetImportJobStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job ID required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	val, err := h.redis.Get(ctx, fmt.Sprintf(services.ImportJobKeyFmt, id)).Result()
	if err == redis.Nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		zap.L().Error("Failed to get job status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job status"})
		return
	}

	var job services.ImportJob
	if err := json.Unmarshal([]byte(val), &job); err != nil {
		zap.L().Error("Failed to parse job status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse job result"})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *ImportHandler) getAndValidateFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required")
	}

	if !h.validator.IsValidExcelFile(file) {
		return nil, fmt.Errorf("invalid file type. Only Excel (.xlsx) files are allowed")
	}

	if err := h.validator.ValidateFileSize(file); err != nil {
		return nil, err
	}

	return file, nil
}

func (h *ImportHandler) handleSyncImport(c *gin.Context, raw []byte, filename string, opts services.ImportOptions) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.importer.ProcessImport(ctx, raw, filename, opts)
	if err != nil {
		zap.L().Error("Bulk import processing failed", zap.Error(err))
		h.recordHistory(ctx, c, filename, result)
		c.JSON(http.StatusInternalServerError, gin.H{"error": importFailureMessage(result, err)})
		return
	}

	h.recordHistory(ctx, c, filename, result)

	if result.SuccessfulRows > 0 && h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			zap.L().Error("Failed to invalidate cache after bulk import", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, result)
}

func (h *ImportHandler) handleAsyncImport(c *gin.Context, raw []byte, filename string, opts services.ImportOptions) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	jobID, err := h.enqueueJob(ctx, raw, filename, opts)
	if err != nil {
		zap.L().Error("Failed to enqueue async bulk import", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue import job"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"job_id":  jobID,
		"message": "Import queued for processing",
	})
}

func (h *ImportHandler) enqueueJob(ctx context.Context, raw []byte, filename string, opts services.ImportOptions) (string, error) {
	if err := os.MkdirAll(h.storageDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	jobID := uuid.New().String()
	filePath := filepath.Join(h.storageDir, jobID+".xlsx")

	if err := os.WriteFile(filePath, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to persist file: %w", err)
	}

	job := services.ImportJob{
		Status:     "pending",
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		FilePath:   filePath,
		Filename:   filename,
		SkipHeader: opts.SkipHeader,
	}
	jobData, err := json.Marshal(job)
	if err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to marshal job info: %w", err)
	}

	jobKey := fmt.Sprintf(services.ImportJobKeyFmt, jobID)
	if err := h.redis.Set(ctx, jobKey, jobData, services.ImportJobTTL).Err(); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to store job metadata: %w", err)
	}

	if err := h.redis.RPush(ctx, services.ImportQueueKey, jobID).Err(); err != nil {
		os.Remove(filePath)
		h.redis.Del(ctx, jobKey)
		return "", fmt.Errorf("failed to enqueue job: %w", err)
	}

	zap.L().Info("Bulk import job queued", zap.String("job_id", jobID))
	return jobID, nil
}

// recordHistory writes the audit record for one import call. Fatal imports
// pass a nil result (commit failure) or one with zero counts and only the
// parse diagnostic (unreadable file); either way the record lands as failed.
func (h *ImportHandler) recordHistory(ctx context.Context, c *gin.Context, filename string, result *models.ImportResult) {
	if h.history == nil {
		return
	}

	record := &models.UploadHistory{
		ID:            uuid.New().String(),
		AdminID:       c.GetHeader("X-Admin-ID"),
		AdminUsername: c.GetHeader("X-Admin-Username"),
		Filename:      filename,
		Status:        models.ImportStatusFailed,
	}
	if record.AdminID == "" {
		record.AdminID = "unknown"
	}
	if record.AdminUsername == "" {
		record.AdminUsername = "unknown"
	}

	if result != nil {
		record.TotalRows = result.TotalRows
		record.SuccessfulRows = result.SuccessfulRows
		record.FailedRows = result.FailedRows
		record.Status = importStatus(result)

		if len(result.Errors) > 0 || len(result.Warnings) > 0 {
			details, err := json.Marshal(gin.H{"errors": result.Errors, "warnings": result.Warnings})
			if err == nil {
				detailsStr := string(details)
				record.ErrorDetails = &detailsStr
			}
		}
	}

	if err := h.history.Save(ctx, record); err != nil {
		zap.L().Error("Failed to record upload history", zap.Error(err))
	}
}

// importFailureMessage prefers the engine's own row-0 diagnostic for
// unreadable files over the bare error string.
func importFailureMessage(result *models.ImportResult, err error) string {
	if errors.Is(err, services.ErrUnreadableFile) && result != nil && len(result.Errors) > 0 {
		return result.Errors[0].Error
	}
	return err.Error()
}

func importStatus(result *models.ImportResult) string {
	switch {
	case len(result.Errors) == 0:
		return models.ImportStatusSuccess
	case result.SuccessfulRows > 0:
		return models.ImportStatusPartial
	default:
		return models.ImportStatusFailed
	}
}
