package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	ImportQueueKey    = "bulk_import:queue"
	ImportJobKeyFmt   = "bulk_import:job:%s"
	ImportJobTTL      = 24 * time.Hour
	importJobDeadline = 10 * time.Minute
)

// ImportJob is the metadata stored on the Redis job key while an async
// import moves through pending -> processing -> done/failed.
type ImportJob struct {
	Status     string      `json:"status"`
	CreatedAt  string      `json:"created_at"`
	FilePath   string      `json:"file_path"`
	Filename   string      `json:"filename"`
	SkipHeader bool        `json:"skip_header"`
	Result     interface{} `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// StartImportWorker consumes job IDs from the Redis queue and processes the
// staged workbook files sequentially. One worker per process is enough:
// imports are deliberately not run concurrently against the same catalog.
func StartImportWorker(ctx context.Context, rdb *redis.Client, importer *ImportService, storageDir string) {
	if rdb == nil || importer == nil {
		zap.L().Warn("bulk import worker not started: missing dependencies")
		return
	}
	if storageDir == "" {
		storageDir = "./data/bulk_imports"
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		zap.L().Error("failed to create bulk storage dir", zap.Error(err))
		return
	}

	go func() {
		zap.L().Info("bulk import worker started", zap.String("queue", ImportQueueKey), zap.String("dir", storageDir))
		for {
			select {
			case <-ctx.Done():
				zap.L().Info("bulk import worker stopping")
				return
			default:
			}

			// BLPop with no timeout blocks until an item is available.
			res, err := rdb.BLPop(ctx, 0*time.Second, ImportQueueKey).Result()
			if err != nil {
				if err == context.Canceled || err == context.DeadlineExceeded {
					return
				}
				zap.L().Error("redis BLPop failed", zap.Error(err))
				time.Sleep(500 * time.Millisecond)
				continue
			}
			if len(res) < 2 {
				continue
			}
			processImportJob(ctx, rdb, importer, res[1])
		}
	}()
}

func processImportJob(ctx context.Context, rdb *redis.Client, importer *ImportService, jobID string) {
	jobKey := fmt.Sprintf(ImportJobKeyFmt, jobID)

	val, err := rdb.Get(ctx, jobKey).Result()
	if err != nil {
		zap.L().Error("failed to read job metadata", zap.String("job", jobID), zap.Error(err))
		return
	}
	var job ImportJob
	if err := json.Unmarshal([]byte(val), &job); err != nil {
		zap.L().Error("failed to parse job metadata", zap.String("job", jobID), zap.Error(err))
		return
	}

	job.Status = "processing"
	storeImportJob(ctx, rdb, jobKey, &job)

	raw, err := os.ReadFile(filepath.Clean(job.FilePath))
	if err != nil {
		job.Status = "failed"
		job.Error = fmt.Sprintf("failed to read staged file: %v", err)
		storeImportJob(ctx, rdb, jobKey, &job)
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, importJobDeadline)
	defer cancel()

	result, err := importer.ProcessImport(jobCtx, raw, job.Filename, ImportOptions{SkipHeader: job.SkipHeader})
	if err != nil {
		job.Status = "failed"
		job.Error = err.Error()
		if errors.Is(err, ErrUnreadableFile) && result != nil && len(result.Errors) > 0 {
			job.Error = result.Errors[0].Error
		}
	} else {
		job.Status = "done"
		job.Result = result
	}
	storeImportJob(ctx, rdb, jobKey, &job)

	if err := os.Remove(job.FilePath); err != nil {
		zap.L().Warn("failed to remove staged import file", zap.String("path", job.FilePath), zap.Error(err))
	}
}

func storeImportJob(ctx context.Context, rdb *redis.Client, jobKey string, job *ImportJob) {
	data, err := json.Marshal(job)
	if err != nil {
		zap.L().Error("failed to marshal job metadata", zap.Error(err))
		return
	}
	if err := rdb.Set(ctx, jobKey, data, ImportJobTTL).Err(); err != nil {
		zap.L().Error("failed to store job metadata", zap.Error(err))
	}
}
