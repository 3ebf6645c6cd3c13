package models

import "time"

// ImportError is a row-level failure attached to an import result.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportWarning is a non-fatal row-level notice, e.g. an upsert that updated
// an existing product instead of inserting a new one.
type ImportWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult is the per-file outcome of one bulk import. Errors and
// warnings are kept in ascending row order, matching the source file.
type ImportResult struct {
	Filename       string          `json:"filename"`
	TotalRows      int             `json:"total_rows"`
	SuccessfulRows int             `json:"successful_rows"`
	FailedRows     int             `json:"failed_rows"`
	Errors         []ImportError   `json:"errors"`
	Warnings       []ImportWarning `json:"warnings"`
}

// Upload history status tags.
const (
	ImportStatusSuccess = "success"
	ImportStatusPartial = "partial"
	ImportStatusFailed  = "failed"
)

// UploadHistory records one import invocation for auditing, together with the
// admin identity supplied by the caller.
type UploadHistory struct {
	ID             string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	AdminID        string    `json:"admin_id" gorm:"type:varchar(36);not null;index"`
	AdminUsername  string    `json:"admin_username" gorm:"size:50;not null"`
	Filename       string    `json:"filename" gorm:"size:255;not null"`
	TotalRows      int       `json:"total_rows" gorm:"default:0"`
	SuccessfulRows int       `json:"successful_rows" gorm:"default:0"`
	FailedRows     int       `json:"failed_rows" gorm:"default:0"`
	Status         string    `json:"status" gorm:"size:20;not null"`
	ErrorDetails   *string   `json:"error_details,omitempty" gorm:"type:jsonb"`
	UploadedAt     time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

func (UploadHistory) TableName() string {
	return "upload_history"
}
