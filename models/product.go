package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TagList stores product tags as a JSON array column.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return nil, nil
	}
	return json.Marshal([]string(t))
}

func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}
	if len(b) == 0 {
		*t = nil
		return nil
	}
	return json.Unmarshal(b, t)
}

// Product is a catalog entry. Deactivation is a soft delete: IsActive is
// flipped off instead of removing the row.
type Product struct {
	ID            string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name          string          `json:"name" gorm:"size:255;not null;index"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Category      *string         `json:"category" gorm:"size:100;index"`
	Brand         *string         `json:"brand" gorm:"size:100"`
	SKU           *string         `json:"sku" gorm:"size:100;uniqueIndex"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null;default:0"`
	IsActive      bool            `json:"is_active" gorm:"not null;default:true;index"`
	ImageURL      *string         `json:"image_url"`
	Tags          TagList         `json:"tags" gorm:"type:jsonb"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// ExportFilter narrows the set of products written to an export file.
type ExportFilter struct {
	IncludeInactive bool
	Category        string
	Brand           string
}

// ListProductsParams defines the parameters for listing products.
type ListProductsParams struct {
	Page     int
	PerPage  int
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	InStock  *bool // pointer to distinguish between false and not set
}
