package controllers

import (
	"bytes"
	"context"
	"time"

	"catalog-service/models"
	"catalog-service/services"
)

const (
	// DefaultContextTimeout bounds each request's work against the store.
	DefaultContextTimeout = 30 * time.Second

	// DefaultCacheTTL is how long cached product listings stay fresh.
	DefaultCacheTTL = 5 * time.Minute
)

// ImportServiceAPI is what the import handler needs from the engine.
type ImportServiceAPI interface {
	ProcessImport(ctx context.Context, raw []byte, filename string, opts services.ImportOptions) (*models.ImportResult, error)
}

// ExportServiceAPI is what the export handler needs from the engine.
type ExportServiceAPI interface {
	Export(ctx context.Context, filter models.ExportFilter) (*bytes.Buffer, error)
	Filename(includeInactive bool) string
}

// CatalogServiceAPI serves the public listing surface.
type CatalogServiceAPI interface {
	ListProducts(ctx context.Context, params models.ListProductsParams) ([]models.Product, int64, error)
}
