package repository

import (
	"context"

	"catalog-service/models"

	"gorm.io/gorm"
)

// ProductBatch is the unit of work for one import. Reads inside a batch
// observe earlier writes of the same batch; nothing becomes visible to other
// callers until Commit. Row-level failures are undone with savepoints so one
// bad row never poisons the rest of the batch.
type ProductBatch interface {
	FindBySKU(ctx context.Context, sku string) (*models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	SavePoint(name string) error
	RollbackTo(name string) error
	Commit() error
	Rollback() error
}

type ProductRepository interface {
	Begin(ctx context.Context) (ProductBatch, error)
	Query(ctx context.Context, filter models.ExportFilter) ([]models.Product, error)
	List(ctx context.Context, params models.ListProductsParams) ([]models.Product, int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Begin(ctx context.Context) (ProductBatch, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &productBatch{tx: tx}, nil
}

func (r *productRepository) Query(ctx context.Context, filter models.ExportFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category ILIKE ?", "%"+filter.Category+"%")
	}
	if filter.Brand != "" {
		query = query.Where("brand ILIKE ?", "%"+filter.Brand+"%")
	}

	var products []models.Product
	err := query.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepository) List(ctx context.Context, params models.ListProductsParams) ([]models.Product, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = 10
	}
	if params.PerPage > 100 {
		params.PerPage = 100
	}

	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)

	if params.Category != "" {
		query = query.Where("category ILIKE ?", "%"+params.Category+"%")
	}
	if params.Brand != "" {
		query = query.Where("brand ILIKE ?", "%"+params.Brand+"%")
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}
	if params.InStock != nil {
		if *params.InStock {
			query = query.Where("stock_quantity > 0")
		} else {
			query = query.Where("stock_quantity = 0")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	offset := (params.Page - 1) * params.PerPage
	err := query.Order("created_at DESC").
		Limit(params.PerPage).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

type productBatch struct {
	tx *gorm.DB
}

func (b *productBatch) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := b.tx.WithContext(ctx).Where("sku = ?", sku).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (b *productBatch) FindByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	if err := b.tx.WithContext(ctx).Where("name = ?", name).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (b *productBatch) Insert(ctx context.Context, product *models.Product) error {
	return b.tx.WithContext(ctx).Create(product).Error
}

func (b *productBatch) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return b.tx.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (b *productBatch) SavePoint(name string) error {
	return b.tx.SavePoint(name).Error
}

func (b *productBatch) RollbackTo(name string) error {
	return b.tx.RollbackTo(name).Error
}

func (b *productBatch) Commit() error {
	return b.tx.Commit().Error
}

func (b *productBatch) Rollback() error {
	return b.tx.Rollback().Error
}
