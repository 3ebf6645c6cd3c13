package services

import (
	"context"

	"catalog-service/models"
	"catalog-service/repository"
)

// CatalogService serves the read-only product listing.
type CatalogService struct {
	repo repository.ProductRepository
}

func NewCatalogService(repo repository.ProductRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListProducts(ctx context.Context, params models.ListProductsParams) ([]models.Product, int64, error) {
	return s.repo.List(ctx, params)
}
