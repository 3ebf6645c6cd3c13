package services

import (
	"context"
	"errors"

	"catalog-service/models"
	"catalog-service/repository"

	"gorm.io/gorm"
)

// Matcher decides which existing catalog entry an incoming record refers to.
// Returning (nil, nil) means no match, so the record inserts a new entry.
type Matcher interface {
	Match(ctx context.Context, batch repository.ProductBatch, record *NormalizedRecord) (*models.Product, error)
}

// ExactSKUMatcher matches on SKU only. Records without a SKU never match.
type ExactSKUMatcher struct{}

func (ExactSKUMatcher) Match(ctx context.Context, batch repository.ProductBatch, record *NormalizedRecord) (*models.Product, error) {
	if record.SKU == nil {
		return nil, nil
	}
	return ignoreNotFound(batch.FindBySKU(ctx, *record.SKU))
}

// ExactNameMatcher matches on the normalized product name only.
type ExactNameMatcher struct{}

func (ExactNameMatcher) Match(ctx context.Context, batch repository.ProductBatch, record *NormalizedRecord) (*models.Product, error) {
	return ignoreNotFound(batch.FindByName(ctx, record.Name))
}

// CompositeMatcher is the default upsert policy: SKU is the authoritative
// identity when supplied, name is the fallback for SKU-less rows. Two
// distinct products that happen to share a normalized name will be merged
// into one entry; substitute ExactSKUMatcher for a stricter policy.
type CompositeMatcher struct{}

func (CompositeMatcher) Match(ctx context.Context, batch repository.ProductBatch, record *NormalizedRecord) (*models.Product, error) {
	if record.SKU != nil {
		product, err := ignoreNotFound(batch.FindBySKU(ctx, *record.SKU))
		if err != nil || product != nil {
			return product, err
		}
	}
	return ignoreNotFound(batch.FindByName(ctx, record.Name))
}

func ignoreNotFound(product *models.Product, err error) (*models.Product, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}
