package services

import (
	"context"
	"errors"
	"testing"

	"catalog-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func TestExactSKUMatcher(t *testing.T) {
	existing := &models.Product{ID: "p1", Name: "Desk"}

	t.Run("matches on SKU", func(t *testing.T) {
		batch := new(MockProductBatch)
		batch.On("FindBySKU", mock.Anything, "SKU001").Return(existing, nil)

		got, err := ExactSKUMatcher{}.Match(context.Background(), batch, &NormalizedRecord{Name: "Desk", SKU: strPtr("SKU001")})
		require.NoError(t, err)
		assert.Same(t, existing, got)
	})

	t.Run("record without SKU never matches", func(t *testing.T) {
		batch := new(MockProductBatch)

		got, err := ExactSKUMatcher{}.Match(context.Background(), batch, &NormalizedRecord{Name: "Desk"})
		require.NoError(t, err)
		assert.Nil(t, got)
		batch.AssertNotCalled(t, "FindBySKU", mock.Anything, mock.Anything)
	})

	t.Run("not found is not an error", func(t *testing.T) {
		batch := new(MockProductBatch)
		batch.On("FindBySKU", mock.Anything, "SKU001").Return(nil, gorm.ErrRecordNotFound)

		got, err := ExactSKUMatcher{}.Match(context.Background(), batch, &NormalizedRecord{SKU: strPtr("SKU001")})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestExactNameMatcher(t *testing.T) {
	existing := &models.Product{ID: "p1", Name: "Desk"}

	batch := new(MockProductBatch)
	batch.On("FindByName", mock.Anything, "Desk").Return(existing, nil)

	got, err := ExactNameMatcher{}.Match(context.Background(), batch, &NormalizedRecord{Name: "Desk"})
	require.NoError(t, err)
	assert.Same(t, existing, got)
}

func TestCompositeMatcher(t *testing.T) {
	bySKU := &models.Product{ID: "p-sku"}
	byName := &models.Product{ID: "p-name"}

	t.Run("SKU match wins without consulting name", func(t *testing.T) {
		batch := new(MockProductBatch)
		batch.On("FindBySKU", mock.Anything, "SKU001").Return(bySKU, nil)

		got, err := CompositeMatcher{}.Match(context.Background(), batch, &NormalizedRecord{Name: "Desk", SKU: strPtr("SKU001")})
		require.NoError(t, err)
		assert.Same(t, bySKU, got)
		batch.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})

	t.Run("falls back to name when SKU misses", func(t *testing.T) {
		batch := new(MockProductBatch)
		batch.On("FindBySKU", mock.Anything, "SKU001").Return(nil, gorm.ErrRecordNotFound)
		batch.On("FindByName", mock.Anything, "Desk").Return(byName, nil)

		got, err := CompositeMatcher{}.Match(context.Background(), batch, &NormalizedRecord{Name: "Desk", SKU: strPtr("SKU001")})
		require.NoError(t, err)
		assert.Same(t, byName, got)
	})

	t.Run("SKU-less record goes straight to name", func(t *testing.T) {
		batch := new(MockProductBatch)
		batch.On("FindByName", mock.Anything, "Desk").Return(byName, nil)

		got, err := CompositeMatcher{}.Match(context.Background(), batch, &NormalizedRecord{Name: "Desk"})
		require.NoError(t, err)
		assert.Same(t, byName, got)
		batch.AssertNotCalled(t, "FindBySKU", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		batch := new(MockProductBatch)
		batch.On("FindBySKU", mock.Anything, "SKU001").Return(nil, errors.New("connection reset"))

		got, err := CompositeMatcher{}.Match(context.Background(), batch, &NormalizedRecord{Name: "Desk", SKU: strPtr("SKU001")})
		require.Error(t, err)
		assert.Nil(t, got)
		batch.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})
}
