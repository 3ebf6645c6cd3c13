package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-service/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products   []models.Product
	total      int64
	err        error
	lastParams models.ListProductsParams
}

func (f *fakeCatalog) ListProducts(ctx context.Context, params models.ListProductsParams) ([]models.Product, int64, error) {
	f.lastParams = params
	return f.products, f.total, f.err
}

func listRouter(catalog CatalogServiceAPI) *gin.Engine {
	controller := NewProductController(catalog, nil, NewRequestValidator())
	r := gin.New()
	r.GET("/products", controller.ListProducts)
	return r
}

func TestListProducts(t *testing.T) {
	catalog := &fakeCatalog{
		products: []models.Product{
			{ID: "p1", Name: "Desk", Price: decimal.RequireFromString("199.99"), IsActive: true},
		},
		total: 41,
	}
	router := listRouter(catalog)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?page=2&perPage=20&category=Office", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.JSONEq(t, "41", string(body["total"]))
	assert.JSONEq(t, "2", string(body["page"]))
	assert.JSONEq(t, "20", string(body["size"]))
	assert.JSONEq(t, "3", string(body["pages"]))

	var items []models.Product
	require.NoError(t, json.Unmarshal(body["items"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Desk", items[0].Name)

	assert.Equal(t, 2, catalog.lastParams.Page)
	assert.Equal(t, 20, catalog.lastParams.PerPage)
	assert.Equal(t, "Office", catalog.lastParams.Category)
}

func TestListProductsBadQuery(t *testing.T) {
	router := listRouter(&fakeCatalog{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?page=-1", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProductsStoreFailure(t *testing.T) {
	router := listRouter(&fakeCatalog{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch products")
}
