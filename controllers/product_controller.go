package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductController serves the read-only public product listing.
type ProductController struct {
	catalog   CatalogServiceAPI
	cache     *CacheManager
	validator *RequestValidator
	timeout   time.Duration
}

func NewProductController(catalog CatalogServiceAPI, cache *CacheManager, validator *RequestValidator) *ProductController {
	return &ProductController{
		catalog:   catalog,
		cache:     cache,
		validator: validator,
		timeout:   DefaultContextTimeout,
	}
}

// ListProducts returns active products with filters and pagination.
func (pc *ProductController) ListProducts(c *gin.Context) {
	params, err := pc.validator.ParseListParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pc.timeout)
	defer cancel()

	if pc.cache != nil {
		if cached, ok := pc.cache.GetProductList(ctx, params); ok {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	products, total, err := pc.catalog.ListProducts(ctx, params)
	if err != nil {
		zap.L().Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	pages := (total + int64(params.PerPage) - 1) / int64(params.PerPage)
	response := map[string]interface{}{
		"items": products,
		"total": total,
		"page":  params.Page,
		"size":  params.PerPage,
		"pages": pages,
	}

	if pc.cache != nil {
		pc.cache.SetProductListAsync(params, response)
	}

	c.JSON(http.StatusOK, response)
}
