package routes

import (
	"time"

	"catalog-service/controllers"
	"catalog-service/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RegisterRoutes wires all application routes.
func RegisterRoutes(
	r *gin.Engine,
	products *controllers.ProductController,
	imports *controllers.ImportHandler,
	exports *controllers.ExportHandler,
	history *controllers.HistoryHandler,
) {
	r.GET("/products", products.ListProducts)

	admin := r.Group("/admin")
	limiter := middleware.NewRateLimiter(rate.Every(time.Minute/100), 50, 10*time.Minute)
	admin.Use(limiter.Middleware())
	{
		admin.POST("/products/import", imports.ImportProducts)
		admin.GET("/products/import/jobs/:id", imports.GetImportJobStatus)
		admin.GET("/products/export", exports.DownloadProducts)
		admin.GET("/uploads", history.ListUploads)
	}
}
