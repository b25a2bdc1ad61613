package routes

import (
	productcontroller "github.com/eco-pj/storefront-api/controllers/product"
	reviewControllers "github.com/eco-pj/storefront-api/controllers/review"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers the public browsing endpoints.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetAllCategoriesWithProducts(db))
	r.GET("/brands", productcontroller.GetAllBrands(db))
	r.GET("/reviews/:product_id", reviewControllers.GetProductReviews(db))
}
