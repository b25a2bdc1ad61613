package routes

import (
	orderControllers "github.com/eco-pj/storefront-api/controllers/order"
	productcontroller "github.com/eco-pj/storefront-api/controllers/product"
	userControllers "github.com/eco-pj/storefront-api/controllers/user"
	"github.com/eco-pj/storefront-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a bearer
// token carrying role=admin.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Brand Management ───────────
		brandAdmin := adminGroup.Group("/brands")
		{
			brandAdmin.GET("", productcontroller.GetAllBrands(db))
			brandAdmin.POST("", productcontroller.CreateBrand(db))
			brandAdmin.PUT("/:id", productcontroller.UpdateBrand(db))
			brandAdmin.DELETE("/:id", productcontroller.DeleteBrand(db))
		}

		// ─────────── User Management ───────────
		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", userControllers.GetAllUsers(db))
			userAdmin.POST("", userControllers.CreateUser(db))
			userAdmin.PUT("/:id", userControllers.UpdateUser(db))
			userAdmin.DELETE("/:id", userControllers.DeleteUser(db))
		}

		// ─────────── Orders ───────────
		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(db))
	}
}
