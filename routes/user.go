package routes

import (
	cartControllers "github.com/eco-pj/storefront-api/controllers/cart"
	reviewControllers "github.com/eco-pj/storefront-api/controllers/review"
	userControllers "github.com/eco-pj/storefront-api/controllers/user"
	wishlistControllers "github.com/eco-pj/storefront-api/controllers/wishlist"
	"github.com/eco-pj/storefront-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the JWT-protected storefront endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("", userControllers.GetUser(db)) // GET /user
	}

	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("", cartControllers.GetUserCart(db))
		cartGroup.POST("", cartControllers.AddCartItem(db))
		cartGroup.PUT("", cartControllers.UpdateCartItem(db))
		cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
	}

	wishlistGroup := r.Group("/wishlist")
	wishlistGroup.Use(middleware.ValidateToken)
	{
		wishlistGroup.GET("", wishlistControllers.GetWishlist(db))
		wishlistGroup.POST("", wishlistControllers.AddWishlistItem(db))
		wishlistGroup.DELETE("/:product_id", wishlistControllers.DeleteWishlistItem(db))
	}

	r.POST("/reviews", middleware.ValidateToken, reviewControllers.CreateReview(db))
}
