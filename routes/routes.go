package routes

import (
	"github.com/eco-pj/storefront-api/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public catalog,
// auth, user, order, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, adapter payment.Adapter) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public catalog browsing
	SetupCatalogRoutes(r, db)

	// User routes (JWT-protected): profile, cart, wishlist, reviews
	SetupUserRoutes(r, db)

	// Order routes
	SetupOrderRoutes(r, db, adapter)

	// Admin console (JWT + admin role)
	SetupAdminRoutes(r, db)
}
