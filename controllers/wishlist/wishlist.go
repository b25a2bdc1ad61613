package wishlistControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/eco-pj/storefront-api/middleware"
	"github.com/eco-pj/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WishlistItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

type resolvedWishlistItem struct {
	Product models.Product `json:"product"`
	AddedAt time.Time      `json:"added_at"`
}

// GET /wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var wishlist models.Wishlist
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"items": []resolvedWishlistItem{}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		items := make([]resolvedWishlistItem, 0, len(wishlist.Items))
		for _, item := range wishlist.Items {
			var product models.Product
			if err := db.First(&product, item.ProductID).Error; err != nil {
				continue // product gone, hide the line
			}
			items = append(items, resolvedWishlistItem{Product: product, AddedAt: item.AddedAt})
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// POST /wishlist — adding a product already present is a no-op.
func AddWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input WishlistItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var wishlist models.Wishlist
		err := db.Where("user_id = ?", userID).First(&wishlist).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			wishlist = models.Wishlist{UserID: userID}
			if err := db.Create(&wishlist).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wishlist"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		var item models.WishlistItem
		err = db.Where("wishlist_id = ? AND product_id = ?", wishlist.WishlistID, input.ProductID).First(&item).Error
		if err == nil {
			c.JSON(http.StatusOK, item)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist item"})
			return
		}

		item = models.WishlistItem{
			WishlistID: wishlist.WishlistID,
			ProductID:  input.ProductID,
			AddedAt:    time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to wishlist"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /wishlist/:product_id
func DeleteWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		productID := c.Param("product_id")

		var wishlist models.Wishlist
		if err := db.Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist not found"})
			return
		}

		result := db.Where("wishlist_id = ? AND product_id = ?", wishlist.WishlistID, productID).Delete(&models.WishlistItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist item deleted"})
	}
}
