package productcontroller

import (
	"net/http"

	"github.com/eco-pj/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	CategoryID  *uint     `json:"category_id"`
	BrandID     *uint     `json:"brand_id"`
	Description *string   `json:"description"`
	ImageURLs   *[]string `json:"image_urls"`
}

// UpdateProduct applies a partial update. Stock is deliberately absent:
// only the order status transition may write it.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.CategoryID != nil {
			updates["category_id"] = *req.CategoryID
		}
		if req.BrandID != nil {
			updates["brand_id"] = *req.BrandID
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.ImageURLs != nil {
			product.ImageURLs = *req.ImageURLs
			if err := db.Model(&product).Update("image_urls", product.ImageURLs).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		c.JSON(http.StatusOK, product)
	}
}
