package productcontroller

import (
	"net/http"

	"github.com/eco-pj/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DeleteProduct soft-deletes a product. Cart lines pointing at it are
// pruned lazily by the cart snapshot reader.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
