package productcontroller

import (
	"net/http"

	"github.com/eco-pj/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"required,gte=0"`
	Stock       int      `json:"stock" binding:"gte=0"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	BrandID     uint     `json:"brand_id" binding:"required"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"image_urls"`
}

// CreateProduct creates a new catalog product.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}
		var brand models.Brand
		if err := db.First(&brand, req.BrandID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Brand does not exist"})
			return
		}

		product := models.Product{
			Name:        req.Name,
			Price:       req.Price,
			Stock:       req.Stock,
			CategoryID:  req.CategoryID,
			BrandID:     req.BrandID,
			Description: req.Description,
			ImageURLs:   req.ImageURLs,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
