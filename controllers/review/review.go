package reviewControllers

import (
	"net/http"

	"github.com/eco-pj/storefront-api/middleware"
	"github.com/eco-pj/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"required"`
}

// GET /reviews/:product_id
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("product_id")

		var reviews []models.Review
		if err := db.
			Where("product_id = ?", productID).
			Preload("User").
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// POST /reviews
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CreateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID, rating, and comment are required"})
			return
		}

		var product models.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		review := models.Review{
			ProductID: req.ProductID,
			UserID:    userID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}
