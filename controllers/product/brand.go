package productcontroller

import (
	"net/http"
	"strings"

	"github.com/eco-pj/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BrandRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

func CreateBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BrandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		if req.Slug == "" {
			req.Slug = slugify(req.Name)
		}

		brand := models.Brand{Name: req.Name, Slug: req.Slug}
		if err := db.Create(&brand).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand"})
			return
		}
		c.JSON(http.StatusCreated, brand)
	}
}

func GetAllBrands(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brands []models.Brand
		if err := db.Find(&brands).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
			return
		}
		c.JSON(http.StatusOK, brands)
	}
}

func UpdateBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var brand models.Brand
		if err := db.First(&brand, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}

		var req BrandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		brand.Name = req.Name
		if req.Slug != "" {
			brand.Slug = req.Slug
		}
		if err := db.Save(&brand).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brand"})
			return
		}
		c.JSON(http.StatusOK, brand)
	}
}

func DeleteBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var brand models.Brand
		if err := db.First(&brand, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}

		if err := db.Delete(&brand).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brand"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Brand deleted"})
	}
}
