package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/eco-pj/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		categoryID := c.Query("category_id")
		brandID := c.Query("brand_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}
		switch sortBy {
		case "created_at", "price", "name", "stock":
		default:
			sortBy = "created_at"
		}

		query := db.Model(&models.Product{}).Preload("Category").Preload("Brand")

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("name LIKE ? OR description LIKE ?", likePattern, likePattern)
		}

		if minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
		}

		if categoryID != "" {
			if cid, err := strconv.ParseUint(categoryID, 10, 64); err == nil {
				query = query.Where("category_id = ?", uint(cid))
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
		}
		if brandID != "" {
			if bid, err := strconv.ParseUint(brandID, 10, 64); err == nil {
				query = query.Where("brand_id = ?", uint(bid))
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand_id"})
				return
			}
		}

		var products []models.Product
		if err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
