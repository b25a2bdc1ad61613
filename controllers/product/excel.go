package productcontroller

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/eco-pj/storefront-api/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ImportProductsFromExcel bulk-creates or updates products from an
// uploaded sheet. Expected columns: ID (blank for new rows), Name, Price,
// Stock, CategoryID, BrandID, Description, ImageURLs (comma separated).
// Stock is applied only to new rows; existing rows keep their counter,
// which belongs to the order status transition.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		wb, err := xlsx.OpenBinary(data)
		if err != nil || len(wb.Sheets) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Excel file"})
			return
		}

		sheet := wb.Sheets[0]
		var created, updated, skipped int

		err = db.Transaction(func(tx *gorm.DB) error {
			for i, row := range sheet.Rows {
				if i == 0 || len(row.Cells) < 6 { // header or short row
					continue
				}

				name := strings.TrimSpace(row.Cells[1].Value)
				price, priceErr := strconv.ParseFloat(row.Cells[2].Value, 64)
				stock, stockErr := strconv.Atoi(row.Cells[3].Value)
				categoryID, catErr := strconv.ParseUint(row.Cells[4].Value, 10, 64)
				brandID, brandErr := strconv.ParseUint(row.Cells[5].Value, 10, 64)
				if name == "" || priceErr != nil || stockErr != nil || catErr != nil || brandErr != nil || price < 0 || stock < 0 {
					skipped++
					continue
				}

				description := ""
				if len(row.Cells) > 6 {
					description = row.Cells[6].Value
				}
				var imageURLs []string
				if len(row.Cells) > 7 && row.Cells[7].Value != "" {
					imageURLs = strings.Split(row.Cells[7].Value, ",")
				}

				idStr := strings.TrimSpace(row.Cells[0].Value)
				if idStr != "" {
					id, idErr := strconv.ParseUint(idStr, 10, 64)
					if idErr != nil {
						skipped++
						continue
					}
					var product models.Product
					if err := tx.First(&product, uint(id)).Error; err == nil {
						product.Name = name
						product.Price = price
						product.CategoryID = uint(categoryID)
						product.BrandID = uint(brandID)
						product.Description = description
						product.ImageURLs = imageURLs
						if err := tx.Save(&product).Error; err != nil {
							return err
						}
						updated++
						continue
					}
				}

				product := models.Product{
					Name:        name,
					Price:       price,
					Stock:       stock,
					CategoryID:  uint(categoryID),
					BrandID:     uint(brandID),
					Description: description,
					ImageURLs:   imageURLs,
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
				created++
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed, no rows were applied"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"created": created,
			"updated": updated,
			"skipped": skipped,
		})
	}
}
