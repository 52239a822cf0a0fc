package productControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hoopkicks/hoopkicks-api/models"
)

// applyFilters adds the optional brand / min_price / max_price query filters
// as a conjunction. Returns false if a filter value is malformed (response
// already written).
func applyFilters(c *gin.Context, query *gorm.DB) (*gorm.DB, bool) {
	if brand := c.Query("brand"); brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if minPriceStr := c.Query("min_price"); minPriceStr != "" {
		mp, err := strconv.Atoi(minPriceStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
			return nil, false
		}
		query = query.Where("price >= ?", mp)
	}
	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		mp, err := strconv.Atoi(maxPriceStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
			return nil, false
		}
		query = query.Where("price <= ?", mp)
	}
	return query, true
}

// GetProducts returns the catalog, newest first, honoring the optional
// query filters.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Sizes").Preload("Images")

		query, ok := applyFilters(c, query)
		if !ok {
			return
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GetProductsByCategory returns products for a path-embedded category
// ("men" or "women"), with the same optional filters.
func GetProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := models.Category(c.Param("category"))
		if category != models.CategoryMen && category != models.CategoryWomen {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}

		query := db.Model(&models.Product{}).
			Preload("Sizes").
			Preload("Images").
			Where("category = ?", category)

		query, ok := applyFilters(c, query)
		if !ok {
			return
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
