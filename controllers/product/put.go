package productControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hoopkicks/hoopkicks-api/models"
)

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *int             `json:"price"`
	Brand       *string          `json:"brand"`
	Category    *models.Category `json:"category"`
	Sizes       []SizeInput      `json:"sizes"`
	Image       *string          `json:"image"`
	Images      []string         `json:"images"`
}

// UpdateProduct updates an existing product by ID. Admin only. A provided
// size list fully replaces the existing one (renormalization).
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Sizes").Preload("Images").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Price != nil {
			if *req.Price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
				return
			}
			product.Price = *req.Price
		}
		if req.Brand != nil {
			product.Brand = *req.Brand
		}
		if req.Category != nil {
			if *req.Category != models.CategoryMen && *req.Category != models.CategoryWomen {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be 'men' or 'women'"})
				return
			}
			product.Category = *req.Category
		}
		if req.Image != nil {
			product.Image = *req.Image
		}

		var newSizes []models.ProductSize
		if req.Sizes != nil {
			sizes, totalStock, msg := normalizeSizes(req.Sizes)
			if msg != "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": msg})
				return
			}
			newSizes = sizes
			product.Stock = totalStock
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if newSizes != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductSize{}).Error; err != nil {
					return err
				}
				for i := range newSizes {
					newSizes[i].ProductID = product.ID
				}
				if err := tx.Create(&newSizes).Error; err != nil {
					return err
				}
				product.Sizes = newSizes
			}

			if req.Images != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
					return err
				}
				images := make([]models.ProductImage, 0, len(req.Images))
				for _, url := range req.Images {
					images = append(images, models.ProductImage{ProductID: product.ID, URL: url})
				}
				if len(images) > 0 {
					if err := tx.Create(&images).Error; err != nil {
						return err
					}
				}
				product.Images = images
			}

			return tx.Omit("Sizes", "Images").Save(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
