package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hoopkicks/hoopkicks-api/models"
)

type SizeInput struct {
	Size  int `json:"size" binding:"required"`
	Stock int `json:"stock"`
}

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       int             `json:"price" binding:"required,min=0"`
	Brand       string          `json:"brand" binding:"required"`
	Category    models.Category `json:"category" binding:"required"`
	Sizes       []SizeInput     `json:"sizes" binding:"required,min=1"`
	Image       string          `json:"image" binding:"required"`
	Images      []string        `json:"images"`
}

// normalizeSizes validates the size list: no duplicate size values, no
// negative stock. Returns the size records and the aggregate stock.
func normalizeSizes(inputs []SizeInput) ([]models.ProductSize, int, string) {
	seen := make(map[int]bool, len(inputs))
	sizes := make([]models.ProductSize, 0, len(inputs))
	total := 0
	for _, in := range inputs {
		if seen[in.Size] {
			return nil, 0, "Duplicate size in size list"
		}
		if in.Stock < 0 {
			return nil, 0, "Stock cannot be negative"
		}
		seen[in.Size] = true
		sizes = append(sizes, models.ProductSize{Size: in.Size, Stock: in.Stock})
		total += in.Stock
	}
	return sizes, total, ""
}

// CreateProduct creates a new catalog entry. Admin only.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Category != models.CategoryMen && req.Category != models.CategoryWomen {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be 'men' or 'women'"})
			return
		}

		sizes, totalStock, msg := normalizeSizes(req.Sizes)
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		images := make([]models.ProductImage, 0, len(req.Images))
		for _, url := range req.Images {
			images = append(images, models.ProductImage{URL: url})
		}

		product := models.Product{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Brand:       req.Brand,
			Category:    req.Category,
			Sizes:       sizes,
			Image:       req.Image,
			Images:      images,
			Stock:       totalStock,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
