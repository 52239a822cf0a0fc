package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/hoopkicks/hoopkicks-api/controllers/product"
)

// SetupProductRoutes registers the public catalog read endpoints.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))
		products.GET("/category/:category", productControllers.GetProductsByCategory(db))
	}
}
