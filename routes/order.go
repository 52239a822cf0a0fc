package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/hoopkicks/hoopkicks-api/controllers/order"
	"github.com/hoopkicks/hoopkicks-api/middleware"
)

// SetupOrderRoutes registers checkout for authenticated customers.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.RequireAuth)
	{
		orders.POST("", orderControllers.PlaceOrderHandler(db))
	}
}
