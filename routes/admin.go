package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/hoopkicks/hoopkicks-api/controllers/admin"
	orderControllers "github.com/hoopkicks/hoopkicks-api/controllers/order"
	productControllers "github.com/hoopkicks/hoopkicks-api/controllers/product"
	userControllers "github.com/hoopkicks/hoopkicks-api/controllers/user"
	"github.com/hoopkicks/hoopkicks-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a session
// cookie with the admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAuth, middleware.RequireAdmin)
	{
		// ─────────── Admin & User Management ───────────
		adminGroup.POST("/admins", adminControllers.CreateAdmin(db))
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.GET("/stats", adminControllers.GetDashboardStats(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
		}
	}
}
