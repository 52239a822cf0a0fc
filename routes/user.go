package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/hoopkicks/hoopkicks-api/controllers/order"
	userControllers "github.com/hoopkicks/hoopkicks-api/controllers/user"
	"github.com/hoopkicks/hoopkicks-api/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires a session
// cookie.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireAuth)
	{
		userGroup.GET("", userControllers.GetUser(db))
		userGroup.PUT("", userControllers.UpdateUser(db))
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db))
	}
}
