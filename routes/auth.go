package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/hoopkicks/hoopkicks-api/controllers/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(db))
		authGroup.POST("/login", authControllers.Login(db))
		authGroup.POST("/logout", authControllers.Logout())
	}
}
