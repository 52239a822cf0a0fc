package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up Auth, Product, User,
// Order and Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public catalog routes
	SetupProductRoutes(r, db)

	// User routes (session-cookie protected)
	SetupUserRoutes(r, db)

	// Order placement (session-cookie protected)
	SetupOrderRoutes(r, db)

	// Admin routes (session cookie + admin role)
	SetupAdminRoutes(r, db)
}
