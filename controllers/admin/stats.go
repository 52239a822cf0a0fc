package adminControllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hoopkicks/hoopkicks-api/models"
)

// GET /admin/stats — dashboard counters plus the revenue sum across all
// orders.
func GetDashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userCount, productCount, orderCount int64
		if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
			log.Println("❌ Failed to count users:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		var revenue int64
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&revenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users":    userCount,
			"products": productCount,
			"orders":   orderCount,
			"revenue":  revenue,
		})
	}
}
