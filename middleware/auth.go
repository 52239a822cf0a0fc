package middleware

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hoopkicks/hoopkicks-api/models"
)

// SessionCookie is the name of the HTTP-only cookie carrying the signed
// session token.
const SessionCookie = "hoopkicks_session"

// RequireAuth validates the session cookie and puts user_id and role into
// the request context.
func RequireAuth(c *gin.Context) {
	tokenString, err := c.Cookie(SessionCookie)
	if err != nil || tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		c.Abort()
		return
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
		c.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session claims"})
		c.Abort()
		return
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session claims"})
		c.Abort()
		return
	}

	c.Set("user_id", userID)
	c.Set("role", role)
	c.Next()
}

// RequireAdmin gates admin-only routes. Must run after RequireAuth.
func RequireAdmin(c *gin.Context) {
	role, _ := c.Get("role")
	if role != string(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		c.Abort()
		return
	}
	c.Next()
}
