package middlewares

import (
	"net/http"
	"strings"

	"eto-audiobook-api/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware guards the admin routes (cache clear, voice seeding) with a
// Bearer JWT signed by JWT_SECRET.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.LoadConfig()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
			c.Abort()
			return
		}
		accessToken := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		subject, _ := claims["sub"].(string)
		if subject == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid subject"})
			c.Abort()
			return
		}

		c.Set("subject", subject)
		c.Next()
	}
}
