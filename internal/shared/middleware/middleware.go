package middleware

import (
	"net/http"
	"strings"

	"rently/internal/shared/config"
	"rently/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// JWTAuth creates a JWT authentication middleware
func JWTAuth() gin.HandlerFunc {
	return JWTAuthWithConfig(config.Load())
}

// JWTAuthWithConfig creates a JWT authentication middleware with config
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})

		if err != nil || !token.Valid {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
				response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token type", nil, nil)
				c.Abort()
				return
			}
			c.Set("user_id", claims["user_id"])
			c.Set("user_email", claims["email"])
			c.Set("user_category", claims["category"])
		}

		c.Next()
	}
}

// RequireCategory middleware checks if the user belongs to the required category
func RequireCategory(requiredCategory string) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, exists := c.Get("user_category")
		if !exists {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "user category not found in context", nil, nil)
			c.Abort()
			return
		}

		if category.(string) != requiredCategory {
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireMPP middleware requires the MPP administrator category
func RequireMPP() gin.HandlerFunc {
	return RequireCategory("MPP")
}

// RequireBusinessOwner middleware allows student and non-student owners
func RequireBusinessOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		category, exists := c.Get("user_category")
		if !exists {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "user category not found in context", nil, nil)
			c.Abort()
			return
		}

		switch category.(string) {
		case "STUDENT", "NON_STUDENT":
			c.Next()
		default:
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
		}
	}
}
