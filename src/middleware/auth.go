package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mydeimos/elibrary-backend/src/models"
)

var secretKey string

func SetSecretKey(key string) {
	secretKey = key
}

func GetSecretKey() string {
	return secretKey
}

// Context keys set by AuthMiddleware for downstream handlers.
const (
	CtxUserID   = "userId"
	CtxUsername = "username"
	CtxRole     = "role"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// Gets the authorization header
		authHeader := strings.TrimSpace(ctx.GetHeader("Authorization"))
		if authHeader == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"resp_msg": "Authorization header is required", "resp_data": nil})
			ctx.Abort()
			return
		}

		// Divides the header into Bearer and Token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			ctx.JSON(http.StatusUnauthorized, gin.H{"resp_msg": "Invalid token type. Expected 'Bearer'", "resp_data": nil})
			ctx.Abort()
			return
		}

		// Verifies the JWT token
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})

		// Checks if the token is valid
		if err != nil || !token.Valid {
			ctx.JSON(http.StatusUnauthorized, gin.H{"resp_msg": "Invalid token", "resp_data": nil})
			ctx.Abort()
			return
		}

		// Adds expiration validation for the token
		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"resp_msg": "Token expired", "resp_data": nil})
				ctx.Abort()
				return
			}
		}

		uidClaim, _ := claims["uid"].(string)
		userID, err := uuid.Parse(uidClaim)
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"resp_msg": "Invalid token", "resp_data": nil})
			ctx.Abort()
			return
		}

		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)

		// Sets the token claims in the context
		ctx.Set(CtxUserID, userID)
		ctx.Set(CtxUsername, username)
		ctx.Set(CtxRole, models.UserRole(role))
		ctx.Next()
	}
}

// RequireRole is the single capability check for role-gated endpoints; it
// must run after AuthMiddleware so the role claim is already in the context.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		current, exists := ctx.Get(CtxRole)
		if !exists || current.(models.UserRole) != role {
			ctx.JSON(http.StatusUnauthorized, gin.H{"resp_msg": "You do not have permission to access this feature.", "resp_data": nil})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
