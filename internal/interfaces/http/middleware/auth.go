package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/interfaces/http/response"
	"quickbite.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for the authenticated identity id
	UserIDKey = "userId"
	// UserPhoneKey is the context key for the authenticated phone
	UserPhoneKey = "userPhone"
	// UserRoleKey is the context key for the authenticated role
	UserRoleKey = "userRole"
	// MerchantIDKey is the context key for the merchant profile id,
	// present only on merchant tokens
	MerchantIDKey = "merchantId"
)

// AuthMiddleware validates the bearer token and stashes the claims in the
// gin context for downstream handlers.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abort(c, domainerrors.Unauthorized("Authorization header is required"))
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abort(c, domainerrors.Unauthorized("Invalid authorization format. Use: Bearer <token>"))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				abort(c, domainerrors.Unauthorized("Token has expired"))
				return
			}
			abort(c, domainerrors.Unauthorized("Invalid token"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserPhoneKey, claims.Phone)
		c.Set(UserRoleKey, claims.Role)
		if claims.MerchantID != nil {
			c.Set(MerchantIDKey, *claims.MerchantID)
		}

		c.Next()
	}
}

// GetUserID gets the authenticated identity id from context
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return v.(int64), true
}

// GetUserPhone gets the authenticated phone from context
func GetUserPhone(c *gin.Context) (string, bool) {
	v, exists := c.Get(UserPhoneKey)
	if !exists {
		return "", false
	}
	return v.(string), true
}

// GetUserRole gets the authenticated role from context
func GetUserRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return v.(string), true
}

// GetMerchantID gets the merchant profile id from context
func GetMerchantID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(MerchantIDKey)
	if !exists {
		return 0, false
	}
	return v.(int64), true
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			abort(c, domainerrors.Unauthorized("User role not found"))
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		abort(c, domainerrors.Forbidden("Insufficient permissions"))
	}
}

// RequireAdmin creates a middleware that requires the admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}

// RequireMerchant creates a middleware that requires the merchant role
func RequireMerchant() gin.HandlerFunc {
	return RequireRole("merchant")
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
