package middleware

import (
	"fmt"
	"strings"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/config"
	"github.com/Pincessis17/MerchFlow/pkg/jwt"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware request authentication and authorization
type AuthMiddleware struct {
	userService    *services.UserService
	featureService *services.FeatureAccessService
	jwtManager     *jwt.JWTManager
}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{
		userService:    services.NewUserService(),
		featureService: services.NewFeatureAccessService(),
		jwtManager:     jwt.GetJWTManager(),
	}
}

// RequireLogin verifies the bearer token, loads the user and blocks
// suspended or cancelled tenants.
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "please log in first")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := authHeader[7:]

		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "token invalid or expired")
			c.Abort()
			return
		}

		user, err := m.userService.GetWithCompany(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "user not found")
			c.Abort()
			return
		}

		if user.Company != nil {
			if user.Company.IsSuspended {
				response.Forbidden(c, "this workspace has been suspended, contact support")
				c.Abort()
				return
			}
			if user.Company.Status == models.CompanyStatusCancelled {
				response.Forbidden(c, "this workspace has been cancelled")
				c.Abort()
				return
			}
		}

		c.Set("user", user)
		c.Set("user_id", claims.UserID)
		c.Set("company_id", claims.CompanyID)
		c.Set("email", claims.Email)
		c.Set("role", user.Role)
		c.Set("is_platform_owner", claims.IsPlatformOwner)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequireCompanyAdmin restricts the route to workspace admins
func (m *AuthMiddleware) RequireCompanyAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, "please log in first")
			c.Abort()
			return
		}

		if role.(string) != models.UserRoleAdmin {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireFeature restricts the route to users the feature has been
// granted to. Workspace admins always pass.
func (m *AuthMiddleware) RequireFeature(feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, "please log in first")
			c.Abort()
			return
		}
		if role.(string) == models.UserRoleAdmin {
			c.Next()
			return
		}

		companyID := c.GetUint("company_id")
		email := c.GetString("email")

		enabled, err := m.featureService.HasFeature(companyID, email, feature)
		if err != nil {
			response.ServerError(c, "feature check failed")
			c.Abort()
			return
		}
		if !enabled {
			response.Forbidden(c, "this feature is not enabled for your account")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequirePlatformOwner restricts the route to platform console owners
func (m *AuthMiddleware) RequirePlatformOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		isOwner, exists := c.Get("is_platform_owner")
		if !exists {
			response.Unauthorized(c, "please log in first")
			c.Abort()
			return
		}

		if !isOwner.(bool) {
			response.Forbidden(c, "platform owner access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireElevated requires a recent password re-confirmation for
// sensitive platform actions. The elevation window lives in Redis and
// expires on its own.
func (m *AuthMiddleware) RequireElevated() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			response.Unauthorized(c, "please log in first")
			c.Abort()
			return
		}

		cfg := config.GetConfig()
		key := fmt.Sprintf("%s:platform:elevated:%d", cfg.Redis.Prefix, userID)
		exists, err := database.GetRedis().Exists(c.Request.Context(), key).Result()
		if err != nil {
			response.ServerError(c, "elevation check failed")
			c.Abort()
			return
		}
		if exists == 0 {
			response.Forbidden(c, "please confirm your password to continue")
			c.Abort()
			return
		}

		c.Next()
	}
}
