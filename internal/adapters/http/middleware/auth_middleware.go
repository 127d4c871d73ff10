package middleware

import (
	"strings"

	"gatewise-vms/internal/config"
	"gatewise-vms/internal/core/domain"
	"gatewise-vms/internal/pkg/jwt"
	"gatewise-vms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("name", claims.Name)
		c.Locals("role", claims.Role)
		c.Locals("properties", claims.Properties)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == string(allowedRole) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// SuperAdminOnly middleware allows only the SUPER_ADMIN role
func SuperAdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleSuperAdmin)
}

// ManagementOnly middleware allows PM or SUPER_ADMIN roles
func ManagementOnly() fiber.Handler {
	return RoleMiddleware(domain.RolePM, domain.RoleSuperAdmin)
}

// SecurityOnly middleware allows SECURITY or SUPER_ADMIN roles
func SecurityOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleSecurity, domain.RoleSuperAdmin)
}

// ResidentOnly middleware allows only the RESIDENT role
func ResidentOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleResident)
}

// PropertyScope checks that a management token actually administers
// the property named in the request. SUPER_ADMIN passes everything.
func PropertyScope(propertyName string, c *fiber.Ctx) bool {
	if role, _ := c.Locals("role").(string); role == string(domain.RoleSuperAdmin) {
		return true
	}
	properties, ok := c.Locals("properties").([]string)
	if !ok {
		return false
	}
	want := domain.Normalize(propertyName)
	for _, p := range properties {
		if domain.Normalize(p) == want {
			return true
		}
	}
	return false
}
