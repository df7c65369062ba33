package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"omanvat/internal/repository"
	"omanvat/internal/service"
	"omanvat/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set on authenticated requests
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
)

// permCacheEntry stores a cached permission decision with TTL
type permCacheEntry struct {
	allowed   bool
	expiresAt time.Time
}

// Auth validates bearer tokens and checks roles and document permissions.
type Auth struct {
	secret   []byte
	perms    repository.PermissionRepository
	cache    sync.Map // "doctype|role|right" -> permCacheEntry
	cacheTTL time.Duration
}

func NewAuth(secret []byte, perms repository.PermissionRepository) *Auth {
	return &Auth{secret: secret, perms: perms, cacheTTL: 5 * time.Minute}
}

// ParseToken verifies an HMAC-signed token and returns its claims.
func (a *Auth) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// RequireRole validates the JWT and checks the user's role is one of allowedRoles
func (a *Auth) RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := a.authenticate(c)
		if !ok {
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
	}
}

// RequireDocPermission validates the JWT and checks the user's role holds right on docType
// through the permissions granted at install.
func (a *Auth) RequireDocPermission(docType, right string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := a.authenticate(c)
		if !ok {
			return
		}

		allowed, err := a.hasRight(c.Request.Context(), docType, role, right)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "permission lookup failed", "doctype", docType, "role", role, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to verify permissions"))
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, fmt.Sprintf("Access denied: missing %s permission on %s", right, docType)))
			return
		}

		c.Next()
	}
}

// ClearPermissionCache drops every cached permission decision.
func (a *Auth) ClearPermissionCache() {
	a.cache.Range(func(key, _ interface{}) bool {
		a.cache.Delete(key)
		return true
	})
}

// authenticate parses the token from the cookie or Authorization header and stores the
// user on the context. It aborts the request and returns false on failure.
func (a *Auth) authenticate(c *gin.Context) (string, bool) {
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return "", false
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
			return "", false
		}
		tokenString = parts[1]
	}

	claims, err := a.ParseToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
		return "", false
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
		return "", false
	}

	userID, _ := claims["sub"].(string)
	c.Set(CtxUserID, userID)
	c.Set(CtxUserRole, role)
	c.Request = c.Request.WithContext(service.WithActor(c.Request.Context(), userID))

	return role, true
}

func (a *Auth) hasRight(ctx context.Context, docType, role, right string) (bool, error) {
	key := docType + "|" + role + "|" + right
	if entry, ok := a.cache.Load(key); ok {
		cached := entry.(permCacheEntry)
		if time.Now().Before(cached.expiresAt) {
			return cached.allowed, nil
		}
	}

	allowed, err := a.perms.HasRight(ctx, docType, role, right)
	if err != nil {
		return false, err
	}

	a.cache.Store(key, permCacheEntry{allowed: allowed, expiresAt: time.Now().Add(a.cacheTTL)})
	return allowed, nil
}
