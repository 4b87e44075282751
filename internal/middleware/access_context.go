package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RequestMetaMiddleware captures the client IP and user agent so audit
// records can include them. Applied globally, before authentication, because
// signup and failed-login audits need the metadata too.
func RequestMetaMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := RequestMeta{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		c.Request = c.Request.WithContext(WithRequestMeta(c.Request.Context(), meta))
		c.Next()
	}
}

// AccessContextMiddleware resolves the authenticated actor's effective role
// and organization exactly once per request and exposes the result to
// handlers and services. It also enriches authenticated responses with the
// X-User-Role, X-User-Organization and X-User-Permissions headers.
func AccessContextMiddleware(accessSvc portssvc.AccessSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Error("Access context requested without authenticated user")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		access, err := accessSvc.ResolveAccess(c.Request.Context(), userID)
		if err != nil {
			logger.Error("Failed to resolve access context", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve access"})
			return
		}

		c.Header("X-User-Role", string(access.EffectiveRole()))
		if access.OrganizationID != nil {
			c.Header("X-User-Organization", *access.OrganizationID)
		}
		if perms := accessSvc.UserPermissions(access); len(perms) > 0 {
			keys := make([]string, 0, len(perms))
			for res := range perms {
				keys = append(keys, string(res))
			}
			sort.Strings(keys)
			if encoded, err := json.Marshal(keys); err == nil {
				c.Header("X-User-Permissions", string(encoded))
			}
		}

		ctx := context.WithValue(c.Request.Context(), accessCtxKey, access)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
