package middleware

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// accessCtxKey is the key used to store the actor's resolved access context.
const accessCtxKey = contextKey("accessContext")

// requestMetaKey is the key used to store client request metadata.
const requestMetaKey = contextKey("requestMeta")

// RequestMeta carries the client network details recorded on audit events.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetAccessFromContext retrieves the actor's resolved access context, set by
// AccessContextMiddleware. Resolved once per request so the permission check
// and any collection filtering agree.
func GetAccessFromContext(c *gin.Context) (domain.AccessContext, bool) {
	val := c.Request.Context().Value(accessCtxKey)
	if val == nil {
		return domain.AccessContext{}, false
	}
	access, ok := val.(domain.AccessContext)
	return access, ok
}

// GetRequestMetaFromCtx retrieves the client request metadata from a standard
// context. Returns the zero value when absent (e.g. batch commands).
func GetRequestMetaFromCtx(ctx context.Context) RequestMeta {
	meta, ok := ctx.Value(requestMetaKey).(RequestMeta)
	if !ok {
		return RequestMeta{}
	}
	return meta
}

// WithRequestMeta stores client request metadata in a standard context.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey, meta)
}
