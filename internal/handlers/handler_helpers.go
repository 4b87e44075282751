package handlers

import (
	"errors"
	"net/http"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/benefitkit/benefits_admin_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// requireAccess pulls the resolved access context set by
// AccessContextMiddleware. Aborts with 401 when missing, which only happens if
// a route was registered outside the authenticated group by mistake.
func requireAccess(c *gin.Context) (domain.AccessContext, bool) {
	access, ok := middleware.GetAccessFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Access context missing from authenticated route")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return access, ok
}

// respondServiceError translates service errors into HTTP responses. AppError
// messages are safe for clients; anything unrecognized becomes a 500 with the
// fallback message.
func respondServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	message := fallback
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: message})
	case errors.Is(err, apperrors.ErrForbidden):
		body := gin.H{"error": "Forbidden: " + message}
		var denied *apperrors.PermissionDeniedError
		if errors.As(err, &denied) {
			body["required_permission"] = denied.Resource + ":" + denied.Action
		}
		if access, ok := middleware.GetAccessFromContext(c); ok {
			body["user_role"] = string(access.EffectiveRole())
		}
		c.JSON(http.StatusForbidden, body)
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: message})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
	default:
		logger.Error("Unhandled service error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
