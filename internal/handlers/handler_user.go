package handlers

import (
	"net/http"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService   portssvc.UserSvcFacade
	accessService portssvc.AccessSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade, as portssvc.AccessSvcFacade) *userHandler {
	return &userHandler{
		userService:   us,
		accessService: as,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, accessService portssvc.AccessSvcFacade) {
	h := newUserHandler(userService, accessService)

	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.GET("/me/permissions", h.getMyPermissions)
		users.GET("/:id", h.getUser)
		users.PUT("/:id/role", h.assignRole)
	}
}

// getMe godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	user, err := h.userService.FindUserByID(c.Request.Context(), access.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getMyPermissions godoc
// @Summary Get the authenticated user's effective permissions
// @Description Returns the actor's role, organization and resource-action grants
// @Tags users
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/permissions [get]
func (h *userHandler) getMyPermissions(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":           access.EffectiveRole(),
		"organizationID": access.OrganizationID,
		"isSuperuser":    access.IsSuperuser,
		"permissions":    h.accessService.UserPermissions(access),
	})
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	targetID := c.Param("id")

	if targetID != access.UserID {
		allowed, err := h.accessService.CanManageUser(c.Request.Context(), access, targetID)
		if err != nil {
			respondServiceError(c, err, "Failed to retrieve user")
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
			return
		}
	}

	user, err := h.userService.FindUserByID(c.Request.Context(), targetID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// assignRole godoc
// @Summary Assign a role to a user
// @Description Sets the target user's profile role; the write and its audit event commit together
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param role body dto.AssignRoleRequest true "Role assignment"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/role [put]
func (h *userHandler) assignRole(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	targetID := c.Param("id")

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	role := domain.Role(req.Role)
	if !role.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown role: " + req.Role})
		return
	}

	if err := h.userService.AssignRole(c.Request.Context(), access, targetID, role, req.OrganizationID); err != nil {
		respondServiceError(c, err, "Failed to assign role")
		return
	}
	c.Status(http.StatusNoContent)
}
