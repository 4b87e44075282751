package handlers

import (
	"net/http"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// organizationHandler handles HTTP requests for organizations and memberships.
type organizationHandler struct {
	orgService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{orgService: os}
}

// registerOrganizationRoutes registers all organization-related routes.
func registerOrganizationRoutes(rg *gin.RouterGroup, orgService portssvc.OrganizationSvcFacade) {
	h := newOrganizationHandler(orgService)

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("", h.listOrganizations)
		orgs.GET("/:id", h.getOrganization)
		orgs.PUT("/:id", h.updateOrganization)
		orgs.DELETE("/:id", h.deactivateOrganization)

		orgs.POST("/:id/memberships", h.createMembership)
		orgs.GET("/:id/memberships", h.listMemberships)
		orgs.PUT("/:id/memberships/:membershipID", h.changeMembershipRole)
		orgs.DELETE("/:id/memberships/:membershipID", h.removeMembership)
	}
}

// createOrganization godoc
// @Summary Create an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	org, err := h.orgService.CreateOrganization(c.Request.Context(), access, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create organization")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listOrganizations godoc
// @Summary List organizations the actor may see
// @Tags organizations
// @Produce json
// @Success 200 {array} dto.OrganizationResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listOrganizations(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	orgs, err := h.orgService.ListOrganizations(c.Request.Context(), access)
	if err != nil {
		respondServiceError(c, err, "Failed to list organizations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrganizationsResponse(orgs))
}

// getOrganization godoc
// @Summary Get an organization by ID
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	org, err := h.orgService.FindOrganizationByID(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// updateOrganization godoc
// @Summary Update an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param organization body dto.UpdateOrganizationRequest true "Fields to update"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{id} [put]
func (h *organizationHandler) updateOrganization(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	org, err := h.orgService.UpdateOrganization(c.Request.Context(), access, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// deactivateOrganization godoc
// @Summary Deactivate an organization
// @Description Soft-disables the organization; organizations are never hard deleted
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{id} [delete]
func (h *organizationHandler) deactivateOrganization(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	if err := h.orgService.DeactivateOrganization(c.Request.Context(), access, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to deactivate organization")
		return
	}
	c.Status(http.StatusNoContent)
}

// createMembership godoc
// @Summary Add a user to an organization
// @Description The membership write and its audit event commit together
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param membership body dto.CreateMembershipRequest true "Membership details"
// @Success 201 {object} dto.MembershipResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{id}/memberships [post]
func (h *organizationHandler) createMembership(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if !domain.Role(req.Role).IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown role: " + req.Role})
		return
	}

	m, err := h.orgService.CreateMembership(c.Request.Context(), access, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create membership")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMembershipResponse(m))
}

// listMemberships godoc
// @Summary List memberships of an organization
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {array} dto.MembershipResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{id}/memberships [get]
func (h *organizationHandler) listMemberships(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	ms, err := h.orgService.ListMemberships(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list memberships")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMembershipsResponse(ms))
}

// changeMembershipRole godoc
// @Summary Change a membership's role
// @Description Emits one role_change audit event carrying old and new role
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param membershipID path string true "Membership ID"
// @Param role body dto.ChangeMembershipRoleRequest true "New role"
// @Success 200 {object} dto.MembershipResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{id}/memberships/{membershipID} [put]
func (h *organizationHandler) changeMembershipRole(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.ChangeMembershipRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	role := domain.Role(req.Role)
	if !role.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown role: " + req.Role})
		return
	}

	m, err := h.orgService.ChangeMembershipRole(c.Request.Context(), access, c.Param("id"), c.Param("membershipID"), role)
	if err != nil {
		respondServiceError(c, err, "Failed to change membership role")
		return
	}
	c.JSON(http.StatusOK, dto.ToMembershipResponse(m))
}

// removeMembership godoc
// @Summary Remove a user from an organization
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Param membershipID path string true "Membership ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{id}/memberships/{membershipID} [delete]
func (h *organizationHandler) removeMembership(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	if err := h.orgService.RemoveMembership(c.Request.Context(), access, c.Param("id"), c.Param("membershipID")); err != nil {
		respondServiceError(c, err, "Failed to remove membership")
		return
	}
	c.Status(http.StatusNoContent)
}
