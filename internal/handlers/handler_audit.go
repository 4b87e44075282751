package handlers

import (
	"net/http"
	"strconv"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// auditHandler handles HTTP requests for the audit trail. All routes are
// superuser-only, enforced in the service.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers audit trail routes.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	audit := rg.Group("/audit-events")
	{
		audit.GET("", h.listAuditEvents)
		audit.DELETE("/:id", h.deleteAuditEvent)
	}
}

// listAuditEvents godoc
// @Summary List audit events
// @Description Superuser only. Filterable by kind, actor and organization.
// @Tags audit
// @Produce json
// @Param eventKind query string false "Event kind"
// @Param userID query string false "Actor user ID"
// @Param organizationID query string false "Organization ID"
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {array} dto.AuditEventResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit-events [get]
func (h *auditHandler) listAuditEvents(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	filter := portsrepo.AuditEventFilter{}
	if kind := c.Query("eventKind"); kind != "" {
		k := domain.AuditEventKind(kind)
		filter.EventKind = &k
	}
	if userID := c.Query("userID"); userID != "" {
		filter.UserID = &userID
	}
	if orgID := c.Query("organizationID"); orgID != "" {
		filter.OrganizationID = &orgID
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	events, err := h.auditService.ListEvents(c.Request.Context(), access, filter)
	if err != nil {
		respondServiceError(c, err, "Failed to list audit events")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAuditEventsResponse(events))
}

// deleteAuditEvent godoc
// @Summary Delete an audit event
// @Description Superuser only; compliance cleanup
// @Tags audit
// @Produce json
// @Param id path string true "Audit event ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit-events/{id} [delete]
func (h *auditHandler) deleteAuditEvent(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	if err := h.auditService.DeleteEvent(c.Request.Context(), access, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete audit event")
		return
	}
	c.Status(http.StatusNoContent)
}
