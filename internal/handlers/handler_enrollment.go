package handlers

import (
	"net/http"

	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// enrollmentHandler handles HTTP requests for enrollment periods, employee
// enrollments and plan elections.
type enrollmentHandler struct {
	enrollmentService portssvc.EnrollmentSvcFacade
}

func newEnrollmentHandler(es portssvc.EnrollmentSvcFacade) *enrollmentHandler {
	return &enrollmentHandler{enrollmentService: es}
}

// registerEnrollmentRoutes registers enrollment period and enrollment routes.
func registerEnrollmentRoutes(rg *gin.RouterGroup, enrollmentService portssvc.EnrollmentSvcFacade) {
	h := newEnrollmentHandler(enrollmentService)

	periods := rg.Group("/enrollment-periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:id", h.getPeriod)
		periods.POST("/:id/activate", h.activatePeriod)
		periods.POST("/:id/close", h.closePeriod)
		periods.GET("/:id/enrollments", h.listEnrollmentsByPeriod)
	}

	enrollments := rg.Group("/enrollments")
	{
		enrollments.POST("", h.createEnrollment)
		enrollments.GET("/:id", h.getEnrollment)
		enrollments.POST("/:id/start", h.startEnrollment)
		enrollments.POST("/:id/submit", h.submitEnrollment)
		enrollments.POST("/:id/approve", h.approveEnrollment)
		enrollments.POST("/:id/decline", h.declineEnrollment)

		enrollments.POST("/:id/elections", h.electPlan)
		enrollments.POST("/:id/waive", h.waivePlan)
		enrollments.GET("/:id/elections", h.listPlanEnrollments)
	}

	rg.POST("/plan-enrollments/:id/terminate", h.terminatePlanEnrollment)
}

// createPeriod godoc
// @Summary Open an enrollment period
// @Description Creates a pending enrollment window for an employer
// @Tags enrollment-periods
// @Accept json
// @Produce json
// @Param period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollment-periods [post]
func (h *enrollmentHandler) createPeriod(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	period, err := h.enrollmentService.CreatePeriod(c.Request.Context(), access, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create enrollment period")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List enrollment periods of an employer
// @Tags enrollment-periods
// @Produce json
// @Param employerID query string true "Employer ID"
// @Success 200 {array} dto.PeriodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollment-periods [get]
func (h *enrollmentHandler) listPeriods(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	employerID := c.Query("employerID")
	if employerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "employerID query parameter is required"})
		return
	}

	periods, err := h.enrollmentService.ListPeriodsByEmployer(c.Request.Context(), access, employerID)
	if err != nil {
		respondServiceError(c, err, "Failed to list enrollment periods")
		return
	}

	out := make([]dto.PeriodResponse, 0, len(periods))
	for i := range periods {
		out = append(out, dto.ToPeriodResponse(&periods[i]))
	}
	c.JSON(http.StatusOK, out)
}

// getPeriod godoc
// @Summary Get an enrollment period by ID
// @Tags enrollment-periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollment-periods/{id} [get]
func (h *enrollmentHandler) getPeriod(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	period, err := h.enrollmentService.FindPeriodByID(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve enrollment period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// activatePeriod godoc
// @Summary Activate a pending enrollment period
// @Tags enrollment-periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollment-periods/{id}/activate [post]
func (h *enrollmentHandler) activatePeriod(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	period, err := h.enrollmentService.ActivatePeriod(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to activate enrollment period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close an active enrollment period
// @Tags enrollment-periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollment-periods/{id}/close [post]
func (h *enrollmentHandler) closePeriod(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	period, err := h.enrollmentService.ClosePeriod(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to close enrollment period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// listEnrollmentsByPeriod godoc
// @Summary List enrollments of a period
// @Tags enrollments
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {array} dto.EnrollmentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollment-periods/{id}/enrollments [get]
func (h *enrollmentHandler) listEnrollmentsByPeriod(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.ListEnrollmentsByPeriod(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list enrollments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEnrollmentsResponse(enrollments))
}

// createEnrollment godoc
// @Summary Create an employee enrollment in a period
// @Description Starts the state machine at not_started; duplicate (employee, period) pairs conflict
// @Tags enrollments
// @Accept json
// @Produce json
// @Param enrollment body dto.CreateEnrollmentRequest true "Enrollment details"
// @Success 201 {object} dto.EnrollmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollments [post]
func (h *enrollmentHandler) createEnrollment(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	enrollment, err := h.enrollmentService.CreateEnrollment(c.Request.Context(), access, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create enrollment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEnrollmentResponse(enrollment))
}

// getEnrollment godoc
// @Summary Get an enrollment by ID
// @Tags enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollments/{id} [get]
func (h *enrollmentHandler) getEnrollment(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.FindEnrollmentByID(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve enrollment")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrollmentResponse(enrollment))
}

// startEnrollment godoc
// @Summary Start an enrollment
// @Description Transitions not_started to in_progress
// @Tags enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollments/{id}/start [post]
func (h *enrollmentHandler) startEnrollment(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.StartEnrollment(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to start enrollment")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrollmentResponse(enrollment))
}

// submitEnrollment godoc
// @Summary Submit an enrollment for approval
// @Description Transitions in_progress to submitted and appends an enrollment event
// @Tags enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollments/{id}/submit [post]
func (h *enrollmentHandler) submitEnrollment(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.SubmitEnrollment(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to submit enrollment")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrollmentResponse(enrollment))
}

// approveEnrollment godoc
// @Summary Approve a submitted enrollment
// @Tags enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollments/{id}/approve [post]
func (h *enrollmentHandler) approveEnrollment(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.ApproveEnrollment(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to approve enrollment")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrollmentResponse(enrollment))
}

// declineEnrollment godoc
// @Summary Decline an enrollment
// @Description Administrative terminal transition from any non-terminal state
// @Tags enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollments/{id}/decline [post]
func (h *enrollmentHandler) declineEnrollment(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.DeclineEnrollment(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to decline enrollment")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrollmentResponse(enrollment))
}

// electPlan godoc
// @Summary Elect a plan within an enrollment
// @Description Computes premium and contribution split from the offering; legal only while in_progress
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param election body dto.ElectPlanRequest true "Election details"
// @Success 201 {object} dto.PlanEnrollmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollments/{id}/elections [post]
func (h *enrollmentHandler) electPlan(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.ElectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	pe, err := h.enrollmentService.ElectPlan(c.Request.Context(), access, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to elect plan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlanEnrollmentResponse(pe))
}

// waivePlan godoc
// @Summary Waive a plan within an enrollment
// @Description Permitted only when the period allows waiving; appends a waiver event
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param waiver body dto.WaivePlanRequest true "Waiver details"
// @Success 201 {object} dto.PlanEnrollmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollments/{id}/waive [post]
func (h *enrollmentHandler) waivePlan(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.WaivePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	pe, err := h.enrollmentService.WaivePlan(c.Request.Context(), access, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to waive plan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlanEnrollmentResponse(pe))
}

// listPlanEnrollments godoc
// @Summary List plan elections under an enrollment
// @Tags enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {array} dto.PlanEnrollmentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /enrollments/{id}/elections [get]
func (h *enrollmentHandler) listPlanEnrollments(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	elections, err := h.enrollmentService.ListPlanEnrollments(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list plan elections")
		return
	}

	out := make([]dto.PlanEnrollmentResponse, 0, len(elections))
	for i := range elections {
		out = append(out, dto.ToPlanEnrollmentResponse(&elections[i]))
	}
	c.JSON(http.StatusOK, out)
}

// terminatePlanEnrollment godoc
// @Summary Terminate an enrolled plan election
// @Description Ends coverage effective the given date and appends a termination event
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path string true "Plan enrollment ID"
// @Param termination body dto.TerminatePlanEnrollmentRequest true "Termination details"
// @Success 200 {object} dto.PlanEnrollmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /plan-enrollments/{id}/terminate [post]
func (h *enrollmentHandler) terminatePlanEnrollment(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.TerminatePlanEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	pe, err := h.enrollmentService.TerminatePlanEnrollment(c.Request.Context(), access, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to terminate plan enrollment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanEnrollmentResponse(pe))
}
