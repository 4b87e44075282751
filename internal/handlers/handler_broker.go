package handlers

import (
	"net/http"

	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// brokerHandler handles HTTP requests for brokers and their employer groups.
type brokerHandler struct {
	brokerService portssvc.BrokerSvcFacade
}

func newBrokerHandler(bs portssvc.BrokerSvcFacade) *brokerHandler {
	return &brokerHandler{brokerService: bs}
}

// registerBrokerRoutes registers broker and employer routes.
func registerBrokerRoutes(rg *gin.RouterGroup, brokerService portssvc.BrokerSvcFacade) {
	h := newBrokerHandler(brokerService)

	brokers := rg.Group("/brokers")
	{
		brokers.POST("", h.createBroker)
		brokers.GET("", h.listBrokers)
		brokers.GET("/:id", h.getBroker)
	}

	employers := rg.Group("/employers")
	{
		employers.POST("", h.createEmployer)
		employers.GET("", h.listEmployers)
		employers.GET("/:id", h.getEmployer)
		employers.PUT("/:id", h.updateEmployer)
	}
}

// createBroker godoc
// @Summary Create a broker agency
// @Description Creates the broker and its tenant organization
// @Tags brokers
// @Accept json
// @Produce json
// @Param broker body dto.CreateBrokerRequest true "Broker details"
// @Success 201 {object} dto.BrokerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /brokers [post]
func (h *brokerHandler) createBroker(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreateBrokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	broker, err := h.brokerService.CreateBroker(c.Request.Context(), access, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create broker")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBrokerResponse(broker))
}

// listBrokers godoc
// @Summary List all brokers
// @Description Superuser only
// @Tags brokers
// @Produce json
// @Success 200 {array} dto.BrokerResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /brokers [get]
func (h *brokerHandler) listBrokers(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	brokers, err := h.brokerService.ListBrokers(c.Request.Context(), access)
	if err != nil {
		respondServiceError(c, err, "Failed to list brokers")
		return
	}

	out := make([]dto.BrokerResponse, 0, len(brokers))
	for i := range brokers {
		out = append(out, dto.ToBrokerResponse(&brokers[i]))
	}
	c.JSON(http.StatusOK, out)
}

// getBroker godoc
// @Summary Get a broker by ID
// @Tags brokers
// @Produce json
// @Param id path string true "Broker ID"
// @Success 200 {object} dto.BrokerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /brokers/{id} [get]
func (h *brokerHandler) getBroker(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	broker, err := h.brokerService.FindBrokerByID(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve broker")
		return
	}
	c.JSON(http.StatusOK, dto.ToBrokerResponse(broker))
}

// createEmployer godoc
// @Summary Create an employer group
// @Description Creates the employer under a broker together with its tenant organization
// @Tags employers
// @Accept json
// @Produce json
// @Param employer body dto.CreateEmployerRequest true "Employer details"
// @Success 201 {object} dto.EmployerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /employers [post]
func (h *brokerHandler) createEmployer(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreateEmployerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	employer, err := h.brokerService.CreateEmployer(c.Request.Context(), access, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create employer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployerResponse(employer))
}

// listEmployers godoc
// @Summary List employers the actor may see
// @Tags employers
// @Produce json
// @Success 200 {array} dto.EmployerResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /employers [get]
func (h *brokerHandler) listEmployers(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	employers, err := h.brokerService.ListEmployers(c.Request.Context(), access)
	if err != nil {
		respondServiceError(c, err, "Failed to list employers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEmployersResponse(employers))
}

// getEmployer godoc
// @Summary Get an employer by ID
// @Tags employers
// @Produce json
// @Param id path string true "Employer ID"
// @Success 200 {object} dto.EmployerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employers/{id} [get]
func (h *brokerHandler) getEmployer(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	employer, err := h.brokerService.FindEmployerByID(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve employer")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployerResponse(employer))
}

// updateEmployer godoc
// @Summary Update an employer group
// @Tags employers
// @Accept json
// @Produce json
// @Param id path string true "Employer ID"
// @Param employer body dto.UpdateEmployerRequest true "Fields to update"
// @Success 200 {object} dto.EmployerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employers/{id} [put]
func (h *brokerHandler) updateEmployer(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.UpdateEmployerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	employer, err := h.brokerService.UpdateEmployer(c.Request.Context(), access, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update employer")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployerResponse(employer))
}
