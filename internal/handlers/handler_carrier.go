package handlers

import (
	"net/http"

	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// carrierHandler handles HTTP requests for carriers, plans, premiums and
// employer offerings.
type carrierHandler struct {
	carrierService portssvc.CarrierSvcFacade
}

func newCarrierHandler(cs portssvc.CarrierSvcFacade) *carrierHandler {
	return &carrierHandler{carrierService: cs}
}

// registerCarrierRoutes registers carrier, plan and offering routes.
func registerCarrierRoutes(rg *gin.RouterGroup, carrierService portssvc.CarrierSvcFacade) {
	h := newCarrierHandler(carrierService)

	carriers := rg.Group("/carriers")
	{
		carriers.POST("", h.createCarrier)
		carriers.GET("", h.listCarriers)
		carriers.GET("/:id", h.getCarrier)
		carriers.GET("/:id/plans", h.listPlans)
	}

	plans := rg.Group("/plans")
	{
		plans.POST("", h.createPlan)
		plans.GET("/:id", h.getPlan)
		plans.POST("/premiums", h.addPremium)
		plans.GET("/:id/premiums", h.listPremiums)
	}

	offerings := rg.Group("/offerings")
	{
		offerings.POST("", h.createOffering)
	}

	rg.GET("/employers/:id/offerings", h.listOfferings)
}

// createCarrier godoc
// @Summary Create an insurance carrier
// @Tags carriers
// @Accept json
// @Produce json
// @Param carrier body dto.CreateCarrierRequest true "Carrier details"
// @Success 201 {object} dto.CarrierResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /carriers [post]
func (h *carrierHandler) createCarrier(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreateCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	carrier, err := h.carrierService.CreateCarrier(c.Request.Context(), access, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create carrier")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCarrierResponse(carrier))
}

// listCarriers godoc
// @Summary List carriers
// @Tags carriers
// @Produce json
// @Param onlyActive query bool false "Restrict to active carriers"
// @Success 200 {array} dto.CarrierResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /carriers [get]
func (h *carrierHandler) listCarriers(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	onlyActive := c.Query("onlyActive") == "true"
	carriers, err := h.carrierService.ListCarriers(c.Request.Context(), access, onlyActive)
	if err != nil {
		respondServiceError(c, err, "Failed to list carriers")
		return
	}

	out := make([]dto.CarrierResponse, 0, len(carriers))
	for i := range carriers {
		out = append(out, dto.ToCarrierResponse(&carriers[i]))
	}
	c.JSON(http.StatusOK, out)
}

// getCarrier godoc
// @Summary Get a carrier by ID
// @Tags carriers
// @Produce json
// @Param id path string true "Carrier ID"
// @Success 200 {object} dto.CarrierResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /carriers/{id} [get]
func (h *carrierHandler) getCarrier(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	carrier, err := h.carrierService.FindCarrierByID(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve carrier")
		return
	}
	c.JSON(http.StatusOK, dto.ToCarrierResponse(carrier))
}

// listPlans godoc
// @Summary List plans of a carrier
// @Tags carriers
// @Produce json
// @Param id path string true "Carrier ID"
// @Success 200 {array} dto.PlanResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /carriers/{id}/plans [get]
func (h *carrierHandler) listPlans(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	plans, err := h.carrierService.ListPlansByCarrier(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list plans")
		return
	}

	out := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, dto.ToPlanResponse(&plans[i]))
	}
	c.JSON(http.StatusOK, out)
}

// createPlan godoc
// @Summary Create a plan under a carrier
// @Tags plans
// @Accept json
// @Produce json
// @Param plan body dto.CreatePlanRequest true "Plan details"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /plans [post]
func (h *carrierHandler) createPlan(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	plan, err := h.carrierService.CreatePlan(c.Request.Context(), access, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create plan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlanResponse(plan))
}

// getPlan godoc
// @Summary Get a plan by ID
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.PlanResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /plans/{id} [get]
func (h *carrierHandler) getPlan(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	plan, err := h.carrierService.FindPlanByID(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

// addPremium godoc
// @Summary Record a premium rate for a plan
// @Tags plans
// @Accept json
// @Produce json
// @Param premium body dto.CreatePremiumRequest true "Premium details"
// @Success 201 {object} dto.PremiumResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /plans/premiums [post]
func (h *carrierHandler) addPremium(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreatePremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	premium, err := h.carrierService.AddPremium(c.Request.Context(), access, req)
	if err != nil {
		respondServiceError(c, err, "Failed to add premium")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPremiumResponse(premium))
}

// listPremiums godoc
// @Summary List premium rows of a plan
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {array} dto.PremiumResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /plans/{id}/premiums [get]
func (h *carrierHandler) listPremiums(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	premiums, err := h.carrierService.ListPremiums(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list premiums")
		return
	}

	out := make([]dto.PremiumResponse, 0, len(premiums))
	for i := range premiums {
		out = append(out, dto.ToPremiumResponse(&premiums[i]))
	}
	c.JSON(http.StatusOK, out)
}

// createOffering godoc
// @Summary Offer a plan to an employer
// @Description Makes a plan electable by an employer's employees under a contribution rule
// @Tags offerings
// @Accept json
// @Produce json
// @Param offering body dto.CreateOfferingRequest true "Offering details"
// @Success 201 {object} dto.OfferingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /offerings [post]
func (h *carrierHandler) createOffering(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	offering, err := h.carrierService.CreateOffering(c.Request.Context(), access, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create offering")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOfferingResponse(offering))
}

// listOfferings godoc
// @Summary List the plans an employer offers
// @Tags offerings
// @Produce json
// @Param id path string true "Employer ID"
// @Success 200 {array} dto.OfferingResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employers/{id}/offerings [get]
func (h *carrierHandler) listOfferings(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	offerings, err := h.carrierService.ListOfferingsByEmployer(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list offerings")
		return
	}

	out := make([]dto.OfferingResponse, 0, len(offerings))
	for i := range offerings {
		out = append(out, dto.ToOfferingResponse(&offerings[i]))
	}
	c.JSON(http.StatusOK, out)
}
