package handlers

import (
	"net/http"

	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// employeeHandler handles HTTP requests for employee census records and
// dependents.
type employeeHandler struct {
	employeeService   portssvc.EmployeeSvcFacade
	enrollmentService portssvc.EnrollmentSvcFacade
}

func newEmployeeHandler(es portssvc.EmployeeSvcFacade, ens portssvc.EnrollmentSvcFacade) *employeeHandler {
	return &employeeHandler{
		employeeService:   es,
		enrollmentService: ens,
	}
}

// registerEmployeeRoutes registers employee census and dependent routes.
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade, enrollmentService portssvc.EnrollmentSvcFacade) {
	h := newEmployeeHandler(employeeService, enrollmentService)

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/:id", h.getEmployee)
		employees.PUT("/:id", h.updateEmployee)

		employees.POST("/:id/dependents", h.addDependent)
		employees.GET("/:id/dependents", h.listDependents)
		employees.DELETE("/:id/dependents/:dependentID", h.removeDependent)

		employees.GET("/:id/events", h.listEvents)
	}
}

// createEmployee godoc
// @Summary Add an employee census record
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), access, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// listEmployees godoc
// @Summary List employees the actor may see
// @Tags employees
// @Produce json
// @Param employerID query string false "Restrict to one employer"
// @Success 200 {array} dto.EmployeeResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), access, c.Query("employerID"))
	if err != nil {
		respondServiceError(c, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEmployeesResponse(employees))
}

// getEmployee godoc
// @Summary Get an employee by ID
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.FindEmployeeByID(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// updateEmployee godoc
// @Summary Update an employee census record
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id} [put]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), access, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// addDependent godoc
// @Summary Add a dependent to an employee
// @Description Appends a dependent_add enrollment event to the census trail
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param dependent body dto.CreateDependentRequest true "Dependent details"
// @Success 201 {object} dto.DependentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id}/dependents [post]
func (h *employeeHandler) addDependent(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req dto.CreateDependentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	dependent, err := h.employeeService.AddDependent(c.Request.Context(), access, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to add dependent")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDependentResponse(dependent))
}

// listDependents godoc
// @Summary List dependents of an employee
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {array} dto.DependentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id}/dependents [get]
func (h *employeeHandler) listDependents(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	dependents, err := h.employeeService.ListDependents(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list dependents")
		return
	}

	out := make([]dto.DependentResponse, 0, len(dependents))
	for i := range dependents {
		out = append(out, dto.ToDependentResponse(&dependents[i]))
	}
	c.JSON(http.StatusOK, out)
}

// removeDependent godoc
// @Summary Remove a dependent from an employee
// @Description Appends a dependent_remove enrollment event to the census trail
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID"
// @Param dependentID path string true "Dependent ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id}/dependents/{dependentID} [delete]
func (h *employeeHandler) removeDependent(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	if err := h.employeeService.RemoveDependent(c.Request.Context(), access, c.Param("id"), c.Param("dependentID")); err != nil {
		respondServiceError(c, err, "Failed to remove dependent")
		return
	}
	c.Status(http.StatusNoContent)
}

// listEvents godoc
// @Summary List enrollment events of an employee
// @Description Append-only history, most recent first
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {array} dto.EnrollmentEventResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{id}/events [get]
func (h *employeeHandler) listEvents(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	events, err := h.enrollmentService.ListEventsByEmployee(c.Request.Context(), access, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list enrollment events")
		return
	}

	out := make([]dto.EnrollmentEventResponse, 0, len(events))
	for i := range events {
		out = append(out, dto.ToEnrollmentEventResponse(&events[i]))
	}
	c.JSON(http.StatusOK, out)
}
