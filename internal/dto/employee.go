package dto

import (
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest defines the payload for adding a census record.
type CreateEmployeeRequest struct {
	EmployerID     string `json:"employerID" binding:"required,uuid"`
	EmployeeNumber string `json:"employeeNumber" binding:"required"`

	FirstName     string    `json:"firstName" binding:"required"`
	LastName      string    `json:"lastName" binding:"required"`
	MiddleInitial string    `json:"middleInitial,omitempty" binding:"omitempty,len=1"`
	SSN           string    `json:"ssn" binding:"required"`
	DateOfBirth   time.Time `json:"dateOfBirth" binding:"required"`
	Gender        string    `json:"gender" binding:"required,oneof=M F"`
	MaritalStatus string    `json:"maritalStatus,omitempty" binding:"omitempty,oneof=single married divorced widowed"`

	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone,omitempty"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required,len=2"`
	ZipCode      string `json:"zipCode" binding:"required"`

	HireDate     time.Time       `json:"hireDate" binding:"required"`
	JobTitle     string          `json:"jobTitle,omitempty"`
	Department   string          `json:"department,omitempty"`
	Salary       decimal.Decimal `json:"salary" binding:"required"`
	HoursPerWeek decimal.Decimal `json:"hoursPerWeek,omitempty"`

	MedicalCoverageTier string `json:"medicalCoverageTier,omitempty" binding:"omitempty,oneof=employee_only employee_spouse employee_children family"`
	DentalCoverageTier  string `json:"dentalCoverageTier,omitempty" binding:"omitempty,oneof=employee_only employee_spouse employee_children family"`
	VisionCoverageTier  string `json:"visionCoverageTier,omitempty" binding:"omitempty,oneof=employee_only employee_spouse employee_children family"`
}

// UpdateEmployeeRequest defines the payload for updating a census record.
type UpdateEmployeeRequest struct {
	Email            *string          `json:"email,omitempty" binding:"omitempty,email"`
	Phone            *string          `json:"phone,omitempty"`
	JobTitle         *string          `json:"jobTitle,omitempty"`
	Department       *string          `json:"department,omitempty"`
	Salary           *decimal.Decimal `json:"salary,omitempty"`
	EmploymentStatus *string          `json:"employmentStatus,omitempty"`

	MedicalCoverageTier *string `json:"medicalCoverageTier,omitempty" binding:"omitempty,oneof=employee_only employee_spouse employee_children family"`
	DentalCoverageTier  *string `json:"dentalCoverageTier,omitempty" binding:"omitempty,oneof=employee_only employee_spouse employee_children family"`
	VisionCoverageTier  *string `json:"visionCoverageTier,omitempty" binding:"omitempty,oneof=employee_only employee_spouse employee_children family"`
}

// CreateDependentRequest defines the payload for adding a dependent.
type CreateDependentRequest struct {
	FirstName    string    `json:"firstName" binding:"required"`
	LastName     string    `json:"lastName" binding:"required"`
	SSN          string    `json:"ssn,omitempty"`
	DateOfBirth  time.Time `json:"dateOfBirth" binding:"required"`
	Gender       string    `json:"gender" binding:"required,oneof=M F"`
	Relationship string    `json:"relationship" binding:"required,oneof=spouse child domestic_partner"`

	MedicalCoverage bool `json:"medicalCoverage"`
	DentalCoverage  bool `json:"dentalCoverage"`
	VisionCoverage  bool `json:"visionCoverage"`
}

// EmployeeResponse defines the employee data returned to clients. SSN is
// never included.
type EmployeeResponse struct {
	EmployeeID     string `json:"employeeID"`
	EmployerID     string `json:"employerID"`
	EmployeeNumber string `json:"employeeNumber"`

	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Email       string    `json:"email"`

	HireDate         time.Time `json:"hireDate"`
	JobTitle         string    `json:"jobTitle,omitempty"`
	EmploymentStatus string    `json:"employmentStatus"`

	MedicalCoverageTier string `json:"medicalCoverageTier,omitempty"`
	DentalCoverageTier  string `json:"dentalCoverageTier,omitempty"`
	VisionCoverageTier  string `json:"visionCoverageTier,omitempty"`
}

// ToEmployeeResponse maps a domain employee to its response DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:          e.EmployeeID,
		EmployerID:          e.EmployerID,
		EmployeeNumber:      e.EmployeeNumber,
		FirstName:           e.FirstName,
		LastName:            e.LastName,
		DateOfBirth:         e.DateOfBirth,
		Email:               e.Email,
		HireDate:            e.HireDate,
		JobTitle:            e.JobTitle,
		EmploymentStatus:    e.EmploymentStatus,
		MedicalCoverageTier: string(e.MedicalCoverageTier),
		DentalCoverageTier:  string(e.DentalCoverageTier),
		VisionCoverageTier:  string(e.VisionCoverageTier),
	}
}

// ToListEmployeesResponse maps a slice of employees.
func ToListEmployeesResponse(es []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(es))
	for i := range es {
		out = append(out, ToEmployeeResponse(&es[i]))
	}
	return out
}

// DependentResponse defines the dependent data returned to clients.
type DependentResponse struct {
	DependentID  string    `json:"dependentID"`
	EmployeeID   string    `json:"employeeID"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	Relationship string    `json:"relationship"`

	MedicalCoverage bool `json:"medicalCoverage"`
	DentalCoverage  bool `json:"dentalCoverage"`
	VisionCoverage  bool `json:"visionCoverage"`
}

// ToDependentResponse maps a domain dependent to its response DTO.
func ToDependentResponse(d *domain.Dependent) DependentResponse {
	return DependentResponse{
		DependentID:     d.DependentID,
		EmployeeID:      d.EmployeeID,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		DateOfBirth:     d.DateOfBirth,
		Relationship:    string(d.Relationship),
		MedicalCoverage: d.MedicalCoverage,
		DentalCoverage:  d.DentalCoverage,
		VisionCoverage:  d.VisionCoverage,
	}
}
