package dto

import (
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePeriodRequest defines the payload for opening an enrollment period.
type CreatePeriodRequest struct {
	EmployerID            string    `json:"employerID" binding:"required,uuid"`
	Name                  string    `json:"name" binding:"required"`
	PeriodType            string    `json:"periodType" binding:"required,oneof=open_enrollment initial_enrollment qualifying_event special_enrollment"`
	StartDate             time.Time `json:"startDate" binding:"required"`
	EndDate               time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
	CoverageEffectiveDate time.Time `json:"coverageEffectiveDate" binding:"required"`
	AllowWaive            *bool     `json:"allowWaive,omitempty"`
	RequireAllPlans       bool      `json:"requireAllPlans"`
}

// CreateEnrollmentRequest defines the payload for creating an employee enrollment.
type CreateEnrollmentRequest struct {
	EmployeeID string `json:"employeeID" binding:"required,uuid"`
	PeriodID   string `json:"periodID" binding:"required,uuid"`
}

// ElectPlanRequest defines the payload for enrolling in a plan.
type ElectPlanRequest struct {
	PlanID              string   `json:"planID" binding:"required,uuid"`
	CoverageTier        string   `json:"coverageTier" binding:"required,oneof=employee_only employee_spouse employee_children family"`
	CoveredDependentIDs []string `json:"coveredDependentIDs,omitempty" binding:"omitempty,dive,uuid"`
}

// WaivePlanRequest defines the payload for waiving a plan.
type WaivePlanRequest struct {
	PlanID string `json:"planID" binding:"required,uuid"`
	Reason string `json:"reason,omitempty"`
}

// TerminatePlanEnrollmentRequest defines the payload for terminating coverage.
type TerminatePlanEnrollmentRequest struct {
	TerminationDate time.Time `json:"termination_date" binding:"required"`
	Reason          string    `json:"reason,omitempty"`
}

// PeriodResponse defines the enrollment period data returned to clients.
type PeriodResponse struct {
	PeriodID              string    `json:"periodID"`
	EmployerID            string    `json:"employerID"`
	Name                  string    `json:"name"`
	PeriodType            string    `json:"periodType"`
	Status                string    `json:"status"`
	StartDate             time.Time `json:"startDate"`
	EndDate               time.Time `json:"endDate"`
	CoverageEffectiveDate time.Time `json:"coverageEffectiveDate"`
	AllowWaive            bool      `json:"allowWaive"`
	RequireAllPlans       bool      `json:"requireAllPlans"`
}

// ToPeriodResponse maps a domain enrollment period to its response DTO.
func ToPeriodResponse(p *domain.EnrollmentPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:              p.PeriodID,
		EmployerID:            p.EmployerID,
		Name:                  p.Name,
		PeriodType:            string(p.PeriodType),
		Status:                string(p.Status),
		StartDate:             p.StartDate,
		EndDate:               p.EndDate,
		CoverageEffectiveDate: p.CoverageEffectiveDate,
		AllowWaive:            p.AllowWaive,
		RequireAllPlans:       p.RequireAllPlans,
	}
}

// EnrollmentResponse defines the employee enrollment data returned to clients.
type EnrollmentResponse struct {
	EnrollmentID   string     `json:"enrollmentID"`
	EmployeeID     string     `json:"employeeID"`
	PeriodID       string     `json:"periodID"`
	Status         string     `json:"status"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy     *string    `json:"approvedBy,omitempty"`
	WaivedCoverage bool       `json:"waivedCoverage"`
}

// ToEnrollmentResponse maps a domain employee enrollment to its response DTO.
func ToEnrollmentResponse(e *domain.EmployeeEnrollment) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentID:   e.EnrollmentID,
		EmployeeID:     e.EmployeeID,
		PeriodID:       e.PeriodID,
		Status:         string(e.Status),
		StartedAt:      e.StartedAt,
		SubmittedAt:    e.SubmittedAt,
		ApprovedAt:     e.ApprovedAt,
		ApprovedBy:     e.ApprovedBy,
		WaivedCoverage: e.WaivedCoverage,
	}
}

// ToListEnrollmentsResponse maps a slice of employee enrollments.
func ToListEnrollmentsResponse(es []domain.EmployeeEnrollment) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(es))
	for i := range es {
		out = append(out, ToEnrollmentResponse(&es[i]))
	}
	return out
}

// PlanEnrollmentResponse defines the plan election data returned to clients.
type PlanEnrollmentResponse struct {
	PlanEnrollmentID     string          `json:"planEnrollmentID"`
	EnrollmentID         string          `json:"enrollmentID"`
	PlanID               string          `json:"planID"`
	Status               string          `json:"status"`
	CoverageTier         string          `json:"coverageTier"`
	MonthlyPremium       decimal.Decimal `json:"monthlyPremium"`
	EmployeeContribution decimal.Decimal `json:"employeeContribution"`
	EmployerContribution decimal.Decimal `json:"employerContribution"`
	EffectiveDate        time.Time       `json:"effectiveDate"`
	TerminationDate      *time.Time      `json:"terminationDate,omitempty"`
	CoveredDependentIDs  []string        `json:"coveredDependentIDs,omitempty"`
}

// ToPlanEnrollmentResponse maps a domain plan enrollment to its response DTO.
func ToPlanEnrollmentResponse(pe *domain.PlanEnrollment) PlanEnrollmentResponse {
	return PlanEnrollmentResponse{
		PlanEnrollmentID:     pe.PlanEnrollmentID,
		EnrollmentID:         pe.EnrollmentID,
		PlanID:               pe.PlanID,
		Status:               string(pe.Status),
		CoverageTier:         string(pe.CoverageTier),
		MonthlyPremium:       pe.MonthlyPremium,
		EmployeeContribution: pe.EmployeeContribution,
		EmployerContribution: pe.EmployerContribution,
		EffectiveDate:        pe.EffectiveDate,
		TerminationDate:      pe.TerminationDate,
		CoveredDependentIDs:  pe.CoveredDependentIDs,
	}
}

// EnrollmentEventResponse defines the enrollment event data returned to clients.
type EnrollmentEventResponse struct {
	EventID          string    `json:"eventID"`
	EmployeeID       string    `json:"employeeID"`
	EventType        string    `json:"eventType"`
	EffectiveDate    time.Time `json:"effectiveDate"`
	PlanEnrollmentID *string   `json:"planEnrollmentID,omitempty"`
	Reason           string    `json:"reason,omitempty"`
	ProcessedBy      *string   `json:"processedBy,omitempty"`
	ProcessedAt      time.Time `json:"processedAt"`
}

// ToEnrollmentEventResponse maps a domain enrollment event to its response DTO.
func ToEnrollmentEventResponse(e *domain.EnrollmentEvent) EnrollmentEventResponse {
	return EnrollmentEventResponse{
		EventID:          e.EventID,
		EmployeeID:       e.EmployeeID,
		EventType:        string(e.EventType),
		EffectiveDate:    e.EffectiveDate,
		PlanEnrollmentID: e.PlanEnrollmentID,
		Reason:           e.Reason,
		ProcessedBy:      e.ProcessedBy,
		ProcessedAt:      e.ProcessedAt,
	}
}
