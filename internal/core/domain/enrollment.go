package domain

import (
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PeriodType classifies why an enrollment window is open.
type PeriodType string

const (
	PeriodOpenEnrollment    PeriodType = "open_enrollment"
	PeriodInitialEnrollment PeriodType = "initial_enrollment"
	PeriodQualifyingEvent   PeriodType = "qualifying_event"
	PeriodSpecialEnrollment PeriodType = "special_enrollment"
)

// PeriodStatus is the lifecycle status of an enrollment period.
type PeriodStatus string

const (
	PeriodStatusPending   PeriodStatus = "pending"
	PeriodStatusActive    PeriodStatus = "active"
	PeriodStatusClosed    PeriodStatus = "closed"
	PeriodStatusCancelled PeriodStatus = "cancelled"
)

// EnrollmentPeriod is a time-boxed enrollment window for one employer.
type EnrollmentPeriod struct {
	PeriodID   string       `json:"periodID"` // Primary Key (UUID)
	EmployerID string       `json:"employerID"`
	Name       string       `json:"name"`
	PeriodType PeriodType   `json:"periodType"`
	Status     PeriodStatus `json:"status"`

	StartDate             time.Time `json:"startDate"`
	EndDate               time.Time `json:"endDate"`
	CoverageEffectiveDate time.Time `json:"coverageEffectiveDate"`

	AllowWaive      bool `json:"allowWaive"`
	RequireAllPlans bool `json:"requireAllPlans"`

	AuditFields
}

// Activate moves a pending period to active.
func (p *EnrollmentPeriod) Activate() error {
	if p.Status != PeriodStatusPending {
		return apperrors.NewInvalidTransitionError("enrollment period", string(p.Status), "activate")
	}
	p.Status = PeriodStatusActive
	return nil
}

// Close moves an active period to closed.
func (p *EnrollmentPeriod) Close() error {
	if p.Status != PeriodStatusActive {
		return apperrors.NewInvalidTransitionError("enrollment period", string(p.Status), "close")
	}
	p.Status = PeriodStatusClosed
	return nil
}

// Cancel cancels a period that has not already ended.
func (p *EnrollmentPeriod) Cancel() error {
	if p.Status == PeriodStatusClosed || p.Status == PeriodStatusCancelled {
		return apperrors.NewInvalidTransitionError("enrollment period", string(p.Status), "cancel")
	}
	p.Status = PeriodStatusCancelled
	return nil
}

// EnrollmentStatus is the state of an employee's progress through a period.
type EnrollmentStatus string

const (
	EnrollmentNotStarted EnrollmentStatus = "not_started"
	EnrollmentInProgress EnrollmentStatus = "in_progress"
	EnrollmentSubmitted  EnrollmentStatus = "submitted"
	EnrollmentApproved   EnrollmentStatus = "approved"
	EnrollmentDeclined   EnrollmentStatus = "declined"
	EnrollmentExpired    EnrollmentStatus = "expired"
)

// IsTerminal reports whether no further transitions are possible.
func (s EnrollmentStatus) IsTerminal() bool {
	switch s {
	case EnrollmentApproved, EnrollmentDeclined, EnrollmentExpired:
		return true
	}
	return false
}

// EmployeeEnrollment tracks one employee's enrollment in one period.
// Transitions are strictly ordered:
//
//	not_started --Start--> in_progress --Submit--> submitted --Approve--> approved
//
// declined and expired are administrative terminal states reachable from any
// non-terminal state. Illegal transitions fail with ErrInvalidTransition and
// leave the record unchanged.
type EmployeeEnrollment struct {
	EnrollmentID string           `json:"enrollmentID"` // Primary Key (UUID)
	EmployeeID   string           `json:"employeeID"`
	PeriodID     string           `json:"periodID"`
	Status       EnrollmentStatus `json:"status"`

	StartedAt   *time.Time `json:"startedAt,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy  *string    `json:"approvedBy,omitempty"`

	Notes          string `json:"notes,omitempty"`
	WaivedCoverage bool   `json:"waivedCoverage"`
	WaiverReason   string `json:"waiverReason,omitempty"`

	AuditFields
}

// Start begins the enrollment. Legal only from not_started.
func (e *EmployeeEnrollment) Start(now time.Time) error {
	if e.Status != EnrollmentNotStarted {
		return apperrors.NewInvalidTransitionError("enrollment", string(e.Status), "start")
	}
	e.Status = EnrollmentInProgress
	e.StartedAt = &now
	return nil
}

// Submit submits the enrollment for approval. Legal only from in_progress.
func (e *EmployeeEnrollment) Submit(now time.Time) error {
	if e.Status != EnrollmentInProgress {
		return apperrors.NewInvalidTransitionError("enrollment", string(e.Status), "submit")
	}
	e.Status = EnrollmentSubmitted
	e.SubmittedAt = &now
	return nil
}

// Approve approves a submitted enrollment, recording the approver.
func (e *EmployeeEnrollment) Approve(approverID string, now time.Time) error {
	if e.Status != EnrollmentSubmitted {
		return apperrors.NewInvalidTransitionError("enrollment", string(e.Status), "approve")
	}
	e.Status = EnrollmentApproved
	e.ApprovedAt = &now
	e.ApprovedBy = &approverID
	return nil
}

// Decline is an administrative terminal transition.
func (e *EmployeeEnrollment) Decline(now time.Time) error {
	if e.Status.IsTerminal() {
		return apperrors.NewInvalidTransitionError("enrollment", string(e.Status), "decline")
	}
	e.Status = EnrollmentDeclined
	return nil
}

// Expire marks the enrollment expired. Expiry is batch-computed when a period
// ends; there is no self-scheduling timer.
func (e *EmployeeEnrollment) Expire(now time.Time) error {
	if e.Status.IsTerminal() {
		return apperrors.NewInvalidTransitionError("enrollment", string(e.Status), "expire")
	}
	e.Status = EnrollmentExpired
	return nil
}

// PlanEnrollmentStatus is the state of one plan election.
type PlanEnrollmentStatus string

const (
	PlanEnrollmentEnrolled   PlanEnrollmentStatus = "enrolled"
	PlanEnrollmentWaived     PlanEnrollmentStatus = "waived"
	PlanEnrollmentDeclined   PlanEnrollmentStatus = "declined"
	PlanEnrollmentTerminated PlanEnrollmentStatus = "terminated"
)

// PlanEnrollment is an employee's election of a specific plan within an
// enrollment, with the premium/contribution breakdown and covered dependents.
// Unique per (employee enrollment, plan).
type PlanEnrollment struct {
	PlanEnrollmentID string               `json:"planEnrollmentID"` // Primary Key (UUID)
	EnrollmentID     string               `json:"enrollmentID"`
	PlanID           string               `json:"planID"`
	Status           PlanEnrollmentStatus `json:"status"`

	CoverageTier         CoverageTier    `json:"coverageTier"`
	MonthlyPremium       decimal.Decimal `json:"monthlyPremium"`
	EmployeeContribution decimal.Decimal `json:"employeeContribution"`
	EmployerContribution decimal.Decimal `json:"employerContribution"`

	EffectiveDate   time.Time  `json:"effectiveDate"`
	TerminationDate *time.Time `json:"terminationDate,omitempty"`

	CoveredDependentIDs []string `json:"coveredDependentIDs,omitempty" db:"-"`

	AuditFields
}

// Terminate ends an enrolled plan election effective the given date.
func (pe *PlanEnrollment) Terminate(terminationDate time.Time) error {
	if pe.Status != PlanEnrollmentEnrolled {
		return apperrors.NewInvalidTransitionError("plan enrollment", string(pe.Status), "terminate")
	}
	pe.Status = PlanEnrollmentTerminated
	pe.TerminationDate = &terminationDate
	return nil
}

// EnrollmentEventType classifies enrollment lifecycle events.
type EnrollmentEventType string

const (
	EventEnrollment      EnrollmentEventType = "enrollment"
	EventChange          EnrollmentEventType = "change"
	EventTermination     EnrollmentEventType = "termination"
	EventReinstatement   EnrollmentEventType = "reinstatement"
	EventDependentAdd    EnrollmentEventType = "dependent_add"
	EventDependentRemove EnrollmentEventType = "dependent_remove"
	EventWaiver          EnrollmentEventType = "waiver"
)

// EnrollmentEvent is an append-only record of an enrollment change. Events are
// never mutated or deleted.
type EnrollmentEvent struct {
	EventID       string              `json:"eventID"` // Primary Key (UUID)
	EmployeeID    string              `json:"employeeID"`
	EventType     EnrollmentEventType `json:"eventType"`
	EffectiveDate time.Time           `json:"effectiveDate"`

	PlanEnrollmentID     *string      `json:"planEnrollmentID,omitempty"`
	PreviousCoverageTier CoverageTier `json:"previousCoverageTier,omitempty"`
	NewCoverageTier      CoverageTier `json:"newCoverageTier,omitempty"`

	Reason      string    `json:"reason,omitempty"`
	ProcessedBy *string   `json:"processedBy,omitempty"`
	ProcessedAt time.Time `json:"processedAt"`
}
