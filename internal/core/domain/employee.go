package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaritalStatus is the employee's marital status, used on carrier census files.
type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
	MaritalWidowed  MaritalStatus = "widowed"
)

// Employee is a census record owned by an employer. An employee may carry a
// tier election per coverage type ahead of an enrollment period.
type Employee struct {
	EmployeeID     string  `json:"employeeID"` // Primary Key (UUID)
	EmployerID     string  `json:"employerID"`
	EmployeeNumber string  `json:"employeeNumber"`   // Employer's own ID, unique per employer
	UserID         *string `json:"userID,omitempty"` // Portal login, if any

	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	MiddleInitial string        `json:"middleInitial,omitempty"`
	SSN           string        `json:"-"` // Format XXX-XX-XXXX; never serialized
	DateOfBirth   time.Time     `json:"dateOfBirth"`
	Gender        string        `json:"gender"` // M or F per carrier file formats
	MaritalStatus MaritalStatus `json:"maritalStatus"`

	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`

	HireDate         time.Time       `json:"hireDate"`
	JobTitle         string          `json:"jobTitle,omitempty"`
	Department       string          `json:"department,omitempty"`
	Salary           decimal.Decimal `json:"salary"` // Annual
	HoursPerWeek     decimal.Decimal `json:"hoursPerWeek"`
	EmploymentStatus string          `json:"employmentStatus"`

	MedicalCoverageTier CoverageTier `json:"medicalCoverageTier,omitempty"`
	DentalCoverageTier  CoverageTier `json:"dentalCoverageTier,omitempty"`
	VisionCoverageTier  CoverageTier `json:"visionCoverageTier,omitempty"`

	AuditFields
}

// Relationship is a dependent's relationship to the employee.
type Relationship string

const (
	RelSpouse          Relationship = "spouse"
	RelChild           Relationship = "child"
	RelDomesticPartner Relationship = "domestic_partner"
)

// Dependent is a person covered under an employee's elections.
type Dependent struct {
	DependentID   string       `json:"dependentID"` // Primary Key (UUID)
	EmployeeID    string       `json:"employeeID"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	MiddleInitial string       `json:"middleInitial,omitempty"`
	SSN           string       `json:"-"`
	DateOfBirth   time.Time    `json:"dateOfBirth"`
	Gender        string       `json:"gender"`
	Relationship  Relationship `json:"relationship"`

	MedicalCoverage bool `json:"medicalCoverage"`
	DentalCoverage  bool `json:"dentalCoverage"`
	VisionCoverage  bool `json:"visionCoverage"`

	AuditFields
}
