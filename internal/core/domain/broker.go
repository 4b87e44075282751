package domain

import "time"

// Broker is an agency that sponsors employer groups.
type Broker struct {
	BrokerID       string `json:"brokerID"`       // Primary Key (UUID)
	OrganizationID string `json:"organizationID"` // Tenant this broker operates as
	AgencyName     string `json:"agencyName"`
	LicenseNumber  string `json:"licenseNumber,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Address        string `json:"address,omitempty"`
	AuditFields
}

// EmployerStatus is the lifecycle status of an employer group.
type EmployerStatus string

const (
	EmployerStatusPending    EmployerStatus = "pending"
	EmployerStatusActive     EmployerStatus = "active"
	EmployerStatusTerminated EmployerStatus = "terminated"
)

// Employer is a company sponsored by a broker. Employers are soft-disabled
// via Status, never hard deleted.
type Employer struct {
	EmployerID     string         `json:"employerID"`     // Primary Key (UUID)
	BrokerID       string         `json:"brokerID"`       // Owning broker
	OrganizationID string         `json:"organizationID"` // Tenant this employer operates as
	Name           string         `json:"name"`
	EIN            string         `json:"ein"` // Unique, format XX-XXXXXXX
	Size           int            `json:"size"`
	EffectiveDate  time.Time      `json:"effectiveDate"`
	RenewalDate    *time.Time     `json:"renewalDate,omitempty"`
	Status         EmployerStatus `json:"status"`
	ContactName    string         `json:"contactName,omitempty"`
	ContactEmail   string         `json:"contactEmail,omitempty"`
	ContactPhone   string         `json:"contactPhone,omitempty"`
	Address        string         `json:"address,omitempty"`
	AuditFields
}
