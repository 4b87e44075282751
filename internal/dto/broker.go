package dto

import (
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
)

// CreateBrokerRequest defines the payload for creating a broker agency.
type CreateBrokerRequest struct {
	AgencyName    string `json:"agencyName" binding:"required"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty" binding:"omitempty,email"`
	Address       string `json:"address,omitempty"`
}

// CreateEmployerRequest defines the payload for creating an employer group.
type CreateEmployerRequest struct {
	BrokerID      string    `json:"brokerID" binding:"required,uuid"`
	Name          string    `json:"name" binding:"required"`
	EIN           string    `json:"ein" binding:"required"`
	Size          int       `json:"size" binding:"required,min=1,max=100"`
	EffectiveDate time.Time `json:"effectiveDate" binding:"required"`
	ContactName   string    `json:"contactName,omitempty"`
	ContactEmail  string    `json:"contactEmail,omitempty" binding:"omitempty,email"`
	ContactPhone  string    `json:"contactPhone,omitempty"`
	Address       string    `json:"address,omitempty"`
}

// UpdateEmployerRequest defines the payload for updating an employer group.
type UpdateEmployerRequest struct {
	Name         *string    `json:"name,omitempty"`
	Size         *int       `json:"size,omitempty" binding:"omitempty,min=1,max=100"`
	RenewalDate  *time.Time `json:"renewalDate,omitempty"`
	Status       *string    `json:"status,omitempty" binding:"omitempty,oneof=pending active terminated"`
	ContactName  *string    `json:"contactName,omitempty"`
	ContactEmail *string    `json:"contactEmail,omitempty" binding:"omitempty,email"`
	ContactPhone *string    `json:"contactPhone,omitempty"`
}

// BrokerResponse defines the broker data returned to clients.
type BrokerResponse struct {
	BrokerID       string `json:"brokerID"`
	OrganizationID string `json:"organizationID"`
	AgencyName     string `json:"agencyName"`
	LicenseNumber  string `json:"licenseNumber,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
}

// ToBrokerResponse maps a domain broker to its response DTO.
func ToBrokerResponse(b *domain.Broker) BrokerResponse {
	return BrokerResponse{
		BrokerID:       b.BrokerID,
		OrganizationID: b.OrganizationID,
		AgencyName:     b.AgencyName,
		LicenseNumber:  b.LicenseNumber,
		Phone:          b.Phone,
		Email:          b.Email,
	}
}

// EmployerResponse defines the employer data returned to clients.
type EmployerResponse struct {
	EmployerID     string     `json:"employerID"`
	BrokerID       string     `json:"brokerID"`
	OrganizationID string     `json:"organizationID"`
	Name           string     `json:"name"`
	EIN            string     `json:"ein"`
	Size           int        `json:"size"`
	EffectiveDate  time.Time  `json:"effectiveDate"`
	RenewalDate    *time.Time `json:"renewalDate,omitempty"`
	Status         string     `json:"status"`
}

// ToEmployerResponse maps a domain employer to its response DTO.
func ToEmployerResponse(e *domain.Employer) EmployerResponse {
	return EmployerResponse{
		EmployerID:     e.EmployerID,
		BrokerID:       e.BrokerID,
		OrganizationID: e.OrganizationID,
		Name:           e.Name,
		EIN:            e.EIN,
		Size:           e.Size,
		EffectiveDate:  e.EffectiveDate,
		RenewalDate:    e.RenewalDate,
		Status:         string(e.Status),
	}
}

// ToListEmployersResponse maps a slice of employers.
func ToListEmployersResponse(es []domain.Employer) []EmployerResponse {
	out := make([]EmployerResponse, 0, len(es))
	for i := range es {
		out = append(out, ToEmployerResponse(&es[i]))
	}
	return out
}
