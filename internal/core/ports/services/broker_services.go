package services

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
)

// BrokerSvcFacade manages brokers and the employer groups they sponsor.
type BrokerSvcFacade interface {
	// CreateBroker persists a new broker agency and its tenant organization.
	CreateBroker(ctx context.Context, access domain.AccessContext, req dto.CreateBrokerRequest) (*domain.Broker, error)

	// FindBrokerByID retrieves a specific broker by its ID.
	FindBrokerByID(ctx context.Context, access domain.AccessContext, brokerID string) (*domain.Broker, error)

	// ListBrokers retrieves all brokers. Superuser only.
	ListBrokers(ctx context.Context, access domain.AccessContext) ([]domain.Broker, error)

	// CreateEmployer persists a new employer group under a broker, together
	// with its tenant organization.
	CreateEmployer(ctx context.Context, access domain.AccessContext, req dto.CreateEmployerRequest) (*domain.Employer, error)

	// FindEmployerByID retrieves a specific employer by its ID.
	FindEmployerByID(ctx context.Context, access domain.AccessContext, employerID string) (*domain.Employer, error)

	// ListEmployers retrieves the employers the actor may see.
	ListEmployers(ctx context.Context, access domain.AccessContext) ([]domain.Employer, error)

	// UpdateEmployer persists changes to an existing employer.
	UpdateEmployer(ctx context.Context, access domain.AccessContext, employerID string, req dto.UpdateEmployerRequest) (*domain.Employer, error)
}
