package repositories

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
)

// BrokerReader defines read operations for broker data
type BrokerReader interface {
	// FindBrokerByID retrieves a specific broker by its ID.
	FindBrokerByID(ctx context.Context, brokerID string) (*domain.Broker, error)

	// FindBrokerByOrganizationID retrieves the broker operating as the given tenant.
	FindBrokerByOrganizationID(ctx context.Context, organizationID string) (*domain.Broker, error)

	// ListBrokers retrieves all brokers.
	ListBrokers(ctx context.Context) ([]domain.Broker, error)
}

// BrokerWriter defines write operations for broker data
type BrokerWriter interface {
	// SaveBroker persists a new broker.
	SaveBroker(ctx context.Context, broker domain.Broker) error

	// UpdateBroker persists changes to an existing broker.
	UpdateBroker(ctx context.Context, broker domain.Broker) error
}

// EmployerReader defines read operations for employer data
type EmployerReader interface {
	// FindEmployerByID retrieves a specific employer by its ID.
	FindEmployerByID(ctx context.Context, employerID string) (*domain.Employer, error)

	// FindEmployersByIDs retrieves the employers with the given IDs.
	FindEmployersByIDs(ctx context.Context, employerIDs []string) ([]domain.Employer, error)

	// ListEmployersByBrokerID retrieves all employers sponsored by a broker.
	ListEmployersByBrokerID(ctx context.Context, brokerID string) ([]domain.Employer, error)

	// ListEmployerOrgIDsByBrokerOrg retrieves the organization IDs of every
	// employer sponsored by the broker operating as brokerOrgID. This is the
	// one-hop broker -> employer inheritance edge.
	ListEmployerOrgIDsByBrokerOrg(ctx context.Context, brokerOrgID string) ([]string, error)

	// ListEmployers retrieves all employers.
	ListEmployers(ctx context.Context) ([]domain.Employer, error)
}

// EmployerWriter defines write operations for employer data
type EmployerWriter interface {
	// SaveEmployer persists a new employer.
	SaveEmployer(ctx context.Context, employer domain.Employer) error

	// UpdateEmployer persists changes to an existing employer.
	UpdateEmployer(ctx context.Context, employer domain.Employer) error
}

// BrokerRepositoryFacade combines broker and employer repository interfaces
type BrokerRepositoryFacade interface {
	BrokerReader
	BrokerWriter
	EmployerReader
	EmployerWriter
}

// BrokerRepositoryWithTx extends BrokerRepositoryFacade with transaction capabilities
type BrokerRepositoryWithTx interface {
	BrokerRepositoryFacade
	TransactionManager
}
