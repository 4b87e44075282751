package pgsql

import (
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository against one shared pool.
func NewRepositoryProvider(db *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(db),
		OrganizationRepo: newPgxOrganizationRepository(db),
		BrokerRepo:       newPgxBrokerRepository(db),
		CarrierRepo:      newPgxCarrierRepository(db),
		EmployeeRepo:     newPgxEmployeeRepository(db),
		EnrollmentRepo:   newPgxEnrollmentRepository(db),
		AuditRepo:        newPgxAuditRepository(db),
	}
}
