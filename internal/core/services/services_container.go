package services

import (
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first: the access service records denials through it.
	container.Audit = NewAuditService(repos.AuditRepo)

	// Access next: every other service authorizes through it.
	container.Access = NewAccessService(
		repos.UserRepo,
		repos.OrganizationRepo,
		repos.BrokerRepo,
		repos.EmployeeRepo,
		container.Audit,
	)

	container.User = NewUserService(repos.UserRepo, container.Access, container.Audit)
	container.Organization = NewOrganizationService(repos.OrganizationRepo, container.Access, container.Audit)
	container.Broker = NewBrokerService(repos.BrokerRepo, repos.OrganizationRepo, container.Access)
	container.Carrier = NewCarrierService(repos.CarrierRepo, repos.BrokerRepo, container.Access)
	container.Employee = NewEmployeeService(repos.EmployeeRepo, repos.BrokerRepo, repos.EnrollmentRepo, container.Access)
	container.Enrollment = NewEnrollmentService(
		repos.EnrollmentRepo,
		repos.EmployeeRepo,
		repos.BrokerRepo,
		repos.CarrierRepo,
		container.Access,
	)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.AccessSvcFacade       = (*accessService)(nil)
	_ portssvc.AuditSvcFacade        = (*auditService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.OrganizationSvcFacade = (*organizationService)(nil)
	_ portssvc.BrokerSvcFacade       = (*brokerService)(nil)
	_ portssvc.CarrierSvcFacade      = (*carrierService)(nil)
	_ portssvc.EmployeeSvcFacade     = (*employeeService)(nil)
	_ portssvc.EnrollmentSvcFacade   = (*enrollmentService)(nil)
)
