package repositories

// RepositoryProvider aggregates all repository facades the service container
// needs. Constructed once at startup by the pgsql package.
type RepositoryProvider struct {
	UserRepo         UserRepositoryWithTx
	OrganizationRepo OrganizationRepositoryWithTx
	BrokerRepo       BrokerRepositoryWithTx
	CarrierRepo      CarrierRepositoryWithTx
	EmployeeRepo     EmployeeRepositoryWithTx
	EnrollmentRepo   EnrollmentRepositoryWithTx
	AuditRepo        AuditRepositoryFacade
}
