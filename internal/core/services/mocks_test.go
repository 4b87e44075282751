package services_test

import (
	"context"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Function-field fakes for the repository facades. Unset fields fall back to
// not-found / empty defaults so each test only wires what it exercises.

type fakeUserRepo struct {
	FindUserByIDFn              func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmailFn           func(ctx context.Context, email string) (*domain.User, error)
	FindAccessProfileByUserIDFn func(ctx context.Context, userID string) (*domain.AccessProfile, error)
	SaveUserFn                  func(ctx context.Context, user domain.User) error
	UpdateUserFn                func(ctx context.Context, user domain.User) error
	SaveAccessProfileFn         func(ctx context.Context, profile domain.AccessProfile, audit domain.AuditEvent) error
}

func (f *fakeUserRepo) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if f.FindUserByIDFn != nil {
		return f.FindUserByIDFn(ctx, userID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.FindUserByEmailFn != nil {
		return f.FindUserByEmailFn(ctx, email)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) FindAccessProfileByUserID(ctx context.Context, userID string) (*domain.AccessProfile, error) {
	if f.FindAccessProfileByUserIDFn != nil {
		return f.FindAccessProfileByUserIDFn(ctx, userID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) SaveUser(ctx context.Context, user domain.User) error {
	if f.SaveUserFn != nil {
		return f.SaveUserFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user domain.User) error {
	if f.UpdateUserFn != nil {
		return f.UpdateUserFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) SaveAccessProfile(ctx context.Context, profile domain.AccessProfile, audit domain.AuditEvent) error {
	if f.SaveAccessProfileFn != nil {
		return f.SaveAccessProfileFn(ctx, profile, audit)
	}
	return nil
}

func (f *fakeUserRepo) Begin(ctx context.Context) (pgx.Tx, error)     { return nil, nil }
func (f *fakeUserRepo) Commit(ctx context.Context, tx pgx.Tx) error   { return nil }
func (f *fakeUserRepo) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

type fakeOrgRepo struct {
	FindOrganizationByIDFn            func(ctx context.Context, organizationID string) (*domain.Organization, error)
	FindOrganizationBySlugFn          func(ctx context.Context, slug string) (*domain.Organization, error)
	ListOrganizationsFn               func(ctx context.Context, onlyActive bool) ([]domain.Organization, error)
	ListActiveOrganizationIDsFn       func(ctx context.Context) ([]string, error)
	SaveOrganizationFn                func(ctx context.Context, org domain.Organization) error
	UpdateOrganizationFn              func(ctx context.Context, org domain.Organization) error
	CreateMembershipFn                func(ctx context.Context, membership domain.Membership, audit domain.AuditEvent) error
	UpdateMembershipRoleFn            func(ctx context.Context, membershipID string, role domain.Role, audit domain.AuditEvent) error
	DeleteMembershipFn                func(ctx context.Context, membershipID string, audit domain.AuditEvent) error
	FindMembershipFn                  func(ctx context.Context, userID, organizationID string) (*domain.Membership, error)
	FindMembershipByIDFn              func(ctx context.Context, membershipID string) (*domain.Membership, error)
	ListMembershipsByUserIDFn         func(ctx context.Context, userID string) ([]domain.Membership, error)
	ListMembershipsByOrganizationIDFn func(ctx context.Context, organizationID string) ([]domain.Membership, error)
}

func (f *fakeOrgRepo) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	if f.FindOrganizationByIDFn != nil {
		return f.FindOrganizationByIDFn(ctx, organizationID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeOrgRepo) FindOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	if f.FindOrganizationBySlugFn != nil {
		return f.FindOrganizationBySlugFn(ctx, slug)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeOrgRepo) ListOrganizations(ctx context.Context, onlyActive bool) ([]domain.Organization, error) {
	if f.ListOrganizationsFn != nil {
		return f.ListOrganizationsFn(ctx, onlyActive)
	}
	return []domain.Organization{}, nil
}

func (f *fakeOrgRepo) ListActiveOrganizationIDs(ctx context.Context) ([]string, error) {
	if f.ListActiveOrganizationIDsFn != nil {
		return f.ListActiveOrganizationIDsFn(ctx)
	}
	return []string{}, nil
}

func (f *fakeOrgRepo) SaveOrganization(ctx context.Context, org domain.Organization) error {
	if f.SaveOrganizationFn != nil {
		return f.SaveOrganizationFn(ctx, org)
	}
	return nil
}

func (f *fakeOrgRepo) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	if f.UpdateOrganizationFn != nil {
		return f.UpdateOrganizationFn(ctx, org)
	}
	return nil
}

func (f *fakeOrgRepo) CreateMembership(ctx context.Context, membership domain.Membership, audit domain.AuditEvent) error {
	if f.CreateMembershipFn != nil {
		return f.CreateMembershipFn(ctx, membership, audit)
	}
	return nil
}

func (f *fakeOrgRepo) UpdateMembershipRole(ctx context.Context, membershipID string, role domain.Role, audit domain.AuditEvent) error {
	if f.UpdateMembershipRoleFn != nil {
		return f.UpdateMembershipRoleFn(ctx, membershipID, role, audit)
	}
	return nil
}

func (f *fakeOrgRepo) DeleteMembership(ctx context.Context, membershipID string, audit domain.AuditEvent) error {
	if f.DeleteMembershipFn != nil {
		return f.DeleteMembershipFn(ctx, membershipID, audit)
	}
	return nil
}

func (f *fakeOrgRepo) FindMembership(ctx context.Context, userID, organizationID string) (*domain.Membership, error) {
	if f.FindMembershipFn != nil {
		return f.FindMembershipFn(ctx, userID, organizationID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeOrgRepo) FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	if f.FindMembershipByIDFn != nil {
		return f.FindMembershipByIDFn(ctx, membershipID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeOrgRepo) ListMembershipsByUserID(ctx context.Context, userID string) ([]domain.Membership, error) {
	if f.ListMembershipsByUserIDFn != nil {
		return f.ListMembershipsByUserIDFn(ctx, userID)
	}
	return []domain.Membership{}, nil
}

func (f *fakeOrgRepo) ListMembershipsByOrganizationID(ctx context.Context, organizationID string) ([]domain.Membership, error) {
	if f.ListMembershipsByOrganizationIDFn != nil {
		return f.ListMembershipsByOrganizationIDFn(ctx, organizationID)
	}
	return []domain.Membership{}, nil
}

func (f *fakeOrgRepo) Begin(ctx context.Context) (pgx.Tx, error)     { return nil, nil }
func (f *fakeOrgRepo) Commit(ctx context.Context, tx pgx.Tx) error   { return nil }
func (f *fakeOrgRepo) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

type fakeBrokerRepo struct {
	FindBrokerByIDFn                func(ctx context.Context, brokerID string) (*domain.Broker, error)
	FindBrokerByOrganizationIDFn    func(ctx context.Context, organizationID string) (*domain.Broker, error)
	ListBrokersFn                   func(ctx context.Context) ([]domain.Broker, error)
	SaveBrokerFn                    func(ctx context.Context, broker domain.Broker) error
	UpdateBrokerFn                  func(ctx context.Context, broker domain.Broker) error
	FindEmployerByIDFn              func(ctx context.Context, employerID string) (*domain.Employer, error)
	FindEmployersByIDsFn            func(ctx context.Context, employerIDs []string) ([]domain.Employer, error)
	ListEmployersByBrokerIDFn       func(ctx context.Context, brokerID string) ([]domain.Employer, error)
	ListEmployerOrgIDsByBrokerOrgFn func(ctx context.Context, brokerOrgID string) ([]string, error)
	ListEmployersFn                 func(ctx context.Context) ([]domain.Employer, error)
	SaveEmployerFn                  func(ctx context.Context, employer domain.Employer) error
	UpdateEmployerFn                func(ctx context.Context, employer domain.Employer) error
}

func (f *fakeBrokerRepo) FindBrokerByID(ctx context.Context, brokerID string) (*domain.Broker, error) {
	if f.FindBrokerByIDFn != nil {
		return f.FindBrokerByIDFn(ctx, brokerID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeBrokerRepo) FindBrokerByOrganizationID(ctx context.Context, organizationID string) (*domain.Broker, error) {
	if f.FindBrokerByOrganizationIDFn != nil {
		return f.FindBrokerByOrganizationIDFn(ctx, organizationID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeBrokerRepo) ListBrokers(ctx context.Context) ([]domain.Broker, error) {
	if f.ListBrokersFn != nil {
		return f.ListBrokersFn(ctx)
	}
	return []domain.Broker{}, nil
}

func (f *fakeBrokerRepo) SaveBroker(ctx context.Context, broker domain.Broker) error {
	if f.SaveBrokerFn != nil {
		return f.SaveBrokerFn(ctx, broker)
	}
	return nil
}

func (f *fakeBrokerRepo) UpdateBroker(ctx context.Context, broker domain.Broker) error {
	if f.UpdateBrokerFn != nil {
		return f.UpdateBrokerFn(ctx, broker)
	}
	return nil
}

func (f *fakeBrokerRepo) FindEmployerByID(ctx context.Context, employerID string) (*domain.Employer, error) {
	if f.FindEmployerByIDFn != nil {
		return f.FindEmployerByIDFn(ctx, employerID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeBrokerRepo) FindEmployersByIDs(ctx context.Context, employerIDs []string) ([]domain.Employer, error) {
	if f.FindEmployersByIDsFn != nil {
		return f.FindEmployersByIDsFn(ctx, employerIDs)
	}
	return []domain.Employer{}, nil
}

func (f *fakeBrokerRepo) ListEmployersByBrokerID(ctx context.Context, brokerID string) ([]domain.Employer, error) {
	if f.ListEmployersByBrokerIDFn != nil {
		return f.ListEmployersByBrokerIDFn(ctx, brokerID)
	}
	return []domain.Employer{}, nil
}

func (f *fakeBrokerRepo) ListEmployerOrgIDsByBrokerOrg(ctx context.Context, brokerOrgID string) ([]string, error) {
	if f.ListEmployerOrgIDsByBrokerOrgFn != nil {
		return f.ListEmployerOrgIDsByBrokerOrgFn(ctx, brokerOrgID)
	}
	return []string{}, nil
}

func (f *fakeBrokerRepo) ListEmployers(ctx context.Context) ([]domain.Employer, error) {
	if f.ListEmployersFn != nil {
		return f.ListEmployersFn(ctx)
	}
	return []domain.Employer{}, nil
}

func (f *fakeBrokerRepo) SaveEmployer(ctx context.Context, employer domain.Employer) error {
	if f.SaveEmployerFn != nil {
		return f.SaveEmployerFn(ctx, employer)
	}
	return nil
}

func (f *fakeBrokerRepo) UpdateEmployer(ctx context.Context, employer domain.Employer) error {
	if f.UpdateEmployerFn != nil {
		return f.UpdateEmployerFn(ctx, employer)
	}
	return nil
}

type fakeEmployeeRepo struct {
	FindEmployeeByIDFn           func(ctx context.Context, employeeID string) (*domain.Employee, error)
	FindEmployeeByUserIDFn       func(ctx context.Context, userID string) (*domain.Employee, error)
	ListEmployeesByEmployerIDFn  func(ctx context.Context, employerID string) ([]domain.Employee, error)
	ListEmployeesByEmployerIDsFn func(ctx context.Context, employerIDs []string) ([]domain.Employee, error)
	SaveEmployeeFn               func(ctx context.Context, employee domain.Employee) error
	UpdateEmployeeFn             func(ctx context.Context, employee domain.Employee) error
	FindDependentByIDFn          func(ctx context.Context, dependentID string) (*domain.Dependent, error)
	ListDependentsByEmployeeIDFn func(ctx context.Context, employeeID string) ([]domain.Dependent, error)
	SaveDependentFn              func(ctx context.Context, dependent domain.Dependent) error
	UpdateDependentFn            func(ctx context.Context, dependent domain.Dependent) error
	DeleteDependentFn            func(ctx context.Context, dependentID string) error
}

func (f *fakeEmployeeRepo) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	if f.FindEmployeeByIDFn != nil {
		return f.FindEmployeeByIDFn(ctx, employeeID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEmployeeRepo) FindEmployeeByUserID(ctx context.Context, userID string) (*domain.Employee, error) {
	if f.FindEmployeeByUserIDFn != nil {
		return f.FindEmployeeByUserIDFn(ctx, userID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEmployeeRepo) ListEmployeesByEmployerID(ctx context.Context, employerID string) ([]domain.Employee, error) {
	if f.ListEmployeesByEmployerIDFn != nil {
		return f.ListEmployeesByEmployerIDFn(ctx, employerID)
	}
	return []domain.Employee{}, nil
}

func (f *fakeEmployeeRepo) ListEmployeesByEmployerIDs(ctx context.Context, employerIDs []string) ([]domain.Employee, error) {
	if f.ListEmployeesByEmployerIDsFn != nil {
		return f.ListEmployeesByEmployerIDsFn(ctx, employerIDs)
	}
	return []domain.Employee{}, nil
}

func (f *fakeEmployeeRepo) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	if f.SaveEmployeeFn != nil {
		return f.SaveEmployeeFn(ctx, employee)
	}
	return nil
}

func (f *fakeEmployeeRepo) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	if f.UpdateEmployeeFn != nil {
		return f.UpdateEmployeeFn(ctx, employee)
	}
	return nil
}

func (f *fakeEmployeeRepo) FindDependentByID(ctx context.Context, dependentID string) (*domain.Dependent, error) {
	if f.FindDependentByIDFn != nil {
		return f.FindDependentByIDFn(ctx, dependentID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEmployeeRepo) ListDependentsByEmployeeID(ctx context.Context, employeeID string) ([]domain.Dependent, error) {
	if f.ListDependentsByEmployeeIDFn != nil {
		return f.ListDependentsByEmployeeIDFn(ctx, employeeID)
	}
	return []domain.Dependent{}, nil
}

func (f *fakeEmployeeRepo) SaveDependent(ctx context.Context, dependent domain.Dependent) error {
	if f.SaveDependentFn != nil {
		return f.SaveDependentFn(ctx, dependent)
	}
	return nil
}

func (f *fakeEmployeeRepo) UpdateDependent(ctx context.Context, dependent domain.Dependent) error {
	if f.UpdateDependentFn != nil {
		return f.UpdateDependentFn(ctx, dependent)
	}
	return nil
}

func (f *fakeEmployeeRepo) DeleteDependent(ctx context.Context, dependentID string) error {
	if f.DeleteDependentFn != nil {
		return f.DeleteDependentFn(ctx, dependentID)
	}
	return nil
}

type fakeCarrierRepo struct {
	FindCarrierByIDFn           func(ctx context.Context, carrierID string) (*domain.Carrier, error)
	ListCarriersFn              func(ctx context.Context, onlyActive bool) ([]domain.Carrier, error)
	FindPlanByIDFn              func(ctx context.Context, planID string) (*domain.Plan, error)
	ListPlansByCarrierIDFn      func(ctx context.Context, carrierID string) ([]domain.Plan, error)
	FindPremiumFn               func(ctx context.Context, planID string, tier domain.CoverageTier, onDate time.Time) (*domain.PlanPremium, error)
	ListPremiumsByPlanIDFn      func(ctx context.Context, planID string) ([]domain.PlanPremium, error)
	SaveCarrierFn               func(ctx context.Context, carrier domain.Carrier) error
	UpdateCarrierFn             func(ctx context.Context, carrier domain.Carrier) error
	SavePlanFn                  func(ctx context.Context, plan domain.Plan) error
	UpdatePlanFn                func(ctx context.Context, plan domain.Plan) error
	SavePremiumFn               func(ctx context.Context, premium domain.PlanPremium) error
	FindOfferingByIDFn          func(ctx context.Context, offeringID string) (*domain.EmployerOffering, error)
	FindOfferingFn              func(ctx context.Context, employerID, planID string) (*domain.EmployerOffering, error)
	ListOfferingsByEmployerIDFn func(ctx context.Context, employerID string) ([]domain.EmployerOffering, error)
	SaveOfferingFn              func(ctx context.Context, offering domain.EmployerOffering) error
	UpdateOfferingFn            func(ctx context.Context, offering domain.EmployerOffering) error
}

func (f *fakeCarrierRepo) FindCarrierByID(ctx context.Context, carrierID string) (*domain.Carrier, error) {
	if f.FindCarrierByIDFn != nil {
		return f.FindCarrierByIDFn(ctx, carrierID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCarrierRepo) ListCarriers(ctx context.Context, onlyActive bool) ([]domain.Carrier, error) {
	if f.ListCarriersFn != nil {
		return f.ListCarriersFn(ctx, onlyActive)
	}
	return []domain.Carrier{}, nil
}

func (f *fakeCarrierRepo) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	if f.FindPlanByIDFn != nil {
		return f.FindPlanByIDFn(ctx, planID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCarrierRepo) ListPlansByCarrierID(ctx context.Context, carrierID string) ([]domain.Plan, error) {
	if f.ListPlansByCarrierIDFn != nil {
		return f.ListPlansByCarrierIDFn(ctx, carrierID)
	}
	return []domain.Plan{}, nil
}

func (f *fakeCarrierRepo) FindPremium(ctx context.Context, planID string, tier domain.CoverageTier, onDate time.Time) (*domain.PlanPremium, error) {
	if f.FindPremiumFn != nil {
		return f.FindPremiumFn(ctx, planID, tier, onDate)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCarrierRepo) ListPremiumsByPlanID(ctx context.Context, planID string) ([]domain.PlanPremium, error) {
	if f.ListPremiumsByPlanIDFn != nil {
		return f.ListPremiumsByPlanIDFn(ctx, planID)
	}
	return []domain.PlanPremium{}, nil
}

func (f *fakeCarrierRepo) SaveCarrier(ctx context.Context, carrier domain.Carrier) error {
	if f.SaveCarrierFn != nil {
		return f.SaveCarrierFn(ctx, carrier)
	}
	return nil
}

func (f *fakeCarrierRepo) UpdateCarrier(ctx context.Context, carrier domain.Carrier) error {
	if f.UpdateCarrierFn != nil {
		return f.UpdateCarrierFn(ctx, carrier)
	}
	return nil
}

func (f *fakeCarrierRepo) SavePlan(ctx context.Context, plan domain.Plan) error {
	if f.SavePlanFn != nil {
		return f.SavePlanFn(ctx, plan)
	}
	return nil
}

func (f *fakeCarrierRepo) UpdatePlan(ctx context.Context, plan domain.Plan) error {
	if f.UpdatePlanFn != nil {
		return f.UpdatePlanFn(ctx, plan)
	}
	return nil
}

func (f *fakeCarrierRepo) SavePremium(ctx context.Context, premium domain.PlanPremium) error {
	if f.SavePremiumFn != nil {
		return f.SavePremiumFn(ctx, premium)
	}
	return nil
}

func (f *fakeCarrierRepo) FindOfferingByID(ctx context.Context, offeringID string) (*domain.EmployerOffering, error) {
	if f.FindOfferingByIDFn != nil {
		return f.FindOfferingByIDFn(ctx, offeringID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCarrierRepo) FindOffering(ctx context.Context, employerID, planID string) (*domain.EmployerOffering, error) {
	if f.FindOfferingFn != nil {
		return f.FindOfferingFn(ctx, employerID, planID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCarrierRepo) ListOfferingsByEmployerID(ctx context.Context, employerID string) ([]domain.EmployerOffering, error) {
	if f.ListOfferingsByEmployerIDFn != nil {
		return f.ListOfferingsByEmployerIDFn(ctx, employerID)
	}
	return []domain.EmployerOffering{}, nil
}

func (f *fakeCarrierRepo) SaveOffering(ctx context.Context, offering domain.EmployerOffering) error {
	if f.SaveOfferingFn != nil {
		return f.SaveOfferingFn(ctx, offering)
	}
	return nil
}

func (f *fakeCarrierRepo) UpdateOffering(ctx context.Context, offering domain.EmployerOffering) error {
	if f.UpdateOfferingFn != nil {
		return f.UpdateOfferingFn(ctx, offering)
	}
	return nil
}

type fakeEnrollmentRepo struct {
	FindPeriodByIDFn                      func(ctx context.Context, periodID string) (*domain.EnrollmentPeriod, error)
	ListPeriodsByEmployerIDFn             func(ctx context.Context, employerID string) ([]domain.EnrollmentPeriod, error)
	ListActivePeriodsEndedBeforeFn        func(ctx context.Context, cutoff time.Time) ([]domain.EnrollmentPeriod, error)
	SavePeriodFn                          func(ctx context.Context, period domain.EnrollmentPeriod) error
	UpdatePeriodFn                        func(ctx context.Context, period domain.EnrollmentPeriod) error
	FindEnrollmentByIDFn                  func(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error)
	FindEnrollmentByEmployeeAndPeriodFn   func(ctx context.Context, employeeID, periodID string) (*domain.EmployeeEnrollment, error)
	ListEnrollmentsByPeriodIDFn           func(ctx context.Context, periodID string) ([]domain.EmployeeEnrollment, error)
	ListEnrollmentsByEmployeeIDFn         func(ctx context.Context, employeeID string) ([]domain.EmployeeEnrollment, error)
	ListUnfinishedEnrollmentsByPeriodIDFn func(ctx context.Context, periodID string) ([]domain.EmployeeEnrollment, error)
	SaveEnrollmentFn                      func(ctx context.Context, enrollment domain.EmployeeEnrollment) error
	UpdateEnrollmentFn                    func(ctx context.Context, enrollment domain.EmployeeEnrollment) error
	FindPlanEnrollmentByIDFn              func(ctx context.Context, planEnrollmentID string) (*domain.PlanEnrollment, error)
	ListPlanEnrollmentsByEnrollmentIDFn   func(ctx context.Context, enrollmentID string) ([]domain.PlanEnrollment, error)
	SavePlanEnrollmentFn                  func(ctx context.Context, pe domain.PlanEnrollment) error
	UpdatePlanEnrollmentFn                func(ctx context.Context, pe domain.PlanEnrollment) error
	SaveEnrollmentEventFn                 func(ctx context.Context, event domain.EnrollmentEvent) error
	ListEnrollmentEventsByEmployeeIDFn    func(ctx context.Context, employeeID string) ([]domain.EnrollmentEvent, error)
}

func (f *fakeEnrollmentRepo) FindPeriodByID(ctx context.Context, periodID string) (*domain.EnrollmentPeriod, error) {
	if f.FindPeriodByIDFn != nil {
		return f.FindPeriodByIDFn(ctx, periodID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEnrollmentRepo) ListPeriodsByEmployerID(ctx context.Context, employerID string) ([]domain.EnrollmentPeriod, error) {
	if f.ListPeriodsByEmployerIDFn != nil {
		return f.ListPeriodsByEmployerIDFn(ctx, employerID)
	}
	return []domain.EnrollmentPeriod{}, nil
}

func (f *fakeEnrollmentRepo) ListActivePeriodsEndedBefore(ctx context.Context, cutoff time.Time) ([]domain.EnrollmentPeriod, error) {
	if f.ListActivePeriodsEndedBeforeFn != nil {
		return f.ListActivePeriodsEndedBeforeFn(ctx, cutoff)
	}
	return []domain.EnrollmentPeriod{}, nil
}

func (f *fakeEnrollmentRepo) SavePeriod(ctx context.Context, period domain.EnrollmentPeriod) error {
	if f.SavePeriodFn != nil {
		return f.SavePeriodFn(ctx, period)
	}
	return nil
}

func (f *fakeEnrollmentRepo) UpdatePeriod(ctx context.Context, period domain.EnrollmentPeriod) error {
	if f.UpdatePeriodFn != nil {
		return f.UpdatePeriodFn(ctx, period)
	}
	return nil
}

func (f *fakeEnrollmentRepo) FindEnrollmentByID(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error) {
	if f.FindEnrollmentByIDFn != nil {
		return f.FindEnrollmentByIDFn(ctx, enrollmentID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEnrollmentRepo) FindEnrollmentByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (*domain.EmployeeEnrollment, error) {
	if f.FindEnrollmentByEmployeeAndPeriodFn != nil {
		return f.FindEnrollmentByEmployeeAndPeriodFn(ctx, employeeID, periodID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEnrollmentRepo) ListEnrollmentsByPeriodID(ctx context.Context, periodID string) ([]domain.EmployeeEnrollment, error) {
	if f.ListEnrollmentsByPeriodIDFn != nil {
		return f.ListEnrollmentsByPeriodIDFn(ctx, periodID)
	}
	return []domain.EmployeeEnrollment{}, nil
}

func (f *fakeEnrollmentRepo) ListEnrollmentsByEmployeeID(ctx context.Context, employeeID string) ([]domain.EmployeeEnrollment, error) {
	if f.ListEnrollmentsByEmployeeIDFn != nil {
		return f.ListEnrollmentsByEmployeeIDFn(ctx, employeeID)
	}
	return []domain.EmployeeEnrollment{}, nil
}

func (f *fakeEnrollmentRepo) ListUnfinishedEnrollmentsByPeriodID(ctx context.Context, periodID string) ([]domain.EmployeeEnrollment, error) {
	if f.ListUnfinishedEnrollmentsByPeriodIDFn != nil {
		return f.ListUnfinishedEnrollmentsByPeriodIDFn(ctx, periodID)
	}
	return []domain.EmployeeEnrollment{}, nil
}

func (f *fakeEnrollmentRepo) SaveEnrollment(ctx context.Context, enrollment domain.EmployeeEnrollment) error {
	if f.SaveEnrollmentFn != nil {
		return f.SaveEnrollmentFn(ctx, enrollment)
	}
	return nil
}

func (f *fakeEnrollmentRepo) UpdateEnrollment(ctx context.Context, enrollment domain.EmployeeEnrollment) error {
	if f.UpdateEnrollmentFn != nil {
		return f.UpdateEnrollmentFn(ctx, enrollment)
	}
	return nil
}

func (f *fakeEnrollmentRepo) FindPlanEnrollmentByID(ctx context.Context, planEnrollmentID string) (*domain.PlanEnrollment, error) {
	if f.FindPlanEnrollmentByIDFn != nil {
		return f.FindPlanEnrollmentByIDFn(ctx, planEnrollmentID)
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEnrollmentRepo) ListPlanEnrollmentsByEnrollmentID(ctx context.Context, enrollmentID string) ([]domain.PlanEnrollment, error) {
	if f.ListPlanEnrollmentsByEnrollmentIDFn != nil {
		return f.ListPlanEnrollmentsByEnrollmentIDFn(ctx, enrollmentID)
	}
	return []domain.PlanEnrollment{}, nil
}

func (f *fakeEnrollmentRepo) SavePlanEnrollment(ctx context.Context, pe domain.PlanEnrollment) error {
	if f.SavePlanEnrollmentFn != nil {
		return f.SavePlanEnrollmentFn(ctx, pe)
	}
	return nil
}

func (f *fakeEnrollmentRepo) UpdatePlanEnrollment(ctx context.Context, pe domain.PlanEnrollment) error {
	if f.UpdatePlanEnrollmentFn != nil {
		return f.UpdatePlanEnrollmentFn(ctx, pe)
	}
	return nil
}

func (f *fakeEnrollmentRepo) SaveEnrollmentEvent(ctx context.Context, event domain.EnrollmentEvent) error {
	if f.SaveEnrollmentEventFn != nil {
		return f.SaveEnrollmentEventFn(ctx, event)
	}
	return nil
}

func (f *fakeEnrollmentRepo) ListEnrollmentEventsByEmployeeID(ctx context.Context, employeeID string) ([]domain.EnrollmentEvent, error) {
	if f.ListEnrollmentEventsByEmployeeIDFn != nil {
		return f.ListEnrollmentEventsByEmployeeIDFn(ctx, employeeID)
	}
	return []domain.EnrollmentEvent{}, nil
}

// Begin/Commit/Rollback satisfy the TransactionManager side of the WithTx
// interfaces. Service tests never exercise transactions directly.
func (f *fakeEnrollmentRepo) Begin(ctx context.Context) (pgx.Tx, error)     { return nil, nil }
func (f *fakeEnrollmentRepo) Commit(ctx context.Context, tx pgx.Tx) error   { return nil }
func (f *fakeEnrollmentRepo) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

// recordingAuditSvc captures every recorded entry for assertions.
type recordingAuditSvc struct {
	Entries []portssvc.AuditEntry
}

func (a *recordingAuditSvc) Record(ctx context.Context, entry portssvc.AuditEntry) {
	a.Entries = append(a.Entries, entry)
}

func (a *recordingAuditSvc) BuildEvent(ctx context.Context, entry portssvc.AuditEntry) domain.AuditEvent {
	return domain.AuditEvent{
		AuditEventID:   uuid.NewString(),
		EventKind:      entry.EventKind,
		UserID:         entry.UserID,
		OrganizationID: entry.OrganizationID,
		CreatedAt:      time.Now(),
		Metadata:       entry.Metadata,
	}
}

func (a *recordingAuditSvc) ListEvents(ctx context.Context, access domain.AccessContext, filter portsrepo.AuditEventFilter) ([]domain.AuditEvent, error) {
	return []domain.AuditEvent{}, nil
}

func (a *recordingAuditSvc) DeleteEvent(ctx context.Context, access domain.AccessContext, auditEventID string) error {
	return nil
}

// fakeAccessSvc is a permissive access facade: everything is allowed and
// filters pass collections through unless a field overrides the behavior.
type fakeAccessSvc struct {
	RequirePermissionFn func(ctx context.Context, access domain.AccessContext, resource domain.Resource, action domain.Action, organizationID *string) error
	CanManageUserFn     func(ctx context.Context, access domain.AccessContext, targetUserID string) (bool, error)
	FilterEnrollmentsFn func(ctx context.Context, access domain.AccessContext, enrollments []domain.EmployeeEnrollment) ([]domain.EmployeeEnrollment, error)
	FilterEmployersFn   func(ctx context.Context, access domain.AccessContext, employers []domain.Employer) ([]domain.Employer, error)
	FilterEmployeesFn   func(ctx context.Context, access domain.AccessContext, employees []domain.Employee) ([]domain.Employee, error)
}

func (f *fakeAccessSvc) ResolveAccess(ctx context.Context, userID string) (domain.AccessContext, error) {
	return domain.AccessContext{UserID: userID}, nil
}

func (f *fakeAccessSvc) AccessibleOrganizations(ctx context.Context, access domain.AccessContext) ([]string, error) {
	if access.OrganizationID != nil {
		return []string{*access.OrganizationID}, nil
	}
	return []string{}, nil
}

func (f *fakeAccessSvc) CanManageUser(ctx context.Context, access domain.AccessContext, targetUserID string) (bool, error) {
	if f.CanManageUserFn != nil {
		return f.CanManageUserFn(ctx, access, targetUserID)
	}
	return true, nil
}

func (f *fakeAccessSvc) HasPermission(ctx context.Context, access domain.AccessContext, resource domain.Resource, action domain.Action, organizationID *string) bool {
	return f.RequirePermission(ctx, access, resource, action, organizationID) == nil
}

func (f *fakeAccessSvc) RequirePermission(ctx context.Context, access domain.AccessContext, resource domain.Resource, action domain.Action, organizationID *string) error {
	if f.RequirePermissionFn != nil {
		return f.RequirePermissionFn(ctx, access, resource, action, organizationID)
	}
	return nil
}

func (f *fakeAccessSvc) UserPermissions(access domain.AccessContext) map[domain.Resource][]domain.Action {
	return domain.PermissionsForRole(access.EffectiveRole())
}

func (f *fakeAccessSvc) FilterEmployees(ctx context.Context, access domain.AccessContext, employees []domain.Employee) ([]domain.Employee, error) {
	if f.FilterEmployeesFn != nil {
		return f.FilterEmployeesFn(ctx, access, employees)
	}
	return employees, nil
}

func (f *fakeAccessSvc) FilterEmployers(ctx context.Context, access domain.AccessContext, employers []domain.Employer) ([]domain.Employer, error) {
	if f.FilterEmployersFn != nil {
		return f.FilterEmployersFn(ctx, access, employers)
	}
	return employers, nil
}

func (f *fakeAccessSvc) FilterEnrollments(ctx context.Context, access domain.AccessContext, enrollments []domain.EmployeeEnrollment) ([]domain.EmployeeEnrollment, error) {
	if f.FilterEnrollmentsFn != nil {
		return f.FilterEnrollmentsFn(ctx, access, enrollments)
	}
	return enrollments, nil
}

func (f *fakeAccessSvc) FilterOrganizations(ctx context.Context, access domain.AccessContext, orgs []domain.Organization) ([]domain.Organization, error) {
	return orgs, nil
}
