package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/google/uuid"
)

// brokerService implements the BrokerSvcFacade interface
type brokerService struct {
	BaseService
	brokerRepo portsrepo.BrokerRepositoryWithTx
	orgRepo    portsrepo.OrganizationRepositoryFacade
	accessSvc  portssvc.AccessSvcFacade
}

// NewBrokerService creates a new broker service with the provided dependencies
func NewBrokerService(
	brokerRepo portsrepo.BrokerRepositoryWithTx,
	orgRepo portsrepo.OrganizationRepositoryFacade,
	accessSvc portssvc.AccessSvcFacade,
) portssvc.BrokerSvcFacade {
	return &brokerService{
		brokerRepo: brokerRepo,
		orgRepo:    orgRepo,
		accessSvc:  accessSvc,
	}
}

var _ portssvc.BrokerSvcFacade = (*brokerService)(nil)

// CreateBroker persists a new broker agency and the tenant organization it
// operates as. Superuser only: brokers are onboarded by platform staff.
func (s *brokerService) CreateBroker(ctx context.Context, access domain.AccessContext, req dto.CreateBrokerRequest) (*domain.Broker, error) {
	if !access.Superuser() {
		if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceOrganizations, domain.ActionCreate, nil); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.AgencyName,
		Slug:           domain.Slugify(req.AgencyName),
		Type:           domain.OrgTypeBroker,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(access.UserID, now),
	}
	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save broker organization",
			slog.String("organization_id", org.OrganizationID))
		return nil, err
	}

	broker := domain.Broker{
		BrokerID:       uuid.NewString(),
		OrganizationID: org.OrganizationID,
		AgencyName:     req.AgencyName,
		LicenseNumber:  req.LicenseNumber,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		AuditFields:    domain.NewAuditFields(access.UserID, now),
	}
	if err := s.brokerRepo.SaveBroker(ctx, broker); err != nil {
		s.LogError(ctx, err, "Failed to save broker",
			slog.String("broker_id", broker.BrokerID))
		return nil, err
	}

	s.LogInfo(ctx, "Broker created",
		slog.String("broker_id", broker.BrokerID),
		slog.String("organization_id", org.OrganizationID))
	return &broker, nil
}

// FindBrokerByID retrieves a specific broker by its ID.
func (s *brokerService) FindBrokerByID(ctx context.Context, access domain.AccessContext, brokerID string) (*domain.Broker, error) {
	broker, err := s.brokerRepo.FindBrokerByID(ctx, brokerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find broker",
				slog.String("broker_id", brokerID))
		}
		return nil, err
	}

	if !access.Superuser() {
		if access.OrganizationID == nil || *access.OrganizationID != broker.OrganizationID {
			return nil, apperrors.NewNotFoundError("broker", brokerID)
		}
	}
	return broker, nil
}

// ListBrokers retrieves all brokers. Superuser only.
func (s *brokerService) ListBrokers(ctx context.Context, access domain.AccessContext) ([]domain.Broker, error) {
	if !access.Superuser() {
		return nil, apperrors.ErrForbidden
	}
	brokers, err := s.brokerRepo.ListBrokers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list brokers")
		return nil, err
	}
	if brokers == nil {
		return []domain.Broker{}, nil
	}
	return brokers, nil
}

// CreateEmployer persists a new employer group under a broker together with
// its tenant organization. The organization is what broker-family roles
// inherit access to.
func (s *brokerService) CreateEmployer(ctx context.Context, access domain.AccessContext, req dto.CreateEmployerRequest) (*domain.Employer, error) {
	broker, err := s.brokerRepo.FindBrokerByID(ctx, req.BrokerID)
	if err != nil {
		return nil, err
	}

	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceEmployers, domain.ActionCreate, &broker.OrganizationID); err != nil {
		return nil, err
	}

	now := time.Now()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.Name,
		Slug:           domain.Slugify(req.Name),
		Type:           domain.OrgTypeEmployer,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(access.UserID, now),
	}
	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save employer organization",
			slog.String("organization_id", org.OrganizationID))
		return nil, err
	}

	employer := domain.Employer{
		EmployerID:     uuid.NewString(),
		BrokerID:       broker.BrokerID,
		OrganizationID: org.OrganizationID,
		Name:           req.Name,
		EIN:            req.EIN,
		Size:           req.Size,
		EffectiveDate:  req.EffectiveDate,
		Status:         domain.EmployerStatusPending,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		Address:        req.Address,
		AuditFields:    domain.NewAuditFields(access.UserID, now),
	}
	if err := s.brokerRepo.SaveEmployer(ctx, employer); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("an employer with this EIN already exists")
		}
		s.LogError(ctx, err, "Failed to save employer",
			slog.String("employer_id", employer.EmployerID))
		return nil, err
	}

	s.LogInfo(ctx, "Employer created",
		slog.String("employer_id", employer.EmployerID),
		slog.String("broker_id", broker.BrokerID))
	return &employer, nil
}

// FindEmployerByID retrieves a specific employer by its ID. Employers outside
// the actor's accessible organizations look like missing employers.
func (s *brokerService) FindEmployerByID(ctx context.Context, access domain.AccessContext, employerID string) (*domain.Employer, error) {
	employer, err := s.brokerRepo.FindEmployerByID(ctx, employerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find employer",
				slog.String("employer_id", employerID))
		}
		return nil, err
	}

	visible, err := s.accessSvc.FilterEmployers(ctx, access, []domain.Employer{*employer})
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, apperrors.NewNotFoundError("employer", employerID)
	}
	return employer, nil
}

// ListEmployers retrieves the employers the actor may see.
func (s *brokerService) ListEmployers(ctx context.Context, access domain.AccessContext) ([]domain.Employer, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceEmployers, domain.ActionRead, nil); err != nil {
		return nil, err
	}

	employers, err := s.brokerRepo.ListEmployers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list employers")
		return nil, err
	}
	return s.accessSvc.FilterEmployers(ctx, access, employers)
}

// UpdateEmployer persists changes to an existing employer.
func (s *brokerService) UpdateEmployer(ctx context.Context, access domain.AccessContext, employerID string, req dto.UpdateEmployerRequest) (*domain.Employer, error) {
	employer, err := s.FindEmployerByID(ctx, access, employerID)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceEmployers, domain.ActionUpdate, &employer.OrganizationID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		employer.Name = *req.Name
	}
	if req.Size != nil {
		employer.Size = *req.Size
	}
	if req.RenewalDate != nil {
		employer.RenewalDate = req.RenewalDate
	}
	if req.Status != nil {
		employer.Status = domain.EmployerStatus(*req.Status)
	}
	if req.ContactName != nil {
		employer.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		employer.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		employer.ContactPhone = *req.ContactPhone
	}
	employer.Touch(access.UserID, time.Now())

	if err := s.brokerRepo.UpdateEmployer(ctx, *employer); err != nil {
		s.LogError(ctx, err, "Failed to update employer",
			slog.String("employer_id", employerID))
		return nil, err
	}
	return employer, nil
}
