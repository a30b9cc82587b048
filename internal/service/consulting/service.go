package consulting

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	consultingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/consulting"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/consulting/models"
)

// Service сервис каталога консультационных услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List список услуг.
// Клиент видит только опубликованные, сотрудник все либо отфильтрованные по статусу.
func (s *Service) List(ctx context.Context, staff bool, status string) ([]*models.ServiceResponse, error) {
	var filter consultingRepo.Filter
	switch {
	case !staff:
		published := domain.ServicePublished
		filter.Status = &published
	case status != "":
		st := domain.ServiceStatus(status)
		if !st.Valid() {
			s.logger.Warn("List: invalid status filter=%s", status)
			return nil, domain.FieldError("status", "Select a valid choice.")
		}
		filter.Status = &st
	}

	services, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Get получает услугу по slug. Неопубликованная услуга для клиента не существует.
func (s *Service) Get(ctx context.Context, slug string, staff bool) (*models.ServiceResponse, error) {
	service, err := s.get(ctx, "Get", slug)
	if err != nil {
		return nil, err
	}
	if !staff && !service.IsBookable() {
		s.logger.Warn("Get: service slug=%s is %s, hidden from public", slug, service.Status)
		return nil, ErrServiceNotFound
	}
	return models.FromDomainService(service), nil
}

// Create создает услугу
func (s *Service) Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service slug=%s", req.Slug)

	service := req.ToDomain()
	service.ApplyDefaults()
	if err := service.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		if errors.Is(err, consultingRepo.ErrDuplicateSlug) {
			s.logger.Warn("Create: slug=%s already exists", req.Slug)
			return nil, ErrDuplicateSlug
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%d, slug=%s", created.ID, created.Slug)
	return models.FromDomainService(created), nil
}

// Update полностью заменяет услугу, slug тоже может измениться
func (s *Service) Update(ctx context.Context, slug string, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service slug=%s", slug)

	current, err := s.get(ctx, "Update", slug)
	if err != nil {
		return nil, err
	}

	service := req.ToDomain()
	service.ApplyDefaults()
	if err := service.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, current.ID, service)
	if err != nil {
		switch {
		case errors.Is(err, consultingRepo.ErrDuplicateSlug):
			s.logger.Warn("Update: slug=%s already exists", req.Slug)
			return nil, ErrDuplicateSlug
		case errors.Is(err, consultingRepo.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу, если на нее нет заявок
func (s *Service) Delete(ctx context.Context, slug string) error {
	s.logger.Info("Delete: deleting service slug=%s", slug)

	current, err := s.get(ctx, "Delete", slug)
	if err != nil {
		return err
	}

	if err := s.serviceRepo.Delete(ctx, current.ID); err != nil {
		switch {
		case errors.Is(err, consultingRepo.ErrServiceInUse):
			s.logger.Warn("Delete: service slug=%s has booking requests", slug)
			return ErrServiceInUse
		case errors.Is(err, consultingRepo.ErrServiceNotFound):
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) get(ctx context.Context, op, slug string) (*domain.ConsultingService, error) {
	service, err := s.serviceRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, consultingRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service slug=%s not found", op, slug)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for slug=%s: %v", op, slug, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return service, nil
}
