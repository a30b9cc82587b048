package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/bookings/models"
)

// Service сервис чтения заявок
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByPublicID получает заявку по публичному идентификатору
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*domain.BookingRequest, error) {
	booking, err := s.bookingRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByPublicID: public_id=%s not found", publicID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByPublicID: repository error for public_id=%s: %v", publicID, err)
		return nil, fmt.Errorf("%w: GetByPublicID - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// List список заявок для админки с фильтрами, поиском и пагинацией
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AdminBookingList, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	logMsg := fmt.Sprintf("List: limit=%d, offset=%d", filter.EffectiveLimit(), filter.Offset)
	if filter.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *filter.Status)
	}
	if filter.ServiceSlug != nil {
		logMsg += fmt.Sprintf(", service=%s", *filter.ServiceSlug)
	}
	if filter.Search != nil {
		logMsg += fmt.Sprintf(", q=%q", strings.TrimSpace(*filter.Search))
	}
	s.logger.Info(logMsg)

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAdminList(bookings, filter), nil
}
