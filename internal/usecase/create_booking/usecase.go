package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/booking"
	consultingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/consulting"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/token"
)

// maxPublicIDAttempts сколько раз генерируем public_id при коллизиях
const maxPublicIDAttempts = 3

// UseCase use case создания заявки на консультацию.
// Слот на этом шаге не создается, время бронируется только при подтверждении.
type UseCase struct {
	serviceRepo  ServiceRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	newPublicID  PublicIDGenerator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		newPublicID:  func() (string, error) { return token.Generate(domain.PublicIDLength) },
		logger:       logger,
	}
}

// Execute валидирует заявку и сохраняет ее в статусе REQUESTED
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.BookingRequest, error) {
	uc.logger.Info("CreateBookingRequest: service=%s, email=%s, mode=%s", req.ServiceSlug, req.Email, req.MeetingMode)

	now := uc.timeProvider.Now()
	verr := domain.NewValidationError()

	// 1. Поля контакта и часовой пояс
	validateContact(req, verr)

	// 2. Услуга
	var service *domain.ConsultingService
	if strings.TrimSpace(req.ServiceSlug) == "" {
		verr.Add("service", "This field is required.")
	} else {
		found, err := uc.serviceRepo.GetBySlug(ctx, req.ServiceSlug)
		switch {
		case errors.Is(err, consultingRepo.ErrServiceNotFound):
			verr.Add("service", fmt.Sprintf("Object with slug=%s does not exist.", req.ServiceSlug))
		case err != nil:
			uc.logger.Error("CreateBookingRequest: failed to get service slug=%s: %v", req.ServiceSlug, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		default:
			service = found
		}
	}

	// 3. Правила услуги: статус, длительность, формат, время начала
	duration := 0
	if service != nil {
		duration = validateBooking(req, service, now, verr)
	}

	if err := verr.ErrOrNil(); err != nil {
		uc.logger.Warn("CreateBookingRequest: validation failed: %v", err)
		return nil, err
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = domain.DefaultTimezone
	}
	start := req.RequestedStartAt.UTC()

	booking := &domain.BookingRequest{
		ServiceID:        service.ID,
		ServiceSlug:      service.Slug,
		Status:           domain.StatusRequested,
		FullName:         strings.TrimSpace(req.FullName),
		Email:            strings.TrimSpace(req.Email),
		Company:          req.Company,
		Role:             req.Role,
		Phone:            req.Phone,
		Timezone:         timezone,
		DurationMinutes:  duration,
		RequestedStartAt: start,
		RequestedEndAt:   start.Add(time.Duration(duration) * time.Minute),
		MeetingMode:      domain.MeetingMode(req.MeetingMode),
		ProblemStatement: req.ProblemStatement,
	}

	// 4. Сохраняем; уникальность public_id гарантирует ограничение в базе
	for attempt := 1; attempt <= maxPublicIDAttempts; attempt++ {
		publicID, err := uc.newPublicID()
		if err != nil {
			uc.logger.Error("CreateBookingRequest: failed to generate public id: %v", err)
			return nil, fmt.Errorf("%w: generate public id: %v", ErrInternal, err)
		}
		booking.PublicID = publicID

		created, err := uc.bookingRepo.Create(ctx, booking)
		if errors.Is(err, bookingRepo.ErrDuplicatePublicID) {
			uc.logger.Warn("CreateBookingRequest: public id collision (attempt %d/%d)", attempt, maxPublicIDAttempts)
			continue
		}
		if err != nil {
			uc.logger.Error("CreateBookingRequest: failed to create booking request: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking request: %v", ErrInternal, err)
		}

		created.ServiceSlug = service.Slug
		uc.logger.Info("CreateBookingRequest: created public_id=%s, %s - %s",
			created.PublicID, created.RequestedStartAt.Format(time.RFC3339), created.RequestedEndAt.Format(time.RFC3339))
		return created, nil
	}

	uc.logger.Error("CreateBookingRequest: public id collisions exhausted after %d attempts", maxPublicIDAttempts)
	return nil, ErrPublicIDCollision
}
