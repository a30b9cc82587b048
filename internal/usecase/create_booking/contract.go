package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.ConsultingService, error)
}

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	Create(ctx context.Context, b *domain.BookingRequest) (*domain.BookingRequest, error)
}

// PublicIDGenerator генератор публичных идентификаторов заявок
type PublicIDGenerator func() (string, error)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
