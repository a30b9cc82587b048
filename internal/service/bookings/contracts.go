package bookings

import (
	"context"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	GetByPublicID(ctx context.Context, publicID string) (*domain.BookingRequest, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.BookingRequest, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
