package get_booking

import (
	"context"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

type BookingService interface {
	GetByPublicID(ctx context.Context, publicID string) (*domain.BookingRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
