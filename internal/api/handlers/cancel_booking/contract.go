package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	cancelBooking "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	Execute(ctx context.Context, req *cancelBooking.Request) (*domain.BookingRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
