package decline_booking

import (
	"context"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	declineBooking "github.com/m04kA/SMC-ConsultingBooking/internal/usecase/decline_booking"
)

type DeclineBookingUseCase interface {
	Execute(ctx context.Context, req *declineBooking.Request) (*domain.BookingRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
