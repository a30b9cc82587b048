package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

// BookingRepository интерфейс чтения подтвержденных заявок
type BookingRepository interface {
	ListConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.BookingRequest, error)
}

// BlackoutRepository интерфейс чтения периодов блокировки
type BlackoutRepository interface {
	ListBlackoutsInRange(ctx context.Context, interval domain.Interval) ([]*domain.BlackoutPeriod, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
