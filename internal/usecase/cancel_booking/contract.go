package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	LockByPublicID(ctx context.Context, publicID string) (*domain.BookingRequest, error)
	Update(ctx context.Context, b *domain.BookingRequest) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ReleaseByBookingRequestID(ctx context.Context, bookingRequestID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик отмен
type Metrics interface {
	IncCancel(by string)
}

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
