package confirm_booking

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
	LockSchedule(ctx context.Context) error
	FindActiveOverlapping(ctx context.Context, interval domain.Interval) ([]*domain.BookingSlot, error)
	Create(ctx context.Context, slot *domain.BookingSlot) (*domain.BookingSlot, error)
}

// BlackoutRepository интерфейс чтения периодов блокировки
type BlackoutRepository interface {
	ListBlackoutsInRange(ctx context.Context, interval domain.Interval) ([]*domain.BlackoutPeriod, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики исходов подтверждения
type Metrics interface {
	IncConfirm(result string)
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
