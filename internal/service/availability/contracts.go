package availability

import (
	"context"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
)

// AvailabilityRepository интерфейс репозитория правил доступности и блокировок
type AvailabilityRepository interface {
	CreateRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	GetRule(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	ListRules(ctx context.Context) ([]*domain.AvailabilityRule, error)
	UpdateRule(ctx context.Context, id int64, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	DeleteRule(ctx context.Context, id int64) error

	CreateBlackout(ctx context.Context, b *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error)
	GetBlackout(ctx context.Context, id int64) (*domain.BlackoutPeriod, error)
	ListBlackouts(ctx context.Context) ([]*domain.BlackoutPeriod, error)
	UpdateBlackout(ctx context.Context, id int64, b *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error)
	DeleteBlackout(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
