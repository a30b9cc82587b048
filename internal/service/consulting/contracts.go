package consulting

import (
	"context"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	consultingRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/consulting"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.ConsultingService) (*domain.ConsultingService, error)
	GetBySlug(ctx context.Context, slug string) (*domain.ConsultingService, error)
	List(ctx context.Context, filter consultingRepo.Filter) ([]*domain.ConsultingService, error)
	Update(ctx context.Context, id int64, s *domain.ConsultingService) (*domain.ConsultingService, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
