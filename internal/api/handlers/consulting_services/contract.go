package consulting_services

import (
	"context"

	"github.com/m04kA/SMC-ConsultingBooking/internal/service/consulting/models"
)

type ConsultingService interface {
	List(ctx context.Context, staff bool, status string) ([]*models.ServiceResponse, error)
	Get(ctx context.Context, slug string, staff bool) (*models.ServiceResponse, error)
	Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error)
	Update(ctx context.Context, slug string, req *models.ServiceRequest) (*models.ServiceResponse, error)
	Delete(ctx context.Context, slug string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
