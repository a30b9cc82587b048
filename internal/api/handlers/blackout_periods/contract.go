package blackout_periods

import (
	"context"

	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability/models"
)

type BlackoutService interface {
	CreateBlackout(ctx context.Context, req *models.BlackoutRequest, actor string) (*models.BlackoutResponse, error)
	GetBlackout(ctx context.Context, id int64) (*models.BlackoutResponse, error)
	ListBlackouts(ctx context.Context) ([]*models.BlackoutResponse, error)
	UpdateBlackout(ctx context.Context, id int64, req *models.BlackoutRequest) (*models.BlackoutResponse, error)
	DeleteBlackout(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
