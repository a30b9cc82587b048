package availability_rules

import (
	"context"

	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateRule(ctx context.Context, req *models.RuleRequest) (*models.RuleResponse, error)
	GetRule(ctx context.Context, id int64) (*models.RuleResponse, error)
	ListRules(ctx context.Context) ([]*models.RuleResponse, error)
	UpdateRule(ctx context.Context, id int64, req *models.RuleRequest) (*models.RuleResponse, error)
	DeleteRule(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
