package availability

import (
	"context"
	"errors"
	"fmt"

	availabilityRepo "github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/availability"
	"github.com/m04kA/SMC-ConsultingBooking/internal/service/availability/models"
)

// Service сервис правил доступности и периодов блокировки (только для сотрудников)
type Service struct {
	repo   AvailabilityRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(repo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Правила доступности

// CreateRule создает недельное правило доступности
func (s *Service) CreateRule(ctx context.Context, req *models.RuleRequest) (*models.RuleResponse, error) {
	rule, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("CreateRule: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.CreateRule(ctx, rule)
	if err != nil {
		s.logger.Error("CreateRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRule: created rule id=%d, day=%d, %s-%s",
		created.ID, created.DayOfWeek, created.StartTimeLocal, created.EndTimeLocal)
	return models.FromDomainRule(created), nil
}

// GetRule получает правило по ID
func (s *Service) GetRule(ctx context.Context, id int64) (*models.RuleResponse, error) {
	rule, err := s.repo.GetRule(ctx, id)
	if err != nil {
		return nil, s.ruleError("GetRule", id, err)
	}
	return models.FromDomainRule(rule), nil
}

// ListRules список правил по дню недели и времени начала
func (s *Service) ListRules(ctx context.Context) ([]*models.RuleResponse, error) {
	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		s.logger.Error("ListRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRuleList(rules), nil
}

// UpdateRule полностью заменяет правило
func (s *Service) UpdateRule(ctx context.Context, id int64, req *models.RuleRequest) (*models.RuleResponse, error) {
	rule, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("UpdateRule: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.repo.UpdateRule(ctx, id, rule)
	if err != nil {
		return nil, s.ruleError("UpdateRule", id, err)
	}
	return models.FromDomainRule(updated), nil
}

// DeleteRule удаляет правило
func (s *Service) DeleteRule(ctx context.Context, id int64) error {
	if err := s.repo.DeleteRule(ctx, id); err != nil {
		return s.ruleError("DeleteRule", id, err)
	}
	s.logger.Info("DeleteRule: deleted rule id=%d", id)
	return nil
}

func (s *Service) ruleError(op string, id int64, err error) error {
	if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
		s.logger.Warn("%s: rule id=%d not found", op, id)
		return ErrRuleNotFound
	}
	s.logger.Error("%s: repository error for rule id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// Периоды блокировки

// CreateBlackout создает период блокировки от имени сотрудника actor
func (s *Service) CreateBlackout(ctx context.Context, req *models.BlackoutRequest, actor string) (*models.BlackoutResponse, error) {
	blackout, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("CreateBlackout: validation failed: %v", err)
		return nil, err
	}
	if actor != "" {
		blackout.CreatedBy = &actor
	}

	created, err := s.repo.CreateBlackout(ctx, blackout)
	if err != nil {
		s.logger.Error("CreateBlackout: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlackout: created blackout id=%d, %s - %s by %s",
		created.ID, created.StartAt, created.EndAt, actor)
	return models.FromDomainBlackout(created), nil
}

// GetBlackout получает период блокировки по ID
func (s *Service) GetBlackout(ctx context.Context, id int64) (*models.BlackoutResponse, error) {
	blackout, err := s.repo.GetBlackout(ctx, id)
	if err != nil {
		return nil, s.blackoutError("GetBlackout", id, err)
	}
	return models.FromDomainBlackout(blackout), nil
}

// ListBlackouts список периодов блокировки, новые первыми
func (s *Service) ListBlackouts(ctx context.Context) ([]*models.BlackoutResponse, error) {
	blackouts, err := s.repo.ListBlackouts(ctx)
	if err != nil {
		s.logger.Error("ListBlackouts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlackouts - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBlackoutList(blackouts), nil
}

// UpdateBlackout заменяет интервал и причину, автор не меняется
func (s *Service) UpdateBlackout(ctx context.Context, id int64, req *models.BlackoutRequest) (*models.BlackoutResponse, error) {
	blackout, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("UpdateBlackout: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.repo.UpdateBlackout(ctx, id, blackout)
	if err != nil {
		return nil, s.blackoutError("UpdateBlackout", id, err)
	}
	return models.FromDomainBlackout(updated), nil
}

// DeleteBlackout удаляет период блокировки
func (s *Service) DeleteBlackout(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBlackout(ctx, id); err != nil {
		return s.blackoutError("DeleteBlackout", id, err)
	}
	s.logger.Info("DeleteBlackout: deleted blackout id=%d", id)
	return nil
}

func (s *Service) blackoutError(op string, id int64, err error) error {
	if errors.Is(err, availabilityRepo.ErrBlackoutNotFound) {
		s.logger.Warn("%s: blackout id=%d not found", op, id)
		return ErrBlackoutNotFound
	}
	s.logger.Error("%s: repository error for blackout id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
