package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"timezone",
	"day_of_week",
	"start_time_local",
	"end_time_local",
	"slot_granularity_minutes",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"max_bookings_per_day",
	"min_lead_time_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

var blackoutColumns = []string{
	"id",
	"start_at",
	"end_at",
	"reason",
	"created_by",
	"created_at",
}

// Repository репозиторий недельных правил доступности и периодов блокировки.
// Эти данные только читаются при расчете доступности и никогда не блокируются.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateRule создает правило доступности
func (r *Repository) CreateRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"timezone",
			"day_of_week",
			"start_time_local",
			"end_time_local",
			"slot_granularity_minutes",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"max_bookings_per_day",
			"min_lead_time_minutes",
			"is_active",
		).
		Values(
			rule.Timezone,
			rule.DayOfWeek,
			rule.StartTimeLocal,
			rule.EndTimeLocal,
			rule.SlotGranularityMinutes,
			rule.BufferBeforeMinutes,
			rule.BufferAfterMinutes,
			rule.MaxBookingsPerDay,
			rule.MinLeadTimeMinutes,
			rule.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRule - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRule - execute insert: %w", ErrExecQuery, err)
	}
	return rule, nil
}

// GetRule получает правило по ID
func (r *Repository) GetRule(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - scan rule: %w", ErrScanRow, err)
	}
	return rule, nil
}

// ListRules возвращает правила, упорядоченные по дню недели и времени начала
func (r *Repository) ListRules(ctx context.Context) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		OrderBy("day_of_week", "start_time_local", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRules - scan rule: %w", ErrScanRow, err)
		}
		result = append(result, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRules - rows iteration: %w", ErrScanRow, err)
	}
	return result, nil
}

// UpdateRule полностью заменяет правило
func (r *Repository) UpdateRule(ctx context.Context, id int64, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_rules").
		Set("timezone", rule.Timezone).
		Set("day_of_week", rule.DayOfWeek).
		Set("start_time_local", rule.StartTimeLocal).
		Set("end_time_local", rule.EndTimeLocal).
		Set("slot_granularity_minutes", rule.SlotGranularityMinutes).
		Set("buffer_before_minutes", rule.BufferBeforeMinutes).
		Set("buffer_after_minutes", rule.BufferAfterMinutes).
		Set("max_bookings_per_day", rule.MaxBookingsPerDay).
		Set("min_lead_time_minutes", rule.MinLeadTimeMinutes).
		Set("is_active", rule.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateRule - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.CreatedAt, &rule.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateRule - execute update: %w", ErrExecQuery, err)
	}

	rule.ID = id
	return rule, nil
}

// DeleteRule удаляет правило
func (r *Repository) DeleteRule(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "availability_rules", id, ErrRuleNotFound)
}

// CreateBlackout создает период блокировки
func (r *Repository) CreateBlackout(ctx context.Context, b *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackout_periods").
		Columns("start_at", "end_at", "reason", "created_by").
		Values(b.StartAt, b.EndAt, b.Reason, b.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlackout - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlackout - execute insert: %w", ErrExecQuery, err)
	}
	return b, nil
}

// GetBlackout получает период блокировки по ID
func (r *Repository) GetBlackout(ctx context.Context, id int64) (*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blackoutColumns...).
		From("blackout_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlackout - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBlackout(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBlackoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlackout - scan blackout: %w", ErrScanRow, err)
	}
	return b, nil
}

// ListBlackouts возвращает все периоды блокировки, новые первыми
func (r *Repository) ListBlackouts(ctx context.Context) ([]*domain.BlackoutPeriod, error) {
	return r.queryBlackouts(ctx, "ListBlackouts",
		psqlbuilder.Select(blackoutColumns...).
			From("blackout_periods").
			OrderBy("start_at DESC", "id DESC"))
}

// ListBlackoutsInRange возвращает периоды блокировки, пересекающие interval
func (r *Repository) ListBlackoutsInRange(ctx context.Context, interval domain.Interval) ([]*domain.BlackoutPeriod, error) {
	return r.queryBlackouts(ctx, "ListBlackoutsInRange", blackoutsInRangeQuery(interval))
}

func blackoutsInRangeQuery(interval domain.Interval) squirrel.SelectBuilder {
	return psqlbuilder.Select(blackoutColumns...).
		From("blackout_periods").
		Where(squirrel.Lt{"start_at": interval.End}).
		Where(squirrel.Gt{"end_at": interval.Start}).
		OrderBy("start_at")
}

// UpdateBlackout заменяет границы и причину блокировки. created_by не меняется.
func (r *Repository) UpdateBlackout(ctx context.Context, id int64, b *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("blackout_periods").
		Set("start_at", b.StartAt).
		Set("end_at", b.EndAt).
		Set("reason", b.Reason).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, start_at, end_at, reason, created_by, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateBlackout - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanBlackout(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBlackoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateBlackout - execute update: %w", ErrExecQuery, err)
	}
	return updated, nil
}

// DeleteBlackout удаляет период блокировки
func (r *Repository) DeleteBlackout(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "blackout_periods", id, ErrBlackoutNotFound)
}

func (r *Repository) queryBlackouts(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.BlackoutPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.BlackoutPeriod, 0)
	for rows.Next() {
		b, err := scanBlackout(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan blackout: %w", ErrScanRow, op, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrScanRow, op, err)
	}
	return result, nil
}

func (r *Repository) deleteByID(ctx context.Context, table string, id int64, notFound error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete %s - build delete query: %v", ErrBuildQuery, table, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete %s - execute delete: %w", ErrExecQuery, table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete %s - get rows affected: %w", ErrExecQuery, table, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.AvailabilityRule, error) {
	var rule domain.AvailabilityRule
	err := row.Scan(
		&rule.ID,
		&rule.Timezone,
		&rule.DayOfWeek,
		&rule.StartTimeLocal,
		&rule.EndTimeLocal,
		&rule.SlotGranularityMinutes,
		&rule.BufferBeforeMinutes,
		&rule.BufferAfterMinutes,
		&rule.MaxBookingsPerDay,
		&rule.MinLeadTimeMinutes,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func scanBlackout(row rowScanner) (*domain.BlackoutPeriod, error) {
	var b domain.BlackoutPeriod
	if err := row.Scan(&b.ID, &b.StartAt, &b.EndAt, &b.Reason, &b.CreatedBy, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.StartAt = b.StartAt.UTC()
	b.EndAt = b.EndAt.UTC()
	return &b, nil
}
