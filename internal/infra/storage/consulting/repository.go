package consulting

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"slug",
	"name",
	"description",
	"deliverables",
	"default_duration_minutes",
	"allowed_durations_minutes",
	"price_amount",
	"currency",
	"meeting_modes",
	"status",
	"created_at",
	"updated_at",
}

// Filter фильтр списка услуг
type Filter struct {
	Status *domain.ServiceStatus
}

// Repository репозиторий каталога консультационных услуг
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает услугу
func (r *Repository) Create(ctx context.Context, s *domain.ConsultingService) (*domain.ConsultingService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("consulting_services").
		Columns(
			"slug",
			"name",
			"description",
			"deliverables",
			"default_duration_minutes",
			"allowed_durations_minutes",
			"price_amount",
			"currency",
			"meeting_modes",
			"status",
		).
		Values(
			s.Slug,
			s.Name,
			s.Description,
			stringArray(s.Deliverables),
			s.DefaultDurationMinutes,
			intArray(s.AllowedDurationsMinutes),
			s.PriceAmount,
			s.Currency,
			modeArray(s.MeetingModes),
			s.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if pgerr.Is(err, pgerr.UniqueViolation) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, s.Slug)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return s, nil
}

// GetBySlug получает услугу по slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.ConsultingService, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ConsultingService, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.ConsultingService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("consulting_services").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan service: %w", ErrScanRow, op, err)
	}
	return s, nil
}

// List возвращает услуги, упорядоченные по названию
func (r *Repository) List(ctx context.Context, filter Filter) ([]*domain.ConsultingService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ConsultingService, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan service: %w", ErrScanRow, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrScanRow, err)
	}
	return result, nil
}

func listQuery(filter Filter) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(serviceColumns...).
		From("consulting_services").
		OrderBy("name", "id")
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	return builder
}

// Update полностью заменяет услугу с указанным ID
func (r *Repository) Update(ctx context.Context, id int64, s *domain.ConsultingService) (*domain.ConsultingService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consulting_services").
		Set("slug", s.Slug).
		Set("name", s.Name).
		Set("description", s.Description).
		Set("deliverables", stringArray(s.Deliverables)).
		Set("default_duration_minutes", s.DefaultDurationMinutes).
		Set("allowed_durations_minutes", intArray(s.AllowedDurationsMinutes)).
		Set("price_amount", s.PriceAmount).
		Set("currency", s.Currency).
		Set("meeting_modes", modeArray(s.MeetingModes)).
		Set("status", s.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		if pgerr.Is(err, pgerr.UniqueViolation) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, s.Slug)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	s.ID = id
	return s, nil
}

// Delete удаляет услугу. Услугу с заявками удалить нельзя (ON DELETE RESTRICT).
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("consulting_services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.Is(err, pgerr.ForeignKeyViolation) {
			return fmt.Errorf("%w: id=%d", ErrServiceInUse, id)
		}
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.ConsultingService, error) {
	var s domain.ConsultingService
	var deliverables, modes pq.StringArray
	var durations pq.Int64Array
	var price sql.NullFloat64

	err := row.Scan(
		&s.ID,
		&s.Slug,
		&s.Name,
		&s.Description,
		&deliverables,
		&s.DefaultDurationMinutes,
		&durations,
		&price,
		&s.Currency,
		&modes,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(deliverables) > 0 {
		s.Deliverables = []string(deliverables)
	}
	for _, d := range durations {
		s.AllowedDurationsMinutes = append(s.AllowedDurationsMinutes, int(d))
	}
	for _, m := range modes {
		s.MeetingModes = append(s.MeetingModes, domain.MeetingMode(m))
	}
	if price.Valid {
		s.PriceAmount = &price.Float64
	}
	return &s, nil
}

// Пустые списки хранятся как NULL (без ограничений)
func stringArray(values []string) interface{} {
	if len(values) == 0 {
		return nil
	}
	return pq.StringArray(values)
}

func intArray(values []int) interface{} {
	if len(values) == 0 {
		return nil
	}
	arr := make(pq.Int64Array, 0, len(values))
	for _, v := range values {
		arr = append(arr, int64(v))
	}
	return arr
}

func modeArray(values []domain.MeetingMode) interface{} {
	if len(values) == 0 {
		return nil
	}
	arr := make(pq.StringArray, 0, len(values))
	for _, v := range values {
		arr = append(arr, string(v))
	}
	return arr
}
