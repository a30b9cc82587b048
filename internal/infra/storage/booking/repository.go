package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"br.id",
	"br.public_id",
	"br.service_id",
	"cs.slug",
	"br.status",
	"br.full_name",
	"br.email",
	"br.company",
	"br.role",
	"br.phone",
	"br.timezone",
	"br.duration_minutes",
	"br.requested_start_at",
	"br.requested_end_at",
	"br.meeting_mode",
	"br.problem_statement",
	"br.admin_notes",
	"br.meeting_url",
	"br.handled_by",
	"br.handled_at",
	"br.confirmed_at",
	"br.cancelled_at",
	"br.created_at",
	"br.updated_at",
}

// Repository репозиторий заявок на консультацию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("booking_requests br").
		Join("consulting_services cs ON cs.id = br.service_id")
}

// Create сохраняет новую заявку.
// Коллизия public_id возвращается как ErrDuplicatePublicID, вызывающий генерирует новый и повторяет.
func (r *Repository) Create(ctx context.Context, b *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_requests").
		Columns(
			"public_id",
			"service_id",
			"status",
			"full_name",
			"email",
			"company",
			"role",
			"phone",
			"timezone",
			"duration_minutes",
			"requested_start_at",
			"requested_end_at",
			"meeting_mode",
			"problem_statement",
		).
		Values(
			b.PublicID,
			b.ServiceID,
			b.Status,
			b.FullName,
			b.Email,
			b.Company,
			b.Role,
			b.Phone,
			b.Timezone,
			b.DurationMinutes,
			b.RequestedStartAt,
			b.RequestedEndAt,
			b.MeetingMode,
			b.ProblemStatement,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		switch {
		case pgerr.Is(err, pgerr.UniqueViolation):
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePublicID, b.PublicID)
		case pgerr.Is(err, pgerr.ForeignKeyViolation):
			return nil, fmt.Errorf("%w: service_id=%d", ErrServiceNotFound, b.ServiceID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// GetByPublicID получает заявку по публичному идентификатору
func (r *Repository) GetByPublicID(ctx context.Context, publicID string) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"br.public_id": publicID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPublicID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPublicID - scan booking: %w", ErrScanRow, err)
	}
	return b, nil
}

// LockByPublicID читает заявку с блокировкой строки (FOR UPDATE) до конца транзакции.
// Блокируется только строка заявки, строка услуги остается свободной.
func (r *Repository) LockByPublicID(ctx context.Context, publicID string) (*domain.BookingRequest, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"br.public_id": publicID}).
		Suffix("FOR UPDATE OF br").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LockByPublicID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: LockByPublicID - scan booking: %w", ErrScanRow, err)
	}
	return b, nil
}

// Update сохраняет изменяемые поля жизненного цикла заявки
func (r *Repository) Update(ctx context.Context, b *domain.BookingRequest) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("status", b.Status).
		Set("admin_notes", b.AdminNotes).
		Set("meeting_url", b.MeetingURL).
		Set("handled_by", b.HandledBy).
		Set("handled_at", b.HandledAt).
		Set("confirmed_at", b.ConfirmedAt).
		Set("cancelled_at", b.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}
	return nil
}

// List возвращает заявки для админки, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.BookingRequest, error) {
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

	return scanBookings(rows)
}

func listQuery(filter domain.BookingFilter) squirrel.SelectBuilder {
	builder := selectBookings().OrderBy("br.created_at DESC", "br.id DESC")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"br.status": *filter.Status})
	}
	if filter.Email != nil {
		builder = builder.Where(squirrel.Expr("LOWER(br.email) = LOWER(?)", *filter.Email))
	}
	if filter.ServiceSlug != nil {
		builder = builder.Where(squirrel.Expr("LOWER(cs.slug) = LOWER(?)", *filter.ServiceSlug))
	}
	if filter.StartFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"br.requested_start_at": *filter.StartFrom})
	}
	if filter.StartTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"br.requested_start_at": *filter.StartTo})
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		pattern := "%" + escapeLike(strings.TrimSpace(*filter.Search)) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"br.full_name": pattern},
			squirrel.ILike{"br.email": pattern},
			squirrel.ILike{"br.company": pattern},
			squirrel.ILike{"br.role": pattern},
			squirrel.ILike{"br.problem_statement": pattern},
			squirrel.ILike{"br.admin_notes": pattern},
		})
	}

	builder = builder.Limit(uint64(filter.EffectiveLimit()))
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	return builder
}

// ListConfirmedInRange возвращает подтвержденные заявки, пересекающие [from, to)
func (r *Repository) ListConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"br.status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"br.requested_start_at": to}).
		Where(squirrel.Gt{"br.requested_end_at": from}).
		OrderBy("br.requested_start_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.BookingRequest, error) {
	var b domain.BookingRequest
	var handledAt, confirmedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.PublicID,
		&b.ServiceID,
		&b.ServiceSlug,
		&b.Status,
		&b.FullName,
		&b.Email,
		&b.Company,
		&b.Role,
		&b.Phone,
		&b.Timezone,
		&b.DurationMinutes,
		&b.RequestedStartAt,
		&b.RequestedEndAt,
		&b.MeetingMode,
		&b.ProblemStatement,
		&b.AdminNotes,
		&b.MeetingURL,
		&b.HandledBy,
		&handledAt,
		&confirmedAt,
		&cancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.HandledAt = nullTimePtr(handledAt)
	b.ConfirmedAt = nullTimePtr(confirmedAt)
	b.CancelledAt = nullTimePtr(cancelledAt)
	b.RequestedStartAt = b.RequestedStartAt.UTC()
	b.RequestedEndAt = b.RequestedEndAt.UTC()

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.BookingRequest, error) {
	result := make([]*domain.BookingRequest, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %w", ErrScanRow, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows iteration: %w", ErrScanRow, err)
	}
	return result, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
