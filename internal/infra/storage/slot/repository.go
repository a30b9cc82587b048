package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/psqlbuilder"
)

// ScheduleLockKey ключ транзакционной advisory-блокировки расписания.
// Ресурс один (консультант), поэтому и ключ один на все подтверждения.
const ScheduleLockKey int64 = 0x626f6f6b696e67

var slotColumns = []string{
	"id",
	"booking_request_id",
	"start_at",
	"end_at",
	"status",
	"hold_expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockSchedule берет pg_advisory_xact_lock на расписание.
// Блокировка держится до конца текущей транзакции. Два подтверждения с пересекающимися
// интервалами выполняются строго одно за другим, даже если слотов для FOR UPDATE еще нет.
func (r *Repository) LockSchedule(ctx context.Context) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", ScheduleLockKey); err != nil {
		return fmt.Errorf("%w: LockSchedule - acquire advisory lock: %w", ErrExecQuery, err)
	}
	return nil
}

// FindActiveOverlapping возвращает HELD/CONFIRMED слоты, пересекающие interval.
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) FindActiveOverlapping(ctx context.Context, interval domain.Interval) ([]*domain.BookingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := overlapQuery(ctx, interval).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

func overlapQuery(ctx context.Context, interval domain.Interval) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(slotColumns...).
		From("booking_slots").
		Where(squirrel.Eq{"status": activeStatuses()}).
		Where(squirrel.Lt{"start_at": interval.End}).
		Where(squirrel.Gt{"end_at": interval.Start}).
		OrderBy("start_at")

	// Если используется транзакция, добавляем FOR UPDATE для блокировки
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}
	return builder
}

// Create создает слот
func (r *Repository) Create(ctx context.Context, s *domain.BookingSlot) (*domain.BookingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_slots").
		Columns("booking_request_id", "start_at", "end_at", "status", "hold_expires_at").
		Values(s.BookingRequestID, s.StartAt, s.EndAt, s.Status, s.HoldExpiresAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		switch {
		case pgerr.Is(err, pgerr.UniqueViolation):
			return nil, fmt.Errorf("%w: booking_request_id=%d", ErrSlotExists, s.BookingRequestID)
		case pgerr.Is(err, pgerr.ExclusionViolation):
			return nil, fmt.Errorf("%w: %s - %s", ErrOverlap, s.StartAt, s.EndAt)
		case pgerr.Is(err, pgerr.CheckViolation):
			return nil, fmt.Errorf("%w: %s - %s", ErrInvalidInterval, s.StartAt, s.EndAt)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return s, nil
}

// ReleaseByBookingRequestID переводит слот заявки в RELEASED. Строка не удаляется.
// Возвращает количество освобожденных слотов (0 или 1).
func (r *Repository) ReleaseByBookingRequestID(ctx context.Context, bookingRequestID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_slots").
		Set("status", domain.SlotReleased).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_request_id": bookingRequestID}).
		Where(squirrel.NotEq{"status": domain.SlotReleased}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBookingRequestID - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBookingRequestID - execute update: %w", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBookingRequestID - rows affected: %w", ErrExecQuery, err)
	}
	return affected, nil
}

// GetByBookingRequestID возвращает слот заявки
func (r *Repository) GetByBookingRequestID(ctx context.Context, bookingRequestID int64) (*domain.BookingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("booking_slots").
		Where(squirrel.Eq{"booking_request_id": bookingRequestID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingRequestID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingRequestID - scan slot: %w", ErrScanRow, err)
	}
	return s, nil
}

func activeStatuses() []string {
	result := make([]string, 0, len(domain.ActiveSlotStatuses))
	for _, s := range domain.ActiveSlotStatuses {
		result = append(result, string(s))
	}
	return result
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.BookingSlot, error) {
	var s domain.BookingSlot
	var holdExpiresAt sql.NullTime

	if err := row.Scan(
		&s.ID,
		&s.BookingRequestID,
		&s.StartAt,
		&s.EndAt,
		&s.Status,
		&holdExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	s.StartAt = s.StartAt.UTC()
	s.EndAt = s.EndAt.UTC()
	if holdExpiresAt.Valid {
		t := holdExpiresAt.Time.UTC()
		s.HoldExpiresAt = &t
	}
	return &s, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.BookingSlot, error) {
	result := make([]*domain.BookingSlot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan slot: %w", ErrScanRow, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows iteration: %w", ErrScanRow, err)
	}
	return result, nil
}
