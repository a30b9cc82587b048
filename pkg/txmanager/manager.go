// Package txmanager выполняет функции внутри транзакций database/sql.
// Транзакция передается репозиториям через контекст (см. dbmetrics.GetExecutor).
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-ConsultingBooking/pkg/dbmetrics"
)

// TxBeginner источник транзакций. Реализуется *dbmetrics.DB и SQLBeginner.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// SQLBeginner адаптер *sql.DB к TxBeginner
type SQLBeginner struct {
	DB *sql.DB
}

func (b SQLBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return b.DB.BeginTx(ctx, opts)
}

// RetryObserver получает уведомления о повторах транзакций
type RetryObserver interface {
	IncTxRetry()
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

const (
	DefaultMaxRetries = 3
	DefaultBackoff    = 20 * time.Millisecond
)

// Manager менеджер транзакций
type Manager struct {
	db         TxBeginner
	maxRetries int
	backoff    time.Duration
	observer   RetryObserver
	logger     Logger
}

// Option настройка менеджера
type Option func(*Manager)

// WithMaxRetries количество повторов сериализуемой транзакции после конфликта
func WithMaxRetries(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.maxRetries = n
		}
	}
}

// WithBackoff базовая пауза между повторами (растет линейно)
func WithBackoff(d time.Duration) Option {
	return func(m *Manager) { m.backoff = d }
}

func WithRetryObserver(o RetryObserver) Option {
	return func(m *Manager) { m.observer = o }
}

func WithLogger(l Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *Manager {
	m := &Manager{
		db:         db,
		maxRetries: DefaultMaxRetries,
		backoff:    DefaultBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, 1, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// При ошибке сериализации (40001) или взаимоблокировке (40P01) fn выполняется заново целиком.
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, m.maxRetries+1, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, 1, fn)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, attempts int, fn func(ctx context.Context) error) error {
	// Вложенный вызов присоединяется к уже открытой транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	for attempt := 1; ; attempt++ {
		err := m.once(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) || attempt >= attempts {
			return err
		}

		if m.observer != nil {
			m.observer.IncTxRetry()
		}
		if m.logger != nil {
			m.logger.Warn("txmanager: serialization failure, retrying (attempt %d/%d): %v", attempt+1, attempts, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.backoff * time.Duration(attempt)):
		}
	}
}

func (m *Manager) once(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommit, err)
	}
	return nil
}

// IsRetryable сообщает, можно ли повторить транзакцию после ошибки err
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case "40001", "40P01":
		return true
	default:
		return false
	}
}
