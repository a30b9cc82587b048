// Package dbmetrics оборачивает *sql.DB для сбора метрик запросов и пула соединений
package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"
)

// Observer получатель метрик БД
type Observer interface {
	ObserveQuery(operation string, d time.Duration)
	SetPoolStats(stats sql.DBStats)
}

// DefaultPoolStatsInterval период опроса статистики пула
const DefaultPoolStatsInterval = 15 * time.Second

// DB обертка над *sql.DB, измеряющая длительность запросов
type DB struct {
	*sql.DB
	observer Observer
	stopOnce sync.Once
	stopCh   chan struct{}
}

// Wrap оборачивает db и запускает сбор статистики пула с указанным интервалом
func Wrap(db *sql.DB, observer Observer, interval time.Duration) *DB {
	w := &DB{DB: db, observer: observer, stopCh: make(chan struct{})}
	go w.collectPoolStats(interval)
	return w
}

// WrapWithDefault то же, что Wrap, с интервалом по умолчанию
func WrapWithDefault(db *sql.DB, observer Observer) *DB {
	return Wrap(db, observer, DefaultPoolStatsInterval)
}

// Stop останавливает сбор статистики пула
func (d *DB) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.observe(query, time.Now())
	return d.DB.ExecContext(ctx, query, args...)
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer d.observe(query, time.Now())
	return d.DB.QueryContext(ctx, query, args...)
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer d.observe(query, time.Now())
	return d.DB.QueryRowContext(ctx, query, args...)
}

func (d *DB) observe(query string, started time.Time) {
	d.observer.ObserveQuery(Operation(query), time.Since(started))
}

func (d *DB) collectPoolStats(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.observer.SetPoolStats(d.DB.Stats())
	for {
		select {
		case <-ticker.C:
			d.observer.SetPoolStats(d.DB.Stats())
		case <-d.stopCh:
			return
		}
	}
}

// Operation возвращает первое ключевое слово запроса в нижнем регистре (select, insert, ...)
func Operation(query string) string {
	q := strings.TrimSpace(query)
	if i := strings.IndexAny(q, " \n\t("); i > 0 {
		q = q[:i]
	}
	if q == "" {
		return "unknown"
	}
	return strings.ToLower(q)
}

// BeginTx начинает транзакцию, запросы которой тоже измеряются
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &measuredTx{Tx: tx, observe: d.observe}, nil
}

type measuredTx struct {
	*sql.Tx
	observe func(query string, started time.Time)
}

func (t *measuredTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer t.observe(query, time.Now())
	return t.Tx.ExecContext(ctx, query, args...)
}

func (t *measuredTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer t.observe(query, time.Now())
	return t.Tx.QueryContext(ctx, query, args...)
}

func (t *measuredTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer t.observe(query, time.Now())
	return t.Tx.QueryRowContext(ctx, query, args...)
}
