// Package dbmetrics оборачивает *sql.DB сбором метрик и предоставляет
// механизм проброса активной транзакции через context, которым пользуются
// репозитории: внутри транзакции все запросы идут через её executor.
package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/barberbook/booking-service/pkg/metrics"
)

// DBExecutor минимальный интерфейс исполнения запросов.
// Ему удовлетворяют *sql.DB, *sql.Tx, *dbmetrics.DB и *dbmetrics.Tx.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor executor с возможностью завершить транзакцию
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type ctxKey int

const executorKey ctxKey = iota

// WithExecutor кладет executor активной транзакции в context
func WithExecutor(ctx context.Context, exec TxExecutor) context.Context {
	return context.WithValue(ctx, executorKey, exec)
}

// GetExecutor возвращает executor транзакции из context, если он там есть,
// иначе fallback (обычно - пул соединений репозитория)
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(executorKey).(TxExecutor); ok {
		return exec
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(TxExecutor)
	return ok
}

// DB обертка над *sql.DB с записью метрик длительности запросов
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает соединение сбором метрик
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает соединение и запускает фоновый сбор статистики
// connection pool до закрытия stop-канала.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stop <-chan struct{}) *DB {
	wrapped := Wrap(db, m)

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				m.SetDBPoolStats(db.Stats())
			}
		}
	}()

	return wrapped
}

// ExecContext выполняет запрос с записью метрики
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("exec", time.Since(start))
	return res, err
}

// QueryContext выполняет запрос с записью метрики
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query", time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос с записью метрики
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query_row", time.Since(start))
	return row
}

// BeginTx открывает транзакцию; её executor тоже записывает метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

// Tx транзакция с записью метрик
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

// ExecContext выполняет запрос в транзакции с записью метрики
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_exec", time.Since(start))
	return res, err
}

// QueryContext выполняет запрос в транзакции с записью метрики
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_query", time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос в транзакции с записью метрики
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_query_row", time.Since(start))
	return row
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
