package hours

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/dbmetrics"
	"github.com/barberbook/booking-service/pkg/psqlbuilder"
)

var hoursColumns = []string{
	"id",
	"store_id",
	"weekday",
	"is_closed",
	"open_time",
	"close_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий графика работы магазинов.
// Одна строка на пару (store_id, weekday); отсутствие строки означает
// не настроенный день и трактуется выше как закрытый.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория графика работы
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStoreAndWeekday получает график магазина на день недели (0 = воскресенье).
// Возвращает ErrHoursNotFound, если день не настроен.
func (r *Repository) GetByStoreAndWeekday(ctx context.Context, storeID int64, weekday int) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hoursColumns...).
		From("business_hours").
		Where(squirrel.Eq{"store_id": storeID, "weekday": weekday}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStoreAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	bh, err := scanHours(row)
	if err == sql.ErrNoRows {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStoreAndWeekday - scan hours: %v", ErrScanRow, err)
	}

	return bh, nil
}

// GetWeek получает весь настроенный график магазина, отсортированный по дню недели
func (r *Repository) GetWeek(ctx context.Context, storeID int64) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hoursColumns...).
		From("business_hours").
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := make([]*domain.BusinessHours, 0, 7)

	for rows.Next() {
		bh, err := scanHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %v", ErrScanRow, err)
		}
		week = append(week, bh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	return week, nil
}

// ReplaceWeek полностью заменяет график магазина переданным набором дней.
// Вызывается внутри транзакции (executor берется из контекста), чтобы
// читатели не увидели магазин с наполовину удаленным графиком.
func (r *Repository) ReplaceWeek(ctx context.Context, storeID int64, week []*domain.BusinessHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("business_hours").
		Where(squirrel.Eq{"store_id": storeID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - delete old hours: %v", ErrExecQuery, err)
	}

	if len(week) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("business_hours").
		Columns("store_id", "weekday", "is_closed", "open_time", "close_time")

	for _, bh := range week {
		var openTime, closeTime interface{}
		if !bh.IsClosed {
			openTime = bh.OpenTime
			closeTime = bh.CloseTime
		}
		insert = insert.Values(storeID, bh.Weekday, bh.IsClosed, openTime, closeTime)
	}

	insertQuery, insertArgs, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - insert new hours: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHours(row rowScanner) (*domain.BusinessHours, error) {
	var bh domain.BusinessHours
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&bh.ID,
		&bh.StoreID,
		&bh.Weekday,
		&bh.IsClosed,
		&bh.OpenTime,
		&bh.CloseTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	bh.CreatedAt = createdAt.Time
	bh.UpdatedAt = updatedAt.Time

	return &bh, nil
}
