package staff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/dbmetrics"
	"github.com/barberbook/booking-service/pkg/psqlbuilder"
)

var staffColumns = []string{
	"id",
	"store_id",
	"name",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для чтения ростера мастеров.
// Мастера создаются и деактивируются админкой магазина; ядру бронирований
// нужны только чтения.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастера по ID в рамках магазина
func (r *Repository) GetByID(ctx context.Context, storeID, staffID int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"id": staffID, "store_id": storeID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.StoreID,
		&s.Name,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// ListActiveByStore получает активных мастеров магазина в порядке создания.
// Порядок created_at, id - явный детерминированный ключ сортировки:
// first-available назначение обязано быть воспроизводимым и не зависеть от
// порядка строк в хранилище.
func (r *Repository) ListActiveByStore(ctx context.Context, storeID int64) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"store_id": storeID, "is_active": true}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staffList := make([]*domain.Staff, 0)

	for rows.Next() {
		var s domain.Staff
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&s.ID,
			&s.StoreID,
			&s.Name,
			&s.IsActive,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActiveByStore - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		staffList = append(staffList, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStore - rows error: %v", ErrScanRow, err)
	}

	return staffList, nil
}
