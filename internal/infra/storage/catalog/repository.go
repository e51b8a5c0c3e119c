package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/dbmetrics"
	"github.com/barberbook/booking-service/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"store_id",
	"name",
	"duration_minutes",
	"price",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг.
// Ядру бронирований от услуги нужны длительность и флаг активности.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу по ID в рамках магазина.
// Услуга чужого магазина неотличима от несуществующей.
func (r *Repository) GetByID(ctx context.Context, storeID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "store_id": storeID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.StoreID,
		&svc.Name,
		&svc.DurationMinutes,
		&svc.Price,
		&svc.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

// ListActiveByStore получает активные услуги магазина
func (r *Repository) ListActiveByStore(ctx context.Context, storeID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"store_id": storeID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)

	for rows.Next() {
		var svc domain.Service
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&svc.ID,
			&svc.StoreID,
			&svc.Name,
			&svc.DurationMinutes,
			&svc.Price,
			&svc.IsActive,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActiveByStore - scan row: %v", ErrScanRow, err)
		}

		svc.CreatedAt = createdAt.Time
		svc.UpdatedAt = updatedAt.Time

		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStore - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
