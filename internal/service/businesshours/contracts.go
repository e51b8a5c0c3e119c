package businesshours

import (
	"context"

	"github.com/barberbook/booking-service/internal/domain"
)

// HoursRepository интерфейс репозитория графика работы
type HoursRepository interface {
	GetWeek(ctx context.Context, storeID int64) ([]*domain.BusinessHours, error)
	ReplaceWeek(ctx context.Context, storeID int64, week []*domain.BusinessHours) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
