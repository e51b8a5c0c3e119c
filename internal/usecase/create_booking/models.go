package create_booking

import (
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	StoreID    int64  // ID магазина
	ServiceID  int64  // ID услуги
	StaffID    *int64 // ID мастера (nil - назначить первого свободного)
	CustomerID int64  // ID клиента

	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")

	// Денормализуемые данные клиента для истории и уведомлений
	CustomerName   string
	CustomerLineID *string
	CustomerEmail  *string

	Notes *string // Дополнительные заметки (опционально)
}

// BookingData созданное бронирование
type BookingData struct {
	ID         int64
	StoreID    int64
	StaffID    int64
	ServiceID  int64
	CustomerID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string

	ServiceName  string
	ServicePrice float64
	StaffName    string
	CustomerName string
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AlternativeSlot альтернативный слот взамен конфликтующего
type AlternativeSlot struct {
	StaffID   int64
	StaffName string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ConflictData описание конфликта, помешавшего созданию
type ConflictData struct {
	Type         string
	Detail       string
	Alternatives []AlternativeSlot
}

// Response результат создания: либо бронирование, либо конфликт.
// Конфликт - ожидаемый ответ домена, а не ошибка.
type Response struct {
	Booking  *BookingData
	Conflict *ConflictData
}

func toBookingData(b *domain.Booking) *BookingData {
	return &BookingData{
		ID:              b.ID,
		StoreID:         b.StoreID,
		StaffID:         b.StaffID,
		ServiceID:       b.ServiceID,
		CustomerID:      b.CustomerID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		StaffName:       b.StaffName,
		CustomerName:    b.CustomerName,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toConflictData(result *domain.ConflictResult) *ConflictData {
	data := &ConflictData{
		Type:         string(result.Type),
		Detail:       result.Detail,
		Alternatives: make([]AlternativeSlot, 0, len(result.Alternatives)),
	}
	for _, alt := range result.Alternatives {
		data.Alternatives = append(data.Alternatives, AlternativeSlot{
			StaffID:   alt.StaffID,
			StaffName: alt.StaffName,
			StartTime: alt.StartTime,
			EndTime:   alt.EndTime,
		})
	}
	return data
}
