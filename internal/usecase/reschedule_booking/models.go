package reschedule_booking

import (
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID  int64
	CustomerID int64 // инициатор переноса, должен владеть бронированием

	Date      time.Time        // Новая дата
	StartTime types.TimeString // Новое время начала
	StaffID   *int64           // Новый мастер (nil - оставить текущего)
}

// AlternativeSlot альтернативный слот взамен конфликтующего
type AlternativeSlot struct {
	StaffID   int64
	StaffName string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ConflictData описание конфликта, помешавшего переносу
type ConflictData struct {
	Type         string
	Detail       string
	Alternatives []AlternativeSlot
}

// BookingData перенесенное бронирование
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
}

// Response результат переноса: либо бронирование, либо конфликт
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
