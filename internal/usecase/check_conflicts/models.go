package check_conflicts

import (
	"time"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// Request модель запроса на проверку конфликтов бронирования
type Request struct {
	StoreID   int64            // ID магазина
	ServiceID int64            // ID услуги
	StaffID   *int64           // ID мастера (nil - любой свободный)
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")

	// ExcludeBookingID исключает бронирование из проверки пересечений
	// (проверка переноса: бронирование не конфликтует само с собой)
	ExcludeBookingID *int64
}

// AlternativeSlot альтернативный слот взамен конфликтующего
type AlternativeSlot struct {
	StaffID   int64
	StaffName string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response результат проверки. Конфликт - ожидаемый ответ домена,
// а не ошибка: HasConflict=true с типом, описанием и альтернативами.
type Response struct {
	HasConflict  bool
	ConflictType string
	Detail       string
	Alternatives []AlternativeSlot

	// Заполняются только при HasConflict=false
	StaffID   *int64
	StaffName *string
	EndTime   *types.TimeString
}

func conflictResponse(t domain.ConflictType, detail string, alternatives []domain.Alternative) *Response {
	resp := &Response{
		HasConflict:  true,
		ConflictType: string(t),
		Detail:       detail,
		Alternatives: make([]AlternativeSlot, 0, len(alternatives)),
	}
	for _, alt := range alternatives {
		resp.Alternatives = append(resp.Alternatives, AlternativeSlot{
			StaffID:   alt.StaffID,
			StaffName: alt.StaffName,
			StartTime: alt.StartTime,
			EndTime:   alt.EndTime,
		})
	}
	return resp
}
