package get_available_slots

import (
	"time"

	"github.com/barberbook/booking-service/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	StoreID   int64     // ID магазина
	ServiceID int64     // ID услуги (определяет длительность слота)
	Date      time.Time // Дата
	StaffID   *int64    // Фильтр по мастеру (nil - все мастера)
}

// Slot один слот в календаре мастера
type Slot struct {
	StaffID     int64
	StaffName   string
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Response календарь слотов на дату
type Response struct {
	Date   time.Time
	IsOpen bool

	// Заполняются только при IsOpen=true
	OpenTime  *types.TimeString
	CloseTime *types.TimeString

	Slots []Slot
}
